package handler

import (
	"bytes"
	"fmt"
	"time"

	"go-inventory-ledger/internal/export"
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	service service.InventoryService
	orders  service.OrderService
	catalog service.CatalogService
}

func NewReportHandler(s service.InventoryService, orders service.OrderService, catalog service.CatalogService) *ReportHandler {
	return &ReportHandler{service: s, orders: orders, catalog: catalog}
}

func (h *ReportHandler) Products(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return respondError(c, err)
	}

	var buf bytes.Buffer
	if err := export.ProductsWorkbook(&buf, products); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build report"})
	}
	return sendWorkbook(c, "products.xlsx", buf.Bytes())
}

// Sales exports sales orders dated within the optional ?from= and ?to= bounds
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from", false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid 'from' date"})
	}
	to, err := parseTimeQuery(c, "to", true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid 'to' date"})
	}

	orders, err := h.orders.GetSalesOrders(from, to)
	if err != nil {
		return respondError(c, err)
	}
	products, err := h.service.GetAllProducts()
	if err != nil {
		return respondError(c, err)
	}
	customers, err := h.catalog.GetCustomers()
	if err != nil {
		return respondError(c, err)
	}

	report := &export.SalesReport{
		From:          from,
		To:            to,
		GeneratedAt:   time.Now().UTC(),
		Orders:        orders,
		CustomerNames: make(map[uuid.UUID]string, len(customers)),
		ProductNames:  make(map[uuid.UUID]string, len(products)),
	}
	for _, cu := range customers {
		report.CustomerNames[cu.ID] = cu.Name
	}
	for _, p := range products {
		report.ProductNames[p.ID] = p.Name
	}

	var buf bytes.Buffer
	if err := export.SalesReportWorkbook(&buf, report); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build report"})
	}
	return sendWorkbook(c, "sales.xlsx", buf.Bytes())
}

func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	products, err := h.service.GetLowStockProducts()
	if err != nil {
		return respondError(c, err)
	}

	var buf bytes.Buffer
	if err := export.LowStockWorkbook(&buf, products); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build report"})
	}
	return sendWorkbook(c, "low-stock.xlsx", buf.Bytes())
}

// StockMovements exports every movement, optionally bounded by ?from= and ?to=
func (h *ReportHandler) StockMovements(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from", false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid 'from' date"})
	}
	to, err := parseTimeQuery(c, "to", true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid 'to' date"})
	}

	movements, err := h.service.GetAllStockMovements(from, to)
	if err != nil {
		return respondError(c, err)
	}

	var buf bytes.Buffer
	if err := export.StockMovementWorkbook(&buf, movements); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build report"})
	}
	return sendWorkbook(c, "stock-movements.xlsx", buf.Bytes())
}

func sendWorkbook(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
