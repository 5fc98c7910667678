package handler

import (
	"strings"

	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.NewProduct
	if body := parseBody(c, &req); body != nil {
		return c.Status(fiber.StatusBadRequest).JSON(body)
	}
	if msg := checkProductValues(req.Quantity, req.AlertThreshold, req.UnitPrice.IsNegative()); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	product, err := h.service.CreateProduct(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	productID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var patch service.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if msg := checkPatch(patch); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	updated, err := h.service.UpdateProduct(productID, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	productID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	if err := h.service.DeleteProduct(productID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	productID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	product, err := h.service.GetProduct(productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// SearchProducts matches ?q= against name and description
func (h *InventoryHandler) SearchProducts(c *fiber.Ctx) error {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Query parameter 'q' is required"})
	}
	products, err := h.service.SearchProducts(term)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

func (h *InventoryHandler) GetLowStockProducts(c *fiber.Ctx) error {
	products, err := h.service.GetLowStockProducts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

func (h *InventoryHandler) GetEditHistory(c *fiber.Ctx) error {
	productID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	history, err := h.service.GetEditHistory(productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(history)
}

func (h *InventoryHandler) GetPriceHistory(c *fiber.Ctx) error {
	productID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	history, err := h.service.GetPriceHistory(productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(history)
}

// GetStockMovements accepts optional ?from= and ?to= bounds, both inclusive
func (h *InventoryHandler) GetStockMovements(c *fiber.Ctx) error {
	productID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	from, err := parseTimeQuery(c, "from", false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid 'from' date"})
	}
	to, err := parseTimeQuery(c, "to", true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid 'to' date"})
	}

	movements, err := h.service.GetStockMovements(productID, from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movements)
}

func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	productID, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}
	rec, err := h.service.Reconcile(productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

func checkProductValues(quantity int, alertThreshold *int, negativePrice bool) string {
	switch {
	case quantity < 0:
		return "Quantity cannot be negative"
	case alertThreshold != nil && *alertThreshold < 0:
		return "Alert threshold cannot be negative"
	case negativePrice:
		return "Unit price cannot be negative"
	}
	return ""
}

func checkPatch(p service.ProductPatch) string {
	if err := p.Validate(); err != nil {
		return err.Error()
	}
	if p.Name.Set && strings.TrimSpace(p.Name.Value) == "" {
		return "Name cannot be empty"
	}
	if p.MeasureUnit.Set && !p.MeasureUnit.Value.Valid() {
		return "Unknown measure unit"
	}
	var threshold *int
	if p.AlertThreshold.Set {
		threshold = &p.AlertThreshold.Value
	}
	quantity := 0
	if p.Quantity.Set {
		quantity = p.Quantity.Value
	}
	return checkProductValues(quantity, threshold, p.UnitPrice.Set && p.UnitPrice.Value.IsNegative())
}
