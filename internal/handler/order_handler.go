package handler

import (
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

func (h *OrderHandler) CreateSalesOrder(c *fiber.Ctx) error {
	var req service.NewSalesOrder
	if body := parseBody(c, &req); body != nil {
		return c.Status(fiber.StatusBadRequest).JSON(body)
	}
	for _, line := range req.Items {
		if line.UnitPrice.IsNegative() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unit price cannot be negative"})
		}
	}

	order, err := h.service.CreateSalesOrder(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Sales order created", "data": order})
}

// GetSalesOrders accepts optional ?from= and ?to= order-date bounds
func (h *OrderHandler) GetSalesOrders(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from", false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid 'from' date"})
	}
	to, err := parseTimeQuery(c, "to", true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid 'to' date"})
	}

	orders, err := h.service.GetSalesOrders(from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) GetSalesOrder(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order ID"})
	}
	order, err := h.service.GetSalesOrder(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

func (h *OrderHandler) CreatePurchaseOrder(c *fiber.Ctx) error {
	var req service.NewPurchaseOrder
	if body := parseBody(c, &req); body != nil {
		return c.Status(fiber.StatusBadRequest).JSON(body)
	}
	for _, line := range req.Items {
		if line.UnitPrice.IsNegative() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unit price cannot be negative"})
		}
	}

	order, err := h.service.CreatePurchaseOrder(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Purchase order created", "data": order})
}

// GetPurchaseOrders optionally filters by ?status=pending|received|cancelled
func (h *OrderHandler) GetPurchaseOrders(c *fiber.Ctx) error {
	var status *model.PurchaseStatus
	if raw := c.Query("status"); raw != "" {
		s := model.PurchaseStatus(raw)
		if !s.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown purchase order status"})
		}
		status = &s
	}

	orders, err := h.service.GetPurchaseOrders(status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) GetPurchaseOrder(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order ID"})
	}
	order, err := h.service.GetPurchaseOrder(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

func (h *OrderHandler) ReceivePurchaseOrder(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order ID"})
	}
	order, err := h.service.ReceivePurchaseOrder(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Purchase order " + string(order.Status), "data": order})
}

func (h *OrderHandler) CancelPurchaseOrder(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order ID"})
	}
	order, err := h.service.CancelPurchaseOrder(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Purchase order " + string(order.Status), "data": order})
}
