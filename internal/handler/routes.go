package handler

import "github.com/gofiber/fiber/v2"

type Handlers struct {
	Inventory *InventoryHandler
	Orders    *OrderHandler
	Catalog   *CatalogHandler
	Dashboard *DashboardHandler
	Reports   *ReportHandler
}

// Register mounts every REST route under api
func (h *Handlers) Register(api fiber.Router) {
	// Dashboard
	api.Get("/dashboard/stats", h.Dashboard.GetDashboardStats)
	api.Get("/dashboard/stock-movement", h.Dashboard.GetStockMovement)

	// Products (static paths before /:id)
	products := api.Group("/products")
	products.Get("/", h.Inventory.GetProducts)
	products.Post("/", h.Inventory.CreateProduct)
	products.Get("/search", h.Inventory.SearchProducts)
	products.Get("/low-stock", h.Inventory.GetLowStockProducts)
	products.Get("/:id", h.Inventory.GetProduct)
	products.Patch("/:id", h.Inventory.UpdateProduct)
	products.Delete("/:id", h.Inventory.DeleteProduct)
	products.Get("/:id/history", h.Inventory.GetEditHistory)
	products.Get("/:id/price-history", h.Inventory.GetPriceHistory)
	products.Get("/:id/stock-movements", h.Inventory.GetStockMovements)
	products.Get("/:id/reconcile", h.Inventory.Reconcile)

	// Orders
	sales := api.Group("/sales-orders")
	sales.Get("/", h.Orders.GetSalesOrders)
	sales.Post("/", h.Orders.CreateSalesOrder)
	sales.Get("/:id", h.Orders.GetSalesOrder)

	purchases := api.Group("/purchase-orders")
	purchases.Get("/", h.Orders.GetPurchaseOrders)
	purchases.Post("/", h.Orders.CreatePurchaseOrder)
	purchases.Get("/:id", h.Orders.GetPurchaseOrder)
	purchases.Post("/:id/receive", h.Orders.ReceivePurchaseOrder)
	purchases.Post("/:id/cancel", h.Orders.CancelPurchaseOrder)

	// Catalog
	categories := api.Group("/categories")
	categories.Get("/", h.Catalog.GetCategories)
	categories.Post("/", h.Catalog.CreateCategory)
	categories.Get("/:id", h.Catalog.GetCategory)
	categories.Put("/:id", h.Catalog.UpdateCategory)
	categories.Delete("/:id", h.Catalog.DeleteCategory)

	suppliers := api.Group("/suppliers")
	suppliers.Get("/", h.Catalog.GetSuppliers)
	suppliers.Post("/", h.Catalog.CreateSupplier)
	suppliers.Get("/:id", h.Catalog.GetSupplier)
	suppliers.Put("/:id", h.Catalog.UpdateSupplier)
	suppliers.Delete("/:id", h.Catalog.DeleteSupplier)

	customers := api.Group("/customers")
	customers.Get("/", h.Catalog.GetCustomers)
	customers.Post("/", h.Catalog.CreateCustomer)
	customers.Get("/:id", h.Catalog.GetCustomer)
	customers.Put("/:id", h.Catalog.UpdateCustomer)
	customers.Delete("/:id", h.Catalog.DeleteCustomer)

	// Reports
	api.Get("/reports/products.xlsx", h.Reports.Products)
	api.Get("/reports/sales.xlsx", h.Reports.Sales)
	api.Get("/reports/low-stock.xlsx", h.Reports.LowStock)
	api.Get("/reports/stock-movements.xlsx", h.Reports.StockMovements)
}
