package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-inventory-ledger/internal/config"
	"go-inventory-ledger/internal/handler"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/internal/ws"
	"go-inventory-ledger/pkg/database"
	"go-inventory-ledger/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLog, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLog.Sync()
	if !cfg.EnvFileLoaded {
		zapLog.Info(".env file not found, using process environment")
	}

	// 2. Setup Database
	db, err := database.Connect(cfg.Database, zapLog)
	if err != nil {
		zapLog.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zapLog.Fatal("Failed to migrate database", zap.Error(err))
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub(zapLog)
	go wsHub.Run(ctx)

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	historyRepo := repository.NewHistoryRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	invService := service.NewInventoryService(productRepo, historyRepo, categoryRepo, supplierRepo, db, wsHub, zapLog)
	orderService := service.NewOrderService(orderRepo, productRepo, historyRepo, customerRepo, supplierRepo, db, wsHub, zapLog, cfg.Stock.AllowNegativeStock)
	catalogService := service.NewCatalogService(categoryRepo, supplierRepo, customerRepo)
	dashService := service.NewDashboardService(historyRepo)

	monitor := service.NewLowStockMonitor(invService, wsHub, zapLog, cfg.Stock.LowStockInterval)
	go monitor.Run(ctx)

	handlers := &handler.Handlers{
		Inventory: handler.NewInventoryHandler(invService),
		Orders:    handler.NewOrderHandler(orderService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Dashboard: handler.NewDashboardHandler(dashService),
		Reports:   handler.NewReportHandler(invService, orderService, catalogService),
	}

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 6. Routes
	handlers.Register(app.Group("/api/v1"))

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !wsHub.Join(c) {
			return
		}
		defer wsHub.Leave(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		zapLog.Info("HTTP server listening", zap.String("port", cfg.HTTPPort), zap.String("driver", cfg.Database.Driver))
		if err := app.Listen(":" + cfg.HTTPPort); err != nil {
			zapLog.Panic("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		zapLog.Error("Server forced to shutdown", zap.Error(err))
	}
	stop()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	zapLog.Info("Server exited")
}
