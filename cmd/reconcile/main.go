// Command reconcile checks every product's stock ledger and exits non-zero
// when a quantity disagrees with its initial quantity plus recorded movements.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go-inventory-ledger/internal/config"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/internal/ws"
	"go-inventory-ledger/pkg/database"
	"go-inventory-ledger/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	verbose := flag.Bool("v", false, "print balanced products too")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	zapLog, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLog.Sync()

	db, err := database.Connect(cfg.Database, zapLog)
	if err != nil {
		zapLog.Fatal("Failed to connect to database", zap.Error(err))
	}

	productRepo := repository.NewProductRepo(db)
	historyRepo := repository.NewHistoryRepo(db)
	invService := service.NewInventoryService(productRepo, historyRepo,
		repository.NewCategoryRepo(db), repository.NewSupplierRepo(db), db, ws.Discard, zapLog)

	results, err := invService.ReconcileAll()
	if err != nil {
		zapLog.Fatal("Reconciliation failed", zap.Error(err))
	}

	drifted := 0
	for _, r := range results {
		if r.Balanced && !*verbose {
			continue
		}
		status := "ok"
		if !r.Balanced {
			status = "DRIFT"
			drifted++
		}
		fmt.Printf("%-5s %s %q initial=%d movements=%d quantity=%d\n",
			status, r.ProductID, r.Name, r.InitialQuantity, r.MovementSum, r.Quantity)
	}

	zapLog.Info("Reconciliation finished", zap.Int("products", len(results)), zap.Int("drifted", drifted))
	if drifted > 0 {
		zapLog.Sync()
		os.Exit(1)
	}
}
