package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("LOW_STOCK_INTERVAL", "")
	t.Setenv("ALLOW_NEGATIVE_STOCK", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("driver = %q, want %q", cfg.Database.Driver, DriverSQLite)
	}
	if cfg.Stock.LowStockInterval != 5*time.Minute {
		t.Errorf("interval = %v, want 5m", cfg.Stock.LowStockInterval)
	}
	if cfg.Stock.AllowNegativeStock {
		t.Error("negative stock should be off by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("LOW_STOCK_INTERVAL", "30s")
	t.Setenv("ALLOW_NEGATIVE_STOCK", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Stock.LowStockInterval != 30*time.Second {
		t.Errorf("interval = %v", cfg.Stock.LowStockInterval)
	}
	if !cfg.Stock.AllowNegativeStock {
		t.Error("expected negative stock to be allowed")
	}
}

func TestLoadRejectsBadInterval(t *testing.T) {
	t.Setenv("LOW_STOCK_INTERVAL", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparsable interval")
	}
}

func TestLoadRejectsNonPositiveInterval(t *testing.T) {
	for _, v := range []string{"0s", "-1m"} {
		t.Setenv("LOW_STOCK_INTERVAL", v)
		if _, err := Load(); err == nil {
			t.Errorf("LOW_STOCK_INTERVAL=%s: expected error", v)
		}
	}
}
