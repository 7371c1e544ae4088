package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.App.Name != "stockflow-api" {
		t.Errorf("app name = %q, want stockflow-api", cfg.App.Name)
	}
	if cfg.Database.Name != "stockflow" {
		t.Errorf("db name = %q, want stockflow", cfg.Database.Name)
	}
	if cfg.JWT.ExpiryHours != 24*time.Hour {
		t.Errorf("jwt expiry = %v, want 24h", cfg.JWT.ExpiryHours)
	}
	if cfg.JWT.RefreshExpiryHours != 168*time.Hour {
		t.Errorf("jwt refresh expiry = %v, want 168h", cfg.JWT.RefreshExpiryHours)
	}
	if cfg.Store.LowStockThreshold != 10 {
		t.Errorf("low stock threshold = %d, want 10", cfg.Store.LowStockThreshold)
	}
	if cfg.Store.DefaultTaxLabel != "GST" {
		t.Errorf("tax label = %q, want GST", cfg.Store.DefaultTaxLabel)
	}
	if cfg.RateLimit.Requests != 100 || cfg.RateLimit.Duration != 60 {
		t.Errorf("rate limit = %d/%ds, want 100/60s", cfg.RateLimit.Requests, cfg.RateLimit.Duration)
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		Name:     "stockflow",
		User:     "app",
		Password: "secret",
		SSLMode:  "require",
		Timezone: "Asia/Kolkata",
	}

	want := "host=db.internal user=app password=secret dbname=stockflow port=5433 sslmode=require TimeZone=Asia/Kolkata"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
