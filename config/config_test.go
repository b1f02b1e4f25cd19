package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MARKETPLACE_ORIGIN", "")
	t.Setenv("MAX_PAGES", "")
	t.Setenv("NAV_TIMEOUT_SEC", "")

	cfg := Load()
	assert.Equal(t, "https://jp.mercari.com", cfg.MarketplaceOrigin)
	assert.Equal(t, 5, cfg.MaxPages)
	assert.Equal(t, 60*time.Second, cfg.NavTimeout())
	assert.Equal(t, 2000, cfg.SettleMinMs)
	assert.Equal(t, 4000, cfg.SettleMaxMs)
	assert.Equal(t, 1000, cfg.PaceMinMs)
	assert.Equal(t, 2000, cfg.PaceMaxMs)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MARKETPLACE_ORIGIN", "http://localhost:9999/")
	t.Setenv("MAX_PAGES", "2")
	t.Setenv("STORE_BACKEND", "Memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("NAV_TIMEOUT_SEC", "not-a-number")

	cfg := Load()
	assert.Equal(t, "http://localhost:9999", cfg.MarketplaceOrigin)
	assert.Equal(t, 2, cfg.MaxPages)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 60, cfg.NavTimeoutSec)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5432", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "mercari_db", PostgresSSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=mercari_db sslmode=disable", cfg.DSN())
}
