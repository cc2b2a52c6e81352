package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("error writing config file: %v", err)
	}
	return path
}

const minimalConfig = `
server:
  port: 8080
database:
  host: "localhost"
  port: 5432
  user: "gearmarket"
  database: "gearmarket_test"
jwt:
  secret: "test-secret-test-secret-test-secret!"
`

func TestLoad(t *testing.T) {
	t.Run("Defaults Applied", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, minimalConfig))
		assert.NoError(t, err)
		assert.Equal(t, 1000, cfg.Billing.DefaultTaxRateBps)
		assert.Equal(t, 14, cfg.Billing.InvoiceDueDays)
		assert.Equal(t, 7, cfg.Billing.StaleOrderDays)
		assert.Equal(t, 10, cfg.OTP.TTLMinutes)
		assert.Equal(t, 5, cfg.OTP.MaxRequestsPerHr)
		assert.Equal(t, 60, cfg.JWT.AccessTokenExpiry)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
		assert.Equal(t, "0 0 2 * * *", cfg.Scheduler.MarkOverdueInvoices)
	})

	t.Run("Missing JWT Secret Rejected", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
server:
  port: 8080
database:
  host: "localhost"
  user: "gearmarket"
  database: "gearmarket_test"
`))
		assert.Error(t, err)
	})

	t.Run("Invalid Port Rejected", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
server:
  port: 99999
database:
  host: "localhost"
  user: "gearmarket"
  database: "gearmarket_test"
jwt:
  secret: "test-secret-test-secret-test-secret!"
`))
		assert.Error(t, err)
	})

	t.Run("Env Override", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DEFAULT_TAX_RATE_BPS", "825")

		cfg, err := Load(writeConfig(t, minimalConfig))
		assert.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 825, cfg.Billing.DefaultTaxRateBps)
	})
}

func TestGetDatabaseConnectionString(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "gearmarket",
		Password: "pw",
		Database: "gearmarket_test",
		SSLMode:  "disable",
	}}
	assert.Equal(t, "postgres://gearmarket:pw@localhost:5432/gearmarket_test?sslmode=disable", cfg.GetDatabaseConnectionString())
}
