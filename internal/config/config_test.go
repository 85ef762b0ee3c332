package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	conf, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", conf.API.Port)
	assert.Equal(t, DriverPostgres, conf.Database.Driver)
	assert.Equal(t, 12*time.Hour, conf.API.TokenTTL)
	assert.Equal(t, "Asia/Jakarta", conf.Store.Timezone)
	assert.Equal(t, 5, conf.Store.LowStockThreshold)
	assert.Equal(t, 5, conf.Store.TopProducts)
	assert.Equal(t, "admin", conf.Admin.Username)
	assert.Len(t, conf.Store.Footer, 2)
	assert.False(t, conf.Mail.Enabled)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
api:
  port: "9000"
database:
  driver: sqlite
  sqlite_path: /tmp/pos.db
store:
  name: Toko Test
  low_stock_threshold: 3
`)
	t.Setenv("API_PORT", "9100")
	t.Setenv("STORE_DEFAULT_MEMBER_DISCOUNT", "15")

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", conf.API.Port)
	assert.Equal(t, DriverSQLite, conf.Database.Driver)
	assert.Equal(t, "/tmp/pos.db", conf.Database.SQLitePath)
	assert.Equal(t, "Toko Test", conf.Store.Name)
	assert.Equal(t, 3, conf.Store.LowStockThreshold)
	assert.Equal(t, 15, conf.Store.DefaultMemberDiscount)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown driver", "database:\n  driver: mysql\n"},
		{"discount out of range", "store:\n  default_member_discount: 120\n"},
		{"bad timezone", "store:\n  timezone: Mars/Olympus\n"},
		{"no top products", "store:\n  top_products: 0\n"},
		{"production without key", "api:\n  environment: production\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestStoreConfig_Location(t *testing.T) {
	c := &StoreConfig{Timezone: "Asia/Jakarta"}
	loc, err := c.Location()
	require.NoError(t, err)

	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 7*60*60, offset)
}

func TestWatch(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\n")

	var level atomic.Value
	err := Watch(path, func(c *AppConfig) {
		level.Store(c.Log.Level)
	}, func(err error) {
		t.Errorf("unexpected reload error: %v", err)
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	assert.Eventually(t, func() bool {
		v, _ := level.Load().(string)
		return v == "debug"
	}, 5*time.Second, 20*time.Millisecond)
}
