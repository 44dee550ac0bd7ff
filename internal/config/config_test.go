package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
admin:
  password: secret
database:
  path: data/tavola.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 12*time.Hour, cfg.Admin.SessionTTL)
	assert.Equal(t, 12, cfg.Booking.MaxPartySize)
	assert.Equal(t, 365, cfg.Booking.MaxBookingDays)
	assert.Equal(t, "Bella Tavola", cfg.Restaurant.Name)
	assert.Equal(t, 45, cfg.Restaurant.TotalCovers)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("TAVOLA_TEST_PASSWORD", "from-env")
	path := writeConfig(t, `
admin:
  password: ${TAVOLA_TEST_PASSWORD}
database:
  path: data/tavola.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Admin.Password)
}

func TestValidateRejectsMissingPassword(t *testing.T) {
	path := writeConfig(t, `
database:
  path: data/tavola.db
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsMissingDatabasePath(t *testing.T) {
	path := writeConfig(t, `
admin:
  password: secret
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestRestaurantOverride(t *testing.T) {
	path := writeConfig(t, `
admin:
  password: secret
database:
  path: data/tavola.db
restaurant:
  name: Trattoria Test
  total_covers: 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Trattoria Test", cfg.Restaurant.Name)
	assert.Equal(t, 30, cfg.Restaurant.TotalCovers)
}
