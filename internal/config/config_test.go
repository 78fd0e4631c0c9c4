package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("INNBOARD_CONFIG", filepath.Join(t.TempDir(), "config.toml")) // no such file

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "$", cfg.UI.CurrencySymbol)
	require.Equal(t, "Asia/Kolkata", cfg.UI.Timezone)
	require.Equal(t, "02 Jan", cfg.UI.DateFormat)
	require.Equal(t, "bookings.csv", cfg.Import.DefaultPath)
	require.NotEmpty(t, cfg.Log.Path)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[ui]
currency_symbol = "₹"
timezone = "UTC"

[import]
default_path = "/tmp/b.xlsx"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("INNBOARD_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "₹", cfg.UI.CurrencySymbol)
	require.Equal(t, "UTC", cfg.UI.Timezone)
	require.Equal(t, "/tmp/b.xlsx", cfg.Import.DefaultPath)
	// Untouched keys keep their defaults.
	require.Equal(t, "02 Jan", cfg.UI.DateFormat)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("INNBOARD_CONFIG", filepath.Join(t.TempDir(), "config.toml"))
	t.Setenv("INNBOARD_UI_CURRENCY_SYMBOL", "€")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "€", cfg.UI.CurrencySymbol)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("INNBOARD_CONFIG", path)

	want, err := Load()
	require.NoError(t, err)
	want.UI.CurrencySymbol = "£"
	want.Import.DefaultPath = "arrivals.csv"
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, want, got)
}
