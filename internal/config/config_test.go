package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akress/datanorm-az/internal/pricing"
	"github.com/akress/datanorm-az/internal/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaultsWhenDefaultPathMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(DefaultPath)
	require.NoError(t, err)

	assert.Equal(t, "DATANORM.001", cfg.Datafile)
	assert.Equal(t, "latin-1", cfg.InputEncoding)
	assert.Equal(t, "utf-8", cfg.OutputEncoding)
	assert.Equal(t, "output", cfg.OutputFolder)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2, cfg.Rounding.Digits)
	assert.Equal(t, "half-up", cfg.Rounding.Mode)

	codes := cfg.BasisCodes()
	assert.Equal(t, types.BasisList, codes[1])
	assert.Equal(t, types.BasisList, codes[9])
	assert.Equal(t, types.BasisPurchase, codes[2])
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "custom.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
datafile: PRICES.001
input_encoding: windows-1252
output_folder: exports
log_level: debug
rounding:
  digits: 3
  mode: half-even
price_basis_codes:
  7: purchase
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "PRICES.001", cfg.Datafile)
	assert.Equal(t, "windows-1252", cfg.InputEncoding)
	assert.Equal(t, "exports", cfg.OutputFolder)
	assert.Equal(t, "debug", cfg.LogLevel)

	// Unset keys still get their defaults.
	assert.Equal(t, "utf-8", cfg.OutputEncoding)

	rule := cfg.RoundingRule()
	assert.Equal(t, int32(3), rule.Digits)
	assert.Equal(t, pricing.RoundHalfEven, rule.Mode)

	// A configured code table replaces the convention entirely.
	codes := cfg.BasisCodes()
	assert.Equal(t, types.BasisPurchase, codes[7])
	_, ok := codes[1]
	assert.False(t, ok)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "datafile: [unclosed")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadRejectsBadRounding(t *testing.T) {
	path := writeConfig(t, "rounding:\n  digits: -1\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rounding digits")

	path = writeConfig(t, "rounding:\n  mode: ceiling\n")
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown rounding mode")
}

func TestLoadRejectsBadBasisFamily(t *testing.T) {
	path := writeConfig(t, "price_basis_codes:\n  4: wholesale\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown family")
}
