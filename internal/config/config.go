// =============================================================================
// DATANORM-AZ Processor - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file and
// applies defaults for anything the file leaves unset. The configuration
// deliberately owns two decisions the core must not hard-wire:
//
//   1. The price-basis code table. The DATANORM documentation only implies
//      that code 9 means list price; keeping the mapping in configuration
//      means a future clarification is a config edit, not a decoder change.
//   2. The rounding rule (digit count and tie-breaking mode) applied to all
//      calculated prices.
//
// A missing config file is not an error when the default path is used; the
// tool then runs entirely on defaults, matching how it behaves in an empty
// working directory.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/akress/datanorm-az/internal/decoder"
	"github.com/akress/datanorm-az/internal/pricing"
	"github.com/akress/datanorm-az/internal/types"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "config.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// Datafile is the DATANORM source file processed when the --file flag
	// is not given.
	// Default: "DATANORM.001"
	Datafile string `yaml:"datafile"`

	// InputEncoding is the character set of the source file.
	// Supported: "latin-1", "windows-1252", "windows-1251", "utf-8".
	// Default: "latin-1"
	InputEncoding string `yaml:"input_encoding"`

	// OutputEncoding is the character set of exported CSV files.
	// Default: "utf-8"
	OutputEncoding string `yaml:"output_encoding"`

	// OutputFolder is where relative export paths are placed. It is
	// created on demand.
	// Default: "output"
	OutputFolder string `yaml:"output_folder"`

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	// The --verbose flag overrides it to "debug".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// Rounding configures the output rounding of calculated prices.
	Rounding RoundingConfig `yaml:"rounding"`

	// PriceBasisCodes maps raw A-record price-basis codes to a price
	// family, either "list" or "purchase".
	// Default: {1: list, 9: list, 2: purchase}
	PriceBasisCodes map[int]string `yaml:"price_basis_codes"`
}

// RoundingConfig is the YAML shape of the rounding rule.
type RoundingConfig struct {
	// Digits is the number of fractional digits kept on every calculated
	// price and percentage.
	// Default: 2
	Digits int `yaml:"digits"`

	// Mode selects the tie-breaking behavior: "half-up" (commercial) or
	// "half-even" (banker's).
	// Default: "half-up"
	Mode string `yaml:"mode"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from the given path. When the default path
// does not exist the built-in defaults are returned; an explicitly
// configured path must exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			cfg := &Config{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.Datafile == "" {
		cfg.Datafile = "DATANORM.001"
	}
	if cfg.InputEncoding == "" {
		cfg.InputEncoding = "latin-1"
	}
	if cfg.OutputEncoding == "" {
		cfg.OutputEncoding = "utf-8"
	}
	if cfg.OutputFolder == "" {
		cfg.OutputFolder = "output"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Rounding.Digits == 0 {
		cfg.Rounding.Digits = 2
	}
	if cfg.Rounding.Mode == "" {
		cfg.Rounding.Mode = "half-up"
	}
	if cfg.PriceBasisCodes == nil {
		cfg.PriceBasisCodes = map[int]string{
			1: "list",
			9: "list",
			2: "purchase",
		}
	}
}

// validate rejects configurations the rest of the program cannot honor.
func validate(cfg *Config) error {
	if cfg.Rounding.Digits < 0 {
		return fmt.Errorf("rounding digits must be >= 0, got %d", cfg.Rounding.Digits)
	}
	if _, err := pricing.ParseRoundingMode(cfg.Rounding.Mode); err != nil {
		return err
	}
	if _, err := basisCodes(cfg.PriceBasisCodes); err != nil {
		return err
	}
	return nil
}

// =============================================================================
// DERIVED SETTINGS
// =============================================================================

// BasisCodes converts the configured code table into the decoder's form.
func (c *Config) BasisCodes() decoder.BasisCodes {
	codes, err := basisCodes(c.PriceBasisCodes)
	if err != nil {
		// Load validated the table already; a bad table here means the
		// Config was built by hand, so fall back to the convention.
		return decoder.DefaultBasisCodes()
	}
	return codes
}

// RoundingRule converts the configured rounding into the resolver's form.
func (c *Config) RoundingRule() pricing.Rounding {
	mode, err := pricing.ParseRoundingMode(c.Rounding.Mode)
	if err != nil {
		mode = pricing.RoundHalfUp
	}
	return pricing.Rounding{Digits: int32(c.Rounding.Digits), Mode: mode}
}

func basisCodes(table map[int]string) (decoder.BasisCodes, error) {
	codes := make(decoder.BasisCodes, len(table))
	for code, family := range table {
		switch family {
		case "list":
			codes[code] = types.BasisList
		case "purchase":
			codes[code] = types.BasisPurchase
		default:
			return nil, fmt.Errorf("price basis code %d maps to unknown family %q", code, family)
		}
	}
	return codes, nil
}
