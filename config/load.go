package config

import (
	"lending/core"
	"lending/internal/lending"
	"lending/service/oracle"

	"github.com/fox-one/pkg/config"
)

// Load load config file, env LENDING_* overrides file values
func Load(cfgFile string, cfg *core.Config) error {
	config.AutomaticLoadEnv("LENDING")
	if cfgFile != "" {
		if err := config.LoadYaml(cfgFile, cfg); err != nil {
			return err
		}
	}

	defaultApp(cfg)
	defaultPriceOracle(cfg)
	return lending.ValidateThreshold(cfg.App.LiquidationThreshold)
}

func defaultApp(cfg *core.Config) {
	if cfg.App.LiquidationThreshold == 0 {
		cfg.App.LiquidationThreshold = lending.DefaultLiquidationThreshold
	}

	if cfg.App.Location == "" {
		cfg.App.Location = "UTC"
	}
}

func defaultPriceOracle(cfg *core.Config) {
	if cfg.PriceOracle.Decimals == 0 {
		cfg.PriceOracle.Decimals = oracle.DefaultDecimals
	}
}
