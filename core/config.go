package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config lending config
type Config struct {
	App         App         `json:"app"`
	DB          db.Config   `json:"db"`
	Redis       Redis       `json:"redis"`
	PriceOracle PriceOracle `json:"price_oracle"`
	Notifier    Notifier    `json:"notifier"`
	HealthWatch HealthWatch `json:"health_watch"`
}

// IsOwner check if the user owns the allow-list
func (c *Config) IsOwner(userID string) bool {
	return c.App.Owner != "" && c.App.Owner == userID
}

// App app config
type App struct {
	// Owner the only principal allowed to change the allow-list
	Owner string `json:"owner"`
	// LiquidationThreshold percent of collateral value counted toward borrowing power
	LiquidationThreshold uint64 `json:"liquidation_threshold"`
	Location             string `json:"location"`
	LogFormat            string `json:"log_format"`
	// Sessions access token => user id
	Sessions map[string]string `json:"sessions"`
}

// Redis redis config, empty addr keeps health snapshots in memory
type Redis struct {
	Addr string `json:"addr"`
	DB   int    `json:"db"`
}

// PriceOracle price oracle config
type PriceOracle struct {
	EndPoint string `json:"end_point"`
	// Decimals scale of prices pulled from the end point
	Decimals uint8       `json:"decimals"`
	Feeds    []FixedFeed `json:"feeds"`
}

// FixedFeed a price feed answering a constant, for sandboxes and tests
type FixedFeed struct {
	ID       string `json:"id"`
	Answer   string `json:"answer"`
	Decimals uint8  `json:"decimals"`
}

// Notifier event webhook config
type Notifier struct {
	Webhook string `json:"webhook"`
	Spec    string `json:"spec"`
}

// HealthWatch health watcher config
type HealthWatch struct {
	Spec string `json:"spec"`
}
