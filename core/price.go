package core

import (
	"github.com/shopspring/decimal"
)

// PriceTicker price ticker served by the price oracle end point
type PriceTicker struct {
	Provider string          `json:"provider,omitempty"`
	Symbol   string          `json:"symbol,omitempty"`
	Price    decimal.Decimal `json:"price,omitempty"`
}
