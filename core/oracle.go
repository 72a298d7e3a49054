package core

import (
	"context"

	"github.com/holiman/uint256"
)

// Price fixed-point price, Answer / 10^Decimals
type Price struct {
	Answer   *uint256.Int
	Decimals uint8
}

// PriceFeed price source of one asset. Every call fetches a fresh price.
type PriceFeed interface {
	CurrentPrice(ctx context.Context) (*Price, error)
}

// IOracleService resolves registered feed identifiers
type IOracleService interface {
	Feed(ctx context.Context, feedID string) (PriceFeed, error)
}
