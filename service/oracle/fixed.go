package oracle

import (
	"context"
	"sync"

	"lending/core"

	"github.com/holiman/uint256"
)

// Fixed deterministic price feed, the answer only changes through UpdateAnswer
type Fixed struct {
	mu       sync.RWMutex
	answer   *uint256.Int
	decimals uint8
}

// NewFixed new fixed price feed
func NewFixed(answer *uint256.Int, decimals uint8) *Fixed {
	return &Fixed{
		answer:   new(uint256.Int).Set(answer),
		decimals: decimals,
	}
}

// UpdateAnswer set a new answer
func (f *Fixed) UpdateAnswer(answer *uint256.Int) {
	f.mu.Lock()
	f.answer = new(uint256.Int).Set(answer)
	f.mu.Unlock()
}

// CurrentPrice current price
func (f *Fixed) CurrentPrice(ctx context.Context) (*core.Price, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.answer.IsZero() {
		return nil, core.ErrOracleUnavailable
	}

	return &core.Price{
		Answer:   new(uint256.Int).Set(f.answer),
		Decimals: f.decimals,
	}, nil
}
