package oracle

import (
	"context"
	"fmt"
	"sync"

	"lending/core"

	"github.com/holiman/uint256"
)

// DefaultDecimals scale of ticker prices when none is configured
const DefaultDecimals uint8 = 18

// Service resolves feed identifiers to price feeds
type Service struct {
	mu       sync.RWMutex
	feeds    map[string]core.PriceFeed
	endpoint string
	decimals uint8
}

// New new oracle service, fixed feeds declared in the config are registered up front
func New(cfg core.PriceOracle) (*Service, error) {
	s := &Service{
		feeds:    make(map[string]core.PriceFeed),
		endpoint: cfg.EndPoint,
		decimals: cfg.Decimals,
	}

	if s.decimals == 0 {
		s.decimals = DefaultDecimals
	}

	for _, f := range cfg.Feeds {
		answer, err := uint256.FromDecimal(f.Answer)
		if err != nil {
			return nil, fmt.Errorf("feed %s: invalid answer %q: %w", f.ID, f.Answer, err)
		}

		decimals := f.Decimals
		if decimals == 0 {
			decimals = s.decimals
		}

		s.Register(f.ID, NewFixed(answer, decimals))
	}

	return s, nil
}

// Register bind a feed to an identifier, replacing any previous binding
func (s *Service) Register(feedID string, feed core.PriceFeed) {
	s.mu.Lock()
	s.feeds[feedID] = feed
	s.mu.Unlock()
}

// Feed find feed by identifier
func (s *Service) Feed(ctx context.Context, feedID string) (core.PriceFeed, error) {
	s.mu.RLock()
	feed, ok := s.feeds[feedID]
	s.mu.RUnlock()

	if ok {
		return feed, nil
	}

	if s.endpoint != "" {
		return NewTicker(s.endpoint, feedID, s.decimals), nil
	}

	return nil, fmt.Errorf("feed %s not found: %w", feedID, core.ErrOracleUnavailable)
}
