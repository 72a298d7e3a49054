package oracle

import (
	"context"
	"fmt"
	"strings"

	"lending/core"
	"lending/pkg/number"
	"lending/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
)

// Ticker price feed backed by the price oracle end point
type Ticker struct {
	endpoint string
	feedID   string
	decimals uint8
}

// NewTicker new ticker feed, prices are scaled to decimals
func NewTicker(endpoint, feedID string, decimals uint8) *Ticker {
	return &Ticker{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		feedID:   feedID,
		decimals: decimals,
	}
}

// CurrentPrice pull the latest ticker
func (t *Ticker) CurrentPrice(ctx context.Context) (*core.Price, error) {
	log := logger.FromContext(ctx).WithField("feed", t.feedID)

	url := fmt.Sprintf("%s/api/v2/tickers/%s", t.endpoint, t.feedID)
	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		log.WithError(err).Errorln("pull price ticker")
		return nil, fmt.Errorf("pull price ticker %s: %v: %w", t.feedID, err, core.ErrOracleUnavailable)
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		log.WithError(err).Errorln("parse price ticker")
		return nil, fmt.Errorf("parse price ticker %s: %v: %w", t.feedID, err, core.ErrOracleUnavailable)
	}

	if !ticker.Price.IsPositive() {
		log.Errorln("invalid ticker price:", ticker.Price)
		return nil, fmt.Errorf("invalid ticker price %s: %w", ticker.Price, core.ErrOracleUnavailable)
	}

	answer, err := number.FromDecimal(ticker.Price.Shift(int32(t.decimals)))
	if err != nil {
		return nil, fmt.Errorf("scale ticker price %s: %v: %w", ticker.Price, err, core.ErrOracleUnavailable)
	}

	return &core.Price{
		Answer:   answer,
		Decimals: t.decimals,
	}, nil
}
