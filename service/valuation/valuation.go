package valuation

import (
	"context"
	"errors"
	"fmt"

	"lending/core"
	"lending/internal/lending"
	"lending/pkg/number"

	"github.com/holiman/uint256"
)

type service struct {
	ledgerStore core.ILedgerStore
	assetStore  core.IAssetStore
	oracles     core.IOracleService
	threshold   uint64
}

// New new valuation service
func New(
	ledgerStore core.ILedgerStore,
	assetStore core.IAssetStore,
	oracles core.IOracleService,
	threshold uint64,
) core.IValuationService {
	return &service{
		ledgerStore: ledgerStore,
		assetStore:  assetStore,
		oracles:     oracles,
		threshold:   threshold,
	}
}

func (s *service) CollateralValue(ctx context.Context, userID string) (*uint256.Int, error) {
	positions, err := s.ledgerStore.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.newQuote().sum(ctx, positions, deposited)
}

func (s *service) BorrowedValue(ctx context.Context, userID string) (*uint256.Int, error) {
	positions, err := s.ledgerStore.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.newQuote().sum(ctx, positions, borrowed)
}

func (s *service) HealthFactor(ctx context.Context, userID string) (*uint256.Int, error) {
	info, err := s.AccountInformation(ctx, userID)
	if err != nil {
		return nil, err
	}

	return info.HealthFactor, nil
}

func (s *service) AccountInformation(ctx context.Context, userID string) (*core.AccountInfo, error) {
	positions, err := s.ledgerStore.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.Evaluate(ctx, userID, positions)
}

// Evaluate all prices are fetched once per call and shared by both sides
func (s *service) Evaluate(ctx context.Context, userID string, positions []*core.Position) (*core.AccountInfo, error) {
	q := s.newQuote()

	collateral, err := q.sum(ctx, positions, deposited)
	if err != nil {
		return nil, err
	}

	debt, err := q.sum(ctx, positions, borrowed)
	if err != nil {
		return nil, err
	}

	hf, err := lending.HealthFactor(collateral, debt, s.threshold)
	if err != nil {
		return nil, err
	}

	return &core.AccountInfo{
		UserID:          userID,
		CollateralValue: collateral,
		BorrowedValue:   debt,
		HealthFactor:    hf,
	}, nil
}

func deposited(p *core.Position) *uint256.Int { return p.Deposited }

func borrowed(p *core.Position) *uint256.Int { return p.Borrowed }

// quote prices of one valuation
type quote struct {
	*service
	prices map[string]*core.Price
}

func (s *service) newQuote() *quote {
	return &quote{
		service: s,
		prices:  make(map[string]*core.Price),
	}
}

func (q *quote) sum(ctx context.Context, positions []*core.Position, side func(*core.Position) *uint256.Int) (*uint256.Int, error) {
	total := number.Zero()
	for _, p := range positions {
		quantity := side(p)
		if quantity.IsZero() {
			continue
		}

		price, err := q.price(ctx, p.AssetID)
		if err != nil {
			return nil, err
		}

		value, err := lending.Value(quantity, price)
		if err != nil {
			return nil, err
		}

		var ok bool
		if total, ok = number.Add(total, value); !ok {
			return nil, core.ErrArithmeticOverflow
		}
	}

	return total, nil
}

func (q *quote) price(ctx context.Context, assetID string) (*core.Price, error) {
	if price, ok := q.prices[assetID]; ok {
		return price, nil
	}

	token, err := q.assetStore.Find(ctx, assetID)
	if err != nil {
		return nil, err
	}

	feed, err := q.oracles.Feed(ctx, token.PriceFeed)
	if err != nil {
		return nil, oracleUnavailable(assetID, err)
	}

	price, err := feed.CurrentPrice(ctx)
	if err != nil {
		return nil, oracleUnavailable(assetID, err)
	}

	if price == nil || price.Answer == nil || price.Answer.IsZero() {
		return nil, fmt.Errorf("asset %s: zero price: %w", assetID, core.ErrOracleUnavailable)
	}

	q.prices[assetID] = price
	return price, nil
}

func oracleUnavailable(assetID string, err error) error {
	if errors.Is(err, core.ErrOracleUnavailable) {
		return err
	}

	return fmt.Errorf("asset %s: %v: %w", assetID, err, core.ErrOracleUnavailable)
}
