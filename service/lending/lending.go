package lending

import (
	"context"
	"errors"
	"sync"

	"lending/core"
	"lending/internal/lending"
	"lending/pkg/id"
	"lending/pkg/metrics"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

// New new lending service
func New(
	cfg *core.Config,
	assetStore core.IAssetStore,
	ledgerStore core.ILedgerStore,
	valuation core.IValuationService,
) core.ILendingService {
	return &service{
		config:      cfg,
		assetStore:  assetStore,
		ledgerStore: ledgerStore,
		valuation:   valuation,
	}
}

type service struct {
	config      *core.Config
	assetStore  core.IAssetStore
	ledgerStore core.ILedgerStore
	valuation   core.IValuationService

	// mu serializes every state change, queries never take it
	mu sync.Mutex
}

func (s *service) Owner() string {
	return s.config.App.Owner
}

func (s *service) SetAllowedToken(ctx context.Context, caller, assetID, priceFeed string) (event *core.Event, err error) {
	defer func() { observe(string(core.EventAllowedTokenSet), err) }()

	if !s.config.IsOwner(caller) {
		return nil, core.ErrUnauthorized
	}

	if assetID == "" || priceFeed == "" {
		return nil, core.ErrInvalidArgument
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	token := &core.AllowedToken{
		AssetID:   assetID,
		PriceFeed: priceFeed,
	}

	event = core.NewAllowedTokenSetEvent(id.GenTraceID(), assetID, priceFeed)
	if err := s.assetStore.Save(ctx, token, event); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("save allowed token")
		return nil, err
	}

	logger.FromContext(ctx).WithFields(map[string]interface{}{
		"asset":      assetID,
		"price_feed": priceFeed,
		"event":      event.ID,
	}).Infoln("allowed token set")

	return event, nil
}

func (s *service) PriceFeedOf(ctx context.Context, assetID string) (string, error) {
	token, err := s.assetStore.Find(ctx, assetID)
	if err != nil {
		return "", err
	}

	return token.PriceFeed, nil
}

func (s *service) AllowedTokens(ctx context.Context) ([]*core.AllowedToken, error) {
	return s.assetStore.All(ctx)
}

func (s *service) Deposit(ctx context.Context, userID, assetID string, amount *uint256.Int) (*core.Event, error) {
	return s.apply(ctx, depositOp, userID, assetID, amount)
}

func (s *service) Withdraw(ctx context.Context, userID, assetID string, amount *uint256.Int) (*core.Event, error) {
	return s.apply(ctx, withdrawOp, userID, assetID, amount)
}

func (s *service) Borrow(ctx context.Context, userID, assetID string, amount *uint256.Int) (*core.Event, error) {
	return s.apply(ctx, borrowOp, userID, assetID, amount)
}

func (s *service) Repay(ctx context.Context, userID, assetID string, amount *uint256.Int) (*core.Event, error) {
	return s.apply(ctx, repayOp, userID, assetID, amount)
}

func (s *service) apply(ctx context.Context, op operation, userID, assetID string, amount *uint256.Int) (event *core.Event, err error) {
	defer func() { observe(string(op.name), err) }()

	log := logger.FromContext(ctx).WithFields(map[string]interface{}{
		"op":    op.name,
		"user":  userID,
		"asset": assetID,
	})

	if userID == "" || assetID == "" {
		return nil, core.ErrInvalidArgument
	}

	if amount == nil || amount.IsZero() {
		return nil, core.ErrZeroAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.assetStore.Find(ctx, assetID); err != nil {
		return nil, err
	}

	positions, err := s.ledgerStore.FindByUser(ctx, userID)
	if err != nil {
		log.WithError(err).Errorln("ledgerStore.FindByUser")
		return nil, err
	}

	idx := indexOf(positions, assetID)
	if idx < 0 {
		positions = append(positions, core.NewPosition(userID, assetID))
		idx = len(positions) - 1
	}

	tentative := positions[idx].Clone()
	if err := op.mutate(tentative, amount); err != nil {
		log.WithError(err).Debugln("rejected")
		return nil, err
	}

	if op.needsCash {
		totals, err := s.ledgerStore.Totals(ctx, assetID)
		if err != nil {
			log.WithError(err).Errorln("ledgerStore.Totals")
			return nil, err
		}

		if totals.Cash().Lt(amount) {
			log.Debugln("rejected, pool cash not enough")
			return nil, core.ErrInsufficientBalance
		}
	}

	if op.recheck {
		positions[idx] = tentative
		info, err := s.valuation.Evaluate(ctx, userID, positions)
		if err != nil {
			log.WithError(err).Debugln("evaluate")
			return nil, err
		}

		if !lending.IsHealthy(info.HealthFactor) {
			log.WithField("health_factor", info.HealthFactor.Dec()).Debugln("rejected, unsafe health factor")
			return nil, core.ErrUnsafeHealthFactor
		}
	}

	event = core.NewBalanceEvent(id.GenTraceID(), op.name, userID, assetID, amount)
	if err := s.ledgerStore.Commit(ctx, tentative, event); err != nil {
		log.WithError(err).Errorln("ledgerStore.Commit")
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"amount": amount.Dec(),
		"event":  event.ID,
	}).Infoln("committed")

	return event, nil
}

func (s *service) GetTokenBalance(ctx context.Context, caller, assetID string) (*uint256.Int, error) {
	position, err := s.ledgerStore.Find(ctx, caller, assetID)
	if err != nil {
		return nil, err
	}

	return position.Deposited, nil
}

func (s *service) BorrowedOf(ctx context.Context, userID, assetID string) (*uint256.Int, error) {
	position, err := s.ledgerStore.Find(ctx, userID, assetID)
	if err != nil {
		return nil, err
	}

	return position.Borrowed, nil
}

func (s *service) GetAccountInformation(ctx context.Context, userID string) (*core.AccountInfo, error) {
	return s.valuation.AccountInformation(ctx, userID)
}

func (s *service) GetAccountCollateralValue(ctx context.Context, userID string) (*uint256.Int, error) {
	return s.valuation.CollateralValue(ctx, userID)
}

func (s *service) GetAccountBorrowedValue(ctx context.Context, userID string) (*uint256.Int, error) {
	return s.valuation.BorrowedValue(ctx, userID)
}

func (s *service) HealthFactor(ctx context.Context, userID string) (*uint256.Int, error) {
	return s.valuation.HealthFactor(ctx, userID)
}

func indexOf(positions []*core.Position, assetID string) int {
	for i, p := range positions {
		if p.AssetID == assetID {
			return i
		}
	}

	return -1
}

func observe(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		var code core.ErrorCode
		if errors.As(err, &code) {
			result = code.String()
		}
	}

	metrics.ObserveOperation(op, result)
}
