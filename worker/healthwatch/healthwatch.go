package healthwatch

import (
	"context"
	"sync/atomic"
	"time"

	"lending/core"
	"lending/internal/lending"
	"lending/pkg/metrics"
	"lending/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/yiplee/structs"
	"golang.org/x/sync/errgroup"
)

// DefaultSpec check every minute
const DefaultSpec = "@every 1m"

const concurrency = 8

// Worker values every borrower and stores a health snapshot, liquidation is left to others
type Worker struct {
	worker.BaseJob
	ledgers   core.ILedgerStore
	valuation core.IValuationService
	accounts  core.IAccountStore
}

// New new health watch worker
func New(spec string, ledgers core.ILedgerStore, valuation core.IValuationService, accounts core.IAccountStore) *Worker {
	if spec == "" {
		spec = DefaultSpec
	}

	w := &Worker{
		ledgers:   ledgers,
		valuation: valuation,
		accounts:  accounts,
	}

	w.BaseJob = worker.BaseJob{
		Name:   "healthwatch",
		Spec:   spec,
		OnWork: w.onWork,
	}

	return w
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	users, err := w.ledgers.Borrowers(ctx)
	if err != nil {
		log.WithError(err).Errorln("ledgers.Borrowers")
		return err
	}

	var unsafe int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, userID := range users {
		userID := userID
		g.Go(func() error {
			snapshot, err := w.check(ctx, userID)
			if err != nil {
				// one broken feed must not hide the other borrowers
				log.WithError(err).WithField("user", userID).Warnln("check health")
				return nil
			}

			if snapshot.Unsafe {
				atomic.AddInt64(&unsafe, 1)
				log.WithFields(structs.Map(snapshot)).Warnln("unsafe account")
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	metrics.UnsafeAccounts.Set(float64(unsafe))
	log.WithField("borrowers", len(users)).WithField("unsafe", unsafe).Debugln("health checked")
	return nil
}

func (w *Worker) check(ctx context.Context, userID string) (*core.HealthSnapshot, error) {
	info, err := w.valuation.AccountInformation(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshot := &core.HealthSnapshot{
		UserID:       userID,
		HealthFactor: info.HealthFactor.Dec(),
		Unsafe:       !lending.IsHealthy(info.HealthFactor),
		CheckedAt:    time.Now(),
	}

	if err := w.accounts.SaveHealth(ctx, snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}
