package lending

import (
	"context"
	"sync"
	"testing"

	"lending/core"
	"lending/internal/lending"
	"lending/pkg/number"
	"lending/service/oracle"
	"lending/service/valuation"
	"lending/store/asset"
	"lending/store/event"
	"lending/store/ledger"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const owner = "owner"

func units(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), number.Pow10(18))
}

type fixture struct {
	lending core.ILendingService
	events  *event.Memory
	feed    *oracle.Fixed
}

func newFixture(t *testing.T) *fixture {
	cfg := &core.Config{
		App: core.App{
			Owner:                owner,
			LiquidationThreshold: lending.DefaultLiquidationThreshold,
		},
	}

	events := event.NewMemory()
	assets := asset.Memory(events)
	ledgers := ledger.Memory(events)

	oracles, err := oracle.New(core.PriceOracle{
		Feeds: []core.FixedFeed{
			{ID: "usd", Answer: "1000000000000000000", Decimals: 18},
		},
	})
	require.Nil(t, err)

	feed := oracle.NewFixed(units(2), 18)
	oracles.Register("fixed-2", feed)
	// answer 2 at 18 decimals, the reference aggregator setup
	oracles.Register("mock-2", oracle.NewFixed(uint256.NewInt(2), 18))

	return &fixture{
		lending: New(cfg, assets, ledgers, valuation.New(ledgers, assets, oracles, cfg.App.LiquidationThreshold)),
		events:  events,
		feed:    feed,
	}
}

func (f *fixture) allow(t *testing.T, assetID, feedID string) {
	_, err := f.lending.SetAllowedToken(context.Background(), owner, assetID, feedID)
	require.Nil(t, err)
}

func (f *fixture) eventNames(t *testing.T) []core.EventName {
	events, err := f.events.List(context.Background(), 0, 100)
	require.Nil(t, err)

	names := make([]core.EventName, 0, len(events))
	for _, e := range events {
		names = append(names, e.Name)
	}

	return names
}

func TestScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.allow(t, "TKN", "fixed-2")

	feed, err := f.lending.PriceFeedOf(ctx, "TKN")
	require.Nil(t, err)
	assert.Equal(t, "fixed-2", feed)

	_, err = f.lending.Deposit(ctx, "alice", "TKN", units(110))
	require.Nil(t, err)

	_, err = f.lending.Withdraw(ctx, "alice", "TKN", units(10))
	require.Nil(t, err)

	balance, err := f.lending.GetTokenBalance(ctx, "alice", "TKN")
	require.Nil(t, err)
	assert.Equal(t, units(100).Dec(), balance.Dec())

	_, err = f.lending.Borrow(ctx, "alice", "TKN", units(20))
	require.Nil(t, err)

	info, err := f.lending.GetAccountInformation(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, units(200).Dec(), info.CollateralValue.Dec())
	assert.Equal(t, units(40).Dec(), info.BorrowedValue.Dec())
	assert.Equal(t, "1500000000000000000", info.HealthFactor.Dec())

	collateral, err := f.lending.GetAccountCollateralValue(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, units(200).Dec(), collateral.Dec())

	borrowedValue, err := f.lending.GetAccountBorrowedValue(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, units(40).Dec(), borrowedValue.Dec())

	hf, err := f.lending.HealthFactor(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, info.HealthFactor.Dec(), hf.Dec())

	borrowed, err := f.lending.BorrowedOf(ctx, "alice", "TKN")
	require.Nil(t, err)
	assert.Equal(t, units(20).Dec(), borrowed.Dec())

	e, err := f.lending.Repay(ctx, "alice", "TKN", units(10))
	require.Nil(t, err)
	assert.Equal(t, core.EventRepay, e.Name)
	assert.Equal(t, units(10).Dec(), e.Amount.Dec())

	borrowed, err = f.lending.BorrowedOf(ctx, "alice", "TKN")
	require.Nil(t, err)
	assert.Equal(t, units(10).Dec(), borrowed.Dec())

	assert.Equal(t, []core.EventName{
		core.EventAllowedTokenSet,
		core.EventDeposit,
		core.EventWithdraw,
		core.EventBorrow,
		core.EventRepay,
	}, f.eventNames(t))
}

func TestScenarioRawAnswer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.allow(t, "TKN", "mock-2")

	_, err := f.lending.Deposit(ctx, "alice", "TKN", units(110))
	require.Nil(t, err)
	_, err = f.lending.Withdraw(ctx, "alice", "TKN", units(10))
	require.Nil(t, err)
	_, err = f.lending.Borrow(ctx, "alice", "TKN", units(20))
	require.Nil(t, err)

	collateral, err := f.lending.GetAccountCollateralValue(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, "200", collateral.Dec())

	borrowed, err := f.lending.GetAccountBorrowedValue(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, "40", borrowed.Dec())

	hf, err := f.lending.HealthFactor(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, "1500000000000000000", hf.Dec())
}

func TestHealthFactorMonotonic(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.allow(t, "TKN", "fixed-2")
	f.allow(t, "USD", "usd")

	healthFactor := func() *uint256.Int {
		hf, err := f.lending.HealthFactor(ctx, "alice")
		require.Nil(t, err)
		return hf
	}

	_, err := f.lending.Deposit(ctx, "bob", "USD", units(1000))
	require.Nil(t, err)

	// without debt a deposit keeps the maximum
	_, err = f.lending.Deposit(ctx, "alice", "TKN", units(100))
	require.Nil(t, err)
	assert.True(t, lending.IsMax(healthFactor()))

	_, err = f.lending.Borrow(ctx, "alice", "TKN", units(20))
	require.Nil(t, err)

	steps := []struct {
		action func(context.Context, string, string, *uint256.Int) (*core.Event, error)
		asset  string
		amount *uint256.Int
		higher bool
	}{
		{f.lending.Deposit, "TKN", units(10), true},
		{f.lending.Deposit, "USD", units(1), true},
		{f.lending.Borrow, "TKN", units(5), false},
		{f.lending.Borrow, "USD", units(3), false},
		{f.lending.Deposit, "TKN", uint256.NewInt(1), true},
		{f.lending.Borrow, "USD", uint256.NewInt(1), false},
	}

	for _, step := range steps {
		before := healthFactor()
		_, err := step.action(ctx, "alice", step.asset, step.amount)
		require.Nil(t, err)
		after := healthFactor()

		if step.higher {
			assert.False(t, after.Lt(before), "deposit lowered %s to %s", before.Dec(), after.Dec())
		} else {
			assert.False(t, after.Gt(before), "borrow raised %s to %s", before.Dec(), after.Dec())
		}
	}
}

func TestRoundTrips(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.allow(t, "TKN", "fixed-2")

	amount := new(uint256.Int).AddUint64(units(7), 3)

	_, err := f.lending.Deposit(ctx, "alice", "TKN", amount)
	require.Nil(t, err)
	_, err = f.lending.Withdraw(ctx, "alice", "TKN", amount)
	require.Nil(t, err)

	balance, err := f.lending.GetTokenBalance(ctx, "alice", "TKN")
	require.Nil(t, err)
	assert.True(t, balance.IsZero())

	_, err = f.lending.Deposit(ctx, "bob", "TKN", units(100))
	require.Nil(t, err)
	_, err = f.lending.Borrow(ctx, "bob", "TKN", amount)
	require.Nil(t, err)

	over := new(uint256.Int).AddUint64(amount, 1)
	_, err = f.lending.Repay(ctx, "bob", "TKN", over)
	assert.ErrorIs(t, err, core.ErrRepayExceedsDebt)

	borrowed, err := f.lending.BorrowedOf(ctx, "bob", "TKN")
	require.Nil(t, err)
	assert.Equal(t, amount.Dec(), borrowed.Dec())

	_, err = f.lending.Repay(ctx, "bob", "TKN", amount)
	require.Nil(t, err)

	borrowed, err = f.lending.BorrowedOf(ctx, "bob", "TKN")
	require.Nil(t, err)
	assert.True(t, borrowed.IsZero())

	hf, err := f.lending.HealthFactor(ctx, "bob")
	require.Nil(t, err)
	assert.True(t, lending.IsMax(hf))

	balance, err = f.lending.GetTokenBalance(ctx, "bob", "TKN")
	require.Nil(t, err)
	assert.Equal(t, units(100).Dec(), balance.Dec())
}

func TestSetAllowedToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.Equal(t, owner, f.lending.Owner())

	_, err := f.lending.SetAllowedToken(ctx, "mallory", "TKN", "fixed-2")
	assert.ErrorIs(t, err, core.ErrUnauthorized)

	_, err = f.lending.SetAllowedToken(ctx, owner, "", "fixed-2")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = f.lending.PriceFeedOf(ctx, "TKN")
	assert.ErrorIs(t, err, core.ErrNotAllowed)

	e, err := f.lending.SetAllowedToken(ctx, owner, "TKN", "fixed-2")
	require.Nil(t, err)
	assert.Equal(t, core.EventAllowedTokenSet, e.Name)
	assert.Equal(t, "fixed-2", e.PriceFeed)

	// re-registering replaces the mapping
	_, err = f.lending.SetAllowedToken(ctx, owner, "TKN", "usd")
	require.Nil(t, err)

	feed, err := f.lending.PriceFeedOf(ctx, "TKN")
	require.Nil(t, err)
	assert.Equal(t, "usd", feed)

	tokens, err := f.lending.AllowedTokens(ctx)
	require.Nil(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "usd", tokens[0].PriceFeed)

	assert.Equal(t, []core.EventName{core.EventAllowedTokenSet, core.EventAllowedTokenSet}, f.eventNames(t))
}

func TestRejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.allow(t, "TKN", "fixed-2")

	for _, op := range []func(context.Context, string, string, *uint256.Int) (*core.Event, error){
		f.lending.Deposit,
		f.lending.Withdraw,
		f.lending.Borrow,
		f.lending.Repay,
	} {
		_, err := op(ctx, "alice", "TKN", number.Zero())
		assert.ErrorIs(t, err, core.ErrZeroAmount)

		_, err = op(ctx, "alice", "TKN", nil)
		assert.ErrorIs(t, err, core.ErrZeroAmount)

		_, err = op(ctx, "alice", "UNKNOWN", units(1))
		assert.ErrorIs(t, err, core.ErrNotAllowed)
	}

	_, err := f.lending.Withdraw(ctx, "alice", "TKN", units(1))
	assert.ErrorIs(t, err, core.ErrInsufficientBalance)

	_, err = f.lending.Repay(ctx, "alice", "TKN", units(1))
	assert.ErrorIs(t, err, core.ErrRepayExceedsDebt)

	// rejected operations leave no trace
	assert.Equal(t, []core.EventName{core.EventAllowedTokenSet}, f.eventNames(t))
}

func TestHealthFactorBoundary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.allow(t, "TKN", "fixed-2")

	_, err := f.lending.Deposit(ctx, "alice", "TKN", units(100))
	require.Nil(t, err)

	// 100 * 2 * 30% = 60 of borrowing power, 31 * 2 = 62
	_, err = f.lending.Borrow(ctx, "alice", "TKN", units(31))
	assert.ErrorIs(t, err, core.ErrUnsafeHealthFactor)

	borrowed, err := f.lending.BorrowedOf(ctx, "alice", "TKN")
	require.Nil(t, err)
	assert.True(t, borrowed.IsZero())

	// exactly 1.0 is still safe
	_, err = f.lending.Borrow(ctx, "alice", "TKN", units(30))
	require.Nil(t, err)

	hf, err := f.lending.HealthFactor(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, lending.MinHealthFactor.Dec(), hf.Dec())

	_, err = f.lending.Withdraw(ctx, "alice", "TKN", uint256.NewInt(1))
	assert.ErrorIs(t, err, core.ErrUnsafeHealthFactor)

	balance, err := f.lending.GetTokenBalance(ctx, "alice", "TKN")
	require.Nil(t, err)
	assert.Equal(t, units(100).Dec(), balance.Dec())

	// repaying restores room to withdraw
	_, err = f.lending.Repay(ctx, "alice", "TKN", units(30))
	require.Nil(t, err)

	_, err = f.lending.Withdraw(ctx, "alice", "TKN", units(100))
	require.Nil(t, err)

	hf, err = f.lending.HealthFactor(ctx, "alice")
	require.Nil(t, err)
	assert.True(t, lending.IsMax(hf))
}

func TestHealthFactorFollowsPrice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.allow(t, "TKN", "fixed-2")

	_, err := f.lending.Deposit(ctx, "alice", "TKN", units(100))
	require.Nil(t, err)
	_, err = f.lending.Borrow(ctx, "alice", "TKN", units(20))
	require.Nil(t, err)

	// collateral and debt share one price, the ratio holds
	f.feed.UpdateAnswer(units(1))
	hf, err := f.lending.HealthFactor(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, "1500000000000000000", hf.Dec())
}

func TestCrossAssetBorrow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.allow(t, "TKN", "fixed-2")
	f.allow(t, "USD", "usd")

	_, err := f.lending.Deposit(ctx, "alice", "TKN", units(100))
	require.Nil(t, err)

	// nobody supplied USD yet
	_, err = f.lending.Borrow(ctx, "alice", "USD", units(10))
	assert.ErrorIs(t, err, core.ErrInsufficientBalance)

	_, err = f.lending.Deposit(ctx, "bob", "USD", units(1000))
	require.Nil(t, err)

	_, err = f.lending.Borrow(ctx, "alice", "USD", units(60))
	require.Nil(t, err)

	_, err = f.lending.Borrow(ctx, "alice", "USD", uint256.NewInt(1))
	assert.ErrorIs(t, err, core.ErrUnsafeHealthFactor)

	// bob can not withdraw what alice borrowed
	_, err = f.lending.Withdraw(ctx, "bob", "USD", units(1000))
	assert.ErrorIs(t, err, core.ErrInsufficientBalance)

	_, err = f.lending.Withdraw(ctx, "bob", "USD", units(940))
	require.Nil(t, err)
}

func TestOracleUnavailable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.allow(t, "DEAD", "missing")

	// deposits never need a price
	_, err := f.lending.Deposit(ctx, "alice", "DEAD", units(10))
	require.Nil(t, err)

	_, err = f.lending.Withdraw(ctx, "alice", "DEAD", units(1))
	assert.ErrorIs(t, err, core.ErrOracleUnavailable)

	_, err = f.lending.GetAccountInformation(ctx, "alice")
	assert.ErrorIs(t, err, core.ErrOracleUnavailable)
}

func TestConcurrentDeposits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.allow(t, "TKN", "fixed-2")

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.lending.Deposit(ctx, "alice", "TKN", units(1))
			assert.Nil(t, err)
		}()
	}
	wg.Wait()

	balance, err := f.lending.GetTokenBalance(ctx, "alice", "TKN")
	require.Nil(t, err)
	assert.Equal(t, units(n).Dec(), balance.Dec())
	assert.Len(t, f.eventNames(t), n+1)
}
