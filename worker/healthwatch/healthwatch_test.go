package healthwatch

import (
	"context"
	"testing"

	"lending/core"
	"lending/internal/lending"
	"lending/service/oracle"
	"lending/service/valuation"
	"lending/store/account"
	"lending/store/asset"
	"lending/store/event"
	"lending/store/ledger"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnWork(t *testing.T) {
	ctx := context.Background()
	events := event.NewMemory()
	assets := asset.Memory(events)
	ledgers := ledger.Memory(events)
	accounts := account.Memory()

	oracles, err := oracle.New(core.PriceOracle{})
	require.Nil(t, err)

	feed := oracle.NewFixed(uint256.NewInt(2), 0)
	oracles.Register("fixed", feed)

	require.Nil(t, assets.Save(ctx, &core.AllowedToken{AssetID: "TKN", PriceFeed: "fixed"},
		core.NewAllowedTokenSetEvent("t1", "TKN", "fixed")))

	for _, p := range []struct {
		user                string
		deposited, borrowed uint64
	}{
		{"alice", 100, 20},
		{"bob", 100, 30},
		{"carol", 100, 0},
	} {
		position := core.NewPosition(p.user, "TKN")
		position.Deposited = uint256.NewInt(p.deposited)
		position.Borrowed = uint256.NewInt(p.borrowed)
		require.Nil(t, ledgers.Commit(ctx, position, core.NewBalanceEvent("t", core.EventDeposit, p.user, "TKN", position.Deposited)))
	}

	w := New("", ledgers, valuation.New(ledgers, assets, oracles, lending.DefaultLiquidationThreshold), accounts)
	assert.Equal(t, DefaultSpec, w.Spec)
	require.Nil(t, w.onWork(ctx))

	alice, err := accounts.FindHealth(ctx, "alice")
	require.Nil(t, err)
	require.NotNil(t, alice)
	assert.Equal(t, "1500000000000000000", alice.HealthFactor)
	assert.False(t, alice.Unsafe)

	carol, err := accounts.FindHealth(ctx, "carol")
	require.Nil(t, err)
	assert.Nil(t, carol)

	// exactly 1.0 is still safe
	bob, err := accounts.FindHealth(ctx, "bob")
	require.Nil(t, err)
	assert.Equal(t, lending.MinHealthFactor.Dec(), bob.HealthFactor)
	assert.False(t, bob.Unsafe)
}

func TestOnWorkUnsafe(t *testing.T) {
	ctx := context.Background()
	events := event.NewMemory()
	assets := asset.Memory(events)
	ledgers := ledger.Memory(events)
	accounts := account.Memory()

	oracles, err := oracle.New(core.PriceOracle{})
	require.Nil(t, err)

	collateral := oracle.NewFixed(uint256.NewInt(2), 0)
	debt := oracle.NewFixed(uint256.NewInt(1), 0)
	oracles.Register("collateral", collateral)
	oracles.Register("debt", debt)

	for assetID, feed := range map[string]string{"ETH": "collateral", "USD": "debt"} {
		require.Nil(t, assets.Save(ctx, &core.AllowedToken{AssetID: assetID, PriceFeed: feed},
			core.NewAllowedTokenSetEvent("t", assetID, feed)))
	}

	eth := core.NewPosition("alice", "ETH")
	eth.Deposited = uint256.NewInt(100)
	require.Nil(t, ledgers.Commit(ctx, eth, core.NewBalanceEvent("t", core.EventDeposit, "alice", "ETH", eth.Deposited)))

	usd := core.NewPosition("alice", "USD")
	usd.Borrowed = uint256.NewInt(50)
	require.Nil(t, ledgers.Commit(ctx, usd, core.NewBalanceEvent("t", core.EventBorrow, "alice", "USD", usd.Borrowed)))

	w := New("@every 1m", ledgers, valuation.New(ledgers, assets, oracles, lending.DefaultLiquidationThreshold), accounts)
	require.Nil(t, w.onWork(ctx))

	// 200 * 30% / 50 = 1.2
	snapshot, err := accounts.FindHealth(ctx, "alice")
	require.Nil(t, err)
	assert.False(t, snapshot.Unsafe)

	collateral.UpdateAnswer(uint256.NewInt(1))
	require.Nil(t, w.onWork(ctx))

	// 100 * 30% / 50 = 0.6
	snapshot, err = accounts.FindHealth(ctx, "alice")
	require.Nil(t, err)
	assert.True(t, snapshot.Unsafe)
	assert.Equal(t, "600000000000000000", snapshot.HealthFactor)
}
