package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"lending/core"
	"lending/store/event"

	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *db.DB {
	database := db.MustOpen(db.Config{
		Dialect: "sqlite3",
		Host:    filepath.Join(t.TempDir(), "lending.db"),
	})
	t.Cleanup(func() { _ = database.Close() })

	require.Nil(t, db.Migrate(database))
	return database
}

func TestCommit(t *testing.T) {
	ctx := context.Background()
	database := openDB(t)
	s := New(database)
	events := event.New(database)

	user, asset := uuid.New(), uuid.New()
	p, err := s.Find(ctx, user, asset)
	require.Nil(t, err)
	require.Nil(t, p.CreditDeposit(uint256.NewInt(100)))
	require.Nil(t, s.Commit(ctx, p, core.NewBalanceEvent(uuid.New(), core.EventDeposit, user, asset, uint256.NewInt(100))))
	assert.Equal(t, int64(1), p.Version)

	require.Nil(t, p.CreditBorrow(uint256.NewInt(40)))
	require.Nil(t, s.Commit(ctx, p, core.NewBalanceEvent(uuid.New(), core.EventBorrow, user, asset, uint256.NewInt(40))))
	assert.Equal(t, int64(2), p.Version)

	stored, err := s.Find(ctx, user, asset)
	require.Nil(t, err)
	assert.Equal(t, uint64(100), stored.Deposited.Uint64())
	assert.Equal(t, uint64(40), stored.Borrowed.Uint64())

	logged, err := events.List(ctx, 0, 10)
	require.Nil(t, err)
	assert.Len(t, logged, 2)
}

func TestCommitStaleVersion(t *testing.T) {
	ctx := context.Background()
	database := openDB(t)
	s := New(database)
	events := event.New(database)

	user, asset := uuid.New(), uuid.New()
	p, _ := s.Find(ctx, user, asset)
	require.Nil(t, p.CreditDeposit(uint256.NewInt(100)))
	require.Nil(t, s.Commit(ctx, p, core.NewBalanceEvent(uuid.New(), core.EventDeposit, user, asset, uint256.NewInt(100))))

	// a position read before the row existed
	stale := core.NewPosition(user, asset)
	require.Nil(t, stale.CreditDeposit(uint256.NewInt(1)))
	err := s.Commit(ctx, stale, core.NewBalanceEvent(uuid.New(), core.EventDeposit, user, asset, uint256.NewInt(1)))
	assert.ErrorIs(t, err, db.ErrOptimisticLock)

	// an outdated version
	outdated := p.Clone()
	require.Nil(t, p.CreditDeposit(uint256.NewInt(10)))
	require.Nil(t, s.Commit(ctx, p, core.NewBalanceEvent(uuid.New(), core.EventDeposit, user, asset, uint256.NewInt(10))))

	require.Nil(t, outdated.CreditDeposit(uint256.NewInt(1)))
	err = s.Commit(ctx, outdated, core.NewBalanceEvent(uuid.New(), core.EventDeposit, user, asset, uint256.NewInt(1)))
	assert.ErrorIs(t, err, db.ErrOptimisticLock)

	stored, _ := s.Find(ctx, user, asset)
	assert.Equal(t, uint64(110), stored.Deposited.Uint64())

	logged, _ := events.List(ctx, 0, 10)
	assert.Len(t, logged, 2)
}
