package event

import (
	"context"
	"testing"

	"lending/core"

	"github.com/fox-one/pkg/uuid"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryList(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	asset := uuid.New()
	m.Append(core.NewAllowedTokenSetEvent(uuid.New(), asset, "feed"))
	for i := 0; i < 4; i++ {
		m.Append(core.NewBalanceEvent(uuid.New(), core.EventDeposit, "u", asset, uint256.NewInt(uint64(i+1))))
	}

	events, err := m.List(ctx, 0, 10)
	require.Nil(t, err)
	require.Len(t, events, 5)
	assert.Equal(t, core.EventAllowedTokenSet, events[0].Name)
	assert.Equal(t, int64(1), events[0].ID)

	events, _ = m.List(ctx, 2, 2)
	require.Len(t, events, 2)
	assert.Equal(t, int64(3), events[0].ID)
	assert.Equal(t, int64(4), events[1].ID)

	events, _ = m.List(ctx, 5, 10)
	assert.Len(t, events, 0)
}
