package account

import (
	"context"
	"testing"
	"time"

	"lending/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryHealth(t *testing.T) {
	ctx := context.Background()
	s := Memory()

	snapshot, err := s.FindHealth(ctx, "user")
	require.Nil(t, err)
	assert.Nil(t, snapshot)

	require.Nil(t, s.SaveHealth(ctx, &core.HealthSnapshot{
		UserID:       "user",
		HealthFactor: "0.9",
		Unsafe:       true,
		CheckedAt:    time.Now(),
	}))

	snapshot, err = s.FindHealth(ctx, "user")
	require.Nil(t, err)
	require.NotNil(t, snapshot)
	assert.True(t, snapshot.Unsafe)
	assert.Equal(t, "0.9", snapshot.HealthFactor)
}
