package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"lending/core"
	"lending/store/event"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnWork(t *testing.T) {
	ctx := context.Background()
	events := event.NewMemory()
	events.Append(core.NewAllowedTokenSetEvent("t1", "TKN", "fixed"))
	events.Append(core.NewBalanceEvent("t2", core.EventDeposit, "alice", "TKN", uint256.NewInt(110)))
	events.Append(core.NewBalanceEvent("t3", core.EventWithdraw, "alice", "TKN", uint256.NewInt(10)))

	var (
		mu        sync.Mutex
		received  []payload
		requestID []string
		fail      = true
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		var p payload
		require.Nil(t, json.NewDecoder(r.Body).Decode(&p))

		// the first withdraw delivery fails
		if p.Name == core.EventWithdraw && fail {
			fail = false
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		received = append(received, p)
		requestID = append(requestID, r.Header.Get("X-Request-Id"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	checkpoint := MemoryCheckpoint()
	w := New("", events, checkpoint, Webhook(srv.URL))
	assert.Equal(t, DefaultSpec, w.Spec)

	assert.NotNil(t, w.onWork(ctx))
	offset, _ := checkpoint.Load(ctx)
	assert.EqualValues(t, 2, offset)

	require.Nil(t, w.onWork(ctx))
	offset, _ = checkpoint.Load(ctx)
	assert.EqualValues(t, 3, offset)

	// nothing new
	require.Nil(t, w.onWork(ctx))

	require.Len(t, received, 3)
	assert.Equal(t, core.EventAllowedTokenSet, received[0].Name)
	assert.Equal(t, "110", received[1].Amount)
	assert.Equal(t, "alice", received[2].UserID)
	assert.Equal(t, []string{"t1", "t2", "t3"}, requestID)
}
