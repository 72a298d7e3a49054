package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	for _, c := range []struct {
		err    error
		status int
		code   int
	}{
		{core.ErrUnauthorized, http.StatusUnauthorized, 100001},
		{fmt.Errorf("asset x: %w", core.ErrOracleUnavailable), http.StatusServiceUnavailable, 100105},
		{core.ErrUnsafeHealthFactor, http.StatusUnprocessableEntity, 100104},
		{core.ErrNotAllowed, http.StatusForbidden, 100100},
		{db.ErrOptimisticLock, http.StatusConflict, 100000},
		{errors.New("boom"), http.StatusInternalServerError, 100000},
	} {
		w := httptest.NewRecorder()
		Error(w, c.err)
		assert.Equal(t, c.status, w.Code, c.err.Error())

		var resp errorResponse
		require.Nil(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, c.code, resp.Code)
	}
}

func TestBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	BadRequest(w, errors.New("amount: non zero value required"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int(core.ErrInvalidArgument), resp.Code)
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, H{"a": 1})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"a":1}}`, w.Body.String())
}
