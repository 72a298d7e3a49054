package render

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/sirupsen/logrus"
)

// ResponseErrorMessageAsHint internal error msg as hint
var ResponseErrorMessageAsHint bool

func init() {
	v := os.Getenv("RESPONSE_ERROR_MESSAGE_AS_HINT")
	ResponseErrorMessageAsHint, _ = strconv.ParseBool(v)
}

type errorResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Hint string `json:"hint,omitempty"`
}

var statusCodes = map[core.ErrorCode]int{
	core.ErrUnknown:             http.StatusInternalServerError,
	core.ErrUnauthorized:        http.StatusUnauthorized,
	core.ErrInvalidArgument:     http.StatusBadRequest,
	core.ErrZeroAmount:          http.StatusBadRequest,
	core.ErrNotAllowed:          http.StatusForbidden,
	core.ErrInsufficientBalance: http.StatusUnprocessableEntity,
	core.ErrRepayExceedsDebt:    http.StatusUnprocessableEntity,
	core.ErrUnsafeHealthFactor:  http.StatusUnprocessableEntity,
	core.ErrOracleUnavailable:   http.StatusServiceUnavailable,
	core.ErrArithmeticOverflow:  http.StatusUnprocessableEntity,
}

// Error write err, error codes are mapped to their http status
func Error(w http.ResponseWriter, err error) {
	code := core.ErrUnknown
	status := http.StatusInternalServerError

	var ec core.ErrorCode
	switch {
	case errors.As(err, &ec):
		code = ec
		if s, ok := statusCodes[ec]; ok {
			status = s
		}
	case errors.Is(err, db.ErrOptimisticLock):
		status = http.StatusConflict
	}

	resp := errorResponse{
		Code: int(code),
		Msg:  code.Error(),
	}

	if code == core.ErrUnknown {
		resp.Msg = http.StatusText(status)
		logrus.WithError(err).Errorln("internal error")
	}

	if ResponseErrorMessageAsHint && err.Error() != resp.Msg {
		resp.Hint = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logrus.WithError(err).Errorln("render error")
	}
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	if !errors.As(err, new(core.ErrorCode)) {
		err = &codeError{err: err, code: core.ErrInvalidArgument}
	}

	Error(w, err)
}

// NotFound not found error
func NotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code: http.StatusNotFound,
		Msg:  http.StatusText(http.StatusNotFound),
	})
}

type codeError struct {
	err  error
	code core.ErrorCode
}

func (e *codeError) Error() string { return e.err.Error() }

func (e *codeError) Unwrap() error { return e.code }
