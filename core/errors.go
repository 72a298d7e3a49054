package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrUnauthorized caller is not the owner
	ErrUnauthorized ErrorCode = 100001
	// ErrInvalidArgument invalid argument
	ErrInvalidArgument ErrorCode = 100002

	// ErrNotAllowed asset has no registered price feed
	ErrNotAllowed ErrorCode = 100100
	// ErrZeroAmount amount must be greater than zero
	ErrZeroAmount ErrorCode = 100101
	// ErrInsufficientBalance deposit or pool balance too low
	ErrInsufficientBalance ErrorCode = 100102
	// ErrRepayExceedsDebt repay amount greater than borrowed
	ErrRepayExceedsDebt ErrorCode = 100103
	// ErrUnsafeHealthFactor health factor would drop below the minimum
	ErrUnsafeHealthFactor ErrorCode = 100104
	// ErrOracleUnavailable price feed can not provide a price
	ErrOracleUnavailable ErrorCode = 100105
	// ErrArithmeticOverflow fixed-point overflow
	ErrArithmeticOverflow ErrorCode = 100106
)

var errorMessages = map[ErrorCode]string{
	ErrUnknown:             "unknown",
	ErrUnauthorized:        "unauthorized",
	ErrInvalidArgument:     "invalid argument",
	ErrNotAllowed:          "token not allowed",
	ErrZeroAmount:          "amount must be greater than zero",
	ErrInsufficientBalance: "insufficient balance",
	ErrRepayExceedsDebt:    "repay exceeds debt",
	ErrUnsafeHealthFactor:  "unsafe health factor",
	ErrOracleUnavailable:   "oracle unavailable",
	ErrArithmeticOverflow:  "arithmetic overflow",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return e.String()
}
