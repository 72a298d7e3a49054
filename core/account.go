package core

import (
	"context"
	"time"

	"github.com/holiman/uint256"
)

// AccountInfo valued account of one user
type AccountInfo struct {
	UserID          string
	CollateralValue *uint256.Int
	BorrowedValue   *uint256.Int
	// HealthFactor scaled by 1e18
	HealthFactor *uint256.Int
}

// HealthSnapshot health factor computed by the health watcher
type HealthSnapshot struct {
	UserID       string    `json:"user_id"`
	HealthFactor string    `json:"health_factor"`
	Unsafe       bool      `json:"unsafe"`
	CheckedAt    time.Time `json:"checked_at"`
}

// IAccountStore health snapshot store interface
type IAccountStore interface {
	SaveHealth(ctx context.Context, snapshot *HealthSnapshot) error
	// FindHealth returns nil, nil if no snapshot was taken yet
	FindHealth(ctx context.Context, userID string) (*HealthSnapshot, error)
}

// IValuationService values ledger positions with oracle prices
type IValuationService interface {
	CollateralValue(ctx context.Context, userID string) (*uint256.Int, error)
	BorrowedValue(ctx context.Context, userID string) (*uint256.Int, error)
	HealthFactor(ctx context.Context, userID string) (*uint256.Int, error)
	// AccountInformation values both sides with one set of prices
	AccountInformation(ctx context.Context, userID string) (*AccountInfo, error)
	// Evaluate values a tentative set of positions of one user
	Evaluate(ctx context.Context, userID string, positions []*Position) (*AccountInfo, error)
}
