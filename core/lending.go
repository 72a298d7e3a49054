package core

import (
	"context"

	"github.com/holiman/uint256"
)

// ILendingService lending core, the only writer of the ledger and the allow-list
type ILendingService interface {
	Owner() string
	SetAllowedToken(ctx context.Context, caller, assetID, priceFeed string) (*Event, error)
	PriceFeedOf(ctx context.Context, assetID string) (string, error)
	AllowedTokens(ctx context.Context) ([]*AllowedToken, error)

	Deposit(ctx context.Context, userID, assetID string, amount *uint256.Int) (*Event, error)
	Withdraw(ctx context.Context, userID, assetID string, amount *uint256.Int) (*Event, error)
	Borrow(ctx context.Context, userID, assetID string, amount *uint256.Int) (*Event, error)
	Repay(ctx context.Context, userID, assetID string, amount *uint256.Int) (*Event, error)

	GetTokenBalance(ctx context.Context, caller, assetID string) (*uint256.Int, error)
	BorrowedOf(ctx context.Context, userID, assetID string) (*uint256.Int, error)
	GetAccountInformation(ctx context.Context, userID string) (*AccountInfo, error)
	GetAccountCollateralValue(ctx context.Context, userID string) (*uint256.Int, error)
	GetAccountBorrowedValue(ctx context.Context, userID string) (*uint256.Int, error)
	HealthFactor(ctx context.Context, userID string) (*uint256.Int, error)
}
