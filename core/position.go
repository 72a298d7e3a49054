package core

import (
	"context"
	"time"

	"lending/pkg/number"

	"github.com/holiman/uint256"
)

// Position deposited and borrowed quantities of one user in one asset, native asset scale
type Position struct {
	UserID    string       `json:"user_id"`
	AssetID   string       `json:"asset_id"`
	Deposited *uint256.Int `json:"-"`
	Borrowed  *uint256.Int `json:"-"`
	Version   int64        `json:"version"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewPosition zero position, unseen (user, asset) pairs read as this
func NewPosition(userID, assetID string) *Position {
	return &Position{
		UserID:    userID,
		AssetID:   assetID,
		Deposited: number.Zero(),
		Borrowed:  number.Zero(),
	}
}

// Clone deep copy, tentative changes are applied to clones
func (p *Position) Clone() *Position {
	c := *p
	c.Deposited = new(uint256.Int).Set(p.Deposited)
	c.Borrowed = new(uint256.Int).Set(p.Borrowed)
	return &c
}

// IsEmpty no deposit and no debt
func (p *Position) IsEmpty() bool {
	return p.Deposited.IsZero() && p.Borrowed.IsZero()
}

// CreditDeposit deposited += amount
func (p *Position) CreditDeposit(amount *uint256.Int) error {
	v, ok := number.Add(p.Deposited, amount)
	if !ok {
		return ErrArithmeticOverflow
	}

	p.Deposited = v
	return nil
}

// DebitDeposit deposited -= amount
func (p *Position) DebitDeposit(amount *uint256.Int) error {
	v, ok := number.Sub(p.Deposited, amount)
	if !ok {
		return ErrInsufficientBalance
	}

	p.Deposited = v
	return nil
}

// CreditBorrow borrowed += amount
func (p *Position) CreditBorrow(amount *uint256.Int) error {
	v, ok := number.Add(p.Borrowed, amount)
	if !ok {
		return ErrArithmeticOverflow
	}

	p.Borrowed = v
	return nil
}

// DebitBorrow borrowed -= amount
func (p *Position) DebitBorrow(amount *uint256.Int) error {
	v, ok := number.Sub(p.Borrowed, amount)
	if !ok {
		return ErrInsufficientBalance
	}

	p.Borrowed = v
	return nil
}

// PoolTotals sums of all positions of one asset
type PoolTotals struct {
	Deposited *uint256.Int
	Borrowed  *uint256.Int
}

// Cash tokens held by the pool and not lent out
func (t *PoolTotals) Cash() *uint256.Int {
	cash, ok := number.Sub(t.Deposited, t.Borrowed)
	if !ok {
		return number.Zero()
	}

	return cash
}

// ILedgerStore ledger store interface
type ILedgerStore interface {
	// Find never fails for unseen pairs, it returns a zero position instead
	Find(ctx context.Context, userID, assetID string) (*Position, error)
	FindByUser(ctx context.Context, userID string) ([]*Position, error)
	// Borrowers users with outstanding debt in any asset
	Borrowers(ctx context.Context) ([]string, error)
	Totals(ctx context.Context, assetID string) (*PoolTotals, error)
	// Commit writes the position and appends the event atomically
	Commit(ctx context.Context, position *Position, event *Event) error
}
