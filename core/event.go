package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/holiman/uint256"
	"github.com/jmoiron/sqlx/types"
)

// EventName event name
type EventName string

const (
	// EventAllowedTokenSet an asset was added to or updated in the allow-list
	EventAllowedTokenSet EventName = "AllowedTokenSet"
	// EventDeposit collateral deposited
	EventDeposit EventName = "Deposit"
	// EventWithdraw collateral withdrawn
	EventWithdraw EventName = "Withdraw"
	// EventBorrow asset borrowed
	EventBorrow EventName = "Borrow"
	// EventRepay debt repaid
	EventRepay EventName = "Repay"
)

const (
	// EventKeyUser user :string
	EventKeyUser = "user"
	// EventKeyAsset asset :string
	EventKeyAsset = "asset"
	// EventKeyPriceFeed price feed :string
	EventKeyPriceFeed = "price_feed"
	// EventKeyAmount amount :string
	EventKeyAmount = "amount"
)

// EventData event payload
type EventData map[string]interface{}

// Put put data
func (d EventData) Put(key string, value interface{}) {
	d[key] = value
}

// Format format as []byte by default
func (d EventData) Format() []byte {
	bs, e := json.Marshal(d)
	if e != nil {
		return []byte("{}")
	}

	return bs
}

// Event append-only record of a committed state change
type Event struct {
	ID        int64          `json:"id"`
	TraceID   string         `json:"trace_id"`
	Name      EventName      `json:"event"`
	UserID    string         `json:"user_id,omitempty"`
	AssetID   string         `json:"asset_id"`
	PriceFeed string         `json:"price_feed,omitempty"`
	Amount    *uint256.Int   `json:"-"`
	Data      types.JSONText `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewAllowedTokenSetEvent AllowedTokenSet{asset, priceFeed}
func NewAllowedTokenSetEvent(traceID, assetID, priceFeed string) *Event {
	data := make(EventData)
	data.Put(EventKeyAsset, assetID)
	data.Put(EventKeyPriceFeed, priceFeed)

	return &Event{
		TraceID:   traceID,
		Name:      EventAllowedTokenSet,
		AssetID:   assetID,
		PriceFeed: priceFeed,
		Data:      data.Format(),
		CreatedAt: time.Now(),
	}
}

// NewBalanceEvent Deposit/Withdraw/Borrow/Repay{user, asset, amount}
func NewBalanceEvent(traceID string, name EventName, userID, assetID string, amount *uint256.Int) *Event {
	data := make(EventData)
	data.Put(EventKeyUser, userID)
	data.Put(EventKeyAsset, assetID)
	data.Put(EventKeyAmount, amount.Dec())

	return &Event{
		TraceID:   traceID,
		Name:      name,
		UserID:    userID,
		AssetID:   assetID,
		Amount:    new(uint256.Int).Set(amount),
		Data:      data.Format(),
		CreatedAt: time.Now(),
	}
}

// IEventStore event log
type IEventStore interface {
	// List events with id greater than offset, in id order
	List(ctx context.Context, offset int64, limit int) ([]*Event, error)
}
