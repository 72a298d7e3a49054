package views

import (
	"time"

	"lending/core"

	"github.com/jmoiron/sqlx/types"
)

// Event event view
type Event struct {
	ID        int64          `json:"id"`
	TraceID   string         `json:"trace_id"`
	Name      core.EventName `json:"event"`
	UserID    string         `json:"user_id,omitempty"`
	AssetID   string         `json:"asset_id"`
	PriceFeed string         `json:"price_feed,omitempty"`
	Amount    string         `json:"amount,omitempty"`
	Data      types.JSONText `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}

func EventView(e *core.Event) Event {
	view := Event{
		ID:        e.ID,
		TraceID:   e.TraceID,
		Name:      e.Name,
		UserID:    e.UserID,
		AssetID:   e.AssetID,
		PriceFeed: e.PriceFeed,
		Data:      e.Data,
		CreatedAt: e.CreatedAt,
	}

	if e.Amount != nil {
		view.Amount = e.Amount.Dec()
	}

	return view
}

func EventViews(events []*core.Event) []Event {
	items := make([]Event, 0, len(events))
	for _, e := range events {
		items = append(items, EventView(e))
	}

	return items
}
