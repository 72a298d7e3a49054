package event

import (
	"context"
	"time"

	"lending/core"
	"lending/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

type event struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT"`
	TraceID   string          `sql:"size:36;unique_index:idx_events_trace_id"`
	Name      string          `sql:"size:32"`
	UserID    string          `sql:"size:64;index:idx_events_user_id"`
	AssetID   string          `sql:"size:64"`
	PriceFeed string          `sql:"size:128"`
	Amount    decimal.Decimal `sql:"type:decimal(78,0)"`
	Data      types.JSONText  `sql:"type:TEXT"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP"`
}

func (event) TableName() string {
	return "events"
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(event{})
		if err := tx.AutoMigrate(event{}).Error; err != nil {
			return err
		}

		return nil
	})
}

type eventStore struct {
	db *db.DB
}

// New new event store
func New(db *db.DB) core.IEventStore {
	return &eventStore{db: db}
}

// Insert appends the event within tx, used by stores committing state together with its event
func Insert(tx *db.DB, e *core.Event) error {
	row := fromEvent(e)
	if err := tx.Update().Create(row).Error; err != nil {
		return err
	}

	e.ID = row.ID
	return nil
}

func (s *eventStore) List(ctx context.Context, offset int64, limit int) ([]*core.Event, error) {
	var rows []*event
	if err := s.db.View().Where("id > ?", offset).Order("id").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	events := make([]*core.Event, len(rows))
	for idx, row := range rows {
		events[idx] = row.toEvent()
	}

	return events, nil
}

func fromEvent(e *core.Event) *event {
	return &event{
		TraceID:   e.TraceID,
		Name:      string(e.Name),
		UserID:    e.UserID,
		AssetID:   e.AssetID,
		PriceFeed: e.PriceFeed,
		Amount:    number.Raw(e.Amount),
		Data:      e.Data,
		CreatedAt: e.CreatedAt,
	}
}

func (row *event) toEvent() *core.Event {
	e := &core.Event{
		ID:        row.ID,
		TraceID:   row.TraceID,
		Name:      core.EventName(row.Name),
		UserID:    row.UserID,
		AssetID:   row.AssetID,
		PriceFeed: row.PriceFeed,
		Data:      row.Data,
		CreatedAt: row.CreatedAt,
	}

	if row.Name != string(core.EventAllowedTokenSet) {
		e.Amount, _ = number.FromDecimal(row.Amount)
	}

	return e
}
