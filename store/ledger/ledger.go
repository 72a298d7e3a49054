package ledger

import (
	"context"
	"time"

	"lending/core"
	"lending/pkg/number"
	"lending/store/event"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type position struct {
	UserID    string          `sql:"size:64;PRIMARY_KEY"`
	AssetID   string          `sql:"size:64;PRIMARY_KEY"`
	Deposited decimal.Decimal `sql:"type:decimal(78,0)"`
	Borrowed  decimal.Decimal `sql:"type:decimal(78,0);index:idx_positions_borrowed"`
	Version   int64           `sql:"default:0"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP"`
}

func (position) TableName() string {
	return "positions"
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(position{})
		if err := tx.AutoMigrate(position{}).Error; err != nil {
			return err
		}

		return nil
	})
}

type ledgerStore struct {
	db *db.DB
}

// New new ledger store
func New(db *db.DB) core.ILedgerStore {
	return &ledgerStore{db: db}
}

func (s *ledgerStore) Find(ctx context.Context, userID, assetID string) (*core.Position, error) {
	var row position
	if err := s.db.View().Where("user_id=? AND asset_id=?", userID, assetID).First(&row).Error; err != nil {
		if store.IsErrNotFound(err) {
			return core.NewPosition(userID, assetID), nil
		}

		return nil, err
	}

	return row.toPosition()
}

func (s *ledgerStore) FindByUser(ctx context.Context, userID string) ([]*core.Position, error) {
	var rows []*position
	if err := s.db.View().Where("user_id=?", userID).Order("asset_id").Find(&rows).Error; err != nil {
		return nil, err
	}

	positions := make([]*core.Position, 0, len(rows))
	for _, row := range rows {
		p, err := row.toPosition()
		if err != nil {
			return nil, err
		}

		positions = append(positions, p)
	}

	return positions, nil
}

func (s *ledgerStore) Borrowers(ctx context.Context) ([]string, error) {
	var users []string
	if err := s.db.View().Model(position{}).Where("borrowed > 0").Select("distinct user_id").Pluck("user_id", &users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (s *ledgerStore) Totals(ctx context.Context, assetID string) (*core.PoolTotals, error) {
	var deposited, borrowed decimal.NullDecimal
	if err := s.db.View().Model(position{}).
		Select("sum(deposited), sum(borrowed)").
		Where("asset_id=?", assetID).
		Row().Scan(&deposited, &borrowed); err != nil {
		return nil, err
	}

	totals := &core.PoolTotals{Deposited: number.Zero(), Borrowed: number.Zero()}
	if deposited.Valid {
		v, err := number.FromDecimal(deposited.Decimal)
		if err != nil {
			return nil, err
		}
		totals.Deposited = v
	}

	if borrowed.Valid {
		v, err := number.FromDecimal(borrowed.Decimal)
		if err != nil {
			return nil, err
		}
		totals.Borrowed = v
	}

	return totals, nil
}

func (s *ledgerStore) Commit(ctx context.Context, p *core.Position, e *core.Event) error {
	now := time.Now()
	err := s.db.Tx(func(tx *db.DB) error {
		row := fromPosition(p)
		row.UpdatedAt = now

		if p.Version == 0 {
			var count int
			if err := tx.Update().Model(position{}).
				Where("user_id=? AND asset_id=?", p.UserID, p.AssetID).
				Count(&count).Error; err != nil {
				return err
			}

			// someone else created the row since p was read
			if count > 0 {
				return db.ErrOptimisticLock
			}

			row.Version = 1
			row.CreatedAt = now
			if err := tx.Update().Create(row).Error; err != nil {
				return err
			}
		} else {
			update := tx.Update().Model(position{}).
				Where("user_id=? AND asset_id=? AND version=?", p.UserID, p.AssetID, p.Version).
				Updates(map[string]interface{}{
					"deposited":  row.Deposited,
					"borrowed":   row.Borrowed,
					"version":    p.Version + 1,
					"updated_at": now,
				})
			if update.Error != nil {
				return update.Error
			}

			if update.RowsAffected == 0 {
				return db.ErrOptimisticLock
			}
		}

		return event.Insert(tx, e)
	})
	if err != nil {
		return err
	}

	p.Version++
	p.UpdatedAt = now
	return nil
}

func fromPosition(p *core.Position) *position {
	return &position{
		UserID:    p.UserID,
		AssetID:   p.AssetID,
		Deposited: number.Raw(p.Deposited),
		Borrowed:  number.Raw(p.Borrowed),
		Version:   p.Version,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (row *position) toPosition() (*core.Position, error) {
	deposited, err := number.FromDecimal(row.Deposited)
	if err != nil {
		return nil, err
	}

	borrowed, err := number.FromDecimal(row.Borrowed)
	if err != nil {
		return nil, err
	}

	return &core.Position{
		UserID:    row.UserID,
		AssetID:   row.AssetID,
		Deposited: deposited,
		Borrowed:  borrowed,
		Version:   row.Version,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
