package asset

import (
	"context"

	"lending/core"
	"lending/store/event"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type assetStore struct {
	db *db.DB
}

// New new allow-list store
func New(db *db.DB) core.IAssetStore {
	return &assetStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.AllowedToken{})
		if err := tx.AutoMigrate(core.AllowedToken{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *assetStore) Save(ctx context.Context, token *core.AllowedToken, e *core.Event) error {
	return s.db.Tx(func(tx *db.DB) error {
		if err := tx.Update().Where("asset_id=?", token.AssetID).
			Assign(core.AllowedToken{PriceFeed: token.PriceFeed}).
			FirstOrCreate(token).Error; err != nil {
			return err
		}

		return event.Insert(tx, e)
	})
}

func (s *assetStore) Find(ctx context.Context, assetID string) (*core.AllowedToken, error) {
	var token core.AllowedToken
	if err := s.db.View().Where("asset_id=?", assetID).First(&token).Error; err != nil {
		if store.IsErrNotFound(err) {
			return nil, core.ErrNotAllowed
		}

		return nil, err
	}

	return &token, nil
}

func (s *assetStore) All(ctx context.Context) ([]*core.AllowedToken, error) {
	var tokens []*core.AllowedToken
	if err := s.db.View().Order("asset_id").Find(&tokens).Error; err != nil {
		return nil, err
	}

	return tokens, nil
}
