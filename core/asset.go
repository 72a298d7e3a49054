package core

import (
	"context"
	"time"
)

// AllowedToken allow-list entry, maps an asset to its price feed
type AllowedToken struct {
	AssetID   string    `sql:"size:64;PRIMARY_KEY" json:"asset_id"`
	PriceFeed string    `sql:"size:128" json:"price_feed"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IAssetStore allow-list store interface
type IAssetStore interface {
	// Save stores or overwrites the token and appends the registration event atomically
	Save(ctx context.Context, token *AllowedToken, event *Event) error
	// Find returns ErrNotAllowed if the asset was never registered
	Find(ctx context.Context, assetID string) (*AllowedToken, error)
	All(ctx context.Context) ([]*AllowedToken, error)
}
