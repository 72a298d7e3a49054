package views

import (
	"time"

	"lending/core"
)

// Token allowed token view
type Token struct {
	AssetID   string    `json:"asset_id"`
	PriceFeed string    `json:"price_feed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func TokenView(token *core.AllowedToken) Token {
	return Token{
		AssetID:   token.AssetID,
		PriceFeed: token.PriceFeed,
		CreatedAt: token.CreatedAt,
		UpdatedAt: token.UpdatedAt,
	}
}

func TokenViews(tokens []*core.AllowedToken) []Token {
	items := make([]Token, 0, len(tokens))
	for _, token := range tokens {
		items = append(items, TokenView(token))
	}

	return items
}
