package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
	"lending/handler/request"
	"lending/handler/views"

	"github.com/go-chi/chi"
)

func tokensHandler(lendingz core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokens, err := lendingz.AllowedTokens(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.TokenViews(tokens))
	}
}

func tokenHandler(lendingz core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assetID := chi.URLParam(r, "asset")
		feed, err := lendingz.PriceFeedOf(r.Context(), assetID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"asset_id":   assetID,
			"price_feed": feed,
		})
	}
}

func setTokenHandler(lendingz core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user, _ := request.NewContext(ctx).GetUser()

		var body struct {
			AssetID   string `json:"asset_id" valid:"required"`
			PriceFeed string `json:"price_feed" valid:"required"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		event, err := lendingz.SetAllowedToken(ctx, user.ID, body.AssetID, body.PriceFeed)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.Status(w, http.StatusCreated, views.EventView(event))
	}
}

func balanceHandler(lendingz core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user, _ := request.NewContext(ctx).GetUser()
		assetID := chi.URLParam(r, "asset")

		deposited, err := lendingz.GetTokenBalance(ctx, user.ID, assetID)
		if err != nil {
			render.Error(w, err)
			return
		}

		borrowed, err := lendingz.BorrowedOf(ctx, user.ID, assetID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Balance{
			UserID:    user.ID,
			AssetID:   assetID,
			Deposited: deposited.Dec(),
			Borrowed:  borrowed.Dec(),
		})
	}
}
