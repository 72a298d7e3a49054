package rest

import (
	"context"
	"net/http"

	"lending/core"
	"lending/handler/render"
	"lending/handler/views"

	"github.com/go-chi/chi"
	"github.com/holiman/uint256"
)

func accountHandler(lendingz core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := lendingz.GetAccountInformation(r.Context(), chi.URLParam(r, "user"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.AccountView(info))
	}
}

func valueHandler(value func(ctx context.Context, userID string) (*uint256.Int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "user")
		v, err := value(r.Context(), userID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Value{UserID: userID, Value: v.Dec()})
	}
}

func healthFactorHandler(lendingz core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "user")
		hf, err := lendingz.HealthFactor(r.Context(), userID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.HealthView(userID, hf))
	}
}

func healthSnapshotHandler(accounts core.IAccountStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := accounts.FindHealth(r.Context(), chi.URLParam(r, "user"))
		if err != nil {
			render.Error(w, err)
			return
		}

		if snapshot == nil {
			render.NotFound(w)
			return
		}

		render.JSON(w, views.SnapshotView(snapshot))
	}
}
