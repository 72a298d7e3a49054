package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
	"lending/handler/request"
	"lending/handler/views"

	"github.com/asaskevich/govalidator"
	"github.com/holiman/uint256"
)

type balanceAction func(ctx context.Context, userID, assetID string, amount *uint256.Int) (*core.Event, error)

// balanceActionHandler amounts are raw integers in the asset's native scale
func balanceActionHandler(action balanceAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user, _ := request.NewContext(ctx).GetUser()

		var body struct {
			AssetID string `json:"asset_id" valid:"required"`
			Amount  string `json:"amount" valid:"required"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		// negative amounts are below the minimum just like zero
		if strings.HasPrefix(strings.TrimSpace(body.Amount), "-") {
			render.Error(w, core.ErrZeroAmount)
			return
		}

		if !govalidator.IsNumeric(body.Amount) {
			render.BadRequest(w, errors.New("amount must be a raw integer"))
			return
		}

		amount, err := uint256.FromDecimal(body.Amount)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		event, err := action(ctx, user.ID, body.AssetID, amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.Status(w, http.StatusCreated, views.EventView(event))
	}
}
