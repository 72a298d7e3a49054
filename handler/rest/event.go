package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/render"
	"lending/handler/views"

	"github.com/spf13/cast"
)

const (
	defaultEventLimit = 100
	maxEventLimit     = 500
)

func eventsHandler(events core.IEventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		offset := cast.ToInt64(query.Get("offset"))
		limit := cast.ToInt(query.Get("limit"))
		if limit <= 0 {
			limit = defaultEventLimit
		} else if limit > maxEventLimit {
			limit = maxEventLimit
		}

		list, err := events.List(r.Context(), offset, limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		next := offset
		if len(list) > 0 {
			next = list[len(list)-1].ID
		}

		render.JSON(w, render.H{
			"events": views.EventViews(list),
			"offset": next,
		})
	}
}
