package notifier

import (
	"context"
	"net/http"
	"time"

	"lending/core"
	"lending/pkg/metrics"
	"lending/pkg/resthttp"
	"lending/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/jmoiron/sqlx/types"
)

// DefaultSpec poll the event log every 5 seconds
const DefaultSpec = "@every 5s"

const batch = 100

// Deliver deliver one event
type Deliver func(ctx context.Context, e *core.Event) error

type payload struct {
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

// Webhook post events as json, the trace id is sent as request id so receivers can dedupe
func Webhook(url string) Deliver {
	return func(ctx context.Context, e *core.Event) error {
		body := payload{
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
			body.Amount = e.Amount.Dec()
		}

		_, err := resthttp.Execute(resthttp.WithRequestID(ctx, e.TraceID), http.MethodPost, url, body, nil)
		return err
	}
}

// Worker delivers the event log in order, at least once
type Worker struct {
	worker.BaseJob
	events     core.IEventStore
	checkpoint Checkpoint
	deliver    Deliver
}

// New new notifier worker
func New(spec string, events core.IEventStore, checkpoint Checkpoint, deliver Deliver) *Worker {
	if spec == "" {
		spec = DefaultSpec
	}

	w := &Worker{
		events:     events,
		checkpoint: checkpoint,
		deliver:    deliver,
	}

	w.BaseJob = worker.BaseJob{
		Name:   "notifier",
		Spec:   spec,
		OnWork: w.onWork,
	}

	return w
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	offset, err := w.checkpoint.Load(ctx)
	if err != nil {
		log.WithError(err).Errorln("checkpoint.Load")
		return err
	}

	events, err := w.events.List(ctx, offset, batch)
	if err != nil {
		log.WithError(err).Errorln("events.List")
		return err
	}

	for _, e := range events {
		if err := w.deliver(ctx, e); err != nil {
			log.WithError(err).WithField("event", e.ID).Errorln("deliver")
			return err
		}

		if err := w.checkpoint.Save(ctx, e.ID); err != nil {
			log.WithError(err).Errorln("checkpoint.Save")
			return err
		}

		metrics.EventsDelivered.Inc()
	}

	return nil
}
