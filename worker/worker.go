package worker

import (
	"context"
	"fmt"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Worker background worker
type Worker interface {
	Run(ctx context.Context) error
}

type OnWork func(ctx context.Context) error

// BaseJob runs OnWork on a cron schedule, a round is skipped while the previous one is still running
type BaseJob struct {
	Name   string
	Spec   string
	OnWork OnWork
}

// Run blocks until ctx is done
func (job *BaseJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", job.Name)
	ctx = logger.WithContext(ctx, log)

	c := cron.New(cron.WithChain(
		cron.Recover(cron.PrintfLogger(logrus.StandardLogger())),
		cron.SkipIfStillRunning(cron.PrintfLogger(log)),
	))

	if _, err := c.AddFunc(job.Spec, func() {
		if err := job.OnWork(ctx); err != nil {
			log.WithError(err).Errorln("work")
		}
	}); err != nil {
		return fmt.Errorf("worker %s: invalid spec %q: %w", job.Name, job.Spec, err)
	}

	log.Infoln("started with spec", job.Spec)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	log.Infoln("stopped")

	return nil
}
