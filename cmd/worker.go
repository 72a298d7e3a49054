package cmd

import (
	"context"

	"lending/worker"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run health watch and notifier workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		s := provideStores()
		defer s.Close()

		return runWorkers(ctx, provideWorkers(s, provideValuationService(s)))
	},
}

func runWorkers(ctx context.Context, workers []worker.Worker) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, w := range workers {
		w := w
		g.Go(func() error {
			return w.Run(ctx)
		})
	}

	return g.Wait()
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
