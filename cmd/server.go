package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lending/handler"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run lending api server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		s := provideStores()
		defer s.Close()

		valuationz := provideValuationService(s)
		lendingz := provideLendingService(s, valuationz)
		h := handler.New(provideSession(), lendingz, s.events, s.accounts, rootCmd.Version)

		port, _ := cmd.Flags().GetInt("port")
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: h.Handler(),
		}

		ctx, quit := context.WithCancel(ctx)
		defer quit()

		g, ctx := errgroup.WithContext(ctx)

		if withWorkers, _ := cmd.Flags().GetBool("with-workers"); withWorkers {
			workers := provideWorkers(s, valuationz)
			g.Go(func() error {
				return runWorkers(ctx, workers)
			})
		}

		g.Go(func() error {
			logrus.Infoln("serve at", addr)
			if err := server.ListenAndServe(); err != http.ErrServerClosed {
				return err
			}

			return nil
		})

		signal.WithContextFunc(ctx, func() {
			quit()
		})

		g.Go(func() error {
			<-ctx.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			return nil
		})

		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
	serverCmd.Flags().Bool("with-workers", false, "run the workers inside the server process, required with in-memory stores")
}
