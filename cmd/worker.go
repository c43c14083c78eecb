package cmd

import (
	"levra/worker"
	"levra/worker/accrual"
	"levra/worker/overdue"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "levra job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		poolService := providePoolService(database)
		loanService := provideLoanService(database)
		loanStore := provideLoanStore(database)
		propertyStore := providePropertyStore(database)

		accrualJob := accrual.New(cfg.App.Location, poolService)
		if err := accrualJob.Start(); err != nil {
			log.WithError(err).Fatal("start accrual worker")
		}
		defer accrualJob.Stop()

		workers := []worker.Worker{
			overdue.New(loanStore, loanService, propertyStore),
		}

		g, ctx := errgroup.WithContext(ctx)
		for _, w := range workers {
			w := w
			g.Go(func() error {
				return w.Run(ctx)
			})
		}

		if err := g.Wait(); err != nil {
			log.WithError(err).Error("worker aborted")
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
