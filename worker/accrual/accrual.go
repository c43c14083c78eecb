package accrual

import (
	"context"
	"time"

	"levra/core"
	"levra/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Worker settles pool yield on a fixed schedule so the share price stays
// fresh even without deposit or withdraw traffic.
type Worker struct {
	worker.BaseJob
	poolService core.PoolService
}

// New new accrual worker
func New(location string, poolService core.PoolService) *Worker {
	job := Worker{
		poolService: poolService,
	}

	l, _ := time.LoadLocation(location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 1m"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "accrual")

	if err := w.poolService.Accrue(ctx); err != nil {
		log.WithError(err).Errorln("pool accrue")
		return err
	}

	return nil
}
