package overdue

import (
	"context"
	"errors"
	"time"

	"levra/core"
	"levra/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
)

const (
	checkpointKey = "levra_overdue_checkpoint"
	limit         = 100
)

// Sweeper scans active loans past their due date and settles defaults.
// Defaults are also settled lazily on repayment, the sweep only bounds
// how long a missed due date can linger.
type Sweeper struct {
	worker.TickWorker
	loans       core.LoanStore
	loanService core.LoanService
	property    property.Store
}

// New new overdue sweeper
func New(loans core.LoanStore, loanService core.LoanService, property property.Store) *Sweeper {
	return &Sweeper{
		TickWorker: worker.TickWorker{
			Delay:    10 * time.Second,
			ErrDelay: 30 * time.Second,
		},
		loans:       loans,
		loanService: loanService,
		property:    property,
	}
}

// Run run worker
func (w *Sweeper) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "overdue")
	ctx = logger.WithContext(ctx, log)

	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Sweeper) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	v, err := w.property.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", checkpointKey)
		return err
	}

	// due dates below the checkpoint were settled by earlier sweeps; new
	// loans always come due later, so the watermark only moves forward
	offset := v.Time()

	loans, err := w.loans.ListOverdue(ctx, offset, time.Now(), limit)
	if err != nil {
		log.WithError(err).Errorln("loans.ListOverdue")
		return err
	}

	if len(loans) == 0 {
		return errors.New("EOF")
	}

	for _, loan := range loans {
		if _, err := w.loanService.CheckDefault(ctx, loan.ID); err != nil {
			log.WithError(err).Errorln("check default", loan.ID)
			return err
		}

		offset = loan.DueDate
	}

	if err := w.property.Save(ctx, checkpointKey, offset); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}
