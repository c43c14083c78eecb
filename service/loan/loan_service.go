package loan

import (
	"context"
	"time"

	"levra/core"
	"levra/pkg/leverage"
	"levra/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type loanService struct {
	db          *db.DB
	config      *core.Config
	loans       core.LoanStore
	collaterals core.CollateralStore
	poolStore   core.PoolStore
	assets      core.AssetLedger

	runTx func(fn func(tx *db.DB) error) error
	clock func() time.Time
}

// New new loan manager
func New(
	db *db.DB,
	cfg *core.Config,
	loans core.LoanStore,
	collaterals core.CollateralStore,
	poolStore core.PoolStore,
	assets core.AssetLedger,
) core.LoanService {
	s := &loanService{
		db:          db,
		config:      cfg,
		loans:       loans,
		collaterals: collaterals,
		poolStore:   poolStore,
		assets:      assets,
		clock:       time.Now,
	}
	s.runTx = db.Tx

	return s
}

func (s *loanService) InitiateLoan(ctx context.Context, borrower string, amount decimal.Decimal) (uint64, error) {
	log := logger.FromContext(ctx).WithField("service", "loan")

	amount = amount.Truncate(leverage.AssetPrecision)
	if amount.LessThan(leverage.MinLoanAmount) || amount.GreaterThan(leverage.MaxLoanAmount) {
		return 0, core.ErrLoanAmountOutOfRange
	}

	collateralRequired, poolContribution := leverage.Split(amount)

	var loanID uint64
	err := s.runTx(func(tx *db.DB) error {
		active, err := s.loans.FindActiveByBorrower(ctx, borrower)
		if err != nil {
			return err
		}
		if active != nil {
			return core.ErrActiveLoanExists
		}

		record, err := s.collaterals.Find(ctx, borrower)
		if err != nil {
			return err
		}
		if record.ID == 0 || record.Amount.IsZero() {
			return core.ErrNoCollateral
		}
		if record.Locked {
			return core.ErrCollateralLocked
		}
		if record.Amount.LessThan(collateralRequired) {
			return core.ErrInsufficientCollateral
		}
		if record.RestrictedWallet == "" {
			return core.ErrWalletProvisioningFailed
		}

		pool, err := s.poolStore.Get(ctx)
		if err != nil {
			return err
		}

		if err := s.settleYield(ctx, tx, pool); err != nil {
			return err
		}

		if poolContribution.GreaterThan(pool.AvailableLiquidity()) {
			return core.ErrInsufficientLiquidity
		}

		// reservation, not a withdrawal: assets stay counted, liquidity shrinks
		pool.TotalBorrows = pool.TotalBorrows.Add(poolContribution)
		if err := s.poolStore.Update(ctx, tx, pool); err != nil {
			return err
		}

		record.Locked = true
		if err := s.collaterals.Update(ctx, tx, record); err != nil {
			return err
		}

		if err := s.assets.Transfer(ctx, tx, core.PoolVaultAddress, record.RestrictedWallet, poolContribution); err != nil {
			return err
		}

		now := s.clock()
		loan := &core.Loan{
			Borrower:         borrower,
			LoanAmount:       amount,
			CollateralAmount: collateralRequired,
			PoolContribution: poolContribution,
			InterestRate:     leverage.DefaultInterestRate,
			Duration:         leverage.DefaultLoanDuration,
			StartTime:        now,
			DueDate:          now.Add(time.Duration(leverage.DefaultLoanDuration) * time.Second),
			RepaidAmount:     decimal.Zero,
			RestrictedWallet: record.RestrictedWallet,
			Status:           core.LoanStatusActive,
		}
		if err := s.loans.Create(ctx, tx, loan); err != nil {
			return err
		}

		loanID = loan.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Infoln("loan issued", loanID, borrower, amount)
	return loanID, nil
}

func (s *loanService) CalculateTotalDue(ctx context.Context, loanID uint64) (decimal.Decimal, error) {
	loan, err := s.loans.Find(ctx, loanID)
	if err != nil {
		return decimal.Zero, err
	}

	return s.totalDue(loan, s.clock()), nil
}

func (s *loanService) RemainingBalance(ctx context.Context, loanID uint64) (decimal.Decimal, error) {
	loan, err := s.loans.Find(ctx, loanID)
	if err != nil {
		return decimal.Zero, err
	}

	remaining := s.totalDue(loan, s.clock()).Sub(loan.RepaidAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return remaining, nil
}

func (s *loanService) RepayLoan(ctx context.Context, loanID uint64, amount decimal.Decimal) (*core.Loan, error) {
	log := logger.FromContext(ctx).WithField("service", "loan")

	amount = amount.Truncate(leverage.AssetPrecision)
	if !amount.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	// settle a missed due date before accepting funds
	loan, err := s.CheckDefault(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != core.LoanStatusActive {
		return nil, core.ErrLoanNotActive
	}

	var updated *core.Loan
	err = s.runTx(func(tx *db.DB) error {
		loan, err := s.loans.Find(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.Status != core.LoanStatusActive {
			return core.ErrLoanNotActive
		}

		now := s.clock()
		totalDue := s.totalDue(loan, now)

		// clamp so repaid never exceeds the total due
		payment := totalDue.Sub(loan.RepaidAmount)
		if amount.LessThan(payment) {
			payment = amount
		}
		if !payment.IsPositive() {
			return core.ErrInvalidAmount
		}

		if err := s.assets.Transfer(ctx, tx, loan.Borrower, core.PoolVaultAddress, payment); err != nil {
			return err
		}

		loan.RepaidAmount = loan.RepaidAmount.Add(payment)

		if loan.RepaidAmount.GreaterThanOrEqual(totalDue) {
			loan.Status = core.LoanStatusRepaid

			pool, err := s.poolStore.Get(ctx)
			if err != nil {
				return err
			}
			if err := s.settleYield(ctx, tx, pool); err != nil {
				return err
			}

			// principal returns to free liquidity; everything repaid beyond
			// the pool's principal share is protocol margin
			pool.TotalBorrows = pool.TotalBorrows.Sub(loan.PoolContribution)
			margin := totalDue.Sub(loan.PoolContribution)
			pool.Reserves = pool.Reserves.Add(margin)
			if err := s.assets.Transfer(ctx, tx, core.PoolVaultAddress, core.ReserveAddress, margin); err != nil {
				return err
			}
			if err := s.poolStore.Update(ctx, tx, pool); err != nil {
				return err
			}

			record, err := s.collaterals.Find(ctx, loan.Borrower)
			if err != nil {
				return err
			}
			record.Locked = false
			if err := s.collaterals.Update(ctx, tx, record); err != nil {
				return err
			}
		}

		if err := s.loans.Update(ctx, tx, loan); err != nil {
			return err
		}

		updated = loan
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.Status == core.LoanStatusRepaid {
		log.Infoln("loan repaid in full", loanID)
	} else {
		log.Infoln("partial repayment", loanID, amount)
	}

	return updated, nil
}

// CheckDefault transitions a past-due active loan to Defaulted, seizes the
// collateral per the configured policy and writes off the pool principal.
// Loans that are not past due come back unchanged.
func (s *loanService) CheckDefault(ctx context.Context, loanID uint64) (*core.Loan, error) {
	log := logger.FromContext(ctx).WithField("service", "loan")

	loan, err := s.loans.Find(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.Status != core.LoanStatusActive || !s.clock().After(loan.DueDate) {
		return loan, nil
	}

	err = s.runTx(func(tx *db.DB) error {
		pool, err := s.poolStore.Get(ctx)
		if err != nil {
			return err
		}
		if err := s.settleYield(ctx, tx, pool); err != nil {
			return err
		}

		// cash already repaid sits in the vault and offsets the write-off;
		// whatever was repaid beyond the pool's share is protocol margin
		recovered := number.Min(loan.RepaidAmount, loan.PoolContribution)
		pool.TotalBorrows = pool.TotalBorrows.Sub(loan.PoolContribution)
		pool.TotalAssets = pool.TotalAssets.Sub(loan.PoolContribution.Sub(recovered))

		if margin := loan.RepaidAmount.Sub(recovered); margin.IsPositive() {
			pool.Reserves = pool.Reserves.Add(margin)
			if err := s.assets.Transfer(ctx, tx, core.PoolVaultAddress, core.ReserveAddress, margin); err != nil {
				return err
			}
		}

		record, err := s.collaterals.Find(ctx, loan.Borrower)
		if err != nil {
			return err
		}

		seized := loan.CollateralAmount
		record.Amount = record.Amount.Sub(seized)
		record.Locked = false
		if err := s.collaterals.Update(ctx, tx, record); err != nil {
			return err
		}

		switch s.config.SeizedCollateralPolicy() {
		case core.SeizedToReserve:
			pool.Reserves = pool.Reserves.Add(seized)
			if err := s.assets.Transfer(ctx, tx, core.CollateralVaultAddress, core.ReserveAddress, seized); err != nil {
				return err
			}
		case core.SeizedBurned:
			if err := s.assets.Transfer(ctx, tx, core.CollateralVaultAddress, core.BurnAddress, seized); err != nil {
				return err
			}
		default: // core.SeizedToPool
			pool.TotalAssets = pool.TotalAssets.Add(seized)
			if err := s.assets.Transfer(ctx, tx, core.CollateralVaultAddress, core.PoolVaultAddress, seized); err != nil {
				return err
			}
		}

		if err := s.poolStore.Update(ctx, tx, pool); err != nil {
			return err
		}

		loan.Status = core.LoanStatusDefaulted
		return s.loans.Update(ctx, tx, loan)
	})
	if err != nil {
		return nil, err
	}

	log.Infoln("loan defaulted", loanID, "seized", loan.CollateralAmount)
	return loan, nil
}

func (s *loanService) HasActiveLoan(ctx context.Context, borrower string) (bool, error) {
	active, err := s.loans.FindActiveByBorrower(ctx, borrower)
	if err != nil {
		return false, err
	}

	return active != nil, nil
}

func (s *loanService) Stats(ctx context.Context) (*core.LoanStats, error) {
	issued, err := s.loans.Count(ctx)
	if err != nil {
		return nil, err
	}

	repaid, err := s.loans.CountByStatus(ctx, core.LoanStatusRepaid)
	if err != nil {
		return nil, err
	}

	defaulted, err := s.loans.CountByStatus(ctx, core.LoanStatusDefaulted)
	if err != nil {
		return nil, err
	}

	active, err := s.loans.CountByStatus(ctx, core.LoanStatusActive)
	if err != nil {
		return nil, err
	}

	return &core.LoanStats{
		TotalLoansIssued:    issued,
		TotalLoansRepaid:    repaid,
		TotalDefaultedLoans: defaulted,
		TotalActiveLoans:    active,
	}, nil
}

// settleYield accrues fixed-APY interest on the pool in place and mints
// the matching units into the vault so asset books stay balanced.
func (s *loanService) settleYield(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	interest := leverage.Accrue(pool, s.clock())
	if !interest.IsPositive() {
		return nil
	}

	return s.assets.Mint(ctx, tx, core.PoolVaultAddress, interest)
}

// totalDue principal plus simple interest pro-rated by elapsed time and
// capped at the full term. A repaid loan owes what it settled at.
func (s *loanService) totalDue(loan *core.Loan, now time.Time) decimal.Decimal {
	if loan.Status == core.LoanStatusRepaid {
		return loan.RepaidAmount
	}

	elapsed := now.Unix() - loan.StartTime.Unix()
	interest := leverage.LoanInterest(loan.LoanAmount, loan.InterestRate, elapsed, loan.Duration)

	return loan.LoanAmount.Add(interest)
}
