package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// LoanStatus loan lifecycle status
type LoanStatus int

const (
	// LoanStatusActive loan is outstanding
	LoanStatusActive LoanStatus = iota
	// LoanStatusRepaid fully repaid, terminal
	LoanStatusRepaid
	// LoanStatusDefaulted past due without full repayment, terminal
	LoanStatusDefaulted
)

func (s LoanStatus) String() string {
	switch s {
	case LoanStatusActive:
		return "Active"
	case LoanStatusRepaid:
		return "Repaid"
	case LoanStatusDefaulted:
		return "Defaulted"
	}
	return "Unknown"
}

// IsTerminal no transitions out of Repaid/Defaulted
func (s LoanStatus) IsTerminal() bool {
	return s == LoanStatusRepaid || s == LoanStatusDefaulted
}

// Loan collateralized loan record, append only
type Loan struct {
	ID               uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Borrower         string          `sql:"size:64;index:borrower_idx" json:"borrower"`
	LoanAmount       decimal.Decimal `sql:"type:decimal(32,6)" json:"loan_amount"`
	CollateralAmount decimal.Decimal `sql:"type:decimal(32,6)" json:"collateral_amount"`
	PoolContribution decimal.Decimal `sql:"type:decimal(32,6)" json:"pool_contribution"`
	// basis points over the nominal term
	InterestRate int64 `json:"interest_rate"`
	// seconds
	Duration         int64           `json:"duration"`
	StartTime        time.Time       `json:"start_time"`
	DueDate          time.Time       `json:"due_date"`
	RepaidAmount     decimal.Decimal `sql:"type:decimal(32,6)" json:"repaid_amount"`
	RestrictedWallet string          `sql:"size:64" json:"restricted_wallet"`
	Status           LoanStatus      `sql:"default:0" json:"status"`
	Version          int64           `sql:"default:0" json:"version"`
	CreatedAt        time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// LoanStats protocol wide loan counters
type LoanStats struct {
	TotalLoansIssued    int64 `json:"total_loans_issued"`
	TotalLoansRepaid    int64 `json:"total_loans_repaid"`
	TotalDefaultedLoans int64 `json:"total_defaulted_loans"`
	TotalActiveLoans    int64 `json:"total_active_loans"`
}

// LoanStore loan store interface
type LoanStore interface {
	Create(ctx context.Context, tx *db.DB, loan *Loan) error
	Find(ctx context.Context, id uint64) (*Loan, error)
	FindByBorrower(ctx context.Context, borrower string) ([]*Loan, error)
	FindActiveByBorrower(ctx context.Context, borrower string) (*Loan, error)
	// ListOverdue lists active loans with since < due_date < deadline
	ListOverdue(ctx context.Context, since, deadline time.Time, limit int) ([]*Loan, error)
	Update(ctx context.Context, tx *db.DB, loan *Loan) error
	CountByStatus(ctx context.Context, status LoanStatus) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// LoanService loan lifecycle state machine
type LoanService interface {
	InitiateLoan(ctx context.Context, borrower string, amount decimal.Decimal) (uint64, error)
	RepayLoan(ctx context.Context, loanID uint64, amount decimal.Decimal) (*Loan, error)
	CalculateTotalDue(ctx context.Context, loanID uint64) (decimal.Decimal, error)
	RemainingBalance(ctx context.Context, loanID uint64) (decimal.Decimal, error)
	CheckDefault(ctx context.Context, loanID uint64) (*Loan, error)
	HasActiveLoan(ctx context.Context, borrower string) (bool, error)
	Stats(ctx context.Context) (*LoanStats, error)
}
