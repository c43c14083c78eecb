package views

import (
	"levra/core"

	"github.com/shopspring/decimal"
)

// Loan loan view
type Loan struct {
	core.Loan
	StatusText       string          `json:"status_text"`
	TotalDue         decimal.Decimal `json:"total_due"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// Collateral collateral view
type Collateral struct {
	core.Collateral
	// largest loan the unlocked collateral can carry at the collateral ratio
	MaxLoanAmount decimal.Decimal `json:"max_loan_amount"`
}
