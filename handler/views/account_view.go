package views

import (
	"github.com/shopspring/decimal"
)

// Account depositor account view
type Account struct {
	Address string `json:"address"`
	// external stable asset balance
	Balance decimal.Decimal `json:"balance"`
	Shares  decimal.Decimal `json:"shares"`
	// assets deposited net of withdrawals
	DepositedAssets decimal.Decimal `json:"deposited_assets"`
	// current share value minus deposited assets
	PendingYield decimal.Decimal `json:"pending_yield"`
}
