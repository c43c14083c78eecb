package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Pool lending pool singleton state
type Pool struct {
	ID uint64 `sql:"PRIMARY_KEY" json:"id"`
	// 6 decimals, includes principal currently lent out
	TotalAssets decimal.Decimal `sql:"type:decimal(32,6)" json:"total_assets"`
	// 18 decimals
	TotalShares decimal.Decimal `sql:"type:decimal(48,18)" json:"total_shares"`
	// outstanding loan principal drawn from the pool
	TotalBorrows decimal.Decimal `sql:"type:decimal(32,6)" json:"total_borrows"`
	// protocol margin: realized loan interest, optionally seized collateral
	Reserves      decimal.Decimal `sql:"type:decimal(32,6)" json:"reserves"`
	LastAccrualAt time.Time       `json:"last_accrual_at"`
	Version       int64           `sql:"default:0" json:"version"`
	CreatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// AvailableLiquidity pool assets not committed as outstanding loan principal
func (p *Pool) AvailableLiquidity() decimal.Decimal {
	return p.TotalAssets.Sub(p.TotalBorrows)
}

// VaultInfo vault summary exposed to callers
type VaultInfo struct {
	TotalAssets        decimal.Decimal `json:"total_assets"`
	TotalShares        decimal.Decimal `json:"total_shares"`
	AvailableLiquidity decimal.Decimal `json:"available_liquidity"`
	Reserves           decimal.Decimal `json:"reserves"`
	LastAccrualAt      time.Time       `json:"last_accrual_at"`
	APY                decimal.Decimal `json:"apy"`
}

// PoolStore pool store interface
type PoolStore interface {
	// Init creates the singleton row if absent
	Init(ctx context.Context, genesis time.Time) error
	Get(ctx context.Context) (*Pool, error)
	Update(ctx context.Context, tx *db.DB, pool *Pool) error
}

// PoolService lending pool deposit/withdraw/accrual
type PoolService interface {
	// Deposit mints shares for amount, returns shares minted
	Deposit(ctx context.Context, depositor string, amount decimal.Decimal) (decimal.Decimal, error)
	// Withdraw burns shares, pays assets to recipient, returns amount paid
	Withdraw(ctx context.Context, depositor string, shares decimal.Decimal, recipient string) (decimal.Decimal, error)
	// Accrue settles fixed-APY yield since the last accrual
	Accrue(ctx context.Context) error
	VaultInfo(ctx context.Context) (*VaultInfo, error)
}
