package core

import (
	"context"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// internal book addresses
const (
	// PoolVaultAddress holds pool assets
	PoolVaultAddress = "levra.pool.vault"
	// CollateralVaultAddress holds submitted collateral
	CollateralVaultAddress = "levra.collateral.vault"
	// ReserveAddress holds protocol reserves
	ReserveAddress = "levra.reserve"
	// BurnAddress sink for burned collateral
	BurnAddress = "levra.burn"
)

// AssetLedger external stable-asset balances. The accounting core does not
// own these balances, it only moves them through this interface.
type AssetLedger interface {
	Balance(ctx context.Context, address string) (decimal.Decimal, error)
	Transfer(ctx context.Context, tx *db.DB, from, to string, amount decimal.Decimal) error
	// Mint credits new units, used by the faucet and yield settlement
	Mint(ctx context.Context, tx *db.DB, address string, amount decimal.Decimal) error
}
