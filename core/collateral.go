package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Collateral per borrower collateral record, one row per borrower
type Collateral struct {
	ID       uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Borrower string          `sql:"size:64;unique_index:borrower_idx" json:"borrower"`
	Amount   decimal.Decimal `sql:"type:decimal(32,6)" json:"amount"`
	// assigned once by the wallet directory, empty until then
	RestrictedWallet string `sql:"size:64" json:"restricted_wallet"`
	// true while an active loan references it
	Locked    bool      `sql:"default:false" json:"locked"`
	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// CollateralStore collateral store interface
type CollateralStore interface {
	Save(ctx context.Context, tx *db.DB, collateral *Collateral) error
	Find(ctx context.Context, borrower string) (*Collateral, error)
	Update(ctx context.Context, tx *db.DB, collateral *Collateral) error
}

// CollateralService collateral manager
type CollateralService interface {
	// Submit accumulates collateral and binds a restricted wallet idempotently
	Submit(ctx context.Context, borrower string, amount decimal.Decimal) (*Collateral, error)
	// WithdrawUnlocked pays unlocked collateral back to the borrower
	WithdrawUnlocked(ctx context.Context, borrower string, amount decimal.Decimal) error
	Find(ctx context.Context, borrower string) (*Collateral, error)
}
