package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Account depositor account, created on first deposit and never deleted
type Account struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Address string `sql:"size:64;unique_index:address_idx" json:"address"`
	// 18 decimals
	Shares decimal.Decimal `sql:"type:decimal(48,18)" json:"shares"`
	// assets deposited net of withdrawals, 6 decimals
	Principal decimal.Decimal `sql:"type:decimal(32,6)" json:"principal"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// AccountStore account store interface
type AccountStore interface {
	Save(ctx context.Context, tx *db.DB, account *Account) error
	Find(ctx context.Context, address string) (*Account, error)
	Update(ctx context.Context, tx *db.DB, account *Account) error
	All(ctx context.Context) ([]*Account, error)
}
