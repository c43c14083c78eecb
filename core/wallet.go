package core

import (
	"context"
	"time"
)

// RestrictedWallet per borrower wallet binding, assigned once
type RestrictedWallet struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Borrower  string    `sql:"size:64;unique_index:wallet_borrower_idx" json:"borrower"`
	Address   string    `sql:"size:64;unique_index:wallet_address_idx" json:"address"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// WalletStore restricted wallet store interface
type WalletStore interface {
	Create(ctx context.Context, wallet *RestrictedWallet) error
	FindByBorrower(ctx context.Context, borrower string) (*RestrictedWallet, error)
}

// WalletDirectory assigns one restricted wallet per borrower, idempotently.
// Same borrower always yields the same address once created.
type WalletDirectory interface {
	GetOrCreateWallet(ctx context.Context, borrower string) (string, error)
}
