package wallet

import (
	"context"

	"levra/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type walletStore struct {
	db *db.DB
}

// New new restricted wallet store
func New(db *db.DB) core.WalletStore {
	return &walletStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.RestrictedWallet{})
		if err := tx.AutoMigrate(core.RestrictedWallet{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *walletStore) Create(ctx context.Context, wallet *core.RestrictedWallet) error {
	// the unique index on borrower keeps assignment single-shot under races
	return s.db.Update().
		Where("borrower=?", wallet.Borrower).
		FirstOrCreate(wallet).Error
}

// FindByBorrower returns a zero record (ID == 0) when no wallet is bound
func (s *walletStore) FindByBorrower(ctx context.Context, borrower string) (*core.RestrictedWallet, error) {
	var wallet core.RestrictedWallet
	if err := s.db.View().Where("borrower=?", borrower).First(&wallet).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.RestrictedWallet{Borrower: borrower}, nil
		}
		return nil, err
	}

	return &wallet, nil
}
