package account

import (
	"context"

	"levra/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type accountStore struct {
	db *db.DB
}

// New new account store
func New(db *db.DB) core.AccountStore {
	return &accountStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Account{})
		if err := tx.AutoMigrate(core.Account{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *accountStore) Save(ctx context.Context, tx *db.DB, account *core.Account) error {
	return tx.Update().Create(account).Error
}

// Find returns a zero record (ID == 0) when the address is unknown
func (s *accountStore) Find(ctx context.Context, address string) (*core.Account, error) {
	var account core.Account
	if err := s.db.View().Where("address=?", address).First(&account).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Account{Address: address}, nil
		}
		return nil, err
	}

	return &account, nil
}

func (s *accountStore) Update(ctx context.Context, tx *db.DB, account *core.Account) error {
	version := account.Version
	account.Version++

	updated := tx.Update().Model(core.Account{}).
		Where("address=? and version=?", account.Address, version).
		Updates(map[string]interface{}{
			"shares":    account.Shares,
			"principal": account.Principal,
			"version":   account.Version,
		})
	if updated.Error != nil {
		return updated.Error
	}

	if updated.RowsAffected == 0 {
		return core.ErrVersionConflict
	}

	return nil
}

func (s *accountStore) All(ctx context.Context) ([]*core.Account, error) {
	var accounts []*core.Account
	if err := s.db.View().Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}
