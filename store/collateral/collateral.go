package collateral

import (
	"context"

	"levra/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type collateralStore struct {
	db *db.DB
}

// New new collateral store
func New(db *db.DB) core.CollateralStore {
	return &collateralStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Collateral{})
		if err := tx.AutoMigrate(core.Collateral{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *collateralStore) Save(ctx context.Context, tx *db.DB, collateral *core.Collateral) error {
	return tx.Update().Create(collateral).Error
}

// Find returns a zero record (ID == 0) when the borrower never submitted
func (s *collateralStore) Find(ctx context.Context, borrower string) (*core.Collateral, error) {
	var collateral core.Collateral
	if err := s.db.View().Where("borrower=?", borrower).First(&collateral).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Collateral{Borrower: borrower}, nil
		}
		return nil, err
	}

	return &collateral, nil
}

func (s *collateralStore) Update(ctx context.Context, tx *db.DB, collateral *core.Collateral) error {
	version := collateral.Version
	collateral.Version++

	updated := tx.Update().Model(core.Collateral{}).
		Where("borrower=? and version=?", collateral.Borrower, version).
		Updates(map[string]interface{}{
			"amount":            collateral.Amount,
			"restricted_wallet": collateral.RestrictedWallet,
			"locked":            collateral.Locked,
			"version":           collateral.Version,
		})
	if updated.Error != nil {
		return updated.Error
	}

	if updated.RowsAffected == 0 {
		return core.ErrVersionConflict
	}

	return nil
}
