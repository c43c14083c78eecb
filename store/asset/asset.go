package asset

import (
	"context"
	"time"

	"levra/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

// Balance a stable-asset balance row. The record lives outside the
// accounting core; services only reach it through core.AssetLedger.
type Balance struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Address   string          `sql:"size:64;unique_index:asset_address_idx" json:"address"`
	Amount    decimal.Decimal `sql:"type:decimal(32,6)" json:"amount"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type assetLedger struct {
	db *db.DB
}

// New new asset ledger backed by the shared database
func New(db *db.DB) core.AssetLedger {
	return &assetLedger{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(Balance{})
		if err := tx.AutoMigrate(Balance{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *assetLedger) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	balance, err := s.find(s.db, address)
	if err != nil {
		return decimal.Zero, err
	}

	return balance.Amount, nil
}

func (s *assetLedger) Transfer(ctx context.Context, tx *db.DB, from, to string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	source, err := s.find(tx, from)
	if err != nil {
		return err
	}
	if source.Amount.LessThan(amount) {
		return core.ErrInsufficientBalance
	}

	dest, err := s.find(tx, to)
	if err != nil {
		return err
	}

	if err := s.set(tx, source, source.Amount.Sub(amount)); err != nil {
		return err
	}

	return s.set(tx, dest, dest.Amount.Add(amount))
}

func (s *assetLedger) Mint(ctx context.Context, tx *db.DB, address string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	balance, err := s.find(tx, address)
	if err != nil {
		return err
	}

	return s.set(tx, balance, balance.Amount.Add(amount))
}

func (s *assetLedger) find(tx *db.DB, address string) (*Balance, error) {
	var balance Balance
	if err := tx.View().Where("address=?", address).First(&balance).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			balance = Balance{Address: address, Amount: decimal.Zero}
			if err := tx.Update().Create(&balance).Error; err != nil {
				return nil, err
			}
			return &balance, nil
		}
		return nil, err
	}

	return &balance, nil
}

func (s *assetLedger) set(tx *db.DB, balance *Balance, amount decimal.Decimal) error {
	version := balance.Version
	balance.Version++

	updated := tx.Update().Model(Balance{}).
		Where("address=? and version=?", balance.Address, version).
		Updates(map[string]interface{}{
			"amount":  amount,
			"version": balance.Version,
		})
	if updated.Error != nil {
		return updated.Error
	}

	if updated.RowsAffected == 0 {
		return core.ErrVersionConflict
	}

	balance.Amount = amount
	return nil
}
