package pool

import (
	"context"
	"time"

	"levra/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

const singletonID = 1

type poolStore struct {
	db *db.DB
}

// New new pool store
func New(db *db.DB) core.PoolStore {
	return &poolStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Pool{})
		if err := tx.AutoMigrate(core.Pool{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *poolStore) Init(ctx context.Context, genesis time.Time) error {
	var pool core.Pool
	err := s.db.View().Where("id=?", singletonID).First(&pool).Error
	if err == nil {
		return nil
	}

	if !gorm.IsRecordNotFoundError(err) {
		return err
	}

	pool = core.Pool{
		ID:            singletonID,
		TotalAssets:   decimal.Zero,
		TotalShares:   decimal.Zero,
		TotalBorrows:  decimal.Zero,
		Reserves:      decimal.Zero,
		LastAccrualAt: genesis,
	}

	return s.db.Update().Create(&pool).Error
}

func (s *poolStore) Get(ctx context.Context) (*core.Pool, error) {
	var pool core.Pool
	if err := s.db.View().Where("id=?", singletonID).First(&pool).Error; err != nil {
		return nil, err
	}

	// totalShares == 0 <=> totalAssets == 0
	if pool.TotalShares.IsZero() != pool.TotalAssets.IsZero() {
		return nil, core.ErrUnknown
	}

	return &pool, nil
}

func (s *poolStore) Update(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	version := pool.Version
	pool.Version++

	// map updates so that zero amounts are written through
	updated := tx.Update().Model(core.Pool{}).
		Where("id=? and version=?", pool.ID, version).
		Updates(map[string]interface{}{
			"total_assets":    pool.TotalAssets,
			"total_shares":    pool.TotalShares,
			"total_borrows":   pool.TotalBorrows,
			"reserves":        pool.Reserves,
			"last_accrual_at": pool.LastAccrualAt,
			"version":         pool.Version,
		})
	if updated.Error != nil {
		return updated.Error
	}

	if updated.RowsAffected == 0 {
		return core.ErrVersionConflict
	}

	return nil
}
