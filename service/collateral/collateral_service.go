package collateral

import (
	"context"

	"levra/core"
	"levra/pkg/leverage"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type collateralService struct {
	db          *db.DB
	collaterals core.CollateralStore
	directory   core.WalletDirectory
	assets      core.AssetLedger

	runTx func(fn func(tx *db.DB) error) error
}

// New new collateral manager
func New(
	db *db.DB,
	collaterals core.CollateralStore,
	directory core.WalletDirectory,
	assets core.AssetLedger,
) core.CollateralService {
	s := &collateralService{
		db:          db,
		collaterals: collaterals,
		directory:   directory,
		assets:      assets,
	}
	s.runTx = db.Tx

	return s
}

func (s *collateralService) Submit(ctx context.Context, borrower string, amount decimal.Decimal) (*core.Collateral, error) {
	log := logger.FromContext(ctx).WithField("service", "collateral")

	amount = amount.Truncate(leverage.AssetPrecision)
	if !amount.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	record, err := s.collaterals.Find(ctx, borrower)
	if err != nil {
		return nil, err
	}

	if record.Locked {
		return nil, core.ErrCollateralLocked
	}

	// provision the wallet before touching any shared state so a factory
	// failure leaves nothing to roll back
	walletAddress, err := s.directory.GetOrCreateWallet(ctx, borrower)
	if err != nil {
		return nil, err
	}

	err = s.runTx(func(tx *db.DB) error {
		if err := s.assets.Transfer(ctx, tx, borrower, core.CollateralVaultAddress, amount); err != nil {
			return err
		}

		record.Amount = record.Amount.Add(amount)
		record.RestrictedWallet = walletAddress

		if record.ID == 0 {
			return s.collaterals.Save(ctx, tx, record)
		}
		return s.collaterals.Update(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}

	log.Infoln("collateral submitted", borrower, amount, "wallet", walletAddress)
	return record, nil
}

func (s *collateralService) WithdrawUnlocked(ctx context.Context, borrower string, amount decimal.Decimal) error {
	amount = amount.Truncate(leverage.AssetPrecision)
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	record, err := s.collaterals.Find(ctx, borrower)
	if err != nil {
		return err
	}

	if record.ID == 0 || record.Amount.IsZero() {
		return core.ErrNoCollateral
	}

	if record.Locked {
		return core.ErrCollateralLocked
	}

	if amount.GreaterThan(record.Amount) {
		return core.ErrInvalidAmount
	}

	return s.runTx(func(tx *db.DB) error {
		if err := s.assets.Transfer(ctx, tx, core.CollateralVaultAddress, borrower, amount); err != nil {
			return err
		}

		record.Amount = record.Amount.Sub(amount)
		return s.collaterals.Update(ctx, tx, record)
	})
}

func (s *collateralService) Find(ctx context.Context, borrower string) (*core.Collateral, error) {
	return s.collaterals.Find(ctx, borrower)
}
