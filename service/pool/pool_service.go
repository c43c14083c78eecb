package pool

import (
	"context"
	"time"

	"levra/core"
	"levra/pkg/leverage"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type poolService struct {
	db           *db.DB
	poolStore    core.PoolStore
	accountStore core.AccountStore
	assets       core.AssetLedger

	runTx func(fn func(tx *db.DB) error) error
	clock func() time.Time
}

// New new lending pool service
func New(
	db *db.DB,
	poolStore core.PoolStore,
	accountStore core.AccountStore,
	assets core.AssetLedger,
) core.PoolService {
	s := &poolService{
		db:           db,
		poolStore:    poolStore,
		accountStore: accountStore,
		assets:       assets,
		clock:        time.Now,
	}
	s.runTx = db.Tx

	return s
}

func (s *poolService) Deposit(ctx context.Context, depositor string, amount decimal.Decimal) (decimal.Decimal, error) {
	log := logger.FromContext(ctx).WithField("service", "pool")

	amount = amount.Truncate(leverage.AssetPrecision)
	if !amount.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	var minted decimal.Decimal
	err := s.runTx(func(tx *db.DB) error {
		pool, err := s.poolStore.Get(ctx)
		if err != nil {
			return err
		}

		if err := s.settleYield(ctx, tx, pool); err != nil {
			return err
		}

		minted = leverage.MintShares(amount, pool.TotalShares, pool.TotalAssets)
		if !minted.IsPositive() {
			return core.ErrInvalidAmount
		}

		if err := s.assets.Transfer(ctx, tx, depositor, core.PoolVaultAddress, amount); err != nil {
			return err
		}

		pool.TotalAssets = pool.TotalAssets.Add(amount)
		pool.TotalShares = pool.TotalShares.Add(minted)
		if err := s.poolStore.Update(ctx, tx, pool); err != nil {
			return err
		}

		account, err := s.accountStore.Find(ctx, depositor)
		if err != nil {
			return err
		}

		account.Shares = account.Shares.Add(minted)
		account.Principal = account.Principal.Add(amount)

		if account.ID == 0 {
			return s.accountStore.Save(ctx, tx, account)
		}
		return s.accountStore.Update(ctx, tx, account)
	})
	if err != nil {
		return decimal.Zero, err
	}

	log.Infoln("deposit", depositor, amount, "shares", minted)
	return minted, nil
}

func (s *poolService) Withdraw(ctx context.Context, depositor string, shares decimal.Decimal, recipient string) (decimal.Decimal, error) {
	log := logger.FromContext(ctx).WithField("service", "pool")

	shares = shares.Truncate(leverage.SharePrecision)
	if !shares.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	if recipient == "" {
		recipient = depositor
	}

	var amount decimal.Decimal
	err := s.runTx(func(tx *db.DB) error {
		account, err := s.accountStore.Find(ctx, depositor)
		if err != nil {
			return err
		}
		if account.ID == 0 || account.Shares.LessThan(shares) {
			return core.ErrInsufficientShares
		}

		pool, err := s.poolStore.Get(ctx)
		if err != nil {
			return err
		}

		if err := s.settleYield(ctx, tx, pool); err != nil {
			return err
		}

		amount = leverage.RedeemAssets(shares, pool.TotalShares, pool.TotalAssets)
		if amount.GreaterThan(pool.AvailableLiquidity()) {
			return core.ErrInsufficientLiquidity
		}

		if err := s.assets.Transfer(ctx, tx, core.PoolVaultAddress, recipient, amount); err != nil {
			return err
		}

		// principal reduces pro rata so pending yield stays derivable
		reduced := leverage.RedeemAssets(shares, account.Shares, account.Principal)
		account.Shares = account.Shares.Sub(shares)
		account.Principal = account.Principal.Sub(reduced)
		if err := s.accountStore.Update(ctx, tx, account); err != nil {
			return err
		}

		pool.TotalShares = pool.TotalShares.Sub(shares)
		pool.TotalAssets = pool.TotalAssets.Sub(amount)

		// flooring can strand dust once the last share burns; sweep it to
		// reserves to hold totalShares == 0 <=> totalAssets == 0
		if pool.TotalShares.IsZero() && pool.TotalAssets.IsPositive() {
			pool.Reserves = pool.Reserves.Add(pool.TotalAssets)
			if err := s.assets.Transfer(ctx, tx, core.PoolVaultAddress, core.ReserveAddress, pool.TotalAssets); err != nil {
				return err
			}
			pool.TotalAssets = decimal.Zero
		}

		return s.poolStore.Update(ctx, tx, pool)
	})
	if err != nil {
		return decimal.Zero, err
	}

	log.Infoln("withdraw", depositor, shares, "amount", amount)
	return amount, nil
}

func (s *poolService) Accrue(ctx context.Context) error {
	return s.runTx(func(tx *db.DB) error {
		pool, err := s.poolStore.Get(ctx)
		if err != nil {
			return err
		}

		if pool.LastAccrualAt.Unix() >= s.clock().Unix() {
			return nil
		}

		if err := s.settleYield(ctx, tx, pool); err != nil {
			return err
		}

		return s.poolStore.Update(ctx, tx, pool)
	})
}

func (s *poolService) VaultInfo(ctx context.Context) (*core.VaultInfo, error) {
	pool, err := s.poolStore.Get(ctx)
	if err != nil {
		return nil, err
	}

	// read path: report as-of-now yield without writing it back
	leverage.Accrue(pool, s.clock())

	apy := decimal.NewFromInt(leverage.FixedAPY).
		Div(decimal.NewFromInt(leverage.BasisPoints))

	return &core.VaultInfo{
		TotalAssets:        pool.TotalAssets,
		TotalShares:        pool.TotalShares,
		AvailableLiquidity: pool.AvailableLiquidity(),
		Reserves:           pool.Reserves,
		LastAccrualAt:      pool.LastAccrualAt,
		APY:                apy,
	}, nil
}

// settleYield accrues fixed-APY interest on the pool in place and mints
// the matching units into the vault so asset books stay balanced.
func (s *poolService) settleYield(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	interest := leverage.Accrue(pool, s.clock())
	if !interest.IsPositive() {
		return nil
	}

	return s.assets.Mint(ctx, tx, core.PoolVaultAddress, interest)
}
