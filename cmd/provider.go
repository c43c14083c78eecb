package cmd

import (
	"levra/core"
	collateralservice "levra/service/collateral"
	loanservice "levra/service/loan"
	poolservice "levra/service/pool"
	walletservice "levra/service/wallet"
	"levra/store/account"
	"levra/store/asset"
	"levra/store/collateral"
	"levra/store/loan"
	"levra/store/pool"
	"levra/store/wallet"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func providePoolStore(db *db.DB) core.PoolStore {
	return pool.New(db)
}

func provideAccountStore(db *db.DB) core.AccountStore {
	return account.New(db)
}

func provideLoanStore(db *db.DB) core.LoanStore {
	return loan.New(db)
}

func provideCollateralStore(db *db.DB) core.CollateralStore {
	return collateral.New(db)
}

func provideWalletStore(db *db.DB) core.WalletStore {
	return wallet.Cache(wallet.New(db))
}

func provideAssetLedger(db *db.DB) core.AssetLedger {
	return asset.New(db)
}

// ------------------service------------------------------------

func provideWalletDirectory(db *db.DB) core.WalletDirectory {
	return walletservice.New(provideWalletStore(db))
}

func providePoolService(db *db.DB) core.PoolService {
	return poolservice.New(db,
		providePoolStore(db),
		provideAccountStore(db),
		provideAssetLedger(db))
}

func provideCollateralService(db *db.DB) core.CollateralService {
	return collateralservice.New(db,
		provideCollateralStore(db),
		provideWalletDirectory(db),
		provideAssetLedger(db))
}

func provideLoanService(db *db.DB) core.LoanService {
	return loanservice.New(db,
		provideConfig(),
		provideLoanStore(db),
		provideCollateralStore(db),
		providePoolStore(db),
		provideAssetLedger(db))
}
