package wallet

import (
	"context"

	"levra/core"
	"levra/pkg/id"

	"github.com/fox-one/pkg/logger"
)

// namespace for deterministic wallet address derivation
const walletNamespace = "f5f4a0fa-9b5a-4b0a-b5a7-2b3c4d5e6f70"

type walletDirectory struct {
	wallets core.WalletStore
}

// New new restricted wallet directory. Addresses are derived
// deterministically from the borrower, so repeated calls for the same
// borrower always yield the same wallet.
func New(wallets core.WalletStore) core.WalletDirectory {
	return &walletDirectory{wallets: wallets}
}

func (s *walletDirectory) GetOrCreateWallet(ctx context.Context, borrower string) (string, error) {
	log := logger.FromContext(ctx).WithField("service", "wallet")

	if borrower == "" {
		return "", core.ErrWalletProvisioningFailed
	}

	wallet, err := s.wallets.FindByBorrower(ctx, borrower)
	if err != nil {
		log.WithError(err).Errorln("wallets.FindByBorrower")
		return "", core.ErrWalletProvisioningFailed
	}

	if wallet.ID > 0 {
		return wallet.Address, nil
	}

	wallet = &core.RestrictedWallet{
		Borrower: borrower,
		Address:  id.UUIDByName(walletNamespace, borrower),
	}

	if err := s.wallets.Create(ctx, wallet); err != nil {
		log.WithError(err).Errorln("wallets.Create")
		return "", core.ErrWalletProvisioningFailed
	}

	return wallet.Address, nil
}
