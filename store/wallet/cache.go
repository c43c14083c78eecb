package wallet

import (
	"context"
	"fmt"

	"levra/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache wraps a wallet store with an LRU cache. Bindings are immutable
// once assigned, so entries never need invalidation.
func Cache(store core.WalletStore) core.WalletStore {
	return &cacheWalletStore{
		WalletStore: store,
		cache:       gcache.New(2048).LRU().Build(),
		sf:          &singleflight.Group{},
	}
}

type cacheWalletStore struct {
	core.WalletStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheWalletStore) Create(ctx context.Context, wallet *core.RestrictedWallet) error {
	if err := s.WalletStore.Create(ctx, wallet); err != nil {
		return err
	}
	s.cacheWallet(wallet)
	return nil
}

func (s *cacheWalletStore) FindByBorrower(ctx context.Context, borrower string) (*core.RestrictedWallet, error) {
	if v, err := s.cache.Get(s.borrowerKey(borrower)); err == nil {
		if wallet, ok := v.(*core.RestrictedWallet); ok {
			return wallet, nil
		}
	}

	v, err, _ := s.sf.Do(s.borrowerKey(borrower), func() (interface{}, error) {
		wallet, err := s.WalletStore.FindByBorrower(ctx, borrower)
		if err != nil {
			return nil, err
		}
		if wallet.ID > 0 {
			s.cacheWallet(wallet)
		}
		return wallet, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.RestrictedWallet), nil
}

func (s *cacheWalletStore) cacheWallet(wallet *core.RestrictedWallet) {
	s.cache.Set(s.borrowerKey(wallet.Borrower), wallet)
}

func (s *cacheWalletStore) borrowerKey(borrower string) string {
	return fmt.Sprintf("wallet:borrower:%s", borrower)
}
