package wallet

import (
	"context"
	"errors"
	"testing"

	"levra/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWalletStore struct {
	wallets map[string]*core.RestrictedWallet
	nextID  uint64
	fail    bool
}

func newFakeWalletStore() *fakeWalletStore {
	return &fakeWalletStore{wallets: map[string]*core.RestrictedWallet{}, nextID: 1}
}

func (s *fakeWalletStore) Create(_ context.Context, wallet *core.RestrictedWallet) error {
	if s.fail {
		return errors.New("create failed")
	}
	wallet.ID = s.nextID
	s.nextID++
	w := *wallet
	s.wallets[wallet.Borrower] = &w
	return nil
}

func (s *fakeWalletStore) FindByBorrower(_ context.Context, borrower string) (*core.RestrictedWallet, error) {
	if w, ok := s.wallets[borrower]; ok {
		copied := *w
		return &copied, nil
	}
	return &core.RestrictedWallet{}, nil
}

func TestGetOrCreateWallet(t *testing.T) {
	ctx := context.Background()
	store := newFakeWalletStore()
	directory := New(store)

	address, err := directory.GetOrCreateWallet(ctx, "bob")
	require.NoError(t, err)
	assert.NotEmpty(t, address)

	// same borrower always comes back with the same wallet
	again, err := directory.GetOrCreateWallet(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, address, again)

	other, err := directory.GetOrCreateWallet(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, address, other)
}

func TestGetOrCreateWalletDeterministic(t *testing.T) {
	ctx := context.Background()

	// two directories over empty stores derive the same address for the
	// same borrower
	a, err := New(newFakeWalletStore()).GetOrCreateWallet(ctx, "bob")
	require.NoError(t, err)

	b, err := New(newFakeWalletStore()).GetOrCreateWallet(ctx, "bob")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGetOrCreateWalletFailure(t *testing.T) {
	ctx := context.Background()

	_, err := New(newFakeWalletStore()).GetOrCreateWallet(ctx, "")
	assert.Equal(t, core.ErrWalletProvisioningFailed, err)

	store := newFakeWalletStore()
	store.fail = true
	_, err = New(store).GetOrCreateWallet(ctx, "bob")
	assert.Equal(t, core.ErrWalletProvisioningFailed, err)
}
