package pool

import (
	"context"
	"testing"
	"time"

	"levra/core"
	"levra/pkg/leverage"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

type fakePoolStore struct {
	pool *core.Pool
}

func (s *fakePoolStore) Init(_ context.Context, genesis time.Time) error {
	if s.pool == nil {
		s.pool = &core.Pool{ID: 1, LastAccrualAt: genesis}
	}
	return nil
}

func (s *fakePoolStore) Get(_ context.Context) (*core.Pool, error) {
	p := *s.pool
	return &p, nil
}

func (s *fakePoolStore) Update(_ context.Context, _ *db.DB, pool *core.Pool) error {
	p := *pool
	s.pool = &p
	return nil
}

type fakeAccountStore struct {
	accounts map[string]*core.Account
	nextID   uint64
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: map[string]*core.Account{}, nextID: 1}
}

func (s *fakeAccountStore) Save(_ context.Context, _ *db.DB, account *core.Account) error {
	account.ID = s.nextID
	s.nextID++
	a := *account
	s.accounts[account.Address] = &a
	return nil
}

func (s *fakeAccountStore) Find(_ context.Context, address string) (*core.Account, error) {
	if a, ok := s.accounts[address]; ok {
		copied := *a
		return &copied, nil
	}
	return &core.Account{Address: address}, nil
}

func (s *fakeAccountStore) Update(_ context.Context, _ *db.DB, account *core.Account) error {
	a := *account
	s.accounts[account.Address] = &a
	return nil
}

func (s *fakeAccountStore) All(_ context.Context) ([]*core.Account, error) {
	var accounts []*core.Account
	for _, a := range s.accounts {
		copied := *a
		accounts = append(accounts, &copied)
	}
	return accounts, nil
}

type fakeLedger struct {
	balances map[string]decimal.Decimal
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{balances: map[string]decimal.Decimal{}}
}

func (l *fakeLedger) Balance(_ context.Context, address string) (decimal.Decimal, error) {
	return l.balances[address], nil
}

func (l *fakeLedger) Transfer(_ context.Context, _ *db.DB, from, to string, amount decimal.Decimal) error {
	if l.balances[from].LessThan(amount) {
		return core.ErrInsufficientBalance
	}
	l.balances[from] = l.balances[from].Sub(amount)
	l.balances[to] = l.balances[to].Add(amount)
	return nil
}

func (l *fakeLedger) Mint(_ context.Context, _ *db.DB, address string, amount decimal.Decimal) error {
	l.balances[address] = l.balances[address].Add(amount)
	return nil
}

var genesis = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*poolService, *fakePoolStore, *fakeAccountStore, *fakeLedger, *time.Time) {
	t.Helper()

	poolStore := &fakePoolStore{}
	require.NoError(t, poolStore.Init(context.Background(), genesis))

	accountStore := newFakeAccountStore()
	ledger := newFakeLedger()
	now := genesis

	s := &poolService{
		poolStore:    poolStore,
		accountStore: accountStore,
		assets:       ledger,
		runTx: func(fn func(tx *db.DB) error) error {
			return fn(nil)
		},
		clock: func() time.Time { return now },
	}

	return s, poolStore, accountStore, ledger, &now
}

func TestDepositBootstrap(t *testing.T) {
	ctx := context.Background()
	s, poolStore, accountStore, ledger, _ := newTestService(t)

	ledger.balances["alice"] = d("1000000")

	shares, err := s.Deposit(ctx, "alice", d("1000000"))
	require.NoError(t, err)
	assert.Equal(t, "1000000", shares.String())

	assert.Equal(t, "1000000", poolStore.pool.TotalAssets.String())
	assert.Equal(t, "1000000", poolStore.pool.TotalShares.String())

	account, err := accountStore.Find(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "1000000", account.Shares.String())
	assert.Equal(t, "1000000", account.Principal.String())

	assert.True(t, ledger.balances["alice"].IsZero())
	assert.Equal(t, "1000000", ledger.balances[core.PoolVaultAddress].String())
}

func TestDepositInvalidAmount(t *testing.T) {
	ctx := context.Background()
	s, _, _, _, _ := newTestService(t)

	_, err := s.Deposit(ctx, "alice", decimal.Zero)
	assert.Equal(t, core.ErrInvalidAmount, err)

	_, err = s.Deposit(ctx, "alice", d("-5"))
	assert.Equal(t, core.ErrInvalidAmount, err)

	// sub-precision dust truncates to zero
	_, err = s.Deposit(ctx, "alice", d("0.0000004"))
	assert.Equal(t, core.ErrInvalidAmount, err)
}

func TestDepositAfterYield(t *testing.T) {
	ctx := context.Background()
	s, poolStore, accountStore, ledger, now := newTestService(t)

	ledger.balances["alice"] = d("1000")
	ledger.balances["bob"] = d("1080")

	_, err := s.Deposit(ctx, "alice", d("1000"))
	require.NoError(t, err)

	// a full year of yield lifts the share price to 1.08
	*now = genesis.Add(time.Duration(leverage.YearSeconds) * time.Second)

	shares, err := s.Deposit(ctx, "bob", d("1080"))
	require.NoError(t, err)
	assert.Equal(t, "1000", shares.String())

	assert.Equal(t, "2160", poolStore.pool.TotalAssets.String())
	assert.Equal(t, "2000", poolStore.pool.TotalShares.String())

	// yield settlement minted into the vault, books stay balanced
	assert.Equal(t, "2160", ledger.balances[core.PoolVaultAddress].String())

	bob, err := accountStore.Find(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "1080", bob.Principal.String())
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()
	s, poolStore, accountStore, ledger, now := newTestService(t)

	ledger.balances["alice"] = d("1000")
	_, err := s.Deposit(ctx, "alice", d("1000"))
	require.NoError(t, err)

	*now = genesis.Add(time.Duration(leverage.YearSeconds) * time.Second)

	amount, err := s.Withdraw(ctx, "alice", d("500"), "")
	require.NoError(t, err)
	assert.Equal(t, "540", amount.String())

	assert.Equal(t, "540", poolStore.pool.TotalAssets.String())
	assert.Equal(t, "500", poolStore.pool.TotalShares.String())
	assert.Equal(t, "540", ledger.balances["alice"].String())

	account, err := accountStore.Find(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "500", account.Shares.String())
	assert.Equal(t, "500", account.Principal.String())

	// burn the rest, the pool returns to the zero state
	amount, err = s.Withdraw(ctx, "alice", d("500"), "")
	require.NoError(t, err)
	assert.Equal(t, "540", amount.String())
	assert.True(t, poolStore.pool.TotalShares.IsZero())
	assert.True(t, poolStore.pool.TotalAssets.IsZero())
}

func TestWithdrawInsufficientShares(t *testing.T) {
	ctx := context.Background()
	s, _, _, ledger, _ := newTestService(t)

	_, err := s.Withdraw(ctx, "nobody", d("10"), "")
	assert.Equal(t, core.ErrInsufficientShares, err)

	ledger.balances["alice"] = d("100")
	_, err = s.Deposit(ctx, "alice", d("100"))
	require.NoError(t, err)

	_, err = s.Withdraw(ctx, "alice", d("100.000000000000000001"), "")
	assert.Equal(t, core.ErrInsufficientShares, err)
}

func TestWithdrawLiquidityGate(t *testing.T) {
	ctx := context.Background()
	s, poolStore, _, ledger, _ := newTestService(t)

	ledger.balances["alice"] = d("1000")
	_, err := s.Deposit(ctx, "alice", d("1000"))
	require.NoError(t, err)

	// 800 is out on loan, only 200 of liquidity remains
	poolStore.pool.TotalBorrows = d("800")

	_, err = s.Withdraw(ctx, "alice", d("500"), "")
	assert.Equal(t, core.ErrInsufficientLiquidity, err)

	amount, err := s.Withdraw(ctx, "alice", d("200"), "")
	require.NoError(t, err)
	assert.Equal(t, "200", amount.String())
}

func TestWithdrawDustSweep(t *testing.T) {
	ctx := context.Background()
	s, poolStore, _, ledger, _ := newTestService(t)

	ledger.balances["alice"] = d("10")
	_, err := s.Deposit(ctx, "alice", d("10"))
	require.NoError(t, err)

	// sub-precision dust on the pool, the payout floors past it
	poolStore.pool.TotalAssets = d("10.0000015")
	require.NoError(t, ledger.Mint(ctx, nil, core.PoolVaultAddress, d("0.0000015")))

	amount, err := s.Withdraw(ctx, "alice", d("10"), "")
	require.NoError(t, err)
	assert.Equal(t, "10.000001", amount.String())

	// the stranded dust moves to reserves so zero shares means zero assets
	assert.True(t, poolStore.pool.TotalShares.IsZero())
	assert.True(t, poolStore.pool.TotalAssets.IsZero())
	assert.Equal(t, "0.0000005", poolStore.pool.Reserves.String())
	assert.Equal(t, "0.0000005", ledger.balances[core.ReserveAddress].String())
}

func TestAccrue(t *testing.T) {
	ctx := context.Background()
	s, poolStore, _, ledger, now := newTestService(t)

	ledger.balances["alice"] = d("1000000")
	_, err := s.Deposit(ctx, "alice", d("1000000"))
	require.NoError(t, err)

	// no time passed, nothing to settle
	require.NoError(t, s.Accrue(ctx))
	assert.Equal(t, "1000000", poolStore.pool.TotalAssets.String())

	*now = genesis.Add(time.Duration(leverage.YearSeconds/2) * time.Second)
	require.NoError(t, s.Accrue(ctx))
	assert.Equal(t, "1040000", poolStore.pool.TotalAssets.String())
	assert.Equal(t, *now, poolStore.pool.LastAccrualAt)
}

func TestVaultInfo(t *testing.T) {
	ctx := context.Background()
	s, poolStore, _, ledger, now := newTestService(t)

	ledger.balances["alice"] = d("1000")
	_, err := s.Deposit(ctx, "alice", d("1000"))
	require.NoError(t, err)
	poolStore.pool.TotalBorrows = d("800")

	*now = genesis.Add(time.Duration(leverage.YearSeconds) * time.Second)

	info, err := s.VaultInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1080", info.TotalAssets.String())
	assert.Equal(t, "1000", info.TotalShares.String())
	assert.Equal(t, "280", info.AvailableLiquidity.String())
	assert.Equal(t, "0.08", info.APY.String())

	// the projection is read only
	assert.Equal(t, "1000", poolStore.pool.TotalAssets.String())
}
