package leverage

import (
	"time"

	"levra/core"

	"github.com/shopspring/decimal"
)

// Accrue settles fixed-APY yield on the pool in place and returns the
// interest added. Idempotent within the same instant: zero elapsed time
// is a no-op. Must run before any other pool mutation in the same
// transaction.
func Accrue(pool *core.Pool, now time.Time) decimal.Decimal {
	elapsed := now.Unix() - pool.LastAccrualAt.Unix()
	interest := YieldInterest(pool.TotalAssets, FixedAPY, elapsed)

	if elapsed > 0 {
		pool.LastAccrualAt = now
	}

	if interest.IsPositive() {
		pool.TotalAssets = pool.TotalAssets.Add(interest)
	}

	return interest
}
