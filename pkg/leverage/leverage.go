package leverage

import (
	"github.com/shopspring/decimal"
)

var (
	// MinLoanAmount min loan principal
	MinLoanAmount = decimal.NewFromInt(100)
	// MaxLoanAmount max loan principal
	MaxLoanAmount = decimal.NewFromInt(100000)
	// CollateralRatio borrower share of the loan, basis points
	CollateralRatio int64 = 2000
	// PoolRatio pool share of the loan, basis points
	PoolRatio int64 = 8000
	// FixedAPY depositor yield per year, basis points
	FixedAPY int64 = 800
	// BasisPoints bps denominator
	BasisPoints int64 = 10000
	// DefaultInterestRate interest over the nominal term, basis points
	DefaultInterestRate int64 = 1000
	// DefaultLoanDuration nominal loan term in seconds
	DefaultLoanDuration int64 = 30 * 24 * 3600
	// YearSeconds accrual year
	YearSeconds int64 = 365 * 24 * 3600
	// AssetPrecision stable asset decimals
	AssetPrecision int32 = 6
	// SharePrecision pool share decimals
	SharePrecision int32 = 18
)

// divFloor a / b truncated at precision. decimal.Div rounds half up at
// its division precision, which can round above the true quotient; every
// protocol quotient must floor instead.
func divFloor(a, b decimal.Decimal, precision int32) decimal.Decimal {
	q, _ := a.QuoRem(b, precision)
	return q
}

// BpsShare amount * bps / 10000, floored at asset precision
func BpsShare(amount decimal.Decimal, bps int64) decimal.Decimal {
	return divFloor(amount.Mul(decimal.NewFromInt(bps)), decimal.NewFromInt(BasisPoints), AssetPrecision)
}

// Split splits a loan amount into collateral and pool contribution.
// collateral = floor(amount * CollateralRatio / 10000); the pool funds the
// remainder so that collateral + pool == amount exactly.
func Split(amount decimal.Decimal) (collateral, pool decimal.Decimal) {
	collateral = BpsShare(amount, CollateralRatio)
	pool = amount.Sub(collateral)
	return
}

// MintShares shares minted for a deposit.
// shares = amount * total_shares / total_assets, 1:1 on an empty pool.
func MintShares(amount, totalShares, totalAssets decimal.Decimal) decimal.Decimal {
	if totalShares.IsZero() {
		return amount.Truncate(SharePrecision)
	}

	return divFloor(amount.Mul(totalShares), totalAssets, SharePrecision)
}

// RedeemAssets assets paid for burning shares, floored so the share price
// never decreases on withdrawal.
// amount = shares * total_assets / total_shares
func RedeemAssets(shares, totalShares, totalAssets decimal.Decimal) decimal.Decimal {
	if totalShares.IsZero() {
		return decimal.Zero
	}

	return divFloor(shares.Mul(totalAssets), totalShares, AssetPrecision)
}

// SharePrice total_assets / total_shares, zero on an empty pool
func SharePrice(totalShares, totalAssets decimal.Decimal) decimal.Decimal {
	if totalShares.IsZero() {
		return decimal.Zero
	}

	return divFloor(totalAssets, totalShares, SharePrecision)
}

// YieldInterest simple non-compounding fixed-APY interest on assets over
// elapsed seconds. Zero elapsed yields zero.
// interest = assets * apy_bps * elapsed / (year * 10000)
func YieldInterest(assets decimal.Decimal, apyBps, elapsedSeconds int64) decimal.Decimal {
	if elapsedSeconds <= 0 || !assets.IsPositive() {
		return decimal.Zero
	}

	return divFloor(
		assets.Mul(decimal.NewFromInt(apyBps)).Mul(decimal.NewFromInt(elapsedSeconds)),
		decimal.NewFromInt(YearSeconds).Mul(decimal.NewFromInt(BasisPoints)),
		AssetPrecision,
	)
}

// LoanInterest simple interest pro-rated by elapsed time, capped at the
// full-duration amount. Lateness beyond the term accrues nothing extra,
// it is handled by default logic instead.
// interest = amount * rate_bps * elapsed / (duration * 10000)
func LoanInterest(amount decimal.Decimal, rateBps, elapsedSeconds, durationSeconds int64) decimal.Decimal {
	if elapsedSeconds < 0 || durationSeconds <= 0 {
		return decimal.Zero
	}
	if elapsedSeconds > durationSeconds {
		elapsedSeconds = durationSeconds
	}

	return divFloor(
		amount.Mul(decimal.NewFromInt(rateBps)).Mul(decimal.NewFromInt(elapsedSeconds)),
		decimal.NewFromInt(durationSeconds).Mul(decimal.NewFromInt(BasisPoints)),
		AssetPrecision,
	)
}
