package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001
	// ErrVersionConflict concurrent update lost the version race, retryable
	ErrVersionConflict ErrorCode = 100002

	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrInsufficientShares not enough deposited shares
	ErrInsufficientShares ErrorCode = 100102
	// ErrInsufficientLiquidity pool free assets cannot cover the request
	ErrInsufficientLiquidity ErrorCode = 100103
	// ErrInsufficientBalance asset balance too low
	ErrInsufficientBalance ErrorCode = 100104

	// ErrLoanAmountOutOfRange loan amount out of [min, max]
	ErrLoanAmountOutOfRange ErrorCode = 100200
	// ErrActiveLoanExists borrower already has an active loan
	ErrActiveLoanExists ErrorCode = 100201
	// ErrLoanNotFound no loan
	ErrLoanNotFound ErrorCode = 100202
	// ErrLoanNotActive loan already repaid or defaulted
	ErrLoanNotActive ErrorCode = 100203

	// ErrNoCollateral no collateral submitted
	ErrNoCollateral ErrorCode = 100300
	// ErrCollateralLocked collateral locked by an active loan
	ErrCollateralLocked ErrorCode = 100301
	// ErrInsufficientCollateral unlocked collateral below required ratio
	ErrInsufficientCollateral ErrorCode = 100302

	// ErrWalletProvisioningFailed restricted wallet factory failed, retryable
	ErrWalletProvisioningFailed ErrorCode = 100400
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

// Retryable reports whether the caller may retry the operation unchanged.
func (e ErrorCode) Retryable() bool {
	switch e {
	case ErrVersionConflict, ErrWalletProvisioningFailed:
		return true
	}
	return false
}
