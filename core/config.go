package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config levra config
type Config struct {
	App  App        `json:"app"`
	DB   db.Config  `json:"db"`
	Loan LoanConfig `json:"loan"`
}

// App app config
type App struct {
	Location string `json:"location"`
	Genesis  int64  `json:"genesis"`
}

// LoanConfig loan policy config
type LoanConfig struct {
	// disposition of seized collateral on default: pool | reserve | burn
	SeizedCollateral string `json:"seized_collateral"`
	// faucet cap per call, 6 decimals
	FaucetCap string `json:"faucet_cap"`
}

// seized collateral policies
const (
	SeizedToPool    = "pool"
	SeizedToReserve = "reserve"
	SeizedBurned    = "burn"
)

// SeizedCollateralPolicy policy with default
func (c *Config) SeizedCollateralPolicy() string {
	switch c.Loan.SeizedCollateral {
	case SeizedToReserve, SeizedBurned:
		return c.Loan.SeizedCollateral
	}
	return SeizedToPool
}
