package rest

import (
	"net/http"

	"levra/core"
	"levra/handler/param"
	"levra/handler/render"
	"levra/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

var defaultFaucetCap = decimal.NewFromInt(10000)

func faucetHandler(cfg *core.Config, database *db.DB, assets core.AssetLedger) http.HandlerFunc {
	faucetCap := number.Decimal(cfg.Loan.FaucetCap)
	if !faucetCap.IsPositive() {
		faucetCap = defaultFaucetCap
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Address string `json:"address" valid:"required"`
			Amount  string `json:"amount" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount := number.Decimal(params.Amount)
		if !amount.IsPositive() || amount.GreaterThan(faucetCap) {
			render.CodeError(w, core.ErrInvalidAmount)
			return
		}

		err := database.Tx(func(tx *db.DB) error {
			return assets.Mint(r.Context(), tx, params.Address, amount)
		})
		if err != nil {
			render.CodeError(w, err)
			return
		}

		render.JSON(w, render.H{"ok": true})
	}
}
