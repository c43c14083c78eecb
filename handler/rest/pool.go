package rest

import (
	"net/http"

	"levra/core"
	"levra/handler/param"
	"levra/handler/render"
	"levra/pkg/number"
)

func vaultInfoHandler(poolService core.PoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := poolService.VaultInfo(r.Context())
		if err != nil {
			render.CodeError(w, err)
			return
		}

		render.JSON(w, info)
	}
}

func depositHandler(poolService core.PoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Address string `json:"address" valid:"required"`
			Amount  string `json:"amount" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		shares, err := poolService.Deposit(r.Context(), params.Address, number.Decimal(params.Amount))
		if err != nil {
			render.CodeError(w, err)
			return
		}

		render.JSON(w, render.H{"shares": shares})
	}
}

func withdrawHandler(poolService core.PoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Address   string `json:"address" valid:"required"`
			Shares    string `json:"shares" valid:"required"`
			Recipient string `json:"recipient"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := poolService.Withdraw(r.Context(), params.Address, number.Decimal(params.Shares), params.Recipient)
		if err != nil {
			render.CodeError(w, err)
			return
		}

		render.JSON(w, render.H{"amount": amount})
	}
}
