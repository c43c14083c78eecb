package rest

import (
	"net/http"

	"levra/core"
	"levra/handler/param"
	"levra/handler/render"
	"levra/handler/views"
	"levra/pkg/leverage"
	"levra/pkg/number"

	"github.com/shopspring/decimal"
)

func collateralHandler(collateralService core.CollateralService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Borrower string `json:"borrower" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		record, err := collateralService.Find(r.Context(), params.Borrower)
		if err != nil {
			render.CodeError(w, err)
			return
		}

		render.JSON(w, convert2CollateralView(record))
	}
}

func submitCollateralHandler(collateralService core.CollateralService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Borrower string `json:"borrower" valid:"required"`
			Amount   string `json:"amount" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		record, err := collateralService.Submit(r.Context(), params.Borrower, number.Decimal(params.Amount))
		if err != nil {
			render.CodeError(w, err)
			return
		}

		render.JSON(w, convert2CollateralView(record))
	}
}

func withdrawCollateralHandler(collateralService core.CollateralService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Borrower string `json:"borrower" valid:"required"`
			Amount   string `json:"amount" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := collateralService.WithdrawUnlocked(r.Context(), params.Borrower, number.Decimal(params.Amount)); err != nil {
			render.CodeError(w, err)
			return
		}

		render.JSON(w, render.H{"ok": true})
	}
}

func convert2CollateralView(record *core.Collateral) *views.Collateral {
	maxLoan := decimal.Zero
	if !record.Locked {
		// collateral carries CollateralRatio bps of the loan
		maxLoan = record.Amount.
			Mul(decimal.NewFromInt(leverage.BasisPoints)).
			Div(decimal.NewFromInt(leverage.CollateralRatio)).
			Truncate(leverage.AssetPrecision)
		if maxLoan.GreaterThan(leverage.MaxLoanAmount) {
			maxLoan = leverage.MaxLoanAmount
		}
	}

	return &views.Collateral{
		Collateral:    *record,
		MaxLoanAmount: maxLoan,
	}
}
