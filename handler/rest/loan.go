package rest

import (
	"context"
	"net/http"

	"levra/core"
	"levra/handler/param"
	"levra/handler/render"
	"levra/handler/views"
	"levra/pkg/number"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

func initiateLoanHandler(loanService core.LoanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Borrower string `json:"borrower" valid:"required"`
			Amount   string `json:"amount" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		loanID, err := loanService.InitiateLoan(r.Context(), params.Borrower, number.Decimal(params.Amount))
		if err != nil {
			render.CodeError(w, err)
			return
		}

		render.JSON(w, render.H{"loan_id": loanID})
	}
}

func repayLoanHandler(loanService core.LoanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Amount string `json:"amount" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		loanID := cast.ToUint64(chi.URLParam(r, "id"))
		loan, err := loanService.RepayLoan(r.Context(), loanID, number.Decimal(params.Amount))
		if err != nil {
			render.CodeError(w, err)
			return
		}

		view, err := convert2LoanView(r.Context(), loan, loanService)
		if err != nil {
			render.CodeError(w, err)
			return
		}

		render.JSON(w, view)
	}
}

func loanHandler(loanStore core.LoanStore, loanService core.LoanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loanID := cast.ToUint64(chi.URLParam(r, "id"))

		// settle a missed due date before reporting
		loan, err := loanService.CheckDefault(r.Context(), loanID)
		if err != nil {
			render.CodeError(w, err)
			return
		}

		view, err := convert2LoanView(r.Context(), loan, loanService)
		if err != nil {
			render.CodeError(w, err)
			return
		}

		render.JSON(w, view)
	}
}

func borrowerLoansHandler(loanStore core.LoanStore, loanService core.LoanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Borrower string `json:"borrower" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		loans, err := loanStore.FindByBorrower(r.Context(), params.Borrower)
		if err != nil {
			render.CodeError(w, err)
			return
		}

		loanViews := make([]*views.Loan, 0, len(loans))
		for _, loan := range loans {
			view, err := convert2LoanView(r.Context(), loan, loanService)
			if err != nil {
				continue
			}
			loanViews = append(loanViews, view)
		}

		render.JSON(w, loanViews)
	}
}

func statsHandler(loanService core.LoanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := loanService.Stats(r.Context())
		if err != nil {
			render.CodeError(w, err)
			return
		}

		render.JSON(w, stats)
	}
}

func convert2LoanView(ctx context.Context, loan *core.Loan, loanService core.LoanService) (*views.Loan, error) {
	totalDue, err := loanService.CalculateTotalDue(ctx, loan.ID)
	if err != nil {
		return nil, err
	}

	remaining := totalDue.Sub(loan.RepaidAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return &views.Loan{
		Loan:             *loan,
		StatusText:       loan.Status.String(),
		TotalDue:         totalDue,
		RemainingBalance: remaining,
	}, nil
}
