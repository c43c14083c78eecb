package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var repayCmd = &cobra.Command{
	Use:   "repay",
	Short: "repay an active loan",
	Run: func(cmd *cobra.Command, args []string) {
		loanID, e := cmd.Flags().GetUint64("loan")
		if e != nil || loanID == 0 {
			panic("invalid loan id")
		}

		amount, e := cmd.Flags().GetString("amount")
		if e != nil {
			panic(e)
		}
		amountNum, e := decimal.NewFromString(amount)
		if e != nil || !amountNum.IsPositive() {
			panic("invalid amount")
		}

		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		loanService := provideLoanService(database)

		loan, err := loanService.RepayLoan(ctx, loanID, amountNum)
		if err != nil {
			cmd.PrintErrln("repay error:", err)
			return
		}

		cmd.Println("loan status:", loan.Status.String())
		cmd.Println("repaid amount:", loan.RepaidAmount)
	},
}

func init() {
	rootCmd.AddCommand(repayCmd)
	repayCmd.Flags().Uint64P("loan", "l", 0, "loan id")
	repayCmd.Flags().StringP("amount", "q", "", "payment amount")
}
