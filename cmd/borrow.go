package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var borrowCmd = &cobra.Command{
	Use:   "borrow",
	Short: "open a leveraged loan against submitted collateral",
	Run: func(cmd *cobra.Command, args []string) {
		borrower, e := cmd.Flags().GetString("borrower")
		if e != nil || borrower == "" {
			panic("invalid borrower")
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

		loanID, err := loanService.InitiateLoan(ctx, borrower, amountNum)
		if err != nil {
			cmd.PrintErrln("borrow error:", err)
			return
		}

		cmd.Println("loan id:", loanID)
	},
}

func init() {
	rootCmd.AddCommand(borrowCmd)
	borrowCmd.Flags().StringP("borrower", "u", "", "borrower address")
	borrowCmd.Flags().StringP("amount", "q", "", "loan amount")
}
