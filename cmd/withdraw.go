package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "burn pool shares and withdraw assets",
	Run: func(cmd *cobra.Command, args []string) {
		address, e := cmd.Flags().GetString("address")
		if e != nil || address == "" {
			panic("invalid address")
		}

		shares, e := cmd.Flags().GetString("shares")
		if e != nil {
			panic(e)
		}
		sharesNum, e := decimal.NewFromString(shares)
		if e != nil || !sharesNum.IsPositive() {
			panic("invalid shares")
		}

		recipient, e := cmd.Flags().GetString("recipient")
		if e != nil {
			panic(e)
		}
		if recipient == "" {
			recipient = address
		}

		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		poolService := providePoolService(database)

		amount, err := poolService.Withdraw(ctx, address, sharesNum, recipient)
		if err != nil {
			cmd.PrintErrln("withdraw error:", err)
			return
		}

		cmd.Println("withdrawn amount:", amount)
	},
}

func init() {
	rootCmd.AddCommand(withdrawCmd)
	withdrawCmd.Flags().StringP("address", "u", "", "depositor address")
	withdrawCmd.Flags().StringP("shares", "q", "", "shares to burn")
	withdrawCmd.Flags().StringP("recipient", "r", "", "recipient address, defaults to the depositor")
}
