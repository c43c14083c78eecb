package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "deposit assets into the lending pool",
	Run: func(cmd *cobra.Command, args []string) {
		address, e := cmd.Flags().GetString("address")
		if e != nil || address == "" {
			panic("invalid address")
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

		poolService := providePoolService(database)

		shares, err := poolService.Deposit(ctx, address, amountNum)
		if err != nil {
			cmd.PrintErrln("deposit error:", err)
			return
		}

		cmd.Println("minted shares:", shares)
	},
}

func init() {
	rootCmd.AddCommand(depositCmd)
	depositCmd.Flags().StringP("address", "u", "", "depositor address")
	depositCmd.Flags().StringP("amount", "q", "", "amount")
}
