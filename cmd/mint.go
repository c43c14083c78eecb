package cmd

import (
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// mintCmd credits balance out of thin air, test networks only
var mintCmd = &cobra.Command{
	Use:     "mint",
	Aliases: []string{"faucet"},
	Short:   "mint test assets to an address",
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

		assets := provideAssetLedger(database)

		err := database.Tx(func(tx *db.DB) error {
			return assets.Mint(ctx, tx, address, amountNum)
		})
		if err != nil {
			cmd.PrintErrln("mint error:", err)
			return
		}

		balance, err := assets.Balance(ctx, address)
		if err != nil {
			cmd.PrintErrln("balance error:", err)
			return
		}

		cmd.Println("balance:", balance)
	},
}

func init() {
	rootCmd.AddCommand(mintCmd)
	mintCmd.Flags().StringP("address", "u", "", "recipient address")
	mintCmd.Flags().StringP("amount", "q", "", "amount")
}
