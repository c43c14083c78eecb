package cmd

import (
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

// command for migrating database
var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Aliases: []string{"setdb"},
	Short:   "migrate database tables",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			cmd.PrintErrln("migrate database error:", err)
			return
		}

		genesis := time.Now()
		if cfg.App.Genesis > 0 {
			genesis = time.Unix(cfg.App.Genesis, 0)
		}

		if err := providePoolStore(database).Init(ctx, genesis); err != nil {
			cmd.PrintErrln("init pool error:", err)
			return
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
