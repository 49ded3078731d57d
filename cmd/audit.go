package cmd

import (
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "verify the ledger totals against the account balances",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)

		database := provideDatabase()
		defer database.Close()

		sys, err := provideSystem(ctx, database)
		if err != nil {
			cmd.PrintErrln("restore dealer error:", err)
			return
		}

		if err := sys.dealer.Audit(ctx); err != nil {
			cmd.PrintErrln("audit failed:", err)
			return
		}

		log.WithField("live", sys.dealer.Live()).Infoln("audit passed")
		cmd.Println("ok")
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
}
