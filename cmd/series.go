package cmd

import (
	"encoding/json"
	"errors"

	"dealer/core"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "list registered series",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		sys, err := provideSystem(ctx, database)
		if err != nil {
			cmd.PrintErrln("restore dealer error:", err)
			return
		}

		views, err := sys.dealer.SeriesList(ctx)
		if err != nil {
			cmd.PrintErrln("list series error:", err)
			return
		}

		data, _ := json.MarshalIndent(views, "", "  ")
		cmd.Println(string(data))
	},
}

var seriesRegisterCmd = &cobra.Command{
	Use:   "register [maturity] [asset id]",
	Short: "register a series as the owner, with no args the configured series are registered",
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		seeds := cfg.Series
		if len(args) > 0 {
			maturity, err := cast.ToInt64E(args[0])
			if err != nil || maturity <= 0 {
				cmd.PrintErrln("invalid maturity", args[0])
				return
			}

			seed := core.SeriesSeed{Maturity: maturity}
			if len(args) > 1 {
				seed.AssetID = args[1]
			}
			seeds = []core.SeriesSeed{seed}
		}

		database := provideDatabase()
		defer database.Close()

		sys, err := provideSystem(ctx, database)
		if err != nil {
			cmd.PrintErrln("restore dealer error:", err)
			return
		}

		for _, seed := range seeds {
			handle := sys.newSeries(&core.Series{
				Maturity: seed.Maturity,
				AssetID:  seed.AssetID,
			})

			err := sys.dealer.RegisterSeries(ctx, cfg.App.Owner, handle)
			switch {
			case errors.Is(err, core.ErrDuplicateSeries):
				cmd.Println("series", seed.Maturity, "exists")
			case err != nil:
				cmd.PrintErrln("register series", seed.Maturity, "error:", err)
				return
			default:
				cmd.Println("series", seed.Maturity, "registered")
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(seriesCmd)
	seriesCmd.AddCommand(seriesRegisterCmd)
}
