package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stonjarli/backend/internal/strategy"
)

// sellCmd runs the exit sweep over open positions
var sellCmd = &cobra.Command{
	Use:   "sell",
	Short: "Evaluate open positions against the exit rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		d, err := newDeps()
		if err != nil {
			return err
		}
		defer d.close()

		if err := d.requireBroker(); err != nil {
			return err
		}

		engine := strategy.NewExitEngine(d.broker, strategy.DefaultExitConfig(), d.log)
		verdicts, err := engine.Run(ctx)
		if err != nil {
			return err
		}

		if len(verdicts) == 0 {
			fmt.Println("No open positions")
			return nil
		}

		for _, v := range verdicts {
			fmt.Printf("%-6s %-5s held %3dd  %+6.1f%%  %s\n",
				v.Symbol, v.Action, v.HeldDays, v.GainPct, v.Reason)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(sellCmd)
}
