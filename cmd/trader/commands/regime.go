package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// regimeCmd prints the current macro regime
var regimeCmd = &cobra.Command{
	Use:   "regime",
	Short: "Classify and print the current macro regime",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		d, err := newDeps()
		if err != nil {
			return err
		}
		defer d.close()

		if err := d.requireRegime(); err != nil {
			return err
		}

		fmt.Println(d.regime.Classify(ctx))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(regimeCmd)
}
