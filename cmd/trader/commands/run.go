package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/stonjarli/backend/internal/contracts"
)

var runJSON bool

// runCmd executes one strategy immediately
var runCmd = &cobra.Command{
	Use:   "run [strategy_id]",
	Short: "Run a strategy once and print the run summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		strategyID := args[0]

		d, err := newDeps()
		if err != nil {
			return err
		}
		defer d.close()

		if err := d.requireStrategies(ctx); err != nil {
			return err
		}

		orch, ok := d.strategies[strategyID]
		if !ok {
			ids := make([]string, 0, len(d.strategies))
			for id := range d.strategies {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			return fmt.Errorf("unknown strategy %q, available: %v", strategyID, ids)
		}

		summary, runErr := orch.Run(ctx)
		printSummary(summary)
		return runErr
	},
}

// printSummary writes the run summary to stdout.
func printSummary(s *contracts.RunSummary) {
	if runJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(s)
		return
	}

	fmt.Printf("Run %s (%s)\n", s.RunID, s.Duration.Round(time.Millisecond))
	if s.Regime != "" {
		fmt.Printf("  regime:    %s\n", s.Regime)
	}
	fmt.Printf("  attempted: %d\n", s.Attempted)
	fmt.Printf("  qualified: %d\n", s.Qualified)
	fmt.Printf("  ranked:    %d\n", s.Ranked)
	fmt.Printf("  gated:     %d\n", s.Gated)
	fmt.Printf("  submitted: %d\n", s.Submitted)

	if len(s.Exclusions) > 0 {
		names := make([]string, 0, len(s.Exclusions))
		for name := range s.Exclusions {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("  exclusions:")
		for _, name := range names {
			fmt.Printf("    %-18s %d\n", name, s.Exclusions[name])
		}
	}

	for _, o := range s.Orders {
		status := "ok"
		if o.Err != "" {
			status = "FAILED: " + o.Err
		}
		fmt.Printf("  order: %s %s x%d  %s\n", o.Side, o.Symbol, o.Qty, status)
	}

	if s.ZeroOrders() && s.EmptiedAt != "" {
		fmt.Printf("  no orders placed, pipeline emptied at %s\n", s.EmptiedAt)
	}

	for _, e := range s.Errors {
		fmt.Printf("  error [%s] %s: %s\n", e.Stage, e.Symbol, e.Message)
	}
}

func init() {
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print the summary as JSON")
	rootCmd.AddCommand(runCmd)
}
