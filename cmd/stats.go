package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/saanvi/preppal/internal/question"
	"github.com/saanvi/preppal/internal/store"
	"github.com/saanvi/preppal/internal/usage"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ledger := usage.NewLedger(st, nil)
		cfg := usage.LoadSettings(ctx, st)
		used := ledger.SecondsUsed(ctx)
		remaining := ledger.Remaining(ctx, cfg.DailySecs)
		fmt.Printf("Today: %dm %02ds used, %dm %02ds remaining\n\n",
			used/60, used%60, remaining/60, remaining%60)

		stats, err := st.Stats(ctx)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SUBJECT\tSESSIONS\tQUESTIONS\tCORRECT\tACCURACY\tTIME")
		for _, s := range stats {
			name := question.Subject(s.Subject).DisplayName()
			if s.Subject == "writing" {
				name = "Writing"
			}
			accuracy := "-"
			if s.Questions > 0 {
				accuracy = fmt.Sprintf("%d%%", 100*s.Correct/s.Questions)
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%dm\n",
				name, s.Sessions, s.Questions, s.Correct, accuracy, s.DurationSecs/60)
		}
		return w.Flush()
	},
}
