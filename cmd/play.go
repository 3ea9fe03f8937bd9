package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/saanvi/preppal/internal/app"
	"github.com/saanvi/preppal/internal/dataset"
	"github.com/saanvi/preppal/internal/pool"
	"github.com/saanvi/preppal/internal/store"
	"github.com/saanvi/preppal/internal/usage"
	"github.com/spf13/cobra"

	"math/rand/v2"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start practising",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store and wires the shared dependencies into the
// Bubble Tea program. The bare `preppal` invocation lands here too.
func runApp(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))

	return app.Run(app.Options{
		Store:     st,
		Ledger:    usage.NewLedger(st, nil),
		Data:      dataset.New(resolveDataBase(cmd)),
		Assembler: pool.New(rng),
		RNG:       rng,
	})
}

// resolveDataBase returns the curated question bank location: --data
// flag, then PREPPAL_DATA env var. Empty means generators only.
func resolveDataBase(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		return p
	}
	return os.Getenv("PREPPAL_DATA")
}
