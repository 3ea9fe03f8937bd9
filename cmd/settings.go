package cmd

import (
	"fmt"
	"strings"

	"github.com/saanvi/preppal/internal/question"
	"github.com/saanvi/preppal/internal/store"
	"github.com/saanvi/preppal/internal/usage"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change learner settings",
	Long: `Show or change learner settings without opening the app.

With no flags, prints the current settings. Flags change individual
values and persist immediately.`,
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

		cfg := usage.LoadSettings(ctx, st)
		changed := false

		if cmd.Flags().Changed("grade") {
			g, _ := cmd.Flags().GetString("grade")
			grade, err := parseGrade(g)
			if err != nil {
				return err
			}
			cfg.Profile.Grade = grade
			changed = true
		}
		if cmd.Flags().Changed("boards") {
			bs, _ := cmd.Flags().GetString("boards")
			boards, err := parseBoards(bs)
			if err != nil {
				return err
			}
			cfg.Profile.Boards = boards
			changed = true
		}
		if cmd.Flags().Changed("harder") {
			cfg.Profile.AllowHarder, _ = cmd.Flags().GetBool("harder")
			changed = true
		}
		if cmd.Flags().Changed("quiz-mins") {
			m, _ := cmd.Flags().GetInt("quiz-mins")
			if err := checkMinutes("quiz-mins", m); err != nil {
				return err
			}
			cfg.QuizSecs = m * 60
			changed = true
		}
		if cmd.Flags().Changed("writing-mins") {
			m, _ := cmd.Flags().GetInt("writing-mins")
			if err := checkMinutes("writing-mins", m); err != nil {
				return err
			}
			cfg.WritingSecs = m * 60
			changed = true
		}
		if cmd.Flags().Changed("daily-mins") {
			m, _ := cmd.Flags().GetInt("daily-mins")
			if err := checkMinutes("daily-mins", m); err != nil {
				return err
			}
			cfg.DailySecs = m * 60
			changed = true
		}

		if changed {
			if err := usage.SaveSettings(ctx, st, cfg); err != nil {
				return fmt.Errorf("save settings: %w", err)
			}
		}

		harder := "off"
		if cfg.Profile.AllowHarder {
			harder = "on"
		}
		fmt.Printf("Grade:           year %d\n", cfg.Profile.Grade.Level())
		fmt.Printf("Boards:          %s\n", strings.Join(cfg.Profile.Boards, ", "))
		fmt.Printf("Harder material: %s\n", harder)
		fmt.Printf("Quiz length:     %d min\n", cfg.QuizSecs/60)
		fmt.Printf("Writing length:  %d min\n", cfg.WritingSecs/60)
		fmt.Printf("Daily allowance: %d min\n", cfg.DailySecs/60)
		return nil
	},
}

func init() {
	settingsCmd.Flags().String("grade", "", "school year group (y3-y6)")
	settingsCmd.Flags().String("boards", "", "comma-separated exam boards (Generic, GL, CEM, Kent, Bexley, Medway)")
	settingsCmd.Flags().Bool("harder", false, "include material one year above the grade")
	settingsCmd.Flags().Int("quiz-mins", 0, "quiz session length in minutes (1-180)")
	settingsCmd.Flags().Int("writing-mins", 0, "writing session length in minutes (1-180)")
	settingsCmd.Flags().Int("daily-mins", 0, "daily practice allowance in minutes (1-180)")
}

func parseGrade(s string) (question.Grade, error) {
	g := question.Grade(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range question.AllGrades {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown grade %q (expected y3, y4, y5 or y6)", s)
}

func parseBoards(s string) ([]string, error) {
	var boards []string
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		matched := ""
		for _, known := range question.KnownBoards {
			if strings.EqualFold(name, known) {
				matched = known
				break
			}
		}
		if matched == "" {
			return nil, fmt.Errorf("unknown board %q (expected one of %s)",
				name, strings.Join(question.KnownBoards, ", "))
		}
		boards = append(boards, matched)
	}
	if len(boards) == 0 {
		return nil, fmt.Errorf("at least one board is required")
	}
	return boards, nil
}

func checkMinutes(flag string, m int) error {
	if m < 1 || m > 180 {
		return fmt.Errorf("--%s must be between 1 and 180", flag)
	}
	return nil
}
