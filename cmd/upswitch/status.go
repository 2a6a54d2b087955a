package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/omarluq/upswitch/internal/config"
	"github.com/omarluq/upswitch/internal/probe"
	"github.com/omarluq/upswitch/internal/state"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show persisted state and live candidate reachability",
	Long: `Read-only operator report: prints the persisted run state and probes
every configured candidate concurrently. No state is written, no files are
rewritten, and no notifications are sent.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store := state.NewStore(cfg.State.GetPath(), nil)
	st := store.Load()

	fmt.Println("Persisted state:")
	fmt.Printf("  last overall reachable:  %v\n", st.LastOverallReachable)
	fmt.Printf("  down notifications sent: %d\n", st.ConsecutiveDownNotifications)
	fmt.Printf("  recovery pending:        %v\n", st.RecoveryPending)
	fmt.Println()

	prober := probe.NewTCPProber(cfg.Probe, nil)
	results := probe.ProbeAll(cmd.Context(), prober, cfg.Candidates, 4)

	fmt.Printf("Candidates (%d):\n", len(results))
	reachable := 0
	for _, r := range results {
		mark := "✗"
		if r.Reachable {
			mark = "✓"
			reachable++
		}
		fmt.Printf("  %s %-12s %s (priority %d)\n",
			mark, r.Candidate.Name, r.Candidate.Address, r.Candidate.Priority)
	}
	fmt.Printf("\n%d/%d reachable\n", reachable, len(results))

	return nil
}
