package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	assistTimeout time.Duration
	assistJSON    string
)

// assistCmd represents the assist command
var assistCmd = &cobra.Command{
	Use:   "assist <source-id>",
	Short: "Discover and score evidence for a source's claims",
	Long: `Assist routes every extracted claim to its best evidence sources,
fetches candidates from structured public APIs, scores each candidate
with the rule-based signal engine, and assigns guardrailed auto-status
verdicts. CONTRADICTED is never assigned automatically.

Example:
  veritas assist 3f9a1c2b4d6e --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runAssist,
}

func init() {
	rootCmd.AddCommand(assistCmd)
	assistCmd.Flags().DurationVar(&assistTimeout, "timeout", 10*time.Minute, "per-source deadline; unstarted claims stay unknown")
	assistCmd.Flags().StringVar(&assistJSON, "json", "", "write the run report to this JSON path")
}

func runAssist(cmd *cobra.Command, args []string) error {
	engine, st, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), assistTimeout)
	defer cancel()

	report, err := engine.Assist(ctx, args[0])
	if err != nil {
		return fmt.Errorf("assist failed: %w", err)
	}

	fmt.Printf("✓ Assist complete for source %s\n", report.SourceID)
	fmt.Printf("  claims:    %d\n", report.Extracted)
	fmt.Printf("  evidenced: %d\n", report.Evidenced)
	fmt.Printf("  supported: %d\n", report.Supported)
	fmt.Printf("  partial:   %d\n", report.Partial)
	fmt.Printf("  unknown:   %d\n", report.Unknown)
	fmt.Printf("  errored:   %d\n", report.Errored)

	if assistJSON != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(assistJSON, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", assistJSON, err)
		}
		fmt.Printf("✓ Wrote %s\n", assistJSON)
	}
	return nil
}
