package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var extractJSON string

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <source-id>",
	Short: "Extract claims from an ingested source",
	Long: `Extract runs the deterministic claim pipeline over a source's
segments: stitching, sentence splitting, candidate detection, fragment
filtering, classification, and deduplication. Re-running on the same
source produces zero new claims.

Example:
  veritas extract 3f9a1c2b4d6e --json claims.json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVar(&extractJSON, "json", "", "write extracted claims to this JSON path")
}

func runExtract(cmd *cobra.Command, args []string) error {
	engine, st, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	claims, err := engine.Extract(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	fmt.Printf("✓ Extracted %d claims from source %s\n", len(claims), args[0])
	if verbose {
		for _, c := range claims {
			fmt.Printf("  [%s/%s] %s\n", c.Category, c.ConfidenceLanguage, c.Text)
		}
	}

	if extractJSON != "" {
		data, err := json.MarshalIndent(claims, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(extractJSON, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", extractJSON, err)
		}
		fmt.Printf("✓ Wrote %s\n", extractJSON)
	}
	return nil
}
