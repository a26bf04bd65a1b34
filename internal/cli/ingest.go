package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/veritaslabs/veritas/internal/ingest"
)

var ingestTitle string

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest <file.txt>",
	Short: "Ingest a plain-text file as a new source",
	Long: `Ingest reads a plain-text file, splits it into pseudo-segments with
synthetic timestamps, and registers it as a source ready for claim
extraction.

Example:
  veritas ingest transcript.txt --title "Q4 earnings call"`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVar(&ingestTitle, "title", "", "source title (default: file name)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	_, st, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	src, err := ingest.TextFile(st, args[0], ingestTitle, time.Now())
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	segments, err := st.ListSegments(src.ID)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Ingested %q as source %s (%d segments)\n", src.Title, src.ID, len(segments))
	fmt.Printf("\nNext:\n  veritas extract %s\n", src.ID)
	return nil
}
