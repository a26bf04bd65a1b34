package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veritaslabs/veritas/internal/graph"
)

var graphTop int

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Aggregate claims across sources",
	Long: `Graph groups globally-equivalent and near-duplicate claims across all
ingested sources, ranks them by spread, and flags advisory
contradictions between groups that share entities but diverge on
figures.`,
	RunE: runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().IntVar(&graphTop, "top", 10, "number of top claim groups to print")
}

func runGraph(cmd *cobra.Command, args []string) error {
	engine, st, err := openEngine()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	groups, flags, err := engine.Aggregate()
	if err != nil {
		return fmt.Errorf("aggregate failed: %w", err)
	}

	fmt.Printf("✓ %d claim groups, %d contradiction flags\n\n", len(groups), len(flags))

	top := graph.TopClaims(groups)
	if len(top) > graphTop {
		top = top[:graphTop]
	}
	for i, g := range top {
		fmt.Printf("%2d. [%s] %s\n", i+1, g.Category, g.RepresentativeText)
		fmt.Printf("    sources=%d occurrences=%d first_seen=%s\n",
			g.SourceCount(), len(g.Occurrences), g.FirstSeen.Format("2006-01-02"))
	}

	if len(flags) > 0 {
		fmt.Println("\nContradiction flags (advisory):")
		for _, f := range flags {
			fmt.Printf("  %s ↔ %s: %s\n", f.GroupA, f.GroupB, f.Reason)
		}
	}
	return nil
}
