package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"optjournal/render"
)

var historyCmd = &cobra.Command{
	Use:   "history <position-id>",
	Short: "Show one position and its adjustments",
	Long: `Show the full record of a position, open or closed, together with its
adjustment history in the order the adjustments were recorded.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

var historyPlain bool

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolVar(&historyPlain, "plain", false, "print raw markdown without terminal styling")
}

func runHistory(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("position id %q is not a number", args[0])
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	position, err := store.Position(cmd.Context(), id)
	if err != nil {
		return err
	}
	adjustments, err := store.Adjustments(cmd.Context(), id)
	if err != nil {
		return err
	}

	markdown := render.PositionDetailMarkdown(render.PositionDetail{
		Position:    position,
		Adjustments: adjustments,
	})
	return printMarkdown(markdown, historyPlain)
}
