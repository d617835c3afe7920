package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"optjournal/render"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show open positions",
	Long:  `List every position with no closing trade, in insertion order.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var listPlain bool

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listPlain, "plain", false, "print raw markdown without terminal styling")
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	positions, err := store.OpenPositions(cmd.Context())
	if err != nil {
		return err
	}

	markdown := render.OpenPositionsMarkdown(positions)
	return printMarkdown(markdown, listPlain)
}

// printMarkdown styles markdown for the terminal unless plain output was
// requested; styling failures fall back to the raw markdown.
func printMarkdown(markdown string, plain bool) error {
	if !plain {
		if styled, err := render.Terminal(markdown); err == nil {
			fmt.Print(styled)
			return nil
		}
	}
	fmt.Print(markdown)
	return nil
}
