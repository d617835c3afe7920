package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"optjournal/journal"
	"optjournal/pkg/id"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export closed trades to CSV",
	Long: `Write the closed-trade history to a CSV file. Without --out the file
is named closed-<ulid>.csv, so successive exports sort by creation time.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var exportOut string

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default closed-<ulid>.csv)")
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	trades, err := store.ClosedTrades(cmd.Context())
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = fmt.Sprintf("closed-%s.csv", id.New())
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := journal.WriteClosedTradesCSV(f, trades); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	fmt.Printf("Exported %d closed trades to %s\n", len(trades), out)
	return nil
}
