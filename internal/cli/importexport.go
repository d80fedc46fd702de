package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"betjournal/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Bulk-import trades from a CSV export",
	Long: `Import trades from a CSV file. UTF-8 and UTF-16 (BOM) encodings are
detected automatically, headers are matched by name, and numbers are parsed
in either decimal convention. Malformed rows are skipped and reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export <file.csv>",
	Short: "Export the enriched journal to CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	res, err := importer.ReadTrades(f)
	if err != nil {
		return err
	}

	service, closer, err := openService()
	if err != nil {
		return err
	}
	defer closer()

	stored, err := service.ImportTrades(cmd.Context(), res.Trades)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d trades (%d malformed rows skipped)\n", stored, res.Skipped)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	service, closer, err := openService()
	if err != nil {
		return err
	}
	defer closer()

	trades, err := service.EnrichedTrades(cmd.Context())
	if err != nil {
		return err
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := importer.WriteTrades(f, trades); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported %d trades to %s\n", len(trades), args[0])
	return nil
}
