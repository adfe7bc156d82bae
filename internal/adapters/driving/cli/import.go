package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/estatemap/internal/adapters/driven/filewatch"
)

var importWatch bool

var importCmd = &cobra.Command{
	Use:   "import [file.csv]",
	Short: "Import the project register into the local catalogue",
	Long: `Loads a RERA project register export into the local sqlite catalogue.

The CSV must have a header row using the register column names
(project_id, project_name, promoter_name, latitude, longitude, ...).
Rows are upserted by project_id, so importing a newer export updates
existing projects.

With --watch the file is imported again every time it changes, until
interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&importWatch, "watch", "w", false, "re-import whenever the file changes")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errNoCatalogService
	}

	path := args[0]
	if err := importFile(cmd, path); err != nil {
		return err
	}
	if !importWatch {
		return nil
	}

	changes, err := filewatch.Watch(cmd.Context(), path, filewatch.DefaultDebounce)
	if err != nil {
		return err
	}
	cmd.Printf("Watching %s for changes (Ctrl+C to stop)\n", path)

	for range changes {
		if err := importFile(cmd, path); err != nil {
			// Exporters may still be writing; the next change retries.
			cmd.PrintErrf("Import failed: %v\n", err)
		}
	}
	return nil
}

func importFile(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	report, err := catalogService.ImportCSV(cmd.Context(), f)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Read %d rows: %d imported, %d skipped.\n", report.Rows, report.Imported, report.Skipped)
	cmd.Printf("Catalogue now holds %d projects.\n", report.Total)
	return nil
}
