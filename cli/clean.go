// cli/clean.go
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gewnthar/trending/models"
	"github.com/gewnthar/trending/services"
	"github.com/spf13/cobra"
)

var cleanFlags struct {
	dataDir   string
	out       string
	noDerived bool
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Merge the raw snapshots and write the cleaned CSV",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().StringVar(&cleanFlags.dataDir, "data-dir", "", "Snapshot directory (overrides snapshots.dir)")
	cleanCmd.Flags().StringVarP(&cleanFlags.out, "out", "o", "", "Cleaned CSV path (overrides output.path)")
	cleanCmd.Flags().BoolVar(&cleanFlags.noDerived, "no-derived", false, "Skip the age and temperature columns")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cleanFlags.dataDir != "" {
		cfg.Snapshots.Dir = cleanFlags.dataDir
	}
	if cleanFlags.out != "" {
		cfg.Output.Path = cleanFlags.out
		if err := os.MkdirAll(filepath.Dir(cfg.Output.Path), 0755); err != nil {
			return fmt.Errorf("failed to create directory for cleaned CSV: %w", err)
		}
	}
	if cleanFlags.noDerived {
		off := false
		cfg.Clean.DerivedColumns = &off
	}

	result, err := services.RunClean(cfg)
	if err != nil {
		return err
	}

	r := result.Report
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Cleaned data: %d rows x %d columns -> %s\n", r.Output, len(models.CleanColumns), cfg.Output.Path)
	fmt.Fprintf(out, "  snapshot files:   %d\n", result.Run.SnapshotFiles)
	fmt.Fprintf(out, "  merged rows:      %d\n", r.Input)
	fmt.Fprintf(out, "  missing values:   %d\n", r.MissingValue)
	fmt.Fprintf(out, "  invalid numbers:  %d\n", r.InvalidNumeric)
	fmt.Fprintf(out, "  bad timestamps:   %d\n", r.BadTimestamp)
	fmt.Fprintf(out, "  duplicates:       %d\n", r.Duplicates)
	if r.RepeatedRegion > 0 {
		fmt.Fprintf(out, "  repeated regions: %d (notes count crawl dates for these)\n", r.RepeatedRegion)
	}
	return nil
}
