// cli/root.go
package cli

import (
	"fmt"
	"log"

	"github.com/gewnthar/trending/config"
	"github.com/gewnthar/trending/scraper"
	"github.com/spf13/cobra"
)

var rootFlags struct {
	configPath string
	verbose    bool
}

var rootCmd = &cobra.Command{
	Use:   "trending",
	Short: "Merge and clean trending-video snapshots",
	Long: `trending merges the per-region trending snapshots written by the crawler,
cleans them and writes one table for plotting.

  trending clean   read the snapshot directory, write the cleaned CSV
  trending read    load the cleaned CSV and print a summary`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootFlags.configPath, "config", "c", "", "Path to config.yaml (default: ./config.yaml or ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Log every snapshot file")
}

// loadConfig loads the config file named by --config into config.AppConfig.
func loadConfig() (*config.Config, error) {
	if err := config.LoadConfig(rootFlags.configPath); err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	scraper.Verbose = rootFlags.verbose
	if rootFlags.verbose {
		log.Printf("Configuration loaded. Snapshots: %s, output: %s, derived columns: %t, table sink: %t",
			config.AppConfig.Snapshots.Dir, config.AppConfig.Output.Path,
			config.AppConfig.DerivedColumnsEnabled(), config.AppConfig.SinkEnabled())
	}
	return &config.AppConfig, nil
}
