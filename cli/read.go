// cli/read.go
package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/gewnthar/trending/models"
	"github.com/gewnthar/trending/services"
	"github.com/spf13/cobra"
)

var readFlags struct {
	out    string
	fromDB bool
	top    int
}

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Load the cleaned table and print a summary",
	Args:  cobra.NoArgs,
	RunE:  runRead,
}

func init() {
	readCmd.Flags().StringVarP(&readFlags.out, "out", "o", "", "Cleaned CSV path (overrides output.path)")
	readCmd.Flags().BoolVar(&readFlags.fromDB, "from-db", false, "Read from the configured database instead of the CSV")
	readCmd.Flags().IntVar(&readFlags.top, "top", 10, "Number of hottest videos to list")
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if readFlags.out != "" {
		cfg.Output.Path = readFlags.out
	}

	var videos []models.TrendingVideo
	if readFlags.fromDB {
		videos, err = services.LoadCleanedFromDatabase(cfg)
	} else {
		videos, err = services.LoadCleaned(cfg)
	}
	if err != nil {
		return err
	}

	summary := services.SummarizeCleaned(videos, readFlags.top)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Cleaned data: %d rows x %d columns\n", summary.Videos, len(models.CleanColumns))
	fmt.Fprintf(out, "Attributes: %s\n", strings.Join(models.CleanColumns, ", "))
	fmt.Fprintf(out, "Total views: %d\n", summary.TotalViews)
	fmt.Fprintf(out, "Trending in more than one region: %d (max %d regions)\n", summary.MultiRegion, summary.MaxNotes)

	notes := make([]int, 0, len(summary.ByNotes))
	for n := range summary.ByNotes {
		notes = append(notes, n)
	}
	sort.Ints(notes)
	for _, n := range notes {
		fmt.Fprintf(out, "  %d region(s): %d videos\n", n, summary.ByNotes[n])
	}

	if len(summary.Hottest) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VIDEO\tTEMPERATURE\tVIEWS\tREGIONS\tTITLE")
	for _, v := range summary.Hottest {
		temperature := "-"
		if v.Temperature != nil {
			temperature = fmt.Sprint(*v.Temperature)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", v.VideoID, temperature, v.ViewCount, v.Notes, v.Title)
	}
	return tw.Flush()
}
