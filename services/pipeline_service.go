// services/pipeline_service.go
package services

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/gewnthar/trending/config"
	"github.com/gewnthar/trending/database"
	"github.com/gewnthar/trending/models"
	"github.com/gewnthar/trending/scraper"
)

// CleanRunResult is what one RunClean produced.
type CleanRunResult struct {
	Run    models.CleanRun
	Report CleanReport
	Videos []models.TrendingVideo
}

// RunClean reads the raw snapshot directory, cleans the merged rows and
// writes the cleaned CSV. With a database configured the cleaned table is
// also loaded into trending_videos and the run is logged to clean_runs.
// The CSV is moved into place last: every failure, the database included,
// leaves the previous artifact as is.
func RunClean(cfg *config.Config) (*CleanRunResult, error) {
	log.Printf("Service: Cleaning snapshots from %s into %s\n", cfg.Snapshots.Dir, cfg.Output.Path)

	if cfg.SinkEnabled() {
		// Connect first so an unreachable database fails the run before any output.
		if err := database.InitDB(cfg.Database); err != nil {
			return nil, fmt.Errorf("failed to initialize table sink: %w", err)
		}
		defer database.CloseDB()
	}

	// Load and merge the raw snapshots
	exclude := snapshotExclusions(cfg)
	rows, paths, err := scraper.LoadSnapshotDir(cfg.Snapshots.Dir, exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}

	opts := CleanOptions{DerivedColumns: cfg.DerivedColumnsEnabled()}
	videos, report := CleanSnapshots(rows, opts)

	// Write the table next to the artifact; it replaces it only after the sink commits
	staged, err := database.StageCleanCsv(cfg.Output.Path, videos)
	if err != nil {
		return nil, fmt.Errorf("failed to write cleaned CSV: %w", err)
	}

	run := models.CleanRun{
		RunLabel:       time.Now().UTC().Format("20060102T150405.000Z"),
		SnapshotDir:    cfg.Snapshots.Dir,
		SnapshotFiles:  len(paths),
		InputRows:      report.Input,
		MissingValue:   report.MissingValue,
		InvalidNumeric: report.InvalidNumeric,
		BadTimestamp:   report.BadTimestamp,
		Duplicates:     report.Duplicates,
		RepeatedRegion: report.RepeatedRegion,
		OutputRows:     report.Output,
		OutputPath:     cfg.Output.Path,
		FinishedAt:     time.Now().UTC(),
	}

	if cfg.SinkEnabled() {
		if err := database.SaveCleanRun(videos, run); err != nil {
			staged.Discard()
			return nil, fmt.Errorf("failed to load cleaned videos into database: %w", err)
		}
	}

	if err := staged.Commit(); err != nil {
		if cfg.SinkEnabled() {
			log.Printf("ERROR Service: Run %s is in the database but %s was not replaced\n", run.RunLabel, cfg.Output.Path)
		}
		return nil, fmt.Errorf("failed to write cleaned CSV: %w", err)
	}
	log.Printf("Service: Wrote %d cleaned videos to %s\n", len(videos), cfg.Output.Path)

	return &CleanRunResult{Run: run, Report: report, Videos: videos}, nil
}

// snapshotExclusions adds the cleaned artifact itself to the configured
// control-file patterns when it is written into the snapshot directory.
func snapshotExclusions(cfg *config.Config) []string {
	exclude := append([]string(nil), cfg.Snapshots.Exclude...)

	outDir, errOut := filepath.Abs(filepath.Dir(cfg.Output.Path))
	snapDir, errSnap := filepath.Abs(cfg.Snapshots.Dir)
	if errOut != nil || errSnap != nil || outDir == snapDir {
		exclude = append(exclude, filepath.Base(cfg.Output.Path))
	}
	return exclude
}

// LoadCleaned reads the cleaned table back from the CSV artifact.
func LoadCleaned(cfg *config.Config) ([]models.TrendingVideo, error) {
	videos, err := database.ReadCleanCsv(cfg.Output.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load cleaned videos: %w", err)
	}
	log.Printf("Service: Loaded %d cleaned videos from %s\n", len(videos), cfg.Output.Path)
	return videos, nil
}

// LoadCleanedFromDatabase reads the cleaned table from the table sink.
func LoadCleanedFromDatabase(cfg *config.Config) ([]models.TrendingVideo, error) {
	if !cfg.SinkEnabled() {
		return nil, fmt.Errorf("no database configured")
	}
	if err := database.InitDB(cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize table sink: %w", err)
	}
	defer database.CloseDB()

	return database.GetTrendingVideos()
}
