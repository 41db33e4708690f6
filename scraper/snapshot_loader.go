// scraper/snapshot_loader.go
package scraper

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/gewnthar/trending/models"
)

// Verbose enables one log line per snapshot file.
var Verbose = false

// ListSnapshotFiles returns the data files in dir, sorted by name.
// Sub-directories and every file whose name matches one of the exclude
// glob patterns are left out.
func ListSnapshotFiles(dir string, exclude []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		excluded, err := matchesAny(name, exclude)
		if err != nil {
			return nil, err
		}
		if excluded {
			if Verbose {
				log.Printf("Scraper: Skipping control file %s\n", name)
			}
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

func matchesAny(name string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := filepath.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// MergeSnapshots parses every file and concatenates the rows, file by file.
// The first malformed file aborts the merge.
func MergeSnapshots(paths []string) ([]models.SnapshotRow, error) {
	merged := []models.SnapshotRow{}
	for _, path := range paths {
		rows, err := parseSnapshotFile(path)
		if err != nil {
			return nil, err
		}
		if Verbose {
			log.Printf("Scraper: Parsed %d rows from %s\n", len(rows), filepath.Base(path))
		}
		merged = append(merged, rows...)
	}
	return merged, nil
}

func parseSnapshotFile(path string) ([]models.SnapshotRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file %s: %w", path, err)
	}
	defer file.Close()

	return ParseSnapshotTsv(file, filepath.Base(path))
}

// LoadSnapshotDir lists and merges the snapshot files of dir and returns the
// merged rows together with the files they came from.
// It returns ErrNoSnapshotFiles when nothing is left after exclusion; a
// directory of header-only files yields an empty slice and no error.
func LoadSnapshotDir(dir string, exclude []string) ([]models.SnapshotRow, []string, error) {
	paths, err := ListSnapshotFiles(dir, exclude)
	if err != nil {
		return nil, nil, err
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("%w in %s", ErrNoSnapshotFiles, dir)
	}

	rows, err := MergeSnapshots(paths)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to merge snapshots from %s: %w", dir, err)
	}

	log.Printf("Scraper: Merged %d rows from %d snapshot files in %s\n", len(rows), len(paths), dir)
	if Verbose {
		counts := RowsByRegion(rows)
		regions := make([]string, 0, len(counts))
		for region := range counts {
			regions = append(regions, region)
		}
		sort.Strings(regions)
		for _, region := range regions {
			log.Printf("Scraper:   %s: %d rows\n", region, counts[region])
		}
	}
	return rows, paths, nil
}

// RowsByRegion counts merged rows per region code. Rows from files without
// a region code are counted under "unknown".
func RowsByRegion(rows []models.SnapshotRow) map[string]int {
	counts := make(map[string]int)
	for _, row := range rows {
		region := row.Region
		if region == "" {
			region = "unknown"
		}
		counts[region]++
	}
	return counts
}
