// scraper/snapshot_parser.go
package scraper

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gewnthar/trending/models"
	"github.com/gewnthar/trending/utils"
	"github.com/jszwec/csvutil"
)

var (
	// ErrMalformedSnapshot means a snapshot file does not follow the
	// tab-separated, header-first layout with the expected columns.
	ErrMalformedSnapshot = errors.New("malformed snapshot file")
	// ErrNoSnapshotFiles means the snapshot directory holds no data files.
	ErrNoSnapshotFiles = errors.New("no snapshot files found")
)

// ParseSnapshotTsv reads one tab-separated crawler snapshot with a header row
// and returns its rows. sourceFile is recorded on every row.
func ParseSnapshotTsv(reader io.Reader, sourceFile string) ([]models.SnapshotRow, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = '\t'
	csvReader.LazyQuotes = true

	header, err := csvReader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s has no header row", ErrMalformedSnapshot, sourceFile)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header of %s: %v", ErrMalformedSnapshot, sourceFile, err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	header = models.RenameColumns(header)

	if err := checkHeader(header); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedSnapshot, sourceFile, err)
	}

	// The header is handed over explicitly; csvutil reads records only.
	decoder, err := csvutil.NewDecoder(csvReader, header...)
	if err != nil {
		return nil, fmt.Errorf("failed to create TSV decoder for %s: %w", sourceFile, err)
	}

	region := utils.RegionFromFilename(sourceFile)
	rows := []models.SnapshotRow{}
	for {
		var row models.SnapshotRow
		err := decoder.Decode(&row)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrMalformedSnapshot, sourceFile, err)
		}
		row.SourceFile = sourceFile
		row.Region = region
		rows = append(rows, row)
	}

	return rows, nil
}

func checkHeader(header []string) error {
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if seen[name] {
			return fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = true
	}
	var missing []string
	for _, name := range models.RequiredSnapshotColumns {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing columns %s", strings.Join(missing, ", "))
	}
	return nil
}
