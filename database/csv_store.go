// database/csv_store.go
package database

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gewnthar/trending/models"
	"github.com/jszwec/csvutil"
)

// indexColumn is the header of the leading row-number column. The artifact
// keeps it unnamed, as the plotting side expects.
const indexColumn = ""

type indexedVideo struct {
	Index int `csv:"index"`
	models.TrendingVideo
}

// StagedCsv is a cleaned table written next to its final path but not yet
// moved into place.
type StagedCsv struct {
	path    string
	tmpPath string
}

// StageCleanCsv writes the cleaned table to path as comma-separated text with
// a leading unnamed row-index column. The rows go to a temporary file in the
// same directory; path is untouched until Commit.
func StageCleanCsv(path string, videos []models.TrendingVideo) (staged *StagedCsv, err error) {
	// Create the temporary file next to the target so the rename stays on one filesystem
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err = w.Write(append([]string{indexColumn}, models.CleanColumns...)); err != nil {
		return nil, fmt.Errorf("failed to write header to %s: %w", tmp.Name(), err)
	}

	enc := csvutil.NewEncoder(w)
	enc.AutoHeader = false
	for i, v := range videos {
		if err = enc.Encode(indexedVideo{Index: i, TrendingVideo: v}); err != nil {
			return nil, fmt.Errorf("failed to encode row %d (video_id '%s'): %w", i, v.VideoID, err)
		}
	}

	// Flush buffered rows before closing
	w.Flush()
	if err = w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	return &StagedCsv{path: path, tmpPath: tmp.Name()}, nil
}

// Commit moves the staged table over its final path.
func (s *StagedCsv) Commit() error {
	if err := os.Rename(s.tmpPath, s.path); err != nil {
		os.Remove(s.tmpPath)
		return fmt.Errorf("failed to move cleaned CSV into place at %s: %w", s.path, err)
	}
	return nil
}

// Discard removes the staged table and leaves the final path as it was.
func (s *StagedCsv) Discard() {
	if err := os.Remove(s.tmpPath); err != nil && !os.IsNotExist(err) {
		log.Printf("WARN Database: Failed to remove staged CSV %s: %v\n", s.tmpPath, err)
	}
}

// ReadCleanCsv loads a cleaned table written by StageCleanCsv. The row-index
// column is ignored, and artifacts without it load the same way.
func ReadCleanCsv(path string) ([]models.TrendingVideo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cleaned CSV %s: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("cleaned CSV %s is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	if header[0] == indexColumn {
		header[0] = "index"
	}

	dec, err := csvutil.NewDecoder(r, header...)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for %s: %w", path, err)
	}

	videos := []models.TrendingVideo{}
	for {
		var v models.TrendingVideo
		err := dec.Decode(&v)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode cleaned CSV %s: %w", path, err)
		}
		videos = append(videos, v)
	}
	return videos, nil
}
