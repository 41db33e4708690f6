// models/meta.go
package models

import "time"

// CleanRun records one execution of the cleaning pipeline. RunLabel is unique
// per run.
type CleanRun struct {
	RunLabel       string    `db:"run_label" json:"run_label"`
	SnapshotDir    string    `db:"snapshot_dir" json:"snapshot_dir"`
	SnapshotFiles  int       `db:"snapshot_files" json:"snapshot_files"`
	InputRows      int       `db:"input_rows" json:"input_rows"`
	MissingValue   int       `db:"missing_value_rows" json:"missing_value_rows"`
	InvalidNumeric int       `db:"invalid_numeric_rows" json:"invalid_numeric_rows"`
	BadTimestamp   int       `db:"bad_timestamp_rows" json:"bad_timestamp_rows"`
	Duplicates     int       `db:"duplicate_rows" json:"duplicate_rows"`
	RepeatedRegion int       `db:"repeated_region_videos" json:"repeated_region_videos"`
	OutputRows     int       `db:"output_rows" json:"output_rows"`
	OutputPath     string    `db:"output_path" json:"output_path"`
	FinishedAt     time.Time `db:"finished_at" json:"finished_at"`
}
