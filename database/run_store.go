// database/run_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gewnthar/trending/models"
)

// insertCleanRun records the counts of one cleaning run in clean_runs.
func insertCleanRun(tx *sql.Tx, run models.CleanRun) error {
	_, err := tx.Exec(`
		INSERT INTO clean_runs (
			run_label, snapshot_dir, snapshot_files, input_rows,
			missing_value_rows, invalid_numeric_rows, bad_timestamp_rows,
			duplicate_rows, repeated_region_videos, output_rows, output_path,
			finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.RunLabel, run.SnapshotDir, run.SnapshotFiles, run.InputRows,
		run.MissingValue, run.InvalidNumeric, run.BadTimestamp,
		run.Duplicates, run.RepeatedRegion, run.OutputRows, run.OutputPath,
		run.FinishedAt.UTC(),
	)
	if err != nil {
		log.Printf("ERROR Database: Failed to log clean run '%s': %v", run.RunLabel, err)
		return fmt.Errorf("failed to log clean run %s: %w", run.RunLabel, err)
	}
	return nil
}

// GetCleanRuns retrieves all recorded runs, oldest first.
func GetCleanRuns() ([]models.CleanRun, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	rows, err := DB.Query(`
		SELECT run_label, snapshot_dir, snapshot_files, input_rows,
		       missing_value_rows, invalid_numeric_rows, bad_timestamp_rows,
		       duplicate_rows, repeated_region_videos, output_rows, output_path,
		       finished_at
		FROM clean_runs
		ORDER BY finished_at, run_label
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query clean_runs: %w", err)
	}
	defer rows.Close()

	var runs []models.CleanRun
	for rows.Next() {
		var r models.CleanRun
		err := rows.Scan(
			&r.RunLabel, &r.SnapshotDir, &r.SnapshotFiles, &r.InputRows,
			&r.MissingValue, &r.InvalidNumeric, &r.BadTimestamp,
			&r.Duplicates, &r.RepeatedRegion, &r.OutputRows, &r.OutputPath,
			&r.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clean_runs row: %w", err)
		}
		runs = append(runs, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clean_runs rows: %w", err)
	}
	return runs, nil
}
