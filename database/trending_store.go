// database/trending_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gewnthar/trending/models"
)

// SaveCleanRun replaces the content of trending_videos with videos and
// records run in clean_runs, as one transaction. On error neither table
// changes. Clear and load: a cleaning run always starts over from raw
// snapshots, so rows of earlier runs are never kept.
func SaveCleanRun(videos []models.TrendingVideo, run models.CleanRun) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for clean run %s: %w", run.RunLabel, err)
	}
	defer tx.Rollback()

	if err := replaceTrendingVideos(tx, videos, run.RunLabel); err != nil {
		return err
	}
	if err := insertCleanRun(tx, run); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for clean run %s: %w", run.RunLabel, err)
	}

	log.Printf("Database: Saved %d trending videos and logged run %s\n", len(videos), run.RunLabel)
	return nil
}

func replaceTrendingVideos(tx *sql.Tx, videos []models.TrendingVideo, runLabel string) error {
	// Clear the previous run
	res, err := tx.Exec("DELETE FROM trending_videos")
	if err != nil {
		return fmt.Errorf("failed to clear trending videos: %w", err)
	}
	if cleared, err := res.RowsAffected(); err == nil && cleared > 0 {
		log.Printf("Database: Cleared %d trending videos of the previous run\n", cleared)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO trending_videos (
			row_index, video_id, title, published_at, channel_id, channel_title,
			category_id, trending_date, view_count, likes, comment_count,
			comments_disabled, description, notes, age, temperature,
			run_label, loaded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare trending video insert statement: %w", err)
	}
	defer stmt.Close()

	// Insert in row order; row_index keeps it for GetTrendingVideos
	loadedAt := time.Now().UTC()
	for i, v := range videos {
		_, err := stmt.Exec(
			i, v.VideoID, v.Title, v.PublishedAt, v.ChannelID, v.ChannelTitle,
			v.CategoryID, v.TrendingDate, v.ViewCount, v.Likes, v.CommentCount,
			v.CommentsDisabled, v.Description, v.Notes, nullInt64(v.Age), nullInt64(v.Temperature),
			runLabel, loadedAt,
		)
		if err != nil {
			log.Printf("ERROR saving trending video: %+v, Error: %v", v, err)
			return fmt.Errorf("failed to execute trending video insert for video_id '%s', published_at '%s': %w", v.VideoID, v.PublishedAt, err)
		}
	}
	return nil
}

// GetTrendingVideos returns the loaded table in row order.
func GetTrendingVideos() ([]models.TrendingVideo, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	rows, err := DB.Query(`
		SELECT video_id, title, published_at, channel_id, channel_title,
		       category_id, trending_date, view_count, likes, comment_count,
		       comments_disabled, description, notes, age, temperature
		FROM trending_videos
		ORDER BY row_index
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trending videos: %w", err)
	}
	defer rows.Close()

	videos := []models.TrendingVideo{}
	for rows.Next() {
		var v models.TrendingVideo
		var age, temperature sql.NullInt64
		err := rows.Scan(
			&v.VideoID, &v.Title, &v.PublishedAt, &v.ChannelID, &v.ChannelTitle,
			&v.CategoryID, &v.TrendingDate, &v.ViewCount, &v.Likes, &v.CommentCount,
			&v.CommentsDisabled, &v.Description, &v.Notes, &age, &temperature,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trending video row: %w", err)
		}
		if age.Valid {
			v.Age = &age.Int64
		}
		if temperature.Valid {
			v.Temperature = &temperature.Int64
		}
		videos = append(videos, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trending video rows: %w", err)
	}
	return videos, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
