// services/clean_service.go
package services

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/gewnthar/trending/models"
	"github.com/gewnthar/trending/utils"
)

// CleanOptions selects the optional parts of the cleaning pass.
type CleanOptions struct {
	// DerivedColumns computes age and temperature. When false both stay nil
	// and timestamps are not parsed.
	DerivedColumns bool
}

// CleanReport counts what happened to the merged rows.
type CleanReport struct {
	Input          int
	MissingValue   int // a field other than description was empty
	InvalidNumeric int // a count or comments_disabled did not parse
	BadTimestamp   int // publishedAt or trending_date matched no known format
	Duplicates     int // later rows of an already kept (video_id, published_at)
	// RepeatedRegion counts kept videos whose group has two rows from the same
	// region, e.g. one region crawled on two dates. Their notes overstate the
	// number of regions.
	RepeatedRegion int
	Output         int
}

// Dropped is the number of rows removed for bad data, duplicates excluded.
func (r CleanReport) Dropped() int {
	return r.MissingValue + r.InvalidNumeric + r.BadTimestamp
}

// CleanSnapshots turns the merged snapshot rows into the cleaned table.
//
// Rows are repaired or dropped one at a time in merged order, then grouped
// by (video_id, published_at). Every kept row carries its group size in
// Notes and only the first row of each group survives.
func CleanSnapshots(rows []models.SnapshotRow, opts CleanOptions) ([]models.TrendingVideo, CleanReport) {
	report := CleanReport{Input: len(rows)}

	candidates := make([]candidate, 0, len(rows))
	for _, row := range rows {
		// Fill the optional description, then drop incomplete rows
		if row.Description == "" {
			row.Description = " "
		}
		if hasMissingValue(row) {
			report.MissingValue++
			continue
		}

		video := models.TrendingVideo{
			VideoID:      row.VideoID,
			Title:        row.Title,
			PublishedAt:  row.PublishedAt,
			ChannelID:    row.ChannelID,
			ChannelTitle: row.ChannelTitle,
			CategoryID:   row.CategoryID,
			TrendingDate: row.TrendingDate,
			Description:  row.Description,
		}

		if opts.DerivedColumns {
			age, err := videoAge(row.PublishedAt, row.TrendingDate)
			if err != nil {
				report.BadTimestamp++
				continue
			}
			video.Age = &age
		}

		if err := coerceCounts(&video, row); err != nil {
			report.InvalidNumeric++
			continue
		}

		candidates = append(candidates, candidate{video: video, region: row.Region, sourceFile: row.SourceFile})
	}

	// Group sizes count every surviving row, before dedup
	sizes := groupSizes(candidates)
	repeated := repeatedRegions(candidates)
	report.RepeatedRegion = len(repeated)

	cleaned := make([]models.TrendingVideo, 0, len(sizes))
	kept := make(map[models.VideoKey]bool, len(sizes))
	for _, c := range candidates {
		video := c.video
		key := video.Key()
		if kept[key] {
			report.Duplicates++
			continue
		}
		kept[key] = true

		video.Notes = sizes[key]
		if opts.DerivedColumns {
			video.Temperature = temperature(video.ViewCount, *video.Age)
		}
		cleaned = append(cleaned, video)
	}
	report.Output = len(cleaned)

	logCleanReport(report)
	return cleaned, report
}

// candidate is a repaired row that still knows where it was read from.
type candidate struct {
	video      models.TrendingVideo
	region     string
	sourceFile string
}

func hasMissingValue(row models.SnapshotRow) bool {
	for _, v := range []string{
		row.VideoID, row.Title, row.PublishedAt, row.ChannelID, row.ChannelTitle,
		row.CategoryID, row.TrendingDate, row.ViewCount, row.Likes, row.CommentCount,
		row.CommentsDisabled, row.RatingsDisabled, row.Description,
	} {
		if v == "" {
			return true
		}
	}
	return false
}

func videoAge(publishedAt, trendingDate string) (int64, error) {
	published, err := utils.ParseSnapshotTimestamp(publishedAt)
	if err != nil {
		return 0, fmt.Errorf("publishedAt: %w", err)
	}
	trending, err := utils.ParseSnapshotTimestamp(trendingDate)
	if err != nil {
		return 0, fmt.Errorf("trending_date: %w", err)
	}
	return utils.HoursBetween(published, trending), nil
}

func coerceCounts(video *models.TrendingVideo, row models.SnapshotRow) error {
	var err error
	if video.ViewCount, err = parseCount(row.ViewCount); err != nil {
		return fmt.Errorf("view_count: %w", err)
	}
	if video.Likes, err = parseCount(row.Likes); err != nil {
		return fmt.Errorf("likes: %w", err)
	}
	if video.CommentCount, err = parseCount(row.CommentCount); err != nil {
		return fmt.Errorf("comment_count: %w", err)
	}
	if video.CommentsDisabled, err = strconv.ParseBool(strings.TrimSpace(row.CommentsDisabled)); err != nil {
		return fmt.Errorf("comments_disabled: %w", err)
	}
	if video.CommentsDisabled {
		video.CommentCount = 0
	}
	return nil
}

// parseCount reads an integer count, accepting float notation ("12.0") and
// truncating it toward zero. Negative counts clamp to 0.
func parseCount(value string) (int64, error) {
	value = strings.TrimSpace(value)
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(value, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f <= math.MinInt64 {
			return 0, fmt.Errorf("not an integer: %q", value)
		}
		n = int64(f)
	}
	if n < 0 {
		n = 0
	}
	return n, nil
}

func groupSizes(candidates []candidate) map[models.VideoKey]int {
	sizes := make(map[models.VideoKey]int)
	for _, c := range candidates {
		sizes[c.video.Key()]++
	}
	return sizes
}

// repeatedRegions returns the keys seen twice in the same region. Rows with
// no region code are never counted as repeats.
func repeatedRegions(candidates []candidate) map[models.VideoKey]bool {
	firstFile := make(map[models.VideoKey]map[string]string)
	repeated := make(map[models.VideoKey]bool)
	for _, c := range candidates {
		if c.region == "" {
			continue
		}
		key := c.video.Key()
		files, ok := firstFile[key]
		if !ok {
			files = make(map[string]string)
			firstFile[key] = files
		}
		first, seen := files[c.region]
		if !seen {
			files[c.region] = c.sourceFile
			continue
		}
		if !repeated[key] {
			repeated[key] = true
			log.Printf("WARN Service: video '%s' trended twice in %s (%s, %s); notes counts both\n",
				key.VideoID, c.region, first, c.sourceFile)
		}
	}
	return repeated
}

// temperature is views per hour of age, rounded half to even.
// It is undefined for age 0 and returns nil.
func temperature(viewCount, age int64) *int64 {
	if age == 0 {
		return nil
	}
	t := int64(math.RoundToEven(float64(viewCount) / float64(age)))
	return &t
}

func logCleanReport(report CleanReport) {
	if report.MissingValue > 0 {
		log.Printf("Service: Dropped %d rows with missing values\n", report.MissingValue)
	}
	if report.InvalidNumeric > 0 {
		log.Printf("WARN Service: Dropped %d rows with invalid numeric fields\n", report.InvalidNumeric)
	}
	if report.BadTimestamp > 0 {
		log.Printf("WARN Service: Dropped %d rows with unrecognized timestamps\n", report.BadTimestamp)
	}
	if report.RepeatedRegion > 0 {
		log.Printf("WARN Service: %d videos appear more than once in a single region\n", report.RepeatedRegion)
	}
	log.Printf("Service: Cleaned %d merged rows into %d videos (%d duplicates removed)\n",
		report.Input, report.Output, report.Duplicates)
}
