// services/summary_service.go
package services

import (
	"sort"

	"github.com/gewnthar/trending/models"
)

// CleanedSummary is the overview printed after loading the cleaned table.
type CleanedSummary struct {
	Videos     int
	TotalViews int64
	// MultiRegion counts videos trending in more than one region.
	MultiRegion int
	MaxNotes    int
	// ByNotes maps a notes value to the number of videos carrying it.
	ByNotes map[int]int
	Hottest []models.TrendingVideo
}

// SummarizeCleaned counts the cleaned table and picks the top videos by
// temperature. Videos without a temperature rank after all others; ties are
// broken by view count, then video_id.
func SummarizeCleaned(videos []models.TrendingVideo, top int) CleanedSummary {
	summary := CleanedSummary{
		Videos:  len(videos),
		ByNotes: make(map[int]int),
	}
	for _, v := range videos {
		summary.TotalViews += v.ViewCount
		summary.ByNotes[v.Notes]++
		if v.Notes > 1 {
			summary.MultiRegion++
		}
		if v.Notes > summary.MaxNotes {
			summary.MaxNotes = v.Notes
		}
	}

	ranked := append([]models.TrendingVideo(nil), videos...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if (a.Temperature == nil) != (b.Temperature == nil) {
			return a.Temperature != nil
		}
		if a.Temperature != nil && *a.Temperature != *b.Temperature {
			return *a.Temperature > *b.Temperature
		}
		if a.ViewCount != b.ViewCount {
			return a.ViewCount > b.ViewCount
		}
		return a.VideoID < b.VideoID
	})
	if top >= 0 && top < len(ranked) {
		ranked = ranked[:top]
	}
	summary.Hottest = ranked
	return summary
}
