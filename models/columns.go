// models/columns.go
package models

// CleanColumns is the fixed column list of the cleaned table.
var CleanColumns = []string{
	"video_id", "title", "published_at", "channel_id", "channel_title",
	"category_id", "trending_date", "view_count", "likes", "comment_count",
	"comments_disabled", "description", "notes", "age", "temperature",
}

// RequiredSnapshotColumns must be present in every snapshot file header
// (after renaming). description is optional.
var RequiredSnapshotColumns = []string{
	"video_id", "title", "published_at", "channel_id", "channel_title",
	"category_id", "trending_date", "view_count", "likes", "comment_count",
	"comments_disabled", "ratings_disabled",
}

var columnRenames = map[string]string{
	"channelTitle": "channel_title",
	"publishedAt":  "published_at",
	"channelId":    "channel_id",
	"categoryId":   "category_id",
}

// RenameColumns maps crawler column names to their canonical form.
// Names already in canonical form are returned unchanged, so applying it
// twice is the same as applying it once.
func RenameColumns(header []string) []string {
	renamed := make([]string, len(header))
	for i, name := range header {
		if canonical, ok := columnRenames[name]; ok {
			renamed[i] = canonical
			continue
		}
		renamed[i] = name
	}
	return renamed
}
