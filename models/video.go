// models/video.go
package models

// SnapshotRow is one record of a crawler snapshot file, held exactly as read.
// An empty field is an absent value. CSV tags are the canonical (renamed)
// column names; the loader canonicalizes each file header before decoding.
type SnapshotRow struct {
	VideoID          string `csv:"video_id"`
	Title            string `csv:"title"`
	PublishedAt      string `csv:"published_at"` // publishedAt in crawler output
	ChannelID        string `csv:"channel_id"`   // channelId
	ChannelTitle     string `csv:"channel_title"`
	CategoryID       string `csv:"category_id"`
	TrendingDate     string `csv:"trending_date"` // ISO-8601 UTC or YYYY-MM-DD depending on crawler version
	ViewCount        string `csv:"view_count"`
	Likes            string `csv:"likes"`
	CommentCount     string `csv:"comment_count"`
	CommentsDisabled string `csv:"comments_disabled"`
	RatingsDisabled  string `csv:"ratings_disabled"`
	Description      string `csv:"description"`

	// Not in the snapshot file
	SourceFile string `csv:"-"`
	Region     string `csv:"-"` // "" when the filename carries no region code
}

// TrendingVideo is one row of the cleaned table. Field order is the output
// column order.
type TrendingVideo struct {
	VideoID          string `csv:"video_id" db:"video_id"`
	Title            string `csv:"title" db:"title"`
	PublishedAt      string `csv:"published_at" db:"published_at"`
	ChannelID        string `csv:"channel_id" db:"channel_id"`
	ChannelTitle     string `csv:"channel_title" db:"channel_title"`
	CategoryID       string `csv:"category_id" db:"category_id"`
	TrendingDate     string `csv:"trending_date" db:"trending_date"`
	ViewCount        int64  `csv:"view_count" db:"view_count"`
	Likes            int64  `csv:"likes" db:"likes"`
	CommentCount     int64  `csv:"comment_count" db:"comment_count"`
	CommentsDisabled bool   `csv:"comments_disabled" db:"comments_disabled"`
	Description      string `csv:"description" db:"description"`
	Notes            int    `csv:"notes" db:"notes"` // regions the video trended in

	// Derived columns, nil when disabled or undefined
	Age         *int64 `csv:"age" db:"age"`                 // hours between publish and trending time
	Temperature *int64 `csv:"temperature" db:"temperature"` // view_count / age
}

// Key is the identity used for region counting and deduplication.
func (v TrendingVideo) Key() VideoKey {
	return VideoKey{VideoID: v.VideoID, PublishedAt: v.PublishedAt}
}

// VideoKey identifies one upload of a video across regional snapshots.
type VideoKey struct {
	VideoID     string
	PublishedAt string
}
