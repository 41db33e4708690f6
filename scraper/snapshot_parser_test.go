package scraper

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const crawlerHeader = "video_id\ttitle\tpublishedAt\tchannelId\tchannelTitle\tcategoryId\ttrending_date\tview_count\tlikes\tcomment_count\tcomments_disabled\tratings_disabled\tdescription\n"

func TestParseSnapshotTsv(t *testing.T) {
	data := crawlerHeader +
		"abc\tFirst video\t2023-01-01T00:00:00Z\tUC1\tChannel One\t10\t2023-01-02T06:00:00Z\t100\t5\t2\tFalse\tFalse\tHello\n" +
		"def\tSecond\t2023-01-01T12:00:00Z\tUC2\tChannel Two\t22\t2023-01-02\t-3\t1\t7\tTrue\tFalse\t\n"

	rows, err := ParseSnapshotTsv(strings.NewReader(data), "2023-01-02_US.tsv")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "abc", rows[0].VideoID)
	assert.Equal(t, "2023-01-01T00:00:00Z", rows[0].PublishedAt)
	assert.Equal(t, "UC1", rows[0].ChannelID)
	assert.Equal(t, "Channel One", rows[0].ChannelTitle)
	assert.Equal(t, "10", rows[0].CategoryID)
	assert.Equal(t, "Hello", rows[0].Description)
	assert.Equal(t, "2023-01-02_US.tsv", rows[0].SourceFile)
	assert.Equal(t, "US", rows[0].Region)

	assert.Equal(t, "-3", rows[1].ViewCount)
	assert.Equal(t, "True", rows[1].CommentsDisabled)
	assert.Equal(t, "", rows[1].Description)
}

func TestParseSnapshotTsv_SnakeCaseHeader(t *testing.T) {
	data := "video_id\ttitle\tpublished_at\tchannel_id\tchannel_title\tcategory_id\ttrending_date\tview_count\tlikes\tcomment_count\tcomments_disabled\tratings_disabled\n" +
		"abc\tt\t2023-01-01T00:00:00Z\tUC1\tc\t10\t2023-01-02\t1\t1\t1\tFalse\tFalse\n"

	rows, err := ParseSnapshotTsv(strings.NewReader(data), "snap.tsv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2023-01-01T00:00:00Z", rows[0].PublishedAt)
	assert.Equal(t, "", rows[0].Description, "description column is optional")
	assert.Equal(t, "", rows[0].Region)
}

func TestParseSnapshotTsv_ExtraColumnsIgnored(t *testing.T) {
	data := "dislikes\t" + crawlerHeader +
		"9\tabc\tt\t2023-01-01T00:00:00Z\tUC1\tc\t10\t2023-01-02\t1\t1\t1\tFalse\tFalse\td\n"

	rows, err := ParseSnapshotTsv(strings.NewReader(data), "snap.tsv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "abc", rows[0].VideoID)
}

func TestParseSnapshotTsv_HeaderOnly(t *testing.T) {
	rows, err := ParseSnapshotTsv(strings.NewReader(crawlerHeader), "snap.tsv")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseSnapshotTsv_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"missing column": "video_id\ttitle\n abc\tt\n",
		"ragged record":  crawlerHeader + "abc\tt\n",
		"duplicate":      strings.TrimSuffix(crawlerHeader, "\n") + "\tvideo_id\n",
		"comma separated": strings.ReplaceAll(crawlerHeader, "\t", ",") +
			"abc,t,2023-01-01T00:00:00Z,UC1,c,10,2023-01-02,1,1,1,False,False,d\n",
	}
	for name, data := range cases {
		_, err := ParseSnapshotTsv(strings.NewReader(data), "bad.tsv")
		assert.True(t, errors.Is(err, ErrMalformedSnapshot), "%s: got %v", name, err)
	}
}
