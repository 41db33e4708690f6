package scraper

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestListSnapshotFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2023-01-02_US.tsv", crawlerHeader)
	writeFile(t, dir, "2023-01-02_GB.tsv", crawlerHeader)
	writeFile(t, dir, ".DS_Store", "x")
	writeFile(t, dir, "_manifest", "x")
	writeFile(t, dir, "clean.csv", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0755))

	paths, err := ListSnapshotFiles(dir, []string{".*", "_*", "clean.csv"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "2023-01-02_GB.tsv"),
		filepath.Join(dir, "2023-01-02_US.tsv"),
	}, paths)
}

func TestListSnapshotFiles_MissingDir(t *testing.T) {
	_, err := ListSnapshotFiles(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}

func TestLoadSnapshotDir_MergesInFileOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2023-01-02_US.tsv", crawlerHeader+
		"us1\tt\t2023-01-01T00:00:00Z\tUC1\tc\t10\t2023-01-02\t1\t1\t1\tFalse\tFalse\td\n")
	writeFile(t, dir, "2023-01-02_GB.tsv", crawlerHeader+
		"gb1\tt\t2023-01-01T00:00:00Z\tUC1\tc\t10\t2023-01-02\t1\t1\t1\tFalse\tFalse\td\n"+
		"gb2\tt\t2023-01-01T00:00:00Z\tUC1\tc\t10\t2023-01-02\t1\t1\t1\tFalse\tFalse\td\n")

	rows, paths, err := LoadSnapshotDir(dir, nil)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
	require.Len(t, rows, 3)
	assert.Equal(t, "gb1", rows[0].VideoID)
	assert.Equal(t, "GB", rows[0].Region)
	assert.Equal(t, "gb2", rows[1].VideoID)
	assert.Equal(t, "us1", rows[2].VideoID)
	assert.Equal(t, "US", rows[2].Region)
}

func TestRowsByRegion(t *testing.T) {
	dir := t.TempDir()
	row := "v\tt\t2023-01-01T00:00:00Z\tUC1\tc\t10\t2023-01-02\t1\t1\t1\tFalse\tFalse\td\n"
	writeFile(t, dir, "2023-01-02_US.tsv", crawlerHeader+row+row)
	writeFile(t, dir, "2023-01-03_US.tsv", crawlerHeader+row)
	writeFile(t, dir, "2023-01-02_KR.tsv", crawlerHeader+row)
	writeFile(t, dir, "snapshot.tsv", crawlerHeader+row)

	Verbose = true
	defer func() { Verbose = false }()
	rows, _, err := LoadSnapshotDir(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"US": 3, "KR": 1, "unknown": 1}, RowsByRegion(rows))
}

func TestLoadSnapshotDir_NoFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".keep", "")

	rows, _, err := LoadSnapshotDir(dir, []string{".*"})
	assert.True(t, errors.Is(err, ErrNoSnapshotFiles), "got %v", err)
	assert.Nil(t, rows)
}

func TestLoadSnapshotDir_EmptyFilesAreNotAnError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2023-01-02_US.tsv", crawlerHeader)

	rows, _, err := LoadSnapshotDir(dir, nil)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestLoadSnapshotDir_MalformedFileAbortsMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2023-01-02_GB.tsv", crawlerHeader)
	writeFile(t, dir, "2023-01-02_US.tsv", "not\ta\tsnapshot\n")

	rows, _, err := LoadSnapshotDir(dir, nil)
	assert.True(t, errors.Is(err, ErrMalformedSnapshot), "got %v", err)
	assert.Nil(t, rows)
}
