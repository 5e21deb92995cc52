package storage

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aliyevr/binascraper/internal/scraper"
)

func TestCSVWriterSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := NewCSVWriter(path)

	require.NoError(t, w.WriteSnapshot(makeRecords(2, "x")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, utf8BOM), "snapshot starts with a UTF-8 BOM")

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, scraper.Header(), rows[0])
	assert.Equal(t, "x listing 0", rows[1][0])
	assert.Equal(t, "x1", rows[2][len(rows[2])-1])
}

func TestCSVWriterReplacesPreviousFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := NewCSVWriter(path)

	require.NoError(t, w.WriteSnapshot(makeRecords(5, "old")))
	require.NoError(t, w.WriteSnapshot(makeRecords(1, "new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 2, "snapshot is a one-shot write, not an append")
}

func TestCSVWriterCreateError(t *testing.T) {
	w := NewCSVWriter(filepath.Join(t.TempDir(), "missing", "out.csv"))
	assert.Error(t, w.WriteSnapshot(makeRecords(1, "x")))
}
