package feed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hamba/avro/v2/ocf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleSchema = `{
	"type": "record",
	"name": "article",
	"fields": [
		{"name": "an", "type": "string"},
		{"name": "publication_datetime", "type": "long"},
		{"name": "word_count", "type": "int"},
		{"name": "title", "type": "string"},
		{"name": "snippet", "type": "string"},
		{"name": "body", "type": "string"}
	]
}`

// writeBatchFile encodes articles into an Avro object container file.
func writeBatchFile(t *testing.T, dir, name string, articles []map[string]any) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc, err := ocf.NewEncoder(articleSchema, f)
	require.NoError(t, err)
	for _, article := range articles {
		require.NoError(t, enc.Encode(article))
	}
	require.NoError(t, enc.Close())
	return path
}

func testArticle(key string, body string) map[string]any {
	return map[string]any{
		"an":                   key,
		"publication_datetime": int64(1767225600),
		"word_count":           2,
		"title":                "",
		"snippet":              "",
		"body":                 body,
	}
}

func TestReadRecords(t *testing.T) {
	dir := t.TempDir()
	path := writeBatchFile(t, dir, "batch-001.avro", []map[string]any{
		testArticle("doc-1", "first article"),
		testArticle("doc-2", "second article"),
	})

	records, err := ReadRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "doc-1", records[0]["an"])
	assert.Equal(t, "first article", records[0]["body"])
	assert.Equal(t, "doc-2", records[1]["an"])
}

func TestReadRecordsMissingFile(t *testing.T) {
	_, err := ReadRecords(filepath.Join(t.TempDir(), "absent.avro"))
	assert.Error(t, err)
}

func TestReadRecordsNotAvro(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.avro")
	require.NoError(t, os.WriteFile(path, []byte("not an avro container"), 0644))

	_, err := ReadRecords(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
}
