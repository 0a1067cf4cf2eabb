package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coriolis-data/newsvec/core"
)

func TestFeedEntryRoundTrip(t *testing.T) {
	entry := &core.FeedEntry{
		Name:            "2026-02-14-batch-001.avro",
		ProcessedAt:     time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC),
		RecordsAccepted: 1200,
		RecordsSkipped:  3,
		ChunksIndexed:   1450,
		ChunksSkipped:   12,
	}

	data := MarshalFeedEntry(entry)
	decoded, err := UnmarshalFeedEntry(data)
	require.NoError(t, err)
	assert.Equal(t, entry, decoded)
}

func TestCheckpointRoundTrip(t *testing.T) {
	checkpoint := &core.Checkpoint{
		Component: "watcher",
		LastFile:  "2026-02-14-batch-001.avro",
		UpdatedAt: time.Date(2026, 2, 14, 9, 31, 0, 0, time.UTC),
	}

	data := MarshalCheckpoint(checkpoint)
	decoded, err := UnmarshalCheckpoint(data)
	require.NoError(t, err)
	assert.Equal(t, checkpoint, decoded)
}

func TestUnmarshalFeedEntryTruncated(t *testing.T) {
	entry := &core.FeedEntry{Name: "file.avro", ProcessedAt: time.Now().UTC()}
	data := MarshalFeedEntry(entry)

	_, err := UnmarshalFeedEntry(data[:2])
	assert.Error(t, err)
}
