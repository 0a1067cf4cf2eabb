package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the types that go through the feed ledger.
// Timestamps are encoded as varint Unix microseconds.

// IDMUS serializes IDs as varint-encoded uint64.
var IDMUS = idMUS{}

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// FeedEntryMUS serializes FeedEntry values.
var FeedEntryMUS = feedEntryMUS{}

type feedEntryMUS struct{}

func (s feedEntryMUS) Marshal(v FeedEntry, bs []byte) (n int) {
	n = ord.String.Marshal(v.Name, bs)
	n += varint.Int64.Marshal(v.ProcessedAt.UnixMicro(), bs[n:])
	n += varint.Int.Marshal(v.RecordsAccepted, bs[n:])
	n += varint.Int.Marshal(v.RecordsSkipped, bs[n:])
	n += varint.Int.Marshal(v.ChunksIndexed, bs[n:])
	n += varint.Int.Marshal(v.ChunksSkipped, bs[n:])
	return
}

func (s feedEntryMUS) Unmarshal(bs []byte) (v FeedEntry, n int, err error) {
	v.Name, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ProcessedAt = time.UnixMicro(micros).UTC()
	v.RecordsAccepted, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.RecordsSkipped, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ChunksIndexed, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ChunksSkipped, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (s feedEntryMUS) Size(v FeedEntry) (size int) {
	size = ord.String.Size(v.Name)
	size += varint.Int64.Size(v.ProcessedAt.UnixMicro())
	size += varint.Int.Size(v.RecordsAccepted)
	size += varint.Int.Size(v.RecordsSkipped)
	size += varint.Int.Size(v.ChunksIndexed)
	size += varint.Int.Size(v.ChunksSkipped)
	return
}

func (s feedEntryMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	for i := 0; i < 4; i++ {
		n1, err = varint.Int.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

// CheckpointMUS serializes Checkpoint values.
var CheckpointMUS = checkpointMUS{}

type checkpointMUS struct{}

func (s checkpointMUS) Marshal(v Checkpoint, bs []byte) (n int) {
	n = ord.String.Marshal(v.Component, bs)
	n += ord.String.Marshal(v.LastFile, bs[n:])
	n += varint.Int64.Marshal(v.UpdatedAt.UnixMicro(), bs[n:])
	return
}

func (s checkpointMUS) Unmarshal(bs []byte) (v Checkpoint, n int, err error) {
	v.Component, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.LastFile, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt = time.UnixMicro(micros).UTC()
	return
}

func (s checkpointMUS) Size(v Checkpoint) (size int) {
	size = ord.String.Size(v.Component)
	size += ord.String.Size(v.LastFile)
	size += varint.Int64.Size(v.UpdatedAt.UnixMicro())
	return
}

func (s checkpointMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	return
}
