package core

import (
	"errors"
	"testing"
)

func TestValidateArticle(t *testing.T) {
	tests := []struct {
		name    string
		article *Article
		wantErr error
	}{
		{
			name: "valid article",
			article: &Article{
				DocumentKey: "AN123",
				PublishedAt: "2024-03-01T10:00:00Z",
				WordCount:   120,
				Content:     "headline body",
			},
			wantErr: nil,
		},
		{
			name: "valid article with sentinels",
			article: &Article{
				DocumentKey: UnknownDocumentKey,
				PublishedAt: UnknownPublishedAt,
				WordCount:   0,
				Content:     "",
			},
			wantErr: nil,
		},
		{
			name:    "nil article",
			article: nil,
			wantErr: ErrInvalidArticle,
		},
		{
			name: "empty document key",
			article: &Article{
				DocumentKey: "",
				PublishedAt: UnknownPublishedAt,
			},
			wantErr: ErrEmptyDocumentKey,
		},
		{
			name: "empty published at",
			article: &Article{
				DocumentKey: "AN123",
				PublishedAt: "",
			},
			wantErr: ErrEmptyPublishedAt,
		},
		{
			name: "negative word count",
			article: &Article{
				DocumentKey: "AN123",
				PublishedAt: UnknownPublishedAt,
				WordCount:   -1,
			},
			wantErr: ErrNegativeWordCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArticle(tt.article)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateArticle() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateArticle() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateChunk(t *testing.T) {
	tests := []struct {
		name    string
		chunk   *Chunk
		wantErr error
	}{
		{
			name:    "valid chunk",
			chunk:   &Chunk{DocumentKey: "AN123", SequenceIndex: 0, Text: "passage"},
			wantErr: nil,
		},
		{
			name:    "empty text is valid",
			chunk:   &Chunk{DocumentKey: "AN123", SequenceIndex: 0, Text: ""},
			wantErr: nil,
		},
		{
			name:    "nil chunk",
			chunk:   nil,
			wantErr: ErrInvalidChunk,
		},
		{
			name:    "empty document key",
			chunk:   &Chunk{DocumentKey: "", SequenceIndex: 0},
			wantErr: ErrEmptyDocumentKey,
		},
		{
			name:    "negative sequence index",
			chunk:   &Chunk{DocumentKey: "AN123", SequenceIndex: -1},
			wantErr: ErrNegativeSequenceIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunk(tt.chunk)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateChunk() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateChunk() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateIndexEntry(t *testing.T) {
	valid := &IndexEntry{
		Id:     ChunkID("AN123", 0, "passage"),
		Vector: []float32{0.1, 0.2, 0.3},
		Payload: Payload{
			DocumentKey:   "AN123",
			PublishedAt:   "2024-03-01T10:00:00Z",
			SequenceIndex: 0,
			Text:          "passage",
		},
	}

	if err := ValidateIndexEntry(valid); err != nil {
		t.Errorf("ValidateIndexEntry() unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(e *IndexEntry)
		wantErr error
	}{
		{
			name:    "empty vector",
			mutate:  func(e *IndexEntry) { e.Vector = nil },
			wantErr: ErrEmptyVector,
		},
		{
			name:    "empty payload document key",
			mutate:  func(e *IndexEntry) { e.Payload.DocumentKey = "" },
			wantErr: ErrEmptyDocumentKey,
		},
		{
			name:    "empty payload published at",
			mutate:  func(e *IndexEntry) { e.Payload.PublishedAt = "" },
			wantErr: ErrEmptyPublishedAt,
		},
		{
			name:    "negative payload sequence index",
			mutate:  func(e *IndexEntry) { e.Payload.SequenceIndex = -1 },
			wantErr: ErrNegativeSequenceIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := *valid
			tt.mutate(&entry)
			if err := ValidateIndexEntry(&entry); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateIndexEntry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if err := ValidateIndexEntry(nil); !errors.Is(err, ErrInvalidIndexEntry) {
		t.Errorf("ValidateIndexEntry(nil) error = %v, want %v", err, ErrInvalidIndexEntry)
	}
}
