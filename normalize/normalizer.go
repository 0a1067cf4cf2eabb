package normalize

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/coriolis-data/newsvec/core"
)

// Source feed field names.
const (
	documentKeyField = "an"
	wordCountField   = "word_count"
	titleField       = "title"
	snippetField     = "snippet"
	bodyField        = "body"
)

// timestampFields are tried in order; the first parseable one wins.
var timestampFields = []string{"publication_datetime", "publication_date"}

// Timestamps outside this window are treated as garbage, most commonly a
// feed delivering the wrong epoch unit.
var (
	minValidTime = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	maxValidTime = time.Date(2200, 1, 1, 0, 0, 0, 0, time.UTC)
)

// TimestampUnit is the epoch unit the source feed uses. It is a single
// deployment-wide setting: mixing units corrupts every date silently.
type TimestampUnit string

const (
	// UnitSeconds interprets epoch timestamps as seconds.
	UnitSeconds TimestampUnit = "s"
	// UnitMillis interprets epoch timestamps as milliseconds.
	UnitMillis TimestampUnit = "ms"
)

// ParseTimestampUnit validates a configured timestamp unit string.
func ParseTimestampUnit(s string) (TimestampUnit, error) {
	switch TimestampUnit(s) {
	case UnitSeconds:
		return UnitSeconds, nil
	case UnitMillis:
		return UnitMillis, nil
	}
	return "", fmt.Errorf("%w: %q (want %q or %q)", ErrInvalidTimestampUnit, s, UnitSeconds, UnitMillis)
}

// Normalizer turns raw feed records into canonical articles. It is a pure
// transformation: malformed fields are absorbed with documented defaults,
// never surfaced as per-record errors.
type Normalizer struct {
	unit   TimestampUnit
	logger *slog.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		if logger == nil {
			logger = slog.Default()
		}
		n.logger = logger
	}
}

// New creates a Normalizer for the given epoch unit.
func New(unit TimestampUnit, opts ...Option) (*Normalizer, error) {
	if unit != UnitSeconds && unit != UnitMillis {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimestampUnit, unit)
	}
	n := &Normalizer{
		unit:   unit,
		logger: slog.Default().With("component", "normalizer"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Normalize converts one raw record into an Article.
//
// Missing or malformed fields never fail the record: the document key and
// publication time fall back to explicit unknown sentinels, the word count
// coerces to 0, and absent text fields contribute nothing to the content.
// Only a record with no fields at all is rejected.
func (n *Normalizer) Normalize(record core.RawRecord) (*core.Article, error) {
	if len(record) == 0 {
		return nil, ErrEmptyRecord
	}

	article := &core.Article{
		DocumentKey: n.documentKey(record),
		PublishedAt: n.publishedAt(record),
		WordCount:   n.wordCount(record),
		Content:     n.content(record),
	}

	if err := core.ValidateArticle(article); err != nil {
		// Unreachable with the defaults above; kept as a guard on the
		// normalizer boundary invariants.
		return nil, err
	}
	return article, nil
}

func (n *Normalizer) documentKey(record core.RawRecord) string {
	if key, ok := asString(record[documentKeyField]); ok && strings.TrimSpace(key) != "" {
		return strings.TrimSpace(key)
	}
	return core.UnknownDocumentKey
}

func (n *Normalizer) publishedAt(record core.RawRecord) string {
	for _, field := range timestampFields {
		raw, present := record[field]
		if !present {
			continue
		}
		epoch, ok := asInt64(raw)
		if !ok || epoch <= 0 {
			n.logger.Debug("unparseable timestamp", "field", field, "value", raw)
			continue
		}

		var t time.Time
		switch n.unit {
		case UnitMillis:
			t = time.UnixMilli(epoch)
		default:
			t = time.Unix(epoch, 0)
		}
		if t.Before(minValidTime) || t.After(maxValidTime) {
			n.logger.Debug("timestamp out of range", "field", field, "value", epoch)
			continue
		}
		return t.UTC().Format(time.RFC3339)
	}
	return core.UnknownPublishedAt
}

func (n *Normalizer) wordCount(record core.RawRecord) int {
	count, ok := asInt64(record[wordCountField])
	if !ok || count < 0 {
		return 0
	}
	return int(count)
}

// content merges the textual sub-fields into one string. Every field
// defaults to the empty string, so a missing field never fails the merge;
// empty fields are skipped so the separator never doubles.
func (n *Normalizer) content(record core.RawRecord) string {
	parts := make([]string, 0, 3)
	for _, field := range []string{titleField, snippetField, bodyField} {
		if text, ok := asString(record[field]); ok {
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
	}
	return strings.Join(parts, " ")
}

// asString coerces a decoded feed value to a string. Avro decoders may
// deliver nullable fields as pointers or as single-entry union maps.
func asString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case *string:
		if val == nil {
			return "", false
		}
		return *val, true
	case []byte:
		return string(val), true
	case map[string]any:
		for _, inner := range val {
			return asString(inner)
		}
		return "", false
	default:
		return "", false
	}
}

// asInt64 coerces a decoded feed value to an int64, accepting the numeric
// widths and string forms that loosely-typed feeds produce.
func asInt64(v any) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case float32:
		return int64(val), true
	case float64:
		return int64(val), true
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	case map[string]any:
		for _, inner := range val {
			return asInt64(inner)
		}
		return 0, false
	default:
		return 0, false
	}
}
