package feed

import "errors"

var (
	// ErrDirectoryRequired is returned when a watch directory is not provided.
	ErrDirectoryRequired = errors.New("watch directory required")

	// ErrIngestorRequired is returned when an ingestor is not provided.
	ErrIngestorRequired = errors.New("ingestor required")

	// ErrLedgerRequired is returned when a feed ledger is not provided.
	ErrLedgerRequired = errors.New("feed ledger required")

	// ErrDecode is returned when an Avro batch file cannot be decoded.
	ErrDecode = errors.New("decoding feed file")
)
