package feed

import (
	"fmt"
	"os"

	"github.com/hamba/avro/v2/ocf"

	"github.com/coriolis-data/newsvec/core"
)

// ReadRecords decodes an Avro object container file into raw records.
// The file's embedded schema drives decoding; every record comes back
// as a generic map for the normalizer to interpret.
func ReadRecords(path string) ([]core.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := ocf.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	var records []core.RawRecord
	for dec.HasNext() {
		var record map[string]any
		if err := dec.Decode(&record); err != nil {
			return nil, fmt.Errorf("%w: %s: record %d: %w", ErrDecode, path, len(records), err)
		}
		records = append(records, core.RawRecord(record))
	}
	if err := dec.Error(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	return records, nil
}
