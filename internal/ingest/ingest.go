// Package ingest reads records from tabular text. It is the record source
// collaborator of the store: the core never parses anything itself.
//
// The format is tab-separated with a fixed, mandatory header:
//
//	id	firstName	lastName	age	gender
//
// id parses as int64, age as int, the remaining columns stay text. Parse
// failures report the offending line number; the core's type discipline
// starts here, so nothing is coerced silently.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dreamware/shardq/internal/record"
)

// header is the only column layout the source accepts, in order.
var header = []string{"id", "firstName", "lastName", "age", "gender"}

// ReadTSV parses tab-separated records from r. The first line must be the
// fixed header; every following line becomes one record.
func ReadTSV(r io.Reader) ([]record.Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = len(header)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("missing header, want %v", header)
	}
	for i, name := range header {
		if rows[0][i] != name {
			return nil, fmt.Errorf("bad header column %d: have %q, want %q", i, rows[0][i], name)
		}
	}

	recs := make([]record.Record, 0, len(rows)-1)
	for n, row := range rows[1:] {
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+2, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// ReadFile parses tab-separated records from the named file.
func ReadFile(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTSV(f)
}

func parseRow(row []string) (record.Record, error) {
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("id %q: %w", row[0], err)
	}
	age, err := strconv.Atoi(row[3])
	if err != nil {
		return nil, fmt.Errorf("age %q: %w", row[3], err)
	}

	return record.Record{
		"id":        record.Int64(id),
		"firstName": record.Text(row[1]),
		"lastName":  record.Text(row[2]),
		"age":       record.Int(age),
		"gender":    record.Text(row[4]),
	}, nil
}
