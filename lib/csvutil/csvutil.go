// Package csvutil reads spreadsheet exports keyed by their header row.
package csvutil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrEmpty = errors.New("empty csv")

// Record is a csv row keyed by its header.
type Record struct {
	// 1-indexed line of the row, the header is line 1
	Line   int
	Fields map[string]string
}

// Get returns the trimmed value of a column, empty if it is missing.
func (r Record) Get(column string) string {
	return strings.TrimSpace(r.Fields[column])
}

// GetPrefix returns the value of the column named `prefix`, or else of the
// first column starting with it.
func (r Record) GetPrefix(prefix string) string {
	if v, ok := r.Fields[prefix]; ok {
		return strings.TrimSpace(v)
	}
	for key, v := range r.Fields {
		if strings.HasPrefix(key, prefix) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Column resolves `prefix` to a header name: the column named `prefix`, or
// else the first column starting with it.
func Column(header []string, prefix string) (string, bool) {
	for _, h := range header {
		if h == prefix {
			return h, true
		}
	}
	for _, h := range header {
		if strings.HasPrefix(h, prefix) {
			return h, true
		}
	}
	return "", false
}

// Read parses every row of `r`. Each of `required` must prefix one of the
// header names. A leading byte order mark is ignored.
func Read(r io.Reader, required ...string) ([]Record, error) {
	_, records, err := ReadWithHeader(r, required...)
	return records, err
}

// ReadWithHeader is Read but also returns the header in column order.
func ReadWithHeader(r io.Reader, required ...string) ([]string, []Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmpty
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		header[i] = strings.TrimSpace(h)
	}

	for _, col := range required {
		if _, ok := Column(header, col); !ok {
			return nil, nil, fmt.Errorf("csv is missing column '%s'", col)
		}
	}

	var out []Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		fields := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(row) {
				fields[h] = row[i]
			}
		}
		out = append(out, Record{Line: line, Fields: fields})
	}
	return header, out, nil
}
