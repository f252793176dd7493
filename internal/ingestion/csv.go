// Package ingestion turns uploaded delimited text into normalized resume records.
package ingestion

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

const (
	fieldDelimiter = ','
	utf8BOM        = "\ufeff"
)

// ParseCSV reads a comma-separated table with a required header row.
// Ragged rows are tolerated: missing trailing fields are left unset and extra
// fields are dropped. Empty lines are skipped.
//
// When every line was quoted as a whole, the table collapses into a single
// column whose header contains the delimiter. That case is detected on the
// first row and the header and every row are re-split on the delimiter.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.Comma = fieldDelimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Message: "input is empty, header row required"}
		}
		return nil, parseErrorFrom("failed to read header row", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseErrorFrom("failed to read row", err)
		}
		rows = append(rows, rowFromRecord(header, record))
	}

	if collapsedKey, ok := detectCollapsed(rows); ok {
		return resplitCollapsed(collapsedKey, rows), nil
	}
	return cleanRows(rows), nil
}

func parseErrorFrom(message string, err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Message: message, Line: csvErr.Line, Cause: csvErr.Err}
	}
	return &ParseError{Message: message, Cause: err}
}

func rowFromRecord(header, record []string) Row {
	row := Row{fields: make(map[string]string, len(header))}
	for i, key := range header {
		if i >= len(record) {
			break
		}
		row.Set(key, record[i])
	}
	return row
}

// detectCollapsed reports the single key of the first row when that key
// itself contains the delimiter.
func detectCollapsed(rows []Row) (string, bool) {
	if len(rows) == 0 || rows[0].Len() != 1 {
		return "", false
	}
	key := rows[0].Keys()[0]
	if !strings.ContainsRune(key, fieldDelimiter) {
		return "", false
	}
	return key, true
}

func resplitCollapsed(collapsedKey string, rows []Row) []Row {
	headers := splitTrimmed(collapsedKey)

	result := make([]Row, 0, len(rows))
	for _, row := range rows {
		values := splitTrimmed(row.Value(collapsedKey))

		parsed := Row{fields: make(map[string]string, len(headers))}
		for i, h := range headers {
			v := ""
			if i < len(values) {
				v = values[i]
			}
			parsed.Set(h, v)
		}

		if repeatsHeader(parsed, headers) {
			continue
		}
		result = append(result, parsed)
	}
	return result
}

// repeatsHeader reports whether every value equals the header at the same position
func repeatsHeader(row Row, headers []string) bool {
	values := row.Values()
	for i, v := range values {
		if i >= len(headers) || v != headers[i] {
			return false
		}
	}
	return true
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, string(fieldDelimiter))
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// cleanRows strips one surrounding quote character from keys and values,
// trims whitespace, and drops rows whose values are all empty.
func cleanRows(rows []Row) []Row {
	result := make([]Row, 0, len(rows))
	for _, row := range rows {
		cleaned := Row{fields: make(map[string]string, row.Len())}
		hasValue := false
		for _, key := range row.Keys() {
			value := cleanField(row.Value(key))
			cleaned.Set(cleanField(key), value)
			if value != "" {
				hasValue = true
			}
		}
		if hasValue {
			result = append(result, cleaned)
		}
	}
	return result
}

func cleanField(s string) string {
	s = trimOneQuote(s)
	return strings.TrimSpace(s)
}

func trimOneQuote(s string) string {
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if len(s) > 0 && (s[len(s)-1] == '"' || s[len(s)-1] == '\'') {
		s = s[:len(s)-1]
	}
	return s
}
