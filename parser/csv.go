// Package parser reads uploaded roster files into StudentRecords.
package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"roster-lookup-go/models"
	"roster-lookup-go/roster"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrEmptyFile is returned for an upload with no header row.
var ErrEmptyFile = errors.New("file is empty")

// CSV parses comma-separated rosters. The first row names the fields; rows
// are matched to StudentRecord by header, not position.
type CSV struct{}

// Parse implements roster.Parser.
func (CSV) Parse(data []byte) ([]models.StudentRecord, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &roster.ParseError{Cause: ErrEmptyFile}
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // short rows leave trailing fields empty
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &roster.ParseError{Cause: fmt.Errorf("failed to read CSV: %w", err)}
	}
	if len(rows) == 0 {
		return nil, &roster.ParseError{Cause: ErrEmptyFile}
	}
	rows[0] = dedupeHeader(rows[0])

	records := []models.StudentRecord{}
	if err := gocsv.UnmarshalCSV(&rowsReader{rows: rows}, &records); err != nil {
		return nil, &roster.ParseError{Cause: fmt.Errorf("failed to read CSV: %w", err)}
	}
	return records, nil
}

// dedupeHeader renames repeated column names to name_1, name_2, ... so the
// first column with a given name is the one bound to the record.
func dedupeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		unique := name
		for n := 1; seen[unique]; n++ {
			unique = fmt.Sprintf("%s_%d", name, n)
		}
		seen[unique] = true
		out[i] = unique
	}
	return out
}

// rowsReader serves already-read rows to gocsv.
type rowsReader struct {
	rows [][]string
	pos  int
}

func (r *rowsReader) Read() ([]string, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.pos]
	r.pos++
	return row, nil
}

func (r *rowsReader) ReadAll() ([][]string, error) {
	rest := r.rows[r.pos:]
	r.pos = len(r.rows)
	return rest, nil
}

// ForFilename picks a parser from the file extension. Anything that is not
// an Excel workbook is treated as CSV.
func ForFilename(name string) roster.Parser {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return XLSX{}
	default:
		return CSV{}
	}
}
