package parser

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"
	"roster-lookup-go/models"
	"roster-lookup-go/roster"
)

// XLSX parses the first worksheet of an Excel workbook. The first row holds
// the field names, like a CSV header.
type XLSX struct{}

// Parse implements roster.Parser.
func (XLSX) Parse(data []byte) ([]models.StudentRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &roster.ParseError{Cause: fmt.Errorf("failed to open excel file: %w", err)}
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, &roster.ParseError{Cause: errors.New("excel file does not contain any sheets")}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, &roster.ParseError{Cause: fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)}
	}
	if len(rows) == 0 {
		return nil, &roster.ParseError{Cause: ErrEmptyFile}
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	cell := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := []models.StudentRecord{}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		records = append(records, models.StudentRecord{
			Day:      cell(row, "Day"),
			Name:     cell(row, "Name"),
			Class:    cell(row, "Class"),
			ClassNo:  cell(row, "ClassNo"),
			Activity: cell(row, "Activity"),
		})
	}
	return records, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
