// Package render implements roster.Renderer for the web page and the terminal.
package render

import (
	"roster-lookup-go/models"
	"roster-lookup-go/roster"
)

// NoDataText fills the placeholder row of an empty result.
const NoDataText = "No data."

// Compile-time interface check.
var _ roster.Renderer = (*View)(nil)

// View collects the output of one request so a handler can turn it into a
// page or a JSON body.
type View struct {
	Rows     []models.StudentRecord
	Rendered bool
	Error    string
	Notice   string
}

// Render replaces the collected rows.
func (v *View) Render(records []models.StudentRecord) error {
	v.Rows = append([]models.StudentRecord{}, records...)
	v.Rendered = true
	return nil
}

// Clear empties the collected rows.
func (v *View) Clear() error {
	v.Rows = nil
	v.Rendered = false
	return nil
}

// ShowError records msg as the error notification.
func (v *View) ShowError(msg string) error {
	v.Error = msg
	return nil
}

// ShowNotice records msg as the success notification.
func (v *View) ShowNotice(msg string) error {
	v.Notice = msg
	return nil
}

// Placeholder reports whether the "no data" row should be shown.
func (v *View) Placeholder() bool {
	return v.Rendered && len(v.Rows) == 0
}
