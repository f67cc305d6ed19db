package render

import (
	"embed"
	"html/template"

	"roster-lookup-go/models"
	"roster-lookup-go/roster"
)

// PageName is the template name handlers pass to gin's c.HTML.
const PageName = "index.html.tmpl"

//go:embed templates/*.tmpl
var templateFS embed.FS

// Columns are the table headings, in display order.
var Columns = []string{"Day", "Name", "Class", "ClassNo", "Activity"}

// Page is the data the index template renders.
type Page struct {
	SessionID       string
	Days            []string
	Classes         []string
	Selection       models.Selection
	ControlsVisible bool
	Columns         []string
	Table           models.Display
	Error           string
	Notice          string
}

// NewPage builds page data from a session state and the messages gathered in v.
// v may be nil.
func NewPage(sessionID string, days []string, st roster.State, v *View) Page {
	p := Page{
		SessionID:       sessionID,
		Days:            days,
		Classes:         roster.BuildClassIndex(st.Records),
		Selection:       st.Selection,
		ControlsVisible: st.Visible,
		Columns:         Columns,
		Table:           st.Display,
	}
	if v != nil {
		p.Error = v.Error
		p.Notice = v.Notice
	}
	return p
}

// Placeholder reports whether the table shows the "no data" row.
func (p Page) Placeholder() bool {
	return p.Table.Rendered && len(p.Table.Rows) == 0
}

// NoDataText is the placeholder row text.
func (Page) NoDataText() string {
	return NoDataText
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.tmpl")
}
