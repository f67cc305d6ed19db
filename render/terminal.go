package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"roster-lookup-go/models"
	"roster-lookup-go/roster"
)

var _ roster.Renderer = (*Terminal)(nil)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Terminal draws results as a bordered table on Out and notices on Err.
type Terminal struct {
	Out io.Writer
	Err io.Writer
}

// NewTerminal returns a Terminal writing tables to out and notices to errOut.
func NewTerminal(out, errOut io.Writer) *Terminal {
	return &Terminal{Out: out, Err: errOut}
}

// Render writes one table row per record, or a placeholder row when empty.
func (t *Terminal) Render(records []models.StudentRecord) error {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(Columns...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	if len(records) == 0 {
		tbl.Row(NoDataText, "", "", "", "")
	}
	for _, r := range records {
		tbl.Row(r.Day, r.Name, r.Class, r.ClassNo, r.Activity)
	}

	_, err := fmt.Fprintln(t.Out, tbl.Render())
	return err
}

// Clear is a no-op: terminal output cannot be taken back.
func (t *Terminal) Clear() error {
	return nil
}

// ShowError prints msg in red.
func (t *Terminal) ShowError(msg string) error {
	_, err := color.New(color.FgRed).Fprintln(t.Err, msg)
	return err
}

// ShowNotice prints msg in green.
func (t *Terminal) ShowNotice(msg string) error {
	_, err := color.New(color.FgGreen).Fprintln(t.Err, msg)
	return err
}
