package roster

import (
	"sync"

	"roster-lookup-go/models"
)

// State is a copy of everything a Session holds. The class index is not part
// of it because it is always derived from Records.
type State struct {
	Records   []models.StudentRecord `json:"records"`
	Selection models.Selection       `json:"selection"`
	Display   models.Display         `json:"display"`
	Visible   bool                   `json:"visible"` // filter controls shown
}

// Session owns one page's roster and filter state.
// All methods are safe for concurrent use; each runs to completion under the
// session lock, so callers observe events one at a time.
type Session struct {
	ID string

	mu         sync.Mutex
	records    []models.StudentRecord
	classIndex []string
	selection  models.Selection
	display    models.Display
	visible    bool
}

// NewSession creates an empty session in the idle state.
func NewSession(id string) *Session {
	return &Session{ID: id, classIndex: []string{}}
}

// Restore rebuilds a session from a snapshot, recomputing the class index.
func Restore(id string, st State) *Session {
	s := NewSession(id)
	s.records = st.Records
	s.classIndex = BuildClassIndex(st.Records)
	s.selection = st.Selection
	s.display = st.Display
	s.visible = st.Visible
	return s
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Records:   cloneRecords(s.records),
		Selection: s.selection,
		Display:   models.Display{Rendered: s.display.Rendered, Rows: cloneRecords(s.display.Rows)},
		Visible:   s.visible,
	}
}

// Records returns a copy of the current roster.
func (s *Session) Records() []models.StudentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecords(s.records)
}

// ClassIndex returns the sorted distinct class labels of the current roster.
func (s *Session) ClassIndex() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.classIndex...)
}

// Loaded reports whether a roster has been uploaded successfully.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// replace swaps in a freshly parsed roster, rebuilds the class index and makes
// the controls visible. Filters and the table are reset.
func (s *Session) replace(records []models.StudentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.classIndex = BuildClassIndex(records)
	s.visible = true
	s.selection = models.Selection{}
	s.display = models.Display{}
}

// selectDay applies the day filter and clears the class selection.
func (s *Session) selectDay(day string) []models.StudentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = models.Selection{Day: day}
	if day == "" {
		s.display = models.Display{}
		return nil
	}
	rows := FilterByDay(s.records, day)
	s.display = models.Display{Rendered: true, Rows: rows}
	return cloneRecords(rows)
}

// lookup applies a validated class query and clears the day selection.
// rawClassNo is kept in the selection as typed.
func (s *Session) lookup(q LookupQuery, rawClassNo string) []models.StudentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = models.Selection{Class: q.Class, ClassNo: rawClassNo}
	rows := FilterByClass(s.records, q)
	s.display = models.Display{Rendered: true, Rows: rows}
	return cloneRecords(rows)
}

// reset clears filters and the table but keeps the roster.
func (s *Session) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = models.Selection{}
	s.display = models.Display{}
}

func cloneRecords(in []models.StudentRecord) []models.StudentRecord {
	if in == nil {
		return nil
	}
	return append([]models.StudentRecord(nil), in...)
}
