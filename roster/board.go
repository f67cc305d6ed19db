package roster

import (
	"errors"
	"fmt"
	"io"
	"log"

	"roster-lookup-go/models"
)

// User-facing messages.
const (
	MsgUploaded      = "Roster uploaded. You can now use the filters."
	MsgParseFailed   = "Unable to parse this file. Make sure it is a valid, uncorrupted CSV."
	MsgLookupMissing = "Please select a class and enter a class number."
)

// DefaultMaxUploadBytes bounds an upload when Board.MaxBytes is zero.
const DefaultMaxUploadBytes int64 = 10 << 20

// Parser turns raw file contents into roster records.
type Parser interface {
	Parse(data []byte) ([]models.StudentRecord, error)
}

// Renderer displays results and notices to the user.
type Renderer interface {
	Render(records []models.StudentRecord) error
	Clear() error
	ShowError(msg string) error
	ShowNotice(msg string) error
}

// Board wires a Session to a Parser and a Renderer and handles user events.
type Board struct {
	Session  *Session
	Parser   Parser
	Renderer Renderer
	MaxBytes int64
}

// NewBoard creates a Board for one session.
func NewBoard(session *Session, parser Parser, renderer Renderer) *Board {
	return &Board{
		Session:  session,
		Parser:   parser,
		Renderer: renderer,
		MaxBytes: DefaultMaxUploadBytes,
	}
}

// Upload parses file and replaces the session roster with its rows.
// A nil file returns ErrMissingFile without touching the session or renderer.
// On a parse failure the previous roster is kept and a *ParseError is returned.
func (b *Board) Upload(file io.Reader) (int, error) {
	if file == nil {
		log.Printf("Session %s: upload without a file, ignoring", b.Session.ID)
		return 0, ErrMissingFile
	}

	records, err := b.parse(file)
	if err != nil {
		log.Printf("Session %s: error parsing roster: %v", b.Session.ID, err)
		if rerr := b.Renderer.ShowError(MsgParseFailed); rerr != nil {
			return 0, fmt.Errorf("failed to show parse error: %w", rerr)
		}
		return 0, err
	}

	b.Session.replace(records)
	log.Printf("Session %s: loaded %d roster rows", b.Session.ID, len(records))

	if err := b.Renderer.Clear(); err != nil {
		return len(records), fmt.Errorf("failed to clear table: %w", err)
	}
	if err := b.Renderer.ShowNotice(MsgUploaded); err != nil {
		return len(records), fmt.Errorf("failed to show notice: %w", err)
	}
	return len(records), nil
}

func (b *Board) parse(file io.Reader) ([]models.StudentRecord, error) {
	limit := b.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxUploadBytes
	}
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, &ParseError{Cause: err}
	}
	if int64(len(data)) > limit {
		return nil, &ParseError{Cause: ErrTooLarge}
	}

	records, err := b.Parser.Parse(data)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			return nil, perr
		}
		return nil, &ParseError{Cause: err}
	}
	if records == nil {
		records = []models.StudentRecord{}
	}
	return records, nil
}

// ChangeDay filters by day. An empty day clears the table.
// The class selection is always cleared.
func (b *Board) ChangeDay(day string) ([]models.StudentRecord, error) {
	rows := b.Session.selectDay(day)
	if day == "" {
		return nil, b.Renderer.Clear()
	}
	return rows, b.Renderer.Render(rows)
}

// FindStudent looks up records by class and class number. Without both values
// it shows a validation error, returns a *ValidationError and changes nothing.
func (b *Board) FindStudent(class, classNo string) ([]models.StudentRecord, error) {
	q, err := NewLookupQuery(class, classNo)
	if err != nil {
		if rerr := b.Renderer.ShowError(MsgLookupMissing); rerr != nil {
			return nil, fmt.Errorf("failed to show validation error: %w", rerr)
		}
		return nil, err
	}
	rows := b.Session.lookup(q, classNo)
	return rows, b.Renderer.Render(rows)
}

// Reset clears the filters and the table. The roster stays loaded.
func (b *Board) Reset() error {
	b.Session.reset()
	return b.Renderer.Clear()
}
