package handlers

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"roster-lookup-go/db"
	"roster-lookup-go/parser"
	"roster-lookup-go/render"
	"roster-lookup-go/roster"
)

// Index handles GET /. Every load starts a fresh session.
func (h *Handler) Index(c *gin.Context) {
	sess, err := h.Store.Create(c.Request.Context())
	if err != nil {
		log.Printf("Error creating session: %v", err)
		c.String(http.StatusInternalServerError, "Failed to start a session")
		return
	}
	c.HTML(http.StatusOK, render.PageName, render.NewPage(sess.ID, h.Days, sess.Snapshot(), nil))
}

// UploadPage handles POST /s/:sessionId/upload
func (h *Handler) UploadPage(c *gin.Context) {
	file, header, formErr := openFormFile(c)
	if formErr != nil {
		log.Printf("Error retrieving uploaded file: %v", formErr)
	}
	if file != nil {
		defer file.Close()
	}

	var p roster.Parser = parser.CSV{}
	if header != nil {
		p = parser.ForFilename(header.Filename)
		log.Printf("Received file upload: %s (%d bytes)", header.Filename, header.Size)
	}

	var r io.Reader
	switch {
	case formErr != nil:
		// A broken body is reported like an unreadable file.
		r = errReader{err: formErr}
	case file != nil:
		r = file
	}
	h.act(c, p, func(b *roster.Board) error {
		_, err := b.Upload(r)
		return err
	})
}

// DayPage handles POST /s/:sessionId/day
func (h *Handler) DayPage(c *gin.Context) {
	day := c.PostForm("day")
	h.act(c, nil, func(b *roster.Board) error {
		_, err := b.ChangeDay(day)
		return err
	})
}

// LookupPage handles POST /s/:sessionId/lookup
func (h *Handler) LookupPage(c *gin.Context) {
	class, classNo := c.PostForm("class"), c.PostForm("classNo")
	h.act(c, nil, func(b *roster.Board) error {
		_, err := b.FindStudent(class, classNo)
		return err
	})
}

// ResetPage handles POST /s/:sessionId/reset
func (h *Handler) ResetPage(c *gin.Context) {
	h.act(c, nil, func(b *roster.Board) error {
		return b.Reset()
	})
}

// act runs one user event against the session and re-renders the page.
// Unknown sessions are sent back to / for a fresh one.
func (h *Handler) act(c *gin.Context, p roster.Parser, event func(*roster.Board) error) {
	sess, err := h.loadSession(c)
	if err != nil {
		if errors.Is(err, db.ErrSessionNotFound) {
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to load session")
		return
	}

	view := &render.View{}
	eventErr := event(h.newBoard(sess, p, view))
	status := statusFor(eventErr)
	if errors.Is(eventErr, roster.ErrMissingFile) {
		status = http.StatusOK
	}
	if status == http.StatusInternalServerError {
		log.Printf("Error handling event for session %s: %v", sess.ID, eventErr)
		c.String(status, "Failed to process request")
		return
	}

	if err := h.Store.Save(c.Request.Context(), sess); err != nil {
		c.String(http.StatusInternalServerError, "Failed to save session")
		return
	}
	c.HTML(status, render.PageName, render.NewPage(sess.ID, h.Days, sess.Snapshot(), view))
}

// openFormFile returns the "file" part of a multipart form, or nil when the
// request carries none.
func openFormFile(c *gin.Context) (multipart.File, *multipart.FileHeader, error) {
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, header, err
	}
	return file, header, nil
}

// errReader fails every read with err.
type errReader struct {
	err error
}

func (r errReader) Read([]byte) (int, error) {
	return 0, r.err
}
