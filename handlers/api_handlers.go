package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"roster-lookup-go/db"
	"roster-lookup-go/models"
	"roster-lookup-go/parser"
	"roster-lookup-go/render"
	"roster-lookup-go/roster"
)

// --- Session Handlers ---

// CreateSession handles POST /api/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	sess, err := h.Store.Create(c.Request.Context())
	if err != nil {
		log.Printf("Error in CreateSession handler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sessionId": sess.ID})
}

// DeleteSession handles DELETE /api/sessions/:sessionId
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.Store.Delete(c.Request.Context(), c.Param("sessionId")); err != nil {
		log.Printf("Error in DeleteSession handler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session"})
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Roster Handlers ---

// UploadRoster handles POST /api/sessions/:sessionId/upload
func (h *Handler) UploadRoster(c *gin.Context) {
	sess, ok := h.apiSession(c)
	if !ok {
		return
	}

	file, header, err := openFormFile(c)
	if err != nil {
		log.Printf("Error getting form file: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error retrieving uploaded file: " + err.Error()})
		return
	}
	var r io.Reader
	var p roster.Parser = parser.CSV{}
	if file != nil {
		defer file.Close()
		r = file
		p = parser.ForFilename(header.Filename)
		log.Printf("Received file upload: %s for session: %s", header.Filename, sess.ID)
	}

	view := &render.View{}
	count, err := h.newBoard(sess, p, view).Upload(r)
	if err != nil {
		status := statusFor(err)
		msg := view.Error
		if errors.Is(err, roster.ErrMissingFile) {
			msg = "Missing 'file' in form data"
		}
		if status == http.StatusInternalServerError {
			msg = "Failed to import roster"
		}
		c.JSON(status, gin.H{"message": msg, "error": err.Error()})
		return
	}

	if !h.apiSave(c, sess) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       view.Notice,
		"importedCount": count,
		"classes":       sess.ClassIndex(),
	})
}

// GetClasses handles GET /api/sessions/:sessionId/classes
func (h *Handler) GetClasses(c *gin.Context) {
	sess, ok := h.apiSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.ClassIndex())
}

// GetRecordsByDay handles GET /api/sessions/:sessionId/records?day=
func (h *Handler) GetRecordsByDay(c *gin.Context) {
	sess, ok := h.apiSession(c)
	if !ok {
		return
	}

	rows, err := h.newBoard(sess, nil, &render.View{}).ChangeDay(c.Query("day"))
	if err != nil {
		log.Printf("Error in GetRecordsByDay handler for session %s: %v", sess.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to filter roster"})
		return
	}
	if !h.apiSave(c, sess) {
		return
	}
	c.JSON(http.StatusOK, nonNil(rows))
}

// LookupStudent handles GET /api/sessions/:sessionId/lookup?class=&classNo=
func (h *Handler) LookupStudent(c *gin.Context) {
	sess, ok := h.apiSession(c)
	if !ok {
		return
	}

	view := &render.View{}
	rows, err := h.newBoard(sess, nil, view).FindStudent(c.Query("class"), c.Query("classNo"))
	if err != nil {
		var verr *roster.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": view.Error, "fields": verr.Fields})
			return
		}
		log.Printf("Error in LookupStudent handler for session %s: %v", sess.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up student"})
		return
	}
	if !h.apiSave(c, sess) {
		return
	}
	c.JSON(http.StatusOK, nonNil(rows))
}

// ResetFilters handles POST /api/sessions/:sessionId/reset
func (h *Handler) ResetFilters(c *gin.Context) {
	sess, ok := h.apiSession(c)
	if !ok {
		return
	}
	if err := h.newBoard(sess, nil, &render.View{}).Reset(); err != nil {
		log.Printf("Error in ResetFilters handler for session %s: %v", sess.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset filters"})
		return
	}
	if !h.apiSave(c, sess) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Filters reset"})
}

func (h *Handler) apiSession(c *gin.Context) (*roster.Session, bool) {
	sess, err := h.loadSession(c)
	if err != nil {
		if errors.Is(err, db.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		}
		return nil, false
	}
	return sess, true
}

func (h *Handler) apiSave(c *gin.Context, sess *roster.Session) bool {
	if err := h.Store.Save(c.Request.Context(), sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return false
	}
	return true
}

func nonNil(rows []models.StudentRecord) []models.StudentRecord {
	if rows == nil {
		return []models.StudentRecord{}
	}
	return rows
}
