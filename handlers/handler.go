package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"roster-lookup-go/db"
	"roster-lookup-go/roster"
)

// Handler holds the dependencies shared by the page and API handlers.
type Handler struct {
	Store          db.SessionStore
	Days           []string
	MaxUploadBytes int64
}

// NewHandler creates a new Handler
func NewHandler(store db.SessionStore, days []string, maxUploadBytes int64) *Handler {
	return &Handler{
		Store:          store,
		Days:           days,
		MaxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) newBoard(sess *roster.Session, p roster.Parser, r roster.Renderer) *roster.Board {
	b := roster.NewBoard(sess, p, r)
	if h.MaxUploadBytes > 0 {
		b.MaxBytes = h.MaxUploadBytes
	}
	return b
}

// loadSession fetches the session named by the sessionId path parameter.
// The returned error is either db.ErrSessionNotFound or a store failure.
func (h *Handler) loadSession(c *gin.Context) (*roster.Session, error) {
	id := c.Param("sessionId")
	if id == "" {
		return nil, db.ErrSessionNotFound
	}
	sess, err := h.Store.Get(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, db.ErrSessionNotFound) {
			log.Printf("Error loading session %s: %v", id, err)
		}
		return nil, err
	}
	return sess, nil
}

// statusFor maps a Board error to an HTTP status.
func statusFor(err error) int {
	var perr *roster.ParseError
	var verr *roster.ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, roster.ErrMissingFile):
		return http.StatusBadRequest
	case errors.As(err, &perr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &verr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PingHandler handles GET /api/ping
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
}
