package handlers

import (
	"github.com/gin-gonic/gin"
	"roster-lookup-go/render"
)

// SetupRouter registers the page and API routes on a new gin engine.
func SetupRouter(h *Handler) (*gin.Engine, error) {
	tmpl, err := render.Templates()
	if err != nil {
		return nil, err
	}

	router := gin.Default()
	router.SetHTMLTemplate(tmpl)

	// Page routes
	router.GET("/", h.Index)
	page := router.Group("/s/:sessionId")
	{
		page.POST("/upload", h.UploadPage)
		page.POST("/day", h.DayPage)
		page.POST("/lookup", h.LookupPage)
		page.POST("/reset", h.ResetPage)
	}

	// API routes
	api := router.Group("/api")
	{
		api.POST("/sessions", h.CreateSession)
		api.DELETE("/sessions/:sessionId", h.DeleteSession)

		api.POST("/sessions/:sessionId/upload", h.UploadRoster)
		api.GET("/sessions/:sessionId/classes", h.GetClasses)
		api.GET("/sessions/:sessionId/records", h.GetRecordsByDay)
		api.GET("/sessions/:sessionId/lookup", h.LookupStudent)
		api.POST("/sessions/:sessionId/reset", h.ResetFilters)

		api.GET("/ping", PingHandler)
	}

	return router, nil
}
