package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhkim-dev/inkpress/api"
	"github.com/dhkim-dev/inkpress/blog/application"
)

// RenderPreview converts raw markdown into sanitized HTML for the authoring
// preview panel.
func (h *PostHandler) RenderPreview(c *gin.Context) {
	var req api.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	html, err := h.service.Render(req.Markdown)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.RenderResponse{HTML: html})
}

// StylesheetHandler serves the highlighter's light and dark stylesheets so
// the reader page can switch code themes with CSS alone.
type StylesheetHandler struct {
	highlighter *application.Highlighter
}

func (s *StylesheetHandler) Light(c *gin.Context) {
	css, err := s.highlighter.StylesheetLight()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(css))
}

func (s *StylesheetHandler) Dark(c *gin.Context) {
	css, err := s.highlighter.StylesheetDark()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(css))
}
