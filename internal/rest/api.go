package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/dhkim-dev/inkpress/blog/application"
)

// NewApi registers the consumer-facing query surface and the authoring
// endpoints on the router.
func NewApi(router *gin.Engine, posts *application.PostService, highlighter *application.Highlighter) {
	h := &PostHandler{service: posts}

	postsV1 := router.Group("posts/v1")
	{
		postsV1.GET("/", h.ListPosts)
		postsV1.POST("/", h.CreatePost)
		postsV1.GET("/:id", h.GetPost)
		postsV1.PUT("/:id", h.UpdatePost)
		postsV1.PUT("/:id/publish", h.PublishPost)
		postsV1.DELETE("/:id", h.DeletePost)
	}

	renderV1 := router.Group("render/v1")
	{
		renderV1.POST("/", h.RenderPreview)
	}

	assets := router.Group("assets/highlight")
	{
		s := &StylesheetHandler{highlighter: highlighter}
		assets.GET("/light.css", s.Light)
		assets.GET("/dark.css", s.Dark)
	}
}
