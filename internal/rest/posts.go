package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dhkim-dev/inkpress/api"
	"github.com/dhkim-dev/inkpress/blog/application"
	"github.com/dhkim-dev/inkpress/blog/domain"
)

type PostHandler struct {
	service *application.PostService
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	status := domain.Status(c.Query("status"))
	if status != "" && !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be draft or published"})
		return
	}

	posts, err := h.service.List(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]api.Post, 0, len(posts))
	for _, post := range posts {
		out = append(out, api.FromDomain(post))
	}
	c.JSON(http.StatusOK, out)
}

// GetPost resolves the path parameter as an id or, failing the id shape, a
// slug. Both addressing paths land on the same post representation.
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.DetailFromDomain(post))
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req api.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.service.Create(c.Request.Context(), application.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Status:      domain.Status(req.Status),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, api.DetailFromDomain(post))
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req api.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.service.Update(c.Request.Context(), c.Param("id"), domain.UpdateFields{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.DetailFromDomain(post))
}

func (h *PostHandler) PublishPost(c *gin.Context) {
	post, err := h.service.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.FromDomain(post))
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondError maps domain errors to HTTP statuses. Storage failures are
// unexpected: they get logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		existsErr     *domain.AlreadyExistsError
		publishedErr  *domain.AlreadyPublishedError
		malformedErr  *domain.MalformedPostFileError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &existsErr):
		c.JSON(http.StatusConflict, gin.H{"error": existsErr.Error()})
	case errors.As(err, &publishedErr):
		c.JSON(http.StatusConflict, gin.H{"error": publishedErr.Error()})
	case errors.As(err, &malformedErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": malformedErr.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unexpected storage failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
