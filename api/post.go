package api

import (
	"time"

	"github.com/dhkim-dev/inkpress/blog/domain"
	"github.com/dhkim-dev/inkpress/blog/outline"
)

// Post is the list-level representation of a post.
type Post struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at"`
	Description string     `json:"description"`
	Legacy      bool       `json:"legacy,omitempty"`
}

// PostDetail adds the body, rendered HTML, reading time and outline.
type PostDetail struct {
	Post
	Content     string         `json:"content"`
	HTML        string         `json:"html"`
	ReadingTime string         `json:"readingTime"`
	Outline     []outline.Node `json:"outline,omitempty"`
}

type CreatePostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Status      string `json:"status"`
}

type UpdatePostRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
}

type RenderRequest struct {
	Markdown string `json:"markdown"`
}

type RenderResponse struct {
	HTML string `json:"html"`
}

// FromDomain maps a domain post to its list representation.
func FromDomain(p *domain.Post) Post {
	return Post{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		PublishedAt: p.PublishedAt,
		Description: p.Description,
		Legacy:      p.Legacy,
	}
}

// DetailFromDomain maps a domain post to its detail representation,
// deriving the outline from the rendered HTML.
func DetailFromDomain(p *domain.Post) PostDetail {
	return PostDetail{
		Post:        FromDomain(p),
		Content:     p.Content,
		HTML:        p.HTML,
		ReadingTime: p.ReadingTime,
		Outline:     outline.Extract(p.HTML, p.Title),
	}
}
