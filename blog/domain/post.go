package domain

import (
	"context"
	"time"
)

// Status is the lifecycle state of a post. Posts are created as drafts and
// move to published exactly once; there is no unpublish transition.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Post represents a single article backed by exactly one file on disk.
// ID is assigned at creation and never changes; Slug is derived from Title
// and stays in sync with the on-disk filename.
type Post struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Status      Status
	Content     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PublishedAt *time.Time

	// Legacy marks posts decoded from files with no embedded id, so callers
	// can warn about them or migrate them.
	Legacy bool

	// HTML and ReadingTime are derived on every read, never persisted.
	HTML        string
	ReadingTime string
}

// NewPost carries the fields needed to create a post.
type NewPost struct {
	Title       string
	Description string
	Content     string
	Status      Status
}

// UpdateFields is a partial update; nil fields are left untouched.
type UpdateFields struct {
	Title       *string
	Description *string
	Content     *string
}

// PostRepository is the content store: create/read/update/delete/publish
// over a flat directory of post files.
type PostRepository interface {
	List(ctx context.Context) ([]*Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	Create(ctx context.Context, p NewPost) (*Post, error)
	Update(ctx context.Context, id string, fields UpdateFields) (*Post, error)
	Publish(ctx context.Context, id string) (*Post, error)
	Delete(ctx context.Context, id string) error
}
