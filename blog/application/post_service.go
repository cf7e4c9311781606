package application

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dhkim-dev/inkpress/blog/domain"
)

// PostService is the caller-facing surface of the content store. It
// validates input, delegates storage to the repository, and attaches the
// derived HTML and reading-time fields on every read.
type PostService struct {
	repo     domain.PostRepository
	markdown MarkdownRenderer
}

func NewPostService(repo domain.PostRepository, markdown MarkdownRenderer) *PostService {
	return &PostService{
		repo:     repo,
		markdown: markdown,
	}
}

// CreateInput carries the fields accepted when creating a post.
type CreateInput struct {
	Title       string
	Description string
	Content     string
	Status      domain.Status
}

// List returns all posts, newest first, optionally filtered by status.
func (s *PostService) List(ctx context.Context, status domain.Status) ([]*domain.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*domain.Post, 0, len(posts))
	for _, post := range posts {
		if status != "" && post.Status != status {
			continue
		}
		s.derive(post)
		filtered = append(filtered, post)
	}
	return filtered, nil
}

// Get resolves key as an id when it has the identifier shape, otherwise as a
// slug. The two lookup paths are independent; slug lookups scan all posts.
func (s *PostService) Get(ctx context.Context, key string) (*domain.Post, error) {
	var (
		post *domain.Post
		err  error
	)
	if domain.IsID(key) {
		post, err = s.repo.GetByID(ctx, key)
	} else {
		post, err = s.repo.GetBySlug(ctx, key)
	}
	if err != nil {
		return nil, err
	}
	s.derive(post)
	return post, nil
}

// Create validates the input and writes a new draft (or, when requested,
// published) post.
func (s *PostService) Create(ctx context.Context, in CreateInput) (*domain.Post, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, &domain.ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if domain.Slugify(in.Title) == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "produces an empty slug"}
	}
	if in.Status != "" && !in.Status.Valid() {
		return nil, &domain.ValidationError{Field: "status", Reason: "must be draft or published"}
	}

	post, err := s.repo.Create(ctx, domain.NewPost{
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		Status:      in.Status,
	})
	if err != nil {
		return nil, err
	}
	s.derive(post)
	return post, nil
}

// Update merges the provided fields into the stored post. A changed title
// recomputes the slug and renames the backing file.
func (s *PostService) Update(ctx context.Context, id string, fields domain.UpdateFields) (*domain.Post, error) {
	if fields.Title != nil {
		if strings.TrimSpace(*fields.Title) == "" {
			return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
		}
		if domain.Slugify(*fields.Title) == "" {
			return nil, &domain.ValidationError{Field: "title", Reason: "produces an empty slug"}
		}
	}
	if fields.Content != nil && strings.TrimSpace(*fields.Content) == "" {
		return nil, &domain.ValidationError{Field: "content", Reason: "must not be empty"}
	}

	post, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.derive(post)
	return post, nil
}

// Publish makes the one-way draft to published transition.
func (s *PostService) Publish(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.repo.Publish(ctx, id)
	if err != nil {
		return nil, err
	}
	s.derive(post)
	return post, nil
}

// Delete removes a post by id, from either lifecycle state.
func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Render converts raw markdown into sanitized HTML, used by the authoring
// preview as well as derive.
func (s *PostService) Render(markdown string) (string, error) {
	return s.markdown.Render(markdown)
}

// derive recomputes the presentation fields. They are cheap enough to
// rebuild on each read and are never persisted; a render failure downgrades
// the post to its raw content rather than failing the read.
func (s *PostService) derive(post *domain.Post) {
	post.ReadingTime = ReadingTime(post.Content)

	html, err := s.markdown.Render(post.Content)
	if err != nil {
		log.Error().Err(err).Str("postID", post.ID).Msg("Failed to render post body")
		return
	}
	post.HTML = html
}
