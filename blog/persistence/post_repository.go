package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dhkim-dev/inkpress/blog/domain"
)

var _ domain.PostRepository = (*FilePostRepository)(nil)

// FilePostRepository implements domain.PostRepository over a flat directory
// of markdown files. It assumes it is the sole writer to that directory;
// concurrent external modification is not guarded against.
type FilePostRepository struct {
	dir string
}

// NewPostRepository creates a FilePostRepository rooted at dir, creating the
// directory if needed.
func NewPostRepository(dir string) (*FilePostRepository, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &domain.StorageError{Op: "mkdir", Path: dir, Err: err}
	}
	return &FilePostRepository{dir: dir}, nil
}

// List reads every post file in the directory, sorted by creation time
// descending. A file that fails to parse is skipped and logged rather than
// failing the whole listing.
func (r *FilePostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	names, err := r.postFilenames()
	if err != nil {
		return nil, err
	}

	posts := make([]*domain.Post, 0, len(names))
	for _, name := range names {
		post, err := r.readFile(name)
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("Skipping unreadable post file")
			continue
		}
		if post.Legacy {
			log.Warn().Str("file", name).Msg("Legacy post file without embedded id; consider migrating")
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	return posts, nil
}

// GetByID scans the directory for a canonical filename carrying the id.
// A linear scan is fine at this scale; no index is maintained.
func (r *FilePostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	name, err := r.filenameForID(id)
	if err != nil {
		return nil, err
	}
	return r.readFile(name)
}

// GetBySlug returns the first post whose slug matches, in List order.
func (r *FilePostRepository) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	posts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		if post.Slug == slug {
			return post, nil
		}
	}
	return nil, &domain.NotFoundError{Key: slug}
}

// Create assigns a fresh id and slug and writes a new canonical file. The
// file is created exclusively so an identity collision surfaces as
// AlreadyExists instead of silently overwriting.
func (r *FilePostRepository) Create(ctx context.Context, p domain.NewPost) (*domain.Post, error) {
	status := p.Status
	if status == "" {
		status = domain.StatusDraft
	}

	now := time.Now().UTC()
	post := &domain.Post{
		ID:          domain.NewID(),
		Slug:        domain.Slugify(p.Title),
		Title:       p.Title,
		Description: p.Description,
		Status:      status,
		Content:     p.Content,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if status == domain.StatusPublished {
		post.PublishedAt = &now
	}

	name := encodeFilename(post.ID, post.Slug)
	data, err := serializePostFile(metaFromPost(post), post.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize post: %w", err)
	}

	path := filepath.Join(r.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, &domain.AlreadyExistsError{Filename: name}
		}
		return nil, &domain.StorageError{Op: "create", Path: path, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return nil, &domain.StorageError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return nil, &domain.StorageError{Op: "close", Path: path, Err: err}
	}

	return post, nil
}

// Update merges the provided fields into the stored post. If the title
// changed the slug and filename change with it; the new file is written
// before the old one is removed, so a crash between the two steps leaves
// the post readable under its new name rather than lost.
func (r *FilePostRepository) Update(ctx context.Context, id string, fields domain.UpdateFields) (*domain.Post, error) {
	post, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldName := encodeFilename(post.ID, post.Slug)

	if fields.Title != nil && *fields.Title != post.Title {
		post.Title = *fields.Title
		post.Slug = domain.Slugify(post.Title)
	}
	if fields.Description != nil {
		post.Description = *fields.Description
	}
	if fields.Content != nil {
		post.Content = *fields.Content
	}
	post.UpdatedAt = time.Now().UTC()

	if err := r.writePost(post); err != nil {
		return nil, err
	}

	if newName := encodeFilename(post.ID, post.Slug); newName != oldName {
		oldPath := filepath.Join(r.dir, oldName)
		if err := os.Remove(oldPath); err != nil {
			return nil, &domain.StorageError{Op: "remove", Path: oldPath, Err: err}
		}
	}

	return post, nil
}

// Publish moves a draft to published. published_at is set only on the first
// transition and never moved afterwards.
func (r *FilePostRepository) Publish(ctx context.Context, id string) (*domain.Post, error) {
	post, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Status == domain.StatusPublished {
		return nil, &domain.AlreadyPublishedError{ID: id}
	}

	now := time.Now().UTC()
	post.Status = domain.StatusPublished
	if post.PublishedAt == nil {
		post.PublishedAt = &now
	}
	post.UpdatedAt = now

	if err := r.writePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the post's file. Deleting an id with no matching file is
// NotFound, never a silent success.
func (r *FilePostRepository) Delete(ctx context.Context, id string) error {
	name, err := r.filenameForID(id)
	if err != nil {
		return err
	}
	path := filepath.Join(r.dir, name)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &domain.NotFoundError{Key: id}
		}
		return &domain.StorageError{Op: "remove", Path: path, Err: err}
	}
	return nil
}

func (r *FilePostRepository) postFilenames() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, &domain.StorageError{Op: "readdir", Path: r.dir, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), postExt) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func (r *FilePostRepository) filenameForID(id string) (string, error) {
	names, err := r.postFilenames()
	if err != nil {
		return "", err
	}
	for _, name := range names {
		if decoded := decodeFilename(name); decoded.ID == id {
			return name, nil
		}
	}
	return "", &domain.NotFoundError{Key: id}
}

func (r *FilePostRepository) readFile(name string) (*domain.Post, error) {
	path := filepath.Join(r.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.NotFoundError{Key: name}
		}
		return nil, &domain.StorageError{Op: "read", Path: path, Err: err}
	}

	meta, body, err := parsePostFile(data)
	if err != nil {
		return nil, &domain.MalformedPostFileError{Path: path, Err: err}
	}

	file := &postFile{name: name, meta: meta, body: body}
	return file.toDomain(), nil
}

func (r *FilePostRepository) writePost(post *domain.Post) error {
	data, err := serializePostFile(metaFromPost(post), post.Content)
	if err != nil {
		return fmt.Errorf("failed to serialize post: %w", err)
	}
	path := filepath.Join(r.dir, encodeFilename(post.ID, post.Slug))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &domain.StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}
