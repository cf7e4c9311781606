package persistence

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhkim-dev/inkpress/blog/domain"
)

func newTestRepository(t *testing.T) *FilePostRepository {
	t.Helper()
	repo, err := NewPostRepository(t.TempDir())
	require.NoError(t, err)
	return repo
}

func TestCreateAndGetByID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.NewPost{
		Title:       "My First Post",
		Description: "An introduction",
		Content:     "# Hello\n\nWorld.",
	})
	require.NoError(t, err)
	require.Len(t, created.ID, domain.IDLength)
	assert.Equal(t, "my-first-post", created.Slug)
	assert.Equal(t, domain.StatusDraft, created.Status)
	assert.Nil(t, created.PublishedAt)
	assert.False(t, created.UpdatedAt.Before(created.CreatedAt))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Content, got.Content)
	assert.Equal(t, created.Status, got.Status)
	assert.False(t, got.Legacy)
}

func TestCreatePublishedSetsPublishedAt(t *testing.T) {
	repo := newTestRepository(t)

	created, err := repo.Create(context.Background(), domain.NewPost{
		Title:   "Launch Day",
		Content: "We shipped.",
		Status:  domain.StatusPublished,
	})
	require.NoError(t, err)
	require.NotNil(t, created.PublishedAt)
	assert.Equal(t, domain.StatusPublished, created.Status)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetByID(context.Background(), domain.NewID())
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGetBySlug(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.NewPost{Title: "Find Me", Content: "body"})
	require.NoError(t, err)

	got, err := repo.GetBySlug(ctx, "find-me")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = repo.GetBySlug(ctx, "no-such-slug")
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestUpdateTitleRenamesFile(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.NewPost{Title: "Old Title", Content: "body"})
	require.NoError(t, err)

	oldPath := filepath.Join(repo.dir, encodeFilename(created.ID, created.Slug))
	_, err = os.Stat(oldPath)
	require.NoError(t, err)

	newTitle := "New Title"
	updated, err := repo.Update(ctx, created.ID, domain.UpdateFields{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID, "id must never change")
	assert.Equal(t, "new-title", updated.Slug)
	assert.True(t, updated.UpdatedAt.After(created.CreatedAt) || updated.UpdatedAt.Equal(created.CreatedAt))

	_, err = os.Stat(oldPath)
	assert.True(t, errors.Is(err, os.ErrNotExist), "old filename should be gone")

	newPath := filepath.Join(repo.dir, encodeFilename(created.ID, "new-title"))
	_, err = os.Stat(newPath)
	assert.NoError(t, err, "new filename should exist")

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Title", got.Title)
	assert.Equal(t, "body", got.Content, "content untouched by partial update")
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.NewPost{
		Title:       "Stable Title",
		Description: "original description",
		Content:     "original content",
	})
	require.NoError(t, err)

	content := "updated content"
	updated, err := repo.Update(ctx, created.ID, domain.UpdateFields{Content: &content})
	require.NoError(t, err)

	assert.Equal(t, "Stable Title", updated.Title)
	assert.Equal(t, "original description", updated.Description)
	assert.Equal(t, "updated content", updated.Content)
	assert.Equal(t, created.Slug, updated.Slug)
}

func TestPublish(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.NewPost{Title: "To Publish", Content: "body"})
	require.NoError(t, err)

	published, err := repo.Publish(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	firstPublishedAt := *published.PublishedAt

	_, err = repo.Publish(ctx, created.ID)
	var alreadyPublished *domain.AlreadyPublishedError
	require.ErrorAs(t, err, &alreadyPublished)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PublishedAt)
	assert.True(t, got.PublishedAt.Equal(firstPublishedAt), "published_at must not move")
}

func TestDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.NewPost{Title: "Short Lived", Content: "body"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)

	err = repo.Delete(ctx, created.ID)
	require.ErrorAs(t, err, &notFound, "deleting a missing post is NotFound, not a silent success")
}

func TestListSortsNewestFirstAndSkipsMalformed(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, domain.NewPost{Title: "First", Content: "body"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, domain.NewPost{Title: "Second", Content: "body"})
	require.NoError(t, err)

	// A file whose metadata block cannot be parsed is skipped, not fatal.
	broken := filepath.Join(repo.dir, "broken-post.md")
	require.NoError(t, os.WriteFile(broken, []byte("---\ntitle: [unclosed\n---\n\nbody\n"), 0644))

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
}

func TestListIncludesLegacyFiles(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	legacy := filepath.Join(repo.dir, "older-writeup.md")
	content := "---\ntitle: \"Older Writeup\"\ndate: 2021-09-01T00:00:00Z\ndraft: false\ntags: [notes]\n---\n\nLegacy body\n"
	require.NoError(t, os.WriteFile(legacy, []byte(content), 0644))

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	post := posts[0]
	assert.True(t, post.Legacy)
	assert.Equal(t, "older-writeup", post.Slug)
	assert.Equal(t, domain.StatusPublished, post.Status)

	// Legacy files stay addressable by slug.
	got, err := repo.GetBySlug(ctx, "older-writeup")
	require.NoError(t, err)
	assert.Equal(t, "Older Writeup", got.Title)
}

func TestGetByIDSurfacesMalformedFile(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.NewPost{Title: "Will Break", Content: "body"})
	require.NoError(t, err)

	path := filepath.Join(repo.dir, encodeFilename(created.ID, created.Slug))
	require.NoError(t, os.WriteFile(path, []byte("---\ntitle: [unclosed\n---\n\nbody\n"), 0644))

	_, err = repo.GetByID(ctx, created.ID)
	var malformed *domain.MalformedPostFileError
	require.ErrorAs(t, err, &malformed)
}
