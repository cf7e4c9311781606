package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhkim-dev/inkpress/blog/domain"
	"github.com/dhkim-dev/inkpress/blog/persistence"
)

func newTestService(t *testing.T) *PostService {
	t.Helper()
	repo, err := persistence.NewPostRepository(t.TempDir())
	require.NoError(t, err)
	return NewPostService(repo, NewMarkdownRenderer(NewHighlighter()))
}

func TestServiceCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateInput
	}{
		{"Missing title", CreateInput{Content: "body"}},
		{"Missing content", CreateInput{Title: "A Title"}},
		{"Whitespace title", CreateInput{Title: "   ", Content: "body"}},
		{"Title with no word characters", CreateInput{Title: "!!!", Content: "body"}},
		{"Unknown status", CreateInput{Title: "A Title", Content: "body", Status: "archived"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.input)
			var validation *domain.ValidationError
			require.ErrorAs(t, err, &validation)
		})
	}
}

func TestServiceCreateDerivesFields(t *testing.T) {
	svc := newTestService(t)

	post, err := svc.Create(context.Background(), CreateInput{
		Title:   "Derived Fields",
		Content: "# Derived Fields\n\nSome text.",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDraft, post.Status, "status defaults to draft")
	assert.Contains(t, post.HTML, `id="heading-0"`)
	assert.Equal(t, "1 min read", post.ReadingTime)
}

func TestServiceGetByIDOrSlug(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Title: "Addressable", Content: "body"})
	require.NoError(t, err)

	byID, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	bySlug, err := svc.Get(ctx, "addressable")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)
	assert.NotEmpty(t, bySlug.HTML, "derived fields attached on every read")
}

func TestServiceListFiltersByStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	draft, err := svc.Create(ctx, CreateInput{Title: "Draft Post", Content: "body"})
	require.NoError(t, err)
	published, err := svc.Create(ctx, CreateInput{Title: "Published Post", Content: "body", Status: domain.StatusPublished})
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	drafts, err := svc.List(ctx, domain.StatusDraft)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, draft.ID, drafts[0].ID)

	publishedOnly, err := svc.List(ctx, domain.StatusPublished)
	require.NoError(t, err)
	require.Len(t, publishedOnly, 1)
	assert.Equal(t, published.ID, publishedOnly[0].ID)
}

func TestServiceUpdateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Title: "Valid", Content: "body"})
	require.NoError(t, err)

	empty := ""
	_, err = svc.Update(ctx, created.ID, domain.UpdateFields{Title: &empty})
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = svc.Update(ctx, created.ID, domain.UpdateFields{Content: &empty})
	require.ErrorAs(t, err, &validation)
}

func TestServicePublishFlow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{Title: "Publish Me", Content: "body"})
	require.NoError(t, err)

	published, err := svc.Publish(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	_, err = svc.Publish(ctx, created.ID)
	var already *domain.AlreadyPublishedError
	require.ErrorAs(t, err, &already)
}

func TestServiceRenderPreview(t *testing.T) {
	svc := newTestService(t)

	html, err := svc.Render("**bold**")
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>bold</strong>")
}
