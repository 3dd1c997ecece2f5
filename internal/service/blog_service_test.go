package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blog-api/internal/domain"
	"blog-api/pkg/logger"
	"blog-api/pkg/redis"
)

// fakeBlogRepo is an in-memory BlogRepository that counts store reads
type fakeBlogRepo struct {
	blogs     map[string]*domain.Blog
	findCalls int
	lastQuery domain.BlogListQuery
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{blogs: make(map[string]*domain.Blog)}
}

func (f *fakeBlogRepo) Create(ctx context.Context, blog *domain.Blog) error {
	if blog.ID == "" {
		blog.ID = "blog-1"
	}
	blog.CreatedAt = time.Now().UTC()
	blog.UpdatedAt = blog.CreatedAt
	f.blogs[blog.ID] = blog
	return nil
}

func (f *fakeBlogRepo) List(ctx context.Context, query domain.BlogListQuery) ([]*domain.Blog, int64, error) {
	f.lastQuery = query
	out := make([]*domain.Blog, 0, len(f.blogs))
	for _, b := range f.blogs {
		out = append(out, b)
	}
	return out, int64(len(f.blogs)), nil
}

func (f *fakeBlogRepo) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	f.findCalls++
	return f.blogs[id], nil
}

func (f *fakeBlogRepo) Update(ctx context.Context, id string, update *domain.UpdateBlogRequest) (*domain.Blog, error) {
	blog, ok := f.blogs[id]
	if !ok {
		return nil, nil
	}
	if update.Title != nil {
		blog.Title = *update.Title
	}
	if update.Content != nil {
		blog.Content = *update.Content
	}
	blog.UpdatedAt = time.Now().UTC()
	return blog, nil
}

func (f *fakeBlogRepo) Delete(ctx context.Context, id string) (*domain.Blog, error) {
	blog, ok := f.blogs[id]
	if !ok {
		return nil, nil
	}
	delete(f.blogs, id)
	return blog, nil
}

func setupBlogService(t *testing.T) (*fakeBlogRepo, *redis.Client, BlogService) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cache, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	log, err := logger.New("error")
	require.NoError(t, err)

	repo := newFakeBlogRepo()
	return repo, cache, NewBlogService(repo, cache, log)
}

func TestBlogServiceGetCachesReads(t *testing.T) {
	repo, _, svc := setupBlogService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateBlogRequest{
		Title:   "My First Blog",
		Content: "This is the content of my first blog.",
	}, "u1")
	require.NoError(t, err)

	first, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, repo.findCalls)

	// Second read is served from cache
	second, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, 1, repo.findCalls)
	assert.Equal(t, first.Title, second.Title)
}

func TestBlogServiceUpdateInvalidatesCache(t *testing.T) {
	repo, _, svc := setupBlogService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateBlogRequest{
		Title:   "Original title",
		Content: "Original content",
	}, "u1")
	require.NoError(t, err)

	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 1, repo.findCalls)

	updated, err := svc.Update(ctx, created.ID, &domain.UpdateBlogRequest{
		Title: strPtr("New title"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "New title", updated.Title)

	// Next read must go back to the store, not serve the stale cache entry
	fresh, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh)
	assert.Equal(t, 2, repo.findCalls)
	assert.Equal(t, "New title", fresh.Title)
}

func TestBlogServiceDeleteInvalidatesCache(t *testing.T) {
	repo, _, svc := setupBlogService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateBlogRequest{
		Title:   "Doomed",
		Content: "Soon gone",
	}, "u1")
	require.NoError(t, err)

	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)

	gone, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.Equal(t, 2, repo.findCalls)
}

func TestBlogServiceGetMissingReturnsNil(t *testing.T) {
	_, _, svc := setupBlogService(t)

	blog, err := svc.Get(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, blog)
}

func TestBlogServiceWorksWithoutCache(t *testing.T) {
	log, err := logger.New("error")
	require.NoError(t, err)

	repo := newFakeBlogRepo()
	svc := NewBlogService(repo, nil, log)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateBlogRequest{
		Title:   "No cache",
		Content: "Still works",
	}, "u1")
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "No cache", got.Title)
}

func TestBlogServiceListNormalizesPagination(t *testing.T) {
	tests := []struct {
		name      string
		query     domain.BlogListQuery
		wantPage  int
		wantLimit int
	}{
		{
			name:      "defaults applied",
			query:     domain.BlogListQuery{},
			wantPage:  domain.DefaultPageNumber,
			wantLimit: domain.DefaultPageSize,
		},
		{
			name:      "values preserved",
			query:     domain.BlogListQuery{Page: 3, Limit: 25},
			wantPage:  3,
			wantLimit: 25,
		},
		{
			name:      "limit clamped to maximum",
			query:     domain.BlogListQuery{Page: 1, Limit: 10000},
			wantPage:  1,
			wantLimit: domain.MaxPageSize,
		},
		{
			name:      "negative values fall back",
			query:     domain.BlogListQuery{Page: -1, Limit: -10},
			wantPage:  domain.DefaultPageNumber,
			wantLimit: domain.DefaultPageSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, svc := setupBlogService(t)

			_, err := svc.List(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, repo.lastQuery.Page)
			assert.Equal(t, tt.wantLimit, repo.lastQuery.Limit)
		})
	}
}

func strPtr(s string) *string { return &s }
