package service

import (
	"context"
	"encoding/json"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
	"blog-api/pkg/logger"
	"blog-api/pkg/redis"
)

// blogService implements BlogService with a Redis read-through cache on
// single-blog lookups. The cache is optional; a nil client disables it.
type blogService struct {
	blogs  repository.BlogRepository
	cache  *redis.Client
	logger *logger.Logger
}

// NewBlogService creates a new blog service
func NewBlogService(blogs repository.BlogRepository, cache *redis.Client, log *logger.Logger) BlogService {
	return &blogService{
		blogs:  blogs,
		cache:  cache,
		logger: log,
	}
}

// Create stores a new blog post authored by the given user
func (s *blogService) Create(ctx context.Context, req *domain.CreateBlogRequest, userID string) (*domain.Blog, error) {
	blog := &domain.Blog{
		Title:   req.Title,
		Content: req.Content,
		UserID:  userID,
	}

	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"blog_id": blog.ID,
		"user_id": userID,
	}).Info("Created blog")

	return blog, nil
}

// List returns one page of blogs with the total count
func (s *blogService) List(ctx context.Context, query domain.BlogListQuery) (*domain.BlogListResponse, error) {
	query = normalizeQuery(query)

	blogs, total, err := s.blogs.List(ctx, query)
	if err != nil {
		return nil, err
	}
	if blogs == nil {
		blogs = []*domain.Blog{}
	}

	s.logger.WithFields(map[string]interface{}{
		"page":  query.Page,
		"limit": query.Limit,
		"total": total,
	}).Debug("Listed blogs")

	return &domain.BlogListResponse{Data: blogs, Total: total}, nil
}

// Get retrieves a single blog by id, consulting the cache first
func (s *blogService) Get(ctx context.Context, id string) (*domain.Blog, error) {
	if s.cache != nil {
		key := s.cache.KeyBuilder.KeyBlogByID(id)
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var blog domain.Blog
			if err := json.Unmarshal([]byte(cached), &blog); err == nil {
				s.logger.WithField("blog_id", id).Debug("Blog cache hit")
				return &blog, nil
			}
		} else if !redis.IsCacheMiss(err) {
			s.logger.WithError(err).Warn("Blog cache read failed, falling through to store")
		}
	}

	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil || blog == nil {
		return blog, err
	}

	s.cacheBlog(ctx, blog)
	return blog, nil
}

// Update applies a partial update to a blog and invalidates its cache entry
func (s *blogService) Update(ctx context.Context, id string, req *domain.UpdateBlogRequest) (*domain.Blog, error) {
	blog, err := s.blogs.Update(ctx, id, req)
	if err != nil || blog == nil {
		return blog, err
	}

	s.invalidateBlog(ctx, id)
	s.logger.WithField("blog_id", id).Info("Updated blog")
	return blog, nil
}

// Delete removes a blog and invalidates its cache entry
func (s *blogService) Delete(ctx context.Context, id string) (*domain.Blog, error) {
	blog, err := s.blogs.Delete(ctx, id)
	if err != nil || blog == nil {
		return blog, err
	}

	s.invalidateBlog(ctx, id)
	s.logger.WithField("blog_id", id).Info("Deleted blog")
	return blog, nil
}

func (s *blogService) cacheBlog(ctx context.Context, blog *domain.Blog) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(blog)
	if err != nil {
		return
	}
	key := s.cache.KeyBuilder.KeyBlogByID(blog.ID)
	if err := s.cache.Set(ctx, key, data, redis.TTLBlog); err != nil {
		s.logger.WithError(err).Warn("Failed to cache blog")
	}
}

func (s *blogService) invalidateBlog(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	key := s.cache.KeyBuilder.KeyBlogByID(id)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate blog cache")
	}
}

// normalizeQuery clamps pagination parameters to sane bounds
func normalizeQuery(query domain.BlogListQuery) domain.BlogListQuery {
	if query.Page < 1 {
		query.Page = domain.DefaultPageNumber
	}
	if query.Limit < 1 {
		query.Limit = domain.DefaultPageSize
	}
	if query.Limit > domain.MaxPageSize {
		query.Limit = domain.MaxPageSize
	}
	return query
}
