package service

import (
	"context"

	"blog-api/internal/domain"
)

// AuthService defines the authentication operations: exchanging a Google ID
// token for an internal session token, and gating requests with that token
type AuthService interface {
	// Login verifies a Google ID token, resolves or creates the user and
	// issues a session JWT
	Login(ctx context.Context, rawIDToken string) (*domain.LoginResponse, error)

	// VerifyGoogleIDToken validates an externally-issued Google ID token
	// against Google's keys and the configured audience
	VerifyGoogleIDToken(ctx context.Context, rawIDToken string) (*domain.GoogleIdentity, error)

	// IssueToken mints a signed, time-bounded session token for a user
	IssueToken(user *domain.User) (string, error)

	// ValidateToken verifies a session token and resolves it to its user
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
}

// BlogService defines the blog CRUD operations
type BlogService interface {
	// Create stores a new blog post authored by the given user
	Create(ctx context.Context, req *domain.CreateBlogRequest, userID string) (*domain.Blog, error)

	// List returns one page of blogs with the total count
	List(ctx context.Context, query domain.BlogListQuery) (*domain.BlogListResponse, error)

	// Get retrieves a single blog by id
	Get(ctx context.Context, id string) (*domain.Blog, error)

	// Update applies a partial update to a blog
	Update(ctx context.Context, id string, req *domain.UpdateBlogRequest) (*domain.Blog, error)

	// Delete removes a blog and returns the deleted document
	Delete(ctx context.Context, id string) (*domain.Blog, error)
}

// Services aggregates all service interfaces
type Services struct {
	Auth AuthService
	Blog BlogService
}
