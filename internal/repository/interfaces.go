package repository

import (
	"context"

	"blog-api/internal/domain"
)

// UserRepository is the user directory backed by the users collection.
// Lookups that find nothing return (nil, nil).
type UserRepository interface {
	// FindOrCreate resolves a verified Google identity to a stored user,
	// creating one on first sight. Concurrent first logins for the same email
	// converge on a single record.
	FindOrCreate(ctx context.Context, identity *domain.GoogleIdentity) (*domain.User, error)

	// FindByID retrieves a user by internal id
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByEmail retrieves a user by email
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// BlogRepository persists blog posts in the blogs collection.
// Lookups that find nothing return (nil, nil).
type BlogRepository interface {
	// Create inserts a new blog post
	Create(ctx context.Context, blog *domain.Blog) error

	// List returns one page of blogs sorted by creation date descending,
	// with authors populated, plus the total document count
	List(ctx context.Context, query domain.BlogListQuery) ([]*domain.Blog, int64, error)

	// FindByID retrieves a single blog with its author populated
	FindByID(ctx context.Context, id string) (*domain.Blog, error)

	// Update applies a partial update and returns the updated document
	Update(ctx context.Context, id string, update *domain.UpdateBlogRequest) (*domain.Blog, error)

	// Delete removes a blog and returns the deleted document
	Delete(ctx context.Context, id string) (*domain.Blog, error)
}
