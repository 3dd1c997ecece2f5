package domain

import "time"

// Blog represents a blog post document
type Blog struct {
	ID        string    `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	UserID    string    `bson:"user" json:"user"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`

	// Author is populated from the users collection on reads; never stored.
	Author *UserSummary `bson:"-" json:"author,omitempty"`
}

// CreateBlogRequest is the body of POST /blogs
type CreateBlogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateBlogRequest is the body of PUT /blogs/{id}; absent fields keep their
// stored value
type UpdateBlogRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// BlogListResponse is the paginated listing payload
type BlogListResponse struct {
	Data  []*Blog `json:"data"`
	Total int64   `json:"total"`
}

// BlogListQuery holds normalized pagination parameters
type BlogListQuery struct {
	Page  int
	Limit int
}

// Pagination defaults, matching the public API contract
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)
