package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blog-api/internal/domain"
	"blog-api/pkg/database"
	"blog-api/pkg/logger"
)

type blogRepository struct {
	blogs *mongo.Collection
	users *mongo.Collection
	log   *logger.Logger
}

// NewBlogRepository creates a blog repository
func NewBlogRepository(db *database.MongoDB, log *logger.Logger) BlogRepository {
	return &blogRepository{
		blogs: db.Collection(database.BlogsCollection),
		users: db.Collection(database.UsersCollection),
		log:   log,
	}
}

// Create inserts a new blog post
func (r *blogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	now := time.Now().UTC()
	if blog.ID == "" {
		blog.ID = bson.NewObjectID().Hex()
	}
	blog.CreatedAt = now
	blog.UpdatedAt = now

	if _, err := r.blogs.InsertOne(ctx, blog); err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}
	return nil
}

// List returns one page of blogs sorted by creation date descending plus the
// total count, with authors populated
func (r *blogRepository) List(ctx context.Context, query domain.BlogListQuery) ([]*domain.Blog, int64, error) {
	skip := int64(query.Page-1) * int64(query.Limit)

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(query.Limit))

	cursor, err := r.blogs.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blogs: %w", err)
	}

	var blogs []*domain.Blog
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode blogs: %w", err)
	}

	total, err := r.blogs.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count blogs: %w", err)
	}

	if err := r.populateAuthors(ctx, blogs); err != nil {
		return nil, 0, err
	}

	return blogs, total, nil
}

// FindByID retrieves a single blog with its author populated
func (r *blogRepository) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	var blog domain.Blog
	err := r.blogs.FindOne(ctx, bson.M{"_id": id}).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}

	if err := r.populateAuthors(ctx, []*domain.Blog{&blog}); err != nil {
		return nil, err
	}
	return &blog, nil
}

// Update applies a partial update and returns the updated document
func (r *blogRepository) Update(ctx context.Context, id string, update *domain.UpdateBlogRequest) (*domain.Blog, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Content != nil {
		set["content"] = *update.Content
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var blog domain.Blog
	err := r.blogs.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}
	return &blog, nil
}

// Delete removes a blog and returns the deleted document
func (r *blogRepository) Delete(ctx context.Context, id string) (*domain.Blog, error) {
	var blog domain.Blog
	err := r.blogs.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete blog: %w", err)
	}
	return &blog, nil
}

// populateAuthors resolves the user references of the given blogs into author
// summaries with a single $in query
func (r *blogRepository) populateAuthors(ctx context.Context, blogs []*domain.Blog) error {
	if len(blogs) == 0 {
		return nil
	}

	idSet := make(map[string]struct{}, len(blogs))
	ids := make([]string, 0, len(blogs))
	for _, b := range blogs {
		if _, seen := idSet[b.UserID]; !seen {
			idSet[b.UserID] = struct{}{}
			ids = append(ids, b.UserID)
		}
	}

	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return fmt.Errorf("failed to load blog authors: %w", err)
	}

	var authors []*domain.UserSummary
	if err := cursor.All(ctx, &authors); err != nil {
		return fmt.Errorf("failed to decode blog authors: %w", err)
	}

	byID := make(map[string]*domain.UserSummary, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}
	for _, b := range blogs {
		b.Author = byID[b.UserID]
		if b.Author == nil {
			r.log.WithFields(map[string]interface{}{
				"blog_id": b.ID,
				"user_id": b.UserID,
			}).Warn("Blog references a missing user")
		}
	}
	return nil
}
