package repository

import (
	"context"
	goerrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blog-api/internal/domain"
	"blog-api/pkg/database"
	"blog-api/pkg/errors"
	"blog-api/pkg/logger"
)

// userCollection is the slice of collection behavior the user directory needs.
// *mongo.Collection satisfies it.
type userCollection interface {
	FindOne(ctx context.Context, filter interface{}, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	InsertOne(ctx context.Context, document interface{}, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
}

type userRepository struct {
	users userCollection
	log   *logger.Logger
}

// NewUserRepository creates a user repository and ensures the unique email
// index that the find-or-create race resolution relies on
func NewUserRepository(ctx context.Context, db *database.MongoDB, log *logger.Logger) UserRepository {
	coll := db.Collection(database.UsersCollection)

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := coll.Indexes().CreateOne(ctx, indexModel); err != nil {
		// Index creation fails when an equivalent index already exists with
		// different options; the app can still run against it.
		log.WithError(err).Warn("Failed to ensure unique email index on users collection")
	}

	return &userRepository{
		users: coll,
		log:   log,
	}
}

// FindOrCreate resolves an identity to a stored user, creating one on first
// sight. An existing record wins: profile fields are never refreshed from a
// newer identity.
func (r *userRepository) FindOrCreate(ctx context.Context, identity *domain.GoogleIdentity) (*domain.User, error) {
	user, err := r.FindByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	newUser := &domain.User{
		ID:        bson.NewObjectID().Hex(),
		Email:     identity.Email,
		Name:      identity.Name,
		Picture:   identity.Picture,
		CreatedAt: time.Now().UTC(),
	}

	_, err = r.users.InsertOne(ctx, newUser)
	if err == nil {
		r.log.WithFields(map[string]interface{}{
			"user_id": newUser.ID,
			"email":   newUser.Email,
		}).Info("Created new user on first login")
		return newUser, nil
	}

	if !mongo.IsDuplicateKeyError(err) {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// A concurrent first login won the insert race; the unique index rejected
	// ours. Reconcile with a lookup instead of surfacing the conflict.
	r.log.WithField("email", identity.Email).Debug("Duplicate user insert, reconciling with lookup")
	user, err = r.FindByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// The winning record is gone again already; treat it as a real
		// conflict rather than retrying indefinitely.
		return nil, errors.NewConflictError(fmt.Sprintf("User %q already exists but could not be loaded", identity.Email))
	}
	return user, nil
}

// FindByID retrieves a user by internal id
func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if goerrors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

// FindByEmail retrieves a user by email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if goerrors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}
