// Package store persists users and posts. The MongoDB implementations
// express every mutation as a single atomic operation: user uniqueness
// rides on unique indexes, likes use a conditional $addToSet and
// comments a $push, so concurrent writers can never produce a
// duplicate like or lose a comment.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"socialfeed/models"
)

// UserStore is the credential store backing the identity service.
type UserStore interface {
	// Insert persists a new user. Returns a conflict error when the
	// username or email is already taken.
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// PostStore persists posts and their like/comment state.
type PostStore interface {
	Insert(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	// FindAll returns every post newest-first (createdAt descending,
	// ties broken by insertion order).
	FindAll(ctx context.Context) ([]models.Post, error)
	// AddLike atomically adds userID to the post's likes iff absent.
	// Returns the updated post, a conflict error when the user already
	// liked it, or a not-found error when the post does not exist.
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error)
	// AddComment atomically appends the comment, preserving prior
	// order, and returns the updated post.
	AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) (*models.Post, error)
}
