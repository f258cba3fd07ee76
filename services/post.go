package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"socialfeed/errs"
	"socialfeed/models"
	"socialfeed/store"
)

// Posts creates posts and applies the like/comment transitions. Likes
// are one-way per user (no unlike), comments are append-only.
type Posts struct {
	posts store.PostStore
}

func NewPosts(posts store.PostStore) *Posts {
	return &Posts{posts: posts}
}

func (s *Posts) Create(ctx context.Context, author primitive.ObjectID, text, image string) (*models.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errs.Validation("Text is required")
	}

	post := &models.Post{
		ID:        primitive.NewObjectID(),
		UserID:    author,
		Text:      text,
		Image:     image,
		Likes:     []primitive.ObjectID{},
		Comments:  []models.Comment{},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// List returns every post newest-first.
func (s *Posts) List(ctx context.Context) ([]models.Post, error) {
	return s.posts.FindAll(ctx)
}

func (s *Posts) Get(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// Like records a one-way NotLiked -> Liked transition. A second like
// by the same user fails with a conflict and leaves the post as is.
func (s *Posts) Like(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error) {
	return s.posts.AddLike(ctx, postID, userID)
}

func (s *Posts) Comment(ctx context.Context, postID, userID primitive.ObjectID, text string) (*models.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errs.Validation("Text is required")
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	return s.posts.AddComment(ctx, postID, comment)
}
