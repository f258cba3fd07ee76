package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"socialfeed/database"
	"socialfeed/errs"
	"socialfeed/models"
)

const defaultTimeout = 5 * time.Second

// wrapStorage converts driver failures into the shared taxonomy,
// keeping timeouts distinguishable from plain storage errors.
func wrapStorage(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.StorageTimeout(err)
	}
	return errs.Storage(err)
}

type MongoUserStore struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoUserStore(db *mongo.Database, timeout time.Duration) *MongoUserStore {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &MongoUserStore{coll: db.Collection(database.UsersCollection), timeout: timeout}
}

func (s *MongoUserStore) Insert(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		if strings.Contains(err.Error(), "email_1") {
			return errs.Conflict("Email already in use")
		}
		return errs.Conflict("Username already taken")
	}
	if err != nil {
		return wrapStorage(err)
	}
	return nil
}

func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("User not found")
	}
	if err != nil {
		return nil, wrapStorage(err)
	}
	return &user, nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("User not found")
	}
	if err != nil {
		return nil, wrapStorage(err)
	}
	return &user, nil
}

type MongoPostStore struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoPostStore(db *mongo.Database, timeout time.Duration) *MongoPostStore {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &MongoPostStore{coll: db.Collection(database.PostsCollection), timeout: timeout}
}

func (s *MongoPostStore) Insert(ctx context.Context, post *models.Post) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.coll.InsertOne(ctx, post); err != nil {
		return wrapStorage(err)
	}
	return nil
}

func (s *MongoPostStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var post models.Post
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("Post not found")
	}
	if err != nil {
		return nil, wrapStorage(err)
	}
	return &post, nil
}

func (s *MongoPostStore) FindAll(ctx context.Context) ([]models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// _id as the secondary key keeps ordering deterministic when two
	// posts share a createdAt.
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, wrapStorage(err)
	}
	return posts, nil
}

func (s *MongoPostStore) AddLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Single conditional update: matches only when the user has not
	// liked the post yet, so two concurrent likes by the same user
	// cannot both succeed.
	filter := bson.M{"_id": postID, "likes": bson.M{"$ne": userID}}
	update := bson.M{"$addToSet": bson.M{"likes": userID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Either the post is missing or the like already exists.
		if _, ferr := s.FindByID(ctx, postID); ferr != nil {
			return nil, ferr
		}
		return nil, errs.Conflict("You have already liked this post")
	}
	if err != nil {
		return nil, wrapStorage(err)
	}
	return &post, nil
}

func (s *MongoPostStore) AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	update := bson.M{"$push": bson.M{"comments": comment}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": postID}, update, opts).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFound("Post not found")
	}
	if err != nil {
		return nil, wrapStorage(err)
	}
	return &post, nil
}
