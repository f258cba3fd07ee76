package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"socialfeed/errs"
	"socialfeed/models"
)

// MemoryUserStore is an in-memory UserStore used in tests and local
// development. It mirrors the MongoDB semantics, including the
// uniqueness guarantees of the credential indexes.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *MemoryUserStore) Insert(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return errs.Conflict("Email already in use")
		}
		if u.Username == user.Username {
			return errs.Conflict("Username already taken")
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, errs.NotFound("User not found")
	}
	return &u, nil
}

func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, errs.NotFound("User not found")
}

// MemoryPostStore is the in-memory PostStore counterpart. All mutation
// happens under a single lock, which gives it the same atomic
// conditional-update behavior as the MongoDB implementation.
type MemoryPostStore struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*models.Post
	order map[primitive.ObjectID]int
	seq   int
}

func NewMemoryPostStore() *MemoryPostStore {
	return &MemoryPostStore{
		posts: make(map[primitive.ObjectID]*models.Post),
		order: make(map[primitive.ObjectID]int),
	}
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Likes = append([]primitive.ObjectID{}, p.Likes...)
	c.Comments = append([]models.Comment{}, p.Comments...)
	return &c
}

func (s *MemoryPostStore) Insert(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.order[post.ID] = s.seq
	s.posts[post.ID] = clonePost(post)
	return nil
}

func (s *MemoryPostStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, errs.NotFound("Post not found")
	}
	return clonePost(p), nil
}

func (s *MemoryPostStore) FindAll(ctx context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, *clonePost(p))
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return s.order[posts[i].ID] > s.order[posts[j].ID]
	})
	return posts, nil
}

func (s *MemoryPostStore) AddLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return nil, errs.NotFound("Post not found")
	}
	for _, id := range p.Likes {
		if id == userID {
			return nil, errs.Conflict("You have already liked this post")
		}
	}
	p.Likes = append(p.Likes, userID)
	return clonePost(p), nil
}

func (s *MemoryPostStore) AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return nil, errs.NotFound("Post not found")
	}
	p.Comments = append(p.Comments, comment)
	return clonePost(p), nil
}
