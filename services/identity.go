package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"socialfeed/errs"
	"socialfeed/models"
	"socialfeed/store"
)

// Claims is the verified identity attached to a request. Values of
// this type are only produced by Identity.Verify, so downstream code
// never trusts an unverified token payload.
type Claims struct {
	UserID   primitive.ObjectID
	Username string
	IssuedAt time.Time
}

type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Session is the result of a successful registration or login.
type Session struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// Identity registers users, authenticates credentials and issues and
// verifies the signed session tokens guarding every mutating endpoint.
type Identity struct {
	users  store.UserStore
	secret []byte
	cost   int
	ttl    time.Duration // 0 means issued tokens never expire
}

func NewIdentity(users store.UserStore, secret string, bcryptCost int, ttl time.Duration) *Identity {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Identity{users: users, secret: []byte(secret), cost: bcryptCost, ttl: ttl}
}

func (s *Identity) Register(ctx context.Context, username, email, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" {
		return nil, errs.Validation("Username, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	// Uniqueness is enforced by the store itself, so two concurrent
	// registrations with the same email cannot both succeed.
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user.Public(), Token: token}, nil
}

func (s *Identity) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if errs.Is(err, errs.KindNotFound) {
		// Same error as a password mismatch so callers cannot probe
		// which emails are registered.
		return nil, errs.Authentication("Invalid credentials")
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errs.Authentication("Invalid credentials")
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user.Public(), Token: token}, nil
}

// Verify checks a bearer token's signature and returns the claims it
// carries. It has no side effects.
func (s *Identity) Verify(token string) (Claims, error) {
	if token == "" {
		return Claims{}, errs.Authentication("No authorization token provided")
	}

	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, errs.Authentication("Invalid token")
	}

	userID, err := primitive.ObjectIDFromHex(tc.Subject)
	if err != nil {
		return Claims{}, errs.Authentication("Invalid token")
	}

	claims := Claims{UserID: userID, Username: tc.Username}
	if tc.IssuedAt != nil {
		claims.IssuedAt = tc.IssuedAt.Time
	}
	return claims, nil
}

// UserByID resolves the current user for GET /auth/me. A token whose
// subject no longer exists is treated as an authentication failure.
func (s *Identity) UserByID(ctx context.Context, id primitive.ObjectID) (models.PublicUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if errs.Is(err, errs.KindNotFound) {
		return models.PublicUser{}, errs.Authentication("Invalid token")
	}
	if err != nil {
		return models.PublicUser{}, err
	}
	return user.Public(), nil
}

func (s *Identity) issue(user *models.User) (string, error) {
	tc := tokenClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  user.ID.Hex(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if s.ttl > 0 {
		tc.ExpiresAt = jwt.NewNumericDate(time.Now().Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tc)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		// Never include the secret or the raw signing error detail.
		return "", errors.New("failed to generate token")
	}
	return signed, nil
}
