package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"socialfeed/errs"
	"socialfeed/store"
)

func newTestPosts() *Posts {
	return NewPosts(store.NewMemoryPostStore())
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	svc := newTestPosts()
	ctx := context.Background()
	author := primitive.NewObjectID()

	created, err := svc.Create(ctx, author, "hello", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Text != "hello" {
		t.Fatalf("text = %q, want %q", got.Text, "hello")
	}
	if len(got.Likes) != 0 || len(got.Comments) != 0 {
		t.Fatalf("new post not empty: likes=%d comments=%d", len(got.Likes), len(got.Comments))
	}
	if got.UserID != author {
		t.Fatalf("author = %s, want %s", got.UserID.Hex(), author.Hex())
	}
}

func TestCreateRequiresText(t *testing.T) {
	svc := newTestPosts()
	ctx := context.Background()

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Create(ctx, primitive.NewObjectID(), text, ""); !errs.Is(err, errs.KindValidation) {
			t.Errorf("Create(%q) = %v, want validation error", text, err)
		}
	}
}

func TestListNewestFirst(t *testing.T) {
	svc := newTestPosts()
	ctx := context.Background()
	author := primitive.NewObjectID()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, author, fmt.Sprintf("post %d", i), ""); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	posts, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("len(posts) = %d, want 3", len(posts))
	}
	for i := 0; i < len(posts)-1; i++ {
		if posts[i].CreatedAt.Before(posts[i+1].CreatedAt) {
			t.Fatalf("posts not newest-first at index %d", i)
		}
	}
	// Creation within the same instant falls back to insertion order.
	if posts[0].Text != "post 2" || posts[2].Text != "post 0" {
		t.Fatalf("unexpected order: %q, %q, %q", posts[0].Text, posts[1].Text, posts[2].Text)
	}
}

func TestLikeIsOneWayPerUser(t *testing.T) {
	svc := newTestPosts()
	ctx := context.Background()
	user := primitive.NewObjectID()

	post, err := svc.Create(ctx, primitive.NewObjectID(), "like me", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	liked, err := svc.Like(ctx, post.ID, user)
	if err != nil {
		t.Fatalf("first Like: %v", err)
	}
	if len(liked.Likes) != 1 || liked.Likes[0] != user {
		t.Fatalf("likes after first like: %v", liked.Likes)
	}

	_, err = svc.Like(ctx, post.ID, user)
	if !errs.Is(err, errs.KindConflict) {
		t.Fatalf("second Like = %v, want conflict", err)
	}
	if err.Error() != "You have already liked this post" {
		t.Fatalf("conflict message = %q", err.Error())
	}

	got, err := svc.Get(ctx, post.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Likes) != 1 {
		t.Fatalf("likes after failed second like = %d, want 1", len(got.Likes))
	}
}

func TestLikeConcurrentSameUser(t *testing.T) {
	svc := newTestPosts()
	ctx := context.Background()
	user := primitive.NewObjectID()

	post, err := svc.Create(ctx, primitive.NewObjectID(), "race me", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Like(ctx, post.ID, user)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errs.Is(err, errs.KindConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("wins = %d, want exactly 1", wins)
	}
	if conflicts != attempts-1 {
		t.Fatalf("conflicts = %d, want %d", conflicts, attempts-1)
	}

	got, err := svc.Get(ctx, post.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Likes) != 1 {
		t.Fatalf("likes = %d, want 1", len(got.Likes))
	}
}

func TestCommentsPreserveOrder(t *testing.T) {
	svc := newTestPosts()
	ctx := context.Background()
	user := primitive.NewObjectID()

	post, err := svc.Create(ctx, primitive.NewObjectID(), "discuss", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	const n = 5
	for i := 0; i < n; i++ {
		if _, err := svc.Comment(ctx, post.ID, user, fmt.Sprintf("comment %d", i)); err != nil {
			t.Fatalf("Comment %d: %v", i, err)
		}
	}

	got, err := svc.Get(ctx, post.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Comments) != n {
		t.Fatalf("comments = %d, want %d", len(got.Comments), n)
	}
	for i, c := range got.Comments {
		if want := fmt.Sprintf("comment %d", i); c.Text != want {
			t.Fatalf("comments[%d].Text = %q, want %q", i, c.Text, want)
		}
	}
}

func TestCommentValidation(t *testing.T) {
	svc := newTestPosts()
	ctx := context.Background()

	post, err := svc.Create(ctx, primitive.NewObjectID(), "hi", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Comment(ctx, post.ID, primitive.NewObjectID(), "  "); !errs.Is(err, errs.KindValidation) {
		t.Fatalf("empty Comment = %v, want validation error", err)
	}
}

func TestMissingPost(t *testing.T) {
	svc := newTestPosts()
	ctx := context.Background()
	missing := primitive.NewObjectID()

	if _, err := svc.Get(ctx, missing); !errs.Is(err, errs.KindNotFound) {
		t.Fatalf("Get(missing) = %v, want not found", err)
	}
	if _, err := svc.Like(ctx, missing, primitive.NewObjectID()); !errs.Is(err, errs.KindNotFound) {
		t.Fatalf("Like(missing) = %v, want not found", err)
	}
	if _, err := svc.Comment(ctx, missing, primitive.NewObjectID(), "hi"); !errs.Is(err, errs.KindNotFound) {
		t.Fatalf("Comment(missing) = %v, want not found", err)
	}
}
