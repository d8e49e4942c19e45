package store

import (
	"context"
	"testing"

	"weiblog/internal/models"
)

func TestCommentStore_CreateAndList(t *testing.T) {
	db := testDB(t)
	posts := NewPostStore(db)
	comments := NewCommentStore(db)
	ctx := context.Background()

	t.Cleanup(func() { cleanPosts(t, db, "test-comment-post") })

	post, err := posts.Create(ctx, &models.Post{Title: "test-comment-post", Content: "x", Category: "Other"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	first, err := comments.Create(ctx, &models.Comment{
		PostID:    post.ID,
		Text:      "first comment",
		UserEmail: "reader@example.com",
		UserName:  "Reader One",
		UserPhoto: "https://example.com/reader.jpg",
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	second, err := comments.Create(ctx, &models.Comment{
		PostID:    post.ID,
		Text:      "second comment",
		UserEmail: "other@example.com",
		UserName:  "Reader Two",
	})
	if err != nil {
		t.Fatalf("create second comment: %v", err)
	}

	got, err := comments.ListByPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("list: got %d comments, want 2", len(got))
	}
	// Oldest first.
	if got[0].ID != first.ID || got[1].ID != second.ID {
		t.Error("comments not listed oldest first")
	}
	// Identity snapshot survives the round trip.
	if got[0].UserEmail != "reader@example.com" || got[0].UserName != "Reader One" || got[0].UserPhoto != "https://example.com/reader.jpg" {
		t.Errorf("identity snapshot mangled: %+v", got[0])
	}
}

func TestCommentStore_DeletedWithPost(t *testing.T) {
	db := testDB(t)
	posts := NewPostStore(db)
	comments := NewCommentStore(db)
	ctx := context.Background()

	post, err := posts.Create(ctx, &models.Post{Title: "test-comment-cascade", Content: "x", Category: "Other"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := comments.Create(ctx, &models.Comment{
		PostID:    post.ID,
		Text:      "doomed",
		UserEmail: "reader@example.com",
		UserName:  "Reader",
	}); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if err := posts.Delete(ctx, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}

	got, err := comments.ListByPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("comments survived post deletion: %d left", len(got))
	}
}
