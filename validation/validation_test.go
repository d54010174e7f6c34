package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/Dubemernest23/akuko/models"
)

func validPost() models.Post {
	return models.Post{
		Title:   "A Title",
		Slug:    "a-title-1700000000000",
		Content: "Body text",
		Status:  models.PostStatusDraft,
	}
}

func validComment() models.Comment {
	return models.Comment{
		PostID:     uuid.New(),
		AuthorName: "Anonymous",
		Content:    "Nice post",
		Status:     models.CommentStatusPending,
	}
}

func TestPostStatusEnum(t *testing.T) {
	for _, status := range []string{
		models.PostStatusDraft,
		models.PostStatusPublished,
		models.PostStatusArchived,
	} {
		post := validPost()
		post.Status = status
		if err := Struct(post); err != nil {
			t.Errorf("status %q rejected: %v", status, err)
		}
	}

	post := validPost()
	post.Status = "deleted"
	if err := Struct(post); err == nil {
		t.Error("status \"deleted\" accepted")
	}
}

func TestPostLengthBounds(t *testing.T) {
	post := validPost()
	post.Title = strings.Repeat("x", 201)
	if err := Struct(post); err == nil {
		t.Error("201-char title accepted")
	}

	post = validPost()
	post.Excerpt = strings.Repeat("x", 301)
	if err := Struct(post); err == nil {
		t.Error("301-char excerpt accepted")
	}

	post = validPost()
	post.Excerpt = strings.Repeat("x", 300)
	if err := Struct(post); err != nil {
		t.Errorf("300-char excerpt rejected: %v", err)
	}
}

func TestCommentContentBounds(t *testing.T) {
	comment := validComment()
	comment.Content = "ab"
	if err := Struct(comment); err == nil {
		t.Error("2-char comment accepted")
	}

	comment.Content = "abc"
	if err := Struct(comment); err != nil {
		t.Errorf("3-char comment rejected: %v", err)
	}

	comment.Content = strings.Repeat("x", 1001)
	if err := Struct(comment); err == nil {
		t.Error("1001-char comment accepted")
	}
}

func TestCommentEmailPattern(t *testing.T) {
	for _, email := range []string{"a@b.c", "reader@example.com"} {
		comment := validComment()
		comment.Email = email
		if err := Struct(comment); err != nil {
			t.Errorf("email %q rejected: %v", email, err)
		}
	}

	for _, email := range []string{"nodomain", "no@dots", "two@@ats.com"} {
		comment := validComment()
		comment.Email = email
		if err := Struct(comment); err == nil {
			t.Errorf("email %q accepted", email)
		}
	}

	// Email is optional; empty is fine.
	comment := validComment()
	comment.Email = ""
	if err := Struct(comment); err != nil {
		t.Errorf("empty email rejected: %v", err)
	}
}

func TestCommentRequiresPost(t *testing.T) {
	comment := validComment()
	comment.PostID = uuid.Nil
	if err := Struct(comment); err == nil {
		t.Error("comment without a post accepted")
	}
}

func TestFirstViolation(t *testing.T) {
	post := validPost()
	post.Status = "bogus"
	err := Struct(post)
	if err == nil {
		t.Fatal("expected a validation error")
	}

	field, tag, ok := FirstViolation(err)
	if !ok {
		t.Fatal("FirstViolation did not recognize the error")
	}
	if field != "Status" || tag != "oneof" {
		t.Errorf("FirstViolation = (%q, %q), want (Status, oneof)", field, tag)
	}
}
