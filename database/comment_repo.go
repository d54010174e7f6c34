package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Dubemernest23/akuko/errs"
	"github.com/Dubemernest23/akuko/models"
	"github.com/Dubemernest23/akuko/validation"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// Add validates and inserts a new comment. New comments always enter the
// moderation queue as pending; the author name falls back to Anonymous.
func (r *CommentRepo) Add(ctx context.Context, comment *models.Comment) error {
	if comment.AuthorName == "" {
		comment.AuthorName = "Anonymous"
	}
	comment.Status = models.CommentStatusPending
	if err := validation.Struct(comment); err != nil {
		return asValidationError("comment", err)
	}
	return r.db.WithContext(ctx).Create(comment).Error
}

// FindByID returns a comment or nil when absent.
func (r *CommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindApprovedByPost returns the approved comments of a post, oldest first,
// for the public post page.
func (r *CommentRepo) FindApprovedByPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND status = ?", postID, models.CommentStatusApproved).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// FindByStatus lists comments in a moderation state, newest first. An empty
// status returns everything.
func (r *CommentRepo) FindByStatus(ctx context.Context, status string) ([]*models.Comment, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var comments []*models.Comment
	err := q.Find(&comments).Error
	return comments, err
}

// SetStatus moderates a comment. Only pending comments move, and only to
// approved or spam; anything else is rejected before touching the row.
func (r *CommentRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	if status != models.CommentStatusApproved && status != models.CommentStatusSpam {
		return errs.NewValidationError("status", fmt.Sprintf("cannot transition a comment to %q", status))
	}

	res := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ? AND status = ?", id, models.CommentStatusPending).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewConflictError("comment is not pending moderation")
	}
	return nil
}

// Delete removes a comment outright.
func (r *CommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id).Error
}
