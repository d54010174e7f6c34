package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Dubemernest23/akuko/errs"
	"github.com/Dubemernest23/akuko/models"
	"github.com/Dubemernest23/akuko/validation"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// Add validates and inserts a new post. Field constraints (title length,
// status enum, required fields) are enforced here, before the row is written.
func (r *PostRepo) Add(ctx context.Context, post *models.Post) error {
	if err := validation.Struct(post); err != nil {
		return asValidationError("post", err)
	}
	return r.db.WithContext(ctx).Create(post).Error
}

// Update validates and saves an existing post.
func (r *PostRepo) Update(ctx context.Context, post *models.Post) error {
	if err := validation.Struct(post); err != nil {
		return asValidationError("post", err)
	}
	return r.db.WithContext(ctx).Save(post).Error
}

// FindByID returns a post with its tags, or nil when absent.
func (r *PostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Preload("Tags").First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindBySlug is an exact-match lookup; a missing post is nil, not an error.
func (r *PostRepo) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Preload("Tags").First(&post, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindAll returns every post regardless of status, newest first. Admin use.
func (r *PostRepo) FindAll(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).Preload("Tags").Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// FindPublished returns published posts ordered by publish time, newest
// first, with pagination bounds applied as given. The caller validates that
// limit and offset are non-negative; this layer does not clamp.
func (r *PostRepo) FindPublished(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("status = ?", models.PostStatusPublished).
		Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// IncrementViews bumps the view counter in a single UPDATE so concurrent
// page views never lose an increment.
func (r *PostRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

// UniqueSlug generates a slug for the title and verifies no post already
// holds it. The millisecond suffix makes collisions rare; when one happens
// anyway, a random suffix is appended and the check repeats.
func (r *PostRepo) UniqueSlug(ctx context.Context, title string) (string, error) {
	slug := GenerateSlug(title)
	for attempt := 0; ; attempt++ {
		var count int64
		err := r.db.WithContext(ctx).
			Model(&models.Post{}).
			Where("slug = ?", slug).
			Count(&count).Error
		if err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		if attempt >= 4 {
			return "", errs.NewConflictError(fmt.Sprintf("could not find a unique slug for %q", title))
		}
		slug = fmt.Sprintf("%s-%s", GenerateSlug(title), uuid.NewString()[:8])
	}
}

// ReplaceTags swaps the post's tag set for the given one.
func (r *PostRepo) ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	return r.db.WithContext(ctx).Model(post).Association("Tags").Replace(tags)
}

// Delete removes a post; its comments go with it via the FK cascade.
func (r *PostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id).Error
}

// MarkPublished flips a post to published and stamps published_at when it
// was not already set.
func (r *PostRepo) MarkPublished(ctx context.Context, post *models.Post) error {
	post.Status = models.PostStatusPublished
	if post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	return r.Update(ctx, post)
}

// asValidationError converts a validator failure into the 400-class ApiErr
// the responder knows how to render.
func asValidationError(entity string, err error) error {
	if field, tag, ok := validation.FirstViolation(err); ok {
		return errs.NewValidationError(field, fmt.Sprintf("invalid %s: constraint %q violated", entity, tag))
	}
	return errs.NewBadRequestError(fmt.Sprintf("invalid %s: %v", entity, err))
}
