package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Dubemernest23/akuko/models"
	"github.com/Dubemernest23/akuko/validation"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// Add validates and inserts a tag. The slug is derived from the name when
// not already set; tags are stable so no timestamp suffix is appended.
func (r *TagRepo) Add(ctx context.Context, tag *models.Tag) error {
	if tag.Slug == "" {
		tag.Slug = Slugify(tag.Name)
	}
	if err := validation.Struct(tag); err != nil {
		return asValidationError("tag", err)
	}
	return r.db.WithContext(ctx).Create(tag).Error
}

// FindAll lists every tag alphabetically.
func (r *TagRepo) FindAll(ctx context.Context) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, err
}

// FindByID returns a tag or nil when absent.
func (r *TagRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindBySlug returns a tag with its published posts, or nil when absent.
func (r *TagRepo) FindBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).
		Preload("Posts", "status = ?", models.PostStatusPublished).
		First(&tag, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Delete removes a tag; join rows go with it.
func (r *TagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag := models.Tag{ID: id}
	if err := r.db.WithContext(ctx).Model(&tag).Association("Posts").Clear(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&tag).Error
}
