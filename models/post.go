package models

import (
	"time"

	"github.com/google/uuid"
)

// Post statuses. Anything outside this set is rejected at write time.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// Post represents a blog post. The slug is generated from the title, never
// user-supplied, and is unique across the table.
type Post struct {
	ID            uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title         string     `json:"title" db:"title" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Slug          string     `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex" validate:"required"`
	Content       string     `json:"content" db:"content" gorm:"type:text;not null" validate:"required"`
	Excerpt       string     `json:"excerpt,omitempty" db:"excerpt" gorm:"type:varchar(300)" validate:"max=300"`
	FeaturedImage string     `json:"featuredImage,omitempty" db:"featured_image" gorm:"type:text"`
	Status        string     `json:"status" db:"status" gorm:"type:text;not null;default:'draft';index" validate:"required,oneof=draft published archived"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty" db:"published_at" gorm:"type:timestamp;index"`
	Views         int        `json:"views" db:"views" gorm:"type:integer;not null;default:0"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
	Tags          []Tag      `json:"tags,omitempty" gorm:"many2many:post_tags;" validate:"-"`
}

func (Post) TableName() string {
	return "posts"
}

// IsPublished reports whether the post is visible on the public site.
func (p Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}
