package models

import "github.com/google/uuid"

// Tag labels posts through the post_tags join table.
type Tag struct {
	ID    uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name  string    `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex" validate:"required"`
	Slug  string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex" validate:"required"`
	Posts []Post    `json:"posts,omitempty" gorm:"many2many:post_tags;" validate:"-"`
}

func (Tag) TableName() string {
	return "tags"
}
