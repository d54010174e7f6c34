package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment statuses. A comment starts in pending and moves only to approved
// or spam; the admin moderation handlers are the transition authority.
const (
	CommentStatusPending  = "pending"
	CommentStatusApproved = "approved"
	CommentStatusSpam     = "spam"
)

// Comment belongs to exactly one post. Deleting the post cascades its
// comments.
type Comment struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	PostID     uuid.UUID `json:"postId" db:"post_id" gorm:"type:uuid;not null;index" validate:"required"`
	Post       *Post     `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE" validate:"-"`
	AuthorName string    `json:"authorName" db:"author_name" gorm:"type:varchar(50);not null;default:'Anonymous'" validate:"required,max=50"`
	Content    string    `json:"content" db:"content" gorm:"type:text;not null" validate:"required,min=3,max=1000"`
	Email      string    `json:"email,omitempty" db:"email" gorm:"type:text" validate:"omitempty,simple_email"`
	Website    string    `json:"website,omitempty" db:"website" gorm:"type:text"`
	IPAddress  string    `json:"-" db:"ip_address" gorm:"type:text"`
	Status     string    `json:"status" db:"status" gorm:"type:text;not null;default:'pending';index" validate:"required,oneof=pending approved spam"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}
