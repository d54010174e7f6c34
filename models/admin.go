package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin is the single administrator account. The schema permits more rows
// but the bootstrap provisioner only ever seeds one.
//
// PasswordHash holds a bcrypt hash, encrypted at rest with ENCRYPTION_KEY
// before it reaches the database (see database.FieldCipher). It is never
// serialized to JSON.
type Admin struct {
	ID           uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Username     string     `json:"username" db:"username" gorm:"type:text;not null;uniqueIndex" validate:"required"`
	PasswordHash string     `json:"-" db:"password_hash" gorm:"type:text;not null" validate:"required"`
	LastLogin    *time.Time `json:"lastLogin,omitempty" db:"last_login" gorm:"type:timestamp"`
}

// The table name is singular.
func (Admin) TableName() string {
	return "admin"
}
