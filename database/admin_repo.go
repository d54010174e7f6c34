package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Dubemernest23/akuko/models"
	"github.com/Dubemernest23/akuko/validation"
)

// AdminRepo stores administrator accounts. The password hash column is
// encrypted with the field cipher on the way in and decrypted on the way
// out; only ciphertext ever reaches the database.
type AdminRepo struct {
	db     *gorm.DB
	cipher *FieldCipher
}

func NewAdminRepo(db *gorm.DB, cipher *FieldCipher) *AdminRepo {
	return &AdminRepo{db: db, cipher: cipher}
}

// Count returns the number of admin rows.
func (r *AdminRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error
	return count, err
}

// CreateIfAbsent inserts the admin unless the username is already taken,
// reporting whether a row was written. ON CONFLICT DO NOTHING makes the
// check-and-insert a single atomic statement.
func (r *AdminRepo) CreateIfAbsent(ctx context.Context, admin *models.Admin) (bool, error) {
	if err := validation.Struct(admin); err != nil {
		return false, asValidationError("admin", err)
	}

	stored := *admin
	sealed, err := r.cipher.Encrypt(admin.PasswordHash)
	if err != nil {
		return false, err
	}
	stored.PasswordHash = sealed

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoNothing: true,
		}).
		Create(&stored)
	if res.Error != nil {
		return false, res.Error
	}
	admin.ID = stored.ID
	return res.RowsAffected > 0, nil
}

// FindByUsername returns the admin with the password hash decrypted, or nil
// when no such account exists.
func (r *AdminRepo) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).First(&admin, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	plain, err := r.cipher.Decrypt(admin.PasswordHash)
	if err != nil {
		return nil, err
	}
	admin.PasswordHash = plain
	return &admin, nil
}

// UpdatePassword re-hashes happen upstream; this seals and stores the new
// hash for the given admin.
func (r *AdminRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	sealed, err := r.cipher.Encrypt(passwordHash)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("id = ?", id).
		Update("password_hash", sealed).Error
}

// TouchLastLogin records a successful login.
func (r *AdminRepo) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("id = ?", id).
		Update("last_login", time.Now()).Error
}
