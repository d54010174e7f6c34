package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Database aggregates the per-entity repositories over a shared GORM
// database instance. It is constructed once in main and handed to the API
// layer; nothing else holds the raw *gorm.DB.
type Database struct {
	db          *gorm.DB
	postRepo    *PostRepo
	commentRepo *CommentRepo
	adminRepo   *AdminRepo
	tagRepo     *TagRepo
}

// New initializes a new Database struct with each repository using a shared
// GORM database instance. cipher encrypts the admin password hash at rest.
func New(db *gorm.DB, cipher *FieldCipher) Database {
	return Database{
		db:          db,
		postRepo:    NewPostRepo(db),
		commentRepo: NewCommentRepo(db),
		adminRepo:   NewAdminRepo(db, cipher),
		tagRepo:     NewTagRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) AdminRepo() *AdminRepo {
	return d.adminRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

// SetupSchema creates the four tables, seeds the default admin and builds
// the secondary indexes. Table creation errors abort the run; admin seeding
// and index errors are logged and skipped so a partially failed setup can
// simply be re-run; each per-table creation is idempotent.
//
// The whole run is serialized behind a postgres advisory lock so two setup
// invocations cannot race the existence checks or the admin seeding. The
// lock is session-level, so it is taken and released on a single pinned
// connection while the inner work uses the pool.
func (d Database) SetupSchema(ctx context.Context, adminUsername, adminPassword string) error {
	log.Info().Msg("Setting up database schema...")

	err := d.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		if err := conn.Exec("SELECT pg_advisory_lock(?)", setupLockKey).Error; err != nil {
			return err
		}
		defer func() {
			if err := conn.Exec("SELECT pg_advisory_unlock(?)", setupLockKey).Error; err != nil {
				log.Warn().Err(err).Msg("Failed to release schema setup lock")
			}
		}()

		if err := d.createTables(ctx); err != nil {
			return err
		}
		d.CreateDefaultAdmin(ctx, adminUsername, adminPassword)
		d.CreateIndexes(ctx)
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Msg("Database schema setup complete")
	return nil
}
