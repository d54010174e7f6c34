package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Dubemernest23/akuko/models"
)

// Advisory lock key serializing schema setup across concurrent runs.
const setupLockKey = 0x616b756b // "akuk"

// createTables creates the four tables plus the post_tags join table.
// Admin and tags have no ordering dependency and are created concurrently.
// Posts waits for tags (creating posts also creates the post_tags join
// table, which references tags) and comments waits for posts: postgres
// requires a referenced table to exist before a foreign key can be
// declared.
func (d Database) createTables(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.createTable(gctx, "admin", &models.Admin{}) })
	g.Go(func() error { return d.createTable(gctx, "tags", &models.Tag{}) })
	if err := g.Wait(); err != nil {
		return err
	}
	if err := d.createTable(ctx, "posts", &models.Post{}); err != nil {
		return err
	}
	return d.createTable(ctx, "comments", &models.Comment{})
}

// createTable is the idempotent per-table creator: an existing table is a
// logged no-op, not an error.
func (d Database) createTable(ctx context.Context, name string, model any) error {
	migrator := d.db.WithContext(ctx).Migrator()
	if migrator.HasTable(model) {
		log.Info().Str("table", name).Msg("Table already exists")
		return nil
	}
	if err := migrator.CreateTable(model); err != nil {
		log.Error().Err(err).Str("table", name).Msg("Failed to create table")
		return err
	}
	log.Info().Str("table", name).Msg("Table created")
	return nil
}
