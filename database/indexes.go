package database

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Dubemernest23/akuko/models"
)

// CreateIndexes builds the secondary indexes for the common query patterns:
// post lookup by slug, status filtering and chronological ordering, comment
// lookup by post and moderation status.
//
// Best-effort: uniqueness is already enforced by the table-level constraints,
// so a failed index is a performance problem, not a correctness one. Errors
// are logged at warn and setup continues.
func (d Database) CreateIndexes(ctx context.Context) {
	wanted := []struct {
		model any
		field string
	}{
		{&models.Post{}, "Slug"},
		{&models.Post{}, "Status"},
		{&models.Post{}, "PublishedAt"},
		{&models.Comment{}, "PostID"},
		{&models.Comment{}, "Status"},
	}

	migrator := d.db.WithContext(ctx).Migrator()
	failed := 0
	for _, idx := range wanted {
		if migrator.HasIndex(idx.model, idx.field) {
			continue
		}
		if err := migrator.CreateIndex(idx.model, idx.field); err != nil {
			log.Warn().Err(err).Str("field", idx.field).Msg("Could not create index")
			failed++
		}
	}
	if failed == 0 {
		log.Info().Msg("Indexes created")
	}
}
