package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dubemernest23/akuko/models"
)

// CreateDefaultAdmin seeds the administrator account on first run. The
// insert is conditional on the username unique constraint (ON CONFLICT DO
// NOTHING), so concurrent setup runs cannot create a second admin.
//
// Failures here are logged, never fatal: the rest of schema setup proceeds
// and the operator can re-run setup to retry.
func (d Database) CreateDefaultAdmin(ctx context.Context, username, password string) {
	count, err := d.adminRepo.Count(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check for existing admin")
		return
	}
	if count > 0 {
		log.Info().Msg("Admin user already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash admin password")
		return
	}

	created, err := d.adminRepo.CreateIfAbsent(ctx, &models.Admin{
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create default admin")
		return
	}
	if !created {
		// Lost the race to another setup run; that run logged the credentials.
		log.Info().Msg("Admin user already exists")
		return
	}

	// The plaintext password is logged exactly once, on first provisioning.
	log.Info().
		Str("username", username).
		Str("password", password).
		Msg("Default admin user created")
	log.Warn().Msg("CHANGE THIS PASSWORD IN PRODUCTION!")
}
