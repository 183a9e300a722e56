package database

import (
	"github.com/adaptive-testers/aztec-assess/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Migrate runs schema migration for all engine entities. Beyond what
// AutoMigrate can express, it creates the partial unique index that
// allows at most one IN_PROGRESS attempt per (student, quiz) pair: the
// storage-level guard that closes the check-then-create race between
// two concurrent StartAttempt calls.
func Migrate(db *gorm.DB) error {
	log.Info().Msg("Running database migrations")
	err := db.AutoMigrate(
		&model.Course{},
		&model.Chapter{},
		&model.Question{},
		&model.Quiz{},
		&model.QuizAttempt{},
		&model.AttemptAnswer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}

	err = db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_quiz_attempts_in_progress
		 ON quiz_attempts (student_id, quiz_id)
		 WHERE status = 'IN_PROGRESS'`,
	).Error
	if err != nil {
		log.Error().Err(err).Msg("Failed to create in-progress attempt index")
		return err
	}

	log.Info().Msg("Database migration completed")
	return nil
}
