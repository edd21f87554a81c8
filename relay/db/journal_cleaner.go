package db

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// JournalCleaner periodically prunes request journal rows older than the
// retention period.
type JournalCleaner struct {
	database        *DB
	logger          zerolog.Logger
	cleanupInterval time.Duration
	retentionPeriod time.Duration
}

func NewJournalCleaner(database *DB, cleanupInterval, retentionPeriod time.Duration, logger zerolog.Logger) *JournalCleaner {
	return &JournalCleaner{
		database:        database,
		cleanupInterval: cleanupInterval,
		retentionPeriod: retentionPeriod,
		logger:          logger.With().Str("component", "journal_cleaner").Logger(),
	}
}

// Run cleans once immediately and then on every interval until ctx is done.
func (jc *JournalCleaner) Run(ctx context.Context) {
	jc.logger.Info().
		Dur("cleanup_interval", jc.cleanupInterval).
		Dur("retention_period", jc.retentionPeriod).
		Msg("starting journal cleaner")

	jc.performCleanup()

	ticker := time.NewTicker(jc.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			jc.logger.Info().Msg("context cancelled, stopping journal cleaner")
			return
		case <-ticker.C:
			jc.performCleanup()
		}
	}
}

func (jc *JournalCleaner) performCleanup() {
	start := time.Now()
	deleted, err := jc.database.DeleteOldJournalEntries(jc.retentionPeriod)
	if err != nil {
		jc.logger.Error().Err(err).Msg("failed to clean request journal")
		return
	}

	if deleted == 0 {
		jc.logger.Debug().Str("duration", time.Since(start).String()).Msg("journal cleanup completed - nothing to delete")
		return
	}

	jc.logger.Info().
		Int64("deleted_count", deleted).
		Str("duration", time.Since(start).String()).
		Msg("journal cleanup completed")

	if err := jc.database.Client().Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error; err != nil {
		jc.logger.Warn().Err(err).Msg("failed to checkpoint WAL")
	}
}
