package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

type DB struct {
	*gorm.DB
}

func New(gormDB *gorm.DB) *DB { return &DB{gormDB} }

func (db *DB) AutoMigrate() error {
	if err := db.DB.AutoMigrate(
		&Account{},
		&Bucket{},
		&BucketMinuteStatistic{},
		&BucketHourStatistic{},
		&BucketDayStatistic{},
	); err != nil {
		return err
	}
	return db.ensureIndexes()
}

func (db *DB) ensureIndexes() error {
	stmts := []string{
		// GORM держит уникальность через теги, явные индексы не помешают
		`CREATE INDEX IF NOT EXISTS ix_buckets_valid ON buckets (valid)`,
		`CREATE INDEX IF NOT EXISTS ix_minute_stats_time ON bucket_minute_statistics (time)`,
		`CREATE INDEX IF NOT EXISTS ix_hour_stats_time ON bucket_hour_statistics (time)`,
		`CREATE INDEX IF NOT EXISTS ix_day_stats_time ON bucket_day_statistics (time)`,
	}

	for i, s := range stmts {
		if err := db.DB.Exec(s).Error; err != nil {
			return fmt.Errorf("ensureIndexes step %d failed: %w", i, err)
		}
	}
	return nil
}

func (db *DB) WithTx(fn func(tx *gorm.DB) error) error {
	return db.DB.Transaction(func(tx *gorm.DB) error { return fn(tx) })
}

func (db *DB) DSN(path string) string {
	// WAL + FK + нормальная синхронизация
	return fmt.Sprintf("%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000", path)
}
