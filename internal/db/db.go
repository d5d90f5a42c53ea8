package db

import (
	"fmt"

	"thisday/internal/auth"
	"thisday/internal/entry"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&entry.Entry{},
		&auth.User{},
	); err != nil {
		return err
	}

	// Every recall query is scoped to one user, then filters on the local
	// calendar projection (exact day, day-month key, or creation instant).
	stmts := []string{
		`create index if not exists idx_entries_user_local_date on entries(user_id, local_date);`,
		`create index if not exists idx_entries_user_day_month on entries(user_id, day_month);`,
		`create index if not exists idx_entries_user_created on entries(user_id, created_at);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
