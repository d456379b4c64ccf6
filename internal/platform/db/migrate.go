package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	authentity "journal_backend/internal/feature/auth/domain/entity"
	entryadapters "journal_backend/internal/feature/entries/adapters"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// gooseStatusContext is a seam for testing goose.StatusContext.
var gooseStatusContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.StatusContext(ctx, db, dir, opts...)
}

// Models はスキーマを構成する GORM モデルの一覧です。
func Models() []any {
	return []any{
		&authentity.User{},
		&entryadapters.EntryModel{},
		&entryadapters.TagModel{},
	}
}

// Migrate はスキーマを最新にします。
// Postgres は埋め込みの goose マイグレーション (全文検索の GIN インデックスを含む)、
// SQLite は AutoMigrate を使います。
func Migrate(ctx context.Context, db *gorm.DB, driver string) error {
	if driver == DriverSQLite {
		if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
		return nil
	}

	sqlDB, err := setupGoose(db)
	if err != nil {
		return err
	}
	if err := gooseUpContext(ctx, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Status はマイグレーションの適用状況を goose のロガーに出力します。
func Status(ctx context.Context, db *gorm.DB, driver string) error {
	if driver == DriverSQLite {
		return fmt.Errorf("migration status is not tracked for %s", driver)
	}
	sqlDB, err := setupGoose(db)
	if err != nil {
		return err
	}
	return gooseStatusContext(ctx, sqlDB, migrationsDir)
}

func setupGoose(db *gorm.DB) (*sql.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, err
	}
	return sqlDB, nil
}
