package di

import (
	"journal_backend/internal/config"
	authadapters "journal_backend/internal/feature/auth/adapters"
	authhandler "journal_backend/internal/feature/auth/transport/handler"
	authusecase "journal_backend/internal/feature/auth/usecase"
	entryadapters "journal_backend/internal/feature/entries/adapters"
	entryhandler "journal_backend/internal/feature/entries/transport/handler"
	entryusecase "journal_backend/internal/feature/entries/usecase"
	taghandler "journal_backend/internal/feature/tags/transport/handler"
	tagusecase "journal_backend/internal/feature/tags/usecase"
	jwtmw "journal_backend/internal/platform/jwt"
	"journal_backend/internal/shared/ratelimiter"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// App は router が必要とするハンドラーとミドルウェア依存をまとめたものです。
type App struct {
	Auth    *authhandler.AuthHandler
	Entries *entryhandler.EntryHandler
	Tags    *taghandler.TagHandler

	Tokens      jwtmw.TokenValidator
	AuthLimiter ratelimiter.Limiter
}

// NewApp wires repositories, usecases and handlers. rdb may be nil.
func NewApp(cfg config.Config, db *gorm.DB, rdb *redis.Client) *App {
	// Repository
	userRepo := authadapters.NewUserRepository(db)
	entryRepo := entryadapters.NewEntryRepository(db)
	tagRepo := NewTagRepository(rdb, db, cfg.TagCacheTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiry))
	entryUC := entryusecase.NewEntryUsecase(entryRepo, tagRepo)
	tagUC := tagusecase.NewTagUsecase(tagRepo)

	return &App{
		Auth:        authhandler.NewAuthHandler(authUC),
		Entries:     entryhandler.NewEntryHandler(entryUC),
		Tags:        taghandler.NewTagHandler(tagUC),
		Tokens:      jwtmw.NewValidator(cfg.JWTSecret),
		AuthLimiter: NewAuthLimiter(rdb, cfg.AuthRateLimit, cfg.AuthRateWindow),
	}
}
