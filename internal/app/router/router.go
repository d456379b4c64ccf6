package router

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"journal_backend/internal/api"
	"journal_backend/internal/app/di"
	"journal_backend/internal/config"
	jwtmw "journal_backend/internal/platform/jwt"
	"journal_backend/internal/platform/http/handler"
	"journal_backend/internal/platform/http/middleware"
	"journal_backend/internal/shared/ratelimiter"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg config.Config, app *di.App, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	// 信頼するプロキシ以外から来た X-Forwarded-For は無視し、ソケットのアドレスを使う
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Error("invalid trusted proxies; ignoring forwarded headers", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(logger))
	r.Use(cors.New(corsConfig(cfg)))

	// 認証不要
	// 導通確認用
	r.GET("/health", handler.Health)
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)

	authGroup := r.Group("/api/auth")
	// 総当たり対策: IP ごとに試行回数を制限
	authGroup.Use(ratelimiter.Middleware(app.AuthLimiter, "auth"))
	{
		// 新規ユーザー登録
		authGroup.POST("/register", app.Auth.Register)
		// ログイン（JWT 発行）
		authGroup.POST("/login", app.Auth.Login)
	}

	// 認証必須のルート
	// → リクエストヘッダーに JWT が必要になる
	authed := r.Group("/api")
	authed.Use(jwtmw.AuthRequired(app.Tokens))
	{
		authed.GET("/entries", app.Entries.List)
		authed.GET("/entries/:id", app.Entries.Get)
		authed.POST("/entries", app.Entries.Create)
		authed.PUT("/entries/:id", app.Entries.Update)
		authed.DELETE("/entries/:id", app.Entries.Delete)

		authed.GET("/tags", app.Tags.List)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Route not found"})
	})

	return r
}

// corsConfig は development では全オリジンを許可し、それ以外は ALLOWED_ORIGINS のみ許可します。
func corsConfig(cfg config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.IsDevelopment() {
		c.AllowOriginFunc = func(string) bool { return true }
		return c
	}

	allowed := cfg.AllowedOrigins
	c.AllowOriginFunc = func(origin string) bool {
		if slices.Contains(allowed, origin) {
			return true
		}
		slog.Info("CORS blocked origin", "origin", origin)
		return false
	}
	return c
}
