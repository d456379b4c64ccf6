// Package logging はプロセス全体の slog ロガーを構築します。
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel は LOG_LEVEL の文字列を slog.Level に変換します。未知の値は Info です。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a JSON logger in production and a text logger elsewhere.
func New(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var h slog.Handler
	if env == "production" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("service", "journal-api")
}

// Setup は New で作ったロガーを slog のデフォルトに設定して返します。
func Setup(w io.Writer, env, level string) *slog.Logger {
	l := New(w, env, level)
	slog.SetDefault(l)
	return l
}
