// Package handler はtagsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"journal_backend/internal/api"
	"journal_backend/internal/feature/tags/domain/entity"
	jwtmw "journal_backend/internal/platform/jwt"
)

// TagUsecase はタグ集計のユースケースインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type TagUsecase interface {
	TagsForUser(ctx context.Context, userID uint) (entity.TagSummary, error)
}

// TagHandler はタグに関するHTTPリクエストを処理します。
type TagHandler struct {
	uc TagUsecase
}

// NewTagHandler は新しい TagHandler を作成します。
func NewTagHandler(uc TagUsecase) *TagHandler {
	return &TagHandler{uc: uc}
}

// List はログインユーザーのタグ一覧と件数を返します。
// Usecaseでエラーが発生した場合は500 Internal Server Errorを返します。
func (h *TagHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: jwtmw.ErrInvalidToken.Error()})
		return
	}

	summary, err := h.uc.TagsForUser(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to aggregate tags", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch tags"})
		return
	}

	tags := summary.Tags
	if tags == nil {
		tags = []string{}
	}
	counts := summary.Counts
	if counts == nil {
		counts = map[string]int64{}
	}
	c.JSON(http.StatusOK, api.TagListResponse{Tags: tags, Counts: counts})
}
