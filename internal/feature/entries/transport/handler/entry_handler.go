// Package handler はentriesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"journal_backend/internal/api"
	"journal_backend/internal/feature/entries/domain/entity"
	"journal_backend/internal/feature/entries/usecase"
	jwtmw "journal_backend/internal/platform/jwt"
)

// EntryUsecase はエントリー操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type EntryUsecase interface {
	List(ctx context.Context, userID uint, opts entity.ListOptions) (*entity.EntryPage, error)
	Get(ctx context.Context, entryID, userID uint) (*entity.Entry, error)
	Create(ctx context.Context, userID uint, in entity.EntryInput) (*entity.Entry, error)
	Update(ctx context.Context, entryID, userID uint, in entity.EntryInput) (*entity.Entry, error)
	Delete(ctx context.Context, entryID, userID uint) error
}

// EntryHandler はエントリーのHTTPリクエストを処理します。
type EntryHandler struct {
	uc EntryUsecase
}

// NewEntryHandler は指定されたusecaseでEntryHandlerの新しいインスタンスを生成します。
func NewEntryHandler(uc EntryUsecase) *EntryHandler {
	return &EntryHandler{uc: uc}
}

// List はログインユーザーのエントリー一覧を返します。
//
// エンドポイント例:
// GET /api/entries?page=2&limit=10&search=hiking&tag=travel&sortBy=title&order=asc
func (h *EntryHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	// 不正な値のパラメータはデフォルト値で補う
	params, err := api.BindListEntriesParams(c)
	if err != nil {
		slog.Debug("ignoring malformed list parameters", "error", err, "remote_addr", c.ClientIP())
	}

	page, err := h.uc.List(c.Request.Context(), userID, toListOptions(params))
	if err != nil {
		slog.Error("failed to list entries", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch entries"})
		return
	}

	out := make([]api.Entry, 0, len(page.Entries))
	for i := range page.Entries {
		out = append(out, toResponse(&page.Entries[i]))
	}
	c.JSON(http.StatusOK, api.EntryListResponse{
		Entries: out,
		Total:   page.Total,
		Page:    page.Page,
		Pages:   page.Pages,
	})
}

// Get は指定IDのエントリーを返します。
func (h *EntryHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	entryID, ok := entryIDParam(c)
	if !ok {
		return
	}

	e, err := h.uc.Get(c.Request.Context(), entryID, userID)
	if err != nil {
		h.writeError(c, err, "Failed to fetch entry")
		return
	}
	c.JSON(http.StatusOK, api.EntryResponse{Entry: toResponse(e)})
}

// Create は新しいエントリーを作成します。
func (h *EntryHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	in, ok := bindEntry(c)
	if !ok {
		return
	}

	e, err := h.uc.Create(c.Request.Context(), userID, in)
	if err != nil {
		h.writeError(c, err, "Failed to create entry")
		return
	}
	c.JSON(http.StatusCreated, api.EntryMutationResponse{
		Success: true,
		Message: "Entry created successfully",
		Entry:   toResponse(e),
	})
}

// Update は既存エントリーを更新します。
func (h *EntryHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	entryID, ok := entryIDParam(c)
	if !ok {
		return
	}
	in, ok := bindEntry(c)
	if !ok {
		return
	}

	e, err := h.uc.Update(c.Request.Context(), entryID, userID, in)
	if err != nil {
		h.writeError(c, err, "Failed to update entry")
		return
	}
	c.JSON(http.StatusOK, api.EntryMutationResponse{
		Success: true,
		Message: "Entry updated successfully",
		Entry:   toResponse(e),
	})
}

// Delete はエントリーを削除します。
func (h *EntryHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	entryID, ok := entryIDParam(c)
	if !ok {
		return
	}

	if err := h.uc.Delete(c.Request.Context(), entryID, userID); err != nil {
		h.writeError(c, err, "Failed to delete entry")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Success: true, Message: "Entry deleted successfully"})
}

// writeError はドメインエラーをステータスコードに変換します。
// インフラエラーの詳細はログにのみ残し、クライアントには固定メッセージを返します。
func (h *EntryHandler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Entry not found"})
	case errors.Is(err, usecase.ErrInvalidEntry):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error(fallback, "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}

func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: jwtmw.ErrInvalidToken.Error()})
	}
	return userID, ok
}

func entryIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid entry ID"})
		return 0, false
	}
	return uint(id), true
}

func bindEntry(c *gin.Context) (entity.EntryInput, bool) {
	var req api.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("entry validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return entity.EntryInput{}, false
	}
	return entity.EntryInput{Title: req.Title, Content: req.Content, Tags: req.Tags}, true
}

func toListOptions(p api.ListEntriesParams) entity.ListOptions {
	var opts entity.ListOptions
	if p.Page != nil {
		opts.Page = *p.Page
	}
	if p.Limit != nil {
		opts.Limit = *p.Limit
	}
	if p.Search != nil {
		opts.Search = *p.Search
	}
	if p.Tag != nil {
		opts.Tag = *p.Tag
	}
	if p.SortBy != nil {
		opts.SortBy = *p.SortBy
	}
	if p.Order != nil {
		opts.Order = *p.Order
	}
	return opts
}

func toResponse(e *entity.Entry) api.Entry {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return api.Entry{
		ID:        e.ID,
		UserID:    e.UserID,
		Title:     e.Title,
		Content:   e.Content,
		Tags:      tags,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
