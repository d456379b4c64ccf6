// Package usecase はジャーナルエントリー操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"journal_backend/internal/feature/entries/domain/entity"
)

const (
	// DefaultPage は一覧取得のデフォルトページ番号です。
	DefaultPage = 1
	// DefaultLimit は1ページあたりのデフォルト件数です。
	DefaultLimit = 20
	// MaxLimit は1ページあたりの最大件数です。
	MaxLimit = 100
	// MaxTitleLength はタイトルの最大文字数です。
	MaxTitleLength = 255
)

// EntryRepository はエントリーの永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type EntryRepository interface {
	// Create はエントリーとタグを1トランザクションで保存し、タグ付きで再取得した結果を返します。
	Create(ctx context.Context, userID uint, in entity.EntryInput) (*entity.Entry, error)
	// Update は所有者確認後にエントリーを更新し、タグを全置換します。
	// 存在しない、または他ユーザーのエントリーの場合はErrEntryNotFoundを返します。
	Update(ctx context.Context, entryID, userID uint, in entity.EntryInput) (*entity.Entry, error)
	// Delete はエントリーを削除し、実際に削除されたかどうかを返します。
	Delete(ctx context.Context, entryID, userID uint) (bool, error)
	// FindByID は所有者スコープでエントリーを取得します。見つからない場合はErrEntryNotFoundを返します。
	FindByID(ctx context.Context, entryID, userID uint) (*entity.Entry, error)
	// FindByUser はフィルタ・ソート・ページングを適用した一覧と総件数を返します。
	FindByUser(ctx context.Context, userID uint, opts entity.ListOptions) ([]entity.Entry, int64, error)
}

// TagCache はエントリー変更時に無効化すべきユーザー単位のタグ集計キャッシュです。
type TagCache interface {
	Invalidate(ctx context.Context, userID uint) error
}

// entryUsecase はエントリー操作のユースケースを定義します。
type entryUsecase struct {
	entries EntryRepository
	tags    TagCache
}

// NewEntryUsecase はentryUsecaseの新しいインスタンスを生成します。
// tagsがnilの場合、キャッシュ無効化は行いません。
func NewEntryUsecase(entries EntryRepository, tags TagCache) *entryUsecase {
	return &entryUsecase{entries: entries, tags: tags}
}

// Get は指定IDのエントリーを取得します。
func (u *entryUsecase) Get(ctx context.Context, entryID, userID uint) (*entity.Entry, error) {
	return u.entries.FindByID(ctx, entryID, userID)
}

// List はユーザーのエントリー一覧を取得します。
// 不正なソート項目や順序はエラーにせずデフォルト値に置き換えます。
func (u *entryUsecase) List(ctx context.Context, userID uint, opts entity.ListOptions) (*entity.EntryPage, error) {
	opts = NormalizeListOptions(opts)

	entries, total, err := u.entries.FindByUser(ctx, userID, opts)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []entity.Entry{}
	}

	return &entity.EntryPage{
		Entries: entries,
		Total:   total,
		Page:    opts.Page,
		Pages:   PageCount(total, opts.Limit),
	}, nil
}

// Create は新しいエントリーを作成します。
func (u *entryUsecase) Create(ctx context.Context, userID uint, in entity.EntryInput) (*entity.Entry, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return nil, err
	}

	e, err := u.entries.Create(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	u.invalidateTags(ctx, userID)
	return e, nil
}

// Update は既存エントリーを更新し、タグを置き換えます。
func (u *entryUsecase) Update(ctx context.Context, entryID, userID uint, in entity.EntryInput) (*entity.Entry, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return nil, err
	}

	e, err := u.entries.Update(ctx, entryID, userID, in)
	if err != nil {
		return nil, err
	}
	u.invalidateTags(ctx, userID)
	return e, nil
}

// Delete はエントリーを削除します。対象が存在しない場合はErrEntryNotFoundを返します。
func (u *entryUsecase) Delete(ctx context.Context, entryID, userID uint) error {
	removed, err := u.entries.Delete(ctx, entryID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrEntryNotFound
	}
	u.invalidateTags(ctx, userID)
	return nil
}

// invalidateTags はタグ集計キャッシュを破棄します。
// 書き込み自体は完了しているため、失敗はログに残すのみとします。
func (u *entryUsecase) invalidateTags(ctx context.Context, userID uint) {
	if u.tags == nil {
		return
	}
	if err := u.tags.Invalidate(ctx, userID); err != nil {
		slog.Warn("tag cache invalidation failed", "error", err, "user_id", userID)
	}
}

// NormalizeListOptions はページング・ソート条件をデフォルト値と許可リストで補正します。
func NormalizeListOptions(opts entity.ListOptions) entity.ListOptions {
	if opts.Page < 1 {
		opts.Page = DefaultPage
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Limit > MaxLimit {
		opts.Limit = MaxLimit
	}

	opts.Search = strings.TrimSpace(opts.Search)
	opts.Tag = entity.NormalizeTag(opts.Tag)

	switch opts.SortBy {
	case entity.SortByCreatedAt, entity.SortByUpdatedAt, entity.SortByTitle:
	default:
		opts.SortBy = entity.SortByCreatedAt
	}

	switch order := strings.ToUpper(opts.Order); order {
	case entity.OrderAsc, entity.OrderDesc:
		opts.Order = order
	default:
		opts.Order = entity.OrderDesc
	}
	return opts
}

// PageCount は総件数とページサイズから総ページ数（切り上げ）を計算します。
func PageCount(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// normalizeInput は入力を検証し、タグを正規化します。
func normalizeInput(in entity.EntryInput) (entity.EntryInput, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return in, fmt.Errorf("%w: title and content are required", ErrInvalidEntry)
	}
	if utf8.RuneCountInString(in.Title) > MaxTitleLength {
		return in, fmt.Errorf("%w: title must be %d characters or less", ErrInvalidEntry, MaxTitleLength)
	}
	in.Tags = entity.NormalizeTags(in.Tags)
	return in, nil
}
