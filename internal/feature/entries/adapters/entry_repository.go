package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"journal_backend/internal/feature/entries/domain/entity"
	"journal_backend/internal/feature/entries/usecase"
)

// sortColumns はソート指定と実カラムの許可リストです。
var sortColumns = map[string]string{
	entity.SortByCreatedAt: "created_at",
	entity.SortByUpdatedAt: "updated_at",
	entity.SortByTitle:     "title",
}

type entryRepository struct {
	db *gorm.DB
}

var _ usecase.EntryRepository = (*entryRepository)(nil)

func NewEntryRepository(db *gorm.DB) *entryRepository {
	return &entryRepository{db: db}
}

// Create はエントリーとタグを1トランザクションで挿入します。
// いずれかの挿入が失敗した場合は全体がロールバックされ、エラーをそのまま返します。
func (r *entryRepository) Create(ctx context.Context, userID uint, in entity.EntryInput) (*entity.Entry, error) {
	m := EntryModel{UserID: userID, Title: in.Title, Content: in.Content}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&m).Error; err != nil {
			return err
		}
		return insertTags(tx, m.ID, in.Tags)
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, m.ID, userID)
}

// Update は所有者確認、本文更新、タグ全削除、タグ再挿入を1トランザクションで実行します。
func (r *entryRepository) Update(ctx context.Context, entryID, userID uint, in entity.EntryInput) (*entity.Entry, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned EntryModel
		err := tx.Select("id").
			Where("id = ? AND user_id = ?", entryID, userID).
			Take(&owned).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecase.ErrEntryNotFound
		}
		if err != nil {
			return err
		}

		err = tx.Model(&EntryModel{}).
			Where("id = ? AND user_id = ?", entryID, userID).
			Updates(map[string]any{
				"title":      in.Title,
				"content":    in.Content,
				"updated_at": time.Now(),
			}).Error
		if err != nil {
			return err
		}

		if err := tx.Where("entry_id = ?", entryID).Delete(&TagModel{}).Error; err != nil {
			return err
		}
		return insertTags(tx, entryID, in.Tags)
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, entryID, userID)
}

// Delete は所有者スコープで1文のDELETEを発行します。タグは外部キーのカスケードで削除されます。
func (r *entryRepository) Delete(ctx context.Context, entryID, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&EntryModel{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindByID は所有者スコープでエントリーをタグ付きで取得します。
func (r *entryRepository) FindByID(ctx context.Context, entryID, userID uint) (*entity.Entry, error) {
	var m EntryModel
	err := r.db.WithContext(ctx).
		Preload("Tags", orderTags).
		Where("id = ? AND user_id = ?", entryID, userID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	e := toEntity(m)
	return &e, nil
}

// FindByUser は検索・タグ条件をAND結合し、総件数と指定ページのエントリーを返します。
// optsは正規化済みであることを前提とします。
func (r *entryRepository) FindByUser(ctx context.Context, userID uint, opts entity.ListOptions) ([]entity.Entry, int64, error) {
	var total int64
	if err := r.filtered(ctx, userID, opts).Distinct("entries.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entity.Entry{}, 0, nil
	}
	// 最終ページより後ろは空。(page-1)*limit のオーバーフローもここで防ぐ
	if int64(opts.Page-1) >= (total+int64(opts.Limit)-1)/int64(opts.Limit) {
		return []entity.Entry{}, total, nil
	}

	column, ok := sortColumns[opts.SortBy]
	if !ok {
		column = sortColumns[entity.SortByCreatedAt]
	}
	desc := opts.Order != entity.OrderAsc

	var rows []EntryModel
	err := r.filtered(ctx, userID, opts).
		Preload("Tags", orderTags).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "entries", Name: column}, Desc: desc}).
		// 同値のソートキーでもページが重複しないようIDで順序を確定させる
		Order(clause.OrderByColumn{Column: clause.Column{Table: "entries", Name: "id"}, Desc: desc}).
		Limit(opts.Limit).
		Offset((opts.Page - 1) * opts.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]entity.Entry, 0, len(rows))
	for _, m := range rows {
		out = append(out, toListEntity(m))
	}
	return out, total, nil
}

// filtered は所有者・検索・タグの条件を適用したクエリを返します。
func (r *entryRepository) filtered(ctx context.Context, userID uint, opts entity.ListOptions) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&EntryModel{}).Where("entries.user_id = ?", userID)
	if opts.Search != "" {
		q = applySearch(q, r.db.Dialector.Name(), opts.Search)
	}
	if opts.Tag != "" {
		sub := r.db.Model(&TagModel{}).Select("entry_id").Where("tag_name = ?", opts.Tag)
		q = q.Where("entries.id IN (?)", sub)
	}
	return q
}

func insertTags(tx *gorm.DB, entryID uint, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	rows := toTagModels(entryID, tags)
	return tx.Create(&rows).Error
}

func orderTags(db *gorm.DB) *gorm.DB {
	return db.Order("tags.id")
}
