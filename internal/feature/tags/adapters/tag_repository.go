// Package adapters はtagsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"journal_backend/internal/feature/tags/domain/entity"
	"journal_backend/internal/feature/tags/usecase"
)

// tagRepository はTagRepositoryインターフェースのGORM実装です。
type tagRepository struct {
	db *gorm.DB
}

var _ usecase.TagRepository = (*tagRepository)(nil)

// NewTagRepository は指定されたDB接続でtagRepositoryの新しいインスタンスを生成します。
func NewTagRepository(db *gorm.DB) *tagRepository {
	return &tagRepository{db: db}
}

// tagCountRow は集計結果の1行です。
type tagCountRow struct {
	TagName  string
	TagCount int64
}

// CountByUser はユーザーのエントリーに付いたタグを名前ごとに集計します。
// 件数の降順、同数の場合はタグ名の昇順で返します。
func (r *tagRepository) CountByUser(ctx context.Context, userID uint) ([]entity.TagCount, error) {
	var rows []tagCountRow
	err := r.db.WithContext(ctx).
		Table("tags").
		Select("tags.tag_name AS tag_name, COUNT(*) AS tag_count").
		Joins("JOIN entries ON entries.id = tags.entry_id").
		Where("entries.user_id = ? AND tags.tag_name <> ''", userID).
		Group("tags.tag_name").
		Order("tag_count DESC, tags.tag_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entity.TagCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.TagCount{Name: row.TagName, Count: row.TagCount})
	}
	return out, nil
}
