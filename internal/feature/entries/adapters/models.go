// Package adapters はentriesフィーチャーのGORMリポジトリ実装を提供します。
package adapters

import (
	"sort"
	"time"

	"journal_backend/internal/feature/entries/domain/entity"
)

// EntryModel はentriesテーブルの行です。
type EntryModel struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    uint       `gorm:"not null;index"`
	Title     string     `gorm:"size:255;not null"`
	Content   string     `gorm:"type:text;not null"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
	Tags      []TagModel `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE"`
	Owner     ownerRef   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (EntryModel) TableName() string {
	return "entries"
}

// ownerRef は entries.user_id -> users.id の外部キーを AutoMigrate に張らせるための参照です。
// ユーザーの読み書きは auth フィーチャーが持つので、ここでは id だけを見ます。
type ownerRef struct {
	ID uint `gorm:"primaryKey"`
}

func (ownerRef) TableName() string {
	return "users"
}

// TagModel はtagsテーブルの行です。エントリーとタグ名の関連を表します。
type TagModel struct {
	ID      uint   `gorm:"primaryKey"`
	EntryID uint   `gorm:"not null;index"`
	TagName string `gorm:"size:100;not null;index"`
}

func (TagModel) TableName() string {
	return "tags"
}

// toEntity は単体取得用の変換です。タグは保存順のまま返します。
func toEntity(m EntryModel) entity.Entry {
	tags := make([]string, 0, len(m.Tags))
	for _, t := range m.Tags {
		if t.TagName != "" {
			tags = append(tags, t.TagName)
		}
	}
	return entity.Entry{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		Content:   m.Content,
		Tags:      tags,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// toListEntity は一覧用の変換です。タグは重複を除いて名前順に並べます。
func toListEntity(m EntryModel) entity.Entry {
	e := toEntity(m)
	seen := make(map[string]struct{}, len(e.Tags))
	distinct := e.Tags[:0]
	for _, t := range e.Tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		distinct = append(distinct, t)
	}
	sort.Strings(distinct)
	e.Tags = distinct
	return e
}

func toTagModels(entryID uint, tags []string) []TagModel {
	rows := make([]TagModel, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, TagModel{EntryID: entryID, TagName: t})
	}
	return rows
}
