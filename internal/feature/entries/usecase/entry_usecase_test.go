package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal_backend/internal/feature/entries/domain/entity"
	"journal_backend/internal/feature/entries/usecase"
)

// ErrDB はモックと期待値の間で共有されるセンチネルエラーです。
var ErrDB = errors.New("database error")

// mockEntryRepository はEntryRepositoryインターフェースのモック実装です。
type mockEntryRepository struct {
	CreateFunc     func(ctx context.Context, userID uint, in entity.EntryInput) (*entity.Entry, error)
	UpdateFunc     func(ctx context.Context, entryID, userID uint, in entity.EntryInput) (*entity.Entry, error)
	DeleteFunc     func(ctx context.Context, entryID, userID uint) (bool, error)
	FindByIDFunc   func(ctx context.Context, entryID, userID uint) (*entity.Entry, error)
	FindByUserFunc func(ctx context.Context, userID uint, opts entity.ListOptions) ([]entity.Entry, int64, error)
}

func (m *mockEntryRepository) Create(ctx context.Context, userID uint, in entity.EntryInput) (*entity.Entry, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, in)
	}
	return &entity.Entry{ID: 1, UserID: userID, Title: in.Title, Content: in.Content, Tags: in.Tags}, nil
}

func (m *mockEntryRepository) Update(ctx context.Context, entryID, userID uint, in entity.EntryInput) (*entity.Entry, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, entryID, userID, in)
	}
	return &entity.Entry{ID: entryID, UserID: userID, Title: in.Title, Content: in.Content, Tags: in.Tags}, nil
}

func (m *mockEntryRepository) Delete(ctx context.Context, entryID, userID uint) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, entryID, userID)
	}
	return true, nil
}

func (m *mockEntryRepository) FindByID(ctx context.Context, entryID, userID uint) (*entity.Entry, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, entryID, userID)
	}
	return nil, usecase.ErrEntryNotFound
}

func (m *mockEntryRepository) FindByUser(ctx context.Context, userID uint, opts entity.ListOptions) ([]entity.Entry, int64, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID, opts)
	}
	return nil, 0, nil
}

// mockTagCache はTagCacheのモック実装で、無効化されたユーザーIDを記録します。
type mockTagCache struct {
	invalidated []uint
	err         error
}

func (m *mockTagCache) Invalidate(ctx context.Context, userID uint) error {
	m.invalidated = append(m.invalidated, userID)
	return m.err
}

func TestNormalizeListOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   entity.ListOptions
		want entity.ListOptions
	}{
		{
			name: "zero value uses defaults",
			in:   entity.ListOptions{},
			want: entity.ListOptions{Page: 1, Limit: 20, SortBy: "created_at", Order: "DESC"},
		},
		{
			name: "valid values are kept and order is upper-cased",
			in:   entity.ListOptions{Page: 3, Limit: 10, SortBy: "title", Order: "asc"},
			want: entity.ListOptions{Page: 3, Limit: 10, SortBy: "title", Order: "ASC"},
		},
		{
			name: "unknown sort field and order fall back",
			in:   entity.ListOptions{SortBy: "id", Order: "sideways"},
			want: entity.ListOptions{Page: 1, Limit: 20, SortBy: "created_at", Order: "DESC"},
		},
		{
			name: "negative page and limit use defaults",
			in:   entity.ListOptions{Page: -2, Limit: -1},
			want: entity.ListOptions{Page: 1, Limit: 20, SortBy: "created_at", Order: "DESC"},
		},
		{
			name: "limit is capped",
			in:   entity.ListOptions{Limit: 1000},
			want: entity.ListOptions{Page: 1, Limit: 100, SortBy: "created_at", Order: "DESC"},
		},
		{
			name: "tag and search are normalized",
			in:   entity.ListOptions{Search: "  hiking ", Tag: " TRAVEL "},
			want: entity.ListOptions{Page: 1, Limit: 20, Search: "hiking", Tag: "travel", SortBy: "created_at", Order: "DESC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, usecase.NormalizeListOptions(tt.in))
		})
	}
}

func TestPageCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{23, 5, 5},
		{5, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, usecase.PageCount(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestEntryUsecase_List(t *testing.T) {
	ctx := context.Background()

	t.Run("passes normalized options and computes pages", func(t *testing.T) {
		repo := &mockEntryRepository{
			FindByUserFunc: func(ctx context.Context, userID uint, opts entity.ListOptions) ([]entity.Entry, int64, error) {
				assert.Equal(t, uint(9), userID)
				assert.Equal(t, entity.ListOptions{Page: 2, Limit: 20, Tag: "travel", SortBy: "created_at", Order: "DESC"}, opts)
				return []entity.Entry{{ID: 1}}, 41, nil
			},
		}
		uc := usecase.NewEntryUsecase(repo, nil)

		page, err := uc.List(ctx, 9, entity.ListOptions{Page: 2, Tag: "Travel", SortBy: "bogus"})

		require.NoError(t, err)
		assert.Equal(t, int64(41), page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 3, page.Pages)
		assert.Len(t, page.Entries, 1)
	})

	t.Run("nil result becomes empty slice", func(t *testing.T) {
		uc := usecase.NewEntryUsecase(&mockEntryRepository{}, nil)

		page, err := uc.List(ctx, 1, entity.ListOptions{})

		require.NoError(t, err)
		assert.NotNil(t, page.Entries)
		assert.Zero(t, page.Pages)
	})

	t.Run("repository error is propagated", func(t *testing.T) {
		repo := &mockEntryRepository{
			FindByUserFunc: func(ctx context.Context, userID uint, opts entity.ListOptions) ([]entity.Entry, int64, error) {
				return nil, 0, ErrDB
			},
		}
		uc := usecase.NewEntryUsecase(repo, nil)

		_, err := uc.List(ctx, 1, entity.ListOptions{})

		assert.ErrorIs(t, err, ErrDB)
	})
}

func TestEntryUsecase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes tags and invalidates the tag cache", func(t *testing.T) {
		cache := &mockTagCache{}
		repo := &mockEntryRepository{
			CreateFunc: func(ctx context.Context, userID uint, in entity.EntryInput) (*entity.Entry, error) {
				assert.Equal(t, []string{"outdoors", "travel"}, in.Tags)
				return &entity.Entry{ID: 5, UserID: userID, Title: in.Title, Content: in.Content, Tags: in.Tags}, nil
			},
		}
		uc := usecase.NewEntryUsecase(repo, cache)

		e, err := uc.Create(ctx, 3, entity.EntryInput{Title: "Trip", Content: "Went hiking", Tags: []string{"Outdoors ", " TRAVEL", "  "}})

		require.NoError(t, err)
		assert.Equal(t, uint(5), e.ID)
		assert.Equal(t, []uint{3}, cache.invalidated)
	})

	t.Run("cache failure does not fail the write", func(t *testing.T) {
		cache := &mockTagCache{err: errors.New("redis down")}
		uc := usecase.NewEntryUsecase(&mockEntryRepository{}, cache)

		_, err := uc.Create(ctx, 3, entity.EntryInput{Title: "t", Content: "c"})

		assert.NoError(t, err)
	})

	t.Run("repository failure skips invalidation", func(t *testing.T) {
		cache := &mockTagCache{}
		repo := &mockEntryRepository{
			CreateFunc: func(ctx context.Context, userID uint, in entity.EntryInput) (*entity.Entry, error) {
				return nil, ErrDB
			},
		}
		uc := usecase.NewEntryUsecase(repo, cache)

		_, err := uc.Create(ctx, 3, entity.EntryInput{Title: "t", Content: "c"})

		assert.ErrorIs(t, err, ErrDB)
		assert.Empty(t, cache.invalidated)
	})
}

func TestEntryUsecase_Create_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   entity.EntryInput
	}{
		{"missing title", entity.EntryInput{Content: "c"}},
		{"blank title", entity.EntryInput{Title: "   ", Content: "c"}},
		{"missing content", entity.EntryInput{Title: "t"}},
		{"title too long", entity.EntryInput{Title: strings.Repeat("a", 256), Content: "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockEntryRepository{
				CreateFunc: func(ctx context.Context, userID uint, in entity.EntryInput) (*entity.Entry, error) {
					t.Error("repository must not be called for invalid input")
					return nil, nil
				},
			}
			uc := usecase.NewEntryUsecase(repo, nil)

			_, err := uc.Create(context.Background(), 1, tt.in)

			assert.ErrorIs(t, err, usecase.ErrInvalidEntry)
		})
	}
}

func TestEntryUsecase_TitleLengthCountsCharacters(t *testing.T) {
	uc := usecase.NewEntryUsecase(&mockEntryRepository{}, nil)

	_, err := uc.Create(context.Background(), 1, entity.EntryInput{Title: strings.Repeat("日", 255), Content: "c"})

	assert.NoError(t, err)
}

func TestEntryUsecase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("not found is passed through without invalidation", func(t *testing.T) {
		cache := &mockTagCache{}
		repo := &mockEntryRepository{
			UpdateFunc: func(ctx context.Context, entryID, userID uint, in entity.EntryInput) (*entity.Entry, error) {
				return nil, usecase.ErrEntryNotFound
			},
		}
		uc := usecase.NewEntryUsecase(repo, cache)

		_, err := uc.Update(ctx, 7, 1, entity.EntryInput{Title: "t", Content: "c"})

		assert.ErrorIs(t, err, usecase.ErrEntryNotFound)
		assert.Empty(t, cache.invalidated)
	})

	t.Run("success invalidates", func(t *testing.T) {
		cache := &mockTagCache{}
		uc := usecase.NewEntryUsecase(&mockEntryRepository{}, cache)

		e, err := uc.Update(ctx, 7, 1, entity.EntryInput{Title: "t", Content: "c", Tags: []string{"A"}})

		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, e.Tags)
		assert.Equal(t, []uint{1}, cache.invalidated)
	})

	t.Run("invalid input", func(t *testing.T) {
		uc := usecase.NewEntryUsecase(&mockEntryRepository{}, nil)

		_, err := uc.Update(ctx, 7, 1, entity.EntryInput{Title: "t"})

		assert.ErrorIs(t, err, usecase.ErrInvalidEntry)
	})
}

func TestEntryUsecase_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name            string
		removed         bool
		repoErr         error
		wantErr         error
		wantInvalidated []uint
	}{
		{"removed", true, nil, nil, []uint{4}},
		{"nothing removed is not found", false, nil, usecase.ErrEntryNotFound, nil},
		{"repository error", false, ErrDB, ErrDB, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := &mockTagCache{}
			repo := &mockEntryRepository{
				DeleteFunc: func(ctx context.Context, entryID, userID uint) (bool, error) {
					return tt.removed, tt.repoErr
				},
			}
			uc := usecase.NewEntryUsecase(repo, cache)

			err := uc.Delete(ctx, 10, 4)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantInvalidated, cache.invalidated)
		})
	}
}

func TestEntryUsecase_Get(t *testing.T) {
	repo := &mockEntryRepository{
		FindByIDFunc: func(ctx context.Context, entryID, userID uint) (*entity.Entry, error) {
			if entryID == 1 && userID == 2 {
				return &entity.Entry{ID: 1, UserID: 2, Tags: []string{}}, nil
			}
			return nil, usecase.ErrEntryNotFound
		},
	}
	uc := usecase.NewEntryUsecase(repo, nil)

	e, err := uc.Get(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint(1), e.ID)

	_, err = uc.Get(context.Background(), 1, 3)
	assert.ErrorIs(t, err, usecase.ErrEntryNotFound)
}
