// Package usecase implements the business logic for tag aggregation.
package usecase

import (
	"context"

	"journal_backend/internal/feature/tags/domain/entity"
)

// TagRepository abstracts per-user tag aggregation.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TagRepository interface {
	// CountByUser returns tag counts across the user's entries, ordered by count desc then name asc.
	CountByUser(ctx context.Context, userID uint) ([]entity.TagCount, error)
}

// TagUsecase provides business logic for tag operations.
type TagUsecase struct {
	repo TagRepository
}

// NewTagUsecase creates a new TagUsecase with the given repository.
func NewTagUsecase(r TagRepository) *TagUsecase {
	return &TagUsecase{repo: r}
}

// TagsForUser returns the ordered tag list and the name to count mapping.
func (u *TagUsecase) TagsForUser(ctx context.Context, userID uint) (entity.TagSummary, error) {
	counts, err := u.repo.CountByUser(ctx, userID)
	if err != nil {
		return entity.TagSummary{}, err
	}
	return entity.NewTagSummary(counts), nil
}
