// Package entity defines the domain models for the entries feature.
package entity

import (
	"strings"
	"time"
)

// Entry is a journal entry owned by exactly one user.
type Entry struct {
	ID        uint
	UserID    uint
	Title     string   // at most 255 characters
	Content   string   // unbounded text
	Tags      []string // lowercased labels, never nil
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntryInput carries the mutable fields of an entry for create and update.
type EntryInput struct {
	Title   string
	Content string
	Tags    []string
}

// Sort fields accepted by ListOptions.SortBy.
const (
	SortByCreatedAt = "created_at"
	SortByUpdatedAt = "updated_at"
	SortByTitle     = "title"
)

// Sort directions accepted by ListOptions.Order.
const (
	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// ListOptions filters, sorts and paginates a user's entries.
type ListOptions struct {
	Page   int
	Limit  int
	Search string
	Tag    string
	SortBy string
	Order  string
}

// EntryPage is one page of a filtered entry listing.
type EntryPage struct {
	Entries []Entry
	Total   int64
	Page    int
	Pages   int
}

// NormalizeTag trims and lowercases a tag label.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// NormalizeTags normalizes every label, keeping input order and duplicates.
// Labels that are blank after trimming are dropped.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if n := NormalizeTag(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}
