package entity

import "strings"

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// Pagination carries one-based page selection for list queries.
type Pagination struct {
	Page    int
	PerPage int
}

// Normalize clamps pagination to sane bounds.
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
}

// Offset returns the zero-based row offset for the current page.
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// TotalPages computes the page count for a total row count.
func (p Pagination) TotalPages(total int64) int {
	if p.PerPage <= 0 {
		return 0
	}
	pages := int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	if pages < 0 {
		return 0
	}
	return pages
}

// NormalizeStringSlice trims, drops empties and dedups (case-insensitive)
// while preserving first-occurrence order.
func NormalizeStringSlice(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, item := range in {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
