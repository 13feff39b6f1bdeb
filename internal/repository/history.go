package repository

import (
	"context"

	"github.com/eslsoft/jyutcollab/internal/entity"
)

// ListHistoryQuery filters the edit history feed.
type ListHistoryQuery struct {
	Pagination

	EntryID  string
	EditorID string
	Action   entity.HistoryAction
}

// HistoryRepository defines data access for edit history records.
type HistoryRepository interface {
	Record(ctx context.Context, h *entity.EditHistory) (*entity.EditHistory, error)
	GetByID(ctx context.Context, id string) (*entity.EditHistory, error)
	List(ctx context.Context, query *ListHistoryQuery) ([]*entity.EditHistory, int64, error)
	Stream(ctx context.Context, fn func(*entity.EditHistory) error) error
}
