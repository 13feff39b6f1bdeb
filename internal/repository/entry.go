package repository

import (
	"context"

	"github.com/eslsoft/jyutcollab/internal/entity"
)

// ListEntryQuery carries structured filters plus the raw CEL filter and
// order_by strings bound through pkg/filterexpr.
type ListEntryQuery struct {
	Pagination
	FilterOrder

	Query     string
	Dialect   string
	Status    entity.EntryStatus
	ThemeL3ID int
	CreatedBy string
	GroupBy   entity.GroupBy

	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

// EntryRepository defines data access for dictionary entries.
type EntryRepository interface {
	Create(ctx context.Context, entry *entity.Entry) (*entity.Entry, error)
	Update(ctx context.Context, entry *entity.Entry) (*entity.Entry, error)
	GetByID(ctx context.Context, id string) (*entity.Entry, error)
	List(ctx context.Context, query *ListEntryQuery) ([]*entity.Entry, int64, error)
	Delete(ctx context.Context, id string) error
	FindByHeadword(ctx context.Context, headword, dialect string) ([]*entity.Entry, error)

	// UpdateStatusCAS transitions an entry's workflow status only when its
	// current status equals from; returns entity.ErrReviewConflict when
	// another reviewer got there first.
	UpdateStatusCAS(ctx context.Context, id string, from, to entity.EntryStatus, reviewerID, notes string) (*entity.Entry, error)

	// Stream yields every entry in id order; used by backup export.
	Stream(ctx context.Context, fn func(*entity.Entry) error) error
}
