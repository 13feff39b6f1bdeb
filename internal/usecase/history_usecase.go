package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/eslsoft/jyutcollab/internal/entity"
	"github.com/eslsoft/jyutcollab/internal/repository"
	"github.com/sirupsen/logrus"
)

// HistoryUsecase exposes the audit trail and the revert operation.
type HistoryUsecase interface {
	List(ctx context.Context, query *repository.ListHistoryQuery) ([]*entity.EditHistory, int64, error)
	ListByEntry(ctx context.Context, entryID string, page repository.Pagination) ([]*entity.EditHistory, int64, error)
	Revert(ctx context.Context, actor *entity.User, historyID string) (*entity.Entry, error)
}

type historyUsecase struct {
	histories repository.HistoryRepository
	entries   repository.EntryRepository
	log       logrus.FieldLogger
}

func NewHistoryUsecase(histories repository.HistoryRepository, entries repository.EntryRepository, log logrus.FieldLogger) HistoryUsecase {
	return &historyUsecase{histories: histories, entries: entries, log: log}
}

func (u *historyUsecase) List(ctx context.Context, query *repository.ListHistoryQuery) ([]*entity.EditHistory, int64, error) {
	if query == nil {
		query = &repository.ListHistoryQuery{}
	}
	if query.PageNo <= 0 {
		query.PageNo = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = _defaultPageSize
	}
	return u.histories.List(ctx, query)
}

func (u *historyUsecase) ListByEntry(ctx context.Context, entryID string, page repository.Pagination) ([]*entity.EditHistory, int64, error) {
	if strings.TrimSpace(entryID) == "" {
		return nil, 0, entity.ErrInvalidEntryID
	}
	query := &repository.ListHistoryQuery{Pagination: page, EntryID: entryID}
	return u.List(ctx, query)
}

// Revert restores the entry to the before-snapshot of one history record.
// Only the editable payload comes back; identity, authorship and audit
// fields keep their current values, and the revert itself is recorded.
func (u *historyUsecase) Revert(ctx context.Context, actor *entity.User, historyID string) (*entity.Entry, error) {
	if strings.TrimSpace(historyID) == "" {
		return nil, entity.ErrInvalidHistoryID
	}
	h, err := u.histories.GetByID(ctx, historyID)
	if err != nil {
		return nil, err
	}
	if len(h.Before) == 0 {
		return nil, entity.ErrHistoryNotFound
	}

	current, err := u.entries.GetByID(ctx, h.EntryID)
	if err != nil {
		return nil, err
	}
	if current.CreatedBy != actor.ID && !actor.CanReview() {
		return nil, entity.ErrPermissionDenied
	}

	var snapshot entity.Entry
	if err := json.Unmarshal(h.Before, &snapshot); err != nil {
		return nil, err
	}

	before := *current
	next := *current
	next.Headword = snapshot.Headword
	next.Dialect = snapshot.Dialect
	next.Phonetic = snapshot.Phonetic
	next.PhoneticNotation = snapshot.PhoneticNotation
	next.EntryType = snapshot.EntryType
	next.Senses = snapshot.Senses
	next.Refs = snapshot.Refs
	next.Theme = snapshot.Theme
	next.Meta = snapshot.Meta
	next.Status = snapshot.Status
	next.LexemeID = snapshot.LexemeID
	next.MorphemeRefs = snapshot.MorphemeRefs
	next.UpdatedBy = actor.ID

	updated, err := u.entries.Update(ctx, &next)
	if err != nil {
		return nil, err
	}

	rec := &entity.EditHistory{
		EntryID:  updated.ID,
		EditorID: actor.ID,
		Action:   entity.HistoryRevert,
	}
	if data, err := json.Marshal(&before); err == nil {
		rec.Before = data
	}
	if data, err := json.Marshal(updated); err == nil {
		rec.After = data
	}
	if _, err := u.histories.Record(ctx, rec); err != nil {
		u.log.WithError(err).WithField("entry_id", updated.ID).Warn("record revert history")
	}
	return updated, nil
}
