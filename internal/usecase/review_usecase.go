package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/eslsoft/jyutcollab/internal/entity"
	"github.com/eslsoft/jyutcollab/internal/repository"
	"github.com/sirupsen/logrus"
)

// ReviewUsecase defines the review workflow for submitted entries.
type ReviewUsecase interface {
	ListPending(ctx context.Context, query *repository.ListEntryQuery) ([]*entity.Entry, int64, error)
	Approve(ctx context.Context, actor *entity.User, entryID, notes string) (*entity.Entry, error)
	Reject(ctx context.Context, actor *entity.User, entryID, notes string) (*entity.Entry, error)
}

type reviewUsecase struct {
	repo      repository.EntryRepository
	histories repository.HistoryRepository
	log       logrus.FieldLogger
}

func NewReviewUsecase(repo repository.EntryRepository, histories repository.HistoryRepository, log logrus.FieldLogger) ReviewUsecase {
	return &reviewUsecase{repo: repo, histories: histories, log: log}
}

func (u *reviewUsecase) ListPending(ctx context.Context, query *repository.ListEntryQuery) ([]*entity.Entry, int64, error) {
	if query == nil {
		query = &repository.ListEntryQuery{}
	}
	query.Status = entity.StatusPendingReview
	if query.PageNo <= 0 {
		query.PageNo = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = _defaultPageSize
	}
	return u.repo.List(ctx, query)
}

func (u *reviewUsecase) Approve(ctx context.Context, actor *entity.User, entryID, notes string) (*entity.Entry, error) {
	return u.decide(ctx, actor, entryID, notes, entity.StatusApproved, entity.HistoryReviewApprove)
}

func (u *reviewUsecase) Reject(ctx context.Context, actor *entity.User, entryID, notes string) (*entity.Entry, error) {
	return u.decide(ctx, actor, entryID, notes, entity.StatusRejected, entity.HistoryReviewReject)
}

// decide races other reviewers on the same entry; the repository's CAS on
// pending_review settles it, and the loser sees ErrReviewConflict.
func (u *reviewUsecase) decide(ctx context.Context, actor *entity.User, entryID, notes string, to entity.EntryStatus, action entity.HistoryAction) (*entity.Entry, error) {
	if strings.TrimSpace(entryID) == "" {
		return nil, entity.ErrInvalidEntryID
	}
	if !actor.CanReview() {
		return nil, entity.ErrPermissionDenied
	}

	updated, err := u.repo.UpdateStatusCAS(ctx, entryID, entity.StatusPendingReview, to, actor.ID, strings.TrimSpace(notes))
	if err != nil {
		return nil, err
	}

	h := &entity.EditHistory{
		EntryID:       entryID,
		EditorID:      actor.ID,
		Action:        action,
		ChangedFields: []string{"status", "reviewNotes"},
	}
	if data, err := json.Marshal(updated); err == nil {
		h.After = data
	}
	if _, err := u.histories.Record(ctx, h); err != nil {
		u.log.WithError(err).WithField("entry_id", entryID).Warn("record review history")
	}
	return updated, nil
}
