package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/eslsoft/jyutcollab/internal/entity"
)

func pendingEntry(repo *mockEntryRepo) *entity.Entry {
	e := sampleEntry()
	e.Status = entity.StatusPendingReview
	created, _ := repo.Create(context.Background(), e)
	return created
}

func TestReviewApprove(t *testing.T) {
	repo := newMockEntryRepo()
	histories := &mockHistoryRepo{}
	uc := NewReviewUsecase(repo, histories, quietLogger())

	e := pendingEntry(repo)
	approved, err := uc.Approve(context.Background(), reviewer(), e.ID, "無問題")
	if err != nil {
		t.Fatal(err)
	}
	if approved.Status != entity.StatusApproved {
		t.Errorf("status = %q", approved.Status)
	}
	if approved.ReviewedBy != "u2" || approved.ReviewNotes != "無問題" {
		t.Errorf("review stamp = %q/%q", approved.ReviewedBy, approved.ReviewNotes)
	}
	if len(histories.records) != 1 || histories.records[0].Action != entity.HistoryReviewApprove {
		t.Errorf("history = %+v", histories.records)
	}
}

func TestReviewConflict(t *testing.T) {
	repo := newMockEntryRepo()
	uc := NewReviewUsecase(repo, &mockHistoryRepo{}, quietLogger())

	e := pendingEntry(repo)
	if _, err := uc.Approve(context.Background(), reviewer(), e.ID, ""); err != nil {
		t.Fatal(err)
	}
	// the second reviewer loses the compare-and-swap
	if _, err := uc.Reject(context.Background(), reviewer(), e.ID, "唔收"); !errors.Is(err, entity.ErrReviewConflict) {
		t.Fatalf("err = %v, want ErrReviewConflict", err)
	}
}

func TestReviewRequiresReviewer(t *testing.T) {
	repo := newMockEntryRepo()
	uc := NewReviewUsecase(repo, &mockHistoryRepo{}, quietLogger())

	e := pendingEntry(repo)
	if _, err := uc.Approve(context.Background(), contributor(), e.ID, ""); !errors.Is(err, entity.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
	if repo.casCalls != 0 {
		t.Error("permission check must come before the CAS")
	}
}

func TestReviewListPendingForcesStatus(t *testing.T) {
	repo := newMockEntryRepo()
	uc := NewReviewUsecase(repo, &mockHistoryRepo{}, quietLogger())

	if _, _, err := uc.ListPending(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
}

func TestReviewReject(t *testing.T) {
	repo := newMockEntryRepo()
	histories := &mockHistoryRepo{}
	uc := NewReviewUsecase(repo, histories, quietLogger())

	e := pendingEntry(repo)
	rejected, err := uc.Reject(context.Background(), reviewer(), e.ID, "釋義唔清楚")
	if err != nil {
		t.Fatal(err)
	}
	if rejected.Status != entity.StatusRejected {
		t.Errorf("status = %q", rejected.Status)
	}
	if len(histories.records) != 1 || histories.records[0].Action != entity.HistoryReviewReject {
		t.Errorf("history = %+v", histories.records)
	}
}
