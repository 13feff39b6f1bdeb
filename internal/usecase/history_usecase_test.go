package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/eslsoft/jyutcollab/internal/entity"
)

func TestHistoryRevert(t *testing.T) {
	repo := newMockEntryRepo()
	histories := &mockHistoryRepo{}
	entries := NewEntryUsecase(repo, histories, nil, quietLogger())
	uc := NewHistoryUsecase(histories, repo, quietLogger())
	actor := contributor()

	created, err := entries.Create(context.Background(), actor, sampleEntry())
	if err != nil {
		t.Fatal(err)
	}

	hw := entity.Headword{Display: "改錯咗"}
	updated, err := entries.Update(context.Background(), actor, created.ID, &entity.EntryPatch{Headword: &hw})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Headword.Display != "改錯咗" {
		t.Fatal("update did not apply")
	}

	// revert the update record: its before-snapshot is the original
	var updateRecord *entity.EditHistory
	for _, h := range histories.records {
		if h.Action == entity.HistoryUpdate {
			updateRecord = h
		}
	}
	if updateRecord == nil {
		t.Fatal("no update history recorded")
	}

	reverted, err := uc.Revert(context.Background(), actor, updateRecord.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reverted.Headword.Display != "戇居" {
		t.Errorf("headword = %q, want original", reverted.Headword.Display)
	}
	if last := histories.records[len(histories.records)-1]; last.Action != entity.HistoryRevert {
		t.Errorf("last history action = %q, want revert", last.Action)
	}
}

func TestHistoryRevertCreateRecordFails(t *testing.T) {
	repo := newMockEntryRepo()
	histories := &mockHistoryRepo{}
	entries := NewEntryUsecase(repo, histories, nil, quietLogger())
	uc := NewHistoryUsecase(histories, repo, quietLogger())
	actor := contributor()

	if _, err := entries.Create(context.Background(), actor, sampleEntry()); err != nil {
		t.Fatal(err)
	}

	// the create record has no before-snapshot to restore
	createRecord := histories.records[0]
	if _, err := uc.Revert(context.Background(), actor, createRecord.ID); !errors.Is(err, entity.ErrHistoryNotFound) {
		t.Fatalf("err = %v, want ErrHistoryNotFound", err)
	}
}

func TestHistoryRevertPermission(t *testing.T) {
	repo := newMockEntryRepo()
	histories := &mockHistoryRepo{}
	entries := NewEntryUsecase(repo, histories, nil, quietLogger())
	uc := NewHistoryUsecase(histories, repo, quietLogger())
	actor := contributor()

	created, err := entries.Create(context.Background(), actor, sampleEntry())
	if err != nil {
		t.Fatal(err)
	}
	hw := entity.Headword{Display: "改過"}
	if _, err := entries.Update(context.Background(), actor, created.ID, &entity.EntryPatch{Headword: &hw}); err != nil {
		t.Fatal(err)
	}

	other := &entity.User{ID: "u9", Role: entity.RoleContributor}
	var updateRecord *entity.EditHistory
	for _, h := range histories.records {
		if h.Action == entity.HistoryUpdate {
			updateRecord = h
		}
	}
	if _, err := uc.Revert(context.Background(), other, updateRecord.ID); !errors.Is(err, entity.ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
}
