package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/eslsoft/jyutcollab/internal/entity"
)

func TestSelectionPageScope(t *testing.T) {
	sel := NewSelection()
	pageOne := []*entity.Entry{newEntry("a", "一"), newEntry("b", "二")}
	pageTwo := []*entity.Entry{newEntry("c", "三"), newEntry("d", "四")}

	sel.TogglePage(pageOne, true)
	if !sel.PageChecked(pageOne) {
		t.Fatal("page one should be fully checked")
	}
	if sel.PageChecked(pageTwo) || sel.PageIndeterminate(pageTwo) {
		t.Fatal("page two must be unaffected")
	}

	// deselecting page two's rows must not touch page one
	sel.TogglePage(pageTwo, false)
	if !sel.PageChecked(pageOne) {
		t.Error("page one selection lost by a page-two toggle")
	}

	sel.Toggle("b", false)
	if !sel.PageIndeterminate(pageOne) {
		t.Error("partially selected page should be indeterminate")
	}
	if sel.PageChecked(pageOne) {
		t.Error("partially selected page must not read as checked")
	}
}

func TestSelectionEmptyPage(t *testing.T) {
	sel := NewSelection()
	if sel.PageChecked(nil) {
		t.Error("empty page is never checked")
	}
	if sel.PageIndeterminate(nil) {
		t.Error("empty page is never indeterminate")
	}
}

func TestSelectionUnsavedEntries(t *testing.T) {
	sel := NewSelection()
	e := newTempEntry("未儲存")
	sel.Toggle(Key(e), true)
	if !sel.IsSelected(e.TempID) {
		t.Error("unsaved entries select by temp id")
	}
	sel.Toggle("", true)
	if sel.Count() != 1 {
		t.Error("empty keys must not be selectable")
	}
}

func TestDeleteSelectedSequentialAbort(t *testing.T) {
	svc := newMockEntryService()
	entries := []*entity.Entry{newEntry("p", "甲"), newEntry("q", "乙"), newEntry("r", "丙")}
	for _, e := range entries {
		svc.store[e.ID] = e
	}
	svc.deleteErr = func(id string) error {
		if id == "q" {
			return errors.New("boom")
		}
		return nil
	}

	sel := NewSelection()
	sel.TogglePage(entries, true)

	deleted, err := sel.DeleteSelected(context.Background(), svc, entries, nil)
	if err == nil {
		t.Fatal("expected the failure to surface")
	}
	if len(deleted) != 1 || deleted[0] != "p" {
		t.Fatalf("deleted = %v, want [p]", deleted)
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != "p" {
		t.Fatalf("service deletes = %v, want only p before the abort", svc.deleted)
	}
	// p is gone from the selection; q and r stay selected for a retry
	if sel.IsSelected("p") {
		t.Error("successfully deleted key should leave the selection")
	}
	if !sel.IsSelected("q") || !sel.IsSelected("r") {
		t.Error("unprocessed keys must stay selected")
	}
}

func TestDeleteSelectedSkipsUnselected(t *testing.T) {
	svc := newMockEntryService()
	entries := []*entity.Entry{newEntry("p", "甲"), newEntry("q", "乙")}
	for _, e := range entries {
		svc.store[e.ID] = e
	}

	sel := NewSelection()
	sel.Toggle("q", true)

	deleted, err := sel.DeleteSelected(context.Background(), svc, entries, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(deleted) != 1 || deleted[0] != "q" {
		t.Fatalf("deleted = %v, want [q]", deleted)
	}
}

func TestDeleteSelectedIgnoresUnsavedEntries(t *testing.T) {
	svc := newMockEntryService()
	kv := newMemKV()
	drafts := newTestDraftStore(kv)

	e := newTempEntry("未儲存")
	drafts.ScheduleSave([]*entity.Entry{e})
	drafts.Flush()

	sel := NewSelection()
	sel.Toggle(Key(e), true)

	deleted, err := sel.DeleteSelected(context.Background(), svc, []*entity.Entry{e}, drafts)
	if err != nil {
		t.Fatal(err)
	}
	if len(deleted) != 0 {
		t.Fatalf("deleted = %v, want nothing", deleted)
	}
	if len(svc.deleted) != 0 {
		t.Error("unsaved entry must not hit the server")
	}
	// the row was never the server's, so its draft survives
	if len(drafts.RestoreAll()) != 1 {
		t.Error("draft of an unsaved row must stay")
	}
}
