package editor

import (
	"context"
	"testing"
	"time"

	"github.com/eslsoft/jyutcollab/internal/entity"
)

func newTestSession(svc *mockEntryService, kv *memKV) *Session {
	return NewSession(svc, cannedSuggestions(), testTaxonomy(), kv, testLogger(),
		WithSessionDraftOptions(WithDraftDebounce(5*time.Millisecond)),
		WithSessionSuggestOptions(WithSuggestDebounce(5*time.Millisecond)))
}

func pageOf(entries ...*entity.Entry) *entity.EntryPage {
	return &entity.EntryPage{
		Items:   entries,
		Total:   int64(len(entries)),
		Page:    1,
		PerPage: 20,
	}
}

func TestSessionFetchAppliesDrafts(t *testing.T) {
	svc := newMockEntryService()
	server := newEntry("entry-1", "伺服器版本")
	svc.page = pageOf(server)

	kv := newMemKV()
	s := newTestSession(svc, kv)

	// a prior session left a dirty draft of entry-1 and a never-saved entry
	drafted := newEntry("entry-1", "草稿版本")
	drafted.IsDirty = true
	orphan := newTempEntry("未儲存嘅新詞")
	s.Drafts().ScheduleSave([]*entity.Entry{drafted, orphan})
	s.Drafts().Flush()

	if err := s.Fetch(context.Background(), entity.EntryFilter{}); err != nil {
		t.Fatal(err)
	}

	entries := s.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want orphan + fetched", len(entries))
	}
	if entries[0].TempID != orphan.TempID || !entries[0].IsNew {
		t.Errorf("orphan draft should lead the list: %+v", entries[0])
	}
	if entries[1].Headword.Display != "草稿版本" || !entries[1].IsDirty {
		t.Errorf("draft should win over the server copy: %+v", entries[1].Headword)
	}

	// and discard still reaches the pristine server state
	s.DiscardEntry(entries[1])
	if entries[1].Headword.Display != "伺服器版本" {
		t.Errorf("discard = %q, want the fetched baseline", entries[1].Headword.Display)
	}
}

func TestSessionFetchHidesOrphansWhenFiltered(t *testing.T) {
	svc := newMockEntryService()
	svc.page = pageOf()

	kv := newMemKV()
	s := newTestSession(svc, kv)

	orphan := newTempEntry("未儲存")
	s.Drafts().ScheduleSave([]*entity.Entry{orphan})
	s.Drafts().Flush()

	if err := s.Fetch(context.Background(), entity.EntryFilter{Query: "搜尋"}); err != nil {
		t.Fatal(err)
	}
	if len(s.Entries()) != 0 {
		t.Error("orphan drafts only surface on the first unfiltered page")
	}

	if err := s.Fetch(context.Background(), entity.EntryFilter{}); err != nil {
		t.Fatal(err)
	}
	if len(s.Entries()) != 1 {
		t.Error("orphan draft lost: it should reappear on the unfiltered view")
	}
}

func TestSessionFetchFlattensGroups(t *testing.T) {
	svc := newMockEntryService()
	svc.page = &entity.EntryPage{
		Grouped: true,
		Groups: []*entity.EntryGroup{
			{HeadwordDisplay: "戇居", Entries: []*entity.Entry{newEntry("a", "戇居"), newEntry("b", "戇居")}},
			{HeadwordDisplay: "姑娘", Entries: []*entity.Entry{newEntry("c", "姑娘")}},
		},
		Page: 1, PerPage: 20, Total: 3,
	}

	s := newTestSession(svc, newMemKV())
	if err := s.Fetch(context.Background(), entity.EntryFilter{GroupBy: entity.GroupByHeadword}); err != nil {
		t.Fatal(err)
	}
	if len(s.Entries()) != 3 {
		t.Fatalf("entries = %d, want flattened 3", len(s.Entries()))
	}
}

func TestSessionAddEntry(t *testing.T) {
	svc := newMockEntryService()
	s := newTestSession(svc, newMemKV())

	e := s.AddEntry(entity.Dialect{Name: "香港粵語"})
	if e.TempID == "" || !e.IsNew {
		t.Fatalf("new entry flags wrong: %+v", e)
	}
	if len(e.Senses) != 1 {
		t.Error("new entries start with one empty sense")
	}
	if s.Entries()[0] != e {
		t.Error("new entry should lead the working list")
	}
}

func TestSessionSaveNewEntryAdoptsServerID(t *testing.T) {
	svc := newMockEntryService()
	kv := newMemKV()
	s := newTestSession(svc, kv)

	e := s.AddEntry(entity.Dialect{Name: "香港粵語"})
	tempID := e.TempID
	if err := s.SetCell(e, "headword", "戇居"); err != nil {
		t.Fatal(err)
	}
	s.Drafts().Flush()
	if len(s.Drafts().RestoreAll()) != 1 {
		t.Fatal("draft should exist before save")
	}

	if err := s.SaveEntry(context.Background(), e); err != nil {
		t.Fatal(err)
	}

	if e.ID == "" || e.TempID != "" || e.IsNew {
		t.Errorf("entry should adopt its durable id in place: %+v", e)
	}
	if len(s.Drafts().RestoreAll()) != 0 {
		t.Error("draft for the temp id should be removed after save")
	}
	if s.FindByKey(tempID) != nil {
		t.Error("temp id no longer resolves")
	}
	if s.FindByKey(e.ID) != e {
		t.Error("durable id resolves to the same object")
	}

	// the save captured a baseline, so discard now works
	e.Headword.Display = "亂改"
	s.DiscardEntry(e)
	if e.Headword.Display != "戇居" {
		t.Errorf("post-save discard = %q, want saved state", e.Headword.Display)
	}
}

func TestSessionSaveRequiresHeadword(t *testing.T) {
	svc := newMockEntryService()
	s := newTestSession(svc, newMemKV())

	e := s.AddEntry(entity.Dialect{Name: "香港粵語"})
	if err := s.SaveEntry(context.Background(), e); err != entity.ErrEmptyHeadword {
		t.Errorf("err = %v, want ErrEmptyHeadword", err)
	}
}

func TestSessionDiscardNewEntryRemovesIt(t *testing.T) {
	svc := newMockEntryService()
	kv := newMemKV()
	s := newTestSession(svc, kv)

	e := s.AddEntry(entity.Dialect{Name: "香港粵語"})
	if err := s.SetCell(e, "headword", "唔要喇"); err != nil {
		t.Fatal(err)
	}
	s.Drafts().Flush()

	s.DiscardEntry(e)
	if len(s.Entries()) != 0 {
		t.Error("discarded new entry should leave the list")
	}
	if len(s.Drafts().RestoreAll()) != 0 {
		t.Error("its draft should go with it")
	}
}

func TestSessionMarkEditedDirtiesSavedOnly(t *testing.T) {
	svc := newMockEntryService()
	server := newEntry("entry-1", "詞")
	svc.page = pageOf(server)

	s := newTestSession(svc, newMemKV())
	if err := s.Fetch(context.Background(), entity.EntryFilter{}); err != nil {
		t.Fatal(err)
	}

	e := s.Entries()[0]
	s.MarkEdited(e, "definition")
	if !e.IsDirty {
		t.Error("editing a saved entry marks it dirty")
	}

	fresh := s.AddEntry(entity.Dialect{})
	s.MarkEdited(fresh, "definition")
	if fresh.IsDirty {
		t.Error("new entries track via IsNew, not IsDirty")
	}
}

func TestSessionDeleteSelected(t *testing.T) {
	svc := newMockEntryService()
	a, b, c := newEntry("a", "一"), newEntry("b", "二"), newEntry("c", "三")
	svc.page = pageOf(a, b, c)
	for _, e := range []*entity.Entry{a, b, c} {
		svc.store[e.ID] = e
	}

	s := newTestSession(svc, newMemKV())
	if err := s.Fetch(context.Background(), entity.EntryFilter{}); err != nil {
		t.Fatal(err)
	}

	s.Selection().Toggle("a", true)
	s.Selection().Toggle("c", true)
	if err := s.DeleteSelected(context.Background()); err != nil {
		t.Fatal(err)
	}

	entries := s.Entries()
	if len(entries) != 1 || entries[0].ID != "b" {
		t.Fatalf("entries after delete = %d, want only b", len(entries))
	}
	if s.Selection().Count() != 0 {
		t.Error("selection should be empty after a full batch")
	}
}

func TestSessionDeleteSelectedRefreshesAndClearsAllPages(t *testing.T) {
	svc := newMockEntryService()
	a, b := newEntry("a", "一"), newEntry("b", "二")
	svc.page = pageOf(a, b)
	for _, e := range []*entity.Entry{a, b} {
		svc.store[e.ID] = e
	}

	s := newTestSession(svc, newMemKV())
	if err := s.Fetch(context.Background(), entity.EntryFilter{}); err != nil {
		t.Fatal(err)
	}

	// "q" was checked on another page before the user navigated here
	s.Selection().Toggle("q", true)
	s.Selection().Toggle("a", true)
	if err := s.DeleteSelected(context.Background()); err != nil {
		t.Fatal(err)
	}

	if s.Selection().IsSelected("q") {
		t.Error("keys selected on other pages must be cleared too")
	}
	if s.Selection().Count() != 0 {
		t.Errorf("selection count = %d, want 0", s.Selection().Count())
	}
	if svc.fetchCalls != 2 {
		t.Errorf("fetchCalls = %d, want a refetch after the batch", svc.fetchCalls)
	}
	entries := s.Entries()
	if len(entries) != 1 || entries[0].ID != "b" {
		t.Fatalf("entries after delete = %v, want only b", len(entries))
	}
}

func TestSessionSetEditingConsumesPending(t *testing.T) {
	svc := newMockEntryService()
	s := newTestSession(svc, newMemKV())

	e := s.AddEntry(entity.Dialect{Name: "香港粵語"})
	if err := s.SetCell(e, "headword", "戇居"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetCell(e, "phonetic", "ngong6 geoi1"); err != nil {
		t.Fatal(err)
	}

	ref := CellRef{EntryKey: Key(e), Field: "definition"}
	eventually(t, func() bool { return s.Suggest().HasPending(ref) }, "suggestion never became pending")

	s.SetEditing(&ref)
	if s.Suggest().HasPending(ref) {
		t.Error("opening the cell should consume the pending marker")
	}
	if _, ok := s.Suggest().Definition(Key(e)); !ok {
		t.Error("the suggestion itself should survive for inline display")
	}
}
