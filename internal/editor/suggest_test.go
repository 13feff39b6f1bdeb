package editor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/eslsoft/jyutcollab/internal/entity"
)

// suggestHarness pins a coordinator to a mutable entry list.
type suggestHarness struct {
	mu      sync.Mutex
	entries map[string]*entity.Entry
	active  *CellRef
	svc     *mockSuggestionService
	coord   *Coordinator
}

func newSuggestHarness(svc *mockSuggestionService) *suggestHarness {
	h := &suggestHarness{entries: make(map[string]*entity.Entry), svc: svc}
	lookup := func(key string) *entity.Entry {
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.entries[key]
	}
	activeCell := func() (CellRef, bool) {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.active == nil {
			return CellRef{}, false
		}
		return *h.active, true
	}
	h.coord = NewCoordinator(svc, testTaxonomy(), lookup, activeCell, testLogger(),
		WithSuggestDebounce(5*time.Millisecond))
	return h
}

func (h *suggestHarness) add(e *entity.Entry) {
	h.mu.Lock()
	h.entries[Key(e)] = e
	h.mu.Unlock()
}

func (h *suggestHarness) remove(key string) {
	h.mu.Lock()
	delete(h.entries, key)
	h.mu.Unlock()
}

func cannedSuggestions() *mockSuggestionService {
	return &mockSuggestionService{
		definition: DefinitionSuggestion{
			Definition:     "形容人愚蠢、遲鈍",
			UsageNotes:     "貶義，朋輩之間先好用",
			FormalityLevel: "informal",
		},
		theme: Categorization{ThemeID: 66, Confidence: 0.92, Explanation: "指涉人物"},
	}
}

func TestAutoSuggestDeliversBothResults(t *testing.T) {
	svc := cannedSuggestions()
	h := newSuggestHarness(svc)

	e := newTempEntry("戇居")
	h.add(e)
	key := Key(e)

	h.coord.EditField(e, "phonetic")

	eventually(t, func() bool {
		_, ok := h.coord.Definition(key)
		return ok
	}, "definition suggestion never arrived")

	def, _ := h.coord.Definition(key)
	if def.Err != nil {
		t.Fatalf("unexpected error state: %v", def.Err)
	}
	if def.Suggestion.Definition != "形容人愚蠢、遲鈍" {
		t.Errorf("definition = %q", def.Suggestion.Definition)
	}

	theme, ok := h.coord.Theme(key)
	if !ok {
		t.Fatal("theme suggestion missing")
	}
	if theme.Theme.Level3ID != 66 || theme.Theme.Level3 != "成年女性" {
		t.Errorf("theme = %+v, want resolved leaf 66", theme.Theme)
	}

	// nobody had the cells open, so both land in the pending inbox
	if !h.coord.HasPending(CellRef{EntryKey: key, Field: "definition"}) {
		t.Error("definition should be pending")
	}
	if !h.coord.HasPending(CellRef{EntryKey: key, Field: "theme"}) {
		t.Error("theme should be pending")
	}
}

func TestAutoSuggestTriggerConditions(t *testing.T) {
	svc := cannedSuggestions()
	h := newSuggestHarness(svc)

	saved := newEntry("entry-1", "舊詞")
	h.add(saved)
	h.coord.EditField(saved, "phonetic") // saved entries never trigger

	fresh := newTempEntry("")
	h.add(fresh)
	h.coord.EditField(fresh, "phonetic") // no headword yet

	named := newTempEntry("有詞頭")
	h.add(named)
	h.coord.EditField(named, "definition") // wrong field

	time.Sleep(50 * time.Millisecond)
	if def, theme := svc.calls(); def != 0 || theme != 0 {
		t.Fatalf("calls = (%d,%d), want none", def, theme)
	}
}

func TestAutoSuggestDebounceLastEditWins(t *testing.T) {
	svc := cannedSuggestions()
	h := newSuggestHarness(svc)

	e := newTempEntry("戇居")
	h.add(e)

	h.coord.EditField(e, "phonetic")
	h.coord.EditField(e, "phonetic")
	h.coord.EditField(e, "phonetic")

	eventually(t, func() bool {
		_, ok := h.coord.Definition(Key(e))
		return ok
	}, "suggestion never arrived")

	if def, _ := svc.calls(); def != 1 {
		t.Errorf("definition calls = %d, want 1 for a burst of edits", def)
	}
}

func TestAutoSuggestSupersededRunKeepsSuccessorAlive(t *testing.T) {
	svc := cannedSuggestions()
	h := newSuggestHarness(svc)

	e := newTempEntry("戇居")
	h.add(e)
	key := Key(e)

	// hold the first request open so a second edit supersedes it mid-flight
	firstInFlight := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	svc.beforeReturn = func(context.Context) {
		held := false
		once.Do(func() {
			held = true
			close(firstInFlight)
		})
		if held {
			<-release
		}
	}

	h.coord.EditField(e, "phonetic")
	<-firstInFlight

	h.coord.EditField(e, "phonetic")
	eventually(t, func() bool {
		def, _ := svc.calls()
		return def >= 2
	}, "second request never went out")
	close(release)

	eventually(t, func() bool {
		def, ok := h.coord.Definition(key)
		return ok && def.Err == nil
	}, "live run's suggestion was lost when the old one wound down")

	eventually(t, func() bool { return !h.coord.InlineLoading(key) },
		"loading flag should clear once the live run completes")
}

func TestAutoSuggestStalenessGuard(t *testing.T) {
	svc := cannedSuggestions()
	h := newSuggestHarness(svc)

	e := newTempEntry("戇居")
	h.add(e)
	key := Key(e)

	// while the request is in flight the user rewrites the headword
	svc.beforeReturn = func(context.Context) {
		h.mu.Lock()
		e.Headword.Display = "另一個詞"
		h.mu.Unlock()
	}

	h.coord.EditField(e, "phonetic")

	eventually(t, func() bool {
		def, _ := svc.calls()
		return def >= 1 && !h.coord.InlineLoading(key)
	}, "pipeline never completed")

	if _, ok := h.coord.Definition(key); ok {
		t.Error("stale suggestion must be discarded when the headword changed")
	}
	if _, ok := h.coord.Theme(key); ok {
		t.Error("stale theme must be discarded too")
	}
}

func TestAutoSuggestEntryRemovedWhileInFlight(t *testing.T) {
	svc := cannedSuggestions()
	h := newSuggestHarness(svc)

	e := newTempEntry("戇居")
	h.add(e)
	key := Key(e)

	svc.beforeReturn = func(context.Context) { h.remove(key) }

	h.coord.EditField(e, "phonetic")

	eventually(t, func() bool {
		def, _ := svc.calls()
		return def >= 1 && !h.coord.InlineLoading(key)
	}, "pipeline never completed")

	if _, ok := h.coord.Definition(key); ok {
		t.Error("suggestion for a removed entry must be discarded")
	}
}

func TestCategorizeFailureIsNonFatal(t *testing.T) {
	svc := cannedSuggestions()
	svc.themeErr = errors.New("upstream unavailable")
	h := newSuggestHarness(svc)

	e := newTempEntry("戇居")
	h.add(e)
	key := Key(e)

	h.coord.EditField(e, "phonetic")

	eventually(t, func() bool {
		_, ok := h.coord.Definition(key)
		return ok
	}, "definition should still arrive")

	if _, ok := h.coord.Theme(key); ok {
		t.Error("failed categorization must not store a theme")
	}
}

func TestAcceptDefinitionAppliesAllFields(t *testing.T) {
	svc := cannedSuggestions()
	h := newSuggestHarness(svc)

	e := newTempEntry("戇居")
	h.add(e)
	key := Key(e)

	if err := h.coord.GenerateDefinition(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	if !h.coord.AcceptDefinition(e) {
		t.Fatal("accept should succeed")
	}

	if e.Senses[0].Definition != "形容人愚蠢、遲鈍" {
		t.Errorf("definition = %q", e.Senses[0].Definition)
	}
	if e.Meta.Usage != "貶義，朋輩之間先好用" {
		t.Errorf("usage = %q", e.Meta.Usage)
	}
	if e.Meta.Register != entity.RegisterColloquial {
		t.Errorf("register = %q, want informal → 口語", e.Meta.Register)
	}
	if _, ok := h.coord.Definition(key); ok {
		t.Error("accepting consumes the suggestion")
	}
	if h.coord.AcceptDefinition(e) {
		t.Error("second accept must be a no-op")
	}
}

func TestFormalityMapping(t *testing.T) {
	tests := []struct {
		level string
		want  entity.Register
		ok    bool
	}{
		{"formal", entity.RegisterRefined, true},
		{"neutral", entity.RegisterNeutral, true},
		{"informal", entity.RegisterColloquial, true},
		{"slang", entity.RegisterColloquial, true},
		{"vulgar", entity.RegisterVulgar, true},
		{"", "", false},
		{"whatever", "", false},
	}
	for _, tt := range tests {
		got, ok := registerFromFormality(tt.level)
		if got != tt.want || ok != tt.ok {
			t.Errorf("registerFromFormality(%q) = (%q,%v), want (%q,%v)", tt.level, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAcceptThemeIsAtomic(t *testing.T) {
	svc := cannedSuggestions()
	h := newSuggestHarness(svc)

	e := newTempEntry("姑娘")
	h.add(e)

	if err := h.coord.GenerateTheme(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	if !h.coord.AcceptTheme(e) {
		t.Fatal("accept should succeed")
	}

	want := entity.Theme{
		Level1:   "人物",
		Level2:   "孩子、男孩子、青少年",
		Level3:   "成年女性",
		Level1ID: 1,
		Level2ID: 512,
		Level3ID: 66,
	}
	if e.Theme != want {
		t.Errorf("theme = %+v, want %+v", e.Theme, want)
	}
}

func TestAcceptingSuggestionsMarksEntryDirty(t *testing.T) {
	svc := cannedSuggestions()
	svc.examples = []ExampleSuggestion{{Text: "佢真係戇居", Translation: "He is really silly"}}
	h := newSuggestHarness(svc)

	e := newEntry("entry-9", "戇居")
	h.add(e)

	if err := h.coord.GenerateDefinition(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	if !h.coord.AcceptDefinition(e) {
		t.Fatal("accept should succeed")
	}
	if !e.IsDirty {
		t.Error("accepting a definition leaves unsaved changes on the entry")
	}

	e.IsDirty = false
	if err := h.coord.GenerateTheme(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	if !h.coord.AcceptTheme(e) {
		t.Fatal("accept should succeed")
	}
	if !e.IsDirty {
		t.Error("accepting a theme leaves unsaved changes on the entry")
	}

	e.IsDirty = false
	if err := h.coord.GenerateExamples(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	if !e.IsDirty {
		t.Error("generated examples leave unsaved changes on the entry")
	}
}

func TestPendingClearsWhenCellOpens(t *testing.T) {
	svc := cannedSuggestions()
	h := newSuggestHarness(svc)

	e := newTempEntry("戇居")
	h.add(e)
	key := Key(e)

	h.coord.EditField(e, "phonetic")
	ref := CellRef{EntryKey: key, Field: "definition"}
	eventually(t, func() bool { return h.coord.HasPending(ref) }, "nothing became pending")

	h.coord.OpenCell(ref)
	if h.coord.HasPending(ref) {
		t.Error("opening the cell consumes the pending marker")
	}
	// the suggestion itself survives for inline display
	if _, ok := h.coord.Definition(key); !ok {
		t.Error("suggestion should remain after opening the cell")
	}
}

func TestSuggestionDeliversInlineWhenCellOpen(t *testing.T) {
	svc := cannedSuggestions()
	h := newSuggestHarness(svc)

	e := newTempEntry("戇居")
	h.add(e)
	key := Key(e)

	ref := CellRef{EntryKey: key, Field: "definition"}
	h.mu.Lock()
	h.active = &ref
	h.mu.Unlock()

	h.coord.EditField(e, "phonetic")

	eventually(t, func() bool {
		_, ok := h.coord.Definition(key)
		return ok
	}, "definition never arrived")

	if h.coord.HasPending(ref) {
		t.Error("a suggestion for the open cell must not be marked pending")
	}
}

func TestGenerateExamplesAppendsToFirstSense(t *testing.T) {
	svc := cannedSuggestions()
	svc.examples = []ExampleSuggestion{
		{Text: "佢做嘢戇居居噉", Translation: "He works in a clueless way", Scenario: "日常"},
	}
	h := newSuggestHarness(svc)

	e := newTempEntry("戇居")
	e.Senses[0].Definition = "形容人愚蠢"
	h.add(e)

	if err := h.coord.GenerateExamples(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	if len(e.Senses[0].Examples) != 1 {
		t.Fatalf("examples = %d, want 1", len(e.Senses[0].Examples))
	}
	ex := e.Senses[0].Examples[0]
	if ex.Source != entity.SourceAIGenerated {
		t.Errorf("source = %q, want ai_generated", ex.Source)
	}
	if ex.Text != "佢做嘢戇居居噉" {
		t.Errorf("text = %q", ex.Text)
	}
}

func TestGenerateRequiresHeadword(t *testing.T) {
	h := newSuggestHarness(cannedSuggestions())
	e := newTempEntry("")
	h.add(e)

	if err := h.coord.GenerateDefinition(context.Background(), e); err != entity.ErrEmptyHeadword {
		t.Errorf("err = %v, want ErrEmptyHeadword", err)
	}
}
