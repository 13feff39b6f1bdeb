package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/eslsoft/jyutcollab/internal/entity"
	"github.com/eslsoft/jyutcollab/internal/taxonomy"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func testTaxonomy() *taxonomy.Taxonomy {
	return taxonomy.New()
}

// memKV is an in-memory KV with an optional fault injected on Put.
type memKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	putErrs int // fail this many Puts before succeeding
	puts    int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErrs > 0 {
		m.putErrs--
		return errors.New("storage quota exceeded")
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// mockEntryService is a hand-rolled EntryService with per-call hooks.
type mockEntryService struct {
	mu         sync.Mutex
	nextID     int
	store      map[string]*entity.Entry
	page       *entity.EntryPage
	deleted    []string
	fetchCalls int

	fetchErr  error
	deleteErr func(id string) error
}

func newMockEntryService() *mockEntryService {
	return &mockEntryService{store: make(map[string]*entity.Entry)}
}

func (m *mockEntryService) Fetch(_ context.Context, _ entity.EntryFilter) (*entity.EntryPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if m.page != nil {
		// deleted entries no longer show up on subsequent fetches
		page := *m.page
		page.Items = lo.Filter(m.page.Items, func(e *entity.Entry, _ int) bool {
			return !lo.Contains(m.deleted, e.ID)
		})
		return &page, nil
	}
	return &entity.EntryPage{Page: 1, PerPage: 20}, nil
}

func (m *mockEntryService) Create(_ context.Context, e *entity.Entry) (*entity.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	created := *e
	created.ID = fmt.Sprintf("entry-%d", m.nextID)
	created.TempID = ""
	created.IsNew = false
	created.IsDirty = false
	m.store[created.ID] = &created
	out := created
	return &out, nil
}

func (m *mockEntryService) Update(_ context.Context, id string, _ *entity.EntryPatch) (*entity.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.store[id]
	if !ok {
		return nil, entity.ErrEntryNotFound
	}
	out := *e
	return &out, nil
}

func (m *mockEntryService) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		if err := m.deleteErr(id); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, id)
	delete(m.store, id)
	return nil
}

func (m *mockEntryService) CheckDuplicate(_ context.Context, _, _ string) ([]*entity.Entry, error) {
	return nil, nil
}

// mockSuggestionService returns canned answers and records calls.
type mockSuggestionService struct {
	mu sync.Mutex

	definition    DefinitionSuggestion
	definitionErr error
	theme         Categorization
	themeErr      error
	examples      []ExampleSuggestion
	examplesErr   error

	defCalls   int
	themeCalls int

	// beforeReturn runs inside each call before returning, letting tests
	// mutate state while a request is "in flight".
	beforeReturn func(ctx context.Context)
}

func (m *mockSuggestionService) SuggestDefinition(ctx context.Context, _ SuggestionRequest) (*DefinitionSuggestion, error) {
	m.mu.Lock()
	m.defCalls++
	hook := m.beforeReturn
	def, err := m.definition, m.definitionErr
	m.mu.Unlock()
	if hook != nil {
		hook(ctx)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	out := def
	return &out, nil
}

func (m *mockSuggestionService) Categorize(ctx context.Context, _ SuggestionRequest) (*Categorization, error) {
	m.mu.Lock()
	m.themeCalls++
	cat, err := m.theme, m.themeErr
	m.mu.Unlock()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	out := cat
	return &out, nil
}

func (m *mockSuggestionService) SuggestExamples(ctx context.Context, _ SuggestionRequest) ([]ExampleSuggestion, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if m.examplesErr != nil {
		return nil, m.examplesErr
	}
	return m.examples, nil
}

func (m *mockSuggestionService) calls() (def, theme int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.defCalls, m.themeCalls
}

func newEntry(id, headword string) *entity.Entry {
	e := &entity.Entry{
		ID:        id,
		EntryType: entity.EntryTypeWord,
		Dialect:   entity.Dialect{Name: "香港粵語"},
		Status:    entity.StatusDraft,
	}
	e.Headword.Display = headword
	e.Headword.Normalized = headword
	e.EnsureSenses()
	return e
}

func newTempEntry(headword string) *entity.Entry {
	e := newEntry("", headword)
	e.TempID = NewTempID()
	e.IsNew = true
	return e
}

// eventually polls cond until it holds or the deadline passes.
func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}
