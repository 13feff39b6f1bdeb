package editor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eslsoft/jyutcollab/internal/entity"
	"github.com/eslsoft/jyutcollab/internal/taxonomy"

	"github.com/sirupsen/logrus"
)

// Session is one user's editing view over the entry list: the fetched page
// merged with locally drafted edits, the baseline snapshots backing discard,
// the suggestion coordinator and the batch selection. A Session owns its
// working list; the pointers it hands out stay valid until the next Fetch.
type Session struct {
	svc       EntryService
	baselines *Baselines
	drafts    *DraftStore
	suggest   *Coordinator
	selection *Selection
	columns   *Columns
	log       logrus.FieldLogger

	mu      sync.Mutex
	entries []*entity.Entry
	page    *entity.EntryPage
	filter  entity.EntryFilter
	editing *CellRef
}

// SessionOption tweaks session construction.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	draftOpts      []DraftOption
	suggestOpts    []CoordinatorOption
	dialectOptions func() []ColumnOption
	statusOptions  func() []ColumnOption
}

func WithSessionDraftOptions(opts ...DraftOption) SessionOption {
	return func(c *sessionConfig) { c.draftOpts = append(c.draftOpts, opts...) }
}

func WithSessionSuggestOptions(opts ...CoordinatorOption) SessionOption {
	return func(c *sessionConfig) { c.suggestOpts = append(c.suggestOpts, opts...) }
}

func WithDialectOptions(fn func() []ColumnOption) SessionOption {
	return func(c *sessionConfig) { c.dialectOptions = fn }
}

func WithStatusOptions(fn func() []ColumnOption) SessionOption {
	return func(c *sessionConfig) { c.statusOptions = fn }
}

func NewSession(entries EntryService, suggestions SuggestionService, tax *taxonomy.Taxonomy, kv KV, log logrus.FieldLogger, opts ...SessionOption) *Session {
	var cfg sessionConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &Session{
		svc:       entries,
		baselines: NewBaselines(),
		drafts:    NewDraftStore(kv, log, cfg.draftOpts...),
		selection: NewSelection(),
		columns:   NewColumns(tax, cfg.dialectOptions, cfg.statusOptions),
		log:       log,
	}
	s.suggest = NewCoordinator(suggestions, tax, s.FindByKey, s.activeCell, log, cfg.suggestOpts...)
	return s
}

func (s *Session) Columns() *Columns       { return s.columns }
func (s *Session) Selection() *Selection   { return s.selection }
func (s *Session) Suggest() *Coordinator   { return s.suggest }
func (s *Session) Drafts() *DraftStore     { return s.drafts }
func (s *Session) Page() *entity.EntryPage { return s.page }

// Entries returns the current working list.
func (s *Session) Entries() []*entity.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries
}

// Fetch loads a page from the server and reconciles it with local drafts.
// Server rows are the baseline truth; drafted edits win over them field by
// field. Drafts for entries not on this page are left alone, except that
// never-saved drafts surface at the top of the first unfiltered page so an
// interrupted session picks up where it stopped.
func (s *Session) Fetch(ctx context.Context, filter entity.EntryFilter) error {
	filter.Normalize()
	page, err := s.svc.Fetch(ctx, filter)
	if err != nil {
		return fmt.Errorf("fetch entries: %w", err)
	}

	fetched := page.Items
	if page.Grouped {
		fetched = flattenGroups(page.Groups)
	}
	for _, e := range fetched {
		e.IsNew = false
		e.IsDirty = false
		e.TempID = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.baselines.Reset(fetched)

	byID := make(map[string]*entity.Entry, len(fetched))
	for _, e := range fetched {
		if e.ID != "" {
			byID[e.ID] = e
		}
	}

	var orphans []*entity.Entry
	for _, draft := range s.drafts.RestoreAll() {
		if target, ok := byID[draft.ID]; ok && draft.ID != "" {
			s.baselines.ApplyDraft(target, draft)
			continue
		}
		if !draft.Saved() && showOrphans(filter) {
			draft.IsNew = true
			orphans = append(orphans, draft)
		}
	}

	s.entries = append(orphans, fetched...)
	s.page = page
	s.filter = filter
	s.editing = nil
	return nil
}

// showOrphans reports whether never-saved drafts belong on this view: only
// the first page with no search or filters active.
func showOrphans(filter entity.EntryFilter) bool {
	return filter.Page <= 1 &&
		filter.Query == "" &&
		filter.Dialect == "" &&
		filter.Status == "" &&
		filter.ThemeL3ID == 0 &&
		filter.CreatedBy == ""
}

func flattenGroups(groups []*entity.EntryGroup) []*entity.Entry {
	var out []*entity.Entry
	for _, g := range groups {
		out = append(out, g.Entries...)
	}
	return out
}

// FindByKey resolves an identity key against the working list.
func (s *Session) FindByKey(key string) *entity.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(key)
}

func (s *Session) findLocked(key string) *entity.Entry {
	if key == "" {
		return nil
	}
	for _, e := range s.entries {
		if e.ID == key || e.TempID == key {
			return e
		}
	}
	return nil
}

// AddEntry prepends a blank unsaved entry with a fresh temporary id.
func (s *Session) AddEntry(dialect entity.Dialect) *entity.Entry {
	e := &entity.Entry{
		TempID:    NewTempID(),
		EntryType: entity.EntryTypeWord,
		Dialect:   dialect,
		Status:    entity.StatusDraft,
		IsNew:     true,
		CreatedAt: time.Now(),
	}
	e.EnsureSenses()

	s.mu.Lock()
	s.entries = append([]*entity.Entry{e}, s.entries...)
	s.mu.Unlock()

	s.scheduleDraftSave()
	return e
}

// SetCell writes an edited value through the column model and records the
// edit: the entry turns dirty, the draft save re-arms, and the suggestion
// pipeline observes the change.
func (s *Session) SetCell(e *entity.Entry, columnKey, value string) error {
	col, ok := s.columns.ByKey(columnKey)
	if !ok {
		return fmt.Errorf("unknown column %q", columnKey)
	}
	col.Set(e, value)
	s.MarkEdited(e, columnKey)
	return nil
}

// MarkEdited flags an entry as locally modified and kicks the follow-on
// machinery without writing any field itself.
func (s *Session) MarkEdited(e *entity.Entry, field string) {
	if e.Saved() {
		e.IsDirty = true
	}
	s.scheduleDraftSave()
	s.suggest.EditField(e, field)
}

func (s *Session) scheduleDraftSave() {
	s.mu.Lock()
	entries := s.entries
	s.mu.Unlock()
	s.drafts.ScheduleSave(entries)
}

// SetEditing records which cell the user has open; nil closes the editor.
// Opening a cell consumes any pending suggestion waiting on it.
func (s *Session) SetEditing(ref *CellRef) {
	s.mu.Lock()
	s.editing = ref
	s.mu.Unlock()
	if ref != nil {
		s.suggest.OpenCell(*ref)
	}
}

func (s *Session) activeCell() (CellRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing == nil {
		return CellRef{}, false
	}
	return *s.editing, true
}

// SaveEntry pushes one entry to the server. A never-saved entry is created
// and adopts its durable id in place; a saved entry sends a full patch. In
// both cases the local draft for the entry is dropped and the baseline moves
// to the saved state.
func (s *Session) SaveEntry(ctx context.Context, e *entity.Entry) error {
	if !e.Savable() {
		return entity.ErrEmptyHeadword
	}

	if !e.Saved() {
		tempID := e.TempID
		created, err := s.svc.Create(ctx, e)
		if err != nil {
			return fmt.Errorf("create entry: %w", err)
		}
		s.mu.Lock()
		*e = *created
		e.TempID = ""
		e.IsNew = false
		e.IsDirty = false
		s.mu.Unlock()

		s.drafts.Remove(tempID)
		s.suggest.Discard(tempID)
		s.selection.Toggle(tempID, false)
		s.baselines.Capture(e)
		return nil
	}

	updated, err := s.svc.Update(ctx, e.ID, entity.PatchFromEntry(e))
	if err != nil {
		return fmt.Errorf("update entry %s: %w", e.ID, err)
	}
	s.mu.Lock()
	id := e.ID
	*e = *updated
	e.IsDirty = false
	s.mu.Unlock()

	s.drafts.Remove(id)
	s.baselines.Capture(e)
	return nil
}

// DiscardEntry undoes local edits: a saved entry snaps back to its baseline
// snapshot, a never-saved entry disappears from the list. Either way its
// draft, suggestions and selection state go too.
func (s *Session) DiscardEntry(e *entity.Entry) {
	key := Key(e)

	if e.Saved() {
		s.mu.Lock()
		restored := s.baselines.Restore(e)
		s.mu.Unlock()
		if !restored {
			s.log.WithField("entry_id", e.ID).Warn("no baseline for entry, keeping edits")
		}
	} else {
		s.mu.Lock()
		for i, cur := range s.entries {
			if Key(cur) == key {
				s.entries = append(s.entries[:i], s.entries[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}

	s.drafts.Remove(key)
	s.suggest.Discard(key)
	s.selection.Toggle(key, false)
}

// DeleteSelected removes the selected saved entries sequentially, stopping
// on the first failure. A full batch ends with a refetch of the current page
// and an empty selection, dropping keys selected on other pages too; a
// partial batch keeps the unprocessed keys selected for a retry.
func (s *Session) DeleteSelected(ctx context.Context) error {
	s.mu.Lock()
	entries := s.entries
	filter := s.filter
	s.mu.Unlock()

	deleted, err := s.selection.DeleteSelected(ctx, s.svc, entries, s.drafts)
	for _, key := range deleted {
		s.suggest.Discard(key)
	}

	if err != nil {
		// keep what we can of the working list: only the rows deleted
		// before the failure disappear
		if len(deleted) > 0 {
			gone := make(map[string]struct{}, len(deleted))
			for _, key := range deleted {
				gone[key] = struct{}{}
			}
			s.mu.Lock()
			kept := s.entries[:0]
			for _, e := range s.entries {
				if _, ok := gone[Key(e)]; !ok {
					kept = append(kept, e)
				}
			}
			s.entries = kept
			s.mu.Unlock()
		}
		return err
	}

	s.selection.Clear()
	return s.Fetch(ctx, filter)
}

// CheckDuplicate looks for existing entries with the same headword in the
// same dialect so a contributor sees collisions before submitting.
func (s *Session) CheckDuplicate(ctx context.Context, e *entity.Entry) ([]*entity.Entry, error) {
	if e.Headword.Display == "" {
		return nil, nil
	}
	return s.svc.CheckDuplicate(ctx, e.Headword.Display, e.Dialect.Name)
}

// Close flushes pending draft writes and stops background work.
func (s *Session) Close() {
	s.suggest.CancelAuto()
	s.drafts.Flush()
}
