package editor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/eslsoft/jyutcollab/internal/entity"
	"github.com/eslsoft/jyutcollab/internal/taxonomy"

	"github.com/sirupsen/logrus"
)

// DefaultSuggestDebounce is how long a phonetic edit must settle before the
// automatic suggestion pipeline fires.
const DefaultSuggestDebounce = 800 * time.Millisecond

// CellRef addresses one editable cell: an entry identity key plus a column
// key.
type CellRef struct {
	EntryKey string
	Field    string
}

// DefinitionState holds an automatic or on-demand definition suggestion for
// an entry, or the error that produced none.
type DefinitionState struct {
	Suggestion DefinitionSuggestion
	Err        error
}

// ThemeState holds a resolved categorization suggestion. The theme is fully
// resolved through the taxonomy at store time so accepting it is a pure
// field copy.
type ThemeState struct {
	Theme       entity.Theme
	Confidence  float64
	Explanation string
}

// Coordinator runs the AI suggestion flow for the entry editor: a debounced
// automatic pipeline off phonetic edits to new entries, explicit per-cell
// generation actions, and a pending inbox for suggestions that arrive while
// the user is elsewhere. All state is guarded by one mutex; completions from
// pipeline goroutines re-validate the target entry before writing.
type Coordinator struct {
	svc    SuggestionService
	tax    *taxonomy.Taxonomy
	log    logrus.FieldLogger
	delay  time.Duration
	lookup func(key string) *entity.Entry
	active func() (CellRef, bool)

	mu    sync.Mutex
	timer *time.Timer
	auto  *autoRun

	definitions   map[string]*DefinitionState
	themes        map[string]*ThemeState
	pending       map[CellRef]struct{}
	inlineLoading map[string]bool
	actionLoading map[string]bool
}

// autoRun identifies one in-flight automatic pipeline run. Completions
// compare their own token against c.auto: a mismatch means a newer edit
// superseded this run, and its results must be dropped without touching the
// successor's cancel func.
type autoRun struct {
	key    string
	cancel context.CancelFunc
}

// CoordinatorOption tweaks coordinator construction.
type CoordinatorOption func(*Coordinator)

func WithSuggestDebounce(d time.Duration) CoordinatorOption {
	return func(c *Coordinator) { c.delay = d }
}

// NewCoordinator wires the coordinator to its surroundings: lookup resolves
// an entry key against the current working list (it must return nil for
// entries that no longer exist), active reports which cell the user has open.
func NewCoordinator(svc SuggestionService, tax *taxonomy.Taxonomy, lookup func(string) *entity.Entry, active func() (CellRef, bool), log logrus.FieldLogger, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		svc:           svc,
		tax:           tax,
		log:           log,
		delay:         DefaultSuggestDebounce,
		lookup:        lookup,
		active:        active,
		definitions:   make(map[string]*DefinitionState),
		themes:        make(map[string]*ThemeState),
		pending:       make(map[CellRef]struct{}),
		inlineLoading: make(map[string]bool),
		actionLoading: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EditField observes a cell edit. Only phonetic edits to unsaved entries
// with a headword arm the automatic pipeline; any qualifying edit re-arms
// the debounce and cancels a previous in-flight run, so only the last edit
// in a burst produces suggestions.
func (c *Coordinator) EditField(e *entity.Entry, field string) {
	if e == nil || !e.IsNew || field != "phonetic" {
		return
	}
	headword := strings.TrimSpace(e.Headword.Display)
	if headword == "" {
		return
	}
	key := Key(e)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.timer = time.AfterFunc(c.delay, func() {
		c.runAuto(key, headword)
	})
}

// CancelAuto drops any armed or in-flight automatic run.
func (c *Coordinator) CancelAuto() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
}

func (c *Coordinator) cancelLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.auto != nil {
		c.auto.cancel()
		c.auto = nil
	}
}

// runAuto is the debounced pipeline body. headword is the value captured at
// trigger time; it anchors the staleness guard on completion.
func (c *Coordinator) runAuto(key, headword string) {
	ctx, cancel := context.WithCancel(context.Background())
	run := &autoRun{key: key, cancel: cancel}
	c.mu.Lock()
	c.auto = run
	c.inlineLoading[key] = true
	c.mu.Unlock()

	req := SuggestionRequest{Expression: headword, Region: "hong_kong"}

	var (
		wg     sync.WaitGroup
		def    *DefinitionSuggestion
		defErr error
		cat    *Categorization
		catErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		def, defErr = c.svc.SuggestDefinition(ctx, req)
	}()
	go func() {
		defer wg.Done()
		cat, catErr = c.svc.Categorize(ctx, req)
	}()
	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	current := c.auto == run
	if current {
		c.auto = nil
	}
	cancel()
	// a superseding run for the same key owns the loading flag now
	if current || c.auto == nil || c.auto.key != key {
		delete(c.inlineLoading, key)
	}

	if !current || canceled(defErr) {
		return
	}

	// The entry may have been saved, deleted or re-edited while the calls
	// were in flight; results only land if it still matches the trigger.
	entry := c.lookup(key)
	if entry == nil || strings.TrimSpace(entry.Headword.Display) != headword {
		return
	}

	if defErr != nil {
		c.log.WithError(defErr).WithField("headword", headword).Warn("definition suggestion failed")
		c.definitions[key] = &DefinitionState{Err: defErr}
	} else if def != nil {
		c.definitions[key] = &DefinitionState{Suggestion: *def}
		c.deliverLocked(CellRef{EntryKey: key, Field: "definition"})
	}

	// categorization is best-effort
	if catErr != nil {
		c.log.WithError(catErr).WithField("headword", headword).Warn("categorize suggestion failed")
		return
	}
	if cat == nil {
		return
	}
	theme, ok := c.tax.ByID(cat.ThemeID)
	if !ok {
		c.log.WithField("theme_id", cat.ThemeID).Warn("categorize returned unknown theme")
		return
	}
	c.themes[key] = &ThemeState{
		Theme: entity.Theme{
			Level1:   theme.Level1Name,
			Level2:   theme.Level2Name,
			Level3:   theme.Level3Name,
			Level1ID: theme.Level1ID,
			Level2ID: theme.Level2ID,
			Level3ID: theme.Level3ID,
		},
		Confidence:  cat.Confidence,
		Explanation: cat.Explanation,
	}
	c.deliverLocked(CellRef{EntryKey: key, Field: "theme"})
}

// deliverLocked marks a fresh suggestion as pending when its cell is not the
// one the user currently has open.
func (c *Coordinator) deliverLocked(ref CellRef) {
	if c.active != nil {
		if open, ok := c.active(); ok && open == ref {
			return
		}
	}
	c.pending[ref] = struct{}{}
}

// OpenCell is called when the user opens a cell for editing; a suggestion
// waiting in the inbox for that cell becomes inline.
func (c *Coordinator) OpenCell(ref CellRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, ref)
}

// HasPending reports whether a suggestion is waiting for a cell the user has
// not opened since it arrived.
func (c *Coordinator) HasPending(ref CellRef) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[ref]
	return ok
}

// Definition returns the stored definition suggestion state for an entry.
func (c *Coordinator) Definition(key string) (*DefinitionState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.definitions[key]
	return st, ok
}

// Theme returns the stored theme suggestion for an entry.
func (c *Coordinator) Theme(key string) (*ThemeState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.themes[key]
	return st, ok
}

// InlineLoading reports whether the automatic pipeline is running for an
// entry.
func (c *Coordinator) InlineLoading(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inlineLoading[key]
}

// ActionLoading reports whether an explicit generation action is running.
func (c *Coordinator) ActionLoading(key, action string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.actionLoading[key+":"+action]
}

// AcceptDefinition applies a stored definition suggestion onto the entry:
// the definition into the first sense, usage notes into the entry notes, and
// the formality level mapped onto the register. The suggestion is consumed.
func (c *Coordinator) AcceptDefinition(e *entity.Entry) bool {
	key := Key(e)
	c.mu.Lock()
	st, ok := c.definitions[key]
	if ok {
		delete(c.definitions, key)
		delete(c.pending, CellRef{EntryKey: key, Field: "definition"})
	}
	c.mu.Unlock()
	if !ok || st.Err != nil {
		return false
	}

	e.EnsureSenses()
	e.Senses[0].Definition = st.Suggestion.Definition
	if st.Suggestion.UsageNotes != "" {
		e.Meta.Usage = st.Suggestion.UsageNotes
	}
	if reg, ok := registerFromFormality(st.Suggestion.FormalityLevel); ok {
		e.Meta.Register = reg
	}
	e.IsDirty = true
	return true
}

// AcceptTheme applies a stored theme suggestion: all six theme fields land
// in one assignment.
func (c *Coordinator) AcceptTheme(e *entity.Entry) bool {
	key := Key(e)
	c.mu.Lock()
	st, ok := c.themes[key]
	if ok {
		delete(c.themes, key)
		delete(c.pending, CellRef{EntryKey: key, Field: "theme"})
	}
	c.mu.Unlock()
	if !ok {
		return false
	}
	e.Theme = st.Theme
	e.IsDirty = true
	return true
}

// DismissDefinition drops a definition suggestion without applying it.
func (c *Coordinator) DismissDefinition(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.definitions, key)
	delete(c.pending, CellRef{EntryKey: key, Field: "definition"})
}

// DismissTheme drops a theme suggestion without applying it.
func (c *Coordinator) DismissTheme(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.themes, key)
	delete(c.pending, CellRef{EntryKey: key, Field: "theme"})
}

// Discard clears every stored suggestion and pending marker for an entry,
// for when the entry is deleted or its identity changes.
func (c *Coordinator) Discard(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.definitions, key)
	delete(c.themes, key)
	delete(c.inlineLoading, key)
	delete(c.pending, CellRef{EntryKey: key, Field: "definition"})
	delete(c.pending, CellRef{EntryKey: key, Field: "theme"})
}

// RetryInline re-runs the automatic pipeline immediately for an entry whose
// previous run errored.
func (c *Coordinator) RetryInline(e *entity.Entry) {
	headword := strings.TrimSpace(e.Headword.Display)
	if headword == "" {
		return
	}
	key := Key(e)
	c.mu.Lock()
	c.cancelLocked()
	delete(c.definitions, key)
	c.mu.Unlock()
	go c.runAuto(key, headword)
}

// GenerateDefinition fetches a definition suggestion on demand for any
// entry, saved or not, and stores it for review. Unlike the automatic
// pipeline the caller owns the context.
func (c *Coordinator) GenerateDefinition(ctx context.Context, e *entity.Entry) error {
	headword := strings.TrimSpace(e.Headword.Display)
	if headword == "" {
		return entity.ErrEmptyHeadword
	}
	key := Key(e)
	c.setActionLoading(key, "definition", true)
	defer c.setActionLoading(key, "definition", false)

	def, err := c.svc.SuggestDefinition(ctx, SuggestionRequest{Expression: headword, Region: "hong_kong"})
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.definitions[key] = &DefinitionState{Suggestion: *def}
	c.mu.Unlock()
	return nil
}

// GenerateTheme fetches a categorization on demand.
func (c *Coordinator) GenerateTheme(ctx context.Context, e *entity.Entry) error {
	headword := strings.TrimSpace(e.Headword.Display)
	if headword == "" {
		return entity.ErrEmptyHeadword
	}
	key := Key(e)
	c.setActionLoading(key, "theme", true)
	defer c.setActionLoading(key, "theme", false)

	req := SuggestionRequest{Expression: headword, Region: "hong_kong"}
	if len(e.Senses) > 0 {
		req.Context = e.Senses[0].Definition
	}
	cat, err := c.svc.Categorize(ctx, req)
	if err != nil {
		return err
	}
	theme, ok := c.tax.ByID(cat.ThemeID)
	if !ok {
		return errors.New("categorize returned unknown theme id")
	}
	c.mu.Lock()
	c.themes[key] = &ThemeState{
		Theme: entity.Theme{
			Level1:   theme.Level1Name,
			Level2:   theme.Level2Name,
			Level3:   theme.Level3Name,
			Level1ID: theme.Level1ID,
			Level2ID: theme.Level2ID,
			Level3ID: theme.Level3ID,
		},
		Confidence:  cat.Confidence,
		Explanation: cat.Explanation,
	}
	c.mu.Unlock()
	return nil
}

// GenerateExamples fetches example sentences and appends them to the entry's
// first sense, marked as AI generated.
func (c *Coordinator) GenerateExamples(ctx context.Context, e *entity.Entry) error {
	headword := strings.TrimSpace(e.Headword.Display)
	if headword == "" {
		return entity.ErrEmptyHeadword
	}
	key := Key(e)
	c.setActionLoading(key, "examples", true)
	defer c.setActionLoading(key, "examples", false)

	req := SuggestionRequest{Expression: headword, Region: "hong_kong"}
	if len(e.Senses) > 0 {
		req.Context = e.Senses[0].Definition
	}
	examples, err := c.svc.SuggestExamples(ctx, req)
	if err != nil {
		return err
	}
	e.EnsureSenses()
	for _, ex := range examples {
		e.Senses[0].Examples = append(e.Senses[0].Examples, entity.Example{
			Text:        ex.Text,
			Translation: ex.Translation,
			Scenario:    ex.Scenario,
			Source:      entity.SourceAIGenerated,
		})
	}
	if len(examples) > 0 {
		e.IsDirty = true
	}
	return nil
}

func (c *Coordinator) setActionLoading(key, action string, on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if on {
		c.actionLoading[key+":"+action] = true
	} else {
		delete(c.actionLoading, key+":"+action)
	}
}

// registerFromFormality maps a suggested formality level onto a register.
func registerFromFormality(level string) (entity.Register, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "formal":
		return entity.RegisterRefined, true
	case "neutral":
		return entity.RegisterNeutral, true
	case "informal", "slang":
		return entity.RegisterColloquial, true
	case "vulgar":
		return entity.RegisterVulgar, true
	default:
		return "", false
	}
}

func canceled(err error) bool {
	return err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}
