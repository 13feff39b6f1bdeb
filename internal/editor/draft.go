package editor

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/eslsoft/jyutcollab/internal/entity"

	"github.com/sirupsen/logrus"
)

// DefaultDraftKey is the aggregate key all drafts are stored under.
const DefaultDraftKey = "jyutcollab-entries-draft"

// DefaultDraftDebounce coalesces rapid ScheduleSave calls into one write.
const DefaultDraftDebounce = 500 * time.Millisecond

// KV is the client-side key-value store drafts are persisted to. Put may
// fail when the store is full; the DraftStore treats that as retryable
// after a clear, never as fatal.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// DraftStore persists unsaved entry edits across reloads. Writes are
// debounced and always read-merge-write: the scheduled batch usually holds
// only the current page's entries, so blindly overwriting the stored
// collection would drop drafts for entries on other pages or filters.
//
// Drafting is a convenience, not a correctness path — every failure mode
// here is logged and swallowed.
type DraftStore struct {
	kv    KV
	key   string
	delay time.Duration
	log   logrus.FieldLogger

	mu      sync.Mutex
	timer   *time.Timer
	pending []*entity.Entry
}

// DraftOption configures a DraftStore.
type DraftOption func(*DraftStore)

// WithDraftKey overrides the aggregate storage key.
func WithDraftKey(key string) DraftOption {
	return func(s *DraftStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithDraftDebounce overrides the debounce window; tests use short windows.
func WithDraftDebounce(d time.Duration) DraftOption {
	return func(s *DraftStore) {
		if d > 0 {
			s.delay = d
		}
	}
}

func NewDraftStore(kv KV, log logrus.FieldLogger, opts ...DraftOption) *DraftStore {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &DraftStore{
		kv:    kv,
		key:   DefaultDraftKey,
		delay: DefaultDraftDebounce,
		log:   log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScheduleSave captures the new/dirty subset of entries and arms (or
// re-arms) the debounce timer. Only the last batch scheduled within the
// window is written; the write observes storage at flush time.
func (s *DraftStore) ScheduleSave(entries []*entity.Entry) {
	batch := make([]*entity.Entry, 0)
	for _, e := range entries {
		if e == nil || !(e.IsNew || e.IsDirty) {
			continue
		}
		copied := deepCopy(*e)
		batch = append(batch, &copied)
	}

	s.mu.Lock()
	s.pending = batch
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.Flush)
	s.mu.Unlock()
}

// Flush writes the pending batch immediately. Safe to call with nothing
// pending; used by the debounce timer, on shutdown, and by tests.
func (s *DraftStore) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()
	if batch == nil {
		return
	}
	s.merge(batch)
}

// merge overlays the batch onto the stored collection by identity. An empty
// batch still merges — a page with zero dirty entries must not clear other
// pages' drafts. The key is removed only when the union itself is empty.
func (s *DraftStore) merge(batch []*entity.Entry) {
	existing := s.readAll()

	index := make(map[string]int, len(existing))
	for i, e := range existing {
		index[e.Key()] = i
	}
	for _, e := range batch {
		key := e.Key()
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			existing[i] = e
		} else {
			index[key] = len(existing)
			existing = append(existing, e)
		}
	}

	if len(existing) == 0 {
		if err := s.kv.Delete(s.key); err != nil {
			s.log.WithError(err).Debug("clear empty draft collection")
		}
		return
	}

	data, err := json.Marshal(existing)
	if err != nil {
		s.log.WithError(err).Error("marshal drafts")
		return
	}
	if err := s.kv.Put(s.key, data); err == nil {
		return
	}
	// store may be full: clear and retry once with just the fresh batch
	if err := s.kv.Delete(s.key); err != nil {
		s.log.WithError(err).Error("clear draft store after failed write")
		return
	}
	data, err = json.Marshal(batch)
	if err != nil || len(batch) == 0 {
		return
	}
	if err := s.kv.Put(s.key, data); err != nil {
		s.log.WithError(err).Error("save drafts after cleanup")
	}
}

// RestoreAll reads the stored draft collection. Absent, unparsable or
// malformed storage yields an empty result, never an error.
func (s *DraftStore) RestoreAll() []*entity.Entry {
	return s.readAll()
}

// Remove drops the draft whose id or temp id matches key, typically after a
// successful server save so the draft is not re-offered.
func (s *DraftStore) Remove(key string) {
	if key == "" {
		return
	}
	existing := s.readAll()
	filtered := existing[:0]
	for _, e := range existing {
		if e.ID == key || e.TempID == key {
			continue
		}
		filtered = append(filtered, e)
	}
	if len(filtered) == len(existing) {
		return
	}
	if len(filtered) == 0 {
		if err := s.kv.Delete(s.key); err != nil {
			s.log.WithError(err).Debug("clear draft collection")
		}
		return
	}
	data, err := json.Marshal(filtered)
	if err != nil {
		s.log.WithError(err).Error("marshal drafts")
		return
	}
	if err := s.kv.Put(s.key, data); err != nil {
		s.log.WithError(err).Error("rewrite drafts")
	}
}

// Clear removes the whole draft collection.
func (s *DraftStore) Clear() {
	if err := s.kv.Delete(s.key); err != nil {
		s.log.WithError(err).Debug("clear draft collection")
	}
}

func (s *DraftStore) readAll() []*entity.Entry {
	data, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.log.WithError(err).Error("read draft collection")
		return nil
	}
	if !ok || len(data) == 0 {
		return nil
	}
	var drafts []*entity.Entry
	if err := json.Unmarshal(data, &drafts); err != nil {
		s.log.WithError(err).Error("decode draft collection")
		return nil
	}
	out := drafts[:0]
	for _, e := range drafts {
		if e != nil && e.Key() != "" {
			out = append(out, e)
		}
	}
	return out
}
