package editor

import (
	"encoding/json"
	"sync"

	"github.com/eslsoft/jyutcollab/internal/entity"
)

// Snapshot is a deep, detached copy of an entry's editable fields, taken
// when a fresh server copy arrives or right after a successful save.
type Snapshot struct {
	Headword         entity.Headword      `json:"headword"`
	Dialect          entity.Dialect       `json:"dialect"`
	Phonetic         entity.Phonetic      `json:"phonetic"`
	PhoneticNotation string               `json:"phoneticNotation,omitempty"`
	EntryType        entity.EntryType     `json:"entryType"`
	Senses           []entity.Sense       `json:"senses"`
	Refs             []entity.EntryRef    `json:"refs,omitempty"`
	Theme            entity.Theme         `json:"theme"`
	Meta             entity.EntryMeta     `json:"meta"`
	Status           entity.EntryStatus   `json:"status"`
	ReviewNotes      string               `json:"reviewNotes,omitempty"`
	LexemeID         string               `json:"lexemeId,omitempty"`
	MorphemeRefs     []entity.MorphemeRef `json:"morphemeRefs,omitempty"`
}

// Baselines holds the last-known-saved snapshot per entry, keyed by the
// durable id only — entries that were never persisted have no baseline.
type Baselines struct {
	mu   sync.Mutex
	byID map[string]*Snapshot
}

func NewBaselines() *Baselines {
	return &Baselines{byID: make(map[string]*Snapshot)}
}

// Capture stores a snapshot for the entry, overwriting any previous one.
// Entries without a durable id are skipped.
func (b *Baselines) Capture(e *entity.Entry) {
	if e == nil || e.ID == "" {
		return
	}
	snap := makeSnapshot(e)
	b.mu.Lock()
	b.byID[e.ID] = snap
	b.mu.Unlock()
}

// Reset rebuilds the whole baseline map from a freshly fetched list.
func (b *Baselines) Reset(entries []*entity.Entry) {
	next := make(map[string]*Snapshot, len(entries))
	for _, e := range entries {
		if e != nil && e.ID != "" {
			next[e.ID] = makeSnapshot(e)
		}
	}
	b.mu.Lock()
	b.byID = next
	b.mu.Unlock()
}

// Restore copies every tracked field from the entry's snapshot back onto
// the entry — replacing, not merging, nested structures — and clears the
// dirty flag. Returns false (and leaves the entry untouched) when no
// snapshot exists; that is the normal case for unsaved entries.
func (b *Baselines) Restore(e *entity.Entry) bool {
	if e == nil || e.ID == "" {
		return false
	}
	b.mu.Lock()
	snap, ok := b.byID[e.ID]
	b.mu.Unlock()
	if !ok {
		return false
	}

	restored := deepCopy(*snap)
	e.Headword = restored.Headword
	e.Dialect = restored.Dialect
	e.Phonetic = restored.Phonetic
	e.PhoneticNotation = restored.PhoneticNotation
	e.EntryType = restored.EntryType
	e.Senses = restored.Senses
	e.Refs = restored.Refs
	e.Theme = restored.Theme
	e.Meta = restored.Meta
	e.Status = restored.Status
	e.ReviewNotes = restored.ReviewNotes
	e.LexemeID = restored.LexemeID
	e.MorphemeRefs = restored.MorphemeRefs
	e.IsDirty = false
	return true
}

// ApplyDraft copies a restored local draft's tracked fields onto a live
// entry with the same identity, along with the client-side flags. The draft
// wins over the fetched copy unconditionally; there is no timestamp
// comparison, so a server copy newer than the draft is shadowed until the
// draft is saved or discarded.
func (b *Baselines) ApplyDraft(target, draft *entity.Entry) {
	if target == nil || draft == nil {
		return
	}
	src := deepCopy(*draft)
	target.Headword = src.Headword
	target.Dialect = src.Dialect
	target.Phonetic = src.Phonetic
	target.PhoneticNotation = src.PhoneticNotation
	target.EntryType = src.EntryType
	target.Senses = src.Senses
	target.Refs = src.Refs
	target.Theme = src.Theme
	target.Meta = src.Meta
	target.Status = src.Status
	target.ReviewNotes = src.ReviewNotes
	if src.LexemeID != "" {
		target.LexemeID = src.LexemeID
	}
	if src.MorphemeRefs != nil {
		target.MorphemeRefs = src.MorphemeRefs
	}
	target.IsNew = src.IsNew
	target.IsDirty = src.IsDirty
	if src.TempID != "" {
		target.TempID = src.TempID
	}
}

// Len reports the number of captured snapshots.
func (b *Baselines) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.byID)
}

func makeSnapshot(e *entity.Entry) *Snapshot {
	snap := Snapshot{
		Headword:         e.Headword,
		Dialect:          e.Dialect,
		Phonetic:         e.Phonetic,
		PhoneticNotation: e.PhoneticNotation,
		EntryType:        e.EntryType,
		Senses:           e.Senses,
		Refs:             e.Refs,
		Theme:            e.Theme,
		Meta:             e.Meta,
		Status:           e.Status,
		ReviewNotes:      e.ReviewNotes,
		LexemeID:         e.LexemeID,
		MorphemeRefs:     e.MorphemeRefs,
	}
	snap = deepCopy(snap)
	return &snap
}

// deepCopy detaches a value from the live object graph via a JSON
// round-trip, so snapshots and drafts never alias slices or maps still
// reachable from the entry being edited.
func deepCopy[T any](v T) T {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}
