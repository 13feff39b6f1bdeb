package editor

import (
	"context"
	"fmt"

	"github.com/eslsoft/jyutcollab/internal/entity"
)

// Selection tracks which entries are checked for batch operations. Keys are
// entry identity keys so unsaved entries are selectable too. Page-level
// toggles only touch the keys of the rows currently passed in; selections on
// other pages survive.
type Selection struct {
	keys map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{keys: make(map[string]struct{})}
}

func (s *Selection) IsSelected(key string) bool {
	_, ok := s.keys[key]
	return ok
}

func (s *Selection) Toggle(key string, selected bool) {
	if key == "" {
		return
	}
	if selected {
		s.keys[key] = struct{}{}
	} else {
		delete(s.keys, key)
	}
}

// TogglePage selects or deselects exactly the given rows.
func (s *Selection) TogglePage(entries []*entity.Entry, selected bool) {
	for _, e := range entries {
		s.Toggle(Key(e), selected)
	}
}

// PageChecked reports whether every row on the page is selected. An empty
// page is never checked.
func (s *Selection) PageChecked(entries []*entity.Entry) bool {
	if len(entries) == 0 {
		return false
	}
	for _, e := range entries {
		if !s.IsSelected(Key(e)) {
			return false
		}
	}
	return true
}

// PageIndeterminate reports whether the page is partially selected.
func (s *Selection) PageIndeterminate(entries []*entity.Entry) bool {
	if len(entries) == 0 {
		return false
	}
	count := 0
	for _, e := range entries {
		if s.IsSelected(Key(e)) {
			count++
		}
	}
	return count > 0 && count < len(entries)
}

func (s *Selection) Count() int { return len(s.keys) }

func (s *Selection) Keys() []string {
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	return out
}

func (s *Selection) Clear() {
	s.keys = make(map[string]struct{})
}

// DeleteSelected removes the selected saved entries one at a time, in the
// order they appear in entries. Each successful delete immediately drops the
// key from the selection, so a mid-batch failure leaves exactly the
// unprocessed entries selected. The first failure aborts the rest of the
// batch. Unsaved rows are not the server's to delete and stay untouched.
func (s *Selection) DeleteSelected(ctx context.Context, svc EntryService, entries []*entity.Entry, drafts *DraftStore) (deleted []string, err error) {
	for _, e := range entries {
		key := Key(e)
		if !s.IsSelected(key) || !e.Saved() {
			continue
		}
		if err := svc.Delete(ctx, e.ID); err != nil {
			return deleted, fmt.Errorf("delete entry %s: %w", e.ID, err)
		}
		if drafts != nil {
			drafts.Remove(key)
		}
		delete(s.keys, key)
		deleted = append(deleted, key)
	}
	return deleted, nil
}
