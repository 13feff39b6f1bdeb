package entity

// EntryPatch is a partial update payload: only non-nil sections are applied.
// The server validates sections independently — an invalid senses section is
// ignored rather than failing the whole request.
type EntryPatch struct {
	Headword     *Headword      `json:"headword,omitempty"`
	Dialect      *Dialect       `json:"dialect,omitempty"`
	Phonetic     *Phonetic      `json:"phonetic,omitempty"`
	EntryType    *EntryType     `json:"entryType,omitempty"`
	Senses       *[]Sense       `json:"senses,omitempty"`
	Theme        *Theme         `json:"theme,omitempty"`
	Meta         *EntryMeta     `json:"meta,omitempty"`
	Status       *EntryStatus   `json:"status,omitempty"`
	LexemeID     *string        `json:"lexemeId,omitempty"`
	MorphemeRefs *[]MorphemeRef `json:"morphemeRefs,omitempty"`
}

// PatchFromEntry projects every editable section of an entry into a patch.
// Clients that track per-section dirtiness can nil out untouched sections.
func PatchFromEntry(e *Entry) *EntryPatch {
	headword := e.Headword
	dialect := e.Dialect
	phonetic := e.Phonetic
	entryType := e.EntryType
	senses := e.Senses
	theme := e.Theme
	meta := e.Meta
	status := e.Status
	patch := &EntryPatch{
		Headword:  &headword,
		Dialect:   &dialect,
		Phonetic:  &phonetic,
		EntryType: &entryType,
		Senses:    &senses,
		Theme:     &theme,
		Meta:      &meta,
		Status:    &status,
	}
	if e.LexemeID != "" {
		lexemeID := e.LexemeID
		patch.LexemeID = &lexemeID
	}
	if e.MorphemeRefs != nil {
		refs := e.MorphemeRefs
		patch.MorphemeRefs = &refs
	}
	return patch
}
