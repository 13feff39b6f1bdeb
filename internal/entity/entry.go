package entity

import (
	"strings"
	"time"
)

// EntryType distinguishes single characters, words and multi-word phrases.
type EntryType string

const (
	EntryTypeCharacter EntryType = "character"
	EntryTypeWord      EntryType = "word"
	EntryTypePhrase    EntryType = "phrase"
)

// EntryStatus tracks an entry through the contribution workflow.
type EntryStatus string

const (
	StatusDraft         EntryStatus = "draft"
	StatusPendingReview EntryStatus = "pending_review"
	StatusApproved      EntryStatus = "approved"
	StatusRejected      EntryStatus = "rejected"
)

// Register is the stylistic register of an expression (語域).
type Register string

const (
	RegisterColloquial Register = "口語"
	RegisterLiterary   Register = "書面"
	RegisterVulgar     Register = "粗俗"
	RegisterRefined    Register = "文雅"
	RegisterNeutral    Register = "中性"
)

// ExampleSource records the provenance of an example sentence.
type ExampleSource string

const (
	SourceUserGenerated ExampleSource = "user_generated"
	SourceAIGenerated   ExampleSource = "ai_generated"
	SourceLiterature    ExampleSource = "literature"
	SourceMedia         ExampleSource = "media"
)

// PlaceholderGlyph marks an unknown/unwritable character in a headword.
const PlaceholderGlyph = "□"

// Headword is the citation form of an entry plus its variant spellings.
type Headword struct {
	Display       string   `json:"display"`
	Normalized    string   `json:"normalized"`
	IsPlaceholder bool     `json:"isPlaceholder"`
	Variants      []string `json:"variants,omitempty"`
}

// Dialect identifies the Yue dialect point an entry belongs to.
type Dialect struct {
	Name       string `json:"name"`
	RegionCode string `json:"regionCode,omitempty"`
}

// Phonetic holds romanized readings. Jyutping entries are per-reading; a
// multi-syllable reading keeps its internal spaces.
type Phonetic struct {
	Jyutping   []string `json:"jyutping,omitempty"`
	ToneSandhi []string `json:"toneSandhi,omitempty"`
}

type Example struct {
	Text        string        `json:"text"`
	Jyutping    string        `json:"jyutping,omitempty"`
	Translation string        `json:"translation,omitempty"`
	Explanation string        `json:"explanation,omitempty"`
	Scenario    string        `json:"scenario,omitempty"`
	Source      ExampleSource `json:"source,omitempty"`
	IsFeatured  bool          `json:"isFeatured,omitempty"`
}

type SubSense struct {
	Label      string    `json:"label"`
	Definition string    `json:"definition"`
	Examples   []Example `json:"examples,omitempty"`
}

// Sense is one meaning of an entry.
type Sense struct {
	Definition string     `json:"definition"`
	Label      string     `json:"label,omitempty"`
	Examples   []Example  `json:"examples"`
	SubSenses  []SubSense `json:"subSenses"`
}

// Theme is the 3-level thematic classification. The six fields are written
// and cleared together; a partially populated Theme is a bug.
type Theme struct {
	Level1   string `json:"level1,omitempty"`
	Level2   string `json:"level2,omitempty"`
	Level3   string `json:"level3,omitempty"`
	Level1ID int    `json:"level1Id,omitempty"`
	Level2ID int    `json:"level2Id,omitempty"`
	Level3ID int    `json:"level3Id,omitempty"`
}

// IsZero reports whether no classification has been assigned.
func (t Theme) IsZero() bool {
	return t.Level1 == "" && t.Level2 == "" && t.Level3 == "" &&
		t.Level1ID == 0 && t.Level2ID == 0 && t.Level3ID == 0
}

type EntryMeta struct {
	Category  string   `json:"category,omitempty"`
	POS       string   `json:"pos,omitempty"`
	Etymology string   `json:"etymology,omitempty"`
	Register  Register `json:"register,omitempty"`
	Region    string   `json:"region,omitempty"`
	Usage     string   `json:"usage,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// EntryRef is a cross reference to another entry or a source-book section.
type EntryRef struct {
	Type   string `json:"type"` // word, section
	Target string `json:"target"`
	URL    string `json:"url,omitempty"`
}

// MorphemeRef links a syllable of a word entry to its character entry.
// 詞素引用只屬於本方言點詞條，不跨方言共享。
type MorphemeRef struct {
	TargetEntryID string `json:"targetEntryId,omitempty"`
	Position      int    `json:"position,omitempty"`
	Char          string `json:"char,omitempty"`
	Jyutping      string `json:"jyutping,omitempty"`
	Note          string `json:"note,omitempty"`
}

// Entry is one dictionary record for a headword in one dialect.
//
// ID is assigned at first persistence. Before that a client-generated TempID
// identifies the entry; exactly one of the two is the entry's identity at
// any time. IsNew and IsDirty are client-side flags and are never persisted
// by the server.
type Entry struct {
	ID     string `json:"id,omitempty"`
	TempID string `json:"_tempId,omitempty"`

	IsNew   bool `json:"_isNew,omitempty"`
	IsDirty bool `json:"_isDirty,omitempty"`

	SourceBook       string        `json:"sourceBook,omitempty"`
	Headword         Headword      `json:"headword"`
	Dialect          Dialect       `json:"dialect"`
	Phonetic         Phonetic      `json:"phonetic"`
	PhoneticNotation string        `json:"phoneticNotation,omitempty"` // legacy flattened form, kept in sync
	EntryType        EntryType     `json:"entryType"`
	Senses           []Sense       `json:"senses"`
	Refs             []EntryRef    `json:"refs,omitempty"`
	Theme            Theme         `json:"theme"`
	Meta             EntryMeta     `json:"meta"`
	Status           EntryStatus   `json:"status"`
	LexemeID         string        `json:"lexemeId,omitempty"`
	MorphemeRefs     []MorphemeRef `json:"morphemeRefs,omitempty"`

	CreatedBy   string     `json:"createdBy,omitempty"`
	UpdatedBy   string     `json:"updatedBy,omitempty"`
	ReviewedBy  string     `json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
	ReviewNotes string     `json:"reviewNotes,omitempty"`

	ViewCount int `json:"viewCount,omitempty"`
	LikeCount int `json:"likeCount,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Key returns the identity used for indexing, dedup and selection: the
// durable ID once persisted, the client temp id before that.
func (e *Entry) Key() string {
	if e == nil {
		return ""
	}
	if e.ID != "" {
		return e.ID
	}
	return e.TempID
}

// Saved reports whether the entry has been persisted at least once.
func (e *Entry) Saved() bool { return e != nil && e.ID != "" }

// EnsureSenses guarantees at least one sense and non-nil Examples/SubSenses
// slices on every sense, so cell editors can append without nil checks.
func (e *Entry) EnsureSenses() {
	if len(e.Senses) == 0 {
		e.Senses = []Sense{{}}
	}
	for i := range e.Senses {
		if e.Senses[i].Examples == nil {
			e.Senses[i].Examples = []Example{}
		}
		if e.Senses[i].SubSenses == nil {
			e.Senses[i].SubSenses = []SubSense{}
		}
	}
}

// Savable reports whether the entry satisfies the minimum shape for a save.
func (e *Entry) Savable() bool {
	return strings.TrimSpace(e.Headword.Display) != ""
}

// EntryGroup nests entries under a shared headword (or lexeme) header.
type EntryGroup struct {
	HeadwordDisplay    string   `json:"headwordDisplay"`
	HeadwordNormalized string   `json:"headwordNormalized"`
	Entries            []*Entry `json:"entries"`
}

// GroupBy selects the list grouping mode.
type GroupBy string

const (
	GroupByNone     GroupBy = ""
	GroupByHeadword GroupBy = "headword"
	GroupByLexeme   GroupBy = "lexeme"
)

// EntryFilter defines filtering options when listing entries.
type EntryFilter struct {
	Pagination

	Query     string
	Dialect   string
	Status    EntryStatus
	ThemeL3ID int
	CreatedBy string
	SortBy    string
	SortDesc  bool
	GroupBy   GroupBy
}

// EntryPage is one page of list results; Groups is populated instead of
// Items when a grouping mode is active.
type EntryPage struct {
	Items      []*Entry      `json:"data,omitempty"`
	Groups     []*EntryGroup `json:"groups,omitempty"`
	Grouped    bool          `json:"grouped"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PerPage    int           `json:"perPage"`
	TotalPages int           `json:"totalPages"`
}

// ParseEntryType converts an arbitrary string into a supported EntryType.
func ParseEntryType(s string) EntryType {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "character":
		return EntryTypeCharacter
	case "word":
		return EntryTypeWord
	case "phrase":
		return EntryTypePhrase
	default:
		return EntryTypeWord
	}
}

// ParseStatus converts an arbitrary string into a workflow status.
func ParseStatus(s string) (EntryStatus, bool) {
	switch EntryStatus(strings.TrimSpace(s)) {
	case StatusDraft:
		return StatusDraft, true
	case StatusPendingReview:
		return StatusPendingReview, true
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	default:
		return "", false
	}
}

// ParseRegister validates a register value; empty means unset.
func ParseRegister(s string) (Register, bool) {
	switch Register(strings.TrimSpace(s)) {
	case "":
		return "", true
	case RegisterColloquial:
		return RegisterColloquial, true
	case RegisterLiterary:
		return RegisterLiterary, true
	case RegisterVulgar:
		return RegisterVulgar, true
	case RegisterRefined:
		return RegisterRefined, true
	case RegisterNeutral:
		return RegisterNeutral, true
	default:
		return "", false
	}
}
