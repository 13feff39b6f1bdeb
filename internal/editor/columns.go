package editor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/eslsoft/jyutcollab/internal/entity"
	"github.com/eslsoft/jyutcollab/internal/taxonomy"

	"github.com/samber/lo"
)

// ColumnType selects the edit widget for a column.
type ColumnType string

const (
	ColumnText     ColumnType = "text"
	ColumnSelect   ColumnType = "select"
	ColumnPhonetic ColumnType = "phonetic"
	ColumnTheme    ColumnType = "theme"
)

// ColumnOption is a select option. Values are always strings; numeric
// option sources are stringified at this boundary so cell values compare
// consistently.
type ColumnOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Column declares how one editable table column reads and writes an entry,
// decoupling table rendering from the entry shape. Get returns the cell's
// edit value; Set parses an edited value back onto the entry.
type Column struct {
	Key   string
	Label string
	Width string
	Type  ColumnType
	Get   func(*entity.Entry) string
	Set   func(*entity.Entry, string)

	Options    []ColumnOption
	GetOptions func() []ColumnOption
}

// RegisterNone is the select sentinel for an unset register.
const RegisterNone = "__none__"

// StatusLabels maps workflow statuses to their display text.
var StatusLabels = map[entity.EntryStatus]string{
	entity.StatusDraft:         "草稿",
	entity.StatusPendingReview: "待審核",
	entity.StatusApproved:      "已通過",
	entity.StatusRejected:      "已拒絕",
}

// Columns builds the editable column set. Dialect and status options are
// dynamic (they depend on the current user's grants); theme options come
// from the static taxonomy.
type Columns struct {
	tax            *taxonomy.Taxonomy
	cols           []Column
	dialectOptions func() []ColumnOption
	statusOptions  func() []ColumnOption
}

func NewColumns(tax *taxonomy.Taxonomy, dialectOptions, statusOptions func() []ColumnOption) *Columns {
	c := &Columns{tax: tax, dialectOptions: dialectOptions, statusOptions: statusOptions}
	c.cols = []Column{
		{
			Key: "headword", Label: "詞頭", Width: "120px", Type: ColumnText,
			Get: headwordCellValue,
			Set: func(e *entity.Entry, value string) { setHeadword(e, value) },
		},
		{
			Key: "dialect", Label: "方言", Width: "80px", Type: ColumnSelect,
			GetOptions: c.dialectOptionsOrEmpty,
			Get:        func(e *entity.Entry) string { return e.Dialect.Name },
			Set:        func(e *entity.Entry, value string) { e.Dialect.Name = value },
		},
		{
			Key: "phonetic", Label: "粵拼", Width: "100px", Type: ColumnPhonetic,
			Get: phoneticCellValue,
			Set: setPhonetic,
		},
		{
			Key: "entryType", Label: "類型", Width: "80px", Type: ColumnSelect,
			Options: []ColumnOption{
				{Value: string(entity.EntryTypeCharacter), Label: "字"},
				{Value: string(entity.EntryTypeWord), Label: "詞"},
				{Value: string(entity.EntryTypePhrase), Label: "短語"},
			},
			Get: func(e *entity.Entry) string {
				if e.EntryType == "" {
					return string(entity.EntryTypeWord)
				}
				return string(e.EntryType)
			},
			Set: func(e *entity.Entry, value string) { e.EntryType = entity.ParseEntryType(value) },
		},
		{
			Key: "theme", Label: "分類", Width: "140px", Type: ColumnTheme,
			GetOptions: c.ThemeOptions,
			Get: func(e *entity.Entry) string {
				if e.Theme.Level3ID == 0 {
					return ""
				}
				return strconv.Itoa(e.Theme.Level3ID)
			},
			Set: func(e *entity.Entry, value string) { c.setTheme(e, value) },
		},
		{
			Key: "definition", Label: "釋義", Width: "200px", Type: ColumnText,
			Get: func(e *entity.Entry) string {
				if len(e.Senses) > 0 {
					return e.Senses[0].Definition
				}
				return ""
			},
			Set: func(e *entity.Entry, value string) {
				e.EnsureSenses()
				e.Senses[0].Definition = value
			},
		},
		{
			Key: "register", Label: "語域", Width: "80px", Type: ColumnSelect,
			Options: []ColumnOption{
				{Value: RegisterNone, Label: "-"},
				{Value: string(entity.RegisterColloquial), Label: "口語"},
				{Value: string(entity.RegisterLiterary), Label: "書面"},
				{Value: string(entity.RegisterVulgar), Label: "粗俗"},
				{Value: string(entity.RegisterRefined), Label: "文雅"},
				{Value: string(entity.RegisterNeutral), Label: "中性"},
			},
			Get: func(e *entity.Entry) string {
				if e.Meta.Register == "" {
					return RegisterNone
				}
				return string(e.Meta.Register)
			},
			Set: func(e *entity.Entry, value string) {
				if value == RegisterNone {
					e.Meta.Register = ""
					return
				}
				if reg, ok := entity.ParseRegister(value); ok {
					e.Meta.Register = reg
				}
			},
		},
		{
			Key: "status", Label: "狀態", Width: "80px", Type: ColumnSelect,
			GetOptions: c.statusOptionsOrEmpty,
			Get: func(e *entity.Entry) string {
				if e.Status == "" {
					return string(entity.StatusDraft)
				}
				return string(e.Status)
			},
			Set: func(e *entity.Entry, value string) {
				if status, ok := entity.ParseStatus(value); ok {
					e.Status = status
				}
			},
		},
	}
	return c
}

// All returns the column definitions in display order.
func (c *Columns) All() []Column { return c.cols }

// ByKey looks a column up by its stable key.
func (c *Columns) ByKey(key string) (Column, bool) {
	for _, col := range c.cols {
		if col.Key == key {
			return col, true
		}
	}
	return Column{}, false
}

// OptionsFor resolves a column's options, preferring the dynamic accessor.
func (c *Columns) OptionsFor(col Column) []ColumnOption {
	if col.GetOptions != nil {
		return col.GetOptions()
	}
	return col.Options
}

// ThemeOptions returns the flat leaf-theme picker list.
func (c *Columns) ThemeOptions() []ColumnOption {
	return lo.Map(c.tax.Options(), func(opt taxonomy.Option, _ int) ColumnOption {
		return ColumnOption{Value: strconv.Itoa(opt.Value), Label: opt.Label}
	})
}

// CellDisplay renders the read-only text for a cell.
func (c *Columns) CellDisplay(e *entity.Entry, col Column) string {
	switch col.Key {
	case "headword":
		if e.Headword.Display != "" {
			return e.Headword.Display
		}
		return "-"
	case "phonetic":
		if len(e.Phonetic.Jyutping) > 0 {
			if !anyHasSpace(e.Phonetic.Jyutping) {
				return strings.Join(e.Phonetic.Jyutping, " ")
			}
			return e.Phonetic.Jyutping[0]
		}
		if e.PhoneticNotation != "" {
			return e.PhoneticNotation
		}
		return "-"
	case "theme":
		if e.Theme.Level3ID == 0 {
			return "選擇分類"
		}
		if name := c.tax.NameByID(e.Theme.Level3ID); name != "" {
			return name
		}
		return "選擇分類"
	case "status":
		if label, ok := StatusLabels[e.Status]; ok {
			return label
		}
	}
	value := col.Get(e)
	if col.Type == ColumnSelect {
		for _, opt := range c.OptionsFor(col) {
			if opt.Value == value {
				return opt.Label
			}
		}
	}
	if value == "" {
		return "-"
	}
	return value
}

func (c *Columns) dialectOptionsOrEmpty() []ColumnOption {
	if c.dialectOptions == nil {
		return nil
	}
	return c.dialectOptions()
}

func (c *Columns) statusOptionsOrEmpty() []ColumnOption {
	if c.statusOptions == nil {
		return nil
	}
	return c.statusOptions()
}

// setTheme resolves a leaf id through the taxonomy and writes all six theme
// fields together; an empty value clears all six. A partially applied theme
// never occurs.
func (c *Columns) setTheme(e *entity.Entry, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		e.Theme = entity.Theme{}
		return
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return
	}
	theme, ok := c.tax.ByID(id)
	if !ok {
		return
	}
	e.Theme = entity.Theme{
		Level1:   theme.Level1Name,
		Level2:   theme.Level2Name,
		Level3:   theme.Level3Name,
		Level1ID: theme.Level1ID,
		Level2ID: theme.Level2ID,
		Level3ID: theme.Level3ID,
	}
}

var headwordBracketRe = regexp.MustCompile(`^(.*?)[\[［](.*)[\]］]\s*$`)

// headword token delimiters: ASCII and full-width semicolons/commas
var tokenSplitRe = regexp.MustCompile(`[;,，；]`)

// ParseHeadword splits a free-text headword input into the primary display
// form and its variant forms. Two syntaxes combine: a trailing bracketed
// group (`主形[異形1; 異形2]`) and plain delimiter-separated tokens outside
// the brackets. Tokens from both pools are deduplicated preserving first
// occurrence; the first token is the primary form.
func ParseHeadword(raw string) (main string, variants []string) {
	raw = strings.TrimSpace(raw)
	outside, inside := raw, ""
	if m := headwordBracketRe.FindStringSubmatch(raw); m != nil {
		outside = strings.TrimSpace(m[1])
		inside = strings.TrimSpace(m[2])
	}

	var parts []string
	pushFrom := func(s string) {
		for _, token := range tokenSplitRe.Split(s, -1) {
			if v := strings.TrimSpace(token); v != "" {
				parts = append(parts, v)
			}
		}
	}
	if outside != "" {
		pushFrom(outside)
	}
	if inside != "" {
		pushFrom(inside)
	}

	uniq := lo.Uniq(parts)
	if len(uniq) == 0 {
		return "", nil
	}
	if len(uniq) == 1 {
		return uniq[0], nil
	}
	return uniq[0], uniq[1:]
}

func setHeadword(e *entity.Entry, value string) {
	main, variants := ParseHeadword(value)
	e.Headword.Display = main
	e.Headword.Normalized = main
	e.Headword.IsPlaceholder = strings.Contains(main, entity.PlaceholderGlyph)
	e.Headword.Variants = variants
}

// headwordCellValue re-encodes the primary form plus variants into the
// single editable string the headword column presents.
func headwordCellValue(e *entity.Entry) string {
	main := e.Headword.Display
	if main == "" {
		return ""
	}
	variants := lo.Filter(e.Headword.Variants, func(v string, _ int) bool {
		return strings.TrimSpace(v) != ""
	})
	if len(variants) == 0 {
		return main
	}
	return main + " [" + strings.Join(variants, "; ") + "]"
}

// phoneticCellValue joins readings with a space unless any reading already
// contains internal spaces (a multi-syllable reading), in which case
// semicolons keep the reading boundaries unambiguous.
func phoneticCellValue(e *entity.Entry) string {
	arr := e.Phonetic.Jyutping
	if len(arr) > 0 {
		if !anyHasSpace(arr) {
			return strings.Join(arr, " ")
		}
		return strings.Join(arr, "; ")
	}
	return e.PhoneticNotation
}

func setPhonetic(e *entity.Entry, value string) {
	var readings []string
	for _, token := range tokenSplitRe.Split(strings.TrimSpace(value), -1) {
		if v := strings.TrimSpace(token); v != "" {
			readings = append(readings, v)
		}
	}
	e.Phonetic.Jyutping = readings
	// legacy flattened form stays in sync
	e.PhoneticNotation = strings.Join(readings, "; ")
}

func anyHasSpace(values []string) bool {
	for _, v := range values {
		if strings.Contains(v, " ") {
			return true
		}
	}
	return false
}
