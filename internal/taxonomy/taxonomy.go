// Package taxonomy provides the static 3-level thematic classification used
// to categorize dictionary entries. The table is parsed once by New and the
// resulting Taxonomy is immutable; share a single instance process-wide.
package taxonomy

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Level1 is a top-level category (人物, 自然界及場地, ...).
type Level1 struct {
	ID         int
	Name       string
	ChineseNum string
}

// Level2 is a lettered group under a Level1 category. Its numeric id is
// derived: 500 + level1ID*10 + letter index (A=1, B=2, ...).
type Level2 struct {
	ID       int
	Letter   string
	Name     string
	Level1ID int
}

// Theme is one leaf category with its resolved 3-level path. AI
// categorization returns a leaf id; resolving it through the Taxonomy yields
// every field an entry's theme classification needs.
type Theme struct {
	ID         int
	Name       string
	Code       string // e.g. "A1", "D12"
	Path       string // "人物 > 人稱、指代 > 人稱、指代"
	Level1ID   int
	Level2ID   int
	Level3ID   int
	Level1Name string
	Level2Name string
	Level3Name string
}

// Option is a value/label pair for theme pickers.
type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

var level1Table = []Level1{
	{ID: 1, Name: "人物", ChineseNum: "一"},
	{ID: 2, Name: "自然界及場地", ChineseNum: "二"},
	{ID: 3, Name: "物品用具", ChineseNum: "三"},
	{ID: 4, Name: "時間空間", ChineseNum: "四"},
	{ID: 5, Name: "心理活動", ChineseNum: "五"},
	{ID: 6, Name: "動作行為", ChineseNum: "六"},
	{ID: 7, Name: "社會活動", ChineseNum: "七"},
	{ID: 8, Name: "抽象事物", ChineseNum: "八"},
	{ID: 9, Name: "形容描述", ChineseNum: "九"},
	{ID: 10, Name: "數量詞語", ChineseNum: "十"},
	{ID: 11, Name: "語氣助詞", ChineseNum: "十一"},
}

// Leaf id ranges per top-level category; the packed table encodes level 1
// only through these ranges.
var level1Ranges = []struct {
	start, end, level1ID int
}{
	{60, 100, 1},
	{101, 148, 2},
	{149, 204, 3},
	{205, 223, 4},
	{224, 260, 5},
	{261, 285, 6},
	{286, 367, 7},
	{368, 385, 8},
	{386, 471, 9},
	{472, 489, 10},
	{490, 498, 11},
}

var (
	cellRe   = regexp.MustCompile(`^(\d+):\s*(.+)$`)
	letterRe = regexp.MustCompile(`^[一二三四五六七八九十]+([A-Z])`)
	codeRe   = regexp.MustCompile(`^[一二三四五六七八九十]+([A-Z]\d+)`)
	descRe   = regexp.MustCompile(`^[一二三四五六七八九十]+[A-Z]\d+(.+)$`)
)

// Taxonomy is the parsed, read-only classification table.
type Taxonomy struct {
	level1  []Level1
	level2  []Level2
	byID    map[int]*Theme
	ordered []*Theme
}

// New parses the packed table. The table is a compile-time constant, so a
// parse failure on any cell is skipped rather than surfaced; the cell count
// is asserted by tests instead.
func New() *Taxonomy {
	t := &Taxonomy{
		level1: level1Table,
		byID:   make(map[int]*Theme, 512),
	}
	level2ByID := make(map[int]*Level2)

	for _, cell := range splitCells(themeListRaw) {
		m := cellRe.FindStringSubmatch(cell)
		if m == nil {
			continue
		}
		id, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		name := strings.TrimSpace(m[2])

		l1 := level1ForID(id)
		if l1 == nil {
			continue
		}
		letter := firstGroup(letterRe, name)
		code := firstGroup(codeRe, name)
		desc := strings.TrimSpace(firstGroup(descRe, name))
		if desc == "" {
			desc = name
		}

		l2ID := level2ID(l1.ID, letter)
		if _, ok := level2ByID[l2ID]; !ok {
			// the group's first cell lends its description as the L2 name
			level2ByID[l2ID] = &Level2{ID: l2ID, Letter: letter, Name: desc, Level1ID: l1.ID}
			t.level2 = append(t.level2, *level2ByID[l2ID])
		}
		l2 := level2ByID[l2ID]

		theme := &Theme{
			ID:         id,
			Name:       desc,
			Code:       code,
			Path:       l1.Name + " > " + l2.Name + " > " + desc,
			Level1ID:   l1.ID,
			Level2ID:   l2.ID,
			Level3ID:   id,
			Level1Name: l1.Name,
			Level2Name: l2.Name,
			Level3Name: desc,
		}
		t.byID[id] = theme
		t.ordered = append(t.ordered, theme)
	}

	sort.Slice(t.ordered, func(i, j int) bool { return t.ordered[i].ID < t.ordered[j].ID })
	sort.Slice(t.level2, func(i, j int) bool { return t.level2[i].ID < t.level2[j].ID })
	return t
}

// ByID resolves a leaf category id; ok is false for unknown ids.
func (t *Taxonomy) ByID(id int) (Theme, bool) {
	theme, ok := t.byID[id]
	if !ok {
		return Theme{}, false
	}
	return *theme, true
}

// NameByID returns the leaf (level 3) name, or "" when unknown.
func (t *Taxonomy) NameByID(id int) string {
	if theme, ok := t.byID[id]; ok {
		return theme.Level3Name
	}
	return ""
}

// PathByID returns the full "L1 > L2 > L3" path, or "" when unknown.
func (t *Taxonomy) PathByID(id int) string {
	if theme, ok := t.byID[id]; ok {
		return theme.Path
	}
	return ""
}

// Level1s returns the top-level categories in table order.
func (t *Taxonomy) Level1s() []Level1 {
	out := make([]Level1, len(t.level1))
	copy(out, t.level1)
	return out
}

// Level2sByLevel1 returns the lettered groups under one top-level category.
func (t *Taxonomy) Level2sByLevel1(level1ID int) []Level2 {
	var out []Level2
	for _, l2 := range t.level2 {
		if l2.Level1ID == level1ID {
			out = append(out, l2)
		}
	}
	return out
}

// ThemesByLevel2 returns the leaves of one lettered group, ordered by id.
func (t *Taxonomy) ThemesByLevel2(level2ID int) []Theme {
	var out []Theme
	for _, theme := range t.ordered {
		if theme.Level2ID == level2ID {
			out = append(out, *theme)
		}
	}
	return out
}

// All returns every leaf theme ordered by id.
func (t *Taxonomy) All() []Theme {
	out := make([]Theme, len(t.ordered))
	for i, theme := range t.ordered {
		out[i] = *theme
	}
	return out
}

// Options returns the flat picker option list (leaf id, full path label).
func (t *Taxonomy) Options() []Option {
	out := make([]Option, len(t.ordered))
	for i, theme := range t.ordered {
		out[i] = Option{Value: theme.ID, Label: theme.Path}
	}
	return out
}

// Search matches leaf name, path or level-1 name, capped at 50 results.
func (t *Taxonomy) Search(query string) []Theme {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	var out []Theme
	for _, theme := range t.ordered {
		if strings.Contains(theme.Name, query) ||
			strings.Contains(theme.Path, query) ||
			strings.Contains(theme.Level1Name, query) {
			out = append(out, *theme)
			if len(out) == 50 {
				break
			}
		}
	}
	return out
}

func splitCells(raw string) []string {
	var cells []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, cell := range strings.Split(line, ",") {
			cell = strings.TrimSpace(cell)
			if cell != "" {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

func level1ForID(id int) *Level1 {
	for _, r := range level1Ranges {
		if id >= r.start && id <= r.end {
			for i := range level1Table {
				if level1Table[i].ID == r.level1ID {
					return &level1Table[i]
				}
			}
		}
	}
	return nil
}

// level2ID derives the numeric id of a lettered group: 500 + L1*10 + letter
// index. L1=1 letter=A gives 511.
func level2ID(level1ID int, letter string) int {
	idx := 1
	if letter != "" {
		idx = int(letter[0]-'A') + 1
	}
	return 500 + level1ID*10 + idx
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}
