package taxonomy

import "testing"

func TestNew_ParsesFullTable(t *testing.T) {
	tax := New()
	if got := len(tax.All()); got != 439 {
		t.Fatalf("expected 439 leaf themes, got %d", got)
	}
	if got := len(tax.Level1s()); got != 11 {
		t.Fatalf("expected 11 level-1 categories, got %d", got)
	}
}

func TestByID_ResolvesFullPath(t *testing.T) {
	tax := New()

	theme, ok := tax.ByID(66)
	if !ok {
		t.Fatal("theme 66 not found")
	}
	if theme.Level1ID != 1 || theme.Level1Name != "人物" {
		t.Fatalf("unexpected level1 for 66: %+v", theme)
	}
	// 66: 一B4成年女性 → letter B → 500 + 1*10 + 2
	if theme.Level2ID != 512 {
		t.Fatalf("expected level2Id 512, got %d", theme.Level2ID)
	}
	if theme.Code != "B4" || theme.Level3Name != "成年女性" {
		t.Fatalf("unexpected leaf for 66: %+v", theme)
	}
	if theme.Path != "人物 > 孩子、男孩子、青少年 > 成年女性" {
		t.Fatalf("unexpected path: %s", theme.Path)
	}
}

func TestByID_UnknownID(t *testing.T) {
	tax := New()
	if _, ok := tax.ByID(9999); ok {
		t.Fatal("expected miss for unknown id")
	}
	if name := tax.NameByID(9999); name != "" {
		t.Fatalf("expected empty name, got %q", name)
	}
}

func TestLevel2Grouping(t *testing.T) {
	tax := New()

	groups := tax.Level2sByLevel1(1)
	if len(groups) != 7 { // 人物 has groups A..G
		t.Fatalf("expected 7 groups under 人物, got %d", len(groups))
	}
	for _, g := range groups {
		if g.Level1ID != 1 {
			t.Fatalf("group %+v escaped its level1", g)
		}
	}

	leaves := tax.ThemesByLevel2(511) // 一A
	if len(leaves) != 3 {
		t.Fatalf("expected 3 leaves under 一A, got %d", len(leaves))
	}
	if leaves[0].ID != 60 {
		t.Fatalf("expected first leaf 60, got %d", leaves[0].ID)
	}
}

func TestOptionsOrderedByID(t *testing.T) {
	tax := New()
	opts := tax.Options()
	if len(opts) != 439 {
		t.Fatalf("expected 439 options, got %d", len(opts))
	}
	for i := 1; i < len(opts); i++ {
		if opts[i-1].Value >= opts[i].Value {
			t.Fatalf("options not strictly ordered at %d", i)
		}
	}
	if opts[0].Value != 60 || opts[len(opts)-1].Value != 498 {
		t.Fatalf("unexpected option bounds: %d..%d", opts[0].Value, opts[len(opts)-1].Value)
	}
}

func TestSearch(t *testing.T) {
	tax := New()
	hits := tax.Search("成年女性")
	if len(hits) == 0 {
		t.Fatal("expected at least one hit")
	}
	if hits[0].ID != 66 {
		t.Fatalf("expected 66 first, got %d", hits[0].ID)
	}
	if got := tax.Search("  "); got != nil {
		t.Fatalf("blank query should return nil, got %d hits", len(got))
	}
}
