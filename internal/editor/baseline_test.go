package editor

import (
	"testing"

	"github.com/eslsoft/jyutcollab/internal/entity"
)

func TestBaselinesCaptureAndRestore(t *testing.T) {
	b := NewBaselines()
	e := newEntry("entry-1", "戇居")
	e.Senses[0].Definition = "形容人愚蠢"
	e.Phonetic.Jyutping = []string{"ngong6", "geoi1"}
	b.Capture(e)

	e.Headword.Display = "改咗"
	e.Senses[0].Definition = "亂改嘅釋義"
	e.Senses = append(e.Senses, entity.Sense{Definition: "多咗一個義項"})
	e.Phonetic.Jyutping = append(e.Phonetic.Jyutping, "zai2")
	e.IsDirty = true

	if !b.Restore(e) {
		t.Fatal("expected restore to find a snapshot")
	}
	if e.Headword.Display != "戇居" {
		t.Errorf("headword = %q, want 戇居", e.Headword.Display)
	}
	if len(e.Senses) != 1 || e.Senses[0].Definition != "形容人愚蠢" {
		t.Errorf("senses not restored: %+v", e.Senses)
	}
	if len(e.Phonetic.Jyutping) != 2 {
		t.Errorf("jyutping = %v, want 2 readings", e.Phonetic.Jyutping)
	}
	if e.IsDirty {
		t.Error("restore should clear the dirty flag")
	}
}

func TestBaselinesRestoreWithoutSnapshot(t *testing.T) {
	b := NewBaselines()
	e := newTempEntry("未儲存")
	e.Headword.Display = "改過"

	if b.Restore(e) {
		t.Fatal("unsaved entry should have no baseline")
	}
	if e.Headword.Display != "改過" {
		t.Error("restore without snapshot must not touch the entry")
	}
}

func TestBaselinesSnapshotIsDetached(t *testing.T) {
	b := NewBaselines()
	e := newEntry("entry-1", "詞頭")
	e.Senses[0].Examples = []entity.Example{{Text: "例句一"}}
	b.Capture(e)

	// mutating shared slices after capture must not leak into the snapshot
	e.Senses[0].Examples[0].Text = "篡改"

	if !b.Restore(e) {
		t.Fatal("expected snapshot")
	}
	if got := e.Senses[0].Examples[0].Text; got != "例句一" {
		t.Errorf("example = %q, want 例句一", got)
	}
}

func TestBaselinesResetDropsStale(t *testing.T) {
	b := NewBaselines()
	b.Capture(newEntry("entry-1", "舊"))
	b.Reset([]*entity.Entry{newEntry("entry-2", "新")})

	if b.Len() != 1 {
		t.Fatalf("len = %d, want 1", b.Len())
	}
	if b.Restore(newEntry("entry-1", "舊")) {
		t.Error("entry-1 baseline should be gone after reset")
	}
}

func TestApplyDraftWinsOverFetched(t *testing.T) {
	b := NewBaselines()
	target := newEntry("entry-1", "伺服器版本")
	target.Senses[0].Definition = "server definition"

	draft := newEntry("entry-1", "草稿版本")
	draft.Senses[0].Definition = "drafted definition"
	draft.IsDirty = true
	draft.Theme = entity.Theme{Level1: "人物", Level1ID: 1, Level2: "孩子、男孩子、青少年", Level2ID: 512, Level3: "成年女性", Level3ID: 66}

	b.ApplyDraft(target, draft)

	if target.Headword.Display != "草稿版本" {
		t.Errorf("headword = %q, want draft value", target.Headword.Display)
	}
	if target.Senses[0].Definition != "drafted definition" {
		t.Errorf("definition = %q, want draft value", target.Senses[0].Definition)
	}
	if !target.IsDirty {
		t.Error("dirty flag should carry over from the draft")
	}
	if target.Theme.Level3ID != 66 {
		t.Errorf("theme not applied: %+v", target.Theme)
	}

	// the applied fields must be detached from the draft
	draft.Senses[0].Definition = "mutated later"
	if target.Senses[0].Definition != "drafted definition" {
		t.Error("applied draft aliases the draft's slices")
	}
}
