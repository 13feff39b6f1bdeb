package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/eslsoft/jyutcollab/internal/entity"
	"github.com/eslsoft/jyutcollab/internal/repository"
)

type memEntryRepo struct {
	entries []*entity.Entry
}

func (m *memEntryRepo) Create(_ context.Context, e *entity.Entry) (*entity.Entry, error) {
	clone := *e
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("e%d", len(m.entries)+1)
	}
	m.entries = append(m.entries, &clone)
	return &clone, nil
}

func (m *memEntryRepo) Update(_ context.Context, e *entity.Entry) (*entity.Entry, error) {
	return e, nil
}

func (m *memEntryRepo) GetByID(_ context.Context, id string) (*entity.Entry, error) {
	for _, e := range m.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, entity.ErrEntryNotFound
}

func (m *memEntryRepo) List(context.Context, *repository.ListEntryQuery) ([]*entity.Entry, int64, error) {
	return m.entries, int64(len(m.entries)), nil
}

func (m *memEntryRepo) Delete(context.Context, string) error { return nil }

func (m *memEntryRepo) FindByHeadword(context.Context, string, string) ([]*entity.Entry, error) {
	return nil, nil
}

func (m *memEntryRepo) UpdateStatusCAS(context.Context, string, entity.EntryStatus, entity.EntryStatus, string, string) (*entity.Entry, error) {
	return nil, entity.ErrReviewConflict
}

func (m *memEntryRepo) Stream(_ context.Context, fn func(*entity.Entry) error) error {
	for _, e := range m.entries {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

type memUserRepo struct {
	users []*entity.User
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) (*entity.User, error) {
	clone := *u
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("u%d", len(m.users)+1)
	}
	m.users = append(m.users, &clone)
	return &clone, nil
}

func (m *memUserRepo) Update(_ context.Context, u *entity.User) (*entity.User, error) {
	return u, nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (m *memUserRepo) Stream(_ context.Context, fn func(*entity.User) error) error {
	for _, u := range m.users {
		if err := fn(u); err != nil {
			return err
		}
	}
	return nil
}

type memHistoryRepo struct {
	records []*entity.EditHistory
}

func (m *memHistoryRepo) Record(_ context.Context, h *entity.EditHistory) (*entity.EditHistory, error) {
	clone := *h
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("h%d", len(m.records)+1)
	}
	m.records = append(m.records, &clone)
	return &clone, nil
}

func (m *memHistoryRepo) GetByID(_ context.Context, id string) (*entity.EditHistory, error) {
	for _, h := range m.records {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, entity.ErrHistoryNotFound
}

func (m *memHistoryRepo) List(context.Context, *repository.ListHistoryQuery) ([]*entity.EditHistory, int64, error) {
	return m.records, int64(len(m.records)), nil
}

func (m *memHistoryRepo) Stream(_ context.Context, fn func(*entity.EditHistory) error) error {
	for _, h := range m.records {
		if err := fn(h); err != nil {
			return err
		}
	}
	return nil
}

type countingReporter struct {
	started  []string
	finished []string
	totals   map[string]int
}

func (r *countingReporter) StartTable(table string, _ int) {
	r.started = append(r.started, table)
}

func (r *countingReporter) Increment(table string, delta int) {
	if r.totals == nil {
		r.totals = make(map[string]int)
	}
	r.totals[table] += delta
}

func (r *countingReporter) FinishTable(table string) {
	r.finished = append(r.finished, table)
}

func seedSource(t *testing.T) (*memEntryRepo, *memUserRepo, *memHistoryRepo) {
	t.Helper()
	ctx := context.Background()

	users := &memUserRepo{}
	if _, err := users.Create(ctx, &entity.User{ID: "u1", Name: "阿明", Email: "ming@example.com", Role: entity.RoleContributor, Dialects: []string{"香港粵語"}}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	entries := &memEntryRepo{}
	for i, hw := range []string{"戇居", "返工", "飲茶"} {
		e := &entity.Entry{
			ID:        fmt.Sprintf("e%d", i+1),
			Dialect:   entity.Dialect{Name: "香港粵語"},
			EntryType: entity.EntryTypeWord,
			Status:    entity.StatusApproved,
			CreatedBy: "u1",
			CreatedAt: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		}
		e.Headword.Display = hw
		e.Headword.Normalized = hw
		if _, err := entries.Create(ctx, e); err != nil {
			t.Fatalf("seed entry: %v", err)
		}
	}

	histories := &memHistoryRepo{}
	if _, err := histories.Record(ctx, &entity.EditHistory{ID: "h1", EntryID: "e1", EditorID: "u1", Action: entity.HistoryCreate}); err != nil {
		t.Fatalf("seed history: %v", err)
	}
	return entries, users, histories
}

func TestServiceExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	entries, users, histories := seedSource(t)

	exporter, err := NewService(entries, users, histories)
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}

	var buf bytes.Buffer
	if err := exporter.Export(ctx, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	dstEntries := &memEntryRepo{}
	dstUsers := &memUserRepo{}
	dstHistories := &memHistoryRepo{}
	importer, err := NewService(dstEntries, dstUsers, dstHistories)
	if err != nil {
		t.Fatalf("new importer: %v", err)
	}
	counts, err := importer.Import(ctx, bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if counts[TableEntries] != 3 || counts[TableUsers] != 1 || counts[TableHistories] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if len(dstEntries.entries) != 3 {
		t.Fatalf("expected 3 imported entries, got %d", len(dstEntries.entries))
	}
	for i, e := range dstEntries.entries {
		want := entries.entries[i]
		if e.ID != want.ID || e.Headword.Display != want.Headword.Display || e.Status != want.Status {
			t.Fatalf("entry %d mismatch: want %+v got %+v", i, want, e)
		}
	}
	if dstUsers.users[0].Email != "ming@example.com" {
		t.Fatalf("user not restored: %+v", dstUsers.users[0])
	}
	if dstHistories.records[0].Action != entity.HistoryCreate {
		t.Fatalf("history not restored: %+v", dstHistories.records[0])
	}
}

func TestServiceExportTableOrder(t *testing.T) {
	entries, users, histories := seedSource(t)
	svc, err := NewService(entries, users, histories)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	reporter := &countingReporter{}
	var buf bytes.Buffer
	if err := svc.Export(context.Background(), &buf, WithProgressReporter(reporter)); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	want := []string{TableUsers, TableEntries, TableHistories}
	if len(reporter.started) != len(want) {
		t.Fatalf("expected %v tables, got %v", want, reporter.started)
	}
	for i, tbl := range want {
		if reporter.started[i] != tbl {
			t.Fatalf("table order mismatch: want %v got %v", want, reporter.started)
		}
	}
	if reporter.totals[TableEntries] != 3 {
		t.Fatalf("expected 3 entry increments, got %d", reporter.totals[TableEntries])
	}

	// meta record leads the stream
	firstLine := buf.String()[:strings.Index(buf.String(), "\n")]
	if !strings.Contains(firstLine, `"type":"meta"`) {
		t.Fatalf("first line is not a meta record: %s", firstLine)
	}
}

func TestServiceImportTableFilter(t *testing.T) {
	ctx := context.Background()
	entries, users, histories := seedSource(t)
	exporter, err := NewService(entries, users, histories)
	if err != nil {
		t.Fatalf("new exporter: %v", err)
	}
	var buf bytes.Buffer
	if err := exporter.Export(ctx, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	dstEntries := &memEntryRepo{}
	dstUsers := &memUserRepo{}
	dstHistories := &memHistoryRepo{}
	importer, err := NewService(dstEntries, dstUsers, dstHistories)
	if err != nil {
		t.Fatalf("new importer: %v", err)
	}
	counts, err := importer.Import(ctx, bytes.NewReader(buf.Bytes()), WithImportTables([]string{TableEntries}))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if counts[TableEntries] != 3 {
		t.Fatalf("expected 3 entries imported, got %d", counts[TableEntries])
	}
	if len(dstUsers.users) != 0 || len(dstHistories.records) != 0 {
		t.Fatalf("table filter leaked: users=%d histories=%d", len(dstUsers.users), len(dstHistories.records))
	}
}

func TestServiceRejectsUnknownTable(t *testing.T) {
	entries, users, histories := seedSource(t)
	svc, err := NewService(entries, users, histories)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.Export(context.Background(), &buf, WithTables([]string{"words"})); err == nil {
		t.Fatal("expected unknown table error")
	}
}

func TestServiceImportRejectsRowBeforeMeta(t *testing.T) {
	svc, err := NewService(&memEntryRepo{}, &memUserRepo{}, &memHistoryRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	input := `{"type":"row","table":"entries","payload":{}}` + "\n"
	if _, err := svc.Import(context.Background(), strings.NewReader(input)); err == nil {
		t.Fatal("expected error for row before meta")
	}
}

func TestServiceImportRejectsNewerFormat(t *testing.T) {
	svc, err := NewService(&memEntryRepo{}, &memUserRepo{}, &memHistoryRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	input := `{"type":"meta","version":99}` + "\n"
	if _, err := svc.Import(context.Background(), strings.NewReader(input)); err == nil {
		t.Fatal("expected version error")
	}
}

func TestSelectTablesCanonicalOrder(t *testing.T) {
	got, err := selectTables([]string{TableHistories, TableUsers})
	if err != nil {
		t.Fatalf("selectTables: %v", err)
	}
	want := []string{TableUsers, TableHistories}
	if len(got) != len(want) {
		t.Fatalf("want %v got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v got %v", want, got)
		}
	}

	if _, err := selectTables([]string{" ", ""}); !errors.Is(err, errNoTablesSelected) {
		t.Fatalf("expected errNoTablesSelected, got %v", err)
	}
}
