package backup

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/eslsoft/jyutcollab/internal/entity"
	"github.com/eslsoft/jyutcollab/internal/repository"
)

const (
	defaultBatchSize = 512
	formatVersion    = 1

	TableEntries   = "entries"
	TableUsers     = "users"
	TableHistories = "histories"
)

var errNoTablesSelected = errors.New("backup: no tables selected")

// allTables is the canonical export order: users before entries so that
// imported entries always reference existing accounts.
var allTables = []string{TableUsers, TableEntries, TableHistories}

type ProgressReporter interface {
	StartTable(table string, total int)
	Increment(table string, delta int)
	FinishTable(table string)
}

type noopProgress struct{}

func (noopProgress) StartTable(string, int) {}
func (noopProgress) Increment(string, int)  {}
func (noopProgress) FinishTable(string)     {}

// Service streams repository contents to and from NDJSON backups.
type Service struct {
	entries   repository.EntryRepository
	users     repository.UserRepository
	histories repository.HistoryRepository
	batchSize int
}

type Option func(*Service)

func WithBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// NewService constructs a backup service over the given repositories.
func NewService(entries repository.EntryRepository, users repository.UserRepository, histories repository.HistoryRepository, opts ...Option) (*Service, error) {
	if entries == nil || users == nil || histories == nil {
		return nil, errors.New("backup: all repositories are required")
	}
	svc := &Service{
		entries:   entries,
		users:     users,
		histories: histories,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

type ExportOption func(*exportConfig)

type exportConfig struct {
	tables   []string
	reporter ProgressReporter
}

// WithTables restricts export to the provided table names.
func WithTables(tables []string) ExportOption {
	return func(cfg *exportConfig) {
		if len(tables) == 0 {
			return
		}
		cfg.tables = append([]string{}, tables...)
	}
}

// WithProgressReporter registers a reporter that receives progress callbacks during export.
func WithProgressReporter(reporter ProgressReporter) ExportOption {
	return func(cfg *exportConfig) {
		cfg.reporter = reporter
	}
}

type ImportOption func(*importConfig)

type importConfig struct {
	tables   []string
	reporter ProgressReporter
}

// WithImportTables restricts import to the provided table names.
func WithImportTables(tables []string) ImportOption {
	return func(cfg *importConfig) {
		if len(tables) == 0 {
			return
		}
		cfg.tables = append([]string{}, tables...)
	}
}

// WithImportProgressReporter registers a reporter for import progress.
func WithImportProgressReporter(reporter ProgressReporter) ImportOption {
	return func(cfg *importConfig) {
		cfg.reporter = reporter
	}
}

type record struct {
	Type       string     `json:"type"`
	Version    int        `json:"version,omitempty"`
	ExportedAt *time.Time `json:"exported_at,omitempty"`
	Tables     []string   `json:"tables,omitempty"`
	Table      string     `json:"table,omitempty"`
	Payload    any        `json:"payload,omitempty"`
}

type rawRecord struct {
	Type       string          `json:"type"`
	Version    int             `json:"version"`
	ExportedAt *time.Time      `json:"exported_at"`
	Tables     []string        `json:"tables"`
	Table      string          `json:"table"`
	Payload    json.RawMessage `json:"payload"`
}

// Counts reports how many rows were imported per table.
type Counts map[string]int

func (s *Service) Export(ctx context.Context, w io.Writer, opts ...ExportOption) error {
	cfg := exportConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	tables, err := selectTables(cfg.tables)
	if err != nil {
		return err
	}
	reporter := cfg.reporter
	if reporter == nil {
		reporter = noopProgress{}
	}

	writer := bufio.NewWriter(w)
	defer writer.Flush()

	now := time.Now().UTC()
	meta := record{
		Type:       "meta",
		Version:    formatVersion,
		ExportedAt: &now,
		Tables:     tables,
	}
	if err := writeRecord(writer, meta); err != nil {
		return err
	}

	for _, tbl := range tables {
		reporter.StartTable(tbl, -1)
		if err := s.exportTable(ctx, tbl, reporter, writer); err != nil {
			return fmt.Errorf("export table %s: %w", tbl, err)
		}
		reporter.FinishTable(tbl)
	}
	return writer.Flush()
}

func (s *Service) exportTable(ctx context.Context, table string, reporter ProgressReporter, w *bufio.Writer) error {
	written := 0
	emit := func(payload any) error {
		if err := writeRecord(w, record{Type: "row", Table: table, Payload: payload}); err != nil {
			return err
		}
		written++
		if written%s.batchSize == 0 {
			reporter.Increment(table, s.batchSize)
			if err := w.Flush(); err != nil {
				return err
			}
		}
		return nil
	}

	var err error
	switch table {
	case TableEntries:
		err = s.entries.Stream(ctx, func(e *entity.Entry) error { return emit(e) })
	case TableUsers:
		err = s.users.Stream(ctx, func(u *entity.User) error { return emit(u) })
	case TableHistories:
		err = s.histories.Stream(ctx, func(h *entity.EditHistory) error { return emit(h) })
	default:
		err = fmt.Errorf("unknown table %q", table)
	}
	if err != nil {
		return err
	}
	if rem := written % s.batchSize; rem > 0 {
		reporter.Increment(table, rem)
	}
	return nil
}

func (s *Service) Import(ctx context.Context, r io.Reader, opts ...ImportOption) (Counts, error) {
	cfg := importConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	tables, err := selectTables(cfg.tables)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(tables))
	for _, tbl := range tables {
		wanted[tbl] = true
	}
	reporter := cfg.reporter
	if reporter == nil {
		reporter = noopProgress{}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	counts := make(Counts, len(tables))
	sawMeta := false
	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return counts, err
		}

		var rec rawRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return counts, fmt.Errorf("decode line %d: %w", line, err)
		}
		switch rec.Type {
		case "meta":
			if rec.Version > formatVersion {
				return counts, fmt.Errorf("unsupported backup format version %d", rec.Version)
			}
			sawMeta = true
		case "row":
			if !sawMeta {
				return counts, errors.New("backup: row record before meta record")
			}
			if !wanted[rec.Table] {
				continue
			}
			if err := s.importRow(ctx, rec.Table, rec.Payload); err != nil {
				return counts, fmt.Errorf("import %s at line %d: %w", rec.Table, line, err)
			}
			counts[rec.Table]++
			if counts[rec.Table]%s.batchSize == 0 {
				reporter.Increment(rec.Table, s.batchSize)
			}
		default:
			return counts, fmt.Errorf("unknown record type %q at line %d", rec.Type, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return counts, err
	}
	if !sawMeta {
		return counts, errors.New("backup: missing meta record")
	}
	for tbl, n := range counts {
		if rem := n % s.batchSize; rem > 0 {
			reporter.Increment(tbl, rem)
		}
		reporter.FinishTable(tbl)
	}
	return counts, nil
}

func (s *Service) importRow(ctx context.Context, table string, payload json.RawMessage) error {
	switch table {
	case TableEntries:
		var e entity.Entry
		if err := json.Unmarshal(payload, &e); err != nil {
			return err
		}
		_, err := s.entries.Create(ctx, &e)
		return err
	case TableUsers:
		var u entity.User
		if err := json.Unmarshal(payload, &u); err != nil {
			return err
		}
		_, err := s.users.Create(ctx, &u)
		return err
	case TableHistories:
		var h entity.EditHistory
		if err := json.Unmarshal(payload, &h); err != nil {
			return err
		}
		_, err := s.histories.Record(ctx, &h)
		return err
	default:
		return fmt.Errorf("unknown table %q", table)
	}
}

func selectTables(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return append([]string{}, allTables...), nil
	}
	known := make(map[string]bool, len(allTables))
	for _, tbl := range allTables {
		known[tbl] = true
	}
	wanted := make(map[string]bool, len(requested))
	for _, tbl := range requested {
		name := strings.ToLower(strings.TrimSpace(tbl))
		if name == "" {
			continue
		}
		if !known[name] {
			return nil, fmt.Errorf("backup: unknown table %q", tbl)
		}
		wanted[name] = true
	}
	// preserve canonical order regardless of request order
	result := make([]string, 0, len(wanted))
	for _, tbl := range allTables {
		if wanted[tbl] {
			result = append(result, tbl)
		}
	}
	if len(result) == 0 {
		return nil, errNoTablesSelected
	}
	return result, nil
}

func writeRecord(w *bufio.Writer, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.WriteByte('\n')
}
