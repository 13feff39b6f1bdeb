package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eslsoft/jyutcollab/internal/entity"
	"github.com/eslsoft/jyutcollab/internal/infrastructure/database"
	"github.com/eslsoft/jyutcollab/internal/infrastructure/database/types"
	"github.com/eslsoft/jyutcollab/internal/repository"
)

const entryColumns = `id, source_book, headword, headword_normalized, dialect, region_code,
	phonetic, phonetic_notation, entry_type, senses, refs, theme, theme_l3_id, meta,
	status, lexeme_id, morpheme_refs, created_by, updated_by, reviewed_by, reviewed_at,
	review_notes, view_count, like_count, created_at, updated_at`

// 可排序列白名单,防止 order_by 注入。
var entryOrderColumns = map[string]string{
	"headword":   "headword_normalized",
	"status":     "status",
	"dialect":    "dialect",
	"view_count": "view_count",
	"like_count": "like_count",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type entryRepository struct {
	db *database.DB
}

// NewEntryRepository returns an EntryRepository backed by the shared SQL handle.
func NewEntryRepository(db *database.DB) repository.EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) Create(ctx context.Context, e *entity.Entry) (*entity.Entry, error) {
	clone := *e
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	if clone.UpdatedAt.IsZero() {
		clone.UpdatedAt = now
	}
	clone.TempID = ""
	clone.IsNew = false
	clone.IsDirty = false

	query := rebind(r.db.Driver, `INSERT INTO entries (`+entryColumns+`) VALUES
		(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		clone.ID,
		clone.SourceBook,
		types.HeadwordJSON(clone.Headword),
		clone.Headword.Normalized,
		clone.Dialect.Name,
		clone.Dialect.RegionCode,
		types.PhoneticJSON(clone.Phonetic),
		clone.PhoneticNotation,
		string(clone.EntryType),
		types.SensesJSON(clone.Senses),
		types.RefsJSON(clone.Refs),
		types.ThemeJSON(clone.Theme),
		clone.Theme.Level3ID,
		types.MetaJSON(clone.Meta),
		string(clone.Status),
		clone.LexemeID,
		types.MorphemeRefsJSON(clone.MorphemeRefs),
		clone.CreatedBy,
		clone.UpdatedBy,
		clone.ReviewedBy,
		nullableTime(clone.ReviewedAt),
		clone.ReviewNotes,
		clone.ViewCount,
		clone.LikeCount,
		clone.CreatedAt,
		clone.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	return &clone, nil
}

func (r *entryRepository) Update(ctx context.Context, e *entity.Entry) (*entity.Entry, error) {
	if e.ID == "" {
		return nil, entity.ErrInvalidEntryID
	}
	clone := *e
	clone.UpdatedAt = time.Now().UTC()

	query := rebind(r.db.Driver, `UPDATE entries SET
		source_book = ?, headword = ?, headword_normalized = ?, dialect = ?, region_code = ?,
		phonetic = ?, phonetic_notation = ?, entry_type = ?, senses = ?, refs = ?,
		theme = ?, theme_l3_id = ?, meta = ?, status = ?, lexeme_id = ?, morpheme_refs = ?,
		updated_by = ?, reviewed_by = ?, reviewed_at = ?, review_notes = ?,
		view_count = ?, like_count = ?, updated_at = ?
		WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query,
		clone.SourceBook,
		types.HeadwordJSON(clone.Headword),
		clone.Headword.Normalized,
		clone.Dialect.Name,
		clone.Dialect.RegionCode,
		types.PhoneticJSON(clone.Phonetic),
		clone.PhoneticNotation,
		string(clone.EntryType),
		types.SensesJSON(clone.Senses),
		types.RefsJSON(clone.Refs),
		types.ThemeJSON(clone.Theme),
		clone.Theme.Level3ID,
		types.MetaJSON(clone.Meta),
		string(clone.Status),
		clone.LexemeID,
		types.MorphemeRefsJSON(clone.MorphemeRefs),
		clone.UpdatedBy,
		clone.ReviewedBy,
		nullableTime(clone.ReviewedAt),
		clone.ReviewNotes,
		clone.ViewCount,
		clone.LikeCount,
		clone.UpdatedAt,
		clone.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update entry rows: %w", err)
	}
	if affected == 0 {
		return nil, entity.ErrEntryNotFound
	}
	return &clone, nil
}

func (r *entryRepository) GetByID(ctx context.Context, id string) (*entity.Entry, error) {
	query := rebind(r.db.Driver, `SELECT `+entryColumns+` FROM entries WHERE id = ?`)
	row := r.db.QueryRowContext(ctx, query, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

func (r *entryRepository) List(ctx context.Context, q *repository.ListEntryQuery) ([]*entity.Entry, int64, error) {
	where, args := buildEntryWhere(q)

	var total int64
	countQuery := rebind(r.db.Driver, `SELECT COUNT(*) FROM entries`+where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count entries: %w", err)
	}

	listArgs := append(append([]any{}, args...), q.PageSize, q.Offset())
	listQuery := rebind(r.db.Driver,
		`SELECT `+entryColumns+` FROM entries`+where+entryOrderClause(q)+` LIMIT ? OFFSET ?`)
	rows, err := r.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var items []*entity.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan entry: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list entries: %w", err)
	}
	return items, total, nil
}

func (r *entryRepository) Delete(ctx context.Context, id string) error {
	query := rebind(r.db.Driver, `DELETE FROM entries WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete entry rows: %w", err)
	}
	if affected == 0 {
		return entity.ErrEntryNotFound
	}
	return nil
}

func (r *entryRepository) FindByHeadword(ctx context.Context, headword, dialect string) ([]*entity.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE headword_normalized = ?`
	args := []any{headword}
	if dialect != "" {
		query += ` AND dialect = ?`
		args = append(args, dialect)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, rebind(r.db.Driver, query), args...)
	if err != nil {
		return nil, fmt.Errorf("find by headword: %w", err)
	}
	defer rows.Close()

	var items []*entity.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *entryRepository) UpdateStatusCAS(ctx context.Context, id string, from, to entity.EntryStatus, reviewerID, notes string) (*entity.Entry, error) {
	now := time.Now().UTC()
	query := rebind(r.db.Driver, `UPDATE entries SET
		status = ?, reviewed_by = ?, reviewed_at = ?, review_notes = ?, updated_at = ?
		WHERE id = ? AND status = ?`)
	res, err := r.db.ExecContext(ctx, query,
		string(to), reviewerID, now, notes, now, id, string(from))
	if err != nil {
		return nil, fmt.Errorf("review entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("review entry rows: %w", err)
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, entity.ErrReviewConflict
	}
	return r.GetByID(ctx, id)
}

func (r *entryRepository) Stream(ctx context.Context, fn func(*entity.Entry) error) error {
	query := `SELECT ` + entryColumns + ` FROM entries ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("stream entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return fmt.Errorf("scan entry: %w", err)
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return rows.Err()
}

func buildEntryWhere(q *repository.ListEntryQuery) (string, []any) {
	var conds []string
	var args []any
	if q.Query != "" {
		conds = append(conds, `(headword_normalized LIKE ? OR phonetic_notation LIKE ?)`)
		pattern := "%" + q.Query + "%"
		args = append(args, pattern, pattern)
	}
	if q.Dialect != "" {
		conds = append(conds, `dialect = ?`)
		args = append(args, q.Dialect)
	}
	if q.Status != "" {
		conds = append(conds, `status = ?`)
		args = append(args, string(q.Status))
	}
	if q.ThemeL3ID != 0 {
		conds = append(conds, `theme_l3_id = ?`)
		args = append(args, q.ThemeL3ID)
	}
	if q.CreatedBy != "" {
		conds = append(conds, `created_by = ?`)
		args = append(args, q.CreatedBy)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func entryOrderClause(q *repository.ListEntryQuery) string {
	var parts []string
	appendKey := func(key string, desc bool) {
		col, ok := entryOrderColumns[key]
		if !ok {
			return
		}
		if desc {
			col += " DESC"
		}
		parts = append(parts, col)
	}
	appendKey(q.PrimaryKey, q.PrimaryDesc)
	appendKey(q.SecondaryKey, q.SecondaryDesc)
	if len(parts) == 0 {
		return ` ORDER BY updated_at DESC`
	}
	return ` ORDER BY ` + strings.Join(parts, ", ")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*entity.Entry, error) {
	var (
		e          entity.Entry
		headword   types.HeadwordJSON
		normalized string
		phonetic   types.PhoneticJSON
		senses     types.SensesJSON
		refs       types.RefsJSON
		theme      types.ThemeJSON
		themeL3    int
		meta       types.MetaJSON
		morphemes  types.MorphemeRefsJSON
		entryType  string
		status     string
		reviewedAt sql.NullTime
	)
	err := row.Scan(
		&e.ID,
		&e.SourceBook,
		&headword,
		&normalized,
		&e.Dialect.Name,
		&e.Dialect.RegionCode,
		&phonetic,
		&e.PhoneticNotation,
		&entryType,
		&senses,
		&refs,
		&theme,
		&themeL3,
		&meta,
		&status,
		&e.LexemeID,
		&morphemes,
		&e.CreatedBy,
		&e.UpdatedBy,
		&e.ReviewedBy,
		&reviewedAt,
		&e.ReviewNotes,
		&e.ViewCount,
		&e.LikeCount,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Headword = entity.Headword(headword)
	if e.Headword.Normalized == "" {
		e.Headword.Normalized = normalized
	}
	e.Phonetic = entity.Phonetic(phonetic)
	e.EntryType = entity.EntryType(entryType)
	e.Senses = []entity.Sense(senses)
	e.Refs = []entity.EntryRef(refs)
	e.Theme = entity.Theme(theme)
	e.Meta = entity.EntryMeta(meta)
	e.Status = entity.EntryStatus(status)
	e.MorphemeRefs = []entity.MorphemeRef(morphemes)
	if reviewedAt.Valid {
		t := reviewedAt.Time
		e.ReviewedAt = &t
	}
	return &e, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
