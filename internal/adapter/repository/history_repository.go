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

const historyColumns = `id, entry_id, editor_id, action, changed_fields, before_doc, after_doc, created_at`

type historyRepository struct {
	db *database.DB
}

func NewHistoryRepository(db *database.DB) repository.HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Record(ctx context.Context, h *entity.EditHistory) (*entity.EditHistory, error) {
	clone := *h
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now().UTC()
	}

	query := rebind(r.db.Driver, `INSERT INTO edit_histories (`+historyColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		clone.ID,
		clone.EntryID,
		clone.EditorID,
		string(clone.Action),
		types.StringsJSON(clone.ChangedFields),
		rawOrNull(clone.Before),
		rawOrNull(clone.After),
		clone.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert history: %w", err)
	}
	return &clone, nil
}

func (r *historyRepository) GetByID(ctx context.Context, id string) (*entity.EditHistory, error) {
	query := rebind(r.db.Driver, `SELECT `+historyColumns+` FROM edit_histories WHERE id = ?`)
	h, err := scanHistory(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrHistoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	return h, nil
}

func (r *historyRepository) List(ctx context.Context, q *repository.ListHistoryQuery) ([]*entity.EditHistory, int64, error) {
	var conds []string
	var args []any
	if q.EntryID != "" {
		conds = append(conds, `entry_id = ?`)
		args = append(args, q.EntryID)
	}
	if q.EditorID != "" {
		conds = append(conds, `editor_id = ?`)
		args = append(args, q.EditorID)
	}
	if q.Action != "" {
		conds = append(conds, `action = ?`)
		args = append(args, string(q.Action))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	countQuery := rebind(r.db.Driver, `SELECT COUNT(*) FROM edit_histories`+where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count histories: %w", err)
	}

	listArgs := append(append([]any{}, args...), q.PageSize, q.Offset())
	listQuery := rebind(r.db.Driver,
		`SELECT `+historyColumns+` FROM edit_histories`+where+` ORDER BY created_at DESC LIMIT ? OFFSET ?`)
	rows, err := r.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list histories: %w", err)
	}
	defer rows.Close()

	var items []*entity.EditHistory
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan history: %w", err)
		}
		items = append(items, h)
	}
	return items, total, rows.Err()
}

func (r *historyRepository) Stream(ctx context.Context, fn func(*entity.EditHistory) error) error {
	rows, err := r.db.QueryContext(ctx, `SELECT `+historyColumns+` FROM edit_histories ORDER BY id`)
	if err != nil {
		return fmt.Errorf("stream histories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return fmt.Errorf("scan history: %w", err)
		}
		if err := fn(h); err != nil {
			return err
		}
	}
	return rows.Err()
}

func scanHistory(row rowScanner) (*entity.EditHistory, error) {
	var (
		h       entity.EditHistory
		action  string
		changed types.StringsJSON
		before  []byte
		after   []byte
	)
	err := row.Scan(&h.ID, &h.EntryID, &h.EditorID, &action, &changed, &before, &after, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	h.Action = entity.HistoryAction(action)
	h.ChangedFields = []string(changed)
	if len(before) > 0 {
		h.Before = append([]byte{}, before...)
	}
	if len(after) > 0 {
		h.After = append([]byte{}, after...)
	}
	return &h, nil
}

func rawOrNull(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
