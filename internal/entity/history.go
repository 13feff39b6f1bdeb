package entity

import (
	"encoding/json"
	"time"
)

// HistoryAction names the mutation recorded by an EditHistory row.
type HistoryAction string

const (
	HistoryCreate        HistoryAction = "create"
	HistoryUpdate        HistoryAction = "update"
	HistoryDelete        HistoryAction = "delete"
	HistoryReviewApprove HistoryAction = "review_approve"
	HistoryReviewReject  HistoryAction = "review_reject"
	HistoryRevert        HistoryAction = "revert"
)

// EditHistory is one audit-trail record. Before/After hold full JSON
// snapshots of the entry around the mutation; Before is empty for creates.
type EditHistory struct {
	ID            string          `json:"id"`
	EntryID       string          `json:"entryId"`
	EditorID      string          `json:"editorId"`
	Action        HistoryAction   `json:"action"`
	ChangedFields []string        `json:"changedFields,omitempty"`
	Before        json.RawMessage `json:"before,omitempty"`
	After         json.RawMessage `json:"after,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// HistoryFilter selects edit-history rows.
type HistoryFilter struct {
	Pagination

	EntryID  string
	EditorID string
	Action   HistoryAction
}
