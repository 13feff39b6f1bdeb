package editor

import (
	"github.com/eslsoft/jyutcollab/internal/entity"

	"github.com/google/uuid"
)

// Key returns the entry's identity: the durable id once persisted, the
// client temp id before that. Use it wherever entries are compared,
// deduplicated or indexed.
func Key(e *entity.Entry) string {
	return e.Key()
}

// NewTempID mints a client-side identity for a not-yet-persisted entry.
func NewTempID() string {
	return "tmp-" + uuid.NewString()
}
