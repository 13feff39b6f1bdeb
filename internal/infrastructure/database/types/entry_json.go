package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/eslsoft/jyutcollab/internal/entity"
)

// JSON document columns for the entries table. Each wrapper keeps the
// entity shape as the storage shape so the column survives schema-free.

type HeadwordJSON entity.Headword

func (h *HeadwordJSON) Scan(src any) error  { return scanJSON("HeadwordJSON", src, h) }
func (h HeadwordJSON) Value() (driver.Value, error) { return json.Marshal(h) }

type PhoneticJSON entity.Phonetic

func (p *PhoneticJSON) Scan(src any) error  { return scanJSON("PhoneticJSON", src, p) }
func (p PhoneticJSON) Value() (driver.Value, error) { return json.Marshal(p) }

type SensesJSON []entity.Sense

func (s *SensesJSON) Scan(src any) error { return scanJSON("SensesJSON", src, s) }

func (s SensesJSON) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

type ThemeJSON entity.Theme

func (t *ThemeJSON) Scan(src any) error  { return scanJSON("ThemeJSON", src, t) }
func (t ThemeJSON) Value() (driver.Value, error) { return json.Marshal(t) }

type MetaJSON entity.EntryMeta

func (m *MetaJSON) Scan(src any) error  { return scanJSON("MetaJSON", src, m) }
func (m MetaJSON) Value() (driver.Value, error) { return json.Marshal(m) }

type RefsJSON []entity.EntryRef

func (r *RefsJSON) Scan(src any) error { return scanJSON("RefsJSON", src, r) }

func (r RefsJSON) Value() (driver.Value, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r)
}

type MorphemeRefsJSON []entity.MorphemeRef

func (m *MorphemeRefsJSON) Scan(src any) error { return scanJSON("MorphemeRefsJSON", src, m) }

func (m MorphemeRefsJSON) Value() (driver.Value, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(m)
}

// StringsJSON stores a plain string slice (dialect grants, changed fields).
type StringsJSON []string

func (s *StringsJSON) Scan(src any) error { return scanJSON("StringsJSON", src, s) }

func (s StringsJSON) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

func scanJSON(name string, src, dst any) error {
	if src == nil {
		return nil
	}
	switch data := src.(type) {
	case []byte:
		if len(data) == 0 {
			return nil
		}
		return json.Unmarshal(data, dst)
	case string:
		if data == "" {
			return nil
		}
		return json.Unmarshal([]byte(data), dst)
	default:
		return fmt.Errorf("%s: unsupported src type %T", name, src)
	}
}
