package filterexpr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

type ordering struct {
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

// resolveOrder parses `key [asc|desc], key [asc|desc]` against the schema.
// At most two keys; the fallback key is appended when only one is given so
// pagination stays stable.
func resolveOrder(raw string, schema OrderSchema) (ordering, error) {
	if schema.Fields == nil {
		schema.Fields = map[string]OrderField{}
	}
	if schema.DefaultPrimary == "" {
		return ordering{}, errors.New("order schema default primary key required")
	}
	if schema.FallbackKey == "" {
		return ordering{}, errors.New("order schema fallback key required")
	}
	if _, ok := schema.Fields[schema.DefaultPrimary]; !ok {
		return ordering{}, fmt.Errorf("order key %q missing from schema fields", schema.DefaultPrimary)
	}
	if _, ok := schema.Fields[schema.FallbackKey]; !ok {
		return ordering{}, fmt.Errorf("fallback order key %q missing from schema fields", schema.FallbackKey)
	}

	ord := ordering{
		PrimaryKey:    schema.DefaultPrimary,
		PrimaryDesc:   schema.DefaultPrimaryDesc,
		SecondaryKey:  schema.FallbackKey,
		SecondaryDesc: schema.FallbackDesc,
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ord, nil
	}

	seen := make(map[string]struct{})
	idx := 0
	for _, seg := range strings.Split(raw, ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}

		key, desc, err := parseOrderSegment(seg, schema.Fields)
		if err != nil {
			return ordering{}, err
		}
		if _, dup := seen[key]; dup {
			return ordering{}, fmt.Errorf("duplicate order key %q", key)
		}
		seen[key] = struct{}{}

		switch idx {
		case 0:
			ord.PrimaryKey = key
			ord.PrimaryDesc = desc
		case 1:
			ord.SecondaryKey = key
			ord.SecondaryDesc = desc
		default:
			return ordering{}, errors.New("order_by supports at most two keys")
		}
		idx++
	}

	if ord.SecondaryKey == "" {
		ord.SecondaryKey = schema.FallbackKey
		ord.SecondaryDesc = schema.FallbackDesc
	}

	if ord.SecondaryKey == ord.PrimaryKey {
		// the user picked the fallback key as primary; swap in any other
		// whitelisted key so the sort stays total
		for key := range schema.Fields {
			if key != ord.PrimaryKey {
				ord.SecondaryKey = key
				ord.SecondaryDesc = false
				break
			}
		}
		if ord.SecondaryKey == ord.PrimaryKey {
			return ordering{}, errors.New("order schema requires at least two distinct keys for stable ordering")
		}
	}

	return ord, nil
}

func parseOrderSegment(seg string, fields map[string]OrderField) (key string, desc bool, err error) {
	parts := strings.Fields(seg)
	if len(parts) == 0 || len(parts) > 2 {
		return "", false, fmt.Errorf("invalid order segment %q", seg)
	}
	key = parts[0]
	if _, ok := fields[key]; !ok {
		return "", false, fmt.Errorf("field %q cannot be used for ordering", key)
	}
	if len(parts) == 2 {
		switch strings.ToLower(parts[1]) {
		case "asc":
			desc = false
		case "desc":
			desc = true
		default:
			return "", false, fmt.Errorf("invalid direction %q for field %q", parts[1], key)
		}
	}
	return key, desc, nil
}

func writeOrder(binding any, ord ordering) error {
	target, err := structTarget(binding)
	if err != nil {
		return err
	}

	writes := []struct {
		name  string
		value reflect.Value
	}{
		{"PrimaryKey", reflect.ValueOf(ord.PrimaryKey)},
		{"PrimaryDesc", reflect.ValueOf(ord.PrimaryDesc)},
		{"SecondaryKey", reflect.ValueOf(ord.SecondaryKey)},
		{"SecondaryDesc", reflect.ValueOf(ord.SecondaryDesc)},
	}
	for _, w := range writes {
		if err := storeField(target, w.name, w.value); err != nil {
			return err
		}
	}
	return nil
}

func storeField(target reflect.Value, name string, value reflect.Value) error {
	field := target.FieldByName(name)
	if !field.IsValid() {
		return fmt.Errorf("params struct %s has no field named %q", target.Type(), name)
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field %q on params struct", name)
	}

	switch field.Kind() {
	case reflect.Interface:
		field.Set(value)
		return nil
	case reflect.Ptr:
		elemType := field.Type().Elem()
		if !value.Type().ConvertibleTo(elemType) {
			return fmt.Errorf("field %q must be %s-compatible, got %s", name, elemType, value.Type())
		}
		if field.IsNil() {
			field.Set(reflect.New(elemType))
		}
		field.Elem().Set(value.Convert(elemType))
		return nil
	default:
		if !value.Type().ConvertibleTo(field.Type()) {
			return fmt.Errorf("field %q must be %s-compatible, got %s", name, field.Type(), value.Type())
		}
		field.Set(value.Convert(field.Type()))
		return nil
	}
}
