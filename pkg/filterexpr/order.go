package filterexpr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

type orderTerm struct {
	Key  string
	Desc bool
}

// parseOrderBy reads "key [asc|desc], ..." against the schema. The default
// primary key applies when raw is empty, and the fallback key is appended
// unless already present so that ordering is total.
func parseOrderBy(raw string, schema OrderSchema) ([]orderTerm, error) {
	if schema.DefaultPrimary == "" {
		return nil, errors.New("order schema default primary key required")
	}
	if schema.FallbackKey == "" {
		return nil, errors.New("order schema fallback key required")
	}
	for _, key := range []string{schema.DefaultPrimary, schema.FallbackKey} {
		if _, ok := schema.Fields[key]; !ok {
			return nil, fmt.Errorf("order key %q missing from schema fields", key)
		}
	}

	var terms []orderTerm
	seen := map[string]struct{}{}
	for _, seg := range strings.Split(raw, ",") {
		parts := strings.Fields(seg)
		if len(parts) == 0 {
			continue
		}
		key := parts[0]
		if _, ok := schema.Fields[key]; !ok {
			return nil, fmt.Errorf("field %q cannot be used for ordering", key)
		}

		var desc bool
		switch len(parts) {
		case 1:
		case 2:
			switch strings.ToLower(parts[1]) {
			case "asc":
			case "desc":
				desc = true
			default:
				return nil, fmt.Errorf("invalid direction %q for field %q", parts[1], key)
			}
		default:
			return nil, fmt.Errorf("invalid order segment %q", strings.TrimSpace(seg))
		}

		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate order key %q", key)
		}
		seen[key] = struct{}{}
		terms = append(terms, orderTerm{Key: key, Desc: desc})
	}

	if len(terms) == 0 {
		terms = append(terms, orderTerm{Key: schema.DefaultPrimary, Desc: schema.DefaultPrimaryDesc})
		seen[schema.DefaultPrimary] = struct{}{}
	}
	if _, ok := seen[schema.FallbackKey]; !ok {
		terms = append(terms, orderTerm{Key: schema.FallbackKey, Desc: schema.FallbackDesc})
	}
	return terms, nil
}

func orderClause(terms []orderTerm, schema OrderSchema) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		dir := "ASC"
		if t.Desc {
			dir = "DESC"
		}
		parts = append(parts, schema.Fields[t.Key].Expr+" "+dir)
	}
	return strings.Join(parts, ", ")
}

func setOrderClause(binding any, clause string) error {
	rv := reflect.ValueOf(binding)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("binding must be a non-nil pointer")
	}

	target := rv.Elem()
	if target.Kind() != reflect.Struct {
		return errors.New("binding must point to a struct")
	}

	field := target.FieldByName("OrderBy")
	if !field.IsValid() {
		return fmt.Errorf("params struct %s has no field named %q", target.Type(), "OrderBy")
	}
	if !field.CanSet() || field.Kind() != reflect.String {
		return fmt.Errorf("field %q on params struct must be a settable string", "OrderBy")
	}
	field.SetString(clause)
	return nil
}
