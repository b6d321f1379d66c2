package filterexpr

import (
	"fmt"
	"sort"
	"strings"
)

// SortKey is one parsed order_by segment.
type SortKey struct {
	Key  string
	Desc bool
}

// OrderSchema describes the whitelisted order keys and the default ordering.
type OrderSchema struct {
	Default     string
	DefaultDesc bool
	Keys        map[string]struct{}
}

// ParseOrderBy parses an AIP-132 style "key [asc|desc], key ..." clause into
// sort keys. An empty clause yields the schema default.
func ParseOrderBy(raw string, schema OrderSchema) ([]SortKey, error) {
	if schema.Default == "" {
		return nil, fmt.Errorf("order schema default key required")
	}
	if _, ok := schema.Keys[schema.Default]; !ok {
		return nil, fmt.Errorf("order key %q missing from schema keys", schema.Default)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []SortKey{{Key: schema.Default, Desc: schema.DefaultDesc}}, nil
	}

	var keys []SortKey
	seen := make(map[string]struct{})
	for _, seg := range strings.Split(raw, ",") {
		parts := strings.Fields(seg)
		if len(parts) == 0 {
			continue
		}
		if len(parts) > 2 {
			return nil, fmt.Errorf("order segment %q has too many tokens", strings.TrimSpace(seg))
		}

		key := parts[0]
		if _, ok := schema.Keys[key]; !ok {
			return nil, fmt.Errorf("order key %q is not allowed", key)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("order key %q appears more than once", key)
		}
		seen[key] = struct{}{}

		desc := false
		if len(parts) == 2 {
			switch strings.ToLower(parts[1]) {
			case "asc":
			case "desc":
				desc = true
			default:
				return nil, fmt.Errorf("order direction %q is not supported", parts[1])
			}
		}
		keys = append(keys, SortKey{Key: key, Desc: desc})
	}

	if len(keys) == 0 {
		return []SortKey{{Key: schema.Default, Desc: schema.DefaultDesc}}, nil
	}
	return keys, nil
}

// Sort stably sorts items by the parsed keys, reading each item's values
// through vars. Values compare as strings, float64 numbers or bools; mixed
// kinds under one key compare as equal.
func Sort[T any](items []T, keys []SortKey, vars func(T) map[string]any) {
	if len(keys) == 0 {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := vars(items[i]), vars(items[j])
		for _, key := range keys {
			c := compareValues(a[key.Key], b[key.Key])
			if c == 0 {
				continue
			}
			if key.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0
		}
		return strings.Compare(av, bv)
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 0
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0
		}
		if av == bv {
			return 0
		}
		if !av {
			return -1
		}
		return 1
	}
	return 0
}
