package types

import (
	"strings"

	"github.com/arthur-debert/quicken/pkg/errors"
)

// CanonicalKey normalizes an argument key: surrounding space is trimmed, the
// key is lowercased, and dashes and inner spaces become underscores.
func CanonicalKey(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return '_'
		}
		return r
	}, k)
}

// WithCanonicalKeys returns a copy of a mapping whose top-level keys are in
// canonical form. Two source keys collapsing onto the same canonical key is an
// argument error. Non-mapping values are returned unchanged.
func (v Value) WithCanonicalKeys() (Value, error) {
	if v.kind != KindMap {
		return v, nil
	}
	entries := make([]Entry, 0, len(v.keys))
	origin := make(map[string]string, len(v.keys))
	for _, k := range v.keys {
		ck := CanonicalKey(k)
		if prev, dup := origin[ck]; dup {
			return Value{}, errors.Newf(errors.ErrInvalidArguments,
				"argument keys %q and %q both normalize to %q", prev, k, ck).
				WithDetail("key", ck)
		}
		origin[ck] = k
		entries = append(entries, Entry{Key: ck, Value: v.items[k]})
	}
	return Map(entries...), nil
}

// OptionalString returns the string stored under key. A missing or null key
// yields "", any other non-scalar yields an argument error.
func (v Value) OptionalString(key string) (string, error) {
	item, ok := v.Get(key)
	if !ok || item.IsAbsent() {
		return "", nil
	}
	s, ok := item.Scalar()
	if !ok {
		return "", errors.Newf(errors.ErrInvalidArguments,
			"argument %q must be a scalar, got %s", key, item.Kind()).
			WithDetail("key", key)
	}
	return s, nil
}

// OptionalBool returns the bool stored under key, false when missing.
func (v Value) OptionalBool(key string) (bool, error) {
	item, ok := v.Get(key)
	if !ok || item.IsAbsent() {
		return false, nil
	}
	if b, ok := item.AsBool(); ok {
		return b, nil
	}
	if s, ok := item.AsString(); ok {
		switch strings.ToLower(s) {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		}
	}
	return false, errors.Newf(errors.ErrInvalidArguments,
		"argument %q must be a boolean, got %s", key, item.String()).
		WithDetail("key", key)
}

// ScalarMap flattens a mapping into template variables. Null entries become
// empty strings, nested mappings or lists are rejected. Keys listed in skip are
// left out.
func (v Value) ScalarMap(skip ...string) (map[string]string, error) {
	out := make(map[string]string)
	if v.kind == KindAbsent {
		return out, nil
	}
	if v.kind != KindMap {
		return nil, errors.Newf(errors.ErrInvalidArguments,
			"expected a mapping of arguments, got %s", v.Kind())
	}
	rest := v.Without(skip...)
	for _, k := range rest.keys {
		s, err := rest.OptionalString(k)
		if err != nil {
			return nil, err
		}
		out[k] = s
	}
	return out, nil
}
