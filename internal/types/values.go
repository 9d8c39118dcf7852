package types

import (
	"maps"
	"slices"
	"strings"

	"github.com/telvora/ucc/internal/util"
)

// Values maps a string key to a list of string values.
// The keys in the map are case-insensitive.
// It is typically used to store URI's or header's parameters.
type Values map[string][]string

// Get returns values associated with the given key.
// If there are no values associated with the key, Get returns the empty slice.
func (vals Values) Get(key string) []string { return vals[util.LCase(key)] }

func (vals Values) First(key string) (string, bool) {
	v := vals[util.LCase(key)]
	if len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// Set sets the key to value. It replaces any existing values.
func (vals Values) Set(key, value string) Values {
	vals[util.LCase(key)] = []string{value}
	return vals
}

func (vals Values) Append(key, value string) Values {
	key = util.LCase(key)
	vals[key] = append(vals[key], value)
	return vals
}

// Del deletes the values associated with the key.
func (vals Values) Del(key string) Values {
	delete(vals, util.LCase(key))
	return vals
}

// Has checks whether a given key is in the list.
func (vals Values) Has(key string) bool {
	_, ok := vals[util.LCase(key)]
	return ok
}

func (vals Values) Clone() Values {
	if vals == nil {
		return nil
	}
	vals2 := make(Values, len(vals))
	for k, v := range vals {
		vals2[k] = slices.Clone(v)
	}
	return vals2
}

func (vals Values) Equal(val any) bool {
	var other Values
	switch v := val.(type) {
	case Values:
		other = v
	case *Values:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return maps.EqualFunc(vals, other, slices.Equal)
}

// Render renders the values as ";"-separated parameters in key order.
// Flag parameters (single empty value) render without "=".
func (vals Values) Render(sb *strings.Builder) {
	for _, key := range slices.Sorted(maps.Keys(vals)) {
		for _, val := range vals[key] {
			sb.WriteByte(';')
			sb.WriteString(key)
			if val != "" {
				sb.WriteByte('=')
				sb.WriteString(val)
			}
		}
	}
}

// ParseValues parses ";"-separated parameters into Values.
// The input must not include the leading ";".
func ParseValues(s string) Values {
	vals := make(Values)
	for part := range strings.SplitSeq(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if name, val, ok := strings.Cut(part, "="); ok {
			vals.Append(name, strings.TrimSpace(val))
		} else {
			vals.Append(part, "")
		}
	}
	return vals
}
