// Package where parses the textual restriction syntax shared by the command line tools.
package where

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/mhuot/go-opennms/pkg/filter"
	"github.com/mhuot/go-opennms/pkg/onms"
)

// symbols are tried longest first so that ">=" is not read as ">".
var symbols = []string{"==", "!=", "<>", ">=", "<=", "=", ">", "<"}

// Parse reads "property comparator [value]", e.g.
//
//	alarm.severity ge MAJOR
//	node.label like "web*"
//	alarm.ackTime is null
//	alarm.id>=10
//	alarm.id >=10
func Parse(expr string) (filter.Restriction, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return filter.Restriction{}, fmt.Errorf("empty --where expression")
	}

	property, rest := splitFirst(expr)
	if rest == "" {
		if p, op, v, ok := splitSymbol(expr); ok {
			property, rest = p, op+" "+v
		}
	}
	if rest == "" {
		return filter.Restriction{}, fmt.Errorf("%q: expected \"property comparator [value]\"", expr)
	}

	lower := strings.ToLower(rest)
	for _, nullary := range []string{"is not null", "is null"} {
		if lower == nullary {
			cmp, _ := filter.ParseComparator(nullary)
			return filter.NewRestriction(property, cmp)
		}
	}

	token, raw := splitFirst(rest)
	cmp, err := filter.ParseComparator(token)
	if err != nil {
		// "alarm.id >=10" and "alarm.id>= 10" put the symbol against a neighbour.
		p, op, v, ok := splitSymbol(expr)
		if !ok {
			return filter.Restriction{}, fmt.Errorf("%q: %w", expr, err)
		}
		if cmp, err = filter.ParseComparator(op); err != nil {
			return filter.Restriction{}, fmt.Errorf("%q: %w", expr, err)
		}
		property, raw = strings.TrimSpace(p), strings.TrimSpace(v)
		if property == "" {
			return filter.Restriction{}, fmt.Errorf("%q: missing property", expr)
		}
	}
	if !cmp.Relational() {
		if raw != "" {
			return filter.Restriction{}, fmt.Errorf("%q: %s does not take a value", expr, cmp.Token())
		}
		return filter.NewRestriction(property, cmp)
	}
	if raw == "" {
		return filter.Restriction{}, fmt.Errorf("%q: %s requires a value", expr, cmp.Token())
	}

	values, err := Values(property, cmp, raw)
	if err != nil {
		return filter.Restriction{}, fmt.Errorf("%q: %w", expr, err)
	}
	return filter.NewRestriction(property, cmp, values...)
}

func splitFirst(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func splitSymbol(s string) (property, op, value string, ok bool) {
	best := -1
	for _, sym := range symbols {
		if i := strings.Index(s, sym); i > 0 && (best < 0 || i < best || (i == best && len(sym) > len(op))) {
			best, op = i, sym
		}
	}
	if best < 0 {
		return "", "", "", false
	}
	return s[:best], op, s[best+len(op):], true
}

// Values parses the raw value text of a restriction using cmp to decide how to split it.
func Values(property string, cmp filter.Comparator, raw string) ([]any, error) {
	switch cmp {
	case filter.LIKE, filter.ILIKE:
		return []any{unquote(raw)}, nil
	case filter.CONTAINS:
		parts := strings.Split(raw, ",")
		values := make([]any, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			values = append(values, Value(property, part))
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("contains requires at least one value")
		}
		return values, nil
	default:
		return []any{Value(property, raw)}, nil
	}
}

// Value picks the narrowest type for raw: int, float, bool, time, IP address,
// severity for *severity properties, then string. Quoted values are always strings.
func Value(property, raw string) any {
	if s, quoted := unquoteOK(raw); quoted {
		return s
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if strings.EqualFold(raw, "true") || strings.EqualFold(raw, "false") {
		return strings.EqualFold(raw, "true")
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t
	}
	if addr, err := netip.ParseAddr(raw); err == nil {
		return addr
	}
	if strings.HasSuffix(strings.ToLower(property), "severity") {
		if s, err := onms.ParseSeverity(raw); err == nil {
			return s
		}
	}
	return raw
}

func unquote(s string) string {
	v, _ := unquoteOK(s)
	return v
}

func unquoteOK(s string) (string, bool) {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1], true
		}
	}
	return s, false
}

// OrderBy reads "property[:asc|:desc]".
func OrderBy(s string) (filter.OrderBy, error) {
	property, dir, _ := strings.Cut(s, ":")
	property = strings.TrimSpace(property)
	if property == "" {
		return filter.OrderBy{}, fmt.Errorf("%q: missing property", s)
	}
	d, err := filter.ParseDirection(dir)
	if err != nil {
		return filter.OrderBy{}, err
	}
	return filter.OrderBy{Property: property, Direction: d}, nil
}
