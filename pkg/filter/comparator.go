package filter

import (
	"fmt"
	"strings"
)

// Comparator is a comparison operator used by a Restriction.
type Comparator int

const (
	EQ Comparator = iota + 1
	NE
	LT
	LE
	GT
	GE
	LIKE
	ILIKE
	NULL
	NOTNULL
	CONTAINS
)

// Arity describes whether a comparator takes a value.
type Arity int

const (
	// ArityValue requires exactly one scalar value.
	ArityValue Arity = iota
	// ArityNone forbids a value.
	ArityNone
	// ArityList requires a value, either a scalar or a List.
	ArityList
)

var comparatorTokens = map[Comparator]string{
	EQ:       "eq",
	NE:       "ne",
	LT:       "lt",
	LE:       "le",
	GT:       "gt",
	GE:       "ge",
	LIKE:     "like",
	ILIKE:    "ilike",
	NULL:     "null",
	NOTNULL:  "notnull",
	CONTAINS: "contains",
}

// Comparators lists every comparator in declaration order.
var Comparators = []Comparator{EQ, NE, LT, LE, GT, GE, LIKE, ILIKE, NULL, NOTNULL, CONTAINS}

// Token returns the canonical wire token, e.g. "eq" or "notnull".
func (c Comparator) Token() string {
	return comparatorTokens[c]
}

func (c Comparator) String() string {
	if t, ok := comparatorTokens[c]; ok {
		return strings.ToUpper(t)
	}
	return fmt.Sprintf("Comparator(%d)", int(c))
}

// Valid reports whether c is one of the declared comparators.
func (c Comparator) Valid() bool {
	_, ok := comparatorTokens[c]
	return ok
}

// Arity returns the value requirement of the comparator.
func (c Comparator) Arity() Arity {
	switch c {
	case NULL, NOTNULL:
		return ArityNone
	case CONTAINS:
		return ArityList
	default:
		return ArityValue
	}
}

// Relational reports whether the comparator compares against a value.
// Null checks are the only non-relational comparators.
func (c Comparator) Relational() bool {
	return c.Arity() != ArityNone
}

// Validate checks that the presence of v matches the comparator's arity.
func (c Comparator) Validate(v Value) error {
	if !c.Valid() {
		return &CompileError{Kind: ErrUnsupportedComparator, Comparator: c, Msg: "unknown comparator"}
	}
	switch c.Arity() {
	case ArityNone:
		if v != nil {
			return &CompileError{Kind: ErrInvalidArity, Comparator: c, Msg: "comparator does not take a value"}
		}
	case ArityValue:
		if v == nil {
			return &CompileError{Kind: ErrInvalidArity, Comparator: c, Msg: "comparator requires a value"}
		}
		if _, isList := v.(List); isList {
			return &CompileError{Kind: ErrInvalidArity, Comparator: c, Msg: "comparator does not accept a list"}
		}
	case ArityList:
		if v == nil {
			return &CompileError{Kind: ErrInvalidArity, Comparator: c, Msg: "comparator requires a value"}
		}
		if l, isList := v.(List); isList && len(l) == 0 {
			return &CompileError{Kind: ErrInvalidArity, Comparator: c, Msg: "comparator requires a non-empty list"}
		}
	}
	return nil
}

// ParseComparator resolves a wire token or symbolic name ("eq", "EQ", "!=", "is null").
func ParseComparator(s string) (Comparator, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "=", "==":
		return EQ, nil
	case "!=", "<>":
		return NE, nil
	case "<":
		return LT, nil
	case "<=":
		return LE, nil
	case ">":
		return GT, nil
	case ">=":
		return GE, nil
	case "is null", "isnull":
		return NULL, nil
	case "is not null", "isnotnull":
		return NOTNULL, nil
	case "in":
		return CONTAINS, nil
	}
	for c, token := range comparatorTokens {
		if token == key {
			return c, nil
		}
	}
	return 0, &CompileError{Kind: ErrUnsupportedComparator, Msg: fmt.Sprintf("unknown comparator %q", s)}
}
