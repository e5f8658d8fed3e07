package filter

import (
	"fmt"
	"strings"
)

// Term is the body of a Clause: either a Restriction or a NestedRestriction.
// The interface is sealed; no other types implement it.
type Term interface {
	isTerm()
}

// Restriction is a single predicate on a property.
type Restriction struct {
	// Property is a dotted path into the queried entity, e.g. "alarm.severity".
	Property   string
	Comparator Comparator
	// Value is nil for comparators that take no value.
	Value Value
}

func (Restriction) isTerm() {}

// NewRestriction builds a validated restriction. Passing more than one value produces a List,
// which only CONTAINS accepts.
func NewRestriction(property string, comparator Comparator, values ...any) (Restriction, error) {
	r := Restriction{Property: property, Comparator: comparator}
	switch len(values) {
	case 0:
	case 1:
		v, err := ValueOf(values[0])
		if err != nil {
			return Restriction{}, withProperty(err, property)
		}
		r.Value = v
	default:
		v, err := ValueOf(values)
		if err != nil {
			return Restriction{}, withProperty(err, property)
		}
		r.Value = v
	}
	if err := r.Validate(); err != nil {
		return Restriction{}, err
	}
	return r, nil
}

// Validate checks the property name and the comparator arity.
func (r Restriction) Validate() error {
	if strings.TrimSpace(r.Property) == "" {
		return &CompileError{Kind: ErrInvalidArity, Comparator: r.Comparator, Msg: "restriction has no property"}
	}
	if bad, ok := r.Value.(invalid); ok {
		return withProperty(bad.err, r.Property)
	}
	return withProperty(r.Comparator.Validate(r.Value), r.Property)
}

func (r Restriction) String() string {
	if r.Value == nil {
		return fmt.Sprintf("%s %s", r.Property, r.Comparator)
	}
	if s, err := Encode(r.Value); err == nil {
		return fmt.Sprintf("%s %s %s", r.Property, r.Comparator, s)
	}
	return fmt.Sprintf("%s %s %v", r.Property, r.Comparator, r.Value)
}

// Eq restricts property to value.
func Eq(property string, value any) Restriction {
	return Restriction{Property: property, Comparator: EQ, Value: lift(value)}
}

// Ne restricts property to anything but value.
func Ne(property string, value any) Restriction {
	return Restriction{Property: property, Comparator: NE, Value: lift(value)}
}

// Lt restricts property to values below value.
func Lt(property string, value any) Restriction {
	return Restriction{Property: property, Comparator: LT, Value: lift(value)}
}

// Le restricts property to values at or below value.
func Le(property string, value any) Restriction {
	return Restriction{Property: property, Comparator: LE, Value: lift(value)}
}

// Gt restricts property to values above value.
func Gt(property string, value any) Restriction {
	return Restriction{Property: property, Comparator: GT, Value: lift(value)}
}

// Ge restricts property to values at or above value.
func Ge(property string, value any) Restriction {
	return Restriction{Property: property, Comparator: GE, Value: lift(value)}
}

// Like matches property against a pattern using * wildcards.
func Like(property, pattern string) Restriction {
	return Restriction{Property: property, Comparator: LIKE, Value: String(pattern)}
}

// ILike is the case-insensitive Like.
func ILike(property, pattern string) Restriction {
	return Restriction{Property: property, Comparator: ILIKE, Value: String(pattern)}
}

// IsNull matches entities where property is unset.
func IsNull(property string) Restriction {
	return Restriction{Property: property, Comparator: NULL}
}

// NotNull matches entities where property is set.
func NotNull(property string) Restriction {
	return Restriction{Property: property, Comparator: NOTNULL}
}

// Contains matches property against one value or any of several values.
func Contains(property string, values ...any) Restriction {
	r := Restriction{Property: property, Comparator: CONTAINS}
	switch len(values) {
	case 0:
	case 1:
		r.Value = lift(values[0])
	default:
		r.Value = lift(values)
	}
	return r
}
