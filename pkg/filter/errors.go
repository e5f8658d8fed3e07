package filter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArity is returned when a restriction's value presence disagrees with its comparator.
	ErrInvalidArity = errors.New("filter: invalid arity")
	// ErrMixedOperator is returned when a clause group mixes AND and OR.
	ErrMixedOperator = errors.New("filter: mixed boolean operators")
	// ErrUnsupportedComparator is returned when the target protocol cannot express a comparator combination.
	ErrUnsupportedComparator = errors.New("filter: unsupported comparator")
	// ErrCoercion is returned when a value cannot be normalized to its wire form.
	ErrCoercion = errors.New("filter: coercion failed")
	// ErrUnsupportedOperation is returned when a capability is not available in the selected protocol version.
	ErrUnsupportedOperation = errors.New("filter: unsupported operation")
	// ErrNestingDepth is returned when nested groups exceed MaxDepth.
	ErrNestingDepth = errors.New("filter: nesting too deep")
	// ErrInvalidPaging is returned for a non-positive limit or a negative offset.
	ErrInvalidPaging = errors.New("filter: invalid paging")
)

// CompileError describes a filter that cannot be compiled.
// Kind is one of the package sentinels and is returned by Unwrap.
type CompileError struct {
	Kind       error
	Property   string
	Comparator Comparator
	Operator   Operator
	Msg        string
}

func (e *CompileError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	if e.Kind != nil {
		b.WriteString(e.Kind.Error())
	} else {
		b.WriteString("filter: compile error")
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	var ctx []string
	if e.Property != "" {
		ctx = append(ctx, fmt.Sprintf("property=%s", e.Property))
	}
	if e.Comparator.Valid() {
		ctx = append(ctx, fmt.Sprintf("comparator=%s", e.Comparator.Token()))
	}
	if e.Operator.Valid() {
		ctx = append(ctx, fmt.Sprintf("operator=%s", e.Operator))
	}
	if len(ctx) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(ctx, ", "))
		b.WriteString(")")
	}
	return b.String()
}

func (e *CompileError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

// withProperty fills in the property on a CompileError produced below the restriction level.
func withProperty(err error, property string) error {
	var ce *CompileError
	if errors.As(err, &ce) && ce.Property == "" {
		cp := *ce
		cp.Property = property
		return &cp
	}
	return err
}
