package filter

import (
	"fmt"
	"strings"
)

// MaxDepth bounds how deeply groups may be nested.
const MaxDepth = 32

// NestedRestriction is a parenthesized group of clauses. It is owned by exactly one Clause.
type NestedRestriction struct {
	Clauses []Clause
}

func (NestedRestriction) isTerm() {}

// Group builds a nested restriction from clauses.
func Group(clauses ...Clause) NestedRestriction {
	return NestedRestriction{Clauses: clauses}
}

// WithAndRestriction appends t joined by AND.
func (n NestedRestriction) WithAndRestriction(t Term) NestedRestriction {
	n.Clauses = append(cloneClauses(n.Clauses), Clause{Restriction: t, Operator: AND})
	return n
}

// WithOrRestriction appends t joined by OR.
func (n NestedRestriction) WithOrRestriction(t Term) NestedRestriction {
	n.Clauses = append(cloneClauses(n.Clauses), Clause{Restriction: t, Operator: OR})
	return n
}

// Clause pairs a term with the operator joining it to the next clause of its group.
// The operator of the last clause in a group is not used.
type Clause struct {
	Restriction Term
	Operator    Operator
}

// And returns a clause joined to its successor by AND.
func And(t Term) Clause { return Clause{Restriction: t, Operator: AND} }

// Or returns a clause joined to its successor by OR.
func Or(t Term) Clause { return Clause{Restriction: t, Operator: OR} }

func (c Clause) String() string {
	switch t := c.Restriction.(type) {
	case Restriction:
		return t.String()
	case *Restriction:
		if t != nil {
			return t.String()
		}
	case NestedRestriction:
		return groupString(t.Clauses)
	case *NestedRestriction:
		if t != nil {
			return groupString(t.Clauses)
		}
	}
	return "<nil>"
}

func groupString(clauses []Clause) string {
	var b strings.Builder
	b.WriteString("(")
	for i, c := range clauses {
		if i > 0 {
			b.WriteString(" ")
			b.WriteString(clauses[i-1].Operator.String())
			b.WriteString(" ")
		}
		b.WriteString(c.String())
	}
	b.WriteString(")")
	return b.String()
}

// unpack resolves a term into either a restriction or a group.
func unpack(t Term) (*Restriction, *NestedRestriction, error) {
	switch x := t.(type) {
	case Restriction:
		return &x, nil, nil
	case *Restriction:
		if x != nil {
			return x, nil, nil
		}
	case NestedRestriction:
		return nil, &x, nil
	case *NestedRestriction:
		if x != nil {
			return nil, x, nil
		}
	}
	return nil, nil, &CompileError{Kind: ErrInvalidArity, Msg: "clause has no restriction"}
}

// Walk visits every restriction depth-first. depth is 0 for top-level clauses.
func Walk(clauses []Clause, fn func(r Restriction, depth int) error) error {
	return walk(clauses, 0, fn)
}

func walk(clauses []Clause, depth int, fn func(Restriction, int) error) error {
	if depth > MaxDepth {
		return &CompileError{Kind: ErrNestingDepth, Msg: fmt.Sprintf("groups nested deeper than %d", MaxDepth)}
	}
	for _, c := range clauses {
		r, g, err := unpack(c.Restriction)
		if err != nil {
			return err
		}
		if g != nil {
			if err := walk(g.Clauses, depth+1, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(*r, depth); err != nil {
			return err
		}
	}
	return nil
}

// checkGroup validates a clause group and its descendants: restriction arity,
// operator validity and operator consistency inside each group.
func checkGroup(clauses []Clause, depth int) error {
	if depth > MaxDepth {
		return &CompileError{Kind: ErrNestingDepth, Msg: fmt.Sprintf("groups nested deeper than %d", MaxDepth)}
	}
	var joined Operator
	for i, c := range clauses {
		if i < len(clauses)-1 {
			if !c.Operator.Valid() {
				return &CompileError{Kind: ErrMixedOperator, Operator: c.Operator, Msg: fmt.Sprintf("clause %d has no boolean operator", i)}
			}
			if joined != 0 && joined != c.Operator {
				return &CompileError{
					Kind:     ErrMixedOperator,
					Operator: c.Operator,
					Msg:      fmt.Sprintf("clause %d is joined by %s but the group is joined by %s; use a nested group", i, c.Operator, joined),
				}
			}
			joined = c.Operator
		}

		r, g, err := unpack(c.Restriction)
		if err != nil {
			return err
		}
		if g != nil {
			if len(g.Clauses) == 0 {
				return &CompileError{Kind: ErrUnsupportedOperation, Msg: "empty nested group"}
			}
			if err := checkGroup(g.Clauses, depth+1); err != nil {
				return err
			}
			continue
		}
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func cloneClauses(clauses []Clause) []Clause {
	if clauses == nil {
		return nil
	}
	out := make([]Clause, len(clauses))
	for i, c := range clauses {
		out[i] = Clause{Restriction: cloneTerm(c.Restriction), Operator: c.Operator}
	}
	return out
}

func cloneTerm(t Term) Term {
	switch x := t.(type) {
	case NestedRestriction:
		return NestedRestriction{Clauses: cloneClauses(x.Clauses)}
	case *NestedRestriction:
		if x == nil {
			return x
		}
		return NestedRestriction{Clauses: cloneClauses(x.Clauses)}
	case Restriction:
		return Restriction{Property: x.Property, Comparator: x.Comparator, Value: cloneValue(x.Value)}
	case *Restriction:
		if x == nil {
			return x
		}
		return Restriction{Property: x.Property, Comparator: x.Comparator, Value: cloneValue(x.Value)}
	default:
		return t
	}
}

func cloneValue(v Value) Value {
	if l, ok := v.(List); ok {
		return append(List(nil), l...)
	}
	return v
}
