package filter

import "strings"

// DefaultLimit is the limit applied by NewFilter.
const DefaultLimit = 1000

// OrderBy sorts results on a property.
type OrderBy struct {
	Property  string
	Direction Direction
}

// Filter is the root of a search query: an ordered sequence of clauses plus paging and ordering.
//
// A nil Limit means no limit parameter is sent at all, letting the service apply its own
// default; NewFilter sets it to DefaultLimit.
type Filter struct {
	Clauses []Clause
	Limit   *int
	Offset  *int
	OrderBy []OrderBy
	// ClockFace asks renderers to show times on a 12-hour clock. It has no wire representation.
	ClockFace bool
}

// NewFilter returns an empty filter limited to DefaultLimit results.
func NewFilter() *Filter {
	limit := DefaultLimit
	return &Filter{Limit: &limit}
}

// WithOrRestriction appends t joined to the following clause by OR.
func (f *Filter) WithOrRestriction(t Term) *Filter {
	f.Clauses = append(f.Clauses, Clause{Restriction: t, Operator: OR})
	return f
}

// WithAndRestriction appends t joined to the following clause by AND.
func (f *Filter) WithAndRestriction(t Term) *Filter {
	f.Clauses = append(f.Clauses, Clause{Restriction: t, Operator: AND})
	return f
}

// WithOrGroup appends a nested group of clauses joined to the following clause by OR.
func (f *Filter) WithOrGroup(clauses ...Clause) *Filter {
	return f.WithOrRestriction(Group(clauses...))
}

// WithAndGroup appends a nested group of clauses joined to the following clause by AND.
func (f *Filter) WithAndGroup(clauses ...Clause) *Filter {
	return f.WithAndRestriction(Group(clauses...))
}

// WithLimit sets the maximum number of results.
func (f *Filter) WithLimit(limit int) *Filter {
	f.Limit = &limit
	return f
}

// WithoutLimit clears the limit so no limit parameter is emitted.
func (f *Filter) WithoutLimit() *Filter {
	f.Limit = nil
	return f
}

// WithOffset sets the number of results to skip.
func (f *Filter) WithOffset(offset int) *Filter {
	f.Offset = &offset
	return f
}

// WithOrderBy appends a sort key.
func (f *Filter) WithOrderBy(property string, direction Direction) *Filter {
	f.OrderBy = append(f.OrderBy, OrderBy{Property: property, Direction: direction})
	return f
}

// Clone returns a deep copy of the filter.
func (f *Filter) Clone() *Filter {
	if f == nil {
		return nil
	}
	cp := &Filter{
		Clauses:   cloneClauses(f.Clauses),
		OrderBy:   append([]OrderBy(nil), f.OrderBy...),
		ClockFace: f.ClockFace,
	}
	if f.Limit != nil {
		limit := *f.Limit
		cp.Limit = &limit
	}
	if f.Offset != nil {
		offset := *f.Offset
		cp.Offset = &offset
	}
	return cp
}

// Restrictions returns every restriction in depth-first order.
func (f *Filter) Restrictions() ([]Restriction, error) {
	if f == nil {
		return nil, nil
	}
	var out []Restriction
	err := Walk(f.Clauses, func(r Restriction, _ int) error {
		out = append(out, r)
		return nil
	})
	return out, err
}

func (f *Filter) String() string {
	if f == nil || len(f.Clauses) == 0 {
		return "()"
	}
	s := groupString(f.Clauses)
	return strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
}
