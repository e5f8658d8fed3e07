package filter

import (
	"context"
	"net/url"
)

// V1Processor compiles filters into the legacy flat query-parameter form:
//
//	?severity=MINOR&ackTime=null&comparator=eq&limit=1000
//
// The flat form has one slot per property and a single global comparator, so it
// rejects nested groups, repeated properties and mixed relational comparators.
type V1Processor struct{}

var _ Processor = (*V1Processor)(nil)

// NewV1Processor returns the legacy processor.
func NewV1Processor() *V1Processor {
	return &V1Processor{}
}

// Version implements Processor.
func (p *V1Processor) Version() APIVersion { return V1 }

// Parameters implements Processor.
func (p *V1Processor) Parameters(f *Filter) (url.Values, error) {
	if f == nil {
		return url.Values{}, nil
	}
	if err := checkGroup(f.Clauses, 0); err != nil {
		return nil, err
	}
	params, err := pagingParameters(f)
	if err != nil {
		return nil, err
	}

	var (
		comparator Comparator
		seen       = make(map[string]bool, len(f.Clauses))
	)
	for _, c := range f.Clauses {
		r, g, err := unpack(c.Restriction)
		if err != nil {
			return nil, err
		}
		if g != nil {
			return nil, &CompileError{Kind: ErrUnsupportedOperation, Msg: "the v1 API does not support nested restrictions"}
		}
		if isReservedV1(r.Property) {
			return nil, &CompileError{Kind: ErrUnsupportedOperation, Property: r.Property, Msg: "property collides with a reserved parameter"}
		}
		if seen[r.Property] {
			return nil, &CompileError{Kind: ErrUnsupportedOperation, Property: r.Property, Msg: "cannot restrict a property more than once"}
		}
		seen[r.Property] = true

		if !r.Comparator.Relational() {
			params.Set(r.Property, r.Comparator.Token())
			continue
		}
		if _, isList := r.Value.(List); isList {
			return nil, &CompileError{
				Kind:       ErrUnsupportedComparator,
				Property:   r.Property,
				Comparator: r.Comparator,
				Msg:        "the v1 API cannot match against a list of values",
			}
		}
		if comparator != 0 && comparator != r.Comparator {
			return nil, &CompileError{
				Kind:       ErrUnsupportedComparator,
				Property:   r.Property,
				Comparator: r.Comparator,
				Msg:        "the v1 API supports one comparator per query but " + comparator.Token() + " is already in use",
			}
		}
		comparator = r.Comparator

		value, err := Encode(r.Value)
		if err != nil {
			return nil, withProperty(err, r.Property)
		}
		params.Set(r.Property, value)
	}

	if comparator != 0 && (len(f.Clauses) > 1 || comparator != EQ) {
		params.Set(ParamComparator, comparator.Token())
	}
	return params, nil
}

// SearchProperties implements Processor. The v1 API has no property discovery.
func (p *V1Processor) SearchProperties(_ context.Context, _ PropertyLister, resource string) ([]SearchProperty, error) {
	return nil, &CompileError{
		Kind: ErrUnsupportedOperation,
		Msg:  "search properties for " + resource + " require the v2 API",
	}
}

func isReservedV1(property string) bool {
	switch property {
	case ParamLimit, ParamOffset, ParamOrderBy, ParamOrder, ParamComparator:
		return true
	}
	return false
}
