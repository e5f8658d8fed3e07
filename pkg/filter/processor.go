package filter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// APIVersion selects a wire protocol.
type APIVersion int

const (
	// V1 is the legacy ReST API with flat query parameters.
	V1 APIVersion = 1
	// V2 is the ReST API with FIQL search expressions.
	V2 APIVersion = 2
)

func (v APIVersion) String() string {
	return "v" + strconv.Itoa(int(v))
}

// ParseAPIVersion accepts "1", "v1", "2" or "v2".
func ParseAPIVersion(s string) (APIVersion, error) {
	switch s {
	case "1", "v1", "V1":
		return V1, nil
	case "2", "v2", "V2":
		return V2, nil
	}
	return 0, fmt.Errorf("filter: unknown API version %q", s)
}

// Processor compiles a Filter into the query parameters of one protocol version.
// Implementations are stateless per call and safe for concurrent use.
type Processor interface {
	// Version reports the protocol version the processor targets.
	Version() APIVersion

	// Parameters compiles f. It never returns partial output: either every
	// restriction is encoded or an error is returned.
	Parameters(f *Filter) (url.Values, error)

	// SearchProperties lists the properties of resource that can be filtered on.
	// Versions without the capability fail with ErrUnsupportedOperation
	// before lister is called.
	SearchProperties(ctx context.Context, lister PropertyLister, resource string) ([]SearchProperty, error)
}

// NewProcessor returns the processor for version.
func NewProcessor(version APIVersion, opts ...V2Option) (Processor, error) {
	switch version {
	case V1:
		return NewV1Processor(), nil
	case V2:
		return NewV2Processor(opts...), nil
	default:
		return nil, fmt.Errorf("filter: unknown API version %d", int(version))
	}
}

// Parameter names shared by both protocol versions.
const (
	ParamLimit      = "limit"
	ParamOffset     = "offset"
	ParamOrderBy    = "orderBy"
	ParamOrder      = "order"
	ParamComparator = "comparator"
	ParamSearch     = "_s"
)

// pagingParameters emits limit, offset, orderBy and order.
func pagingParameters(f *Filter) (url.Values, error) {
	params := url.Values{}
	if f.Limit != nil {
		if *f.Limit <= 0 {
			return nil, &CompileError{Kind: ErrInvalidPaging, Msg: fmt.Sprintf("limit must be positive, got %d", *f.Limit)}
		}
		params.Set(ParamLimit, strconv.Itoa(*f.Limit))
	}
	if f.Offset != nil {
		if *f.Offset < 0 {
			return nil, &CompileError{Kind: ErrInvalidPaging, Msg: fmt.Sprintf("offset must not be negative, got %d", *f.Offset)}
		}
		params.Set(ParamOffset, strconv.Itoa(*f.Offset))
	}
	if len(f.OrderBy) > 0 {
		direction := f.OrderBy[0].Direction
		for _, o := range f.OrderBy {
			if o.Property == "" {
				return nil, &CompileError{Kind: ErrUnsupportedOperation, Msg: "orderBy has no property"}
			}
			if o.Direction != direction {
				return nil, &CompileError{
					Kind:     ErrUnsupportedOperation,
					Property: o.Property,
					Msg:      "all orderBy entries must share one sort direction",
				}
			}
			params.Add(ParamOrderBy, o.Property)
		}
		params.Set(ParamOrder, direction.Token())
	}
	return params, nil
}
