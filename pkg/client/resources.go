package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mhuot/go-opennms/pkg/filter"
)

// ResourceService queries one ReST collection such as alarms or nodes.
type ResourceService struct {
	client    *Client
	transport Transport
	name      string
	processor filter.Processor
}

// Name returns the resource name, e.g. "alarms".
func (s *ResourceService) Name() string { return s.name }

// WithProcessor returns a copy of the service that compiles filters with p, which also
// selects the endpoint family.
func (s *ResourceService) WithProcessor(p filter.Processor) *ResourceService {
	cp := *s
	cp.processor = p
	return &cp
}

// Processor returns the processor used by Find.
func (s *ResourceService) Processor() filter.Processor { return s.processor }

// Endpoint returns the collection path for the processor's API version.
func (s *ResourceService) Endpoint() string {
	if s.processor.Version() == filter.V1 {
		return "rest/" + s.name
	}
	return "api/v2/" + s.name
}

// Find compiles f and fetches the matching entities. Compile errors are returned
// before any request is made.
func (s *ResourceService) Find(ctx context.Context, f *filter.Filter, opts ...RequestOption) (*Response, error) {
	params, err := s.processor.Parameters(f)
	if err != nil {
		return nil, err
	}
	return s.transport.Do(ctx, http.MethodGet, s.Endpoint(), params, opts...)
}

// Get fetches a single entity by ID.
func (s *ResourceService) Get(ctx context.Context, id int, opts ...RequestOption) (*Response, error) {
	if id < 0 {
		return nil, fmt.Errorf("onms: invalid %s id %d", s.name, id)
	}
	return s.transport.Do(ctx, http.MethodGet, s.Endpoint()+"/"+strconv.Itoa(id), nil, opts...)
}

// SearchProperties lists the filterable properties of the resource. It fails with
// filter.ErrUnsupportedOperation on v1 without contacting the server.
func (s *ResourceService) SearchProperties(ctx context.Context) ([]filter.SearchProperty, error) {
	return s.processor.SearchProperties(ctx, s.client, s.name)
}

// TypedProcessor fetches the search properties and returns a v2 processor that
// coerces string values to their declared types.
func (s *ResourceService) TypedProcessor(ctx context.Context) (filter.Processor, error) {
	props, err := s.SearchProperties(ctx)
	if err != nil {
		return nil, err
	}
	opts := append(append([]filter.V2Option(nil), s.client.v2Options...), filter.WithPropertyTypes(props))
	return filter.NewV2Processor(opts...), nil
}
