package filter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhuot/go-opennms/pkg/filter"
	"github.com/mhuot/go-opennms/pkg/onms"
)

var alarmProperties = []filter.SearchProperty{
	{ID: "alarm.id", Type: filter.TypeInteger},
	{ID: "alarm.lastEventTime", Type: filter.TypeTimestamp},
	{ID: "alarm.isAcknowledged", Type: filter.TypeBoolean},
	{ID: "alarm.count", Type: filter.TypeLong},
	{ID: "alarm.ipAddr", Type: filter.TypeIPAddress, IPLike: true},
	{ID: "alarm.uei", Type: filter.TypeString},
}

func TestV2Search(t *testing.T) {
	tests := []struct {
		name   string
		filter *filter.Filter
		want   string
	}{
		{
			name:   "equality with enum",
			filter: filter.NewFilter().WithAndRestriction(filter.Eq("alarm.severity", onms.Minor)),
			want:   "alarm.severity==MINOR",
		},
		{
			name: "null checks",
			filter: filter.NewFilter().
				WithOrRestriction(filter.NotNull("alarm.id")).
				WithOrRestriction(filter.IsNull("alarm.ackUser")),
			want: "alarm.id!=\u0000,alarm.ackUser==\u0000",
		},
		{
			name:   "timestamp null sentinel",
			filter: filter.NewFilter().WithAndRestriction(filter.IsNull("alarm.lastEventTime")),
			want:   "alarm.lastEventTime==1970-01-01T00:00:00.000+0000",
		},
		{
			name: "relational operators",
			filter: filter.NewFilter().
				WithAndRestriction(filter.Gt("alarm.id", 1)).
				WithAndRestriction(filter.Ge("alarm.count", 2)).
				WithAndRestriction(filter.Lt("alarm.id", 100)).
				WithAndRestriction(filter.Le("alarm.count", 3.5)).
				WithAndRestriction(filter.Ne("alarm.severity", onms.Cleared)),
			want: "alarm.id=gt=1;alarm.count=ge=2;alarm.id=lt=100;alarm.count=le=3.5;alarm.severity!=CLEARED",
		},
		{
			name: "nested group",
			filter: filter.NewFilter().
				WithAndRestriction(filter.NotNull("alarm.id")).
				WithAndGroup(
					filter.Or(filter.Eq("alarm.severity", onms.Major)),
					filter.Or(filter.Eq("alarm.severity", onms.Critical)),
				),
			want: "alarm.id!=\u0000;(alarm.severity==MAJOR,alarm.severity==CRITICAL)",
		},
		{
			name:   "like keeps wildcards",
			filter: filter.NewFilter().WithAndRestriction(filter.Like("alarm.uei", "*linkDown*")),
			want:   "alarm.uei==*linkDown*",
		},
		{
			name:   "ilike",
			filter: filter.NewFilter().WithAndRestriction(filter.ILike("node.label", "web*")),
			want:   "node.label==web*",
		},
		{
			name:   "contains list",
			filter: filter.NewFilter().WithAndRestriction(filter.Contains("node.label", "a", "b")),
			want:   "(node.label==a,node.label==b)",
		},
		{
			name:   "contains scalar",
			filter: filter.NewFilter().WithAndRestriction(filter.Contains("alarm.uei", "down")),
			want:   "alarm.uei==*down*",
		},
		{
			name:   "reserved characters are escaped",
			filter: filter.NewFilter().WithAndRestriction(filter.Eq("node.label", "a;b,c(d)*")),
			want:   "node.label==a%3Bb%2Cc%28d%29%2A",
		},
		{
			name: "date value",
			filter: filter.NewFilter().
				WithAndRestriction(filter.Gt("alarm.lastEventTime", time.UnixMilli(1502195396000))),
			want: "alarm.lastEventTime=gt=2017-08-08T12:29:56.000+0000",
		},
		{
			name: "typed string coercion",
			filter: filter.NewFilter().
				WithAndRestriction(filter.Ge("alarm.lastEventTime", "2017-08-08T14:29:56+02:00")).
				WithAndRestriction(filter.Eq("alarm.isAcknowledged", "TRUE")).
				WithAndRestriction(filter.Eq("alarm.ipAddr", "::ffff:10.0.0.1")),
			want: "alarm.lastEventTime=ge=2017-08-08T12:29:56.000+0000;alarm.isAcknowledged==true;alarm.ipAddr==10.0.0.1",
		},
		{
			name:   "iplike expression passes through",
			filter: filter.NewFilter().WithAndRestriction(filter.Eq("alarm.ipAddr", "192.168.*.*")),
			want:   "alarm.ipAddr==192.168.*.*",
		},
	}

	p := filter.NewV2Processor(filter.WithPropertyTypes(alarmProperties))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := p.Parameters(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, params.Get(filter.ParamSearch))
			assert.Equal(t, "1000", params.Get(filter.ParamLimit))
		})
	}
}

func TestV2ParametersPaging(t *testing.T) {
	f := filter.NewFilter().
		WithLimit(5).
		WithOffset(10).
		WithOrderBy("alarm.lastEventTime", filter.ASC)

	params, err := filter.NewV2Processor().Parameters(f)
	require.NoError(t, err)
	assert.Equal(t, "5", params.Get("limit"))
	assert.Equal(t, "10", params.Get("offset"))
	assert.Equal(t, "alarm.lastEventTime", params.Get("orderBy"))
	assert.Equal(t, "asc", params.Get("order"))
	assert.False(t, params.Has(filter.ParamSearch))

	params, err = filter.NewV2Processor().Parameters(filter.NewFilter().WithoutLimit())
	require.NoError(t, err)
	assert.Empty(t, params)
}

func TestV2ParametersErrors(t *testing.T) {
	deep := filter.Group(filter.And(filter.NotNull("alarm.id")))
	for i := 0; i < filter.MaxDepth+1; i++ {
		deep = filter.Group(filter.And(deep))
	}

	tests := []struct {
		name   string
		filter *filter.Filter
		kind   error
	}{
		{
			name:   "severity without a label",
			filter: filter.NewFilter().WithAndRestriction(filter.Eq("alarm.severity", onms.Severity(42))),
			kind:   filter.ErrCoercion,
		},
		{
			name: "mixed operators in one group",
			filter: filter.NewFilter().
				WithAndRestriction(filter.NotNull("a")).
				WithOrRestriction(filter.NotNull("b")).
				WithAndRestriction(filter.NotNull("c")),
			kind: filter.ErrMixedOperator,
		},
		{
			name:   "nesting too deep",
			filter: filter.NewFilter().WithAndRestriction(deep),
			kind:   filter.ErrNestingDepth,
		},
		{
			name:   "empty group",
			filter: filter.NewFilter().WithAndGroup(),
			kind:   filter.ErrUnsupportedOperation,
		},
		{
			name:   "integer coercion",
			filter: filter.NewFilter().WithAndRestriction(filter.Eq("alarm.id", "abc")),
			kind:   filter.ErrCoercion,
		},
		{
			name:   "timestamp coercion",
			filter: filter.NewFilter().WithAndRestriction(filter.Eq("alarm.lastEventTime", "yesterday")),
			kind:   filter.ErrCoercion,
		},
		{
			name:   "value on null check",
			filter: filter.NewFilter().WithAndRestriction(filter.Restriction{Property: "a", Comparator: filter.NULL, Value: filter.Int(1)}),
			kind:   filter.ErrInvalidArity,
		},
		{
			name:   "unsupported value type",
			filter: filter.NewFilter().WithAndRestriction(filter.Eq("a", struct{}{})),
			kind:   filter.ErrCoercion,
		},
		{
			name: "mixed sort directions",
			filter: filter.NewFilter().
				WithOrderBy("a", filter.ASC).
				WithOrderBy("b", filter.DESC),
			kind: filter.ErrUnsupportedOperation,
		},
	}

	p := filter.NewV2Processor(filter.WithPropertyTypes(alarmProperties))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := p.Parameters(tt.filter)
			require.Error(t, err)
			assert.Nil(t, params)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestV2CoercionErrorNamesProperty(t *testing.T) {
	p := filter.NewV2Processor(filter.WithPropertyTypes(alarmProperties))
	_, err := p.Parameters(filter.NewFilter().WithAndRestriction(filter.Eq("alarm.count", "many")))

	var ce *filter.CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "alarm.count", ce.Property)
	assert.Contains(t, err.Error(), "property=alarm.count")
}

func TestV2SearchProperties(t *testing.T) {
	var endpoint string
	lister := filter.PropertyListerFunc(func(_ context.Context, e string) ([]filter.SearchProperty, error) {
		endpoint = e
		return alarmProperties, nil
	})

	p := filter.NewV2Processor()
	props, err := p.SearchProperties(context.Background(), lister, "alarms")
	require.NoError(t, err)
	assert.Equal(t, "api/v2/alarms/properties", endpoint)
	assert.Len(t, props, len(alarmProperties))

	_, err = p.SearchProperties(context.Background(), lister, "")
	assert.ErrorIs(t, err, filter.ErrUnsupportedOperation)

	_, err = p.SearchProperties(context.Background(), nil, "alarms")
	assert.Error(t, err)
}

func TestNewProcessor(t *testing.T) {
	p, err := filter.NewProcessor(filter.V1)
	require.NoError(t, err)
	assert.Equal(t, filter.V1, p.Version())

	p, err = filter.NewProcessor(filter.V2)
	require.NoError(t, err)
	assert.Equal(t, filter.V2, p.Version())
	assert.Equal(t, "v2", p.Version().String())

	_, err = filter.NewProcessor(filter.APIVersion(3))
	assert.Error(t, err)

	v, err := filter.ParseAPIVersion("v1")
	require.NoError(t, err)
	assert.Equal(t, filter.V1, v)
}

func TestProcessorsAgreeOnPaging(t *testing.T) {
	f := filter.NewFilter().WithLimit(25).WithOffset(50).WithOrderBy("id", filter.DESC)

	v1, err := filter.NewV1Processor().Parameters(f)
	require.NoError(t, err)
	v2, err := filter.NewV2Processor().Parameters(f)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}
