package where

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhuot/go-opennms/pkg/filter"
)

func TestParse(t *testing.T) {
	tests := []struct {
		expr string
		want filter.Restriction
	}{
		{"alarm.id ge 10", filter.Restriction{Property: "alarm.id", Comparator: filter.GE, Value: filter.Int(10)}},
		{"alarm.id>=10", filter.Restriction{Property: "alarm.id", Comparator: filter.GE, Value: filter.Int(10)}},
		{"alarm.id >=10", filter.Restriction{Property: "alarm.id", Comparator: filter.GE, Value: filter.Int(10)}},
		{"alarm.id>= 10", filter.Restriction{Property: "alarm.id", Comparator: filter.GE, Value: filter.Int(10)}},
		{"node.label !=web", filter.Restriction{Property: "node.label", Comparator: filter.NE, Value: filter.String("web")}},
		{"alarm.id == 3", filter.Restriction{Property: "alarm.id", Comparator: filter.EQ, Value: filter.Int(3)}},
		{"node.label!=web", filter.Restriction{Property: "node.label", Comparator: filter.NE, Value: filter.String("web")}},
		{"alarm.severity eq major", filter.Restriction{Property: "alarm.severity", Comparator: filter.EQ, Value: filter.Symbol("MAJOR")}},
		{"alarm.count lt 2.5", filter.Restriction{Property: "alarm.count", Comparator: filter.LT, Value: filter.Float(2.5)}},
		{"alarm.isAcknowledged eq TRUE", filter.Restriction{Property: "alarm.isAcknowledged", Comparator: filter.EQ, Value: filter.Bool(true)}},
		{"alarm.ackTime is null", filter.Restriction{Property: "alarm.ackTime", Comparator: filter.NULL}},
		{"alarm.ackTime IS NOT NULL", filter.Restriction{Property: "alarm.ackTime", Comparator: filter.NOTNULL}},
		{"alarm.id notnull", filter.Restriction{Property: "alarm.id", Comparator: filter.NOTNULL}},
		{`node.label like "web *"`, filter.Restriction{Property: "node.label", Comparator: filter.LIKE, Value: filter.String("web *")}},
		{`node.label eq "42"`, filter.Restriction{Property: "node.label", Comparator: filter.EQ, Value: filter.String("42")}},
		{"node.label in a, b", filter.Restriction{Property: "node.label", Comparator: filter.CONTAINS, Value: filter.List{filter.String("a"), filter.String("b")}}},
		{"alarm.uei contains linkDown", filter.Restriction{Property: "alarm.uei", Comparator: filter.CONTAINS, Value: filter.String("linkDown")}},
		{
			"ipInterface.ipAddress eq ::ffff:10.0.0.1",
			filter.Restriction{Property: "ipInterface.ipAddress", Comparator: filter.EQ, Value: filter.IP(netip.MustParseAddr("10.0.0.1"))},
		},
		{
			"alarm.lastEventTime gt 2017-08-08T12:29:56Z",
			filter.Restriction{Property: "alarm.lastEventTime", Comparator: filter.GT, Value: filter.Time(time.Date(2017, 8, 8, 12, 29, 56, 0, time.UTC))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, expr := range []string{
		"",
		"alarm.id",
		"alarm.id between 1",
		"alarm.id eq",
		"alarm.id null 3",
		"alarm.id in ,",
		">=10",
		"alarm.id >=",
	} {
		_, err := Parse(expr)
		assert.Error(t, err, expr)
	}
}

func TestOrderBy(t *testing.T) {
	o, err := OrderBy("alarm.lastEventTime:desc")
	require.NoError(t, err)
	assert.Equal(t, filter.OrderBy{Property: "alarm.lastEventTime", Direction: filter.DESC}, o)

	o, err = OrderBy("alarm.id")
	require.NoError(t, err)
	assert.Equal(t, filter.ASC, o.Direction)

	_, err = OrderBy(":desc")
	assert.Error(t, err)
	_, err = OrderBy("alarm.id:sideways")
	assert.Error(t, err)
}
