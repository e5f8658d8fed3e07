package filter

import (
	"math"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCanonicalDate(t *testing.T) {
	epoch := time.UnixMilli(1502195396000)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"epoch millis", int64(1502195396000), "2017-08-08T12:29:56.000+0000"},
		{"epoch int", 1502195396000, "2017-08-08T12:29:56.000+0000"},
		{"zero", 0, "1970-01-01T00:00:00.000+0000"},
		{"time", epoch, "2017-08-08T12:29:56.000+0000"},
		{"time pointer", &epoch, "2017-08-08T12:29:56.000+0000"},
		{"offset time", epoch.In(time.FixedZone("EST", -5*3600)), "2017-08-08T12:29:56.000+0000"},
		{"canonical string", "2017-08-08T12:29:56.000+0000", "2017-08-08T12:29:56.000+0000"},
		{"zulu string", "2017-08-08T12:29:56.123Z", "2017-08-08T12:29:56.123+0000"},
		{"rfc3339", "2017-08-08T08:29:56-04:00", "2017-08-08T12:29:56.000+0000"},
		{"date only", "2017-08-08", "2017-08-08T00:00:00.000+0000"},
		{"float millis", float64(1000), "1970-01-01T00:00:01.000+0000"},
		{"1976 epoch int64", int64(198288000000), "1976-04-14T00:00:00.000+0000"},
		{"1976 epoch uint64", uint64(198288000000), "1976-04-14T00:00:00.000+0000"},
		{"1976 epoch uint", uint(198288000000), "1976-04-14T00:00:00.000+0000"},
		{"int8 millis", int8(100), "1970-01-01T00:00:00.100+0000"},
		{"int16 millis", int16(1000), "1970-01-01T00:00:01.000+0000"},
		{"uint8 millis", uint8(250), "1970-01-01T00:00:00.250+0000"},
		{"uint16 millis", uint16(2000), "1970-01-01T00:00:02.000+0000"},
		{"float32 millis", float32(1000), "1970-01-01T00:00:01.000+0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToCanonicalDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToCanonicalDateIsIdempotent(t *testing.T) {
	for _, millis := range []int64{1502195396000, 198288000000} {
		first, err := ToCanonicalDate(millis)
		require.NoError(t, err)
		second, err := ToCanonicalDate(first)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestToDate(t *testing.T) {
	d, err := ToDate(int64(1502195396000))
	require.NoError(t, err)
	assert.Equal(t, int64(1502195396000), d.UnixMilli())
	assert.Equal(t, time.UTC, d.Location())

	_, err = ToDate("not a date")
	assert.ErrorIs(t, err, ErrCoercion)

	_, err = ToDate(1.5)
	assert.ErrorIs(t, err, ErrCoercion)

	_, err = ToDate(float32(0.25))
	assert.ErrorIs(t, err, ErrCoercion)

	_, err = ToDate(uint64(math.MaxUint64))
	assert.ErrorIs(t, err, ErrCoercion)

	_, err = ToDate(struct{}{})
	assert.ErrorIs(t, err, ErrCoercion)

	var nilTime *time.Time
	_, err = ToDate(nilTime)
	assert.ErrorIs(t, err, ErrCoercion)
}

func TestIsDateLike(t *testing.T) {
	now := time.Now()
	var nilTime *time.Time

	assert.True(t, IsDateLike(now))
	assert.True(t, IsDateLike(&now))
	assert.True(t, IsDateLike(Time(now)))
	assert.False(t, IsDateLike(nilTime))
	assert.False(t, IsDateLike("2017-08-08T12:29:56.000+0000"))
	assert.False(t, IsDateLike(1502195396000))
	assert.False(t, IsDateLike(nil))
}

func TestToIPAddress(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"127.0.0.1", "127.0.0.1"},
		{"192.168.0.1", "192.168.0.1"},
		{"2003:dead:beef::1", "2003:dead:beef::1"},
		{"[::1]", "::1"},
		{"::ffff:10.1.2.3", "10.1.2.3"},
		{" 10.0.0.1 ", "10.0.0.1"},
	}
	for _, tt := range tests {
		addr, err := ToIPAddress(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, addr.String(), tt.in)
	}

	addr, err := ToIPAddress("")
	require.NoError(t, err)
	assert.False(t, addr.IsValid())

	_, err = ToIPAddress("300.1.1.1")
	assert.ErrorIs(t, err, ErrCoercion)
}

type level string

func (l level) Label() string { return string(l) }

func TestValueOf(t *testing.T) {
	ts := time.UnixMilli(0)

	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, nil},
		{"string", "x", String("x")},
		{"int", 42, Int(42)},
		{"uint16", uint16(7), Int(7)},
		{"float", 1.25, Float(1.25)},
		{"bool", true, Bool(true)},
		{"time", ts, Time(ts)},
		{"addr", netip.MustParseAddr("::ffff:1.2.3.4"), IP(netip.MustParseAddr("1.2.3.4"))},
		{"slice", []string{"a", "b"}, List{String("a"), String("b")}},
		{"value passthrough", Symbol("MINOR"), Symbol("MINOR")},
		{"labeler", level("LOW"), Symbol("LOW")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValueOf(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	bad := []any{
		uint64(1 << 63),
		[][]int{{1}},
		[]any{"a", nil},
		map[string]int{},
		level(""),
	}
	for _, in := range bad {
		_, err := ValueOf(in)
		assert.ErrorIs(t, err, ErrCoercion, "%v", in)
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		in   Value
		want string
	}{
		{String("abc"), "abc"},
		{Int(-3), "-3"},
		{Float(0.5), "0.5"},
		{Float(2), "2"},
		{Bool(false), "false"},
		{Time(time.UnixMilli(198288000000)), "1976-04-14T00:00:00.000+0000"},
		{Symbol("MAJOR"), "MAJOR"},
		{IP(netip.MustParseAddr("10.0.0.1")), "10.0.0.1"},
	}
	for _, tt := range tests {
		got, err := Encode(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := Encode(List{Int(1)})
	assert.ErrorIs(t, err, ErrCoercion)
	_, err = Encode(nil)
	assert.ErrorIs(t, err, ErrCoercion)
}
