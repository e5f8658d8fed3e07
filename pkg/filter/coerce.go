package filter

import (
	"fmt"
	"math"
	"net/netip"
	"strings"
	"time"
)

// CanonicalDateLayout is the wire format of every date, always rendered in UTC.
const CanonicalDateLayout = "2006-01-02T15:04:05.000-0700"

// Accepted string layouts, most specific first. Z0700 accepts both "Z" and "+0000".
var dateLayouts = []string{
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05Z0700",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// IsDateLike reports whether v is a date object that needs date coercion.
// Strings and numbers are not date-like even when they could be parsed as one.
func IsDateLike(v any) bool {
	switch x := v.(type) {
	case time.Time, Time:
		return true
	case *time.Time:
		return x != nil
	default:
		return false
	}
}

// ToDate converts epoch milliseconds, time.Time, Time or a date string to a UTC time.Time.
func ToDate(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x.UTC(), nil
	case *time.Time:
		if x == nil {
			return time.Time{}, coercionError(v, "nil time")
		}
		return x.UTC(), nil
	case Time:
		return time.Time(x).UTC(), nil
	case int:
		return time.UnixMilli(int64(x)).UTC(), nil
	case int8:
		return time.UnixMilli(int64(x)).UTC(), nil
	case int16:
		return time.UnixMilli(int64(x)).UTC(), nil
	case int32:
		return time.UnixMilli(int64(x)).UTC(), nil
	case int64:
		return time.UnixMilli(x).UTC(), nil
	case Int:
		return time.UnixMilli(int64(x)).UTC(), nil
	case uint:
		return unsignedMillis(v, uint64(x))
	case uint8:
		return time.UnixMilli(int64(x)).UTC(), nil
	case uint16:
		return time.UnixMilli(int64(x)).UTC(), nil
	case uint32:
		return time.UnixMilli(int64(x)).UTC(), nil
	case uint64:
		return unsignedMillis(v, x)
	case float32:
		return floatMillis(v, float64(x))
	case float64:
		return floatMillis(v, x)
	case Float:
		return floatMillis(v, float64(x))
	case string:
		return parseDate(x)
	case String:
		return parseDate(string(x))
	default:
		return time.Time{}, coercionError(v, fmt.Sprintf("unable to parse type %T as a date", v))
	}
}

func unsignedMillis(v any, u uint64) (time.Time, error) {
	if u > math.MaxInt64 {
		return time.Time{}, coercionError(v, "epoch milliseconds overflow int64")
	}
	return time.UnixMilli(int64(u)).UTC(), nil
}

func floatMillis(v any, f float64) (time.Time, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return time.Time{}, coercionError(v, "epoch milliseconds must be integral")
	}
	return time.UnixMilli(int64(f)).UTC(), nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, coercionError(s, "unable to parse as a date")
}

// ToCanonicalDate renders a date-like value as YYYY-MM-DDThh:mm:ss.SSS+0000.
// Coercing a canonical string returns the same string.
func ToCanonicalDate(v any) (string, error) {
	t, err := ToDate(v)
	if err != nil {
		return "", err
	}
	return t.Format(CanonicalDateLayout), nil
}

// ToIPAddress parses an IPv4 or IPv6 address. The empty string yields the zero Addr and no error.
func ToIPAddress(s string) (netip.Addr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return netip.Addr{}, nil
	}
	addr, err := netip.ParseAddr(strings.Trim(s, "[]"))
	if err != nil {
		return netip.Addr{}, &CompileError{Kind: ErrCoercion, Msg: fmt.Sprintf("%q: invalid IP address", s)}
	}
	return addr.Unmap(), nil
}
