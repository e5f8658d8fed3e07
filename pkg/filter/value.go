package filter

import (
	"fmt"
	"math"
	"net"
	"net/netip"
	"reflect"
	"strconv"
	"time"
)

// Value is the closed set of restriction values.
//
// Only String, Int, Float, Bool, Time, Symbol, IP and List implement it.
// Use ValueOf to lift an arbitrary Go value.
type Value interface {
	isValue()
}

// String is a plain string value.
type String string

// Int is an integral value.
type Int int64

// Float is a floating point value.
type Float float64

// Bool is a boolean value.
type Bool bool

// Time is a date value. It is always encoded in UTC.
type Time time.Time

// Symbol is an enumeration label such as a severity name.
type Symbol string

// IP is an IP address value.
type IP netip.Addr

// List is a sequence of scalar values, used by CONTAINS.
type List []Value

func (String) isValue() {}
func (Int) isValue()    {}
func (Float) isValue()  {}
func (Bool) isValue()   {}
func (Time) isValue()   {}
func (Symbol) isValue() {}
func (IP) isValue()     {}
func (List) isValue()   {}

// invalid carries a value ValueOf rejected so the failure surfaces when the filter is compiled.
type invalid struct {
	raw any
	err error
}

func (invalid) isValue() {}

// Labeler is implemented by enumerations that serialize to a symbolic name.
type Labeler interface {
	Label() string
}

// ValueOf lifts a Go value into a Value. A nil input yields a nil Value.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case invalid:
		return nil, x.err
	case Value:
		return x, nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(x), nil
	case int8:
		return Int(x), nil
	case int16:
		return Int(x), nil
	case int32:
		return Int(x), nil
	case int64:
		return Int(x), nil
	case uint:
		return uintValue(uint64(x))
	case uint8:
		return Int(x), nil
	case uint16:
		return Int(x), nil
	case uint32:
		return Int(x), nil
	case uint64:
		return uintValue(x)
	case float32:
		return floatValue(float64(x))
	case float64:
		return floatValue(x)
	case time.Time:
		return Time(x), nil
	case *time.Time:
		if x == nil {
			return nil, coercionError(v, "nil time")
		}
		return Time(*x), nil
	case netip.Addr:
		if !x.IsValid() {
			return nil, coercionError(v, "invalid IP address")
		}
		return IP(x.Unmap()), nil
	case net.IP:
		addr, ok := netip.AddrFromSlice(x)
		if !ok {
			return nil, coercionError(v, "invalid IP address")
		}
		return IP(addr.Unmap()), nil
	case Labeler:
		label := x.Label()
		if label == "" {
			return nil, coercionError(v, "enumeration has no label")
		}
		return Symbol(label), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		list := make(List, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := ValueOf(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			if item == nil {
				return nil, coercionError(v, "nil list element")
			}
			if _, nested := item.(List); nested {
				return nil, coercionError(v, "nested lists are not supported")
			}
			list = append(list, item)
		}
		return list, nil
	}
	return nil, coercionError(v, fmt.Sprintf("unsupported type %T", v))
}

// lift is ValueOf for the convenience constructors; failures are deferred to compile time.
func lift(v any) Value {
	val, err := ValueOf(v)
	if err != nil {
		return invalid{raw: v, err: err}
	}
	return val
}

func uintValue(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return nil, coercionError(u, "integer overflows int64")
	}
	return Int(int64(u)), nil
}

func floatValue(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, coercionError(f, "not a finite number")
	}
	return Float(f), nil
}

func coercionError(v any, msg string) error {
	return &CompileError{Kind: ErrCoercion, Msg: fmt.Sprintf("%v: %s", v, msg)}
}

// Encode renders a scalar value as its wire string.
func Encode(v Value) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", &CompileError{Kind: ErrCoercion, Msg: "missing value"}
	case invalid:
		return "", x.err
	case String:
		return string(x), nil
	case Int:
		return strconv.FormatInt(int64(x), 10), nil
	case Float:
		return strconv.FormatFloat(float64(x), 'f', -1, 64), nil
	case Bool:
		return strconv.FormatBool(bool(x)), nil
	case Time:
		return time.Time(x).UTC().Format(CanonicalDateLayout), nil
	case Symbol:
		return string(x), nil
	case IP:
		addr := netip.Addr(x)
		if !addr.IsValid() {
			return "", &CompileError{Kind: ErrCoercion, Msg: "invalid IP address"}
		}
		return addr.String(), nil
	case List:
		return "", &CompileError{Kind: ErrCoercion, Msg: "a list cannot be encoded as a single value"}
	default:
		return "", &CompileError{Kind: ErrCoercion, Msg: fmt.Sprintf("unsupported value %T", v)}
	}
}
