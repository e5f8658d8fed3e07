package filter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// NullValue is the FIQL sentinel compared against for null checks.
	NullValue = "\u0000"
	// NullDate is the null sentinel for timestamp properties.
	NullDate = "1970-01-01T00:00:00.000+0000"
)

var fiqlOperators = map[Comparator]string{
	EQ: "==",
	NE: "!=",
	LT: "=lt=",
	LE: "=le=",
	GT: "=gt=",
	GE: "=ge=",
}

// V2Processor compiles filters into a FIQL expression carried in the _s parameter:
//
//	?_s=alarm.severity==MINOR;(alarm.id!=0,alarm.uei==*link*)&limit=1000
//
// AND joins with ';', OR with ',' and nested groups are parenthesized.
type V2Processor struct {
	types map[string]SearchPropertyType
}

var _ Processor = (*V2Processor)(nil)

// V2Option configures a V2Processor.
type V2Option func(*V2Processor)

// WithPropertyTypes registers declared property types so that string values can be
// coerced (timestamps canonicalized, numbers checked, addresses normalized).
func WithPropertyTypes(props []SearchProperty) V2Option {
	return func(p *V2Processor) {
		for _, prop := range props {
			if prop.ID != "" && prop.Type != "" {
				p.types[prop.ID] = prop.Type
			}
		}
	}
}

// NewV2Processor returns the FIQL processor.
func NewV2Processor(opts ...V2Option) *V2Processor {
	p := &V2Processor{types: make(map[string]SearchPropertyType)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Version implements Processor.
func (p *V2Processor) Version() APIVersion { return V2 }

// Parameters implements Processor.
func (p *V2Processor) Parameters(f *Filter) (url.Values, error) {
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
	search, err := p.Search(f.Clauses)
	if err != nil {
		return nil, err
	}
	if search != "" {
		params.Set(ParamSearch, search)
	}
	return params, nil
}

// Search renders clauses as a FIQL expression without validating operator consistency.
func (p *V2Processor) Search(clauses []Clause) (string, error) {
	return p.group(clauses, 0)
}

func (p *V2Processor) group(clauses []Clause, depth int) (string, error) {
	if depth > MaxDepth {
		return "", &CompileError{Kind: ErrNestingDepth, Msg: fmt.Sprintf("groups nested deeper than %d", MaxDepth)}
	}
	var b strings.Builder
	for i, c := range clauses {
		if i > 0 {
			b.WriteString(fiqlJoin(clauses[i-1].Operator))
		}
		r, g, err := unpack(c.Restriction)
		if err != nil {
			return "", err
		}
		if g != nil {
			inner, err := p.group(g.Clauses, depth+1)
			if err != nil {
				return "", err
			}
			b.WriteString("(")
			b.WriteString(inner)
			b.WriteString(")")
			continue
		}
		expr, err := p.restriction(*r)
		if err != nil {
			return "", withProperty(err, r.Property)
		}
		b.WriteString(expr)
	}
	return b.String(), nil
}

func fiqlJoin(o Operator) string {
	if o == OR {
		return ","
	}
	return ";"
}

func (p *V2Processor) restriction(r Restriction) (string, error) {
	prop := r.Property
	switch r.Comparator {
	case NULL:
		return prop + "==" + p.nullSentinel(prop), nil
	case NOTNULL:
		return prop + "!=" + p.nullSentinel(prop), nil
	case LIKE, ILIKE:
		v, err := p.encode(prop, r.Value, true)
		if err != nil {
			return "", err
		}
		return prop + "==" + v, nil
	case CONTAINS:
		if list, ok := r.Value.(List); ok {
			parts := make([]string, 0, len(list))
			for _, item := range list {
				v, err := p.encode(prop, item, false)
				if err != nil {
					return "", err
				}
				parts = append(parts, prop+"=="+v)
			}
			return "(" + strings.Join(parts, ",") + ")", nil
		}
		v, err := p.encode(prop, r.Value, true)
		if err != nil {
			return "", err
		}
		return prop + "==*" + v + "*", nil
	}

	op, ok := fiqlOperators[r.Comparator]
	if !ok {
		return "", &CompileError{Kind: ErrUnsupportedComparator, Comparator: r.Comparator, Msg: "no FIQL operator"}
	}
	v, err := p.encode(prop, r.Value, false)
	if err != nil {
		return "", err
	}
	return prop + op + v, nil
}

func (p *V2Processor) nullSentinel(prop string) string {
	if p.types[prop] == TypeTimestamp {
		return NullDate
	}
	return NullValue
}

// encode coerces v against the declared type of prop, then escapes it for FIQL.
func (p *V2Processor) encode(prop string, v Value, wildcards bool) (string, error) {
	s, iplike, err := p.coerce(prop, v)
	if err != nil {
		return "", err
	}
	return escapeFIQL(s, wildcards || iplike), nil
}

// coerce reports iplike when s is an address range expression whose wildcards must survive escaping.
func (p *V2Processor) coerce(prop string, v Value) (s string, iplike bool, err error) {
	str, isString := v.(String)
	typ, typed := p.types[prop]
	if !isString || !typed {
		s, err = Encode(v)
		return s, false, err
	}
	s, err = p.coerceString(typ, string(str))
	if err != nil {
		return "", false, err
	}
	return s, typ == TypeIPAddress && strings.ContainsAny(s, "*-,"), nil
}

func (p *V2Processor) coerceString(typ SearchPropertyType, s string) (string, error) {
	switch typ {
	case TypeTimestamp:
		return ToCanonicalDate(s)
	case TypeInteger, TypeLong:
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			return "", &CompileError{Kind: ErrCoercion, Msg: fmt.Sprintf("%q is not an integer", s)}
		}
	case TypeFloat:
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return "", &CompileError{Kind: ErrCoercion, Msg: fmt.Sprintf("%q is not a number", s)}
		}
	case TypeBoolean:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return "", &CompileError{Kind: ErrCoercion, Msg: fmt.Sprintf("%q is not a boolean", s)}
		}
		return strconv.FormatBool(b), nil
	case TypeIPAddress:
		// iplike expressions such as 192.168.*.* are passed through untouched.
		if strings.ContainsAny(s, "*-,") {
			return s, nil
		}
		addr, err := ToIPAddress(s)
		if err != nil {
			return "", err
		}
		if !addr.IsValid() {
			return "", &CompileError{Kind: ErrCoercion, Msg: "empty IP address"}
		}
		return addr.String(), nil
	}
	return s, nil
}

// escapeFIQL percent-escapes the characters FIQL reserves. With wildcards set, '*' is kept.
func escapeFIQL(s string, wildcards bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '%', ';', ',', '(', ')', '=', '!', '<', '>', '\'', '"', '~':
			fmt.Fprintf(&b, "%%%02X", c)
		case '*':
			if wildcards {
				b.WriteByte(c)
			} else {
				fmt.Fprintf(&b, "%%%02X", c)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// SearchProperties implements Processor.
func (p *V2Processor) SearchProperties(ctx context.Context, lister PropertyLister, resource string) ([]SearchProperty, error) {
	resource = strings.Trim(resource, "/")
	if resource == "" {
		return nil, &CompileError{Kind: ErrUnsupportedOperation, Msg: "search properties require a resource"}
	}
	if lister == nil {
		return nil, fmt.Errorf("filter: nil property lister")
	}
	return lister.ListProperties(ctx, "api/v2/"+resource+"/properties")
}
