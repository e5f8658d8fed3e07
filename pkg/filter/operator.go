package filter

import (
	"fmt"
	"strings"
)

// Operator is the boolean operator joining a clause to the next clause in its group.
type Operator int

const (
	AND Operator = iota + 1
	OR
)

// Token returns the lower-case mnemonic of the operator.
func (o Operator) Token() string {
	switch o {
	case AND:
		return "and"
	case OR:
		return "or"
	default:
		return ""
	}
}

func (o Operator) String() string {
	if t := o.Token(); t != "" {
		return strings.ToUpper(t)
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Valid reports whether o is AND or OR.
func (o Operator) Valid() bool {
	return o == AND || o == OR
}

// ParseOperator resolves "and"/"or" in any case.
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "and", "&&", ";":
		return AND, nil
	case "or", "||", ",":
		return OR, nil
	}
	return 0, fmt.Errorf("filter: unknown operator %q", s)
}

// Direction is a sort direction for OrderBy.
type Direction int

const (
	ASC Direction = iota
	DESC
)

// Token returns "asc" or "desc".
func (d Direction) Token() string {
	if d == DESC {
		return "desc"
	}
	return "asc"
}

func (d Direction) String() string { return strings.ToUpper(d.Token()) }

// ParseDirection resolves "asc"/"desc" in any case. The empty string is ASC.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return ASC, nil
	case "desc", "descending":
		return DESC, nil
	}
	return ASC, fmt.Errorf("filter: unknown sort direction %q", s)
}
