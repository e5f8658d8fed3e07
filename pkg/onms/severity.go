// Package onms holds the OpenNMS enumerations that appear as filter values.
package onms

import (
	"fmt"
	"strconv"
	"strings"
)

// Severity is an alarm or event severity. IDs match the server's numbering.
type Severity int

const (
	Indeterminate Severity = iota + 1
	Cleared
	Normal
	Warning
	Minor
	Major
	Critical
)

var severityLabels = [...]string{
	Indeterminate: "INDETERMINATE",
	Cleared:       "CLEARED",
	Normal:        "NORMAL",
	Warning:       "WARNING",
	Minor:         "MINOR",
	Major:         "MAJOR",
	Critical:      "CRITICAL",
}

// Severities lists every severity from least to most severe.
var Severities = []Severity{Indeterminate, Cleared, Normal, Warning, Minor, Major, Critical}

// ID returns the numeric identifier.
func (s Severity) ID() int { return int(s) }

// Label returns the upper-case name sent on the wire.
func (s Severity) Label() string {
	if s < Indeterminate || s > Critical {
		return ""
	}
	return severityLabels[s]
}

func (s Severity) String() string {
	if l := s.Label(); l != "" {
		return l
	}
	return "Severity(" + strconv.Itoa(int(s)) + ")"
}

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool { return s.Label() != "" }

// SeverityByID returns the severity with the given numeric ID.
func SeverityByID(id int) (Severity, error) {
	s := Severity(id)
	if !s.Valid() {
		return 0, fmt.Errorf("onms: unknown severity id %d", id)
	}
	return s, nil
}

// ParseSeverity resolves a label in any case, or a numeric ID.
func ParseSeverity(v string) (Severity, error) {
	v = strings.TrimSpace(v)
	if id, err := strconv.Atoi(v); err == nil {
		return SeverityByID(id)
	}
	upper := strings.ToUpper(v)
	for _, s := range Severities {
		if s.Label() == upper {
			return s, nil
		}
	}
	return 0, fmt.Errorf("onms: unknown severity %q", v)
}
