package onms

import (
	"fmt"
	"strconv"
	"strings"
)

// TroubleTicketState is the state of the trouble ticket attached to an alarm.
type TroubleTicketState int

const (
	TicketOpen TroubleTicketState = iota
	TicketCreatePending
	TicketCreateFailed
	TicketUpdatePending
	TicketUpdateFailed
	TicketClosed
	TicketClosePending
	TicketCloseFailed
	TicketResolved
	TicketResolvePending
	TicketResolveFailed
	TicketCancelled
	TicketCancelPending
	TicketCancelFailed
)

var ticketLabels = [...]string{
	TicketOpen:           "OPEN",
	TicketCreatePending:  "CREATE_PENDING",
	TicketCreateFailed:   "CREATE_FAILED",
	TicketUpdatePending:  "UPDATE_PENDING",
	TicketUpdateFailed:   "UPDATE_FAILED",
	TicketClosed:         "CLOSED",
	TicketClosePending:   "CLOSE_PENDING",
	TicketCloseFailed:    "CLOSE_FAILED",
	TicketResolved:       "RESOLVED",
	TicketResolvePending: "RESOLVE_PENDING",
	TicketResolveFailed:  "RESOLVE_FAILED",
	TicketCancelled:      "CANCELLED",
	TicketCancelPending:  "CANCEL_PENDING",
	TicketCancelFailed:   "CANCEL_FAILED",
}

// ID returns the numeric identifier.
func (s TroubleTicketState) ID() int { return int(s) }

// Label returns the upper-case name sent on the wire.
func (s TroubleTicketState) Label() string {
	if s < TicketOpen || s > TicketCancelFailed {
		return ""
	}
	return ticketLabels[s]
}

func (s TroubleTicketState) String() string {
	if l := s.Label(); l != "" {
		return l
	}
	return "TroubleTicketState(" + strconv.Itoa(int(s)) + ")"
}

// TroubleTicketStateByID returns the state with the given numeric ID.
func TroubleTicketStateByID(id int) (TroubleTicketState, error) {
	s := TroubleTicketState(id)
	if s.Label() == "" {
		return 0, fmt.Errorf("onms: unknown trouble ticket state id %d", id)
	}
	return s, nil
}

// ParseTroubleTicketState resolves a label in any case, or a numeric ID.
func ParseTroubleTicketState(v string) (TroubleTicketState, error) {
	v = strings.TrimSpace(v)
	if id, err := strconv.Atoi(v); err == nil {
		return TroubleTicketStateByID(id)
	}
	upper := strings.ToUpper(v)
	for i, l := range ticketLabels {
		if l == upper {
			return TroubleTicketState(i), nil
		}
	}
	return 0, fmt.Errorf("onms: unknown trouble ticket state %q", v)
}
