package onms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity(t *testing.T) {
	assert.Equal(t, 5, Minor.ID())
	assert.Equal(t, "MINOR", Minor.Label())
	assert.Equal(t, "CRITICAL", Critical.String())
	assert.Equal(t, "Severity(9)", Severity(9).String())
	assert.False(t, Severity(0).Valid())

	tests := []struct {
		in   string
		want Severity
	}{
		{"minor", Minor},
		{"MAJOR", Major},
		{" Indeterminate ", Indeterminate},
		{"7", Critical},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseSeverity("catastrophic")
	require.Error(t, err)
	_, err = SeverityByID(8)
	require.Error(t, err)

	s, err := SeverityByID(1)
	require.NoError(t, err)
	assert.Equal(t, Indeterminate, s)
}

func TestTroubleTicketState(t *testing.T) {
	assert.Equal(t, "RESOLVED", TicketResolved.Label())
	assert.Equal(t, 8, TicketResolved.ID())

	s, err := ParseTroubleTicketState("close_failed")
	require.NoError(t, err)
	assert.Equal(t, TicketCloseFailed, s)

	s, err = ParseTroubleTicketState("0")
	require.NoError(t, err)
	assert.Equal(t, TicketOpen, s)

	_, err = TroubleTicketStateByID(42)
	require.Error(t, err)
	assert.Equal(t, "TroubleTicketState(42)", TroubleTicketState(42).String())
}
