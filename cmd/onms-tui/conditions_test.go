package main

import (
	"testing"

	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhuot/go-opennms/pkg/filter"
)

func TestConditionSet(t *testing.T) {
	cs := newConditionSet()
	require.NoError(t, cs.add("id", filter.NOTNULL, ""))
	require.NoError(t, cs.add("severity", filter.EQ, "minor"))
	cs.operator = filter.OR

	f := cs.filter()
	require.Len(t, f.Clauses, 2)
	assert.Equal(t, filter.OR, f.Clauses[0].Operator)
	assert.Equal(t, []string{"1. id NOTNULL", "2. severity EQ MINOR"}, cs.lines())

	preview := cs.preview()
	assert.Contains(t, preview, "v1:[white] [green]comparator=eq&id=notnull&limit=1000&severity=MINOR")
	assert.Contains(t, preview, "v2:[white] [green]_s=")

	cs.remove(0)
	assert.Len(t, cs.restrictions, 1)
	cs.remove(5)
	assert.Len(t, cs.restrictions, 1)
	cs.clear()
	assert.Empty(t, cs.restrictions)
}

func TestConditionSetErrors(t *testing.T) {
	cs := newConditionSet()
	assert.Error(t, cs.add("id", filter.EQ, " "))
	assert.Error(t, cs.add("id", filter.NULL, "3"))
	assert.Error(t, cs.add("id", filter.CONTAINS, ","))
	assert.Empty(t, cs.restrictions)
}

func TestConditionSetPreviewShowsCompileErrors(t *testing.T) {
	cs := newConditionSet()
	require.NoError(t, cs.add("severity", filter.EQ, "MAJOR"))
	require.NoError(t, cs.add("id", filter.NE, "0"))

	preview := cs.preview()
	assert.Contains(t, preview, "v1:[white] [red]filter: unsupported comparator")
	assert.Contains(t, preview, "v2:[white] [green]")
}

func TestConditionSetPreviewEscapesBrackets(t *testing.T) {
	cs := newConditionSet()
	require.NoError(t, cs.add("severity", filter.EQ, "MAJOR"))
	require.NoError(t, cs.add("tags[0]", filter.NE, "1"))

	_, err := filter.NewV1Processor().Parameters(cs.filter())
	require.Error(t, err)
	require.Contains(t, err.Error(), "property=tags[0]")

	preview := cs.preview()
	assert.Contains(t, preview, tview.Escape(err.Error()))
	assert.NotContains(t, preview, "[[]")
}

func TestDefaultProperties(t *testing.T) {
	for _, resource := range resources {
		assert.NotEmpty(t, defaultProperties[resource], resource)
	}
}
