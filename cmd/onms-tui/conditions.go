package main

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/mhuot/go-opennms/internal/where"
	"github.com/mhuot/go-opennms/pkg/filter"
)

// defaultProperties are offered when the server cannot list search properties (v1).
var defaultProperties = map[string][]filter.SearchProperty{
	"alarms": {
		{ID: "id", Name: "ID", Type: filter.TypeInteger},
		{ID: "uei", Name: "UEI", Type: filter.TypeString},
		{ID: "severity", Name: "Severity", Type: filter.TypeString},
		{ID: "ackTime", Name: "Acknowledged Time", Type: filter.TypeTimestamp},
		{ID: "lastEventTime", Name: "Last Event Time", Type: filter.TypeTimestamp},
		{ID: "node.id", Name: "Node ID", Type: filter.TypeInteger},
		{ID: "reductionKey", Name: "Reduction Key", Type: filter.TypeString},
	},
	"events": {
		{ID: "id", Name: "ID", Type: filter.TypeInteger},
		{ID: "eventUei", Name: "UEI", Type: filter.TypeString},
		{ID: "eventSeverity", Name: "Severity", Type: filter.TypeString},
		{ID: "eventTime", Name: "Event Time", Type: filter.TypeTimestamp},
		{ID: "node.id", Name: "Node ID", Type: filter.TypeInteger},
	},
	"nodes": {
		{ID: "id", Name: "ID", Type: filter.TypeInteger},
		{ID: "label", Name: "Label", Type: filter.TypeString},
		{ID: "foreignSource", Name: "Foreign Source", Type: filter.TypeString},
		{ID: "foreignId", Name: "Foreign ID", Type: filter.TypeString},
		{ID: "createTime", Name: "Created", Type: filter.TypeTimestamp},
	},
	"outages": {
		{ID: "id", Name: "ID", Type: filter.TypeInteger},
		{ID: "ifLostService", Name: "Lost Service", Type: filter.TypeTimestamp},
		{ID: "ifRegainedService", Name: "Regained Service", Type: filter.TypeTimestamp},
		{ID: "node.id", Name: "Node ID", Type: filter.TypeInteger},
	},
}

// conditionSet is the state behind the filter builder page.
type conditionSet struct {
	restrictions []filter.Restriction
	operator     filter.Operator
	limit        int
}

func newConditionSet() *conditionSet {
	return &conditionSet{operator: filter.AND, limit: filter.DefaultLimit}
}

// add parses value for property and appends the restriction.
func (cs *conditionSet) add(property string, cmp filter.Comparator, value string) error {
	value = strings.TrimSpace(value)
	var (
		r   filter.Restriction
		err error
	)
	switch {
	case !cmp.Relational():
		if value != "" {
			return fmt.Errorf("%s does not take a value", cmp)
		}
		r, err = filter.NewRestriction(property, cmp)
	case value == "":
		return fmt.Errorf("please enter a value")
	default:
		var values []any
		values, err = where.Values(property, cmp, value)
		if err != nil {
			return err
		}
		r, err = filter.NewRestriction(property, cmp, values...)
	}
	if err != nil {
		return err
	}
	cs.restrictions = append(cs.restrictions, r)
	return nil
}

func (cs *conditionSet) remove(index int) {
	if index < 0 || index >= len(cs.restrictions) {
		return
	}
	cs.restrictions = append(cs.restrictions[:index], cs.restrictions[index+1:]...)
}

func (cs *conditionSet) clear() {
	cs.restrictions = nil
}

// filter joins every restriction with the selected operator.
func (cs *conditionSet) filter() *filter.Filter {
	f := filter.NewFilter()
	if cs.limit > 0 {
		f.WithLimit(cs.limit)
	}
	for _, r := range cs.restrictions {
		if cs.operator == filter.OR {
			f.WithOrRestriction(r)
		} else {
			f.WithAndRestriction(r)
		}
	}
	return f
}

// preview renders the parameters both API versions would receive, with errors in red.
func (cs *conditionSet) preview() string {
	f := cs.filter()
	var b strings.Builder
	for _, p := range []filter.Processor{filter.NewV1Processor(), filter.NewV2Processor()} {
		params, err := p.Parameters(f)
		if err != nil {
			fmt.Fprintf(&b, "[yellow]%s:[white] [red]%s[white]\n", p.Version(), tview.Escape(err.Error()))
			continue
		}
		fmt.Fprintf(&b, "[yellow]%s:[white] [green]%s[white]\n", p.Version(), tview.Escape(params.Encode()))
	}
	return b.String()
}

func (cs *conditionSet) lines() []string {
	out := make([]string, len(cs.restrictions))
	for i, r := range cs.restrictions {
		out[i] = fmt.Sprintf("%d. %s", i+1, r)
	}
	return out
}
