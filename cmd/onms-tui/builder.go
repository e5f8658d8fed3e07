package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/mhuot/go-opennms/pkg/filter"
)

var resources = []string{"alarms", "events", "nodes", "outages"}

var combineOptions = []string{"AND", "OR"}

// filterBuilder manages the restriction editing page.
type filterBuilder struct {
	tui *TUI

	resourceDropdown   *tview.DropDown
	propertyList       *tview.List
	propertyDetail     *tview.TextView
	comparatorDropdown *tview.DropDown
	valueInput         *tview.InputField
	combineDropdown    *tview.DropDown
	conditionsList     *tview.List
	previewText        *tview.TextView

	resource   string
	properties []filter.SearchProperty
	comparator filter.Comparator
	conditions *conditionSet
}

func newFilterBuilder(t *TUI) *filterBuilder {
	return &filterBuilder{
		tui:        t,
		resource:   resources[0],
		comparator: filter.EQ,
		conditions: newConditionSet(),
	}
}

func (fb *filterBuilder) setup() {
	fb.resourceDropdown = tview.NewDropDown().
		SetLabel("Resource: ").
		SetFieldWidth(20)

	fb.propertyList = tview.NewList()
	fb.propertyList.SetBorder(true).SetTitle("Search Properties")
	fb.propertyList.ShowSecondaryText(true)
	fb.propertyList.SetSecondaryTextColor(tcell.ColorGray)
	fb.propertyList.SetChangedFunc(func(index int, _, _ string, _ rune) {
		fb.onPropertyChanged(index)
	})

	fb.propertyDetail = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	fb.propertyDetail.SetBorder(true).SetTitle("Property Details")

	tokens := make([]string, len(filter.Comparators))
	for i, c := range filter.Comparators {
		tokens[i] = c.Token()
	}
	fb.comparatorDropdown = tview.NewDropDown().
		SetLabel("Comparator: ").
		SetFieldWidth(10).
		SetOptions(tokens, func(_ string, index int) {
			fb.comparator = filter.Comparators[index]
		})
	fb.comparatorDropdown.SetCurrentOption(0)

	fb.valueInput = tview.NewInputField().
		SetLabel("Value: ").
		SetFieldWidth(30)

	fb.previewText = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	fb.previewText.SetBorder(true).SetTitle("Compiled Parameters")

	fb.combineDropdown = tview.NewDropDown().
		SetLabel("Combine with: ").
		SetFieldWidth(6).
		SetOptions(combineOptions, func(text string, _ int) {
			op, err := filter.ParseOperator(text)
			if err != nil {
				return
			}
			fb.conditions.operator = op
			fb.updatePreview()
		})
	fb.combineDropdown.SetCurrentOption(0)

	fb.conditionsList = tview.NewList()
	fb.conditionsList.SetBorder(true).SetTitle("Restrictions (0)")
	fb.conditionsList.ShowSecondaryText(false)
	fb.conditionsList.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		fb.conditions.remove(index)
		fb.refresh()
	})

	fb.resourceDropdown.SetOptions(resources, func(text string, _ int) {
		fb.resource = text
		go fb.fetchProperties(text)
	})

	fb.buildLayout()
}

func (fb *filterBuilder) buildLayout() {
	leftPanel := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(fb.resourceDropdown, 1, 0, false).
		AddItem(fb.propertyList, 0, 2, true).
		AddItem(fb.propertyDetail, 7, 0, false)

	form := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(fb.comparatorDropdown, 1, 0, false).
		AddItem(fb.valueInput, 1, 0, false).
		AddItem(fb.combineDropdown, 1, 0, false)
	form.SetBorder(true).SetTitle("Add Restriction")

	rightPanel := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 5, 0, false).
		AddItem(fb.conditionsList, 0, 1, false).
		AddItem(fb.previewText, 8, 0, false)

	mainContent := tview.NewFlex().
		AddItem(leftPanel, 0, 1, true).
		AddItem(rightPanel, 0, 1, false)

	buttons := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewButton("Add").SetSelectedFunc(fb.addCondition), 7, 0, false).
		AddItem(nil, 2, 0, false).
		AddItem(tview.NewButton("Clear").SetSelectedFunc(fb.clearConditions), 9, 0, false).
		AddItem(nil, 2, 0, false).
		AddItem(tview.NewButton("Apply").SetSelectedFunc(fb.apply), 9, 0, false).
		AddItem(nil, 2, 0, false).
		AddItem(tview.NewButton("Quit").SetSelectedFunc(fb.tui.Stop), 8, 0, false).
		AddItem(nil, 0, 1, false)

	help := makeHelpText("[yellow]Tab[white] switch focus  [yellow]Enter[white] add/remove  [yellow]a[white] add  [yellow]c[white] clear  [yellow]r[white] run  [yellow]Esc[white] quit")

	page := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(mainContent, 0, 1, true).
		AddItem(buttons, 1, 0, false).
		AddItem(help, 3, 0, false)
	page.SetInputCapture(fb.handleInput)

	fb.tui.pages.AddPage(pageBuilder, page, true, true)
}

func (fb *filterBuilder) handleInput(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEscape {
		fb.tui.Stop()
		return nil
	}
	switch event.Key() {
	case tcell.KeyTab:
		fb.cycleFocus(1)
		return nil
	case tcell.KeyBacktab:
		fb.cycleFocus(-1)
		return nil
	}
	// Dropdowns and the value field consume everything else.
	if fb.resourceDropdown.HasFocus() || fb.comparatorDropdown.HasFocus() ||
		fb.combineDropdown.HasFocus() || fb.valueInput.HasFocus() {
		if event.Key() == tcell.KeyEnter && fb.valueInput.HasFocus() {
			fb.addCondition()
			return nil
		}
		return event
	}

	switch event.Key() {
	case tcell.KeyEnter:
		if fb.propertyList.HasFocus() {
			fb.tui.app.SetFocus(fb.valueInput)
			return nil
		}
	case tcell.KeyRune:
		switch event.Rune() {
		case 'a', 'A':
			fb.addCondition()
			return nil
		case 'c', 'C':
			fb.clearConditions()
			return nil
		case 'r', 'R':
			fb.apply()
			return nil
		}
	}
	return event
}

func (fb *filterBuilder) cycleFocus(direction int) {
	focusables := []tview.Primitive{
		fb.resourceDropdown,
		fb.propertyList,
		fb.comparatorDropdown,
		fb.valueInput,
		fb.combineDropdown,
		fb.conditionsList,
	}
	current := -1
	for i, p := range focusables {
		if p.HasFocus() {
			current = i
			break
		}
	}
	if current == -1 {
		fb.tui.app.SetFocus(focusables[0])
		return
	}
	next := (current + direction + len(focusables)) % len(focusables)
	fb.tui.app.SetFocus(focusables[next])
}

func (fb *filterBuilder) show() {
	fb.resourceDropdown.SetCurrentOption(0)
	fb.refresh()
	fb.tui.pages.SwitchToPage(pageBuilder)
	fb.tui.app.SetFocus(fb.propertyList)
}

// fetchProperties loads the search properties of resource. v1 has no
// properties endpoint, so a static list is shown instead.
func (fb *filterBuilder) fetchProperties(resource string) {
	fb.tui.app.QueueUpdateDraw(func() {
		fb.propertyList.Clear()
		fb.propertyList.AddItem("Loading properties...", "", 0, nil)
	})

	ctx, cancel := context.WithTimeout(fb.tui.baseCtx, 30*time.Second)
	defer cancel()

	props, err := fb.tui.client.Resource(resource).SearchProperties(ctx)
	note := ""
	if errors.Is(err, filter.ErrUnsupportedOperation) {
		props, err = defaultProperties[resource], nil
		note = "[gray]The v1 API does not list search properties; showing common ones.[white]\n"
	}

	fb.tui.app.QueueUpdateDraw(func() {
		if resource != fb.resource {
			return
		}
		fb.propertyList.Clear()
		fb.properties = nil
		if err != nil {
			fb.propertyList.AddItem("Properties not available", "", 0, nil)
			fb.propertyDetail.SetText(fmt.Sprintf("[red]Error:[white] %s", tview.Escape(err.Error())))
			return
		}
		fb.properties = props
		for _, p := range props {
			fb.propertyList.AddItem(p.DisplayName(), p.ID+"  "+p.TypeDescription(), 0, nil)
		}
		if len(props) > 0 {
			fb.propertyList.SetCurrentItem(0)
			fb.onPropertyChanged(0)
		}
		if note != "" {
			fb.propertyDetail.SetText(note + fb.propertyDetail.GetText(false))
		}
	})
}

func (fb *filterBuilder) selectedProperty() (filter.SearchProperty, bool) {
	i := fb.propertyList.GetCurrentItem()
	if i < 0 || i >= len(fb.properties) {
		return filter.SearchProperty{}, false
	}
	return fb.properties[i], true
}

func (fb *filterBuilder) onPropertyChanged(index int) {
	if index < 0 || index >= len(fb.properties) {
		return
	}
	p := fb.properties[index]
	var b strings.Builder
	fmt.Fprintf(&b, "[yellow]ID:[white] %s\n", p.ID)
	fmt.Fprintf(&b, "[yellow]Type:[white] %s\n", p.TypeDescription())
	if p.OrderBy {
		b.WriteString("[yellow]Sortable[white]\n")
	}
	if p.IPLike {
		b.WriteString("[yellow]Accepts iplike patterns[white]\n")
	}
	if len(p.Values) > 0 {
		values := make([]string, 0, len(p.Values))
		for v := range p.Values {
			values = append(values, v)
		}
		fmt.Fprintf(&b, "[yellow]Values:[white] %s\n", tview.Escape(strings.Join(values, ", ")))
	}
	fb.propertyDetail.SetText(b.String())
}

func (fb *filterBuilder) addCondition() {
	p, ok := fb.selectedProperty()
	if !ok {
		fb.tui.showError("Please select a property first")
		return
	}
	if err := fb.conditions.add(p.ID, fb.comparator, fb.valueInput.GetText()); err != nil {
		fb.tui.showError(err.Error())
		return
	}
	fb.valueInput.SetText("")
	fb.refresh()
}

func (fb *filterBuilder) clearConditions() {
	fb.conditions.clear()
	fb.refresh()
}

func (fb *filterBuilder) refresh() {
	fb.conditionsList.Clear()
	for _, line := range fb.conditions.lines() {
		fb.conditionsList.AddItem(tview.Escape(line), "", 0, nil)
	}
	fb.conditionsList.SetTitle(fmt.Sprintf("Restrictions (%d)", len(fb.conditions.restrictions)))
	fb.updatePreview()
}

func (fb *filterBuilder) updatePreview() {
	fb.previewText.SetText(fb.conditions.preview())
}

// apply runs the filter against the selected resource and shows the response.
func (fb *filterBuilder) apply() {
	f := fb.conditions.filter()
	resource := fb.resource
	svc := fb.tui.client.Resource(resource)
	go func() {
		ctx, cancel := context.WithTimeout(fb.tui.baseCtx, 60*time.Second)
		defer cancel()

		resp, err := svc.Find(ctx, f)
		if err != nil {
			fb.tui.showError(fmt.Sprintf("Find failed: %v", err))
			return
		}
		title := fmt.Sprintf("%s (%d)", resource, resp.Status)
		text := "[gray]no results[white]"
		if !resp.Empty() {
			var out bytes.Buffer
			if json.Indent(&out, resp.Body, "", "  ") == nil {
				text = tview.Escape(out.String())
			} else {
				text = tview.Escape(string(resp.Body))
			}
		}
		fb.tui.app.QueueUpdateDraw(func() {
			fb.tui.showResults(title, text)
		})
	}()
}
