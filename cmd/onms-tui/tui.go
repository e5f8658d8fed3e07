package main

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/mhuot/go-opennms/pkg/client"
)

const (
	pageBuilder = "builder"
	pageResults = "results"
	pageError   = "error"
)

type TUI struct {
	app     *tview.Application
	pages   *tview.Pages
	results *tview.TextView

	client  *client.Client
	builder *filterBuilder

	baseCtx    context.Context
	baseCancel context.CancelFunc
	stopOnce   sync.Once
}

// configureStyles sets the tview global styles for the TUI.
func configureStyles() {
	tview.Styles.PrimitiveBackgroundColor = tcell.ColorBlack
	tview.Styles.ContrastBackgroundColor = tcell.ColorDarkSlateGray
	tview.Styles.MoreContrastBackgroundColor = tcell.ColorGreen
	tview.Styles.BorderColor = tcell.ColorWhite
	tview.Styles.TitleColor = tcell.ColorWhite
	tview.Styles.PrimaryTextColor = tcell.ColorWhite
	tview.Styles.SecondaryTextColor = tcell.ColorYellow
	tview.Styles.TertiaryTextColor = tcell.ColorGreen
}

// NewTUI creates a TUI bound to c. The context controls the lifetime of
// background requests; nil means context.Background().
func NewTUI(ctx context.Context, c *client.Client) *TUI {
	if ctx == nil {
		ctx = context.Background()
	}
	baseCtx, baseCancel := context.WithCancel(ctx)

	configureStyles()

	t := &TUI{
		app:        tview.NewApplication(),
		pages:      tview.NewPages(),
		client:     c,
		baseCtx:    baseCtx,
		baseCancel: baseCancel,
	}
	t.builder = newFilterBuilder(t)
	t.builder.setup()
	t.setupResultsPage()
	t.builder.show()
	return t
}

// Run starts the event loop and blocks until the application exits.
func (t *TUI) Run() error {
	return t.app.SetRoot(t.pages, true).Run()
}

func (t *TUI) Stop() {
	t.stopOnce.Do(func() {
		t.baseCancel()
		t.app.Stop()
	})
}

func (t *TUI) setupResultsPage() {
	t.results = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	t.results.SetBorder(true).SetTitle("Results")

	page := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.results, 0, 1, true).
		AddItem(makeHelpText("[yellow]Esc[white] back to builder  [yellow]Up/Down[white] scroll"), 3, 0, false)
	page.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			t.pages.SwitchToPage(pageBuilder)
			t.app.SetFocus(t.builder.propertyList)
			return nil
		}
		return event
	})
	t.pages.AddPage(pageResults, page, true, false)
}

func (t *TUI) showResults(title, text string) {
	t.results.SetTitle(title)
	t.results.SetText(text)
	t.results.ScrollToBeginning()
	t.pages.SwitchToPage(pageResults)
	t.app.SetFocus(t.results)
}

func (t *TUI) showError(message string) {
	t.app.QueueUpdateDraw(func() {
		modal := tview.NewModal().
			SetText(message).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(int, string) {
				t.pages.HidePage(pageError)
			})
		t.pages.RemovePage(pageError)
		t.pages.AddPage(pageError, modal, false, true)
		t.pages.ShowPage(pageError)
	})
}

func makeHelpText(text string) *tview.TextView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText(text)
	tv.SetBorder(true)
	return tv
}
