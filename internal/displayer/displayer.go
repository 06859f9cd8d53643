package displayer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carpick/internal/metrics"
	"carpick/internal/models"
	"carpick/internal/registry"
	"carpick/internal/selector"
	"carpick/pkg/log"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// Displayer handles the TUI and drives a selector.Controller.
// Every controller call happens on the tview event goroutine.
type Displayer struct {
	app    *tview.Application
	ctrl   *selector.Controller
	ctx    context.Context
	cancel context.CancelFunc

	// syncing suppresses changed callbacks while the UI mirrors the
	// controller.
	syncing   bool
	loading   map[selector.FieldID]bool
	noticeSeq int

	// UI elements cached for updates
	manufacturerInput *tview.InputField
	makeInput         *tview.InputField
	modelInput        *tview.InputField
	submitButton      *tview.Button
	statusText        *tview.TextView
	helpText          *tview.TextView
	noticeText        *tview.TextView
	focusables        []focusable
}

type focusable struct {
	primitive tview.Primitive
	enabled   func() bool
	blur      func()
}

// New returns a Displayer that stops when ctx is cancelled.
func New(ctx context.Context, provider registry.Provider, m *metrics.Metrics) *Displayer {
	return newDisplayer(ctx, provider, m, nil)
}

// newDisplayer builds a Displayer whose controller reports through sched, or
// through the application's update queue when sched is nil.
func newDisplayer(parent context.Context, provider registry.Provider, m *metrics.Metrics, sched selector.Scheduler) *Displayer {
	ctx, cancel := context.WithCancel(parent)
	d := &Displayer{
		app:     tview.NewApplication(),
		ctx:     ctx,
		cancel:  cancel,
		loading: map[selector.FieldID]bool{},
	}
	if sched == nil {
		sched = selector.SchedulerFunc(func(fn func()) {
			d.app.QueueUpdateDraw(fn)
		})
	}
	d.ctrl = selector.New(provider, sched, d,
		selector.WithMetrics(m),
		selector.WithOnChange(d.onChange),
	)
	return d
}

func (d *Displayer) Run() error {
	root := d.build()

	d.app.SetRoot(root, true).EnableMouse(true)
	d.app.SetFocus(d.manufacturerInput)
	d.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlQ {
			d.Shutdown()
			return nil
		}
		return event
	})

	d.ctrl.Load(d.ctx)

	defer d.cancel()
	go func() {
		<-d.ctx.Done()
		d.app.Stop()
	}()
	return d.app.Run()
}

func (d *Displayer) Shutdown() {
	d.cancel()
	d.app.Stop()
}

// Notify shows message in the notice line and clears it after dur, unless a
// newer notice replaced it.
func (d *Displayer) Notify(message string, dur time.Duration) {
	d.noticeSeq++
	seq := d.noticeSeq
	d.noticeText.SetText(fmt.Sprintf("[green]%s[-]", tview.Escape(message)))

	time.AfterFunc(dur, func() {
		d.app.QueueUpdateDraw(func() {
			if d.noticeSeq == seq {
				d.noticeText.Clear()
			}
		})
	})
}

func (d *Displayer) build() tview.Primitive {
	// header area: title, status, help
	title := tview.NewTextView().SetTextAlign(tview.AlignCenter).SetText("carpick - vehicle selector")
	d.statusText = tview.NewTextView().SetTextAlign(tview.AlignCenter).SetDynamicColors(true)
	d.helpText = tview.NewTextView().SetTextAlign(tview.AlignCenter).
		SetText("[Type to search] [Enter/Tab - Next] [Shift-Tab - Back] [Ctrl-Q - Quit]")

	headerFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	headerFlex.AddItem(title, 1, 0, false)
	headerFlex.AddItem(d.statusText, 1, 0, false)
	headerFlex.AddItem(d.helpText, 1, 0, false)

	d.manufacturerInput = newInput("Manufacturer")
	d.makeInput = newInput("Make")
	d.modelInput = newInput("Model")
	d.submitButton = tview.NewButton("Submit").SetSelectedFunc(d.submit)
	d.noticeText = tview.NewTextView().SetTextAlign(tview.AlignCenter).SetDynamicColors(true)

	bindField(d, d.manufacturerInput, d.ctrl.Manufacturer(), d.ctrl.SelectManufacturer)
	bindField(d, d.makeInput, d.ctrl.Make(), d.ctrl.SelectMake)
	bindField(d, d.modelInput, d.ctrl.Model(), d.ctrl.SelectModel)

	d.focusables = []focusable{
		{d.manufacturerInput, d.ctrl.Manufacturer().Enabled, func() { d.ctrl.Blur(selector.FieldManufacturer) }},
		{d.makeInput, d.ctrl.Make().Enabled, func() { d.ctrl.Blur(selector.FieldMake) }},
		{d.modelInput, d.ctrl.Model().Enabled, func() { d.ctrl.Blur(selector.FieldModel) }},
		{d.submitButton, d.ctrl.Complete, nil},
	}
	d.submitButton.SetExitFunc(func(key tcell.Key) {
		d.moveFocus(d.submitButton, key)
	})

	form := tview.NewFlex().SetDirection(tview.FlexRow)
	form.SetBorder(true).SetTitle(" Select a vehicle ")
	form.AddItem(d.manufacturerInput, 1, 0, true)
	form.AddItem(nil, 1, 0, false)
	form.AddItem(d.makeInput, 1, 0, false)
	form.AddItem(nil, 1, 0, false)
	form.AddItem(d.modelInput, 1, 0, false)
	form.AddItem(nil, 1, 0, false)
	form.AddItem(d.submitButton, 1, 0, false)
	form.AddItem(nil, 0, 1, false)

	// Create main layout with header always visible
	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(headerFlex, 3, 0, false)
	mainFlex.AddItem(form, 0, 1, true)
	mainFlex.AddItem(d.noticeText, 1, 0, false)

	d.render()
	return mainFlex
}

func newInput(label string) *tview.InputField {
	input := tview.NewInputField().
		SetLabel(fmt.Sprintf("%-14s", label+":")).
		SetPlaceholder("type to search").
		SetFieldWidth(0)
	input.SetDisabled(true)
	return input
}

// bindField wires an input to one controller field: typing filters, picking
// an autocomplete entry resolves, leaving the input blurs.
func bindField[T models.Entity](d *Displayer, input *tview.InputField, f *selector.Field[T], pick func(T)) {
	input.SetChangedFunc(func(text string) {
		if d.syncing {
			return
		}
		d.ctrl.SetText(f.ID(), text)
	})
	input.SetAutocompleteFunc(func(string) []string {
		if !f.Enabled() {
			return nil
		}
		labels := f.Labels()
		for i, l := range labels {
			labels[i] = tview.Escape(l)
		}
		return labels
	})
	input.SetAutocompletedFunc(func(text string, index, source int) bool {
		if source == tview.AutocompletedNavigate {
			return false
		}
		visible := f.Visible()
		if index < 0 || index >= len(visible) {
			return true
		}
		pick(visible[index])
		return true
	})
	input.SetBlurFunc(func() {
		d.ctrl.Blur(f.ID())
	})
	input.SetDoneFunc(func(key tcell.Key) {
		d.moveFocus(input, key)
	})
}

// moveFocus handles Tab/Enter/Backtab by focusing the next enabled item.
func (d *Displayer) moveFocus(from tview.Primitive, key tcell.Key) {
	step := 0
	switch key {
	case tcell.KeyTab, tcell.KeyEnter:
		step = 1
	case tcell.KeyBacktab:
		step = -1
	default:
		return
	}

	current := -1
	for i, f := range d.focusables {
		if f.primitive == from {
			current = i
			break
		}
	}
	if current < 0 {
		return
	}
	// Apply the blur first so the next candidate sees downstream resets.
	if blur := d.focusables[current].blur; blur != nil {
		blur()
	}

	n := len(d.focusables)
	for i := 1; i < n; i++ {
		next := d.focusables[((current+step*i)%n+n)%n]
		if next.enabled() {
			d.app.SetFocus(next.primitive)
			return
		}
	}
}

func (d *Displayer) submit() {
	if _, err := d.ctrl.Submit(); err != nil {
		log.Debug("submit ignored", zap.Error(err))
	}
}

func (d *Displayer) onChange(e selector.Event) {
	switch e.Kind {
	case selector.EventLoading:
		d.loading[e.Field] = true
	case selector.EventLoaded, selector.EventReset:
		delete(d.loading, e.Field)
	}
	if d.statusText == nil {
		return
	}
	d.render()

	// Completions arrive outside input handlers, so the drop-down can be
	// refreshed here.
	if e.Kind == selector.EventLoaded {
		if input := d.input(e.Field); input != nil && input.HasFocus() {
			input.Autocomplete()
		}
	}
}

func (d *Displayer) input(id selector.FieldID) *tview.InputField {
	switch id {
	case selector.FieldManufacturer:
		return d.manufacturerInput
	case selector.FieldMake:
		return d.makeInput
	case selector.FieldModel:
		return d.modelInput
	}
	return nil
}

// render mirrors controller state onto the widgets.
func (d *Displayer) render() {
	syncInput(d, d.manufacturerInput, d.ctrl.Manufacturer())
	syncInput(d, d.makeInput, d.ctrl.Make())
	syncInput(d, d.modelInput, d.ctrl.Model())
	d.submitButton.SetDisabled(!d.ctrl.Complete())
	d.statusText.SetText(d.status())
}

func syncInput[T models.Entity](d *Displayer, input *tview.InputField, f *selector.Field[T]) {
	d.syncing = true
	defer func() { d.syncing = false }()

	input.SetDisabled(!f.Enabled())
	if input.GetText() != f.Text() {
		input.SetText(f.Text())
	}
}

func (d *Displayer) status() string {
	var pending []string
	for _, id := range []selector.FieldID{selector.FieldManufacturer, selector.FieldMake, selector.FieldModel} {
		if d.loading[id] {
			pending = append(pending, id.String()+"s")
		}
	}
	switch {
	case len(pending) > 0:
		return fmt.Sprintf("Status: [yellow]loading %s...[white]", strings.Join(pending, ", "))
	case d.ctrl.Complete():
		return "Status: [green]ready to submit[white]"
	}
	return "Status: [white]ready"
}
