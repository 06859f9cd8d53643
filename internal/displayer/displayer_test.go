package displayer

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"carpick/internal/registry/mock"
	"carpick/internal/selector"

	"github.com/gdamore/tcell/v2"
)

func drain(t *testing.T, q *selector.Queue) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := q.RunNext(ctx); err != nil {
		t.Fatalf("waiting for completion: %v", err)
	}
}

func newTestDisplayer(t *testing.T) (*Displayer, *selector.Queue) {
	t.Helper()
	q := selector.NewQueue()
	d := newDisplayer(context.Background(), mock.New(0, 0), nil, q)
	d.build()
	d.ctrl.Load(context.Background())
	drain(t, q)
	return d, q
}

func TestWidgetsMirrorController(t *testing.T) {
	d, q := newTestDisplayer(t)

	if !d.submitButton.IsDisabled() {
		t.Error("submit must start disabled")
	}
	if got := d.statusText.GetText(true); !strings.Contains(got, "ready") {
		t.Errorf("unexpected status %q", got)
	}

	// Typing goes through the input's changed handler.
	d.manufacturerInput.SetText("hon")
	visible := d.ctrl.Manufacturer().Visible()
	if len(visible) != 1 || visible[0].CommonName != "Honda" {
		t.Fatalf("expected Honda only, got %+v", visible)
	}

	d.ctrl.SelectManufacturer(visible[0])
	if got := d.manufacturerInput.GetText(); got != "HONDA MOTOR CO., LTD, JAPAN" {
		t.Errorf("input should show the resolved label, got %q", got)
	}
	if got := d.statusText.GetText(true); !strings.Contains(got, "loading makes") {
		t.Errorf("expected loading status, got %q", got)
	}
	drain(t, q)

	d.ctrl.SelectMake(d.ctrl.Make().Visible()[0])
	drain(t, q)
	d.ctrl.SelectModel(d.ctrl.Model().Visible()[0])

	if d.submitButton.IsDisabled() {
		t.Fatal("submit should be enabled once everything is resolved")
	}

	d.submit()
	if got := d.noticeText.GetText(true); got != selector.SubmitMessage {
		t.Errorf("expected confirmation notice, got %q", got)
	}
}

func TestResetClearsInputs(t *testing.T) {
	d, q := newTestDisplayer(t)

	mfrs := d.ctrl.Manufacturer().Visible()
	d.ctrl.SelectManufacturer(mfrs[0])
	drain(t, q)
	d.ctrl.SelectMake(d.ctrl.Make().Visible()[0])
	if d.makeInput.GetText() == "" {
		t.Fatal("make input should show the resolved make")
	}

	d.ctrl.SelectManufacturer(mfrs[1])
	if d.makeInput.GetText() != "" || d.modelInput.GetText() != "" {
		t.Errorf("downstream inputs should be cleared, got %q / %q", d.makeInput.GetText(), d.modelInput.GetText())
	}
	if _, ok := d.ctrl.Make().Selected(); ok {
		t.Error("clearing the input must not be echoed back as typing")
	}
}

func TestMoveFocusSkipsDisabled(t *testing.T) {
	d, q := newTestDisplayer(t)
	d.app.SetFocus(d.manufacturerInput)

	d.moveFocus(d.manufacturerInput, tcell.KeyTab)
	if d.app.GetFocus() != d.manufacturerInput {
		t.Error("focus should stay put when nothing else is enabled")
	}

	d.ctrl.SelectManufacturer(d.ctrl.Manufacturer().Visible()[0])
	drain(t, q)

	d.moveFocus(d.manufacturerInput, tcell.KeyTab)
	if d.app.GetFocus() != d.makeInput {
		t.Error("expected focus on the make input")
	}

	d.moveFocus(d.makeInput, tcell.KeyBacktab)
	if d.app.GetFocus() != d.manufacturerInput {
		t.Error("expected focus back on the manufacturer input")
	}
}

func TestNotifyReplacesPreviousNotice(t *testing.T) {
	d, _ := newTestDisplayer(t)

	d.Notify("first", time.Hour)
	d.Notify("second", time.Hour)
	if got := d.noticeText.GetText(true); got != "second" {
		t.Errorf("unexpected notice %q", got)
	}
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := newDisplayer(ctx, mock.New(0, 0), nil, selector.NewQueue())
	screen := tcell.NewSimulationScreen("UTF-8")
	d.app.SetScreen(screen)

	drawn := make(chan struct{})
	var once sync.Once
	d.app.SetAfterDrawFunc(func(tcell.Screen) {
		once.Do(func() { close(drawn) })
	})

	errc := make(chan error, 1)
	go func() { errc <- d.Run() }()

	select {
	case <-drawn:
	case <-time.After(2 * time.Second):
		t.Fatal("ui never drew")
	}
	cancel()

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
