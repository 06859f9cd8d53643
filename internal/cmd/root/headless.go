package root

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"carpick/internal/metrics"
	"carpick/internal/models"
	"carpick/internal/registry"
	"carpick/internal/selector"
)

type queries struct {
	manufacturer string
	make         string
	model        string
}

// runHeadless drives the selector from name queries instead of a TUI. Each
// level with an empty query prints its options and stops there.
func runHeadless(ctx context.Context, out io.Writer, provider registry.Provider, m *metrics.Metrics, q queries) error {
	queue := selector.NewQueue()
	notifier := selector.NotifierFunc(func(message string, _ time.Duration) {
		fmt.Fprintln(out, message)
	})
	c := selector.New(provider, queue, notifier, selector.WithMetrics(m))

	c.Load(ctx)
	if err := queue.RunNext(ctx); err != nil {
		return err
	}

	mfr, ok, err := choose(out, c, c.Manufacturer(), q.manufacturer)
	if err != nil || !ok {
		return err
	}
	c.SelectManufacturer(mfr)
	if err := queue.RunNext(ctx); err != nil {
		return err
	}

	mk, ok, err := choose(out, c, c.Make(), q.make)
	if err != nil || !ok {
		return err
	}
	c.SelectMake(mk)
	if err := queue.RunNext(ctx); err != nil {
		return err
	}

	md, ok, err := choose(out, c, c.Model(), q.model)
	if err != nil || !ok {
		return err
	}
	c.SelectModel(md)

	sel, err := c.Submit()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Manufacturer: %s\nMake: %s\nModel: %s\n",
		sel.Manufacturer.Label(), sel.Make.Label(), sel.Model.Label())
	return nil
}

// choose resolves query against f's options. An exact name or label wins,
// then a single prefix match. An empty query lists the options and reports
// ok=false.
func choose[T models.Entity](out io.Writer, c *selector.Controller, f *selector.Field[T], query string) (T, bool, error) {
	var zero T
	if query == "" {
		printOptions(out, f.ID(), f.Options())
		return zero, false, nil
	}

	for _, o := range f.Options() {
		if strings.EqualFold(o.Title(), query) || strings.EqualFold(o.Label(), query) {
			return o, true, nil
		}
	}

	c.SetText(f.ID(), query)
	visible := f.Visible()
	switch len(visible) {
	case 0:
		return zero, false, fmt.Errorf("no %s matches %q", f.ID(), query)
	case 1:
		return visible[0], true, nil
	}
	printOptions(out, f.ID(), visible)
	return zero, false, fmt.Errorf("%q matches %d %ss, be more specific", query, len(visible), f.ID())
}

func printOptions[T models.Entity](out io.Writer, id selector.FieldID, options []T) {
	fmt.Fprintf(out, "Available %ss:\n", id)
	if len(options) == 0 {
		fmt.Fprintf(out, "No %ss.\n", id)
		return
	}
	for _, o := range options {
		fmt.Fprintf(out, "- %s (%d)\n", o.Label(), o.Key())
	}
}
