package selector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carpick/internal/metrics"
	"carpick/internal/models"
	"carpick/internal/registry"
	"carpick/pkg/log"

	"go.uber.org/zap"
)

// ErrIncomplete is returned by Submit when a field holds no resolved value.
var ErrIncomplete = errors.New("selection incomplete")

type EventKind int

const (
	EventLoading EventKind = iota
	EventLoaded
	EventReset
	EventText
	EventResolved
)

func (k EventKind) String() string {
	switch k {
	case EventLoading:
		return "loading"
	case EventLoaded:
		return "loaded"
	case EventReset:
		return "reset"
	case EventText:
		return "text"
	case EventResolved:
		return "resolved"
	}
	return "unknown"
}

// Event describes a state change of one field.
type Event struct {
	Field FieldID
	Kind  EventKind
}

// Controller owns the manufacturer → make → model cascade.
//
// All methods must be called from the goroutine the Scheduler delivers to;
// lookups run on their own goroutines and hand their results back through it.
type Controller struct {
	provider registry.Provider
	sched    Scheduler
	notifier Notifier
	metrics  *metrics.Metrics
	onChange func(Event)
	ctx      context.Context

	mfr *Field[models.Manufacturer]
	mk  *Field[models.Make]
	mdl *Field[models.Model]
}

type Option func(*Controller)

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// WithOnChange registers fn to be called after every state change.
func WithOnChange(fn func(Event)) Option {
	return func(c *Controller) { c.onChange = fn }
}

func New(provider registry.Provider, sched Scheduler, notifier Notifier, opts ...Option) *Controller {
	c := &Controller{
		provider: provider,
		sched:    sched,
		notifier: notifier,
		ctx:      context.Background(),
		mfr:      newField[models.Manufacturer](FieldManufacturer),
		mk:       newField[models.Make](FieldMake),
		mdl:      newField[models.Model](FieldModel),
	}
	if c.notifier == nil {
		c.notifier = NotifierFunc(func(string, time.Duration) {})
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Manufacturer() *Field[models.Manufacturer] { return c.mfr }
func (c *Controller) Make() *Field[models.Make]                 { return c.mk }
func (c *Controller) Model() *Field[models.Model]               { return c.mdl }

// Load fetches manufacturers and enables the manufacturer field once they
// arrive. ctx bounds this and every later lookup.
func (c *Controller) Load(ctx context.Context) {
	c.ctx = ctx
	c.mfr.enabled = false
	fetchInto(c, c.mfr, c.provider.Manufacturers)
}

func (c *Controller) SelectManufacturer(m models.Manufacturer) {
	if !c.mfr.enabled {
		log.Debug("ignoring selection on disabled field", zap.Stringer("field", FieldManufacturer))
		return
	}
	if c.mfr.resolve(m) {
		c.reset(FieldMake)
	}
	c.emit(FieldManufacturer, EventResolved)
	log.Debug("manufacturer selected", zap.Int("id", m.ID), zap.String("name", m.Name))

	fetchInto(c, c.mk, func(ctx context.Context) registry.Result[models.Make] {
		return c.provider.Makes(ctx, m.ID)
	})
}

func (c *Controller) SelectMake(mk models.Make) {
	if !c.mk.enabled {
		log.Debug("ignoring selection on disabled field", zap.Stringer("field", FieldMake))
		return
	}
	if c.mk.resolve(mk) {
		c.reset(FieldModel)
	}
	c.emit(FieldMake, EventResolved)
	log.Debug("make selected", zap.Int("id", mk.ID), zap.String("name", mk.Name))

	fetchInto(c, c.mdl, func(ctx context.Context) registry.Result[models.Model] {
		return c.provider.Models(ctx, mk.ID)
	})
}

func (c *Controller) SelectModel(md models.Model) {
	if !c.mdl.enabled {
		log.Debug("ignoring selection on disabled field", zap.Stringer("field", FieldModel))
		return
	}
	c.mdl.resolve(md)
	c.emit(FieldModel, EventResolved)
	log.Debug("model selected", zap.Int("id", md.ID), zap.String("name", md.Name))
}

// SetText records free text typed into a field and refilters its options.
// Downstream fields are left alone until the field loses focus.
func (c *Controller) SetText(id FieldID, text string) {
	switch id {
	case FieldManufacturer:
		if !c.mfr.enabled {
			return
		}
		c.mfr.setText(text)
	case FieldMake:
		if !c.mk.enabled {
			return
		}
		c.mk.setText(text)
	case FieldModel:
		if !c.mdl.enabled {
			return
		}
		c.mdl.setText(text)
	default:
		return
	}
	c.emit(id, EventText)
}

// Blur handles a field losing focus. An unresolved manufacturer or make
// clears and disables everything below it.
func (c *Controller) Blur(id FieldID) {
	switch id {
	case FieldManufacturer:
		if _, ok := c.mfr.Selected(); !ok {
			c.reset(FieldMake)
		}
	case FieldMake:
		if _, ok := c.mk.Selected(); !ok {
			c.reset(FieldModel)
		}
	}
}

// Complete reports whether Submit would be accepted.
func (c *Controller) Complete() bool {
	_, err := c.selection()
	return err == nil
}

// Submit confirms a fully resolved selection to the user. Nothing is stored.
func (c *Controller) Submit() (models.Selection, error) {
	sel, err := c.selection()
	if err != nil {
		log.Debug("submission rejected", zap.Error(err))
		return models.Selection{}, err
	}

	c.metrics.Submitted()
	log.Info("selection submitted",
		zap.Int("manufacturer_id", sel.Manufacturer.ID),
		zap.String("manufacturer", sel.Manufacturer.Name),
		zap.Int("make_id", sel.Make.ID),
		zap.String("make", sel.Make.Name),
		zap.Int("model_id", sel.Model.ID),
		zap.String("model", sel.Model.Name),
	)
	c.notifier.Notify(SubmitMessage, NoticeDuration)
	return sel, nil
}

func (c *Controller) selection() (models.Selection, error) {
	var (
		sel models.Selection
		err error
	)
	if sel.Manufacturer, err = resolvedValue(c.mfr); err != nil {
		return sel, err
	}
	if sel.Make, err = resolvedValue(c.mk); err != nil {
		return sel, err
	}
	if sel.Model, err = resolvedValue(c.mdl); err != nil {
		return sel, err
	}
	return sel, nil
}

// reset clears and disables from and every field below it.
func (c *Controller) reset(from FieldID) {
	if from <= FieldMake {
		c.mk.reset()
		c.emit(FieldMake, EventReset)
	}
	if from <= FieldModel {
		c.mdl.reset()
		c.emit(FieldModel, EventReset)
	}
}

func (c *Controller) emit(id FieldID, kind EventKind) {
	if c.onChange != nil {
		c.onChange(Event{Field: id, Kind: kind})
	}
}

func resolvedValue[T models.Entity](f *Field[T]) (T, error) {
	v, ok := f.Selected()
	if !ok || v.Title() == "" {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrIncomplete, f.id)
	}
	return v, nil
}

// fetchInto issues lookup for f. The result is applied on the scheduler's
// goroutine, unless a newer lookup or a reset superseded it in the meantime.
func fetchInto[T models.Entity](c *Controller, f *Field[T], lookup func(context.Context) registry.Result[T]) {
	gen := f.begin()
	ctx := c.ctx
	c.emit(f.id, EventLoading)

	go func() {
		res := lookup(ctx)
		c.sched.Schedule(func() {
			if !f.load(gen, res.Items) {
				c.metrics.Stale(f.id.String())
				log.Debug("discarding stale response",
					zap.Stringer("field", f.id),
					zap.Uint64("generation", gen),
				)
				return
			}
			log.Debug("options loaded",
				zap.Stringer("field", f.id),
				zap.Stringer("outcome", res.Outcome),
				zap.Int("count", len(res.Items)),
			)
			c.emit(f.id, EventLoaded)
		})
	}()
}
