package mock

import (
	"context"
	"errors"
	"math/rand"
	"slices"
	"sync"
	"time"

	"carpick/internal/models"
	"carpick/internal/registry"
)

// ErrInjected is returned (inside a failed Result) for endpoints switched to
// fail with SetFailing.
var ErrInjected = errors.New("mock: injected failure")

// Provider is an in-memory registry used for demo and testing.
type Provider struct {
	mu      sync.RWMutex
	latency time.Duration
	jitter  time.Duration
	failing map[string]bool
	calls   map[string]int

	manufacturers []models.Manufacturer
	makes         map[int][]models.Make
	models        map[int][]models.Model
}

var _ registry.Provider = (*Provider)(nil)

// New returns a provider serving the built-in dataset. Every lookup waits
// latency plus up to jitter before answering.
func New(latency, jitter time.Duration) *Provider {
	return NewWithData(latency, jitter, manufacturers, makes, vehicleModels)
}

// NewWithData returns a provider serving the given dataset.
func NewWithData(latency, jitter time.Duration, mfrs []models.Manufacturer, mks map[int][]models.Make, mdls map[int][]models.Model) *Provider {
	return &Provider{
		latency:       latency,
		jitter:        jitter,
		failing:       map[string]bool{},
		calls:         map[string]int{},
		manufacturers: mfrs,
		makes:         mks,
		models:        mdls,
	}
}

// SetFailing makes lookups against endpoint fail (or succeed again).
func (p *Provider) SetFailing(endpoint registry.Endpoint, failing bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failing[endpoint.Name] = failing
}

// Calls reports how many lookups hit endpoint.
func (p *Provider) Calls(endpoint registry.Endpoint) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.calls[endpoint.Name]
}

func (p *Provider) Manufacturers(ctx context.Context) registry.Result[models.Manufacturer] {
	return lookup(ctx, p, registry.EndpointManufacturers, p.manufacturers)
}

func (p *Provider) Makes(ctx context.Context, manufacturerID int) registry.Result[models.Make] {
	return lookup(ctx, p, registry.EndpointMakes, p.makes[manufacturerID])
}

func (p *Provider) Models(ctx context.Context, makeID int) registry.Result[models.Model] {
	return lookup(ctx, p, registry.EndpointModels, p.models[makeID])
}

func lookup[T models.Entity](ctx context.Context, p *Provider, endpoint registry.Endpoint, items []T) registry.Result[T] {
	p.mu.Lock()
	p.calls[endpoint.Name]++
	failing := p.failing[endpoint.Name]
	delay := p.latency
	if p.jitter > 0 {
		delay += time.Duration(rand.Int63n(int64(p.jitter)))
	}
	p.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return registry.Failed[T](ctx.Err())
		case <-timer.C:
		}
	}

	if failing {
		return registry.Failed[T](ErrInjected)
	}
	out := slices.Clone(items)
	registry.Sort(out)
	return registry.Ok(out)
}
