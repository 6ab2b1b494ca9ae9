// ABOUTME: Drawing surface and chart handle contract
// ABOUTME: A surface holds at most one live chart; Destroy releases it for reuse

package chart

import (
	"errors"
	"sync"
)

// ErrSurfaceBusy is returned when a chart is created on a surface that still holds one
var ErrSurfaceBusy = errors.New("chart: surface already holds a chart")

// Surface is the drawing target a chart is bound to
type Surface interface {
	Name() string
	Bind() error
	Release()
}

// Chart is a live chart bound to a surface
type Chart interface {
	Kind() Kind
	Spec() Spec
	Destroy()
}

// Factory constructs charts on surfaces
type Factory interface {
	New(s Surface, spec Spec) (Chart, error)
}

// Canvas is an in-memory surface
type Canvas struct {
	name  string
	mu    sync.Mutex
	bound bool
}

// NewCanvas creates an unbound canvas
func NewCanvas(name string) *Canvas {
	return &Canvas{name: name}
}

// Name returns the canvas identifier
func (c *Canvas) Name() string {
	return c.name
}

// Bind claims the canvas for a chart
func (c *Canvas) Bind() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bound {
		return ErrSurfaceBusy
	}

	c.bound = true

	return nil
}

// Release frees the canvas
func (c *Canvas) Release() {
	c.mu.Lock()
	c.bound = false
	c.mu.Unlock()
}

// Bound reports whether a chart currently owns the canvas
func (c *Canvas) Bound() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.bound
}

// Handle is the shared part of every Chart implementation: it owns the
// surface binding and releases it exactly once
type Handle struct {
	surface Surface
	spec    Spec
	once    sync.Once
}

// NewHandle binds spec to s
func NewHandle(s Surface, spec Spec) (*Handle, error) {
	if err := s.Bind(); err != nil {
		return nil, err
	}

	return &Handle{surface: s, spec: spec}, nil
}

// Kind returns the chart type
func (h *Handle) Kind() Kind {
	return h.spec.Kind
}

// Spec returns the spec the chart was built from
func (h *Handle) Spec() Spec {
	return h.spec
}

// Surface returns the surface the chart is bound to
func (h *Handle) Surface() Surface {
	return h.surface
}

// Destroy releases the surface. Further calls are no-ops.
func (h *Handle) Destroy() {
	h.once.Do(h.surface.Release)
}
