package filter

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// Func is a pure image transform. It receives a private copy of the
// current image and returns a new image; it may not retain its input.
type Func func(src image.Image) image.Image

var (
	// ErrUnknownFilter is returned for names that are not registered.
	ErrUnknownFilter = errors.New("unknown filter")
	// ErrFilterPanic is returned when a filter faults while running.
	ErrFilterPanic = errors.New("filter panicked")
	// ErrInvalidOutput is returned when a filter returns nil or an empty image.
	ErrInvalidOutput = errors.New("filter returned no image")
	// ErrClosed is returned once the registry has been closed.
	ErrClosed = errors.New("filter registry closed")
)

// FilterError reports a failed filter invocation. The image passed to the
// filter is never affected by the failure.
type FilterError struct {
	Name string
	Err  error
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("filter %q: %v", e.Name, e.Err)
}

func (e *FilterError) Unwrap() error { return e.Err }

// Registry is an explicit set of named filters owned by one editing session.
//
// Filters are registered and unregistered explicitly; Close unloads all of
// them when the session ends. Registry is not safe for concurrent use.
type Registry struct {
	filters map[string]Func
	closed  bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{filters: make(map[string]Func)}
}

// Register adds a filter. Names must be non-empty and unique.
func (r *Registry) Register(name string, fn Func) error {
	if r.closed {
		return ErrClosed
	}
	if name == "" {
		return errors.New("filter name is empty")
	}
	if fn == nil {
		return fmt.Errorf("filter %q has no function", name)
	}
	if _, ok := r.filters[name]; ok {
		return fmt.Errorf("filter %q already registered", name)
	}
	r.filters[name] = fn
	return nil
}

// Unregister removes a filter and reports whether it was present.
func (r *Registry) Unregister(name string) bool {
	if _, ok := r.filters[name]; !ok {
		return false
	}
	delete(r.filters, name)
	return true
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.filters[name]
	return ok
}

// Names returns the registered filter names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.filters))
	for n := range r.filters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Apply runs the named filter on img and converts its output back to a
// raster buffer.
//
// A filter that panics, returns nil or returns an empty image yields a
// *FilterError; img is left untouched in every case.
func (r *Registry) Apply(name string, img *raster.Buffer) (*raster.Buffer, error) {
	if r.closed {
		return nil, &FilterError{Name: name, Err: ErrClosed}
	}
	fn, ok := r.filters[name]
	if !ok {
		return nil, &FilterError{Name: name, Err: ErrUnknownFilter}
	}

	out, err := run(fn, img.Gray())
	if err != nil {
		return nil, &FilterError{Name: name, Err: err}
	}
	return out, nil
}

// run calls fn and converts its output. The output is read under the same
// recover as the call, since a faulty image can panic on access.
func run(fn Func, src image.Image) (out *raster.Buffer, err error) {
	defer func() {
		if p := recover(); p != nil {
			out = nil
			err = fmt.Errorf("%w: %v", ErrFilterPanic, p)
		}
	}()
	img := fn(src)
	if img == nil || img.Bounds().Empty() {
		return nil, ErrInvalidOutput
	}
	return raster.FromImage(img), nil
}

// Close unloads every filter. Later calls to Register and Apply fail.
func (r *Registry) Close() {
	r.filters = make(map[string]Func)
	r.closed = true
}
