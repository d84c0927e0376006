// Package plugin defines the extension points where tap, sink,
// discovery, and transform implementations attach to the pipeline
// core. Each operation is an open dispatch table keyed by a type tag;
// implementations register themselves and are resolved at runtime from
// the tag carried in the host configuration. This package defines only
// the dispatch contract, no implementations.
package plugin

import (
	"context"
	"io"
	"sync"

	"github.com/c360/pipekit/catalog"
	"github.com/c360/pipekit/errors"
	"github.com/c360/pipekit/message"
)

// Tap extracts records from a source and emits protocol messages on
// out. state is the previously persisted checkpoint, or nil on a first
// run.
type Tap interface {
	Extract(ctx context.Context, cfg map[string]any, state any, out *message.Writer) error
}

// Sink consumes a line-oriented protocol stream from in and loads the
// records into a destination.
type Sink interface {
	Load(ctx context.Context, cfg map[string]any, in io.Reader) error
}

// Discoverer inspects a source and returns the catalog entries for its
// available streams.
type Discoverer interface {
	Discover(ctx context.Context, cfg map[string]any) ([]catalog.Entry, error)
}

// Transformer rewrites a single protocol message, returning the
// replacement to emit in its place.
type Transformer interface {
	Transform(ctx context.Context, msg message.Message) (message.Message, error)
}

// Registry holds the four dispatch tables. All methods are safe for
// concurrent use.
type Registry struct {
	taps         map[string]Tap
	sinks        map[string]Sink
	discoverers  map[string]Discoverer
	transformers map[string]Transformer
	mu           sync.RWMutex
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		taps:         make(map[string]Tap),
		sinks:        make(map[string]Sink),
		discoverers:  make(map[string]Discoverer),
		transformers: make(map[string]Transformer),
	}
}

// RegisterTap registers a tap implementation under its type tag.
func (r *Registry) RegisterTap(name string, tap Tap) error {
	return register(r, r.taps, "RegisterTap", name, tap)
}

// RegisterSink registers a sink implementation under its type tag.
func (r *Registry) RegisterSink(name string, sink Sink) error {
	return register(r, r.sinks, "RegisterSink", name, sink)
}

// RegisterDiscoverer registers a discovery implementation under its type tag.
func (r *Registry) RegisterDiscoverer(name string, discoverer Discoverer) error {
	return register(r, r.discoverers, "RegisterDiscoverer", name, discoverer)
}

// RegisterTransformer registers a transform implementation under its type tag.
func (r *Registry) RegisterTransformer(name string, transformer Transformer) error {
	return register(r, r.transformers, "RegisterTransformer", name, transformer)
}

// Tap resolves the tap registered for the type tag.
func (r *Registry) Tap(name string) (Tap, error) {
	return lookup(r, r.taps, "Tap", name)
}

// Sink resolves the sink registered for the type tag.
func (r *Registry) Sink(name string) (Sink, error) {
	return lookup(r, r.sinks, "Sink", name)
}

// Discoverer resolves the discoverer registered for the type tag.
func (r *Registry) Discoverer(name string) (Discoverer, error) {
	return lookup(r, r.discoverers, "Discoverer", name)
}

// Transformer resolves the transformer registered for the type tag.
func (r *Registry) Transformer(name string) (Transformer, error) {
	return lookup(r, r.transformers, "Transformer", name)
}

func register[T any](r *Registry, table map[string]T, method, name string, impl T) error {
	if name == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Registry", method, "type tag validation")
	}
	if any(impl) == nil {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Registry", method, "implementation validation")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := table[name]; exists {
		return errors.WrapInvalid(errors.ErrAlreadyRegistered, "Registry", method, "type "+name)
	}
	table[name] = impl
	return nil
}

func lookup[T any](r *Registry, table map[string]T, method, name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	impl, exists := table[name]
	if !exists {
		var zero T
		return zero, errors.WrapInvalid(errors.ErrNoImplementation, "Registry", method, "type "+name)
	}
	return impl, nil
}
