// Package docstore is a thin facade over the storage registry,
// specialized for the three well-known document roles a pipeline
// carries: config, state, and catalog.
//
// Every accessor is a direct pass-through: no caching, no merge
// semantics. A save replaces the document wholesale and a subsequent
// load re-reads from the backend, so there is no in-memory staleness.
// Two concurrent writers to the same location race and the last
// writer's value persists; callers needing exclusivity must add their
// own coordination.
package docstore

import (
	"context"

	"github.com/c360/pipekit/errors"
	"github.com/c360/pipekit/storage"
)

// Locations carries the three location strings identifying a
// pipeline's persisted documents. Each is either "scheme://bucket/path"
// or a bare local path.
type Locations struct {
	Config  string `json:"config"`
	State   string `json:"state"`
	Catalog string `json:"catalog"`
}

// Store resolves document roles to storage locations.
type Store struct {
	registry *storage.Registry
}

// New creates a document store over the given backend registry.
func New(registry *storage.Registry) *Store {
	return &Store{registry: registry}
}

// LoadConfig reads the config document. The found flag follows the
// backend's presence contract: false with a nil error means a remote
// location is legitimately empty.
func (s *Store) LoadConfig(ctx context.Context, locations Locations) (any, bool, error) {
	return s.load(ctx, locations.Config, "config")
}

// SaveConfig replaces the config document.
func (s *Store) SaveConfig(ctx context.Context, locations Locations, doc any) error {
	return s.save(ctx, locations.Config, "config", doc)
}

// LoadState reads the checkpoint state document.
func (s *Store) LoadState(ctx context.Context, locations Locations) (any, bool, error) {
	return s.load(ctx, locations.State, "state")
}

// SaveState replaces the checkpoint state document.
func (s *Store) SaveState(ctx context.Context, locations Locations, doc any) error {
	return s.save(ctx, locations.State, "state", doc)
}

// LoadCatalog reads the catalog document.
func (s *Store) LoadCatalog(ctx context.Context, locations Locations) (any, bool, error) {
	return s.load(ctx, locations.Catalog, "catalog")
}

// SaveCatalog replaces the catalog document.
func (s *Store) SaveCatalog(ctx context.Context, locations Locations, doc any) error {
	return s.save(ctx, locations.Catalog, "catalog", doc)
}

func (s *Store) load(ctx context.Context, location, role string) (any, bool, error) {
	if location == "" {
		return nil, false, errors.WrapInvalid(errors.ErrMissingConfig, "DocStore", "load", role+" location")
	}
	return s.registry.ReadDocument(ctx, location)
}

func (s *Store) save(ctx context.Context, location, role string, doc any) error {
	if location == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "DocStore", "save", role+" location")
	}
	return s.registry.WriteDocument(ctx, location, doc)
}
