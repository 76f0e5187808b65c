// Package connector declares the connector registry contract (spec.md §6):
// an external collaborator that resolves a connector id to its
// configuration shape and per-job-type callback set. Concrete connectors
// are out of scope (spec.md §1); this package only fixes the interface the
// manager depends on, plus a tiny in-memory Registry used by tests.
package connector

import (
	"github.com/dataxfer/submission-manager/internal/model"
)

// Connector is what the registry returns for a connector id.
type Connector struct {
	ID       string
	Importer Callbacks
	Exporter Callbacks
}

// Callbacks bundles the initializer/destroyer factories a connector
// supplies for one job type (spec.md §6).
type Callbacks struct {
	NewInitializer func() model.Initializer
	NewDestroyer   func() model.Destroyer
}

// Registry resolves a connector id to its Connector. The production
// implementation is owned by the connector subsystem (out of scope, per
// spec.md §1); Manager only depends on this interface.
type Registry interface {
	GetConnector(connectorID string) (*Connector, bool)
}

// InMemoryRegistry is a Registry backed by a plain map, used by tests and
// examples in lieu of the real connector subsystem.
type InMemoryRegistry struct {
	connectors map[string]*Connector
}

// NewInMemoryRegistry creates an empty InMemoryRegistry.
func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{connectors: make(map[string]*Connector)}
}

// Register adds or replaces a connector.
func (r *InMemoryRegistry) Register(c *Connector) {
	r.connectors[c.ID] = c
}

// GetConnector implements Registry.
func (r *InMemoryRegistry) GetConnector(connectorID string) (*Connector, bool) {
	c, ok := r.connectors[connectorID]
	return c, ok
}
