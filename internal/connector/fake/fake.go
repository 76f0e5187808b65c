// Package fake provides a trivial Initializer/Destroyer pair for tests,
// mirroring the role internal/engine/fake plays for the engine SPIs.
package fake

import (
	"sync"

	"github.com/dataxfer/submission-manager/internal/model"
)

// Initializer records the configs it was initialized with and reports a
// single extra jar, exercising spec.md §4.3 step 6.
type Initializer struct {
	mu                  sync.Mutex
	ConnectorConnection map[string]string
	ConnectorJob        map[string]string
	initialized         bool
}

func NewInitializer() *Initializer { return &Initializer{} }

func (i *Initializer) Initialize(_ model.Context, connConn, connJob map[string]string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.ConnectorConnection = connConn
	i.ConnectorJob = connJob
	i.initialized = true
	return nil
}

func (i *Initializer) Jars() []string { return []string{"fake-connector-support.jar"} }

// Destroyer records whether Run was invoked, letting tests assert the
// cleanup-on-rejected-submit path (spec.md §4.3 step 8c).
type Destroyer struct {
	mu  sync.Mutex
	ran bool
}

func NewDestroyer() *Destroyer { return &Destroyer{} }

func (d *Destroyer) Run(model.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ran = true
	return nil
}

func (d *Destroyer) Ran() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ran
}
