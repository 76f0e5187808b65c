// Package manager implements the submission coordinator: the process-wide
// singleton that owns the submission/execution engines and the update and
// purge workers, and exposes the three caller-facing operations Submit,
// Stop, and Status (spec.md §4).
package manager

import (
	"context"
	"fmt"
	"sync"

	"github.com/dataxfer/submission-manager/internal/cache"
	"github.com/dataxfer/submission-manager/internal/config"
	"github.com/dataxfer/submission-manager/internal/connector"
	"github.com/dataxfer/submission-manager/internal/engine"
	"github.com/dataxfer/submission-manager/internal/ferrors"
	"github.com/dataxfer/submission-manager/internal/logging"
	"github.com/dataxfer/submission-manager/internal/metrics"
	"github.com/dataxfer/submission-manager/internal/model"
	"github.com/dataxfer/submission-manager/internal/repository"
	"github.com/dataxfer/submission-manager/internal/worker"
)

// Config collects everything Manager needs from its external collaborators
// (spec.md §1 Non-goals: repository, connector registry, system
// configuration source are all specified by interface only).
type Config struct {
	Repository repository.Repository
	Connectors connector.Registry
	Engines    *engine.Registry
	Source     config.Source

	Logger  *logging.Logger
	Metrics *metrics.Metrics
	Cache   *cache.FrameworkCache

	// BuildFramework constructs the in-memory MFramework from the fixed
	// configuration classes (spec.md §4.1 step 1). Those classes are owned
	// by the UI/form layer, out of scope here, so the caller supplies the
	// builder.
	BuildFramework func() *model.Framework
}

// Manager is the process-wide submission coordinator. The zero value is not
// usable; construct with New.
type Manager struct {
	mu          sync.Mutex // serializes Initialize/Destroy against each other
	initialized bool

	repo       repository.Repository
	connectors connector.Registry
	engines    *engine.Registry

	source    config.Source
	tunables  config.Tunables
	logger    *logging.Logger
	metrics   *metrics.Metrics
	cache     *cache.FrameworkCache
	buildForm func() *model.Framework

	submissionEngine engine.SubmissionEngine
	executionEngine  engine.ExecutionEngine
	framework        *model.Framework

	// submitMu is the single process-wide submission mutex of spec.md §5;
	// it guards the read-last-submission / engine-submit / persist-summary
	// region of Submit (invariant I1).
	submitMu sync.Mutex

	updateWorker *worker.Update
	purgeWorker  *worker.Purge
}

// New constructs a Manager. Call Initialize before Submit/Stop/Status.
func New(cfg Config) *Manager {
	return &Manager{
		repo:       cfg.Repository,
		connectors: cfg.Connectors,
		engines:    cfg.Engines,
		source:     cfg.Source,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		cache:      cfg.Cache,
		buildForm:  cfg.BuildFramework,
	}
}

// Initialize runs the two-phase startup of spec.md §4.1. It is idempotent:
// a call while already initialized is a no-op, and concurrent callers are
// serialized by mu so no duplicate engines or workers are ever created.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		return nil
	}

	// Cache-aside around invariant I3: the framework row is read-only once
	// registered, so a warm cache lets a fresh process skip the repository
	// round trip entirely; only a miss falls through to RegisterFramework.
	registered, hit := m.cache.Get(ctx)
	if !hit {
		fw := m.buildForm()
		var err error
		registered, err = m.repo.RegisterFramework(ctx, fw)
		if err != nil {
			return fmt.Errorf("register framework metadata: %w", err)
		}
		m.cache.Set(ctx, registered)
	}
	m.framework = registered

	submissionEngineName := config.GetString(m.source, config.KeySubmissionEngine, "")
	submissionEngine, err := m.engines.NewSubmissionEngine(submissionEngineName)
	if err != nil {
		return ferrors.EngineNotInstantiable(submissionEngineName, err)
	}

	executionEngineName := config.GetString(m.source, config.KeyExecutionEngine, "")
	executionEngine, err := m.engines.NewExecutionEngine(executionEngineName)
	if err != nil {
		return ferrors.ExecutionEngineNotInstantiable(executionEngineName, err)
	}

	if !submissionEngine.Accepts(executionEngine.Name()) {
		return ferrors.IncompatibleEngines(submissionEngineName, executionEngine.Name())
	}

	if err := submissionEngine.Initialize(ctx, config.Prefixed(m.source, config.KeySubmissionEngine)); err != nil {
		return ferrors.EngineNotInstantiable(submissionEngineName, err)
	}
	if err := executionEngine.Initialize(ctx, config.Prefixed(m.source, config.KeyExecutionEngine)); err != nil {
		return ferrors.ExecutionEngineNotInstantiable(executionEngineName, err)
	}

	m.submissionEngine = submissionEngine
	m.executionEngine = executionEngine
	m.tunables = config.LoadTunables(m.source)

	m.updateWorker = worker.NewUpdate(m.repo, m.update, m.tunables, m.logger, m.metrics)
	m.purgeWorker = worker.NewPurge(m.repo, m.tunables, m.logger, m.metrics)
	m.updateWorker.Start()
	m.purgeWorker.Start()

	m.initialized = true
	m.logger.Entry().WithField("submission_engine", submissionEngineName).
		WithField("execution_engine", executionEngineName).Info("manager initialized")
	return nil
}

// Destroy runs the shutdown sequence of spec.md §4.1: stop workers, join
// them, then destroy both engines. It is idempotent and serialized against
// Initialize by the same mutex.
func (m *Manager) Destroy(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return nil
	}

	if m.updateWorker != nil {
		m.updateWorker.Stop()
	}
	if m.purgeWorker != nil {
		m.purgeWorker.Stop()
	}

	var firstErr error
	if m.submissionEngine != nil {
		if err := m.submissionEngine.Destroy(ctx); err != nil {
			m.logger.Entry().WithError(err).Error("destroy submission engine")
			firstErr = err
		}
	}
	if m.executionEngine != nil {
		if err := m.executionEngine.Destroy(ctx); err != nil {
			m.logger.Entry().WithError(err).Error("destroy execution engine")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	m.submissionEngine = nil
	m.executionEngine = nil
	m.updateWorker = nil
	m.purgeWorker = nil
	m.initialized = false
	m.logger.Entry().Info("manager destroyed")
	return firstErr
}
