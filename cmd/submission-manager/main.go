// Command submission-manager embeds the manager package as a long-lived
// process: no CLI or wire protocol of its own (spec.md §6 — "the manager is
// embedded in a server"), just the init/destroy lifecycle driven by process
// signals, grounded on cmd/appserver/main.go's flag-and-signal shape.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dataxfer/submission-manager/internal/cache"
	"github.com/dataxfer/submission-manager/internal/config"
	"github.com/dataxfer/submission-manager/internal/connector"
	"github.com/dataxfer/submission-manager/internal/engine"
	enginefake "github.com/dataxfer/submission-manager/internal/engine/fake"
	"github.com/dataxfer/submission-manager/internal/logging"
	"github.com/dataxfer/submission-manager/internal/manager"
	"github.com/dataxfer/submission-manager/internal/metrics"
	"github.com/dataxfer/submission-manager/internal/model"
	"github.com/dataxfer/submission-manager/internal/repository"
	"github.com/dataxfer/submission-manager/internal/repository/memory"
	"github.com/dataxfer/submission-manager/internal/repository/postgres"

	"github.com/go-redis/redis/v8"
)

func main() {
	dsn := flag.String("dsn", "", "PostgreSQL DSN (in-memory repository when empty)")
	migrationsDir := flag.String("migrations", "internal/repository/postgres/migrations", "path to migration files")
	redisAddr := flag.String("redis-addr", "", "optional Redis address for the framework-metadata cache")
	envFile := flag.String("env-file", ".env", "optional .env file to load before reading configuration")
	flag.Parse()

	if err := config.LoadDotEnvIfPresent(*envFile); err != nil {
		log.Fatalf("load %s: %v", *envFile, err)
	}

	logger := logging.NewFromEnv("manager")

	repo, closeRepo := buildRepository(*dsn, *migrationsDir, logger)
	if closeRepo != nil {
		defer closeRepo()
	}

	var frameworkCache *cache.FrameworkCache
	if addr := strings.TrimSpace(*redisAddr); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		frameworkCache = cache.New(client, 0)
	} else {
		frameworkCache = cache.New(nil, 0)
	}

	engines := engine.NewRegistry()
	engines.RegisterSubmissionEngine(enginefake.ExecutionEngineName, func() engine.SubmissionEngine {
		return enginefake.NewSubmissionEngine(enginefake.ExecutionEngineName)
	})
	engines.RegisterExecutionEngine(enginefake.ExecutionEngineName, func() engine.ExecutionEngine {
		return enginefake.NewExecutionEngine()
	})

	mgr := manager.New(manager.Config{
		Repository:     repo,
		Connectors:     connector.NewInMemoryRegistry(),
		Engines:        engines,
		Source:         config.Env{},
		Logger:         logger,
		Metrics:        metrics.New(),
		Cache:          frameworkCache,
		BuildFramework: staticFramework,
	})

	ctx := context.Background()
	if err := mgr.Initialize(ctx); err != nil {
		log.Fatalf("initialize manager: %v", err)
	}
	logger.Entry().Info("submission manager started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := mgr.Destroy(shutdownCtx); err != nil {
		log.Fatalf("destroy manager: %v", err)
	}
}

// buildRepository returns an in-memory repository when dsn is empty,
// otherwise a migrated Postgres-backed one, plus a close func (nil for the
// in-memory case).
func buildRepository(dsn, migrationsDir string, logger *logging.Logger) (repository.Repository, func()) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		logger.Entry().Warn("no -dsn given; using an in-memory repository")
		return memory.New(), nil
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	if err := postgres.Migrate(db, migrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	return postgres.New(db), func() { db.Close() }
}

// staticFramework builds the fixed MFramework schema (spec.md §4.1 step 1).
// The real field-level schema belongs to the UI/form layer (out of scope,
// spec.md §1); this is the minimal shape that exercises registration.
func staticFramework() *model.Framework {
	return &model.Framework{
		ConnectionForms: model.FormSet{
			Framework: map[string]string{"name": "string"},
			Connector: map[string]string{},
		},
		ImportJobForms: model.FormSet{
			Framework: map[string]string{"output_directory": "string"},
			Connector: map[string]string{},
		},
		ExportJobForms: model.FormSet{
			Framework: map[string]string{},
			Connector: map[string]string{},
		},
	}
}
