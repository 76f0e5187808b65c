// Package config provides the configuration keys the manager reads at
// Initialize time (spec.md §6) plus the generic env/default loading helpers
// the rest of the module uses.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Configuration keys recognized by Manager.Initialize (spec.md §6).
const (
	KeySubmissionEngine = "submission.engine"
	KeyExecutionEngine  = "execution.engine"
	KeyPurgeThresholdMS = "submission.purge.threshold_ms"
	KeyPurgeSleepMS     = "submission.purge.sleep_ms"
	KeyUpdateSleepMS    = "submission.update.sleep_ms"
	// KeyPurgeSchedule and KeyUpdateSchedule are additive: when set to a
	// cron expression they take precedence over the plain sleep interval
	// for that worker (see internal/worker).
	KeyPurgeSchedule  = "submission.purge.schedule"
	KeyUpdateSchedule = "submission.update.schedule"
)

// Defaults mirror spec.md §4.1 step 7 / §6.
const (
	DefaultPurgeThreshold = 24 * time.Hour
	DefaultPurgeSleep     = 24 * time.Hour
	DefaultUpdateSleep    = 5 * time.Minute
)

// Source is the "system configuration source" external collaborator
// (spec.md §1): a flat key/value store the manager reads engine class
// names and tunables from. It is intentionally minimal — any backing store
// (env vars, a properties file, a remote config service) can implement it.
type Source interface {
	Get(key string) (string, bool)
}

// Env is the one concrete Source this module ships: process environment
// variables, with keys upper-cased and dots replaced by underscores
// (e.g. "submission.update.sleep_ms" -> "SUBMISSION_UPDATE_SLEEP_MS").
// Grounded on infrastructure/config/loader.go's EnvOrSecret helper.
type Env struct{}

// LoadDotEnvIfPresent loads a local .env file when present, mirroring
// internal/config/config.go's optional godotenv.Load. Missing files are not
// an error; parse errors are returned.
func LoadDotEnvIfPresent(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return godotenv.Load(path)
}

func envKey(key string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_").Replace(key))
}

// Get implements Source.
func (Env) Get(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(envKey(key)))
	if v == "" {
		return "", false
	}
	return v, true
}

// Prefixed scopes src to keys beginning with prefix+".", matching the engine
// configuration subtrees Manager.Initialize hands each engine (spec.md §4.1
// step 6): submissionEngine.Initialize sees only "submission.engine.*" keys
// with the prefix stripped, and likewise for the execution engine.
type prefixed struct {
	src    Source
	prefix string
}

func Prefixed(src Source, prefix string) Source {
	return prefixed{src: src, prefix: prefix + "."}
}

func (p prefixed) Get(key string) (string, bool) {
	return p.src.Get(p.prefix + key)
}

// GetString reads key from src, falling back to def.
func GetString(src Source, key, def string) string {
	if v, ok := src.Get(key); ok {
		return v
	}
	return def
}

// GetDuration reads key from src as milliseconds, falling back to def.
func GetDuration(src Source, key string, def time.Duration) time.Duration {
	v, ok := src.Get(key)
	if !ok {
		return def
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

// Tunables holds the three numeric configuration values read at
// Manager.Initialize step 7.
type Tunables struct {
	PurgeThreshold time.Duration
	PurgeSleep     time.Duration
	UpdateSleep    time.Duration
	PurgeSchedule  string // cron expression, optional
	UpdateSchedule string // cron expression, optional
}

// LoadTunables reads the three numeric keys (with their spec.md §6 defaults)
// plus the two optional cron-schedule overrides.
func LoadTunables(src Source) Tunables {
	return Tunables{
		PurgeThreshold: GetDuration(src, KeyPurgeThresholdMS, DefaultPurgeThreshold),
		PurgeSleep:     GetDuration(src, KeyPurgeSleepMS, DefaultPurgeSleep),
		UpdateSleep:    GetDuration(src, KeyUpdateSleepMS, DefaultUpdateSleep),
		PurgeSchedule:  GetString(src, KeyPurgeSchedule, ""),
		UpdateSchedule: GetString(src, KeyUpdateSchedule, ""),
	}
}
