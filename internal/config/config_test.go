package config

import (
	"testing"
	"time"
)

type mapSource map[string]string

func (m mapSource) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func TestGetString(t *testing.T) {
	src := mapSource{"submission.engine": "spark"}

	if got := GetString(src, "submission.engine", "default"); got != "spark" {
		t.Errorf("GetString() = %v, want spark", got)
	}
	if got := GetString(src, "missing.key", "default"); got != "default" {
		t.Errorf("GetString() = %v, want default", got)
	}
}

func TestGetDuration(t *testing.T) {
	src := mapSource{"submission.update.sleep_ms": "1500", "submission.purge.sleep_ms": "not-a-number"}

	if got := GetDuration(src, "submission.update.sleep_ms", DefaultUpdateSleep); got != 1500*time.Millisecond {
		t.Errorf("GetDuration() = %v, want 1500ms", got)
	}
	if got := GetDuration(src, "submission.purge.sleep_ms", DefaultPurgeSleep); got != DefaultPurgeSleep {
		t.Errorf("GetDuration() with unparsable value = %v, want default %v", got, DefaultPurgeSleep)
	}
	if got := GetDuration(src, "missing.key", DefaultPurgeThreshold); got != DefaultPurgeThreshold {
		t.Errorf("GetDuration() with missing key = %v, want default %v", got, DefaultPurgeThreshold)
	}
}

func TestLoadTunables_Defaults(t *testing.T) {
	tunables := LoadTunables(mapSource{})

	if tunables.PurgeThreshold != DefaultPurgeThreshold {
		t.Errorf("PurgeThreshold = %v, want %v", tunables.PurgeThreshold, DefaultPurgeThreshold)
	}
	if tunables.PurgeSleep != DefaultPurgeSleep {
		t.Errorf("PurgeSleep = %v, want %v", tunables.PurgeSleep, DefaultPurgeSleep)
	}
	if tunables.UpdateSleep != DefaultUpdateSleep {
		t.Errorf("UpdateSleep = %v, want %v", tunables.UpdateSleep, DefaultUpdateSleep)
	}
	if tunables.PurgeSchedule != "" || tunables.UpdateSchedule != "" {
		t.Errorf("schedules = %q/%q, want both empty", tunables.PurgeSchedule, tunables.UpdateSchedule)
	}
}

func TestLoadTunables_Overrides(t *testing.T) {
	src := mapSource{
		KeyPurgeThresholdMS: "3600000",
		KeyUpdateSchedule:   "*/5 * * * *",
	}
	tunables := LoadTunables(src)

	if tunables.PurgeThreshold != time.Hour {
		t.Errorf("PurgeThreshold = %v, want 1h", tunables.PurgeThreshold)
	}
	if tunables.UpdateSchedule != "*/5 * * * *" {
		t.Errorf("UpdateSchedule = %q, want */5 * * * *", tunables.UpdateSchedule)
	}
}

func TestPrefixed(t *testing.T) {
	src := mapSource{
		"submission.engine.master_url": "local[*]",
		"execution.engine.pool_size":   "4",
	}

	scoped := Prefixed(src, "submission.engine")
	if v, ok := scoped.Get("master_url"); !ok || v != "local[*]" {
		t.Errorf("Prefixed().Get(master_url) = %v, %v, want local[*], true", v, ok)
	}
	if _, ok := scoped.Get("pool_size"); ok {
		t.Errorf("Prefixed().Get(pool_size) = true, want false (wrong prefix)")
	}
}

func TestEnv_Get(t *testing.T) {
	t.Setenv("SUBMISSION_UPDATE_SLEEP_MS", "250")

	v, ok := Env{}.Get("submission.update.sleep_ms")
	if !ok || v != "250" {
		t.Errorf("Env.Get() = %v, %v, want 250, true", v, ok)
	}

	if _, ok := (Env{}).Get("submission.does.not.exist"); ok {
		t.Errorf("Env.Get() for unset var = true, want false")
	}
}
