package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_TextFormatterWhenRequested(t *testing.T) {
	l := New("manager", "info", "text")
	if _, ok := l.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("Formatter = %T, want *logrus.TextFormatter", l.Formatter)
	}
	if l.Level != logrus.InfoLevel {
		t.Errorf("Level = %v, want Info", l.Level)
	}
}

func TestNew_JSONFormatterOtherwise(t *testing.T) {
	l := New("manager", "debug", "json")
	if _, ok := l.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("Formatter = %T, want *logrus.JSONFormatter", l.Formatter)
	}
	if l.Level != logrus.DebugLevel {
		t.Errorf("Level = %v, want Debug", l.Level)
	}
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	l := New("manager", "not-a-level", "json")
	if l.Level != logrus.InfoLevel {
		t.Errorf("Level = %v, want Info (fallback)", l.Level)
	}
}

func TestWithJob_TagsComponentAndJobID(t *testing.T) {
	var buf bytes.Buffer
	l := New("update-worker", "info", "json")
	l.SetOutput(&buf)

	l.WithJob("job-9").Info("refreshed")

	var fields map[string]any
	if err := json.Unmarshal(buf.Bytes(), &fields); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if fields["component"] != "update-worker" {
		t.Errorf("component = %v, want update-worker", fields["component"])
	}
	if fields["job_id"] != "job-9" {
		t.Errorf("job_id = %v, want job-9", fields["job_id"])
	}
}

func TestEntry_TagsComponentOnly(t *testing.T) {
	var buf bytes.Buffer
	l := New("purge-worker", "info", "json")
	l.SetOutput(&buf)

	l.Entry().Info("swept")

	var fields map[string]any
	if err := json.Unmarshal(buf.Bytes(), &fields); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if fields["component"] != "purge-worker" {
		t.Errorf("component = %v, want purge-worker", fields["component"])
	}
	if _, ok := fields["job_id"]; ok {
		t.Error("Entry() should not set job_id")
	}
}
