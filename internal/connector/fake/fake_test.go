package fake

import (
	"testing"

	"github.com/dataxfer/submission-manager/internal/model"
)

func TestInitializer_Initialize(t *testing.T) {
	i := NewInitializer()
	connConn := map[string]string{"host": "db.example"}
	connJob := map[string]string{"table": "orders"}

	if err := i.Initialize(model.Context{JobID: "17"}, connConn, connJob); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if i.ConnectorConnection["host"] != "db.example" {
		t.Errorf("ConnectorConnection = %v", i.ConnectorConnection)
	}
	if len(i.Jars()) != 1 {
		t.Errorf("Jars() = %v, want exactly one entry", i.Jars())
	}
}

func TestDestroyer_Ran(t *testing.T) {
	d := NewDestroyer()
	if d.Ran() {
		t.Fatal("Ran() = true before Run, want false")
	}
	if err := d.Run(model.Context{JobID: "17"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !d.Ran() {
		t.Error("Ran() = false after Run, want true")
	}
}
