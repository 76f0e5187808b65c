package manager

import (
	"fmt"
	"reflect"

	"github.com/dataxfer/submission-manager/internal/engine"
)

// resourceIdentifiers returns the jar/resource identifiers spec.md §4.3
// step 4 requires: common utilities, this manager, the connector SPI, the
// execution engine, the connector, and the JSON utility (goccy/go-json
// stands in for spec.md's literal "JSON utility" resource, per SPEC_FULL.md
// §6 — its package identity is the resource).
func resourceIdentifiers(submissionEngine engine.SubmissionEngine, executionEngine engine.ExecutionEngine, connectorID string) []string {
	return []string{
		"dataxfer/submission-manager/commons",
		"dataxfer/submission-manager",
		"dataxfer/submission-manager/connector-spi",
		fmt.Sprintf("execution-engine:%s", executionEngine.Name()),
		fmt.Sprintf("submission-engine:%s", reflect.TypeOf(submissionEngine).String()),
		fmt.Sprintf("connector:%s", connectorID),
		"github.com/goccy/go-json",
	}
}
