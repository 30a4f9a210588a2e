package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

const minimalModuleJSON = `{
	"token": {"line": 1, "column": 1, "text": "m"},
	"name": "m",
	"declarations": [],
	"entities": [
		{"kind": "network", "token": {"line": 1, "column": 1, "text": "Top"},
		 "name": {"token": {"line": 1, "column": 1, "text": "Top"}, "value": "Top"},
		 "declarations": []}
	]
}`

func writeModuleFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "module.json")
	if err := os.WriteFile(path, []byte(minimalModuleJSON), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestRunCheckSucceedsOnValidModule(t *testing.T) {
	path := writeModuleFixture(t)
	topNetwork = ""
	if err := runCheck(nil, []string{path}); err != nil {
		t.Fatalf("runCheck: %v", err)
	}
}

func TestRunCheckVerboseSchedule(t *testing.T) {
	path := writeModuleFixture(t)
	topNetwork = ""
	verbose = true
	defer func() { verbose = false }()
	if err := runCheck(nil, []string{path}); err != nil {
		t.Fatalf("runCheck: %v", err)
	}
}

func TestRunCheckSelectsNamedTopNetwork(t *testing.T) {
	path := writeModuleFixture(t)
	topNetwork = "Top"
	defer func() { topNetwork = "" }()
	if err := runCheck(nil, []string{path}); err != nil {
		t.Fatalf("runCheck: %v", err)
	}
}
