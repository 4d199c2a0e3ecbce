package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateCommandSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	body := []byte(`version: 1
questions:
  - id: 1
    body: "1 + 1 = ?"
    options: ["1", "2"]
    correct_index: 1
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	var out, errOut bytes.Buffer
	code := Run([]string{"validate", path}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, errOut.String())
	}
	if !strings.Contains(out.String(), "Catalog OK (1 questions)") {
		t.Fatalf("expected success message, got %q", out.String())
	}
}

func TestValidateCommandFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	body := []byte(`version: 1
questions:
  - id: 1
    body: ""
    options: ["1"]
    correct_index: 4
`)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	var out, errOut bytes.Buffer
	code := Run([]string{"validate", path}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut.String(), "Validation failed") || !strings.Contains(errOut.String(), "correct_index") {
		t.Fatalf("expected validation issues, got %q", errOut.String())
	}
}

func TestValidateCommandUsage(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := Run([]string{"validate"}, &out, &errOut); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
}
