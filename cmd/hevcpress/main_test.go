package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("[paths]\nlog_dir = %q\n%s", filepath.Join(dir, "logs"), extra)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	cmd := newRootCommand()
	expected := []string{"run", "history", "deps", "config"}
	for _, name := range expected {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing subcommand %q", name)
		}
	}
}

func TestRunRequiresInputPath(t *testing.T) {
	cfgPath := writeTestConfig(t, "")
	if _, err := executeCommand(t, "--config", cfgPath, "run"); err == nil {
		t.Fatal("expected error when --input_path is missing")
	}
}

func TestHistoryEmptyJournal(t *testing.T) {
	cfgPath := writeTestConfig(t, "")
	out, err := executeCommand(t, "--config", cfgPath, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "No runs recorded yet") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestResolveRunPathsDefaultsOutput(t *testing.T) {
	input := t.TempDir()
	resolvedInput, output, err := resolveRunPaths(input, "")
	if err != nil {
		t.Fatalf("resolve paths: %v", err)
	}
	if resolvedInput != input {
		t.Fatalf("unexpected input: %q", resolvedInput)
	}
	want := filepath.Join(filepath.Dir(input), filepath.Base(input)+"_encoded")
	if output != want {
		t.Fatalf("expected default output %q, got %q", want, output)
	}
}

func TestResolveRunPathsExplicitOutput(t *testing.T) {
	input := t.TempDir()
	explicit := filepath.Join(t.TempDir(), "dest")
	_, output, err := resolveRunPaths(input, explicit)
	if err != nil {
		t.Fatalf("resolve paths: %v", err)
	}
	if output != explicit {
		t.Fatalf("expected %q, got %q", explicit, output)
	}
}
