package deps

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"hevcpress/internal/config"
	"hevcpress/internal/services"
)

func writeStubBinary(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := writeStubBinary(t, binDir, "present")

	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}
}

func TestVerifyRequired(t *testing.T) {
	binDir := t.TempDir()
	ffmpeg := writeStubBinary(t, binDir, "ffmpeg")
	ffprobe := writeStubBinary(t, binDir, "ffprobe")

	enc := config.Encoding{FFmpegBinary: ffmpeg, FFprobeBinary: ffprobe}
	if err := VerifyRequired(enc); err != nil {
		t.Fatalf("expected required binaries to verify: %v", err)
	}

	enc.FFmpegBinary = "definitely-not-ffmpeg"
	err := VerifyRequired(enc)
	if err == nil {
		t.Fatal("expected error for missing encoder binary")
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration marker, got %v", err)
	}
}
