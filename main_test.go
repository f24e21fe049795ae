package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunHeadless(t *testing.T) {
	dir := t.TempDir()
	opts := options{
		headless:    true,
		outputDir:   filepath.Join(dir, "out"),
		archivePath: filepath.Join(dir, "seeds.db"),
		seed:        11,
		maxYears:    2,
	}

	if err := run(opts); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(opts.outputDir, "census.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Errorf("census.csv has %d lines, want header and 2 years", len(lines))
	}
	if _, err := os.Stat(opts.archivePath); err != nil {
		t.Errorf("archive not created: %v", err)
	}
}

func TestRunReturnsSinkErrors(t *testing.T) {
	dir := t.TempDir()
	opts := options{
		headless:    true,
		outputDir:   filepath.Join(dir, "out"),
		archivePath: filepath.Join(dir, "missing", "seeds.db"),
		maxYears:    1,
	}

	if err := run(opts); err == nil {
		t.Fatal("expected an error for an archive in a missing directory")
	}
	if _, err := os.Stat(filepath.Join(opts.outputDir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("timing:\n  speed: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := run(options{configPath: path, headless: true}); err == nil {
		t.Error("expected an error for an invalid config")
	}
}
