package ux

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathDefaults(t *testing.T) {
	defaults := NewPathDefaults()

	if got := defaults.PlanFile(); got != "build-plan.json" {
		t.Errorf("PlanFile() = %s, want build-plan.json", got)
	}
	if got := defaults.LockFile(); got != "build-plan.lock" {
		t.Errorf("LockFile() = %s, want build-plan.lock", got)
	}
}

func TestDiscoverFileWalksUpToRepositoryRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	module := filepath.Join(root, "app", "src")
	if err := os.MkdirAll(module, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, "build-plan.yaml")
	if err := os.WriteFile(want, []byte("minSdk: 21\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	defaults := &PathDefaults{Dir: module}
	got, err := defaults.ConfigFile()
	if err != nil {
		t.Fatalf("ConfigFile() error = %v", err)
	}
	if got != want {
		t.Errorf("ConfigFile() = %s, want %s", got, want)
	}

	_, err = defaults.DepsFile()
	if !IsNotFound(err) {
		t.Errorf("DepsFile() error = %v, want not found", err)
	}
}

func TestDiscoverFilePrefersEarlierName(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"build-plan.json", "build-plan.properties"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := (&PathDefaults{Dir: dir}).ConfigFile()
	if err != nil {
		t.Fatalf("ConfigFile() error = %v", err)
	}
	if filepath.Base(got) != "build-plan.properties" {
		t.Errorf("ConfigFile() = %s, want build-plan.properties", got)
	}
}
