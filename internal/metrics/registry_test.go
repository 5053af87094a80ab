package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitDefault(t *testing.T) {
	Reset()
	defer Reset()

	m := InitDefault()
	if m == nil {
		t.Fatal("expected metrics, got nil")
	}
	if m != Default {
		t.Error("expected returned metrics to be same as Default")
	}

	// Calling again should return same instance
	if m2 := InitDefault(); m2 != m {
		t.Error("expected same instance on second call")
	}
	if m3 := GetDefault(); m3 != m {
		t.Error("expected GetDefault to return the initialized instance")
	}
}

func TestGetDefaultInitializes(t *testing.T) {
	Reset()
	defer Reset()

	if m := GetDefault(); m == nil || Default == nil {
		t.Fatal("expected GetDefault to initialize Default")
	}
}

func TestWriteDefault(t *testing.T) {
	Reset()
	defer Reset()

	GetDefault().PlanTaskCount.Observe(9)

	path := filepath.Join(t.TempDir(), "build-plan.prom")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "buildplan_plan_task_count_count 1") {
		t.Errorf("metrics file missing task count:\n%s", data)
	}
}
