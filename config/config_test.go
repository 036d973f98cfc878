package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DropDelay != defaultDropDelay {
		t.Errorf("DropDelay = %v, want %v", cfg.DropDelay, defaultDropDelay)
	}
	if cfg.AllowExperimentalBoards {
		t.Error("AllowExperimentalBoards = true, want false")
	}
	if cfg.InterfaceTableCapacity != defaultInterfaceTableCapacity {
		t.Errorf("InterfaceTableCapacity = %d, want %d", cfg.InterfaceTableCapacity, defaultInterfaceTableCapacity)
	}
	if cfg.Timing.UploadRetryDeadline != 3000*time.Millisecond {
		t.Errorf("Timing.UploadRetryDeadline = %v, want 3000ms", cfg.Timing.UploadRetryDeadline)
	}
}

func TestFromEnvironment(t *testing.T) {
	tests := []struct {
		name    string
		envVal  string
		envSet  bool
		wantExp bool
	}{
		{name: "unset", envSet: false, wantExp: false},
		{name: "empty value does not enable", envSet: true, envVal: "", wantExp: false},
		{name: "any value enables", envSet: true, envVal: "1", wantExp: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv(experimentalBoardsEnv)
			if tt.envSet {
				os.Setenv(experimentalBoardsEnv, tt.envVal)
				defer os.Unsetenv(experimentalBoardsEnv)
			}

			cfg := FromEnvironment()
			if cfg.AllowExperimentalBoards != tt.wantExp {
				t.Errorf("AllowExperimentalBoards = %v, want %v", cfg.AllowExperimentalBoards, tt.wantExp)
			}
		})
	}
}

func TestLoadOverlaysOntoBase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tycore.yaml")
	doc := "dropDelay: 5000000000\nallowExperimentalBoards: true\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path, Default())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DropDelay != 5*time.Second {
		t.Errorf("DropDelay = %v, want 5s", cfg.DropDelay)
	}
	if !cfg.AllowExperimentalBoards {
		t.Error("AllowExperimentalBoards = false, want true")
	}
	// Fields absent from the document keep the base's values.
	if cfg.InterfaceTableCapacity != defaultInterfaceTableCapacity {
		t.Errorf("InterfaceTableCapacity = %d, want %d (untouched)", cfg.InterfaceTableCapacity, defaultInterfaceTableCapacity)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), Default())
	if err == nil {
		t.Fatal("Load with missing file: want error, got nil")
	}
}
