package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromPath_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
store_path: /tmp/qa-envs.json
recent: 10
unique_cluster_names: true
default_sort: name
log_level: debug
`)
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.StorePath != "/tmp/qa-envs.json" || cfg.RecentN != 10 || !cfg.UniqueClusterNames {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.DefaultSort != "name" || cfg.LogLevel != "debug" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	// Fields the file omits keep their defaults.
	if cfg.LogFormat != "text" {
		t.Errorf("log_format default lost: %q", cfg.LogFormat)
	}
}

func TestLoadFromPath_JSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"store_path": "/tmp/x.json", "recent": 3}`)
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.StorePath != "/tmp/x.json" || cfg.RecentN != 3 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoad_DetectsFormatFromContent(t *testing.T) {
	cfg, err := Load([]byte(`{"recent": 7}`), "")
	if err != nil {
		t.Fatalf("Load json-by-content: %v", err)
	}
	if cfg.RecentN != 7 {
		t.Errorf("want 7, got %d", cfg.RecentN)
	}
	cfg, err = Load([]byte("recent: 9\n"), "")
	if err != nil {
		t.Fatalf("Load yaml-by-content: %v", err)
	}
	if cfg.RecentN != 9 {
		t.Errorf("want 9, got %d", cfg.RecentN)
	}
}

func TestResolve_ExplicitMissingPathIsError(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("want error for explicit missing config path")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.StorePath == "" || cfg.RecentN <= 0 || cfg.DefaultSort == "" {
		t.Errorf("incomplete defaults: %+v", cfg)
	}
}
