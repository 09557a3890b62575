package confloader

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Store struct {
		Dir      string `koanf:"dir"`
		InMemory bool   `koanf:"inmemory"`
	} `koanf:"store"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfigFile(t, "store:\n  dir: /var/lib/registry\nlog:\n  level: debug\n")

	var cfg testConfig
	l := NewLoader(WithConfigFile(path))
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Store.Dir != "/var/lib/registry" {
		t.Errorf("store.dir = %q", cfg.Store.Dir)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q", cfg.Log.Level)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "log:\n  level: info\n")
	t.Setenv("REGISTRY_LOG_LEVEL", "error")

	var cfg testConfig
	l := NewLoader(WithConfigFile(path))
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "error" {
		t.Errorf("log.level = %q, want env override", cfg.Log.Level)
	}
}

func TestLoad_EnvPrefix(t *testing.T) {
	t.Setenv("RGX_STORE_DIR", "/tmp/x")
	t.Setenv("REGISTRY_STORE_DIR", "/tmp/ignored-prefix")

	var cfg testConfig
	l := NewLoader(WithEnvPrefix("RGX_"))
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Store.Dir != "/tmp/x" {
		t.Errorf("store.dir = %q, want value from custom prefix", cfg.Store.Dir)
	}
}

func TestLoadMap_OverridesEverything(t *testing.T) {
	path := writeConfigFile(t, "store:\n  dir: /from-file\n")

	var cfg testConfig
	l := NewLoader(WithConfigFile(path))
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := l.LoadMap(map[string]any{"store.dir": "/from-flag", "store.inmemory": true}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if cfg.Store.Dir != "/from-flag" {
		t.Errorf("store.dir = %q, want flag override", cfg.Store.Dir)
	}
	if !cfg.Store.InMemory {
		t.Error("store.inmemory = false, want true")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFile() on missing file should fail")
	}
}

func TestGetters(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{"output": "json", "verbose": true}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	if got := l.GetString("output"); got != "json" {
		t.Errorf("GetString(output) = %q", got)
	}
	if !l.GetBool("verbose") {
		t.Error("GetBool(verbose) = false")
	}
	if len(l.All()) != 2 {
		t.Errorf("All() = %v", l.All())
	}
}
