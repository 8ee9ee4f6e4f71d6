package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9000"
auth:
  jwt_secret: "test-secret"
  counselor: "ms-rivera"
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Fatalf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Auth.Counselor != "ms-rivera" {
		t.Fatalf("Counselor = %q", cfg.Auth.Counselor)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("Level = %q", cfg.Log.Level)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "s"
  counselor: "c"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("default Addr = %q", cfg.Server.Addr)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("default Level = %q", cfg.Log.Level)
	}
}

func TestLoadRejectsMissingRequiredFields(t *testing.T) {
	for name, body := range map[string]string{
		"no secret":    "auth:\n  counselor: c\n",
		"no counselor": "auth:\n  jwt_secret: s\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatal("Load accepted incomplete config")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatal("Load accepted a missing file")
	}
}
