package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tinytelemetry/dealer365/internal/workspace"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Role != defaultRole || !cfg.Sidebar {
		t.Fatalf("role/sidebar = %q/%v, want defaults", cfg.Role, cfg.Sidebar)
	}
	if cfg.TypingDelay != defaultTypingDelay {
		t.Fatalf("typing-delay = %s, want %s", cfg.TypingDelay, defaultTypingDelay)
	}
	if cfg.QueryTimeout != defaultQueryTimeout {
		t.Fatalf("query-timeout = %s, want %s", cfg.QueryTimeout, defaultQueryTimeout)
	}
	if !strings.HasSuffix(cfg.LogFile, filepath.Join(".local", "state", "dealer365", "dealer365.log")) {
		t.Fatalf("log-file = %q", cfg.LogFile)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DEALER365_TYPING_DELAY", "250ms")

	path := filepath.Join(t.TempDir(), "config.yml")
	body := "role: service\nsidebar: false\nquery-timeout: 2s\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if role, _ := parseRole(cfg.Role); role != workspace.RoleService {
		t.Fatalf("role = %q, want service", cfg.Role)
	}
	if cfg.Sidebar {
		t.Fatal("sidebar = true, want false from file")
	}
	if cfg.QueryTimeout != 2*time.Second {
		t.Fatalf("query-timeout = %s, want 2s", cfg.QueryTimeout)
	}
	if cfg.TypingDelay != 250*time.Millisecond {
		t.Fatalf("typing-delay = %s, want 250ms from env", cfg.TypingDelay)
	}
	if cfg.ConfigPath != path {
		t.Fatalf("config path = %q, want %q", cfg.ConfigPath, path)
	}
}

func TestLoadConfig_RejectsUnknownRole(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DEALER365_ROLE", "janitor")

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatal("expected an error for an unknown role")
	}
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	cases := map[string]workspace.Role{
		"manager":    workspace.RoleManager,
		" Sales ":    workspace.RoleSales,
		"TECHNICIAN": workspace.RoleTechnician,
	}
	for in, want := range cases {
		got, ok := parseRole(in)
		if !ok || got != want {
			t.Fatalf("parseRole(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := parseRole("owner"); ok {
		t.Fatal("parseRole accepted an unknown role")
	}
}
