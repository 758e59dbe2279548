package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toxgo.yaml")
	content := `
tox:
  env_list: "py311"
testenv:py311:
  set_env: "A=1"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile() returned error: %v", err)
	}

	if cfg.RootDir() != dir {
		t.Errorf("RootDir() = %q, want %q", cfg.RootDir(), dir)
	}
	if cfg.SourcePath() != path {
		t.Errorf("SourcePath() = %q, want %q", cfg.SourcePath(), path)
	}
	if got := loadCoreString(t, cfg, "config_file_path"); got != path {
		t.Errorf("Load(config_file_path) = %q, want %q", got, path)
	}
	if got := loadCoreString(t, cfg, "work_dir"); got != filepath.Join(dir, ".tox", "4") {
		t.Errorf("Load(work_dir) = %q, want %q", got, filepath.Join(dir, ".tox", "4"))
	}

	set, err := cfg.Env("py311")
	if err != nil {
		t.Fatalf("Env(py311) returned error: %v", err)
	}
	se := loadSetEnv(t, set, "set_env")
	if v, _ := se.Value("A"); v != "1" {
		t.Errorf("Value(A) = %q, want %q", v, "1")
	}
}

func TestNewFromFileMissing(t *testing.T) {
	if _, err := NewFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("NewFromFile() for a missing file should return an error")
	}
}

func TestEnvWithoutDocument(t *testing.T) {
	cfg, err := New("/proj", "/proj/toxgo.yaml", nil)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	set, err := cfg.Env("py39")
	if err != nil {
		t.Fatalf("Env(py39) returned error: %v", err)
	}
	if got := len(set.Loaders()); got != 0 {
		t.Errorf("environment set has %d loaders without a document, want 0", got)
	}
	if set.Section() != "testenv:py39" {
		t.Errorf("Section() = %q, want %q", set.Section(), "testenv:py39")
	}
}

func TestDeclaredEnvNames(t *testing.T) {
	doc := parseDoc(t, `
tox:
  env_list: ""
testenv:
  set_env: "SHARED=1"
testenv:py312:
  other: 1
testenv:py311:
  other: 2
`)
	cfg, err := New("/proj", "/proj/toxgo.yaml", doc)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	// The shared "testenv" base section is not an environment.
	want := []string{"py311", "py312"}
	if got := cfg.DeclaredEnvNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("DeclaredEnvNames() = %v, want %v", got, want)
	}
}

func TestDeclaredEnvNamesNoDocument(t *testing.T) {
	cfg, err := New("/proj", "/proj/toxgo.yaml", nil)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if got := cfg.DeclaredEnvNames(); len(got) != 0 {
		t.Errorf("DeclaredEnvNames() = %v, want empty", got)
	}
}

func TestSharedEnvLoaderIdentity(t *testing.T) {
	doc := parseDoc(t, `
testenv:
  set_env: "SHARED=1"
testenv:a:
  other: 1
testenv:b:
  other: 2
`)
	cfg, err := New("/proj", "/proj/toxgo.yaml", doc)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	a, err := cfg.Env("a")
	if err != nil {
		t.Fatalf("Env(a) returned error: %v", err)
	}
	b, err := cfg.Env("b")
	if err != nil {
		t.Fatalf("Env(b) returned error: %v", err)
	}

	// Both environments share the one base-section loader instance; the
	// unused-key audit depends on that identity.
	aBase := a.Loaders()[1]
	bBase := b.Loaders()[1]
	if aBase != bBase {
		t.Error("environment sets received different base loader instances")
	}
	if a.Loaders()[0].Parent() != aBase {
		t.Error("environment loader's parent is not the shared base loader")
	}
}
