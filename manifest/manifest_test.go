package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	// Create a temporary directory with a fen.toml
	dir := t.TempDir()
	tomlContent := `
[project]
name = "test-app"
version = "0.1.0"

[source]
dirs = ["scripts", "lib"]
entry = "main.fen"

[repl]
prompt = ">>> "
history = "/tmp/test-history.db"
`
	if err := os.WriteFile(filepath.Join(dir, "fen.toml"), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.Project.Name != "test-app" {
		t.Errorf("project name = %q, want test-app", m.Project.Name)
	}
	if m.Project.Version != "0.1.0" {
		t.Errorf("project version = %q, want 0.1.0", m.Project.Version)
	}
	if len(m.Source.Dirs) != 2 {
		t.Errorf("source dirs count = %d, want 2", len(m.Source.Dirs))
	}
	if m.Source.Entry != "main.fen" {
		t.Errorf("source entry = %q, want main.fen", m.Source.Entry)
	}
	if m.Repl.Prompt != ">>> " {
		t.Errorf("repl prompt = %q, want \">>> \"", m.Repl.Prompt)
	}
	if m.Repl.History != "/tmp/test-history.db" {
		t.Errorf("repl history = %q", m.Repl.History)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	tomlContent := `
[project]
name = "minimal"
`
	if err := os.WriteFile(filepath.Join(dir, "fen.toml"), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(m.Source.Dirs) != 1 || m.Source.Dirs[0] != "." {
		t.Errorf("default source dirs = %v, want [.]", m.Source.Dirs)
	}
	if m.Repl.Prompt != "fen> " {
		t.Errorf("default prompt = %q, want \"fen> \"", m.Repl.Prompt)
	}
	if m.Repl.History == "" {
		t.Error("default history path is empty")
	}
}

func TestFindAndLoad(t *testing.T) {
	// Create nested directory structure
	dir := t.TempDir()
	subDir := filepath.Join(dir, "a", "b", "c")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatal(err)
	}

	tomlContent := `[project]
name = "found-project"
`
	if err := os.WriteFile(filepath.Join(dir, "fen.toml"), []byte(tomlContent), 0644); err != nil {
		t.Fatal(err)
	}

	// Should find manifest when starting from a deep subdirectory
	m, err := FindAndLoad(subDir)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m == nil {
		t.Fatal("FindAndLoad returned nil")
	}
	if m.Project.Name != "found-project" {
		t.Errorf("project name = %q, want found-project", m.Project.Name)
	}
}

func TestFindAndLoadNotFound(t *testing.T) {
	dir := t.TempDir()
	m, err := FindAndLoad(dir)
	if err != nil {
		t.Fatalf("FindAndLoad error: %v", err)
	}
	if m != nil {
		t.Error("expected nil manifest when no fen.toml exists")
	}
}

func TestSourceDirPaths(t *testing.T) {
	m := &Manifest{
		Dir: "/app",
		Source: Source{
			Dirs: []string{"scripts", "lib"},
		},
	}

	paths := m.SourceDirPaths()
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(paths))
	}
	if paths[0] != "/app/scripts" {
		t.Errorf("paths[0] = %q, want /app/scripts", paths[0])
	}
	if paths[1] != "/app/lib" {
		t.Errorf("paths[1] = %q, want /app/lib", paths[1])
	}
}

func TestEntryPath(t *testing.T) {
	m := &Manifest{Dir: "/app", Source: Source{Entry: "main.fen"}}
	if got := m.EntryPath(); got != "/app/main.fen" {
		t.Errorf("EntryPath = %q, want /app/main.fen", got)
	}

	m = &Manifest{Dir: "/app"}
	if got := m.EntryPath(); got != "" {
		t.Errorf("EntryPath = %q, want empty", got)
	}
}
