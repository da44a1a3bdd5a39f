package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultSettings(t *testing.T) {
	s := Default()
	if s.Editor.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want 4", s.Editor.TabWidth)
	}
	if s.Editor.UndoDepth != 1000 {
		t.Errorf("UndoDepth = %d, want 1000", s.Editor.UndoDepth)
	}
	if !s.UI.LineNumbers {
		t.Error("LineNumbers should default to true")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Editor.TabWidth != 4 {
		t.Errorf("TabWidth = %d, want default 4", s.Editor.TabWidth)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[editor]\ntab_width = 8\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Editor.TabWidth != 8 {
		t.Errorf("TabWidth = %d, want 8", s.Editor.TabWidth)
	}
	if s.Editor.UndoDepth != 1000 {
		t.Errorf("UndoDepth = %d, want default 1000", s.Editor.UndoDepth)
	}
	if !s.UI.StatusLine {
		t.Error("StatusLine should keep its default")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on invalid TOML")
	}
}

func TestNormalizeClampsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[editor]\ntab_width = 100\nundo_depth = -5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Editor.TabWidth != 16 {
		t.Errorf("TabWidth = %d, want clamp to 16", s.Editor.TabWidth)
	}
	if s.Editor.UndoDepth != 1 {
		t.Errorf("UndoDepth = %d, want clamp to 1", s.Editor.UndoDepth)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	want := Default()
	want.Editor.TabWidth = 2
	want.UI.LineNumbers = false
	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Editor.TabWidth != 2 {
		t.Errorf("TabWidth = %d, want 2", got.Editor.TabWidth)
	}
	if got.UI.LineNumbers {
		t.Error("LineNumbers should round-trip as false")
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[editor]\ntab_width = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Settings, 1)
	w, err := Watch(path, func(s *Settings) {
		select {
		case reloaded <- s:
		default:
		}
	}, nil)
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[editor]\ntab_width = 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case s := <-reloaded:
		if s.Editor.TabWidth != 8 {
			t.Errorf("reloaded TabWidth = %d, want 8", s.Editor.TabWidth)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	w, err := Watch(path, func(*Settings) {}, nil)
	if err != nil {
		t.Fatalf("Watch() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}
