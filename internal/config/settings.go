package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Settings is the full editor configuration.
type Settings struct {
	Editor EditorSettings `toml:"editor"`
	UI     UISettings     `toml:"ui"`
}

// EditorSettings configures editing behavior.
type EditorSettings struct {
	// TabWidth is the display width of a tab character, 1 to 16.
	TabWidth int `toml:"tab_width"`

	// UndoDepth bounds the undo history.
	UndoDepth int `toml:"undo_depth"`

	// AutoIndent copies the previous line's leading whitespace when a
	// newline is inserted.
	AutoIndent bool `toml:"auto_indent"`
}

// UISettings configures the terminal front end.
type UISettings struct {
	// LineNumbers shows a line number gutter.
	LineNumbers bool `toml:"line_numbers"`

	// StatusLine shows the status bar at the bottom of the screen.
	StatusLine bool `toml:"status_line"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Editor: EditorSettings{
			TabWidth:   4,
			UndoDepth:  1000,
			AutoIndent: true,
		},
		UI: UISettings{
			LineNumbers: true,
			StatusLine:  true,
		},
	}
}

// DefaultPath returns the standard location of the config file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "inkwell", "config.toml"), nil
}

// Load reads settings from a TOML file. A missing file is not an error:
// the defaults are returned. Keys absent from the file keep their
// default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	s := Default()
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	s.normalize()
	return s, nil
}

// Save writes settings to a TOML file, creating parent directories as
// needed.
func Save(path string, s *Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// normalize clamps out-of-range values back to something usable rather
// than rejecting the file.
func (s *Settings) normalize() {
	if s.Editor.TabWidth < 1 {
		s.Editor.TabWidth = 1
	} else if s.Editor.TabWidth > 16 {
		s.Editor.TabWidth = 16
	}
	if s.Editor.UndoDepth < 1 {
		s.Editor.UndoDepth = 1
	}
}
