// Package config holds editor settings with explicit load and save.
// Settings are plain values passed to the components that need them;
// there is no ambient global configuration state.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/aster/internal/fs"
)

// Font size bounds and adjustment step, in points.
const (
	MinFontSize     = 8
	MaxFontSize     = 32
	DefaultFontSize = 14
	FontSizeStep    = 2
)

// Debounce bounds, in milliseconds.
const (
	MinDebounceMillis     = 50
	MaxDebounceMillis     = 2000
	DefaultDebounceMillis = 200
)

// DefaultMaxUndoEntries is the default undo depth.
const DefaultMaxUndoEntries = 100

// ErrInvalidSettings reports a settings file that is not valid JSON.
var ErrInvalidSettings = errors.New("settings file is not valid JSON")

// Settings is the persisted editor configuration.
type Settings struct {
	FontSize       int
	DebounceMillis int
	MaxUndoEntries int
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		FontSize:       DefaultFontSize,
		DebounceMillis: DefaultDebounceMillis,
		MaxUndoEntries: DefaultMaxUndoEntries,
	}
}

// Load reads settings from a JSON file. A missing file yields the
// defaults without error; unknown fields are ignored and out-of-range
// values are clamped.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("load settings: %w", err)
	}

	if !gjson.ValidBytes(data) {
		return Default(), fmt.Errorf("load settings %s: %w", path, ErrInvalidSettings)
	}

	s := Default()
	if v := gjson.GetBytes(data, "font_size"); v.Exists() {
		s.FontSize = int(v.Int())
	}
	if v := gjson.GetBytes(data, "debounce_ms"); v.Exists() {
		s.DebounceMillis = int(v.Int())
	}
	if v := gjson.GetBytes(data, "max_undo_entries"); v.Exists() {
		s.MaxUndoEntries = int(v.Int())
	}

	s.Clamp()
	return s, nil
}

// Save writes settings to a JSON file atomically.
func (s Settings) Save(ctx context.Context, path string) error {
	out := "{}"
	var err error

	if out, err = sjson.Set(out, "font_size", s.FontSize); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	if out, err = sjson.Set(out, "debounce_ms", s.DebounceMillis); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	if out, err = sjson.Set(out, "max_undo_entries", s.MaxUndoEntries); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	if err := fs.WriteAtomic(ctx, path, out+"\n", 0); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Clamp forces every field into its valid range.
func (s *Settings) Clamp() {
	s.FontSize = clampInt(s.FontSize, MinFontSize, MaxFontSize)
	s.DebounceMillis = clampInt(s.DebounceMillis, MinDebounceMillis, MaxDebounceMillis)
	if s.MaxUndoEntries <= 0 {
		s.MaxUndoEntries = DefaultMaxUndoEntries
	}
}

// IncreaseFontSize steps the font size up, clamped to the maximum.
func (s *Settings) IncreaseFontSize() {
	s.FontSize = clampInt(s.FontSize+FontSizeStep, MinFontSize, MaxFontSize)
}

// DecreaseFontSize steps the font size down, clamped to the minimum.
func (s *Settings) DecreaseFontSize() {
	s.FontSize = clampInt(s.FontSize-FontSizeStep, MinFontSize, MaxFontSize)
}

// Debounce returns the debounce delay as a duration.
func (s Settings) Debounce() time.Duration {
	return time.Duration(s.DebounceMillis) * time.Millisecond
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
