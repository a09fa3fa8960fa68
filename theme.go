package aetheris

import (
	"fmt"
	"slices"
	"sync"
)

// PreferencesKey is the storage key theme preferences are persisted under.
const PreferencesKey = "aetheris-theme"

// DefaultColorKey is the colour preset used when none is stored.
const DefaultColorKey = "blue"

// ThemeColor is one preset accent colour.
type ThemeColor struct {
	Name    string // Display name.
	Primary string // Hex colour used by graphical front ends.
	ANSI    int    // Terminal colour index (0-7).
}

// ThemeColors are the available accent presets, keyed by colour key.
var ThemeColors = map[string]ThemeColor{
	"blue":   {Name: "Daybreak Blue", Primary: "#1677ff", ANSI: 4},
	"purple": {Name: "Golden Purple", Primary: "#722ed1", ANSI: 5},
	"cyan":   {Name: "Cyan", Primary: "#13c2c2", ANSI: 6},
	"green":  {Name: "Polar Green", Primary: "#52c41a", ANSI: 2},
	"orange": {Name: "Sunset Orange", Primary: "#fa8c16", ANSI: 3},
	"red":    {Name: "Dust Red", Primary: "#f5222d", ANSI: 1},
}

// ColorKeys returns the preset keys in sorted order.
func ColorKeys() []string {
	keys := make([]string, 0, len(ThemeColors))
	for k := range ThemeColors {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ThemePrefs are the persisted theme preferences.
type ThemePrefs struct {
	ColorKey string `json:"colorKey"`
	DarkMode bool   `json:"isDarkMode"`
}

// DefaultThemePrefs returns the preferences used before anything is stored.
func DefaultThemePrefs() ThemePrefs {
	return ThemePrefs{ColorKey: DefaultColorKey}
}

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values.
type Theme struct {
	UserMsg   int // User message accent
	Reasoning int // Reasoning text
	Content   int // Answer text
	Error     int // Error messages
	Success   int // Success indicators
	Muted     int // Status bar, placeholders
	Accent    int // Headings, spinner
}

// DefaultTheme returns the terminal theme for the default preferences.
func DefaultTheme() Theme {
	return DefaultThemePrefs().Theme()
}

// Theme maps the preferences to terminal colours. Dark mode uses the bright
// variant of the accent.
func (p ThemePrefs) Theme() Theme {
	c, ok := ThemeColors[p.ColorKey]
	if !ok {
		c = ThemeColors[DefaultColorKey]
	}
	accent := c.ANSI
	muted := 8
	content := -1
	if p.DarkMode {
		accent += 8
		muted = 7
		content = 15
	}
	return Theme{
		UserMsg:   accent,
		Reasoning: muted,
		Content:   content,
		Error:     1,
		Success:   2,
		Muted:     muted,
		Accent:    accent,
	}
}

// PreferenceStore persists theme preferences. Load returns
// DefaultThemePrefs and a nil error when nothing has been stored yet.
type PreferenceStore interface {
	Load() (ThemePrefs, error)
	Save(ThemePrefs) error
}

// ThemeStore holds the current theme preferences. It reads from its
// PreferenceStore once at construction and writes on every change.
// It is safe for concurrent use.
type ThemeStore struct {
	mu    sync.Mutex
	prefs ThemePrefs
	store PreferenceStore
}

// NewThemeStore creates a ThemeStore backed by store. A stored colour key
// that is no longer a preset falls back to the default.
func NewThemeStore(store PreferenceStore) (*ThemeStore, error) {
	prefs, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load theme preferences: %w", err)
	}
	if _, ok := ThemeColors[prefs.ColorKey]; !ok {
		prefs.ColorKey = DefaultColorKey
	}
	return &ThemeStore{prefs: prefs, store: store}, nil
}

// Prefs returns the current preferences.
func (s *ThemeStore) Prefs() ThemePrefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Theme returns the terminal theme for the current preferences.
func (s *ThemeStore) Theme() Theme {
	return s.Prefs().Theme()
}

// SetColorKey switches the accent preset. Unknown keys leave the state
// untouched and return ErrValidation.
func (s *ThemeStore) SetColorKey(key string) error {
	if _, ok := ThemeColors[key]; !ok {
		return fmt.Errorf("unknown color key %q: %w", key, ErrValidation)
	}
	return s.update(func(p *ThemePrefs) { p.ColorKey = key })
}

// ToggleDarkMode flips between light and dark mode.
func (s *ThemeStore) ToggleDarkMode() error {
	return s.update(func(p *ThemePrefs) { p.DarkMode = !p.DarkMode })
}

// SetDarkMode sets dark mode explicitly.
func (s *ThemeStore) SetDarkMode(dark bool) error {
	return s.update(func(p *ThemePrefs) { p.DarkMode = dark })
}

// Reset restores the default preferences.
func (s *ThemeStore) Reset() error {
	return s.update(func(p *ThemePrefs) { *p = DefaultThemePrefs() })
}

// update applies fn and persists the result if anything changed. On a
// failed write the in-memory state is rolled back.
func (s *ThemeStore) update(fn func(*ThemePrefs)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs
	fn(&next)
	if next == s.prefs {
		return nil
	}
	if err := s.store.Save(next); err != nil {
		return fmt.Errorf("save theme preferences: %w", err)
	}
	s.prefs = next
	return nil
}
