package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/aetheris-dev/aetheris"
)

// Interface compliance check.
var _ aetheris.PreferenceStore = (*PreferenceFile)(nil)

// persisted is the value stored under the preferences key.
type persisted struct {
	State   aetheris.ThemePrefs `json:"state"`
	Version int                 `json:"version"`
}

// PreferenceFile stores theme preferences in a JSON document that maps keys
// to values, like browser local storage. Preferences live under
// aetheris.PreferencesKey; other keys in the file are preserved on save.
type PreferenceFile struct {
	Path string

	mu sync.Mutex
}

// NewPreferenceFile returns a PreferenceFile backed by path.
func NewPreferenceFile(path string) *PreferenceFile {
	return &PreferenceFile{Path: path}
}

// Load reads the stored preferences. A missing file or key yields the
// defaults.
func (f *PreferenceFile) Load() (aetheris.ThemePrefs, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return aetheris.ThemePrefs{}, err
	}
	raw, ok := doc[aetheris.PreferencesKey]
	if !ok {
		return aetheris.DefaultThemePrefs(), nil
	}
	p := persisted{State: aetheris.DefaultThemePrefs()}
	if err := json.Unmarshal(raw, &p); err != nil {
		return aetheris.ThemePrefs{}, fmt.Errorf("json: decode %s: %w", aetheris.PreferencesKey, err)
	}
	return p.State, nil
}

// Save writes prefs under the preferences key.
func (f *PreferenceFile) Save(prefs aetheris.ThemePrefs) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(persisted{State: prefs})
	if err != nil {
		return fmt.Errorf("json: %w", err)
	}
	doc[aetheris.PreferencesKey] = raw

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("json: %w", err)
	}
	if err := writeFile(f.Path, data); err != nil {
		return fmt.Errorf("json: %w", err)
	}
	return nil
}

func (f *PreferenceFile) read() (map[string]json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("json: read file: %w", err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("json: decode %s: %w", f.Path, err)
	}
	return doc, nil
}
