package mock

import "github.com/aetheris-dev/aetheris"

// Interface compliance check.
var _ aetheris.PreferenceStore = (*PreferenceStore)(nil)

// PreferenceStore is a test double for aetheris.PreferenceStore.
type PreferenceStore struct {
	LoadFn func() (aetheris.ThemePrefs, error)
	SaveFn func(aetheris.ThemePrefs) error
}

// Load delegates to LoadFn.
func (s *PreferenceStore) Load() (aetheris.ThemePrefs, error) {
	return s.LoadFn()
}

// Save delegates to SaveFn.
func (s *PreferenceStore) Save(p aetheris.ThemePrefs) error {
	return s.SaveFn(p)
}

// MemoryPreferences is an in-memory aetheris.PreferenceStore that records
// every write.
type MemoryPreferences struct {
	Stored *aetheris.ThemePrefs
	Writes []aetheris.ThemePrefs
}

// Load returns the stored preferences, or the defaults when nothing is stored.
func (m *MemoryPreferences) Load() (aetheris.ThemePrefs, error) {
	if m.Stored == nil {
		return aetheris.DefaultThemePrefs(), nil
	}
	return *m.Stored, nil
}

// Save stores p and records the write.
func (m *MemoryPreferences) Save(p aetheris.ThemePrefs) error {
	m.Stored = &p
	m.Writes = append(m.Writes, p)
	return nil
}
