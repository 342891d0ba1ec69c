package client

import (
	"strconv"
)

// View is the screen the app shows.
type View string

const (
	ViewCountdown View = "countdown"
	ViewCapsule   View = "capsule"
)

// Mode says whether the capsule is being edited or just displayed.
type Mode string

const (
	ModeView Mode = "view"
	ModeEdit Mode = "edit"
)

// Local storage keys.
const (
	KeyUsername   = "mz-username"
	KeyWish       = "mz-wish"
	KeyTheme      = "mz-theme"
	KeyAtmosphere = "mz-atmosphere"
	KeyTypography = "mz-typography"
	KeyLayout     = "mz-layout"
	KeyVolume     = "mz-volume"
)

// Defaults for a fresh device.
const (
	DefaultTheme      = "dark-void"
	DefaultAtmosphere = "void"
	DefaultTypography = "serif"
	DefaultLayout     = "classic"
	DefaultVolume     = 0.5
)

// AppState is the client's view of the user's moment and presentation choices.
// Only the fields named by Persisted survive a restart.
type AppState struct {
	View       View
	Mode       Mode
	Wish       string
	Username   string
	Theme      string
	Atmosphere string
	Typography string
	Layout     string
	Volume     float64
	IsSending  bool
	Onboarded  bool
}

// NewAppState returns the state of a device that has never been used.
func NewAppState() *AppState {
	return &AppState{
		View:       ViewCountdown,
		Mode:       ModeEdit,
		Theme:      DefaultTheme,
		Atmosphere: DefaultAtmosphere,
		Typography: DefaultTypography,
		Layout:     DefaultLayout,
		Volume:     DefaultVolume,
	}
}

// Persisted returns every stored key.
func (s *AppState) Persisted() map[string]string {
	out := s.mirrored()
	out[KeyLayout] = s.Layout
	out[KeyVolume] = strconv.FormatFloat(s.Volume, 'f', -1, 64)
	return out
}

// mirrored returns the keys written alongside every server write.
func (s *AppState) mirrored() map[string]string {
	return map[string]string{
		KeyUsername:   s.Username,
		KeyWish:       s.Wish,
		KeyTheme:      s.Theme,
		KeyAtmosphere: s.Atmosphere,
		KeyTypography: s.Typography,
	}
}

// Restore applies stored values. Missing or blank keys keep the current value;
// a volume outside [0,1] is ignored.
func (s *AppState) Restore(values map[string]string) {
	set := func(key string, dst *string) {
		if v := values[key]; v != "" {
			*dst = v
		}
	}
	set(KeyUsername, &s.Username)
	set(KeyWish, &s.Wish)
	set(KeyTheme, &s.Theme)
	set(KeyAtmosphere, &s.Atmosphere)
	set(KeyTypography, &s.Typography)
	set(KeyLayout, &s.Layout)

	if raw, ok := values[KeyVolume]; ok {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 && v <= 1 {
			s.Volume = v
		}
	}
}
