// Package theme holds the light/dark presentation state.
package theme

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupported is returned by a HostPreference on platforms that expose
// no theme setting.
var ErrUnsupported = errors.New("host theme preference not supported")

// Mode is the presentation mode.
type Mode int

const (
	Dark Mode = iota
	Light
)

func (m Mode) String() string {
	if m == Light {
		return "light"
	}
	return "dark"
}

// Palette holds the colours of one mode as #rrggbb values.
type Palette struct {
	Background     string
	Foreground     string
	Accent         string
	TextBackground string
	Border         string
	Button         string
	ButtonHover    string
}

var (
	darkPalette = Palette{
		Background:     "#1e1e1e",
		Foreground:     "#f0f0f0",
		Accent:         "#ffa500",
		TextBackground: "#2b2b2b",
		Border:         "#444444",
		Button:         "#007acc",
		ButtonHover:    "#005999",
	}
	lightPalette = Palette{
		Background:     "#ffffff",
		Foreground:     "#000000",
		Accent:         "#003366",
		TextBackground: "#f0f0f0",
		Border:         "#cccccc",
		Button:         "#007acc",
		ButtonHover:    "#005999",
	}
)

// Icons are the icon files used in each mode.
type Icons struct {
	Light string
	Dark  string
}

// HostPreference reports whether the host OS prefers a light theme.
type HostPreference interface {
	LightMode() (bool, error)
}

// Detect returns the host's preferred mode, or Dark when it cannot be read.
func Detect(pref HostPreference) Mode {
	if pref == nil {
		return Dark
	}
	light, err := pref.LightMode()
	if err != nil || !light {
		return Dark
	}
	return Light
}

// ParseMode parses "light", "dark" or "auto". Auto asks pref.
func ParseMode(s string, pref HostPreference) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Detect(pref), nil
	case "dark":
		return Dark, nil
	case "light":
		return Light, nil
	}
	return Dark, fmt.Errorf("unknown theme %q (want auto, light or dark)", s)
}

// Theme is the current mode and the icons to pick from. It is not safe
// for concurrent use.
type Theme struct {
	mode  Mode
	icons Icons
}

// New returns a Theme starting in mode.
func New(mode Mode, icons Icons) *Theme {
	return &Theme{mode: mode, icons: icons}
}

// Mode returns the current mode.
func (t *Theme) Mode() Mode { return t.mode }

// Toggle flips between light and dark.
func (t *Theme) Toggle() {
	if t.mode == Dark {
		t.mode = Light
	} else {
		t.mode = Dark
	}
}

// Palette returns the colours of the current mode.
func (t *Theme) Palette() Palette {
	if t.mode == Light {
		return lightPalette
	}
	return darkPalette
}

// Icon returns the icon path of the current mode.
func (t *Theme) Icon() string {
	if t.mode == Light {
		return t.icons.Light
	}
	return t.icons.Dark
}
