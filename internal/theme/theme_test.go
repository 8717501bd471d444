package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedPreference struct {
	light bool
	err   error
}

func (p fixedPreference) LightMode() (bool, error) { return p.light, p.err }

func TestToggleTwiceRestores(t *testing.T) {
	for _, start := range []Mode{Dark, Light} {
		th := New(start, Icons{Light: "icono_claro.png", Dark: "icono_oscuro.png"})
		palette, icon := th.Palette(), th.Icon()

		th.Toggle()
		assert.NotEqual(t, start, th.Mode())
		assert.NotEqual(t, palette, th.Palette())
		assert.NotEqual(t, icon, th.Icon())

		th.Toggle()
		assert.Equal(t, start, th.Mode())
		assert.Equal(t, palette, th.Palette())
		assert.Equal(t, icon, th.Icon())
	}
}

func TestDetect(t *testing.T) {
	assert.Equal(t, Light, Detect(fixedPreference{light: true}))
	assert.Equal(t, Dark, Detect(fixedPreference{light: false}))
	assert.Equal(t, Dark, Detect(fixedPreference{light: true, err: errors.New("no key")}))
	assert.Equal(t, Dark, Detect(fixedPreference{err: ErrUnsupported}))
	assert.Equal(t, Dark, Detect(nil))
}

func TestParseMode(t *testing.T) {
	light := fixedPreference{light: true}

	m, err := ParseMode("auto", light)
	require.NoError(t, err)
	assert.Equal(t, Light, m)

	m, err = ParseMode(" Dark ", light)
	require.NoError(t, err)
	assert.Equal(t, Dark, m)

	m, err = ParseMode("light", nil)
	require.NoError(t, err)
	assert.Equal(t, Light, m)

	_, err = ParseMode("solarized", nil)
	assert.Error(t, err)
}
