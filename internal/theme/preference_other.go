//go:build !windows

package theme

type noPreference struct{}

// HostDefault returns a preference that is never available on this
// platform, so Detect falls back to Dark.
func HostDefault() HostPreference {
	return noPreference{}
}

func (noPreference) LightMode() (bool, error) {
	return false, ErrUnsupported
}
