//go:build windows

package theme

import "golang.org/x/sys/windows/registry"

const personalizeKey = `Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`

type registryPreference struct{}

// HostDefault reads AppsUseLightTheme from the current user's registry.
func HostDefault() HostPreference {
	return registryPreference{}
}

func (registryPreference) LightMode() (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, personalizeKey, registry.QUERY_VALUE)
	if err != nil {
		return false, err
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue("AppsUseLightTheme")
	if err != nil {
		return false, err
	}
	return v == 1, nil
}
