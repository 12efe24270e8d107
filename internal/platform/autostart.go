package platform

import "strings"

// Login-item registration is implemented per OS: a LaunchAgents plist on
// macOS, an XDG autostart entry on Linux and a registry Run value on
// Windows. Enabling twice rewrites the entry; disabling a missing entry
// is not an error.

func loginItemName(appName string) string {
	name := strings.ToLower(strings.TrimSpace(appName))
	if name == "" {
		name = "tomatillo"
	}
	return strings.ReplaceAll(name, " ", "-")
}
