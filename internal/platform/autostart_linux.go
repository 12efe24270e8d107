//go:build linux

package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const desktopEntryTemplate = `[Desktop Entry]
Type=Application
Name=%s
Exec=%s
X-GNOME-Autostart-enabled=true
Terminal=false
`

// EnableLoginItem writes an XDG autostart desktop entry for execPath.
func EnableLoginItem(appName, execPath string) error {
	if appName == "" || execPath == "" {
		return errors.New("login item: app name and exec path required")
	}

	autostartDir, err := xdgAutostartDir()
	if err != nil {
		return fmt.Errorf("login item: %w", err)
	}
	if err := os.MkdirAll(autostartDir, 0o755); err != nil {
		return fmt.Errorf("login item: %w", err)
	}

	execLine := execPath
	if strings.Contains(execLine, " ") {
		execLine = `"` + strings.Trim(execLine, `"`) + `"`
	}
	entry := fmt.Sprintf(desktopEntryTemplate, appName, execLine)
	entryPath := filepath.Join(autostartDir, loginItemName(appName)+".desktop")
	if err := os.WriteFile(entryPath, []byte(entry), 0o644); err != nil {
		return fmt.Errorf("login item: %w", err)
	}
	return nil
}

// DisableLoginItem removes the autostart desktop entry if present.
func DisableLoginItem(appName string) error {
	if appName == "" {
		return errors.New("login item: app name required")
	}

	autostartDir, err := xdgAutostartDir()
	if err != nil {
		return fmt.Errorf("login item: %w", err)
	}
	entryPath := filepath.Join(autostartDir, loginItemName(appName)+".desktop")
	if err := os.Remove(entryPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("login item: %w", err)
	}
	return nil
}

func xdgAutostartDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart"), nil
}
