//go:build darwin

package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const launchAgentTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`

// EnableLoginItem writes a LaunchAgents plist that starts execPath at login.
func EnableLoginItem(appName, execPath string) error {
	if appName == "" || execPath == "" {
		return errors.New("login item: app name and exec path required")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("login item: %w", err)
	}
	agentsDir := filepath.Join(home, "Library", "LaunchAgents")
	if err := os.MkdirAll(agentsDir, 0o755); err != nil {
		return fmt.Errorf("login item: %w", err)
	}

	label := launchAgentLabel(appName)
	plist := fmt.Sprintf(launchAgentTemplate, escapeXML(label), escapeXML(execPath))
	if err := os.WriteFile(filepath.Join(agentsDir, label+".plist"), []byte(plist), 0o644); err != nil {
		return fmt.Errorf("login item: %w", err)
	}
	return nil
}

// DisableLoginItem removes the LaunchAgents plist if present.
func DisableLoginItem(appName string) error {
	if appName == "" {
		return errors.New("login item: app name required")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("login item: %w", err)
	}
	plistPath := filepath.Join(home, "Library", "LaunchAgents", launchAgentLabel(appName)+".plist")
	if err := os.Remove(plistPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("login item: %w", err)
	}
	return nil
}

func launchAgentLabel(appName string) string {
	return "com.tomatillo." + loginItemName(appName)
}

func escapeXML(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(value)
}
