//go:build windows

package platform

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

// EnableLoginItem adds a registry Run value pointing at execPath.
func EnableLoginItem(appName, execPath string) error {
	if appName == "" || execPath == "" {
		return errors.New("login item: app name and exec path required")
	}

	quoted := `"` + strings.Trim(execPath, `"`) + `"`
	return runReg("add", registryRunKey, "/v", appName, "/t", "REG_SZ", "/d", quoted, "/f")
}

// DisableLoginItem removes the registry Run value if present.
func DisableLoginItem(appName string) error {
	if appName == "" {
		return errors.New("login item: app name required")
	}
	err := runReg("delete", registryRunKey, "/v", appName, "/f")
	if err != nil && strings.Contains(err.Error(), "unable to find") {
		return nil
	}
	return err
}

func runReg(args ...string) error {
	output, err := exec.Command("reg", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("login item: reg %s: %w: %s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}
