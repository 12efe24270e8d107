package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tomatillo/internal/core/model"
	"tomatillo/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

const (
	minOverlayOpacity = 0.5
	maxOverlayOpacity = 1.0
)

type settingsDoc struct {
	TaskType       string  `yaml:"task_type"`
	OverlayOpacity float64 `yaml:"overlay_opacity"`
	ShowStrip      bool    `yaml:"show_strip"`
	Notifications  bool    `yaml:"notifications"`
	LaunchAtLogin  bool    `yaml:"launch_at_login"`
}

// LoadSettings reads preferences from the user config directory. A
// missing file yields defaults; an unknown task or an out-of-range
// opacity keeps the default for that field.
func LoadSettings(appName string) (preferences.Settings, error) {
	path, err := settingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return loadSettingsFile(path)
}

// SaveSettings writes preferences to the user config directory.
func SaveSettings(appName string, settings preferences.Settings) error {
	path, err := settingsPath(appName)
	if err != nil {
		return err
	}
	return saveSettingsFile(path, settings)
}

func settingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func loadSettingsFile(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("read settings: %w", err)
	}

	var doc settingsDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return settings, fmt.Errorf("parse settings: %w", err)
	}
	doc.applyTo(&settings)
	return settings, nil
}

func saveSettingsFile(path string, settings preferences.Settings) error {
	doc := settingsDoc{
		TaskType:       string(settings.ActiveTask),
		OverlayOpacity: settings.OverlayOpacity,
		ShowStrip:      settings.ShowStrip,
		Notifications:  settings.Notifications,
		LaunchAtLogin:  settings.LaunchAtLogin,
	}
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func (doc settingsDoc) applyTo(settings *preferences.Settings) {
	if task := model.TaskType(doc.TaskType); task.Valid() {
		settings.ActiveTask = task
	}
	if doc.OverlayOpacity >= minOverlayOpacity && doc.OverlayOpacity <= maxOverlayOpacity {
		settings.OverlayOpacity = doc.OverlayOpacity
	}
	settings.ShowStrip = doc.ShowStrip
	settings.Notifications = doc.Notifications
	settings.LaunchAtLogin = doc.LaunchAtLogin
}
