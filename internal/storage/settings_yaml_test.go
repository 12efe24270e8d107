package storage

import (
	"os"
	"path/filepath"
	"testing"

	"tomatillo/internal/core/model"
	"tomatillo/internal/ui/preferences"
)

func TestSettingsRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "conf", settingsFileName)

	saved := preferences.Settings{
		ActiveTask:     model.TaskDeep,
		OverlayOpacity: 0.75,
		ShowStrip:      false,
		Notifications:  true,
		LaunchAtLogin:  true,
	}
	if err := saveSettingsFile(configPath, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := loadSettingsFile(configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != saved {
		t.Errorf("loaded = %+v, want %+v", loaded, saved)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "absent", settingsFileName)

	loaded, err := loadSettingsFile(configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != preferences.DefaultSettings() {
		t.Errorf("loaded = %+v, want defaults", loaded)
	}
}

func TestLoadRejectsOutOfRangeValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), settingsFileName)
	raw := "task_type: juggling\noverlay_opacity: 3.5\nshow_strip: true\nnotifications: true\n"
	if err := os.WriteFile(configPath, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := loadSettingsFile(configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defaults := preferences.DefaultSettings()
	if loaded.ActiveTask != defaults.ActiveTask {
		t.Errorf("task = %s, unknown task must keep default %s", loaded.ActiveTask, defaults.ActiveTask)
	}
	if loaded.OverlayOpacity != defaults.OverlayOpacity {
		t.Errorf("opacity = %v, out-of-range value must keep default %v", loaded.OverlayOpacity, defaults.OverlayOpacity)
	}
}

func TestLoadMalformedYAMLFails(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), settingsFileName)
	if err := os.WriteFile(configPath, []byte("task_type: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadSettingsFile(configPath); err == nil {
		t.Error("expected parse error for malformed yaml")
	}
}
