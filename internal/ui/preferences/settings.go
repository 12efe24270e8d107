package preferences

import "tomatillo/internal/core/model"

// Settings defines editable user preferences.
type Settings struct {
	ActiveTask     model.TaskType
	OverlayOpacity float64
	ShowStrip      bool
	Notifications  bool
	LaunchAtLogin  bool
}

// DefaultSettings returns default settings for Tomatillo.
func DefaultSettings() Settings {
	return Settings{
		ActiveTask:     model.TaskStudy,
		OverlayOpacity: 0.85,
		ShowStrip:      true,
		Notifications:  true,
		LaunchAtLogin:  false,
	}
}
