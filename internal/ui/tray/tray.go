package tray

import (
	"fmt"

	"tomatillo/internal/core/model"
	"tomatillo/internal/core/pomodoro"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnPrimary        func()
	OnStop           func()
	OnRestartSession func()
	OnResetCycle     func()
	OnSelectTask     func(model.TaskType)
	OnToggleOverlay  func()
	OnPreferences    func()
	OnQuit           func()
}

// Manager handles system tray state: the live status line and the
// command menu that mirrors the overlay controls.
type Manager struct {
	app         desktop.App
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	primaryItem *fyne.MenuItem
	stopItem    *fyne.MenuItem
	restartItem *fyne.MenuItem
	resetItem   *fyne.MenuItem
	taskItem    *fyne.MenuItem
	overlayItem *fyne.MenuItem
	activeTask  model.TaskType
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, activeTask model.TaskType, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:        app,
		callbacks:  callbacks,
		activeTask: activeTask,
	}

	manager.statusItem = fyne.NewMenuItem("Status: idle", nil)
	manager.statusItem.Disabled = true

	manager.primaryItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnPrimary != nil {
			manager.callbacks.OnPrimary()
		}
	})

	manager.stopItem = fyne.NewMenuItem("Stop", func() {
		if manager.callbacks.OnStop != nil {
			manager.callbacks.OnStop()
		}
	})
	manager.stopItem.Disabled = true

	manager.restartItem = fyne.NewMenuItem("Restart session", func() {
		if manager.callbacks.OnRestartSession != nil {
			manager.callbacks.OnRestartSession()
		}
	})
	manager.restartItem.Disabled = true

	manager.resetItem = fyne.NewMenuItem("Reset cycle", func() {
		if manager.callbacks.OnResetCycle != nil {
			manager.callbacks.OnResetCycle()
		}
	})

	manager.taskItem = fyne.NewMenuItem("Task type", nil)
	manager.taskItem.ChildMenu = manager.buildTaskMenu()

	manager.overlayItem = fyne.NewMenuItem("Show/Hide timer", func() {
		if manager.callbacks.OnToggleOverlay != nil {
			manager.callbacks.OnToggleOverlay()
		}
	})

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status line.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

// SetPhase adjusts menu items for the current machine phase.
func (manager *Manager) SetPhase(phase pomodoro.Phase) {
	switch {
	case phase.Countdown():
		manager.primaryItem.Label = "Pause"
	case phase == pomodoro.PhasePaused:
		manager.primaryItem.Label = "Resume"
	default:
		manager.primaryItem.Label = "Start"
	}

	inSession := phase.Countdown() || phase == pomodoro.PhasePaused
	manager.stopItem.Disabled = phase == pomodoro.PhaseIdle
	manager.restartItem.Disabled = !inSession
	manager.refreshMenu()
}

// SetActiveTask updates the task submenu checkmarks.
func (manager *Manager) SetActiveTask(task model.TaskType) {
	manager.activeTask = task
	manager.taskItem.ChildMenu = manager.buildTaskMenu()
	manager.refreshMenu()
}

func (manager *Manager) buildTaskMenu() *fyne.Menu {
	items := make([]*fyne.MenuItem, 0, len(model.AllTaskTypes()))
	for _, task := range model.AllTaskTypes() {
		selected := task
		item := fyne.NewMenuItem(selected.Label(), func() {
			if manager.callbacks.OnSelectTask != nil {
				manager.callbacks.OnSelectTask(selected)
			}
		})
		item.Checked = selected == manager.activeTask
		items = append(items, item)
	}
	return fyne.NewMenu("", items...)
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Tomatillo",
		manager.statusItem,
		manager.primaryItem,
		manager.stopItem,
		manager.restartItem,
		manager.resetItem,
		manager.taskItem,
		manager.overlayItem,
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
