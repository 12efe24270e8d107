package main

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"tomatillo/internal/core/model"
	"tomatillo/internal/core/pomodoro"
	"tomatillo/internal/platform"
	"tomatillo/internal/storage"
	"tomatillo/internal/ui/overlay"
	"tomatillo/internal/ui/preferences"
	"tomatillo/internal/ui/strip"
	"tomatillo/internal/ui/tray"
	"tomatillo/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/cobra"
)

const appName = "Tomatillo"

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tomatillo",
		Short:         "Floating pomodoro timer for the desktop",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runApp()
		},
	}
	root.AddCommand(newStatsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func runApp() error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.tomatillo.app")
	fyneApp.SetIcon(resources.MustIcon("tomato_active.svg"))
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return fmt.Errorf("system tray unsupported on this platform")
	}

	trayWindow := fyneApp.NewWindow(appName)
	trayWindow.SetContent(widget.NewLabel("Tomatillo is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	var sessionLog *storage.SessionLog
	if dbPath, pathErr := storage.DefaultSessionLogPath(appName); pathErr != nil {
		log.Printf("session log path: %v", pathErr)
	} else if sessionLog, err = storage.OpenSessionLog(dbPath); err != nil {
		log.Printf("open session log: %v", err)
		sessionLog = nil
	}
	if sessionLog != nil {
		defer func() {
			_ = sessionLog.Close()
		}()
	}

	var settingsMu sync.RWMutex
	currentSettings := func() preferences.Settings {
		settingsMu.RLock()
		defer settingsMu.RUnlock()
		return settings
	}
	provider := pomodoro.TaskProviderFunc(func() model.TaskType {
		return currentSettings().ActiveTask
	})

	var store pomodoro.SessionStore
	if sessionLog != nil {
		store = sessionLog
	}
	machine := pomodoro.New(provider, store, nil, pomodoro.Config{TickInterval: time.Second})

	overlayWindow := overlay.New(fyneApp, overlay.Config{
		Opacity: opacityToAlpha(settings.OverlayOpacity),
	})
	overlayWindow.SetOnPrimary(machine.PrimaryAction)
	overlayWindow.SetOnRestart(machine.ResetSession)

	controlStrip := strip.New(fyneApp)
	controlStrip.SetOnPrimary(machine.PrimaryAction)

	activeIcon := resources.MustIcon("tomato_active.svg")
	pausedIcon := resources.MustIcon("tomato_paused.svg")
	breakIcon := resources.MustIcon("tomato_break.svg")

	var trayManager *tray.Manager
	var prefsWindow *preferences.Window

	applySettings := func(updated preferences.Settings) {
		settingsMu.Lock()
		previous := settings
		settings = updated
		settingsMu.Unlock()

		if err := storage.SaveSettings(appName, updated); err != nil {
			log.Printf("save settings: %v", err)
		}
		overlayWindow.UpdateConfig(overlay.Config{
			Opacity: opacityToAlpha(updated.OverlayOpacity),
		})
		controlStrip.SetVisible(updated.ShowStrip)
		trayManager.SetActiveTask(updated.ActiveTask)
		prefsWindow.UpdateSettings(updated)

		if previous.LaunchAtLogin != updated.LaunchAtLogin {
			if execPath, execErr := os.Executable(); execErr != nil {
				log.Printf("resolve executable: %v", execErr)
			} else if updated.LaunchAtLogin {
				if err := platform.EnableLoginItem(appName, execPath); err != nil {
					log.Printf("enable login item: %v", err)
				}
			} else if err := platform.DisableLoginItem(appName); err != nil {
				log.Printf("disable login item: %v", err)
			}
		}
	}

	prefsWindow = preferences.New(fyneApp, settings, applySettings)

	trayManager = tray.New(desktopApp, settings.ActiveTask, tray.Callbacks{
		OnPrimary:        machine.PrimaryAction,
		OnStop:           machine.Stop,
		OnRestartSession: machine.ResetSession,
		OnResetCycle:     machine.ResetPomodoro,
		OnSelectTask: func(task model.TaskType) {
			updated := currentSettings()
			updated.ActiveTask = task
			applySettings(updated)
		},
		OnToggleOverlay: func() {
			overlayWindow.Toggle()
		},
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnQuit: func() {
			machine.Shutdown()
			fyneApp.Quit()
		},
	})
	desktopApp.SetSystemTrayIcon(activeIcon)

	renderAll := func(snapshot pomodoro.Snapshot) {
		overlayWindow.Render(snapshot)
		controlStrip.Render(snapshot)
		trayManager.SetStatus(statusLine(snapshot))
		trayManager.SetPhase(snapshot.Phase)

		switch snapshot.Phase {
		case pomodoro.PhaseShortBreak, pomodoro.PhaseLongBreak:
			fyne.Do(func() {
				desktopApp.SetSystemTrayIcon(breakIcon)
			})
		case pomodoro.PhasePaused:
			fyne.Do(func() {
				desktopApp.SetSystemTrayIcon(pausedIcon)
			})
		default:
			fyne.Do(func() {
				desktopApp.SetSystemTrayIcon(activeIcon)
			})
		}
	}

	events := machine.Subscribe(16)
	go func() {
		for event := range events {
			switch event.Type {
			case pomodoro.EventStateChange:
				snapshot := machine.Snapshot()
				renderAll(snapshot)
				switch snapshot.Phase {
				case pomodoro.PhaseShortBreak, pomodoro.PhaseLongBreak:
					overlayWindow.Breathe()
				default:
					overlayWindow.Settle()
				}
			case pomodoro.EventProgress:
				renderAll(machine.Snapshot())
			case pomodoro.EventSessionComplete:
				handleSessionComplete(fyneApp, overlayWindow, sessionLog, currentSettings(), event)
			case pomodoro.EventStoreError:
				log.Printf("session store: %s", event.Message)
			}
		}
	}()

	renderAll(machine.Snapshot())
	overlayWindow.Show()
	controlStrip.SetVisible(settings.ShowStrip)

	fyneApp.Run()
	machine.Shutdown()
	return nil
}

func handleSessionComplete(fyneApp fyne.App, overlayWindow *overlay.Window, sessionLog *storage.SessionLog, settings preferences.Settings, event pomodoro.Event) {
	overlayWindow.Flash()

	if settings.Notifications {
		title, body := notificationText(event.Kind)
		fyneApp.SendNotification(fyne.NewNotification(title, body))
	}

	if sessionLog != nil {
		minutes := sessionMinutes(settings.ActiveTask, event.Kind)
		if err := sessionLog.RecordCompletion(settings.ActiveTask, event.Kind, minutes, event.At); err != nil {
			log.Printf("record session: %v", err)
		}
	}
}

func notificationText(kind pomodoro.SessionKind) (string, string) {
	switch kind {
	case pomodoro.SessionWork:
		return "Work session complete", "Time for a break."
	case pomodoro.SessionShortBreak:
		return "Break over", "Ready for the next session."
	case pomodoro.SessionLongBreak:
		return "Cycle complete", "Long break finished. Fresh start!"
	default:
		return "Session complete", ""
	}
}

func sessionMinutes(task model.TaskType, kind pomodoro.SessionKind) int {
	durations := task.Durations()
	switch kind {
	case pomodoro.SessionWork:
		return int(durations.Work.Minutes())
	case pomodoro.SessionShortBreak:
		return int(durations.ShortBreak.Minutes())
	case pomodoro.SessionLongBreak:
		return int(durations.LongBreak.Minutes())
	default:
		return 0
	}
}

func statusLine(snapshot pomodoro.Snapshot) string {
	clock := pomodoro.FormatClock(snapshot.Remaining)
	switch snapshot.Phase {
	case pomodoro.PhaseWorking:
		return "Working · " + clock
	case pomodoro.PhasePaused:
		return "Paused · " + clock
	case pomodoro.PhaseWorkComplete:
		return "Work done, break ready"
	case pomodoro.PhaseShortBreak:
		return "Short break · " + clock
	case pomodoro.PhaseLongBreak:
		return "Long break · " + clock
	case pomodoro.PhaseBreakComplete:
		return "Break done, ready to work"
	default:
		return "idle"
	}
}

func opacityToAlpha(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity * 255)
}

func newStatsCmd() *cobra.Command {
	var days int

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print completed-session statistics",
		RunE: func(_ *cobra.Command, _ []string) error {
			dbPath, err := storage.DefaultSessionLogPath(appName)
			if err != nil {
				return err
			}
			sessionLog, err := storage.OpenSessionLog(dbPath)
			if err != nil {
				return err
			}
			defer func() {
				_ = sessionLog.Close()
			}()

			summary, err := sessionLog.Summary(time.Now().AddDate(0, 0, -days))
			if err != nil {
				return err
			}
			if len(summary) == 0 {
				fmt.Printf("No sessions recorded in the last %d days.\n", days)
				return nil
			}

			fmt.Printf("%-12s %-12s %7s %9s\n", "TASK", "KIND", "COUNT", "MINUTES")
			for _, row := range summary {
				fmt.Printf("%-12s %-12s %7d %9d\n", row.Task.Label(), row.Kind, row.Count, row.Minutes)
			}

			count, err := sessionLog.CompletedSessions()
			if err != nil {
				return err
			}
			fmt.Printf("\nCurrent cycle: %d completed sessions.\n", count)
			return nil
		},
	}
	statsCmd.Flags().IntVar(&days, "days", 7, "history window in days")
	return statsCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tomatillo version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version)
		},
	}
}
