package overlay

import (
	"context"
	"fmt"
	"image/color"

	"tomatillo/internal/core/pomodoro"
	"tomatillo/internal/ui/pulse"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Config defines overlay visuals.
type Config struct {
	Opacity uint8
}

const (
	cardWidth  = float32(300)
	cardHeight = float32(190)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Window manages the floating timer card. It is a pure presentation
// surface: it renders machine snapshots and forwards button presses to
// the same command callbacks a tray action would use.
type Window struct {
	app    fyne.App
	window fyne.Window
	config Config

	background *canvas.Rectangle
	taskLabel  *canvas.Text
	phaseLabel *canvas.Text
	timerLabel *canvas.Text
	cycleLabel *canvas.Text
	bar        *widget.ProgressBar
	primary    *widget.Button
	restart    *widget.Button

	engine    *pulse.Engine
	cancelCtx context.CancelFunc

	visible   bool
	onPrimary func()
	onRestart func()
}

// New creates the overlay window.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow("Tomatillo")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated and floats above normal windows.
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 24, G: 24, B: 28, A: config.Opacity})

	taskLabel := canvas.NewText("Study", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	taskLabel.TextStyle = fyne.TextStyle{Bold: true}
	taskLabel.TextSize = 14

	phaseLabel := canvas.NewText("Ready", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	phaseLabel.TextSize = 14

	timerLabel := canvas.NewText("--:--", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	timerLabel.TextStyle = fyne.TextStyle{Bold: true}
	timerLabel.TextSize = 38

	cycleLabel := canvas.NewText("", color.NRGBA{R: 200, G: 200, B: 205, A: 255})
	cycleLabel.TextSize = 12

	bar := widget.NewProgressBar()
	bar.TextFormatter = func() string { return "" }

	primary := widget.NewButton("Start", nil)
	restart := widget.NewButton("Restart", nil)
	restart.Disable()
	buttons := container.NewHBox(primary, restart)

	content := container.New(&cardLayout{}, taskLabel, phaseLabel, timerLabel, cycleLabel, bar, buttons)
	root := container.NewStack(background, content)
	window.SetContent(root)
	window.Resize(fyne.NewSize(cardWidth, cardHeight))

	overlay := &Window{
		app:        app,
		window:     window,
		config:     config,
		background: background,
		taskLabel:  taskLabel,
		phaseLabel: phaseLabel,
		timerLabel: timerLabel,
		cycleLabel: cycleLabel,
		bar:        bar,
		primary:    primary,
		restart:    restart,
	}
	overlay.engine = pulse.New(pulse.DefaultConfig(), overlay.applyPulse)

	primary.OnTapped = func() {
		if overlay.onPrimary != nil {
			overlay.onPrimary()
		}
	}
	restart.OnTapped = func() {
		if overlay.onRestart != nil {
			overlay.onRestart()
		}
	}

	return overlay
}

// SetOnPrimary sets the primary-button handler.
func (overlay *Window) SetOnPrimary(handler func()) {
	overlay.onPrimary = handler
}

// SetOnRestart sets the restart-session handler.
func (overlay *Window) SetOnRestart(handler func()) {
	overlay.onRestart = handler
}

// Show displays the overlay.
func (overlay *Window) Show() {
	overlay.visible = true
	fyne.Do(func() {
		overlay.window.Show()
		overlay.window.RequestFocus()
		overlay.applyNativeOpacity(overlay.config.Opacity)
	})
}

// Hide conceals the overlay and stops any animation.
func (overlay *Window) Hide() {
	overlay.visible = false
	overlay.stopAnimation()
	fyne.Do(func() {
		overlay.window.Hide()
	})
}

// Toggle flips overlay visibility and reports the new state.
func (overlay *Window) Toggle() bool {
	if overlay.visible {
		overlay.Hide()
	} else {
		overlay.Show()
	}
	return overlay.visible
}

// Render updates every widget from a machine snapshot.
func (overlay *Window) Render(snapshot pomodoro.Snapshot) {
	fyne.Do(func() {
		overlay.taskLabel.Text = snapshot.Task.Label()
		overlay.taskLabel.Refresh()

		overlay.phaseLabel.Text = phaseTitle(snapshot)
		overlay.phaseLabel.Refresh()

		overlay.timerLabel.Text = pomodoro.FormatClock(snapshot.Remaining)
		overlay.timerLabel.Refresh()

		overlay.cycleLabel.Text = fmt.Sprintf("%d of %d sessions", snapshot.Sessions, snapshot.CycleLength)
		overlay.cycleLabel.Refresh()

		overlay.bar.SetValue(snapshot.Progress)

		overlay.primary.SetText(primaryLabel(snapshot.Phase))
		if snapshot.Phase.Countdown() || snapshot.Phase == pomodoro.PhasePaused {
			overlay.restart.Enable()
		} else {
			overlay.restart.Disable()
		}
	})
}

// Flash draws attention to a completed phase.
func (overlay *Window) Flash() {
	overlay.stopAnimation()
	ctx, cancel := context.WithCancel(context.Background())
	overlay.cancelCtx = cancel
	overlay.engine.StartFlash(ctx)
}

// Breathe runs the slow background animation used during breaks.
func (overlay *Window) Breathe() {
	overlay.stopAnimation()
	ctx, cancel := context.WithCancel(context.Background())
	overlay.cancelCtx = cancel
	overlay.engine.StartBreathing(ctx)
}

// Settle stops animations and restores the resting background.
func (overlay *Window) Settle() {
	overlay.stopAnimation()
	overlay.applyPulse(1)
}

// UpdateConfig updates overlay visuals.
func (overlay *Window) UpdateConfig(config Config) {
	overlay.config = config
	fyne.Do(func() {
		overlay.background.FillColor = color.NRGBA{R: 24, G: 24, B: 28, A: config.Opacity}
		canvas.Refresh(overlay.background)
		overlay.applyNativeOpacity(config.Opacity)
	})
}

func (overlay *Window) applyPulse(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	alpha := uint8(level * float64(overlay.config.Opacity))
	fyne.Do(func() {
		overlay.background.FillColor = color.NRGBA{R: 24, G: 24, B: 28, A: alpha}
		canvas.Refresh(overlay.background)
	})
}

func (overlay *Window) stopAnimation() {
	if overlay.cancelCtx != nil {
		overlay.cancelCtx()
		overlay.cancelCtx = nil
	}
	overlay.engine.Stop()
}

func phaseTitle(snapshot pomodoro.Snapshot) string {
	switch snapshot.Phase {
	case pomodoro.PhaseWorking:
		return "Focus"
	case pomodoro.PhasePaused:
		return "Paused"
	case pomodoro.PhaseWorkComplete:
		return "Work done"
	case pomodoro.PhaseShortBreak:
		return "Short break"
	case pomodoro.PhaseLongBreak:
		return "Long break"
	case pomodoro.PhaseBreakComplete:
		return "Break done"
	default:
		return "Ready"
	}
}

func primaryLabel(phase pomodoro.Phase) string {
	switch {
	case phase.Countdown():
		return "Pause"
	case phase == pomodoro.PhasePaused:
		return "Resume"
	default:
		return "Start"
	}
}

type cardLayout struct{}

func (layout *cardLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 6 {
		return
	}
	task := objects[0]
	phase := objects[1]
	timer := objects[2]
	cycle := objects[3]
	bar := objects[4]
	buttons := objects[5]

	pad := float32(12)

	taskSize := task.MinSize()
	task.Move(fyne.NewPos(pad, pad))
	task.Resize(taskSize)

	phaseSize := phase.MinSize()
	phaseX := size.Width - pad - phaseSize.Width
	if phaseX < pad {
		phaseX = pad
	}
	phase.Move(fyne.NewPos(phaseX, pad))
	phase.Resize(phaseSize)

	timerSize := timer.MinSize()
	timerX := (size.Width - timerSize.Width) / 2
	if timerX < pad {
		timerX = pad
	}
	timerY := pad + taskSize.Height + 10
	timer.Move(fyne.NewPos(timerX, timerY))
	timer.Resize(timerSize)

	cycleSize := cycle.MinSize()
	cycleX := (size.Width - cycleSize.Width) / 2
	if cycleX < pad {
		cycleX = pad
	}
	cycle.Move(fyne.NewPos(cycleX, timerY+timerSize.Height+4))
	cycle.Resize(cycleSize)

	buttonsSize := buttons.MinSize()
	buttonsY := size.Height - pad - buttonsSize.Height
	if buttonsY < 0 {
		buttonsY = 0
	}
	buttonsX := (size.Width - buttonsSize.Width) / 2
	if buttonsX < pad {
		buttonsX = pad
	}
	buttons.Move(fyne.NewPos(buttonsX, buttonsY))
	buttons.Resize(buttonsSize)

	barHeight := bar.MinSize().Height
	barY := buttonsY - 8 - barHeight
	if barY < 0 {
		barY = 0
	}
	bar.Move(fyne.NewPos(pad, barY))
	bar.Resize(fyne.NewSize(size.Width-pad*2, barHeight))
}

func (layout *cardLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 6 {
		return fyne.NewSize(0, 0)
	}
	width := float32(0)
	height := float32(0)
	for _, object := range objects {
		minSize := object.MinSize()
		if minSize.Width > width {
			width = minSize.Width
		}
		height += minSize.Height
	}
	return fyne.NewSize(width+24, height+48)
}
