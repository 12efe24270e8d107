package strip

import (
	"image/color"

	"tomatillo/internal/core/pomodoro"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Strip is the compact control strip: one primary button, the clock and
// a thin progress bar in a tiny always-on-top window. It mirrors the
// overlay but stays out of the way.
type Strip struct {
	window  fyne.Window
	timer   *canvas.Text
	bar     *widget.ProgressBar
	primary *widget.Button

	visible   bool
	onPrimary func()
}

// New creates the control strip window.
func New(app fyne.App) *Strip {
	window := app.NewWindow("Tomatillo strip")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
	}
	window.SetPadded(false)

	timer := canvas.NewText("--:--", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	timer.TextStyle = fyne.TextStyle{Bold: true}
	timer.TextSize = 18

	bar := widget.NewProgressBar()
	bar.TextFormatter = func() string { return "" }

	primary := widget.NewButton("Start", nil)

	background := canvas.NewRectangle(color.NRGBA{R: 24, G: 24, B: 28, A: 235})
	row := container.NewBorder(nil, nil, primary, timer, bar)
	window.SetContent(container.NewStack(background, container.NewPadded(row)))
	window.Resize(fyne.NewSize(240, 52))

	controlStrip := &Strip{
		window:  window,
		timer:   timer,
		bar:     bar,
		primary: primary,
	}
	primary.OnTapped = func() {
		if controlStrip.onPrimary != nil {
			controlStrip.onPrimary()
		}
	}
	return controlStrip
}

// SetOnPrimary sets the primary-button handler.
func (controlStrip *Strip) SetOnPrimary(handler func()) {
	controlStrip.onPrimary = handler
}

// SetVisible shows or hides the strip.
func (controlStrip *Strip) SetVisible(visible bool) {
	controlStrip.visible = visible
	fyne.Do(func() {
		if visible {
			controlStrip.window.Show()
		} else {
			controlStrip.window.Hide()
		}
	})
}

// Render updates the strip from a machine snapshot.
func (controlStrip *Strip) Render(snapshot pomodoro.Snapshot) {
	fyne.Do(func() {
		controlStrip.timer.Text = pomodoro.FormatClock(snapshot.Remaining)
		controlStrip.timer.Refresh()
		controlStrip.bar.SetValue(snapshot.Progress)

		switch {
		case snapshot.Phase.Countdown():
			controlStrip.primary.SetText("Pause")
		case snapshot.Phase == pomodoro.PhasePaused:
			controlStrip.primary.SetText("Resume")
		default:
			controlStrip.primary.SetText("Start")
		}
	})
}
