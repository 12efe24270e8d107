package preferences

import (
	"tomatillo/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings)
	onCancel    func()
	taskGroup   *widget.RadioGroup
	opacity     *widget.Slider
	stripCheck  *widget.Check
	notifyCheck *widget.Check
	loginCheck  *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Tomatillo Settings")

	taskLabels := make([]string, 0, len(model.AllTaskTypes()))
	for _, task := range model.AllTaskTypes() {
		taskLabels = append(taskLabels, task.Label())
	}
	taskGroup := widget.NewRadioGroup(taskLabels, nil)
	taskGroup.SetSelected(settings.ActiveTask.Label())

	opacity := widget.NewSlider(0.5, 1.0)
	opacity.Value = settings.OverlayOpacity
	opacity.Step = 0.01

	stripCheck := widget.NewCheck("Show control strip", nil)
	stripCheck.SetChecked(settings.ShowStrip)

	notifyCheck := widget.NewCheck("Notify on session completion", nil)
	notifyCheck.SetChecked(settings.Notifications)

	loginCheck := widget.NewCheck("Launch at login", nil)
	loginCheck.SetChecked(settings.LaunchAtLogin)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Task type", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		taskGroup,
		widget.NewLabelWithStyle("Appearance", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Overlay opacity"),
		opacity,
		stripCheck,
		widget.NewLabelWithStyle("Behavior", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		notifyCheck,
		loginCheck,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(380, 420))

	prefs := &Window{
		window:      window,
		settings:    settings,
		onSave:      onSave,
		taskGroup:   taskGroup,
		opacity:     opacity,
		stripCheck:  stripCheck,
		notifyCheck: notifyCheck,
		loginCheck:  loginCheck,
	}

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.taskGroup.SetSelected(settings.ActiveTask.Label())
	prefs.opacity.Value = settings.OverlayOpacity
	prefs.opacity.Refresh()
	prefs.stripCheck.SetChecked(settings.ShowStrip)
	prefs.notifyCheck.SetChecked(settings.Notifications)
	prefs.loginCheck.SetChecked(settings.LaunchAtLogin)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	for _, task := range model.AllTaskTypes() {
		if task.Label() == prefs.taskGroup.Selected {
			settings.ActiveTask = task
		}
	}
	settings.OverlayOpacity = prefs.opacity.Value
	settings.ShowStrip = prefs.stripCheck.Checked
	settings.Notifications = prefs.notifyCheck.Checked
	settings.LaunchAtLogin = prefs.loginCheck.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
