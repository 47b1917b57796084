package ui

import (
	"KitchenTimer/control"
	"KitchenTimer/i18n"
	"KitchenTimer/timer"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

type App interface {
	Countdown() *timer.Countdown
	UpdateControlButtonState()
	HandleKeyRune(rune)
	ShowInfoDialog(title, contentFile string, minSize fyne.Size)
	SetStartButton(*widget.Button)
	SetPauseButton(*widget.Button)
	SetResetButton(*widget.Button)
	EnqueueCommand(cmd control.Command)
	WindowTitle() string
}

// TimerWidget renders the countdown: the MM:SS display plus the two entry
// fields the duration is typed into.
type TimerWidget struct {
	app       App
	countdown *timer.Countdown

	timeText     *canvas.Text
	finishedText *canvas.Text
	backdrop     *canvas.Rectangle
	minutesEntry *widget.Entry
	secondsEntry *widget.Entry
	content      fyne.CanvasObject
}

func NewTimerWidget(a App) *TimerWidget {
	w := &TimerWidget{app: a, countdown: a.Countdown()}
	w.countdown.UI = w

	w.timeText = canvas.NewText("00:00", color.White)
	w.timeText.TextStyle.Monospace = true
	w.timeText.TextSize = timer.FontSizeTime

	w.finishedText = canvas.NewText(i18n.T("Time's up!"), timer.FinishedColor)
	w.finishedText.TextSize = timer.FontSizeLabel
	w.finishedText.Hide()

	w.backdrop = canvas.NewRectangle(timer.BackgroundColor)
	w.backdrop.CornerRadius = timer.CornerRadius

	w.minutesEntry = newDurationEntry(a, control.CmdEditMinutes, w)
	w.secondsEntry = newDurationEntry(a, control.CmdEditSeconds, w)

	minutesLabel := canvas.NewText(i18n.T("Minutes"), color.White)
	minutesLabel.TextSize = timer.FontSizeLabel
	secondsLabel := canvas.NewText(i18n.T("Seconds"), color.White)
	secondsLabel.TextSize = timer.FontSizeLabel

	entryWidth := canvas.NewRectangle(color.Transparent)
	entryWidth.SetMinSize(fyne.NewSize(timer.EntryWidth, 0))
	minutesBox := container.NewVBox(
		container.New(layout.NewCenterLayout(), minutesLabel),
		container.New(layout.NewStackLayout(), entryWidth, w.minutesEntry),
	)
	entryWidth2 := canvas.NewRectangle(color.Transparent)
	entryWidth2.SetMinSize(fyne.NewSize(timer.EntryWidth, 0))
	secondsBox := container.NewVBox(
		container.New(layout.NewCenterLayout(), secondsLabel),
		container.New(layout.NewStackLayout(), entryWidth2, w.secondsEntry),
	)

	display := container.NewStack(
		w.backdrop,
		container.New(layout.NewVBoxLayout(),
			layout.NewSpacer(),
			container.New(layout.NewCenterLayout(), w.timeText),
			container.New(layout.NewCenterLayout(), w.finishedText),
			layout.NewSpacer(),
		),
	)

	fields := container.NewHBox(
		layout.NewSpacer(),
		minutesBox,
		secondsBox,
		layout.NewSpacer(),
	)

	w.content = container.NewVBox(display, fields)

	w.UpdateDisplay()
	return w
}

// newDurationEntry builds one of the two duration fields. Every keystroke is
// forwarded to the command loop verbatim; the core decides what the text is
// worth.
func newDurationEntry(a App, cmdType control.CommandType, w *TimerWidget) *widget.Entry {
	e := widget.NewEntry()
	e.Text = "0"
	e.OnChanged = func(text string) {
		reply := make(chan error, 1)
		a.EnqueueCommand(control.Command{Type: cmdType, Text: text, Reply: reply})
		select {
		case <-reply:
		case <-time.After(200 * time.Millisecond):
		}
		w.UpdateDisplay()
		a.UpdateControlButtonState()
	}
	return e
}

func (tw *TimerWidget) GetCanvasObject() fyne.CanvasObject {
	return tw.content
}

// UpdateDisplay renders the current countdown snapshot. Safe to call from
// any goroutine; the widget mutations happen inside fyne.Do. The control
// buttons are synced here as well: ticks are the one transition source the
// button handlers never see, and the Running->Finished tick must swap
// Pause back out for Start without waiting for user input.
func (tw *TimerWidget) UpdateDisplay() {
	s := tw.countdown.Snapshot()
	fyne.Do(func() {
		tw.timeText.Text = timer.FormatTime(s.Remaining)
		if s.Status == timer.StatusFinished {
			tw.timeText.Color = timer.FinishedColor
			tw.finishedText.Show()
		} else {
			tw.timeText.Color = color.White
			tw.finishedText.Hide()
		}
		tw.timeText.Refresh()
		tw.finishedText.Refresh()

		// The countdown owns the numeric value while it runs; freeze the
		// fields so typing cannot fight the display. They come back after
		// Reset.
		editable := s.Status == timer.StatusIdle || s.Status == timer.StatusPaused
		syncEntry(tw.minutesEntry, s.MinutesField, editable)
		syncEntry(tw.secondsEntry, s.SecondsField, editable)
	})
	tw.app.UpdateControlButtonState()
}

// syncEntry reconciles an entry widget with the authoritative field text
// without re-triggering OnChanged for text the core already has.
func syncEntry(e *widget.Entry, text string, editable bool) {
	if e.Text != text {
		onChanged := e.OnChanged
		e.OnChanged = nil
		e.SetText(text)
		e.OnChanged = onChanged
	}
	if editable {
		e.Enable()
	} else {
		e.Disable()
	}
}

// BuildFooter assembles the Start/Pause/Reset controls and the help icon.
func BuildFooter(a App) (*widget.Button, *widget.Button, *widget.Button, fyne.CanvasObject) {
	send := func(t control.CommandType) {
		reply := make(chan error, 1)
		a.EnqueueCommand(control.Command{Type: t, Reply: reply})
		select {
		case <-reply:
		case <-time.After(200 * time.Millisecond):
		}
		if tw, ok := a.Countdown().UI.(*TimerWidget); ok {
			tw.UpdateDisplay()
		}
		a.UpdateControlButtonState()
	}

	startButton := widget.NewButton(i18n.T("Start"), func() { send(control.CmdStart) })
	pauseButton := widget.NewButton(i18n.T("Pause"), func() { send(control.CmdPause) })
	pauseButton.Hide()
	resetButton := widget.NewButton(i18n.T("Reset"), func() { send(control.CmdReset) })

	controlStack := container.NewStack(startButton, pauseButton)

	buttonsSpacer := canvas.NewRectangle(color.Transparent)
	buttonsSpacer.SetMinSize(fyne.NewSize(timer.ControlButtonsGap, 0))

	aboutIcon := widget.NewIcon(theme.QuestionIcon())
	helpButton := NewTappableContainer(aboutIcon, func() {
		a.ShowInfoDialog(i18n.T("Help"), "assets/timer_help.txt", fyne.NewSize(400, 300))
	}, func(_ *fyne.PointEvent) {
		a.ShowInfoDialog(i18n.T("About Kitchen Timer"), "", fyne.NewSize(400, 300))
	})

	leftContent := container.NewVBox(
		layout.NewSpacer(),
		helpButton,
	)

	controlButtons := container.NewHBox(controlStack, buttonsSpacer, resetButton)

	centeredControlButtons := container.NewHBox(
		layout.NewSpacer(),
		controlButtons,
		layout.NewSpacer(),
	)

	footer := container.New(
		layout.NewBorderLayout(nil, nil, leftContent, nil),
		leftContent,
		centeredControlButtons,
	)

	return startButton, pauseButton, resetButton, footer
}

func CreateMainWindow(a App, fyneApp fyne.App) fyne.Window {
	title := fyneApp.Metadata().Name
	if title == "" {
		title = a.WindowTitle()
	}
	w := fyneApp.NewWindow(title)

	timerWidget := NewTimerWidget(a)
	startButton, pauseButton, resetButton, footerLayout := BuildFooter(a)

	a.SetStartButton(startButton)
	a.SetPauseButton(pauseButton)
	a.SetResetButton(resetButton)

	w.Canvas().SetOnTypedRune(a.HandleKeyRune)

	contentVBox := container.NewVBox(
		timerWidget.GetCanvasObject(),
		footerLayout,
	)

	a.UpdateControlButtonState()

	w.SetContent(contentVBox)
	w.Resize(fyne.NewSize(timer.WindowWidth, timer.WindowHeight))
	w.SetFixedSize(true)
	return w
}

type TappableContainer struct {
	widget.BaseWidget
	Content           fyne.CanvasObject
	OnTappedPrimary   func()
	OnTappedSecondary func(e *fyne.PointEvent)
}

func NewTappableContainer(c fyne.CanvasObject, onP func(), onS func(e *fyne.PointEvent)) *TappableContainer {
	t := &TappableContainer{
		Content:           c,
		OnTappedPrimary:   onP,
		OnTappedSecondary: onS,
	}
	t.ExtendBaseWidget(t)
	return t
}

func (t *TappableContainer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewHBox(t.Content, layout.NewSpacer()))
}

func (t *TappableContainer) Tapped(_ *fyne.PointEvent) {
	if t.OnTappedPrimary != nil {
		t.OnTappedPrimary()
	}
}

func (t *TappableContainer) TappedSecondary(e *fyne.PointEvent) {
	if t.OnTappedSecondary != nil {
		t.OnTappedSecondary(e)
	}
}
