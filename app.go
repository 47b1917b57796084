// Package main contains the application wiring and the AppManager which
// coordinates the countdown, audio and the UI. This file centralizes the
// shared application state and the command loop used to serialize countdown
// state mutations.
//
// Maintenance notes / tips:
//   - Concurrency model: the application uses a single command-loop goroutine
//     (see `commandLoop`) to serialize Start/Pause/Reset/Edit operations. The
//     countdown is ticked by its Clock subscription goroutine, and the
//     Countdown struct carries its own mutex, so command loop and ticks never
//     race on timer state.
//   - `cmdCh` is a buffered channel used to enqueue commands from the UI. The
//     current implementation drops commands after a short timeout when the
//     channel stays full, to avoid blocking the UI.
//   - AppManager implements timer.AlertSink on top of the beep speaker. Audio
//     failing to initialize or decode only disables the cue; the countdown
//     itself is unaffected.
package main

import (
	"KitchenTimer/control"
	"KitchenTimer/i18n"
	"KitchenTimer/timer"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
)

// AppManager is the main application struct, holding all state.
type AppManager struct {
	mainWindow fyne.Window
	countdown  *timer.Countdown
	config     timer.AppConfig
	cmdCh      chan control.Command
	cmdCtx     context.Context
	cmdCancel  context.CancelFunc

	startButton *widget.Button
	pauseButton *widget.Button
	resetButton *widget.Button

	alertBuffer *beep.Buffer
	speakerLock sync.Mutex
	content     embed.FS // Embedded file system for assets
}

// NewAppManager creates a new application manager.
func NewAppManager(content embed.FS) *AppManager {
	a := &AppManager{content: content}
	a.config = timer.LoadAppConfig(content)
	a.loadAudioFile()

	clock := timer.NewTickerClock(time.Duration(a.config.TickSeconds) * time.Second)
	a.countdown = timer.NewCountdown(clock, a)

	// Buffered so brief bursts of entry edits do not stall the UI.
	a.cmdCh = make(chan control.Command, 256)
	a.cmdCtx, a.cmdCancel = context.WithCancel(context.Background())
	go a.commandLoop()

	return a
}

// Countdown returns the single countdown instance.
func (a *AppManager) Countdown() *timer.Countdown {
	return a.countdown
}

// EnqueueCommand posts a command to the internal command loop.
func (a *AppManager) EnqueueCommand(cmd control.Command) {
	// Try to enqueue the command but avoid blocking UI indefinitely. If the
	// channel stays full for the configured short timeout, drop and log.
	select {
	case a.cmdCh <- cmd:
	case <-time.After(150 * time.Millisecond):
		log.Printf("EnqueueCommand timeout: dropping command")
	}
}

func (a *AppManager) commandLoop() {
	for {
		select {
		case <-a.cmdCtx.Done():
			return
		case cmd := <-a.cmdCh:
			switch cmd.Type {
			case control.CmdStart:
				a.countdown.Start()
			case control.CmdPause:
				a.countdown.Pause()
			case control.CmdReset:
				a.countdown.Reset()
			case control.CmdEditMinutes:
				a.countdown.EditMinutes(cmd.Text)
			case control.CmdEditSeconds:
				a.countdown.EditSeconds(cmd.Text)
			}
			// send reply if requested
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- nil:
				default:
				}
			}
		}
	}
}

func (a *AppManager) loadAudioFile() {
	if err := speaker.Init(44100, 44100/10); err != nil {
		log.Printf("Audio disabled: Failed to initialize speaker: %v\n", err)
		return
	}

	filepath := fmt.Sprintf("assets/%s", a.config.AudioFilename)
	data, err := a.content.Open(filepath)
	if err != nil {
		log.Printf("Audio disabled: failed to open %s: %v", filepath, err)
		return
	}
	defer data.Close()

	streamer, format, err := vorbis.Decode(data)
	if err != nil {
		log.Printf("Audio disabled: failed to decode %s: %v", filepath, err)
		return
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	a.alertBuffer = buffer
}

// Play streams the completion cue from the start of the buffer. It
// implements timer.AlertSink.
func (a *AppManager) Play() {
	if a.alertBuffer == nil {
		return
	}

	a.speakerLock.Lock()
	defer a.speakerLock.Unlock()

	speaker.Play(a.alertBuffer.Streamer(0, a.alertBuffer.Len()))
}

// StopAndRewind silences an in-progress cue. Each Play streams from offset
// zero, so clearing the speaker is all the rewind that is needed. It
// implements timer.AlertSink.
func (a *AppManager) StopAndRewind() {
	if a.alertBuffer == nil {
		return
	}

	a.speakerLock.Lock()
	defer a.speakerLock.Unlock()

	speaker.Clear()
}

// UpdateControlButtonState updates the visibility of the main control
// buttons from the countdown's derived predicates.
func (a *AppManager) UpdateControlButtonState() {
	s := a.countdown.Snapshot()

	fyne.Do(func() {
		if a.startButton == nil {
			return
		}

		if s.Status == timer.StatusRunning {
			a.startButton.Hide()
			a.pauseButton.Show()
		} else {
			a.pauseButton.Hide()
			a.startButton.Show()
			if s.CanStart && s.Status != timer.StatusFinished {
				a.startButton.Enable()
			} else {
				a.startButton.Disable()
			}
		}

		if s.ShowReset {
			a.resetButton.Enable()
		} else {
			a.resetButton.Disable()
		}

		a.startButton.Refresh()
		a.pauseButton.Refresh()
		a.resetButton.Refresh()
	})
}

// HandleKeyRune handles key presses for the application.
func (a *AppManager) HandleKeyRune(r rune) {
	switch r {
	case ' ':
		if !a.pauseButton.Hidden {
			a.pauseButton.Tapped(&fyne.PointEvent{})
		} else if !a.startButton.Hidden && !a.startButton.Disabled() {
			a.startButton.Tapped(&fyne.PointEvent{})
		}
	case 'r', 'R':
		a.resetButton.Tapped(&fyne.PointEvent{})
	}
}

// ShowInfoDialog shows a dialog with the given title and content.
func (a *AppManager) ShowInfoDialog(title, contentFile string, minSize fyne.Size) {
	var contentText string
	if title == i18n.T("About Kitchen Timer") {
		bytes, err := a.content.ReadFile("assets/dialogue_about.json")
		if err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}

		var dialogues map[string]string
		if err := json.Unmarshal(bytes, &dialogues); err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		contentText = dialogues[i18n.GetLang()]
	} else {
		bytes, err := a.content.ReadFile(contentFile)
		if err != nil {
			dialog.ShowError(err, a.mainWindow)
			return
		}
		contentText = string(bytes)
	}

	text := widget.NewLabel(contentText)
	text.Wrapping = fyne.TextWrapWord

	scrollableContent := container.NewVScroll(text)
	scrollableContent.SetMinSize(minSize)

	dialog.ShowCustom(title, i18n.T("Close"), scrollableContent, a.mainWindow)
}

// SetStartButton sets the start button widget.
func (a *AppManager) SetStartButton(btn *widget.Button) {
	a.startButton = btn
}

// SetPauseButton sets the pause button widget.
func (a *AppManager) SetPauseButton(btn *widget.Button) {
	a.pauseButton = btn
}

// SetResetButton sets the reset button widget.
func (a *AppManager) SetResetButton(btn *widget.Button) {
	a.resetButton = btn
}

// WindowTitle returns the configured window title.
func (a *AppManager) WindowTitle() string {
	return a.config.WindowTitle
}

// Shutdown attempts to gracefully stop the AppManager command loop. It
// cancels the internal context and allows background goroutines to exit.
func (a *AppManager) Shutdown() {
	if a.cmdCancel != nil {
		a.cmdCancel()
	}
}
