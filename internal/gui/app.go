package gui

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/codetranslator/internal"
	"codeberg.org/snonux/codetranslator/internal/client"
	"codeberg.org/snonux/codetranslator/internal/controller"
	"codeberg.org/snonux/codetranslator/internal/languages"
	"codeberg.org/snonux/codetranslator/internal/translation"
)

const languagesTimeout = 10 * time.Second

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	inputLanguage   *widget.Select
	outputLanguage  *widget.Select
	inputEntry      *CodeEntry
	outputEntry     *widget.Entry
	translateButton *ttwidget.Button
	copyButton      *ttwidget.Button
	statusLabel     *widget.Label
	countLabel      *widget.Label
	logViewer       *LogViewer

	// syncing is set while Render pushes state into widgets so that the
	// resulting OnChanged callbacks are not fed back to the controller.
	// Only touched on the fyne main goroutine.
	syncing bool

	controller Controller
	client     *client.Client
	config     *Config

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config holds GUI application configuration
type Config struct {
	ServerURL string
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{
		ServerURL: client.DefaultServerURL,
	}
}

// Controller is the part of controller.Controller the window drives
type Controller interface {
	State() controller.State
	SetInputCode(code string)
	SetInputLanguage(language string)
	SetOutputLanguage(language string)
	Translate(ctx context.Context) error
	Close()
}

// New creates a new GUI application talking to the relay in config
func New(config *Config) *Application {
	a := newApplication(app.NewWithID("org.codeberg.snonux.codetranslator"), config)
	a.controller = controller.New(a.client, a)

	a.setupUI()

	return a
}

func newApplication(fyneApp fyne.App, config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	} else if config.ServerURL == "" {
		config.ServerURL = DefaultConfig().ServerURL
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Application{
		app:    fyneApp,
		client: client.NewClient(config.ServerURL, nil),
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("Code Translator %s", internal.Version))
	a.window.Resize(fyne.NewSize(1100, 700))

	state := a.controller.State()
	all := languages.All()

	a.inputLanguage = widget.NewSelect(all, func(choice string) {
		if !a.syncing {
			a.controller.SetInputLanguage(choice)
		}
	})

	a.outputLanguage = widget.NewSelect(all, func(choice string) {
		if !a.syncing {
			a.controller.SetOutputLanguage(choice)
		}
	})

	a.syncing = true
	a.inputLanguage.SetSelected(state.InputLanguage)
	a.outputLanguage.SetSelected(state.OutputLanguage)
	a.syncing = false

	a.inputEntry = NewCodeEntry()
	a.inputEntry.SetPlaceHolder("Paste code here... Press Ctrl+Enter to translate")
	a.inputEntry.OnChanged = func(text string) {
		a.countLabel.SetText(charCount(text))
		if !a.syncing {
			a.controller.SetInputCode(text)
		}
	}
	a.inputEntry.SetOnSubmit(a.onTranslate)
	a.inputEntry.SetOnEscape(func() {
		a.window.Canvas().Unfocus()
	})

	a.outputEntry = widget.NewMultiLineEntry()
	a.outputEntry.SetPlaceHolder("Translation appears here")
	a.outputEntry.Wrapping = fyne.TextWrapOff
	a.outputEntry.TextStyle = fyne.TextStyle{Monospace: true}
	a.outputEntry.Disable()

	a.translateButton = ttwidget.NewButtonWithIcon("Translate", theme.MediaPlayIcon(), a.onTranslate)
	a.translateButton.Importance = widget.HighImportance

	a.copyButton = ttwidget.NewButtonWithIcon("", theme.ContentCopyIcon(), a.onCopy)

	a.statusLabel = widget.NewLabel("Ready")
	a.countLabel = widget.NewLabel(charCount(""))
	a.countLabel.TextStyle = fyne.TextStyle{Italic: true}

	a.logViewer = NewLogViewer()

	inputSection := container.NewBorder(
		container.NewBorder(nil, nil, widget.NewLabel("Input"), a.countLabel, a.inputLanguage),
		nil, nil, nil,
		a.inputEntry,
	)
	outputSection := container.NewBorder(
		container.NewBorder(nil, nil, widget.NewLabel("Output"), a.copyButton, a.outputLanguage),
		nil, nil, nil,
		a.outputEntry,
	)

	editors := container.NewHSplit(inputSection, outputSection)
	editors.SetOffset(0.5)

	body := container.NewVSplit(editors, a.logViewer)
	body.SetOffset(0.8)

	content := container.NewBorder(
		container.NewHBox(a.translateButton, widget.NewSeparator(), a.statusLabel),
		nil, nil, nil,
		body,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.translateButton.SetToolTip("Translate (Ctrl+Enter)")
	a.copyButton.SetToolTip("Copy translation")

	a.window.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyReturn,
		Modifier: fyne.KeyModifierShortcutDefault,
	}, func(fyne.Shortcut) {
		a.onTranslate()
	})

	a.window.SetOnClosed(func() {
		a.cancel()
		a.controller.Close()
		a.logViewer.StopCapture()
		a.wg.Wait()
	})
}

// Run starts the GUI application
func (a *Application) Run() {
	a.logViewer.StartCapture()
	a.loadLanguages()
	a.window.ShowAndRun()
}

// loadLanguages replaces the built-in language list with the relay's
func (a *Application) loadLanguages() {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(a.ctx, languagesTimeout)
		defer cancel()

		list, err := a.client.Languages(ctx)
		if err != nil {
			log.Printf("Could not fetch languages from %s, using built-in list: %v", a.config.ServerURL, err)
			return
		}

		fyne.Do(func() {
			a.inputLanguage.SetOptions(list)
			a.outputLanguage.SetOptions(list)
		})
	}()
}

// onTranslate starts a translation cycle in the background
func (a *Application) onTranslate() {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		err := a.controller.Translate(a.ctx)
		switch {
		case err == nil:
			log.Printf("Translation finished")
		case translation.IsValidationError(err):
			// already alerted
		default:
			log.Printf("Translation failed: %v", err)
		}
	}()
}

// onCopy copies the current translation to the clipboard
func (a *Application) onCopy() {
	output := a.controller.State().OutputCode
	if output == "" {
		return
	}
	a.window.Clipboard().SetContent(output)
	a.statusLabel.SetText("Copied to clipboard")
}

// Render implements controller.View
func (a *Application) Render(state controller.State) {
	fyne.Do(func() {
		a.syncing = true
		defer func() { a.syncing = false }()

		if a.inputLanguage.Selected != state.InputLanguage {
			a.inputLanguage.SetSelected(state.InputLanguage)
		}
		if a.outputLanguage.Selected != state.OutputLanguage {
			a.outputLanguage.SetSelected(state.OutputLanguage)
		}
		if a.inputEntry.Text != state.InputCode {
			a.inputEntry.SetText(state.InputCode)
		}
		if a.outputEntry.Text != state.OutputCode {
			a.outputEntry.SetText(state.OutputCode)
		}

		if state.Loading {
			a.translateButton.Disable()
		} else {
			a.translateButton.Enable()
		}
		a.statusLabel.SetText(statusText(state))
	})
}

// Alert implements controller.View
func (a *Application) Alert(message string) {
	fyne.Do(func() {
		dialog.ShowInformation("Code Translator", message, a.window)
	})
}

// statusText describes state for the status bar
func statusText(state controller.State) string {
	switch {
	case state.Loading && state.OutputCode == "":
		return fmt.Sprintf("Translating %s to %s...", state.InputLanguage, state.OutputLanguage)
	case state.Loading:
		return fmt.Sprintf("Receiving %s...", state.OutputLanguage)
	case state.OutputCode != "":
		return "Done"
	default:
		return "Ready"
	}
}

// charCount formats the input length against the limit
func charCount(code string) string {
	return fmt.Sprintf("%d / %d", translation.CodeLength(code), translation.MaxCodeLength)
}
