package gui

import (
	"context"
	"strings"
	"sync"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"codeberg.org/snonux/codetranslator/internal/controller"
)

func TestStatusText(t *testing.T) {
	tests := []struct {
		name  string
		state controller.State
		want  string
	}{
		{"idle", controller.State{}, "Ready"},
		{"waiting", controller.State{InputLanguage: "Go", OutputLanguage: "Rust", Loading: true}, "Translating Go to Rust..."},
		{"streaming", controller.State{OutputLanguage: "Rust", OutputCode: "fn", Loading: true}, "Receiving Rust..."},
		{"done", controller.State{OutputCode: "fn main() {}"}, "Done"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusText(tt.state); got != tt.want {
				t.Errorf("statusText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCharCount(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"", "0 / 6000"},
		{"abc", "3 / 6000"},
		{"héllo", "5 / 6000"},
		{strings.Repeat("x", 6001), "6001 / 6000"},
	}

	for _, tt := range tests {
		if got := charCount(tt.code); got != tt.want {
			t.Errorf("charCount(%d chars) = %q, want %q", len(tt.code), got, tt.want)
		}
	}
}

func TestIsSubmitShortcut(t *testing.T) {
	tests := []struct {
		name     string
		shortcut fyne.Shortcut
		want     bool
	}{
		{"ctrl return", &desktop.CustomShortcut{KeyName: fyne.KeyReturn, Modifier: fyne.KeyModifierShortcutDefault}, true},
		{"ctrl enter", &desktop.CustomShortcut{KeyName: fyne.KeyEnter, Modifier: fyne.KeyModifierShortcutDefault}, true},
		{"shift return", &desktop.CustomShortcut{KeyName: fyne.KeyReturn, Modifier: fyne.KeyModifierShift}, false},
		{"ctrl a", &desktop.CustomShortcut{KeyName: fyne.KeyA, Modifier: fyne.KeyModifierShortcutDefault}, false},
		{"copy", &fyne.ShortcutCopy{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSubmitShortcut(tt.shortcut); got != tt.want {
				t.Errorf("isSubmitShortcut() = %v, want %v", got, tt.want)
			}
		})
	}
}

// recordingController records every call the window makes
type recordingController struct {
	mu    sync.Mutex
	state controller.State
	calls []string
}

func (r *recordingController) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recordingController) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recordingController) State() controller.State { return r.state }
func (r *recordingController) SetInputCode(code string) { r.record("SetInputCode:" + code) }
func (r *recordingController) SetInputLanguage(l string) { r.record("SetInputLanguage:" + l) }
func (r *recordingController) SetOutputLanguage(l string) {
	r.record("SetOutputLanguage:" + l)
}
func (r *recordingController) Translate(ctx context.Context) error {
	r.record("Translate")
	return nil
}
func (r *recordingController) Close() { r.record("Close") }

func newTestApplication(t *testing.T) (*Application, *recordingController) {
	t.Helper()

	fyneApp := test.NewApp()
	t.Cleanup(fyneApp.Quit)

	ctrl := &recordingController{state: controller.State{InputLanguage: "JavaScript", OutputLanguage: "Python"}}
	a := newApplication(fyneApp, nil)
	a.controller = ctrl
	a.setupUI()
	t.Cleanup(a.cancel)

	return a, ctrl
}

func TestSetupUI_InitialSelection(t *testing.T) {
	a, ctrl := newTestApplication(t)

	if a.inputLanguage.Selected != "JavaScript" || a.outputLanguage.Selected != "Python" {
		t.Errorf("Expected JavaScript -> Python, got %s -> %s", a.inputLanguage.Selected, a.outputLanguage.Selected)
	}
	if calls := ctrl.Calls(); len(calls) != 0 {
		t.Errorf("Initial selection must not reach the controller, got %v", calls)
	}
}

func TestRender_UpdatesWidgetsWithoutFeedback(t *testing.T) {
	a, ctrl := newTestApplication(t)

	a.Render(controller.State{
		InputLanguage:  "Go",
		OutputLanguage: "Rust",
		InputCode:      "func main() {}",
		OutputCode:     "fn main",
		Loading:        true,
	})

	if a.inputLanguage.Selected != "Go" || a.outputLanguage.Selected != "Rust" {
		t.Errorf("Selects show %s -> %s", a.inputLanguage.Selected, a.outputLanguage.Selected)
	}
	if a.inputEntry.Text != "func main() {}" {
		t.Errorf("Input entry = %q", a.inputEntry.Text)
	}
	if a.outputEntry.Text != "fn main" {
		t.Errorf("Output entry = %q", a.outputEntry.Text)
	}
	if !a.translateButton.Disabled() {
		t.Error("Translate button should be disabled while loading")
	}
	if a.countLabel.Text != "14 / 6000" {
		t.Errorf("Count label = %q", a.countLabel.Text)
	}
	if calls := ctrl.Calls(); len(calls) != 0 {
		t.Errorf("Render must not call back into the controller, got %v", calls)
	}
	if a.syncing {
		t.Error("syncing should be reset after Render")
	}

	a.Render(controller.State{InputLanguage: "Go", OutputLanguage: "Rust", OutputCode: "fn main() {}"})
	if a.translateButton.Disabled() {
		t.Error("Translate button should be enabled when idle")
	}
	if a.statusLabel.Text != "Done" {
		t.Errorf("Status = %q", a.statusLabel.Text)
	}
}

func TestUserEdits_ReachController(t *testing.T) {
	a, ctrl := newTestApplication(t)

	a.inputEntry.SetText("x = 1")
	a.outputLanguage.SetSelected("Go")
	a.inputLanguage.SetSelected("Ruby")

	want := []string{"SetInputCode:x = 1", "SetOutputLanguage:Go", "SetInputLanguage:Ruby"}
	calls := ctrl.Calls()
	if strings.Join(calls, "|") != strings.Join(want, "|") {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}
