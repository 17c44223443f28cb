package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// CodeEntry is a monospace multi-line entry that submits on Ctrl+Enter
// and unfocuses on Escape
type CodeEntry struct {
	widget.Entry
	onEscape func()
	onSubmit func()
}

// NewCodeEntry creates a new code entry
func NewCodeEntry() *CodeEntry {
	entry := &CodeEntry{}
	entry.MultiLine = true
	entry.Wrapping = fyne.TextWrapOff
	entry.TextStyle = fyne.TextStyle{Monospace: true}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedKey handles key events
func (e *CodeEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape && e.onEscape != nil {
		e.onEscape()
		return
	}
	e.Entry.TypedKey(key)
}

// TypedShortcut handles Ctrl+Enter and passes everything else on
func (e *CodeEntry) TypedShortcut(shortcut fyne.Shortcut) {
	if isSubmitShortcut(shortcut) && e.onSubmit != nil {
		e.onSubmit()
		return
	}
	e.Entry.TypedShortcut(shortcut)
}

// SetOnEscape sets the callback for when Escape is pressed
func (e *CodeEntry) SetOnEscape(f func()) {
	e.onEscape = f
}

// SetOnSubmit sets the callback for Ctrl+Enter
func (e *CodeEntry) SetOnSubmit(f func()) {
	e.onSubmit = f
}

func isSubmitShortcut(shortcut fyne.Shortcut) bool {
	custom, ok := shortcut.(*desktop.CustomShortcut)
	if !ok {
		return false
	}
	return (custom.KeyName == fyne.KeyReturn || custom.KeyName == fyne.KeyEnter) &&
		custom.Modifier == fyne.KeyModifierShortcutDefault
}
