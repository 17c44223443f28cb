package gui

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const defaultMaxMessages = 500

// LogWriter forwards log output to a LogViewer and to the original writer
type LogWriter struct {
	viewer   *LogViewer
	original io.Writer
}

// Write implements io.Writer
func (w *LogWriter) Write(p []byte) (n int, err error) {
	if w.original != nil {
		w.original.Write(p)
	}

	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line != "" {
			w.viewer.AddMessage(line)
		}
	}

	return len(p), nil
}

// LogViewer is a widget that displays log messages, newest first
type LogViewer struct {
	widget.BaseWidget

	container  *fyne.Container
	logEntry   *widget.Entry
	scrollView *container.Scroll

	mu          sync.Mutex
	messages    []string
	maxMessages int
	now         func() time.Time
}

// NewLogViewer creates a new log viewer widget
func NewLogViewer() *LogViewer {
	v := &LogViewer{
		maxMessages: defaultMaxMessages,
		now:         time.Now,
	}

	v.logEntry = widget.NewMultiLineEntry()
	v.logEntry.Disable()
	v.logEntry.Wrapping = fyne.TextWrapWord

	v.scrollView = container.NewScroll(v.logEntry)
	v.scrollView.SetMinSize(fyne.NewSize(0, 100))

	v.container = container.NewBorder(
		widget.NewLabel("Log messages (newest first):"),
		nil, nil, nil,
		v.scrollView,
	)

	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *LogViewer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.container)
}

// StartCapture redirects the log package into the viewer
func (v *LogViewer) StartCapture() {
	log.SetOutput(&LogWriter{viewer: v, original: os.Stderr})
}

// StopCapture restores log output to stderr
func (v *LogViewer) StopCapture() {
	log.SetOutput(os.Stderr)
}

// AddMessage prepends a timestamped message
func (v *LogViewer) AddMessage(message string) {
	v.mu.Lock()
	v.messages = append([]string{fmt.Sprintf("[%s] %s", v.now().Format("15:04:05"), message)}, v.messages...)
	if len(v.messages) > v.maxMessages {
		v.messages = v.messages[:v.maxMessages]
	}
	text := strings.Join(v.messages, "\n")
	v.mu.Unlock()

	fyne.Do(func() {
		v.logEntry.SetText(text)
		v.scrollView.Offset = fyne.NewPos(0, 0)
		v.scrollView.Refresh()
	})
}
