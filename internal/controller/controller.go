package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"codeberg.org/snonux/codetranslator/internal/languages"
	"codeberg.org/snonux/codetranslator/internal/translation"
)

// FailureMessage is shown for any transport or provider failure
const FailureMessage = "Something went wrong."

var (
	// ErrBusy is returned when Translate is called while a cycle is running
	ErrBusy = errors.New("translation already in progress")

	// errSuperseded stops a reader whose cycle was cancelled
	errSuperseded = errors.New("translation cycle superseded")
)

// Translator opens a streamed translation, typically over HTTP
type Translator interface {
	Translate(ctx context.Context, req translation.Request) (translation.Stream, error)
}

// View presents controller state. Both methods are called with the
// controller lock held, in the order changes happen, so they must not
// call back into the Controller synchronously.
type View interface {
	Render(state State)
	Alert(message string)
}

// State is a snapshot of the UI state
type State struct {
	InputLanguage  string
	OutputLanguage string
	InputCode      string
	OutputCode     string
	Loading        bool
}

// Controller runs translation cycles against a Translator
type Controller struct {
	translator Translator
	view       View

	mu     sync.Mutex
	state  State
	cycle  uint64
	cancel context.CancelFunc
}

// New creates a controller with the default language selection
func New(translator Translator, view View) *Controller {
	return &Controller{
		translator: translator,
		view:       view,
		state: State{
			InputLanguage:  languages.DefaultInput,
			OutputLanguage: languages.DefaultOutput,
		},
	}
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetInputCode replaces the input buffer
func (c *Controller) SetInputCode(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.InputCode = code
	c.view.Render(c.state)
}

// SetInputLanguage selects the input language. Code typed for the
// previous language no longer applies, so both buffers are cleared.
func (c *Controller) SetInputLanguage(language string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.abortLocked()
	c.state.InputLanguage = language
	c.state.InputCode = ""
	c.state.OutputCode = ""
	c.view.Render(c.state)
}

// SetOutputLanguage selects the output language and clears the output
func (c *Controller) SetOutputLanguage(language string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.abortLocked()
	c.state.OutputLanguage = language
	c.state.OutputCode = ""
	c.view.Render(c.state)
}

// Close cancels any in-flight translation
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.abortLocked() {
		c.view.Render(c.state)
	}
}

// Translate runs one translation cycle and blocks until the stream ends.
//
// Validation failures are alerted and returned without a request. A call
// while another cycle is loading returns ErrBusy and changes nothing. A
// failed request, or a response that breaks before its first chunk,
// alerts FailureMessage and leaves the output empty. A stream that breaks
// after some chunks keeps the partial output without an alert; the error
// is still returned to the caller.
func (c *Controller) Translate(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Loading {
		c.mu.Unlock()
		return ErrBusy
	}

	req := translation.Request{
		InputLanguage:  c.state.InputLanguage,
		OutputLanguage: c.state.OutputLanguage,
		InputCode:      c.state.InputCode,
	}
	if err := req.Validate(); err != nil {
		c.view.Alert(err.Error())
		c.mu.Unlock()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.cycle++
	cycle := c.cycle
	c.cancel = cancel
	c.state.Loading = true
	c.state.OutputCode = ""
	c.view.Render(c.state)
	c.mu.Unlock()

	stream, err := c.translator.Translate(ctx, req)
	if err != nil {
		c.finish(cycle, FailureMessage)
		return fmt.Errorf("translation request failed: %w", err)
	}
	defer stream.Close()

	delivered := 0
	err = translation.Drain(stream, func(chunk string) error {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.cycle != cycle {
			return errSuperseded
		}
		c.state.OutputCode += chunk
		delivered++
		c.view.Render(c.state)
		return nil
	})

	switch {
	case err == nil:
		c.finish(cycle, "")
		return nil
	case errors.Is(err, errSuperseded):
		c.finish(cycle, "")
		return context.Canceled
	case ctx.Err() != nil:
		c.finish(cycle, "")
		return ctx.Err()
	case delivered == 0:
		// an unreadable body is a transport failure
		c.finish(cycle, FailureMessage)
		return fmt.Errorf("translation response unreadable: %w", err)
	default:
		c.finish(cycle, "")
		return fmt.Errorf("translation stream interrupted: %w", err)
	}
}

// finish ends cycle if it is still current
func (c *Controller) finish(cycle uint64, alert string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cycle != cycle {
		return
	}

	c.state.Loading = false
	c.cancel = nil
	c.view.Render(c.state)
	if alert != "" {
		c.view.Alert(alert)
	}
}

// abortLocked cancels the in-flight cycle and detaches its reader
func (c *Controller) abortLocked() bool {
	if !c.state.Loading {
		return false
	}

	c.cycle++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state.Loading = false
	return true
}
