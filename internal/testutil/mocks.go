package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"

	"codeberg.org/snonux/codetranslator/internal/translation"
)

// SliceStream is a translation.Stream over a fixed list of chunks. When
// Err is set it is returned after the chunks instead of io.EOF.
type SliceStream struct {
	Chunks []string
	Err    error

	// Gate, when non-nil, must deliver one value before each chunk
	Gate chan struct{}

	mu     sync.Mutex
	closed bool
	ctx    context.Context
}

// Next returns the next chunk
func (s *SliceStream) Next() (string, error) {
	if s.Gate != nil && len(s.Chunks) > 0 {
		ctx := s.ctx
		if ctx == nil {
			ctx = context.Background()
		}
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", fmt.Errorf("read on closed stream")
	}
	if len(s.Chunks) == 0 {
		if s.Err != nil {
			return "", s.Err
		}
		return "", io.EOF
	}

	chunk := s.Chunks[0]
	s.Chunks = s.Chunks[1:]
	return chunk, nil
}

// Close marks the stream closed
func (s *SliceStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close was called
func (s *SliceStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// MockProvider mocks a completion provider
type MockProvider struct {
	ProviderName string
	Chunks       []string
	OpenErr      error // returned from Stream before any chunk
	StreamErr    error // returned after Chunks instead of io.EOF
	Gate         chan struct{}

	mu      sync.Mutex
	prompts []string
	streams []*SliceStream
}

// Stream records prompt and returns a stream over Chunks
func (m *MockProvider) Stream(ctx context.Context, prompt string) (translation.Stream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, prompt)
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}

	chunks := make([]string, len(m.Chunks))
	copy(chunks, m.Chunks)
	s := &SliceStream{Chunks: chunks, Err: m.StreamErr, Gate: m.Gate, ctx: ctx}
	m.streams = append(m.streams, s)
	return s, nil
}

// Name returns the provider name
func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// IsAvailable always succeeds
func (m *MockProvider) IsAvailable() error {
	return nil
}

// Prompts returns every prompt received so far
func (m *MockProvider) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// Streams returns every stream handed out so far
func (m *MockProvider) Streams() []*SliceStream {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*SliceStream, len(m.streams))
	copy(out, m.streams)
	return out
}

// MockTranslator mocks the client side of the relay
type MockTranslator struct {
	Chunks    []string
	Err       error // returned before any chunk, like a failed HTTP call
	StreamErr error
	Gate      chan struct{}

	mu       sync.Mutex
	requests []translation.Request
	streams  []*SliceStream
}

// Translate records req and returns a stream over Chunks
func (m *MockTranslator) Translate(ctx context.Context, req translation.Request) (translation.Stream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if m.Err != nil {
		return nil, m.Err
	}

	chunks := make([]string, len(m.Chunks))
	copy(chunks, m.Chunks)
	s := &SliceStream{Chunks: chunks, Err: m.StreamErr, Gate: m.Gate, ctx: ctx}
	m.streams = append(m.streams, s)
	return s, nil
}

// Requests returns every request sent so far
func (m *MockTranslator) Requests() []translation.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]translation.Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Streams returns every stream handed out so far
func (m *MockTranslator) Streams() []*SliceStream {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*SliceStream, len(m.streams))
	copy(out, m.streams)
	return out
}
