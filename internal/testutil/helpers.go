package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// AssertContains checks if s contains substring
func AssertContains(t *testing.T, s, substring string) {
	t.Helper()

	if !strings.Contains(s, substring) {
		t.Errorf("Expected %q to contain %q", s, substring)
	}
}

// OpenAIStreamServer fakes the OpenAI chat completion endpoint
type OpenAIStreamServer struct {
	*httptest.Server

	mu     sync.Mutex
	bodies []map[string]any
}

// NewOpenAIStreamServer starts a server answering /v1/chat/completions
// with chunks as server-sent events. A non-zero status answers every
// request with that status and an OpenAI error body instead.
func NewOpenAIStreamServer(t *testing.T, status int, chunks ...string) *OpenAIStreamServer {
	t.Helper()

	s := &OpenAIStreamServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		s.mu.Lock()
		s.bodies = append(s.bodies, body)
		s.mu.Unlock()

		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}

		if status != 0 && status != http.StatusOK {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			fmt.Fprintf(w, `{"error":{"message":"fake upstream failure","type":"server_error","code":"%d"}}`, status)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		flusher, _ := w.(http.Flusher)

		fmt.Fprint(w, "data: {\"id\":\"chatcmpl-1\",\"object\":\"chat.completion.chunk\",\"choices\":[{\"index\":0,\"delta\":{\"role\":\"assistant\"}}]}\n\n")
		for _, chunk := range chunks {
			content, _ := json.Marshal(chunk)
			fmt.Fprintf(w, "data: {\"id\":\"chatcmpl-1\",\"object\":\"chat.completion.chunk\",\"choices\":[{\"index\":0,\"delta\":{\"content\":%s}}]}\n\n", content)
			if flusher != nil {
				flusher.Flush()
			}
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	t.Cleanup(s.Close)

	return s
}

// BaseURL returns the value to use as the OpenAI client base URL
func (s *OpenAIStreamServer) BaseURL() string {
	return s.URL + "/v1"
}

// RequestBodies returns the decoded JSON bodies received so far
func (s *OpenAIStreamServer) RequestBodies() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// GeminiStreamServer fakes the Gemini streamGenerateContent endpoint
type GeminiStreamServer struct {
	*httptest.Server

	mu    sync.Mutex
	paths []string
}

// NewGeminiStreamServer starts a server answering streamGenerateContent
// with one server-sent event per chunk. An empty chunk is sent as a
// response without text. A non-zero, non-200 status answers with a Google
// API error body instead.
func NewGeminiStreamServer(t *testing.T, status int, chunks ...string) *GeminiStreamServer {
	t.Helper()

	s := &GeminiStreamServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.paths = append(s.paths, r.URL.Path)
		s.mu.Unlock()

		if !strings.HasSuffix(r.URL.Path, ":streamGenerateContent") {
			http.NotFound(w, r)
			return
		}

		if status != 0 && status != http.StatusOK {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			fmt.Fprintf(w, `{"error":{"code":%d,"message":"fake upstream failure","status":"INTERNAL"}}`, status)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		flusher, _ := w.(http.Flusher)

		for _, chunk := range chunks {
			parts := "[]"
			if chunk != "" {
				text, _ := json.Marshal(chunk)
				parts = fmt.Sprintf(`[{"text":%s}]`, text)
			}
			fmt.Fprintf(w, "data: {\"candidates\":[{\"content\":{\"role\":\"model\",\"parts\":%s},\"index\":0}]}\r\n\r\n", parts)
			if flusher != nil {
				flusher.Flush()
			}
		}
	}))
	t.Cleanup(s.Close)

	return s
}

// Paths returns the request paths received so far
func (s *GeminiStreamServer) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...)
}

// CaptureOutput captures stdout/stderr during test execution
func CaptureOutput(t *testing.T, f func()) (stdout, stderr string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	// Drain concurrently so large outputs cannot block on a full pipe
	var wg sync.WaitGroup
	var outBytes, errBytes []byte
	wg.Add(2)
	go func() { defer wg.Done(); outBytes, _ = io.ReadAll(rOut) }()
	go func() { defer wg.Done(); errBytes, _ = io.ReadAll(rErr) }()

	defer func() {
		os.Stdout = oldStdout
		os.Stderr = oldStderr
	}()

	f()

	wOut.Close()
	wErr.Close()
	wg.Wait()

	return string(outBytes), string(errBytes)
}
