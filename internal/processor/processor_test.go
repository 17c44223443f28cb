package processor

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"codeberg.org/snonux/codetranslator/internal/cli"
	"codeberg.org/snonux/codetranslator/internal/controller"
	"codeberg.org/snonux/codetranslator/internal/relay"
	"codeberg.org/snonux/codetranslator/internal/testutil"
)

// newTestProcessor returns a processor talking to a relay backed by prov
func newTestProcessor(t *testing.T, prov *testutil.MockProvider) (*Processor, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	server := httptest.NewServer(relay.NewServer(prov, nil).Handler())
	t.Cleanup(server.Close)

	var stdout, stderr bytes.Buffer
	p := &Processor{
		flags:     cli.NewFlags(),
		serverURL: server.URL,
		stdin:     strings.NewReader(""),
		stdout:    &stdout,
		stderr:    &stderr,
	}
	return p, &stdout, &stderr
}

func TestNewProcessor(t *testing.T) {
	flags := cli.NewFlags()
	p := NewProcessor(flags)

	if p == nil {
		t.Fatal("NewProcessor returned nil")
	}
	if p.flags != flags {
		t.Error("Processor flags not set correctly")
	}
	if p.serverURL == "" {
		t.Error("Server URL not resolved")
	}
}

func TestListLanguages(t *testing.T) {
	var out bytes.Buffer
	p := &Processor{flags: cli.NewFlags(), stdout: &out}

	if err := p.ListLanguages(); err != nil {
		t.Fatalf("ListLanguages failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	for _, want := range []string{"JavaScript", "Python", "Natural Language"} {
		found := false
		for _, line := range lines {
			if line == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected %q in language list", want)
		}
	}
}

func TestListModels_NoAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	p := &Processor{flags: cli.NewFlags(), stdout: &bytes.Buffer{}}

	if err := p.ListModels(context.Background()); err == nil {
		t.Error("Expected error without API key")
	}
}

func TestListModels_UsesConfiguredBaseURL(t *testing.T) {
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	t.Cleanup(func() {
		*viper.GetViper() = *originalConfig
	})
	viper.Reset()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[{"id":"gpt-4o-mini","object":"model"},{"id":"whisper-1","object":"model"}]}`))
	}))
	t.Cleanup(server.Close)

	t.Setenv("OPENAI_API_KEY", "sk-test")
	viper.Set("provider.openai_base_url", server.URL+"/v1")

	var out bytes.Buffer
	p := &Processor{flags: cli.NewFlags(), stdout: &out}

	if err := p.ListModels(context.Background()); err != nil {
		t.Fatalf("ListModels failed: %v", err)
	}
	testutil.AssertContains(t, out.String(), "gpt-4o-mini (default)")
	if strings.Contains(out.String(), "whisper-1") {
		t.Errorf("Non-chat model listed: %q", out.String())
	}
}

func TestTranslateFile_FromFile(t *testing.T) {
	prov := &testutil.MockProvider{Chunks: []string{"def greet():\n", "    print('hi')"}}
	p, stdout, stderr := newTestProcessor(t, prov)
	p.flags.From = "javascript"
	p.flags.To = "python"

	path := filepath.Join(t.TempDir(), "src", "greet.js")
	testutil.CreateTestFile(t, path, []byte("function greet() { console.log('hi') }"))

	if err := p.TranslateFile(context.Background(), path); err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}

	if got := stdout.String(); got != "def greet():\n    print('hi')\n" {
		t.Errorf("stdout = %q", got)
	}
	if stderr.Len() != 0 {
		t.Errorf("Unexpected stderr: %q", stderr.String())
	}

	prompts := prov.Prompts()
	if len(prompts) != 1 {
		t.Fatalf("Expected one prompt, got %d", len(prompts))
	}
	testutil.AssertContains(t, prompts[0], "JavaScript")
	testutil.AssertContains(t, prompts[0], "Python")
	testutil.AssertContains(t, prompts[0], "console.log('hi')")
}

func TestTranslateFile_FromStdin(t *testing.T) {
	prov := &testutil.MockProvider{Chunks: []string{"fn main() {}\n"}}
	p, stdout, _ := newTestProcessor(t, prov)
	p.flags.From = "Go"
	p.flags.To = "Rust"
	p.stdin = strings.NewReader("func main() {}")

	if err := p.TranslateFile(context.Background(), "-"); err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}

	if got := stdout.String(); got != "fn main() {}\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestTranslateFile_Errors(t *testing.T) {
	tests := []struct {
		name      string
		from, to  string
		stdin     string
		wantAlert string
		wantErr   string
	}{
		{name: "unknown input language", from: "Klingon", to: "Go", stdin: "x", wantErr: "unsupported input language"},
		{name: "unknown output language", from: "Go", to: "Klingon", stdin: "x", wantErr: "unsupported output language"},
		{name: "same language", from: "Go", to: "go", stdin: "x", wantAlert: "Please select different languages."},
		{name: "empty input", from: "Go", to: "Rust", stdin: "", wantAlert: "Please enter some code."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prov := &testutil.MockProvider{Chunks: []string{"never"}}
			p, stdout, stderr := newTestProcessor(t, prov)
			p.flags.From = tt.from
			p.flags.To = tt.to
			p.stdin = strings.NewReader(tt.stdin)

			err := p.TranslateFile(context.Background(), "")
			if err == nil {
				t.Fatal("Expected error")
			}
			if tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Error %q should contain %q", err, tt.wantErr)
			}
			if tt.wantAlert != "" && strings.TrimSpace(stderr.String()) != tt.wantAlert {
				t.Errorf("stderr = %q, want %q", stderr.String(), tt.wantAlert)
			}
			if stdout.Len() != 0 {
				t.Errorf("Nothing should be written to stdout, got %q", stdout.String())
			}
			if len(prov.Prompts()) != 0 {
				t.Error("Provider must not be called")
			}
		})
	}
}

func TestTranslateFile_RelayFailure(t *testing.T) {
	prov := &testutil.MockProvider{OpenErr: context.DeadlineExceeded}
	p, stdout, stderr := newTestProcessor(t, prov)
	p.stdin = strings.NewReader("console.log(1)")

	if err := p.TranslateFile(context.Background(), ""); err == nil {
		t.Fatal("Expected error from failing relay")
	}
	if stdout.Len() != 0 {
		t.Errorf("No partial output expected, got %q", stdout.String())
	}
	if strings.TrimSpace(stderr.String()) != controller.FailureMessage {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestTranslateFile_MissingFile(t *testing.T) {
	p, _, _ := newTestProcessor(t, &testutil.MockProvider{})

	err := p.TranslateFile(context.Background(), filepath.Join(t.TempDir(), "missing.js"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestStreamView(t *testing.T) {
	var out, errOut bytes.Buffer
	v := &streamView{out: &out, errOut: &errOut}

	v.Render(controller.State{OutputCode: ""})
	v.Render(controller.State{OutputCode: "a"})
	v.Render(controller.State{OutputCode: "ab"})
	v.Render(controller.State{OutputCode: "ab"})
	v.Render(controller.State{OutputCode: ""})
	v.Render(controller.State{OutputCode: "c\n"})
	v.Alert("oops")

	if out.String() != "abc\n" {
		t.Errorf("out = %q, want %q", out.String(), "abc\n")
	}
	if !v.endsWithNewline {
		t.Error("endsWithNewline should track the last write")
	}
	if errOut.String() != "oops\n" {
		t.Errorf("errOut = %q", errOut.String())
	}
}
