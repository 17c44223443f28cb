package cli

import (
	"codeberg.org/snonux/codetranslator/internal/client"
	"codeberg.org/snonux/codetranslator/internal/languages"
	"codeberg.org/snonux/codetranslator/internal/relay"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile       string
	ServerURL     string
	ListLanguages bool
	ListModels    bool

	// serve flags
	Addr           string
	Provider       string
	Model          string
	OpenAIBaseURL  string
	AllowedOrigins []string
	Debug          bool

	// translate flags
	From string
	To   string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		ServerURL: client.DefaultServerURL,
		Addr:      relay.DefaultConfig().Addr,
		Provider:  "openai",
		From:      languages.DefaultInput,
		To:        languages.DefaultOutput,
	}
}
