package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/codetranslator/internal"
	"codeberg.org/snonux/codetranslator/internal/client"
	"codeberg.org/snonux/codetranslator/internal/provider"
	"codeberg.org/snonux/codetranslator/internal/relay"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "codetranslator",
		Short: "Streaming code translator",
		Long: `codetranslator translates source code between programming languages
using a large language model. Translations stream back as they are produced.

Examples:
  codetranslator                                  # Launch interactive GUI (default)
  codetranslator serve                            # Run the translation relay on :8080
  codetranslator translate --to Go main.py        # Translate a file via the relay
  cat app.js | codetranslator translate --to Rust # Translate stdin`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

// CreateServeCommand creates the command running the translation relay
func CreateServeCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the translation relay HTTP server",
		Args:  cobra.NoArgs,
	}

	cmd.Flags().StringVar(&flags.Addr, "addr", flags.Addr, "Listen address")
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Completion provider: openai or gemini")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Model name (default: provider specific)")
	cmd.Flags().StringVar(&flags.OpenAIBaseURL, "openai-base-url", "", "OpenAI compatible API base URL")
	cmd.Flags().StringSliceVar(&flags.AllowedOrigins, "allowed-origins", nil, "CORS origins (default: any)")
	cmd.Flags().BoolVar(&flags.Debug, "debug", false, "Run gin in debug mode")

	viper.BindPFlag("relay.addr", cmd.Flags().Lookup("addr"))
	viper.BindPFlag("relay.allowed_origins", cmd.Flags().Lookup("allowed-origins"))
	viper.BindPFlag("relay.debug", cmd.Flags().Lookup("debug"))
	viper.BindPFlag("provider.name", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("provider.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("provider.openai_base_url", cmd.Flags().Lookup("openai-base-url"))

	return cmd
}

// CreateTranslateCommand creates the command translating a file or stdin
func CreateTranslateCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate [file|-]",
		Short: "Translate a file (or stdin) through the relay",
		Args:  cobra.MaximumNArgs(1),
	}

	cmd.Flags().StringVar(&flags.From, "from", flags.From, "Input language")
	cmd.Flags().StringVar(&flags.To, "to", flags.To, "Output language")

	return cmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.codetranslator.yaml)")
	cmd.PersistentFlags().StringVar(&flags.ServerURL, "server", flags.ServerURL, "Translation relay URL")

	// Local flags
	cmd.Flags().BoolVar(&flags.ListLanguages, "list-languages", false, "List supported languages")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI chat models for the current API key")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("server.url", cmd.PersistentFlags().Lookup("server"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".codetranslator" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".codetranslator")
	}

	// Environment variables
	viper.SetEnvPrefix("CODETRANSLATOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("provider.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("provider.gemini_key")
}

// OpenAIBaseURL returns the configured OpenAI compatible endpoint, or
// empty for the public API
func OpenAIBaseURL() string {
	return viper.GetString("provider.openai_base_url")
}

// ProviderConfig assembles the provider configuration from flags, config
// file and environment, in that order of precedence.
func ProviderConfig() *provider.Config {
	config := provider.DefaultProviderConfig()
	if name := viper.GetString("provider.name"); name != "" {
		config.Provider = name
	}
	config.Model = viper.GetString("provider.model")
	config.OpenAIBaseURL = OpenAIBaseURL()
	config.OpenAIKey = GetOpenAIKey()
	config.GeminiKey = GetGeminiKey()
	return config
}

// RelayConfig assembles the relay server configuration
func RelayConfig() *relay.Config {
	config := relay.DefaultConfig()
	if addr := viper.GetString("relay.addr"); addr != "" {
		config.Addr = addr
	}
	config.AllowedOrigins = viper.GetStringSlice("relay.allowed_origins")
	config.Debug = viper.GetBool("relay.debug")
	return config
}

// ServerURL returns the relay URL clients should talk to
func ServerURL() string {
	if url := viper.GetString("server.url"); url != "" {
		return url
	}
	return client.DefaultServerURL
}
