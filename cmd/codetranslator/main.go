package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/codetranslator/internal/cli"
	"codeberg.org/snonux/codetranslator/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)
	serveCmd := cli.CreateServeCommand(flags)
	translateCmd := cli.CreateTranslateCommand(flags)
	rootCmd.AddCommand(serveCmd, translateCmd)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd.Context(), flags)
	}
	serveCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return processor.NewProcessor(flags).Serve(cmd.Context())
	}
	translateCmd.RunE = func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return processor.NewProcessor(flags).TranslateFile(cmd.Context(), path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, flags *cli.Flags) error {
	proc := processor.NewProcessor(flags)

	// Handle --list-languages flag
	if flags.ListLanguages {
		return proc.ListLanguages()
	}

	// Handle --list-models flag
	if flags.ListModels {
		return proc.ListModels(ctx)
	}

	// No mode selected - launch GUI mode by default
	return proc.RunGUIMode()
}
