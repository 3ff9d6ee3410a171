package main

import (
	"context"
	"io"
	"os"

	"aiupstart.com/shadergen/internal/agent"
	"aiupstart.com/shadergen/internal/config"
	"aiupstart.com/shadergen/internal/llm"
	"aiupstart.com/shadergen/internal/utils"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "shadergen.yaml"

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg       *config.Config
	logCloser io.Closer
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "shadergen",
		Short:         "Generate GLSL shader pairs from natural-language effect descriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		}),
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Configuration file path (default ./"+defaultConfigPath+" if present)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newGenerateCommand(a))
	rootCmd.AddCommand(newChatCommand(a))
	return rootCmd
}

func (a *app) setup() error {
	path := a.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	closer, err := utils.SetupLogger(utils.LogOptions{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Console: cfg.Log.Console,
		Out:     os.Stderr,
	})
	if err != nil {
		return err
	}
	a.logCloser = closer
	if err := cfg.Validate(); err != nil {
		_ = a.closeLog()
		return err
	}
	a.cfg = cfg
	return nil
}

// run wraps a subcommand so the log file is closed whether or not it fails.
// Cobra skips post-run hooks after an error.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if cerr := a.closeLog(); err == nil {
				err = cerr
			}
		}()
		return fn(cmd, args)
	}
}

func (a *app) closeLog() error {
	if a.logCloser == nil {
		return nil
	}
	c := a.logCloser
	a.logCloser = nil
	return c.Close()
}

func (a *app) newAgent(ctx context.Context) (*agent.ShaderAgent, error) {
	client, err := llm.NewClient(ctx, a.cfg.LLM)
	if err != nil {
		return nil, err
	}
	return agent.NewShaderAgent("Shader", client, a.cfg.Prompt.Style, nil), nil
}
