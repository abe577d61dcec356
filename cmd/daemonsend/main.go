package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/rescp17/daemonSend/internal/config"
	"github.com/rescp17/daemonSend/pkg/sender"
	"github.com/rescp17/daemonSend/pkg/ui"
	"github.com/rescp17/daemonSend/pkg/upload"
)

// flags holds command line values that override the config file.
type flags struct {
	configPath string
	endpoint   string
	logFile    string
	timeout    time.Duration
	exclusive  bool
}

func main() {
	var f flags
	cmd := &cobra.Command{
		Use:   "daemonsend",
		Short: "Send a file to the sync daemon",
	}

	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&f.endpoint, "url", config.DefaultEndpoint, "Daemon upload URL")
	cmd.PersistentFlags().StringVar(&f.logFile, "log-file", config.DefaultLogFile, "File to write logs to")
	cmd.PersistentFlags().DurationVar(&f.timeout, "timeout", 0, "Upload timeout, 0 for none")
	cmd.PersistentFlags().BoolVar(&f.exclusive, "exclusive", false, "Refuse to send while an upload is in flight")

	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Open the send form",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := setup(cmd, f)
			if err != nil {
				return err
			}
			defer closeLog()
			return runForm(cmd.Context(), cfg)
		},
	}

	var recipient string
	pushCmd := &cobra.Command{
		Use:   "push FILE",
		Short: "Send one file without the form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := setup(cmd, f)
			if err != nil {
				return err
			}
			defer closeLog()
			return runPush(cmd.Context(), newUploader(cfg), args[0], recipient, cmd.OutOrStdout())
		},
	}
	pushCmd.Flags().StringVar(&recipient, "to", "", "Recipient ID")

	cmd.AddCommand(sendCmd)
	cmd.AddCommand(pushCmd)

	if err := fang.Execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}

// setup loads the config, applies flags the user set, and sends logs to the log file.
func setup(cmd *cobra.Command, f flags) (*config.Config, func(), error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, nil, err
	}
	fs := cmd.Flags()
	if fs.Changed("url") {
		cfg.Endpoint = f.endpoint
	}
	if fs.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if fs.Changed("timeout") {
		cfg.Timeout = f.timeout
	}
	if fs.Changed("exclusive") {
		cfg.Exclusive = f.exclusive
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug})))
	slog.Info("Starting", "endpoint", cfg.Endpoint, "timeout", cfg.Timeout, "exclusive", cfg.Exclusive)

	return cfg, func() {
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}, nil
}

func newUploader(cfg *config.Config) *upload.Client {
	return upload.NewClient(cfg.Endpoint, cfg.Timeout)
}

func controllerOptions(cfg *config.Config) []upload.Option {
	if cfg.Exclusive {
		return []upload.Option{upload.WithExclusive()}
	}
	return nil
}

// runForm runs the interactive form until the user quits, then waits for
// the app to wind down.
func runForm(ctx context.Context, cfg *config.Config) error {
	wd, err := os.Getwd()
	if err != nil {
		slog.Warn("Could not get working directory", "error", err)
	}

	app := sender.NewApp(newUploader(cfg), controllerOptions(cfg)...)
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx)
	}()

	p := tea.NewProgram(ui.InitialModel(app, wd), tea.WithContext(ctx))
	_, runErr := p.Run()
	cancel()
	if err := <-done; err != nil {
		slog.Error("App stopped with error", "error", err)
	}
	if runErr != nil {
		return fmt.Errorf("alas, there's been an error: %w", runErr)
	}
	return nil
}
