package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-mdt/internal/commands"
	statuscmd "github.com/goliatone/go-mdt/internal/commands/status"
	"github.com/goliatone/go-mdt/internal/logging"
	"github.com/goliatone/go-mdt/internal/report"
	"github.com/goliatone/go-mdt/internal/runtimeconfig"
)

func newStatusCommand(opts *options, streams Streams) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the tag items found in the notes directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd.Context(), opts, streams)
		},
	}
}

func runStatus(ctx context.Context, opts *options, streams Streams) error {
	if ctx == nil {
		ctx = context.Background()
	}

	configPath := opts.configPath
	if strings.TrimSpace(configPath) == "" {
		configPath = runtimeconfig.DefaultPath()
	}
	cfg, loadErr := runtimeconfig.Load(configPath)
	if loadErr != nil && !errors.Is(loadErr, runtimeconfig.ErrConfigUnreadable) {
		return loadErr
	}

	if dir := strings.TrimSpace(opts.notesDir); dir != "" {
		cfg.NotesDirectory = runtimeconfig.ExpandPath(dir)
	}
	if opts.debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	provider, closeLog, err := newLoggerProvider(cfg, streams.Err)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	logger := logging.ModuleLogger(provider, "")
	if loadErr != nil {
		logger.Warn("config.load.fallback_to_defaults", "config", configPath, "error", loadErr)
	}

	mode := report.ColorAuto
	if opts.noColor {
		mode = report.ColorNever
	}
	renderer := report.NewRenderer(streams.Out,
		report.WithColorMode(mode),
		report.WithLogger(logging.ReportLogger(provider)),
	)

	handler := statuscmd.NewStatusHandler(statuscmd.Dependencies{
		Renderer:   renderer,
		Logger:     commands.CommandLogger(provider, statuscmd.StatusCommand{}),
		Aggregator: aggregatorOptions(cfg, logging.NotesLogger(provider)),
	})

	return handler.Execute(ctx, statuscmd.StatusCommand{
		NotesDirectory: cfg.NotesDirectory,
		File:           runtimeconfig.ExpandPath(opts.file),
		RunID:          uuid.New(),
	})
}
