package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-mdt/internal/logging/console"
	"github.com/goliatone/go-mdt/internal/logging/gologger"
	"github.com/goliatone/go-mdt/internal/markdown"
	"github.com/goliatone/go-mdt/internal/notes"
	"github.com/goliatone/go-mdt/internal/runtimeconfig"
	"github.com/goliatone/go-mdt/internal/tags"
	"github.com/goliatone/go-mdt/pkg/interfaces"
)

// newLoggerProvider builds the provider selected by cfg. The returned close
// function releases the log file, if one was opened.
func newLoggerProvider(cfg runtimeconfig.Config, stderr io.Writer) (interfaces.LoggerProvider, func() error, error) {
	noop := func() error { return nil }

	if cfg.LoggingProvider() == "gologger" {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, noop, err
		}
		return provider, noop, nil
	}

	level, ok := console.ParseLevel(cfg.Logging.Level)
	if !ok {
		return nil, noop, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingLevelInvalid, cfg.Logging.Level)
	}

	writer := stderr
	closer := noop
	if path := strings.TrimSpace(cfg.Logging.File); path != "" {
		file, err := openLogFile(path)
		if err != nil {
			return nil, noop, err
		}
		writer = file
		closer = file.Close
	}

	return console.NewProvider(console.Options{
		Writer:   writer,
		MinLevel: &level,
	}), closer, nil
}

// openLogFile opens path for appending, creating it and its directory when
// missing.
func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

func extractorOptions(cfg runtimeconfig.TagsConfig) []tags.Option {
	var opts []tags.Option
	if len(cfg.Kinds) > 0 {
		kinds := make([]tags.Kind, 0, len(cfg.Kinds))
		for _, k := range cfg.Kinds {
			kinds = append(kinds, tags.Kind{
				Type:   tags.TagType(strings.ToLower(strings.TrimSpace(k.Type))),
				Prefix: k.Prefix,
			})
		}
		opts = append(opts, tags.WithKinds(kinds...))
	}
	if cfg.LegacyLookahead {
		opts = append(opts, tags.WithLegacyLookahead())
	}
	if cfg.LegacyListCapture {
		opts = append(opts, tags.WithLegacyListCapture())
	}
	return opts
}

func aggregatorOptions(cfg runtimeconfig.Config, logger interfaces.Logger) []notes.Option {
	return []notes.Option{
		notes.WithLogger(logger),
		notes.WithExtractorOptions(extractorOptions(cfg.Tags)...),
		notes.WithParseOptions(interfaces.ParseOptions{Extensions: cfg.Markdown.Extensions}),
		notes.WithLoaderConfig(markdown.LoaderConfig{Extension: cfg.Markdown.FileExtension}),
	}
}
