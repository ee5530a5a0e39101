package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-mdt/internal/markdown"
)

var ErrNotesDirectoryRequired = errors.New("mdt config: notes directory is required")
var ErrLoggingProviderUnknown = errors.New("mdt config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("mdt config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("mdt config: logging format is invalid")
var ErrLoggingFileUnsupported = errors.New("mdt config: logging file is only supported by the console provider")
var ErrLoggingFocusUnsupported = errors.New("mdt config: logging focus is only supported by the gologger provider")
var ErrMarkdownExtensionUnknown = errors.New("mdt config: markdown extension is unknown")
var ErrTagKindInvalid = errors.New("mdt config: tag kind requires a type and a prefix")

// ErrConfigUnreadable reports a config file that exists but could not be
// read or decoded. Load still returns usable defaults alongside it.
var ErrConfigUnreadable = errors.New("mdt config: config file could not be read")

// Config aggregates the settings of the mdt command.
type Config struct {
	NotesDirectory string         `mapstructure:"notes_directory"`
	Logging        LoggingConfig  `mapstructure:"logging"`
	Markdown       MarkdownConfig `mapstructure:"markdown"`
	Tags           TagsConfig     `mapstructure:"tags"`
}

// LoggingConfig selects the logging provider and its options.
type LoggingConfig struct {
	Provider  string `mapstructure:"provider"`
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	File      string `mapstructure:"file"`
	AddSource bool   `mapstructure:"add_source"`
	// Focus limits gologger output to the named modules, for example
	// "notes" or "commands.status".
	Focus []string `mapstructure:"focus"`
}

// MarkdownConfig controls how notes are discovered and parsed.
type MarkdownConfig struct {
	Extensions    []string `mapstructure:"extensions"`
	FileExtension string   `mapstructure:"file_extension"`
}

// TagsConfig controls the tag extractor.
type TagsConfig struct {
	// Kinds replaces the built-in TODO kind when non-empty.
	Kinds             []TagKindConfig `mapstructure:"kinds"`
	LegacyLookahead   bool            `mapstructure:"legacy_lookahead"`
	LegacyListCapture bool            `mapstructure:"legacy_list_capture"`
}

// TagKindConfig declares one recognised tag prefix.
type TagKindConfig struct {
	Type   string `mapstructure:"type"`
	Prefix string `mapstructure:"prefix"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		NotesDirectory: defaultNotesDirectory(),
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Markdown: MarkdownConfig{
			Extensions:    []string{},
			FileExtension: markdown.DefaultExtension,
		},
	}
}

// DefaultPath is the config file read when none is given explicitly.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "mdt", "mdt.yaml")
	}
	return filepath.Join(home, ".config", "mdt", "mdt.yaml")
}

func defaultNotesDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "notes" + string(filepath.Separator)
	}
	return filepath.Join(home, "notes") + string(filepath.Separator)
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.NotesDirectory) == "" {
		return ErrNotesDirectoryRequired
	}
	if provider := normalizeProvider(cfg.Logging.Provider); provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if normalizeProvider(cfg.Logging.Provider) == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
		if strings.TrimSpace(cfg.Logging.File) != "" {
			return ErrLoggingFileUnsupported
		}
	} else if len(cfg.Logging.Focus) > 0 {
		return ErrLoggingFocusUnsupported
	}
	for _, ext := range cfg.Markdown.Extensions {
		if !markdown.KnownExtension(ext) {
			return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, ext)
		}
	}
	for i, kind := range cfg.Tags.Kinds {
		if strings.TrimSpace(kind.Type) == "" || strings.TrimSpace(kind.Prefix) == "" {
			return fmt.Errorf("%w: kinds[%d]", ErrTagKindInvalid, i)
		}
	}
	return nil
}

// LoggingProvider returns the normalised provider name, defaulting to console.
func (cfg Config) LoggingProvider() string {
	if provider := normalizeProvider(cfg.Logging.Provider); provider != "" {
		return provider
	}
	return "console"
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
