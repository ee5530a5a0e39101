package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "MDT"

// Load reads the YAML config at path over DefaultConfig. Environment
// variables prefixed with MDT_ (MDT_NOTES_DIRECTORY, MDT_LOGGING_LEVEL, ...)
// override file values.
//
// A missing file is not an error. A file that exists but cannot be read or
// decoded yields the defaults together with an error wrapping
// ErrConfigUnreadable, so callers may warn and continue.
func Load(path string) (Config, error) {
	defaults := DefaultConfig()

	v := newViper(defaults)

	path = ExpandPath(path)
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return envOnly(defaults), fmt.Errorf("%w: %s: %v", ErrConfigUnreadable, path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return envOnly(defaults), fmt.Errorf("%w: %s: %v", ErrConfigUnreadable, path, err)
		}
	}

	cfg := defaults
	if err := v.Unmarshal(&cfg); err != nil {
		return envOnly(defaults), fmt.Errorf("%w: %s: %v", ErrConfigUnreadable, path, err)
	}
	cfg.NotesDirectory = ExpandPath(cfg.NotesDirectory)
	cfg.Logging.File = ExpandPath(cfg.Logging.File)
	return cfg, nil
}

// envOnly applies environment overrides to defaults when the file is unusable.
func envOnly(defaults Config) Config {
	cfg := defaults
	if err := newViper(defaults).Unmarshal(&cfg); err != nil {
		return defaults
	}
	cfg.NotesDirectory = ExpandPath(cfg.NotesDirectory)
	cfg.Logging.File = ExpandPath(cfg.Logging.File)
	return cfg
}

func newViper(defaults Config) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys must be known to viper for AutomaticEnv to reach Unmarshal.
	v.SetDefault("notes_directory", defaults.NotesDirectory)
	v.SetDefault("logging.provider", defaults.Logging.Provider)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.add_source", defaults.Logging.AddSource)
	v.SetDefault("markdown.extensions", defaults.Markdown.Extensions)
	v.SetDefault("markdown.file_extension", defaults.Markdown.FileExtension)
	v.SetDefault("tags.legacy_lookahead", defaults.Tags.LegacyLookahead)
	v.SetDefault("tags.legacy_list_capture", defaults.Tags.LegacyListCapture)
	return v
}

// ExpandPath expands environment variables and a leading "~" in path.
func ExpandPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	path = os.ExpandEnv(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	expanded := filepath.Join(home, path[1:])
	if strings.HasSuffix(path, "/") && path != "~/" {
		expanded += string(filepath.Separator)
	}
	return expanded
}
