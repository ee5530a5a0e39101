package gologger

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-mdt/internal/logging"
	"github.com/goliatone/go-mdt/pkg/interfaces"
)

// rootName is the go-logger name of the mdt root logger. Module loggers are
// its children ("mdt.notes", "mdt.commands.status").
const rootName = "mdt"

// ErrUnsupportedFormat reports a format go-logger cannot produce.
var ErrUnsupportedFormat = errors.New("gologger: unsupported format")

// Config selects the go-logger level, output format and module focus.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	// Focus limits output to the named modules. Short names such as "notes"
	// are qualified to "mdt.notes".
	Focus []string
}

// Provider hands out go-logger module loggers named under "mdt".
type Provider struct {
	root *glog.BaseLogger
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider builds the go-logger root for mdt. JSON is the default format.
// go-logger writes to standard output.
func NewProvider(cfg Config) (*Provider, error) {
	format, err := formatOption(cfg.Format)
	if err != nil {
		return nil, err
	}

	opts := []glog.Option{glog.WithName(rootName), format}
	if level := normalizeLevel(cfg.Level); level != "" {
		opts = append(opts, glog.WithLevel(level))
	}
	if cfg.AddSource {
		opts = append(opts, glog.WithAddSource(true))
	}

	root := glog.NewLogger(opts...)
	if focus := moduleNames(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

// GetLogger returns the logger for module. Names outside the "mdt" tree are
// moved into it, so "notes" and "mdt.notes" resolve to the same logger.
func (p *Provider) GetLogger(module string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	name := qualify(module)
	if name == rootName {
		return wrap(p.root)
	}
	return wrap(p.root.GetLogger(name))
}

func formatOption(format string) (glog.Option, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return glog.WithLoggerTypeJSON(), nil
	case "console":
		return glog.WithLoggerTypeConsole(), nil
	case "pretty":
		return glog.WithLoggerTypePretty(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

// normalizeLevel maps a config level onto go-logger's names. Unknown levels
// leave go-logger's default in place.
func normalizeLevel(level string) string {
	return levels[strings.ToLower(strings.TrimSpace(level))]
}

func qualify(module string) string {
	name := strings.Trim(strings.TrimSpace(module), ".")
	switch {
	case name == "", name == rootName:
		return rootName
	case strings.HasPrefix(name, rootName+"."):
		return name
	default:
		return rootName + "." + name
	}
}

func moduleNames(focus []string) []string {
	var out []string
	for _, module := range focus {
		if strings.TrimSpace(module) == "" {
			continue
		}
		if name := qualify(module); !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

func wrap(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

// adapter exposes a go-logger logger as interfaces.Logger.
type adapter struct {
	inner glog.Logger
}

var _ interfaces.FieldsLogger = (*adapter)(nil)

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, args...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, args...) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	if with, ok := l.inner.(glog.FieldsLogger); ok {
		return wrap(with.WithFields(maps.Clone(fields)))
	}
	return l
}

// WithContext binds ctx and attaches the fields stored on it with
// logging.ContextWithFields, such as the run id of the current invocation.
func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	bound := wrap(l.inner.WithContext(ctx))
	return logging.WithFields(bound, logging.ContextFields(ctx))
}
