package commands

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-mdt/internal/logging"
	"github.com/goliatone/go-mdt/pkg/interfaces"
)

// TelemetryStatus is the outcome class of one command run.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes a finished command run.
type TelemetryInfo struct {
	Command   string
	Operation string
	// Fields are the log fields derived from the message.
	Fields map[string]any
	// Outcome holds the result fields the command reported with ReportOutcome.
	Outcome   map[string]any
	Duration  time.Duration
	Error     error
	ErrorCode string
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is called once after every command run.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

type outcomeKey struct{}

type outcome struct {
	mu     sync.Mutex
	fields map[string]any
}

// ReportOutcome records result fields, such as the number of files a status
// run read, for the command running under ctx. They are handed to telemetry
// when the command returns. Outside a Handler the call does nothing.
func ReportOutcome(ctx context.Context, fields map[string]any) {
	if ctx == nil || len(fields) == 0 {
		return
	}
	o, ok := ctx.Value(outcomeKey{}).(*outcome)
	if !ok {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fields == nil {
		o.fields = make(map[string]any, len(fields))
	}
	maps.Copy(o.fields, fields)
}

func withOutcome(ctx context.Context) (context.Context, *outcome) {
	o := &outcome{}
	return context.WithValue(ctx, outcomeKey{}, o), o
}

func (o *outcome) snapshot() map[string]any {
	o.mu.Lock()
	defer o.mu.Unlock()
	return maps.Clone(o.fields)
}

// DefaultTelemetry logs one completion entry per run carrying the duration,
// the reported outcome and, on failure, the error and its text code. The run
// logger in TelemetryInfo is used when set, otherwise logger with the message
// fields.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = logging.Ensure(logger)
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := info.Logger
		if entry == nil {
			entry = logging.WithFields(logger, info.Fields)
		}

		args := []any{"duration_ms", info.Duration.Milliseconds()}
		for _, key := range slices.Sorted(maps.Keys(info.Outcome)) {
			args = append(args, key, info.Outcome[key])
		}

		switch info.Status {
		case TelemetryStatusSuccess:
			entry.Info("command.completed", args...)
		case TelemetryStatusContextError:
			args = append(args, "error", info.Error, "error_code", info.ErrorCode)
			entry.Warn("command.interrupted", args...)
		default:
			args = append(args, "error", info.Error, "error_code", info.ErrorCode)
			entry.Error("command.failed", args...)
		}
	}
}
