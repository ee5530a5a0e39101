package gologger

import (
	"context"
	"errors"
	"slices"
	"testing"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-mdt/internal/logging"
)

func TestNewProviderCreatesLogger(t *testing.T) {
	p, err := NewProvider(Config{
		Level:  "debug",
		Format: "console",
	})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}

	logger := p.GetLogger("mdt.notes")
	if logger == nil {
		t.Fatal("expected logger, got nil")
	}

	child := logging.WithFields(logger, map[string]any{"module": "mdt.notes"})
	if child == nil {
		t.Fatal("expected WithFields to return logger")
	}
	child.Debug("adapter.initialised")
}

func TestNewProviderWithFocus(t *testing.T) {
	p, err := NewProvider(Config{Format: "json", Focus: []string{"notes", "commands.status"}})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}
	if p.GetLogger("notes") == nil || p.GetLogger("") == nil {
		t.Fatal("expected loggers from focused provider")
	}
}

func TestNewProviderRejectsUnknownFormat(t *testing.T) {
	if _, err := NewProvider(Config{Format: "xml"}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestNilProviderFallsBackToNoOp(t *testing.T) {
	var p *Provider
	if logger := p.GetLogger("mdt"); logger == nil {
		t.Fatal("expected no-op logger from nil provider")
	}
}

func TestNormalizeLevel(t *testing.T) {
	cases := map[string]string{
		"":        "",
		"Debug":   glog.Debug,
		"warning": glog.Warn,
		"bogus":   "",
	}
	for in, want := range cases {
		if got := normalizeLevel(in); got != want {
			t.Fatalf("normalizeLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestQualifyModuleNames(t *testing.T) {
	cases := map[string]string{
		"":                "mdt",
		"mdt":             "mdt",
		" notes ":         "mdt.notes",
		"mdt.notes":       "mdt.notes",
		"commands.status": "mdt.commands.status",
		".report.":        "mdt.report",
	}
	for in, want := range cases {
		if got := qualify(in); got != want {
			t.Fatalf("qualify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestModuleNamesDropsBlanksAndDuplicates(t *testing.T) {
	got := moduleNames([]string{"notes", " ", "mdt.notes", "report"})
	want := []string{"mdt.notes", "mdt.report"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAdapterAttachesContextFields(t *testing.T) {
	stub := &stubLogger{}
	adapted := wrap(stub)

	ctx := logging.ContextWithFields(context.Background(), map[string]any{"run_id": "run-1"})
	adapted.WithContext(ctx)

	if len(stub.contexts) != 1 {
		t.Fatalf("expected context to be bound once, got %d", len(stub.contexts))
	}
	if len(stub.fields) != 1 || stub.fields[0]["run_id"] != "run-1" {
		t.Fatalf("expected run_id field from context, got %v", stub.fields)
	}
}

func TestAdapterDelegatesToUnderlyingLogger(t *testing.T) {
	stub := &stubLogger{}
	adapted := wrap(stub)

	adapted.Trace("trace", "key", "value")
	adapted.Debug("debug")
	adapted.Info("info")
	adapted.Warn("warn")
	adapted.Error("error")
	adapted.Fatal("fatal")

	fields := map[string]any{"file_path": "inbox.md"}
	child := logging.WithFields(adapted, fields)
	if child == nil {
		t.Fatal("expected WithFields to return logger")
	}

	fields["file_path"] = "work/plan.md"
	if len(stub.fields) != 1 {
		t.Fatalf("expected fields to be recorded once, got %d", len(stub.fields))
	}
	if stub.fields[0]["file_path"] != "inbox.md" {
		t.Fatalf("expected fields to be cloned, got %v", stub.fields[0]["file_path"])
	}

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	adapted.WithContext(ctx)
	if len(stub.contexts) != 1 || stub.contexts[0] != ctx {
		t.Fatalf("expected context propagation, got %#v", stub.contexts)
	}
	if len(stub.fields) != 1 {
		t.Fatalf("expected no fields from a context without any, got %v", stub.fields)
	}

	wantCalls := []string{"trace", "debug", "info", "warn", "error", "fatal"}
	if len(stub.calls) != len(wantCalls) {
		t.Fatalf("expected %d calls, got %d", len(wantCalls), len(stub.calls))
	}
	for i, want := range wantCalls {
		if stub.calls[i] != want {
			t.Fatalf("call %d: expected %q, got %q", i, want, stub.calls[i])
		}
	}
}

type stubLogger struct {
	calls    []string
	fields   []map[string]any
	contexts []context.Context
}

var _ glog.Logger = (*stubLogger)(nil)
var _ glog.FieldsLogger = (*stubLogger)(nil)

func (s *stubLogger) Trace(string, ...any) { s.calls = append(s.calls, "trace") }
func (s *stubLogger) Debug(string, ...any) { s.calls = append(s.calls, "debug") }
func (s *stubLogger) Info(string, ...any)  { s.calls = append(s.calls, "info") }
func (s *stubLogger) Warn(string, ...any)  { s.calls = append(s.calls, "warn") }
func (s *stubLogger) Error(string, ...any) { s.calls = append(s.calls, "error") }
func (s *stubLogger) Fatal(string, ...any) { s.calls = append(s.calls, "fatal") }

func (s *stubLogger) WithContext(ctx context.Context) glog.Logger {
	s.contexts = append(s.contexts, ctx)
	return s
}

func (s *stubLogger) WithFields(fields map[string]any) glog.Logger {
	s.fields = append(s.fields, fields)
	return s
}
