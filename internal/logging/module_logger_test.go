package logging

import (
	"context"
	"maps"
	"testing"

	"github.com/goliatone/go-mdt/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	r.fields = append(r.fields, maps.Clone(fields))
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

// plainLogger lacks the FieldsLogger extension.
type plainLogger struct{}

func (plainLogger) Trace(string, ...any)                            {}
func (plainLogger) Debug(string, ...any)                            {}
func (plainLogger) Info(string, ...any)                             {}
func (plainLogger) Warn(string, ...any)                             {}
func (plainLogger) Error(string, ...any)                            {}
func (plainLogger) Fatal(string, ...any)                            {}
func (p plainLogger) WithContext(context.Context) interfaces.Logger { return p }

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "mdt.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger = WithFields(logger, map[string]any{"foo": "bar"})
	logger.Debug("noop")
}

func TestModuleLoggerFallsBackWhenProviderReturnsNil(t *testing.T) {
	provider := &stubProvider{}
	logger := ModuleLogger(provider, notesModule)
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	logger := ModuleLogger(provider, notesModule)

	if len(provider.requested) != 1 || provider.requested[0] != notesModule {
		t.Fatalf("expected module %s, got %v", notesModule, provider.requested)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}
	if got := rec.fields[0]["module"]; got != notesModule {
		t.Fatalf("expected module field %s, got %v", notesModule, got)
	}

	logger.Info("with provider")
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
	if rec.fields[0]["module"] != rootModule {
		t.Fatalf("expected module field %s, got %v", rootModule, rec.fields[0]["module"])
	}
}

func TestNamedLoggersRequestTheirModules(t *testing.T) {
	cases := []struct {
		name   string
		get    func(interfaces.LoggerProvider) interfaces.Logger
		module string
	}{
		{"notes", NotesLogger, notesModule},
		{"report", ReportLogger, reportModule},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &stubProvider{logger: &recordingLogger{}}
			_ = tc.get(provider)
			if len(provider.requested) == 0 || provider.requested[0] != tc.module {
				t.Fatalf("expected %s module request, got %v", tc.module, provider.requested)
			}
		})
	}
}

func TestWithFileContextAttachesPathAndCount(t *testing.T) {
	rec := &recordingLogger{}
	_ = WithFileContext(rec, " work/plan.md ", 3)

	if len(rec.fields) != 1 {
		t.Fatalf("expected one fields call, got %d", len(rec.fields))
	}
	if rec.fields[0][fieldFilePath] != "work/plan.md" {
		t.Fatalf("expected trimmed file path, got %v", rec.fields[0][fieldFilePath])
	}
	if rec.fields[0][fieldItemCount] != 3 {
		t.Fatalf("expected item count 3, got %v", rec.fields[0][fieldItemCount])
	}
}

func TestWithFileContextOmitsUnknownCount(t *testing.T) {
	rec := &recordingLogger{}
	_ = WithFileContext(rec, "inbox.md", -1)

	if _, ok := rec.fields[0][fieldItemCount]; ok {
		t.Fatalf("expected no item count, got %v", rec.fields[0])
	}
}

func TestWithFieldsCopiesInput(t *testing.T) {
	rec := &recordingLogger{}
	fields := map[string]any{"run_id": "a"}
	_ = WithFields(rec, fields)
	fields["run_id"] = "b"

	if rec.fields[0]["run_id"] != "a" {
		t.Fatalf("expected fields to be copied, got %v", rec.fields[0]["run_id"])
	}
}

func TestWithFieldsIgnoresLoggersWithoutExtension(t *testing.T) {
	logger := WithFields(plainLogger{}, map[string]any{"run_id": "a"})
	if _, ok := logger.(plainLogger); !ok {
		t.Fatalf("expected logger returned unchanged, got %T", logger)
	}
}

func TestContextFieldsRoundTrip(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"run_id": "r1"})
	fields := ContextFields(ctx)
	if fields["run_id"] != "r1" {
		t.Fatalf("expected run_id r1, got %v", fields["run_id"])
	}
	fields["run_id"] = "mutated"
	if ContextFields(ctx)["run_id"] != "r1" {
		t.Fatal("expected context fields to be cloned on read")
	}
	if ContextFields(context.Background()) != nil {
		t.Fatal("expected nil fields for bare context")
	}
}

func TestEnsureReturnsNoOpForNil(t *testing.T) {
	if _, ok := Ensure(nil).(noopLogger); !ok {
		t.Fatal("expected no-op logger")
	}
}
