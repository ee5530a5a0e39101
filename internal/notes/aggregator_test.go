package notes

import (
	"context"
	"os"
	"slices"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-mdt/internal/tags"
	"github.com/goliatone/go-mdt/pkg/interfaces"
)

type warnRecorder struct {
	warnings []string
}

func (r *warnRecorder) Trace(string, ...any) {}
func (r *warnRecorder) Debug(string, ...any) {}
func (r *warnRecorder) Info(string, ...any)  {}
func (r *warnRecorder) Warn(msg string, _ ...any) {
	r.warnings = append(r.warnings, msg)
}
func (r *warnRecorder) Error(string, ...any)                          {}
func (r *warnRecorder) Fatal(string, ...any)                          {}
func (r *warnRecorder) WithContext(context.Context) interfaces.Logger { return r }

func TestParseFileExtractsItems(t *testing.T) {
	agg := NewAggregator(os.DirFS("testdata/notes"))

	info, err := agg.ParseFile(context.Background(), "inbox.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Path != "inbox.md" {
		t.Fatalf("expected path inbox.md, got %q", info.Path)
	}
	if len(info.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(info.Items))
	}
	if info.Items[0].Title != "call the plumber" || info.Items[0].Content != nil {
		t.Fatalf("unexpected first item: %+v", info.Items[0])
	}
	second := info.Items[1]
	if second.Title != "groceries" || second.Content == nil {
		t.Fatalf("unexpected second item: %+v", second)
	}
	if !slices.Equal(second.Content.Items, []string{"milk", "eggs"}) {
		t.Fatalf("expected [milk eggs], got %v", second.Content.Items)
	}
}

func TestParseFileSkipsFrontMatter(t *testing.T) {
	agg := NewAggregator(os.DirFS("testdata/notes"))

	info, err := agg.ParseFile(context.Background(), "work/plan.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(info.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(info.Items))
	}
	item := info.Items[0]
	if item.Type != tags.Todo || item.Title != "ship release" {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item.Content == nil || !item.Content.Ordered {
		t.Fatalf("expected ordered content, got %+v", item.Content)
	}
	if !slices.Equal(item.Content.Items, []string{"tag build", "publish notes"}) {
		t.Fatalf("unexpected content items: %v", item.Content.Items)
	}
}

func TestParseFileKeepsHeadingsBetweenThematicBreaks(t *testing.T) {
	agg := NewAggregator(fstest.MapFS{
		"rules.md": {Data: []byte("---\n# TODO: after rule\n---\n\n# TODO: second\n")},
		"plus.md":  {Data: []byte("+++\n# TODO: plus\n+++\n")},
	})

	cases := map[string][]string{
		"rules.md": {"after rule", "second"},
		"plus.md":  {"plus"},
	}
	for path, want := range cases {
		info, err := agg.ParseFile(context.Background(), path)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", path, err)
		}
		var got []string
		for _, item := range info.Items {
			got = append(got, item.Title)
		}
		if !slices.Equal(got, want) {
			t.Fatalf("%s: expected titles %v, got %v", path, want, got)
		}
	}
}

func TestParseFileWithoutTags(t *testing.T) {
	agg := NewAggregator(os.DirFS("testdata/notes"))

	info, err := agg.ParseFile(context.Background(), "journal.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.HasItems() {
		t.Fatalf("expected no items, got %+v", info.Items)
	}
}

func TestParseFileMissingIsNotFound(t *testing.T) {
	agg := NewAggregator(fstest.MapFS{})

	_, err := agg.ParseFile(context.Background(), "gone.md")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}
}

func TestParseFileRejectsInvalidUTF8(t *testing.T) {
	agg := NewAggregator(fstest.MapFS{
		"bad.md": {Data: []byte("# TODO: \xff\xfe broken\n")},
	})

	_, err := agg.ParseFile(context.Background(), "bad.md")
	if err == nil {
		t.Fatal("expected encoding error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestParseFileHonoursCancelledContext(t *testing.T) {
	agg := NewAggregator(os.DirFS("testdata/notes"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := agg.ParseFile(ctx, "inbox.md"); err == nil {
		t.Fatal("expected context error")
	}
}

func TestParseFileUsesExtractorOptions(t *testing.T) {
	fsys := fstest.MapFS{
		"mixed.md": {Data: []byte("# FIXME: leak\n\n# TODO: docs\n")},
	}
	agg := NewAggregator(fsys, WithExtractorOptions(tags.WithKinds(
		tags.TodoKind,
		tags.Kind{Type: "fixme", Prefix: "FIXME:"},
	)))

	info, err := agg.ParseFile(context.Background(), "mixed.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(info.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(info.Items))
	}
	if info.Items[0].Type != "fixme" || info.Items[0].Title != "leak" {
		t.Fatalf("unexpected first item: %+v", info.Items[0])
	}
}

func TestCollectSkipsUnreadableFiles(t *testing.T) {
	rec := &warnRecorder{}
	fsys := fstest.MapFS{
		"a.md":   {Data: []byte("# TODO: first\n")},
		"bad.md": {Data: []byte("\xff")},
		"c.md":   {Data: []byte("# TODO: third\n")},
	}
	agg := NewAggregator(fsys, WithLogger(rec))

	files := agg.Collect(context.Background(), []string{"a.md", "missing.md", "bad.md", "c.md"})

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Path != "a.md" || files[1].Path != "c.md" {
		t.Fatalf("unexpected order: %s, %s", files[0].Path, files[1].Path)
	}
	if len(rec.warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", rec.warnings)
	}
}

func TestCollectAllWalksDirectory(t *testing.T) {
	agg := NewAggregator(os.DirFS("testdata/notes"))

	files, err := agg.CollectAll(context.Background(), ".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	want := []string{"inbox.md", "journal.md", "work/plan.md"}
	if !slices.Equal(paths, want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
}

func TestCollectAllMissingDirectory(t *testing.T) {
	agg := NewAggregator(fstest.MapFS{})

	files, err := agg.CollectAll(context.Background(), "nowhere")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files, got %d", len(files))
	}
}

func TestCollectAllCancelled(t *testing.T) {
	agg := NewAggregator(os.DirFS("testdata/notes"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := agg.CollectAll(ctx, "."); err == nil {
		t.Fatal("expected cancellation error")
	}
}
