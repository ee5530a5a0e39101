package statuscmd

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/goliatone/go-mdt/internal/commands"
	"github.com/goliatone/go-mdt/internal/logging"
	"github.com/goliatone/go-mdt/internal/notes"
	"github.com/goliatone/go-mdt/pkg/interfaces"
)

const statusOperation = "status.report"

var _ command.Commander[StatusCommand] = (*StatusHandler)(nil)

// Renderer writes the collected files as a report rooted at root.
type Renderer interface {
	Render(root string, files []notes.FileInfo) error
}

// Dependencies wires the collaborators of a StatusHandler.
type Dependencies struct {
	Renderer Renderer
	Logger   interfaces.Logger
	// OpenFS opens the directory notes are read from. Defaults to os.DirFS.
	OpenFS func(dir string) fs.FS
	// Aggregator options applied to every run, such as extractor options.
	Aggregator []notes.Option
}

// StatusHandler collects tag items and renders the status report.
type StatusHandler struct {
	inner *commands.Handler[StatusCommand]
}

// NewStatusHandler creates a handler bound to deps.
func NewStatusHandler(deps Dependencies, opts ...commands.HandlerOption[StatusCommand]) *StatusHandler {
	baseLogger := logging.Ensure(deps.Logger)
	openFS := deps.OpenFS
	if openFS == nil {
		openFS = os.DirFS
	}

	exec := func(ctx context.Context, msg StatusCommand) error {
		runID := msg.RunID
		if runID == uuid.Nil {
			runID = uuid.New()
		}
		ctx = logging.ContextWithFields(ctx, map[string]any{"run_id": runID.String()})

		root, target := resolveTarget(msg.NotesDirectory, msg.File)
		aggOpts := append([]notes.Option{notes.WithLogger(baseLogger)}, deps.Aggregator...)
		agg := notes.NewAggregator(openFS(root), aggOpts...)

		var (
			files []notes.FileInfo
			err   error
		)
		if target == "" {
			files, err = agg.CollectAll(ctx, ".")
		} else {
			var info notes.FileInfo
			info, err = agg.ParseFile(ctx, target)
			files = []notes.FileInfo{info}
		}
		if err != nil {
			return err
		}

		if deps.Renderer != nil {
			if err := deps.Renderer.Render(msg.NotesDirectory, files); err != nil {
				return err
			}
		}

		commands.ReportOutcome(ctx, map[string]any{
			"file_count":       len(files),
			"files_with_items": countFilesWithItems(files),
			"item_count":       countItems(files),
		})
		return nil
	}

	handlerOpts := []commands.HandlerOption[StatusCommand]{
		commands.WithLogger[StatusCommand](baseLogger),
		commands.WithOperation[StatusCommand](statusOperation),
		commands.WithMessageFields[StatusCommand](func(msg StatusCommand) map[string]any {
			fields := map[string]any{
				"notes_directory": msg.NotesDirectory,
			}
			if msg.File != "" {
				fields["file"] = msg.File
			}
			if msg.RunID != uuid.Nil {
				fields["run_id"] = msg.RunID.String()
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &StatusHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[StatusCommand].
func (h *StatusHandler) Execute(ctx context.Context, msg StatusCommand) error {
	return h.inner.Execute(ctx, msg)
}

// resolveTarget splits a status request into the directory to open and the
// slash path of the single file to read inside it. target is empty when the
// whole directory is requested.
func resolveTarget(notesDir, file string) (root, target string) {
	root = strings.TrimSpace(notesDir)
	file = strings.TrimSpace(file)
	if file == "" {
		return root, ""
	}
	if !filepath.IsAbs(file) {
		if filepath.IsLocal(file) {
			return root, filepath.ToSlash(filepath.Clean(file))
		}
		file = filepath.Join(root, file)
	}
	if rel, err := filepath.Rel(root, file); err == nil && filepath.IsLocal(rel) {
		return root, filepath.ToSlash(rel)
	}
	return filepath.Dir(file), filepath.Base(file)
}

func countFilesWithItems(files []notes.FileInfo) int {
	total := 0
	for _, f := range files {
		if f.HasItems() {
			total++
		}
	}
	return total
}

func countItems(files []notes.FileInfo) int {
	total := 0
	for _, f := range files {
		total += len(f.Items)
	}
	return total
}
