package report

import (
	"io"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/goliatone/go-mdt/internal/logging"
	"github.com/goliatone/go-mdt/internal/notes"
	"github.com/goliatone/go-mdt/internal/tags"
	"github.com/goliatone/go-mdt/pkg/interfaces"
)

const (
	toolName    = "mdt"
	divider     = "--------------------------------"
	hardDivider = "========================================"
	indent      = "  "
)

// ColorMode selects whether tag labels are colourised.
type ColorMode uint8

const (
	// ColorAuto follows fatih/color's terminal detection.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithColorMode overrides terminal detection for tag labels.
func WithColorMode(mode ColorMode) Option {
	return func(r *Renderer) {
		r.mode = mode
	}
}

// WithLogger injects the logger used by the renderer.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Renderer) {
		r.logger = logging.Ensure(logger)
	}
}

// Renderer writes status reports to an io.Writer.
type Renderer struct {
	out    io.Writer
	mode   ColorMode
	logger interfaces.Logger
}

// NewRenderer returns a renderer writing to out.
func NewRenderer(out io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		out:    out,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Render writes the preamble for root followed by every file that declared
// at least one item. The report is written with a single call to the
// underlying writer.
func (r *Renderer) Render(root string, files []notes.FileInfo) error {
	label := r.labelColor()

	var b strings.Builder
	writePreamble(&b, root)
	b.WriteByte('\n')

	rendered := 0
	for _, file := range files {
		if !file.HasItems() {
			continue
		}
		rendered++
		b.WriteString(baseName(file.Path))
		b.WriteByte('\n')
		b.WriteString(divider)
		b.WriteByte('\n')
		for _, item := range file.Items {
			writeItem(&b, label, item)
		}
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return err
	}

	r.logger.Debug("report.rendered", "files", len(files), "files_with_items", rendered)
	return nil
}

func (r *Renderer) labelColor() *color.Color {
	c := color.New(color.FgHiRed)
	switch r.mode {
	case ColorAlways:
		c.EnableColor()
	case ColorNever:
		c.DisableColor()
	}
	return c
}

func writePreamble(b *strings.Builder, root string) {
	b.WriteString(hardDivider)
	b.WriteByte('\n')
	b.WriteString(toolName)
	b.WriteByte('\n')
	b.WriteString("Root directory: ")
	b.WriteString(root)
	b.WriteByte('\n')
	b.WriteString(hardDivider)
	b.WriteByte('\n')
}

func writeItem(b *strings.Builder, label *color.Color, item tags.TagItem) {
	b.WriteString(label.Sprint(item.Type.Label() + ":"))
	b.WriteByte(' ')
	b.WriteString(item.Title)
	b.WriteByte('\n')

	if !item.HasContent() {
		return
	}
	for i, entry := range item.Content.Items {
		b.WriteString(indent)
		if item.Content.Ordered {
			b.WriteString(strconv.Itoa(i + 1))
			b.WriteString(". ")
		} else {
			b.WriteString("- ")
		}
		b.WriteString(entry)
		b.WriteByte('\n')
	}
}

func baseName(p string) string {
	if p == "" {
		return "-"
	}
	base := path.Base(filepath.ToSlash(p))
	if base == "." || base == "/" {
		return "-"
	}
	return base
}
