package notes

import (
	"context"
	"io/fs"
	"unicode/utf8"

	"github.com/goliatone/go-mdt/internal/logging"
	"github.com/goliatone/go-mdt/internal/markdown"
	"github.com/goliatone/go-mdt/internal/tags"
	"github.com/goliatone/go-mdt/pkg/interfaces"
)

// FileInfo pairs a note path with the tag items extracted from it, in
// document order.
type FileInfo struct {
	Path  string         `json:"path"`
	Items []tags.TagItem `json:"items"`
}

// HasItems reports whether the file declared any tag item.
func (f FileInfo) HasItems() bool {
	return len(f.Items) > 0
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger injects the logger used for per-file diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logging.Ensure(logger)
	}
}

// WithExtractorOptions configures the tag extractor applied to every file.
func WithExtractorOptions(opts ...tags.Option) Option {
	return func(a *Aggregator) {
		a.extractor = tags.NewExtractor(opts...)
	}
}

// WithParseOptions sets the markdown parse options, such as extensions.
func WithParseOptions(opts interfaces.ParseOptions) Option {
	return func(a *Aggregator) {
		a.parse = opts
	}
}

// WithLoaderConfig overrides how CollectAll discovers notes.
func WithLoaderConfig(cfg markdown.LoaderConfig) Option {
	return func(a *Aggregator) {
		a.loaderConfig = cfg
	}
}

// Aggregator reads notes from a filesystem and extracts their tag items.
type Aggregator struct {
	fs           fs.FS
	logger       interfaces.Logger
	extractor    *tags.Extractor
	parse        interfaces.ParseOptions
	loaderConfig markdown.LoaderConfig
}

// NewAggregator builds an Aggregator over filesystem. Paths handed to its
// methods are slash-separated and relative to the filesystem root.
func NewAggregator(filesystem fs.FS, opts ...Option) *Aggregator {
	a := &Aggregator{
		fs:        filesystem,
		logger:    logging.NoOp(),
		extractor: tags.NewExtractor(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// ParseFile reads path and extracts its tag items. A readable file without
// tags yields a FileInfo with no items and a nil error.
func (a *Aggregator) ParseFile(ctx context.Context, path string) (FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return FileInfo{}, err
	}

	logger := logging.WithFileContext(a.logger.WithContext(ctx), path, -1)

	raw, err := fs.ReadFile(a.fs, path)
	if err != nil {
		return FileInfo{}, wrapReadError(path, err)
	}
	if !utf8.Valid(raw) {
		return FileInfo{}, encodingError(path)
	}

	body, err := markdown.StripFrontMatter(raw)
	if err != nil {
		logger.Debug("notes.frontmatter.ignored", "error", err)
	}

	src := markdown.NewSource(body, a.parse)
	defer src.Stop()

	info := FileInfo{
		Path:  path,
		Items: a.extractor.Extract(src),
	}

	logging.WithFileContext(logger, "", len(info.Items)).Debug("notes.file.parsed")
	return info, nil
}

// Collect parses every path in order. Files that cannot be read are logged
// and left out; the batch continues. It stops early only when ctx is done.
func (a *Aggregator) Collect(ctx context.Context, paths []string) []FileInfo {
	files := make([]FileInfo, 0, len(paths))
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		info, err := a.ParseFile(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			logging.WithFileContext(a.logger.WithContext(ctx), path, -1).
				Warn("notes.file.skipped", "error", err)
			continue
		}
		files = append(files, info)
	}
	return files
}

// CollectAll discovers every note below dir and collects them. The only
// errors returned are discovery failures and context cancellation.
func (a *Aggregator) CollectAll(ctx context.Context, dir string) ([]FileInfo, error) {
	paths, err := markdown.NewLoader(a.fs, a.loaderConfig).Discover(ctx, dir)
	if err != nil {
		return nil, err
	}

	a.logger.WithContext(ctx).Debug("notes.discovered", "dir", dir, "count", len(paths))

	files := a.Collect(ctx, paths)
	if err := ctx.Err(); err != nil {
		return files, err
	}
	return files, nil
}
