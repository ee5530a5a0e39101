package markdown

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// DefaultExtension is the file extension recognised as Markdown.
const DefaultExtension = ".md"

// LoaderConfig configures how Markdown files are discovered.
type LoaderConfig struct {
	// Extension limits discovered files to those with this extension (defaults to ".md").
	Extension string
	// Flat disables descending into sub-directories.
	Flat bool
}

// Loader discovers Markdown files inside a filesystem.
type Loader struct {
	fs        fs.FS
	extension string
	recursive bool
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	ext := strings.TrimSpace(cfg.Extension)
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return &Loader{
		fs:        filesystem,
		extension: ext,
		recursive: !cfg.Flat,
	}
}

// Discover walks dir and returns the slash-separated paths of every Markdown
// file below it, sorted. A missing dir, or one that is not a directory,
// yields no paths and no error.
func (l *Loader) Discover(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := path.Clean(strings.TrimSpace(dir))
	if root == "" || root == "/" {
		root = "."
	}

	info, err := fs.Stat(l.fs, root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var paths []string

	walkErr := fs.WalkDir(l.fs, root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if current != root && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if path.Ext(current) != l.extension {
			return nil
		}
		paths = append(paths, current)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(paths)
	return paths, nil
}
