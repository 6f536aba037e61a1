// Package loader builds catalog content from a directory tree.
//
// Every immediate subdirectory of the root is one component, keyed by its
// directory name:
//
//	components/
//	  button/
//	    manifest.json      (or manifest.yaml; optional)
//	    component.tsx      (required)
//	    types.ts           (optional)
//	    examples/*.tsx     (optional)
//
// A component that fails to load is logged and skipped. Documentation
// topics come from a separate, optional directory of Markdown files (see
// LoadDocs).
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"compcat/internal/catalog"
	"compcat/internal/logging"
	"compcat/pkg/fileops"
)

// DefaultMaxFileSize bounds every file the loader reads.
const DefaultMaxFileSize int64 = 1 << 20

// Options configures a Loader.
type Options struct {
	// ComponentsDir is the catalog root. Empty means no components.
	ComponentsDir string

	// DocsDir is an optional directory of Markdown documentation topics.
	DocsDir string

	// MaxFileSize defaults to DefaultMaxFileSize when zero.
	MaxFileSize int64
}

// Failure records a component directory or docs file that was skipped.
type Failure struct {
	Path string
	Err  error
}

// Result is the outcome of a full load.
type Result struct {
	Components    map[string]catalog.Component
	Documentation map[string]catalog.Documentation
	Failures      []Failure
}

// Catalog freezes the result into a catalog.
func (r *Result) Catalog() *catalog.Catalog {
	return catalog.New(r.Components, r.Documentation)
}

// Loader reads components and documentation from disk.
type Loader struct {
	componentsDir string
	docsDir       string
	maxFileSize   int64
	logger        *logging.AppLogger
}

// New creates a Loader.
func New(opts Options, logger *logging.AppLogger) *Loader {
	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	return &Loader{
		componentsDir: opts.ComponentsDir,
		docsDir:       opts.DocsDir,
		maxFileSize:   maxSize,
		logger:        logger,
	}
}

// Load reads components and documentation. Per-directory failures are
// logged and skipped; only context cancellation or an unreadable root
// returns an error.
func (l *Loader) Load(ctx context.Context) (map[string]catalog.Component, map[string]catalog.Documentation, error) {
	result, err := l.Scan(ctx)
	if err != nil {
		return nil, nil, err
	}
	return result.Components, result.Documentation, nil
}

// Scan is Load with the list of skipped entries.
func (l *Loader) Scan(ctx context.Context) (*Result, error) {
	start := time.Now()
	defer l.logger.LogPerformance("catalog load", start)

	result := &Result{
		Components:    make(map[string]catalog.Component),
		Documentation: make(map[string]catalog.Documentation),
	}

	if err := l.loadComponents(ctx, result); err != nil {
		return nil, err
	}

	if l.docsDir != "" {
		if err := l.loadDocs(ctx, result); err != nil {
			return nil, err
		}
	}

	l.logger.Info("Catalog loaded",
		"components", len(result.Components),
		"topics", len(result.Documentation),
		"skipped", len(result.Failures))
	return result, nil
}

func (l *Loader) loadComponents(ctx context.Context, result *Result) error {
	if l.componentsDir == "" {
		return nil
	}

	entries, err := fileops.ListDir(l.componentsDir, &fileops.ListOptions{DirsOnly: true})
	if errors.Is(err, os.ErrNotExist) {
		cwd, _ := os.Getwd()
		l.logger.Error("Components directory does not exist", "path", l.componentsDir, "cwd", cwd)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read components directory: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		comp, err := l.loadComponent(entry.Path)
		if err != nil {
			l.logger.Error("Failed to load component", "component", entry.Name, "error", err)
			result.Failures = append(result.Failures, Failure{Path: entry.Path, Err: err})
			continue
		}

		l.logger.Debug("Loaded component", "component", entry.Name)
		result.Components[entry.Name] = comp
	}
	return nil
}

// loadComponent reads one component directory.
func (l *Loader) loadComponent(dir string) (catalog.Component, error) {
	manifest, err := l.readManifest(dir)
	if err != nil {
		return catalog.Component{}, err
	}

	source, err := fileops.ReadFile(filepath.Join(dir, filepath.FromSlash(manifest.Files.Component)), dir, l.maxFileSize)
	if err != nil {
		return catalog.Component{}, fmt.Errorf("failed to read component file: %w", err)
	}

	var typescript *string
	types, err := fileops.ReadFile(filepath.Join(dir, filepath.FromSlash(manifest.Files.Types)), dir, l.maxFileSize)
	switch {
	case err == nil:
		typescript = catalog.StringPtr(string(types))
	case errors.Is(err, os.ErrNotExist):
	default:
		return catalog.Component{}, fmt.Errorf("failed to read types file: %w", err)
	}

	examples, err := l.loadExamples(dir, manifest.Files.Examples)
	if err != nil {
		return catalog.Component{}, err
	}

	return catalog.Component{
		Name:                  manifest.Name,
		Description:           manifest.Description,
		SourceCode:            string(source),
		Props:                 manifest.props(),
		Examples:              examples,
		Category:              manifest.Category,
		Tags:                  manifest.tags(),
		TypescriptDefinitions: typescript,
	}, nil
}

// readManifest returns the first manifest found in dir, or a synthesized
// default when there is none.
func (l *Loader) readManifest(dir string) (*Manifest, error) {
	for _, name := range manifestNames {
		data, err := fileops.ReadFile(filepath.Join(dir, name), dir, l.maxFileSize)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		manifest, err := parseManifest(name, data, filepath.Base(dir))
		if err != nil {
			return nil, err
		}
		l.logger.DebugObject(name, *manifest)
		return manifest, nil
	}

	l.logger.Debug("No manifest, using defaults", "dir", dir)
	return defaultManifest(filepath.Base(dir)), nil
}
