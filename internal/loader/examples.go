package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"compcat/internal/catalog"
	"compcat/pkg/fileops"
)

var exampleExtensions = []string{".ts", ".tsx"}

// loadExamples reads the examples of one component. Files listed in the
// manifest are read in manifest order and missing ones are skipped; with no
// list, every .ts/.tsx file in examples/ is read in name order.
func (l *Loader) loadExamples(componentDir string, listed []string) ([]catalog.Example, error) {
	if len(listed) > 0 {
		examples := make([]catalog.Example, 0, len(listed))
		for _, rel := range listed {
			example, err := l.readExample(componentDir, filepath.Join(componentDir, filepath.FromSlash(rel)))
			if errors.Is(err, os.ErrNotExist) {
				l.logger.Debug("Listed example not found", "dir", componentDir, "file", rel)
				continue
			}
			if err != nil {
				return nil, err
			}
			examples = append(examples, example)
		}
		return examples, nil
	}

	examplesDir := filepath.Join(componentDir, defaultExamplesDir)
	entries, err := fileops.ListDir(examplesDir, &fileops.ListOptions{
		FilesOnly:  true,
		Extensions: exampleExtensions,
	})
	if errors.Is(err, os.ErrNotExist) {
		return []catalog.Example{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan examples: %w", err)
	}

	examples := make([]catalog.Example, 0, len(entries))
	for _, entry := range entries {
		example, err := l.readExample(componentDir, entry.Path)
		if err != nil {
			return nil, err
		}
		examples = append(examples, example)
	}
	return examples, nil
}

func (l *Loader) readExample(componentDir, path string) (catalog.Example, error) {
	data, err := fileops.ReadFile(path, componentDir, l.maxFileSize)
	if err != nil {
		return catalog.Example{}, fmt.Errorf("failed to read example %s: %w", filepath.Base(path), err)
	}

	code := string(data)
	title := exampleTitle(path)
	description, ok := extractDescription(code)
	if !ok {
		description = fmt.Sprintf(exampleDescriptionFmt, title)
	}

	return catalog.Example{
		Title:       title,
		Description: description,
		Code:        code,
		Props:       map[string]any{},
	}, nil
}

// exampleTitle turns "with_icon-left.tsx" into "With Icon Left".
func exampleTitle(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(stem))
	if len(words) == 0 {
		return "Example"
	}
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// extractDescription returns the first non-empty line of a doc comment
// block: a line starting with "/**", or with "*" but not "*/".
func extractDescription(code string) (string, bool) {
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)

		var rest string
		switch {
		case strings.HasPrefix(trimmed, "/**"):
			rest = strings.TrimPrefix(trimmed, "/**")
		case strings.HasPrefix(trimmed, "*") && !strings.HasPrefix(trimmed, "*/"):
			rest = strings.TrimPrefix(trimmed, "*")
		default:
			continue
		}

		rest = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "*/"))
		if rest != "" && !strings.HasPrefix(rest, "/") {
			return rest, true
		}
	}
	return "", false
}
