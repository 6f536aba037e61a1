package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"compcat/internal/catalog"
	"compcat/pkg/fileops"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var docExtensions = []string{".md", ".markdown"}

// DocFrontmatter is the YAML header of a documentation file.
type DocFrontmatter struct {
	Topic             string   `yaml:"topic"`
	Title             string   `yaml:"title"`
	Examples          []string `yaml:"examples"`
	RelatedComponents []string `yaml:"related_components"`
}

// loadDocs reads every Markdown file of the docs directory. A file without
// a topic in its frontmatter uses its file stem; a later file with the same
// topic is skipped.
func (l *Loader) loadDocs(ctx context.Context, result *Result) error {
	entries, err := fileops.ListDir(l.docsDir, &fileops.ListOptions{
		FilesOnly:  true,
		Extensions: docExtensions,
	})
	if errors.Is(err, os.ErrNotExist) {
		l.logger.Warn("Docs directory does not exist", "path", l.docsDir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read docs directory: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		doc, err := l.loadDocFile(entry.Path)
		if err != nil {
			l.logger.Error("Failed to load documentation", "file", entry.Name, "error", err)
			result.Failures = append(result.Failures, Failure{Path: entry.Path, Err: err})
			continue
		}
		if _, dup := result.Documentation[doc.Topic]; dup {
			err := fmt.Errorf("duplicate topic %q", doc.Topic)
			l.logger.Warn("Skipping documentation", "file", entry.Name, "error", err)
			result.Failures = append(result.Failures, Failure{Path: entry.Path, Err: err})
			continue
		}
		result.Documentation[doc.Topic] = doc
	}
	return nil
}

func (l *Loader) loadDocFile(path string) (catalog.Documentation, error) {
	content, err := fileops.ReadFile(path, l.docsDir, l.maxFileSize)
	if err != nil {
		return catalog.Documentation{}, err
	}

	var matter DocFrontmatter
	body, err := frontmatter.Parse(bytes.NewReader(content), &matter)
	if err != nil {
		return catalog.Documentation{}, fmt.Errorf("invalid frontmatter: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	topic := strings.TrimSpace(matter.Topic)
	if topic == "" {
		topic = stem
	}
	title := strings.TrimSpace(matter.Title)
	if title == "" {
		title = exampleTitle(stem)
	}

	intro, sections := parseDocBody(body)
	return catalog.Documentation{
		Topic:             topic,
		Title:             title,
		Content:           intro,
		Sections:          sections,
		Examples:          nonNil(matter.Examples),
		RelatedComponents: nonNil(matter.RelatedComponents),
	}, nil
}

// parseDocBody splits a Markdown body at its level-2 headings. Text before
// the first one is the topic content; fenced code blocks inside a section
// become its code examples and are removed from its content.
func parseDocBody(source []byte) (string, []catalog.Section) {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	type block struct {
		node  ast.Node
		start int
	}
	var blocks []block
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if start := blockStart(n, source); start >= 0 {
			blocks = append(blocks, block{node: n, start: start})
		}
	}

	var intro strings.Builder
	sections := []catalog.Section{}
	var current *catalog.Section
	var content strings.Builder

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(content.String())
		sections = append(sections, *current)
		content.Reset()
	}

	for i, b := range blocks {
		end := len(source)
		if i+1 < len(blocks) {
			end = blocks[i+1].start
		}
		raw := string(source[b.start:end])

		if h, ok := b.node.(*ast.Heading); ok && h.Level == 2 {
			flush()
			title := strings.TrimSpace(string(linesText(h, source)))
			current = &catalog.Section{
				ID:           slugify(title),
				Title:        title,
				CodeExamples: []string{},
			}
			continue
		}

		if current == nil {
			intro.WriteString(raw)
			continue
		}

		if fc, ok := b.node.(*ast.FencedCodeBlock); ok {
			current.CodeExamples = append(current.CodeExamples, strings.TrimRight(string(linesText(fc, source)), "\n"))
			continue
		}
		content.WriteString(raw)
	}
	flush()

	return strings.TrimSpace(intro.String()), sections
}

// blockStart returns the offset of the first source line of a top-level
// block, or -1 when the block carries no position information.
func blockStart(n ast.Node, source []byte) int {
	if fc, ok := n.(*ast.FencedCodeBlock); ok {
		if fc.Info != nil {
			return lineStart(source, fc.Info.Segment.Start)
		}
		if fc.Lines().Len() > 0 {
			first := lineStart(source, fc.Lines().At(0).Start)
			if first == 0 {
				return 0
			}
			return lineStart(source, first-1)
		}
		return -1
	}

	if n.Lines().Len() > 0 {
		return lineStart(source, n.Lines().At(0).Start)
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			return lineStart(source, t.Segment.Start)
		}
		if start := blockStart(c, source); start >= 0 {
			return start
		}
	}
	return -1
}

func lineStart(source []byte, offset int) int {
	for offset > 0 && source[offset-1] != '\n' {
		offset--
	}
	return offset
}

func linesText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.Bytes()
}

// slugify lower-cases s and collapses runs of non-alphanumerics to '-'.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
