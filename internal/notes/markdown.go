package notes

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

type importFrontmatter struct {
	Prefix string `yaml:"prefix"`
}

// ParseMarkdownList extracts note texts from a Markdown document. Every list
// item, nested or not, becomes one text in document order. Items that are
// blank after trimming are skipped. An optional YAML frontmatter `prefix` is
// prepended to every text.
func ParseMarkdownList(content []byte) []string {
	body, fm := stripFrontmatter(content)

	reader := text.NewReader(body)
	doc := goldmark.DefaultParser().Parse(reader)

	var texts []string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		item, ok := n.(*ast.ListItem)
		if !ok {
			return ast.WalkContinue, nil
		}

		t := trimCheckbox(listItemText(item, body))
		if !IsBlank(t) {
			texts = append(texts, fm.Prefix+t)
		}
		return ast.WalkContinue, nil
	})

	return texts
}

// listItemText joins the raw source lines of an item's own blocks. Nested
// lists are left for the walk to visit as separate items.
func listItemText(item *ast.ListItem, source []byte) string {
	var parts []string
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		if _, nested := c.(*ast.List); nested {
			continue
		}
		lines := c.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if line := strings.TrimSpace(string(seg.Value(source))); line != "" {
				parts = append(parts, line)
			}
		}
	}
	return strings.Join(parts, " ")
}

func trimCheckbox(s string) string {
	for _, box := range []string{"[ ] ", "[x] ", "[X] "} {
		if strings.HasPrefix(s, box) {
			return strings.TrimSpace(s[len(box):])
		}
	}
	return s
}

func stripFrontmatter(content []byte) ([]byte, importFrontmatter) {
	var fm importFrontmatter

	lines := bytes.Split(content, []byte("\n"))
	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return content, fm
	}

	var end int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			end = i
			break
		}
	}
	if end == 0 {
		return content, fm
	}

	if err := yaml.Unmarshal(bytes.Join(lines[1:end], []byte("\n")), &fm); err != nil {
		return content, importFrontmatter{}
	}

	return bytes.TrimLeft(bytes.Join(lines[end+1:], []byte("\n")), "\n"), fm
}
