// Package richtext renders editor-authored markdown bodies.
package richtext

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Renderer converts markdown to HTML. Raw HTML in the source is escaped.
// A Renderer is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a renderer with GitHub-flavoured tables, strikethrough and
// autolinks enabled.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render converts body to HTML. An empty body renders to "".
func (r *Renderer) Render(body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// PlainText extracts the visible text of body, collapsing whitespace and
// truncating to at most limit runes (0 means no limit).
func (r *Renderer) PlainText(body string, limit int) string {
	src := []byte(body)
	root := r.md.Parser().Parse(text.NewReader(src))

	var sb strings.Builder
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			if n.Type() == gmast.TypeBlock {
				sb.WriteByte(' ')
			}
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Text:
			sb.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *gmast.String:
			sb.Write(node.Value)
		case *gmast.CodeSpan:
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*gmast.Text); ok {
					sb.Write(t.Segment.Value(src))
				}
			}
			return gmast.WalkSkipChildren, nil
		case *gmast.AutoLink:
			sb.Write(node.Label(src))
		}
		return gmast.WalkContinue, nil
	})

	out := strings.Join(strings.Fields(sb.String()), " ")
	if limit > 0 && utf8.RuneCountInString(out) > limit {
		runes := []rune(out)
		out = strings.TrimSpace(string(runes[:limit])) + "…"
	}
	return out
}
