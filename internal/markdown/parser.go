package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Parser wraps goldmark for markdown processing.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(),
	}
}

// Chapter holds what the search index stores for one chapter file.
type Chapter struct {
	Content  []byte
	Headings []Heading
	Plain    string
}

// Parse extracts headings and syntax-free text from markdown content.
func (p *Parser) Parse(content []byte) *Chapter {
	return &Chapter{
		Content:  content,
		Headings: ExtractHeadings(content),
		Plain:    p.plainText(content),
	}
}

// HeadingText joins the chapter's heading texts for indexing.
func (c *Chapter) HeadingText() string {
	texts := make([]string, len(c.Headings))
	for i, h := range c.Headings {
		texts[i] = h.Text
	}
	return strings.Join(texts, "\n")
}

// plainText walks the goldmark AST and joins its text nodes block by
// block, dropping markdown syntax, so searches match prose rather than
// markup.
func (p *Parser) plainText(content []byte) string {
	doc := p.md.Parser().Parse(text.NewReader(content))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(content))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.Blockquote:
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.Write(seg.Value(content))
			}
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
