package application

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// headingAnchorTransformer assigns every heading an anchor of the form
// heading-{n}, where n is the zero-based index of the heading in document
// order. Anchors are positional rather than text-derived, so duplicate
// headings never collide and the ids survive retitling.
type headingAnchorTransformer struct{}

func (t *headingAnchorTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	n := 0
	ast.Walk(node, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := child.(*ast.Heading); !ok {
			return ast.WalkContinue, nil
		}
		child.SetAttributeString("id", []byte(fmt.Sprintf("heading-%d", n)))
		n++
		return ast.WalkContinue, nil
	})
}

// codeBlockRenderer renders fenced code blocks through the highlighter.
// Fences with no language, an unsupported one, or a highlighter failure
// degrade to a plain preformatted block; nothing here ever fails the render.
type codeBlockRenderer struct {
	highlighter *Highlighter
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	block := node.(*ast.FencedCodeBlock)
	lang := string(block.Language(source))

	var code bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(source))
	}

	if lang != "" && r.highlighter.Supports(lang) {
		var highlighted bytes.Buffer
		if err := r.highlighter.Highlight(&highlighted, code.String(), lang); err == nil {
			w.Write(highlighted.Bytes())
			return ast.WalkContinue, nil
		} else {
			log.Warn().Err(err).Str("language", lang).Msg("Falling back to plain code block")
		}
	}

	w.WriteString("<pre><code>")
	w.WriteString(stdhtml.EscapeString(code.String()))
	w.WriteString("</code></pre>\n")
	return ast.WalkContinue, nil
}

// MarkdownRenderer defines the interface for converting markdown to HTML.
type MarkdownRenderer interface {
	Render(markdown string) (string, error)
}

type MarkdownRendererImpl struct {
	renderer  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewMarkdownRenderer builds the rendering pipeline: goldmark with GFM
// extensions, positional heading anchors, highlighter-backed code fences,
// and a sanitizer pass on the way out. No markdown-derived HTML leaves this
// component unsanitized.
func NewMarkdownRenderer(highlighter *Highlighter) *MarkdownRendererImpl {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(&headingAnchorTransformer{}, 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Raw HTML is passed through here and scrubbed by the sanitizer.
			html.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(&codeBlockRenderer{highlighter: highlighter}, 200),
			),
		),
	)

	return &MarkdownRendererImpl{
		renderer:  md,
		sanitizer: newSanitizerPolicy(),
	}
}

func (r *MarkdownRendererImpl) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.renderer.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return r.sanitizer.Sanitize(buf.String()), nil
}

var (
	headingAnchorPattern = regexp.MustCompile(`^heading-\d+$`)
	codeClassPattern     = regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)
)

func newSanitizerPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("span")
	p.AllowAttrs("id").Matching(headingAnchorPattern).
		OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").Matching(codeClassPattern).
		OnElements("pre", "code", "span")
	return p
}
