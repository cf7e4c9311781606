package application

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// supportedLanguages is the fixed set of languages code fences may request.
// Anything else degrades to a plain preformatted block.
var supportedLanguages = map[string]struct{}{
	"javascript": {},
	"typescript": {},
	"jsx":        {},
	"tsx":        {},
	"css":        {},
	"html":       {},
	"bash":       {},
	"json":       {},
	"markdown":   {},
	"yaml":       {},
	"python":     {},
	"sql":        {},
	"go":         {},
	"rust":       {},
}

// Highlighter turns fenced code into class-annotated markup. The emitted
// markup carries no colors itself; the light and dark stylesheets restyle it,
// so switching themes never requires a re-render.
//
// Constructed once at startup and injected into the renderer. Grammar and
// stylesheet loading is deferred to first use and guarded so concurrent first
// callers share one initialization.
type Highlighter struct {
	formatter *chromahtml.Formatter

	once     sync.Once
	light    *chroma.Style
	dark     *chroma.Style
	lightCSS string
	darkCSS  string
	initErr  error
}

func NewHighlighter() *Highlighter {
	return &Highlighter{
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.TabWidth(4),
		),
	}
}

func (h *Highlighter) init() error {
	h.once.Do(func() {
		h.light = styles.Get("github")
		h.dark = styles.Get("github-dark")

		var buf strings.Builder
		if err := h.formatter.WriteCSS(&buf, h.light); err != nil {
			h.initErr = fmt.Errorf("failed to build light stylesheet: %w", err)
			return
		}
		h.lightCSS = buf.String()

		buf.Reset()
		if err := h.formatter.WriteCSS(&buf, h.dark); err != nil {
			h.initErr = fmt.Errorf("failed to build dark stylesheet: %w", err)
			return
		}
		h.darkCSS = buf.String()
	})
	return h.initErr
}

// Supports reports whether lang is in the supported set.
func (h *Highlighter) Supports(lang string) bool {
	_, ok := supportedLanguages[strings.ToLower(lang)]
	return ok
}

// Highlight writes class-annotated markup for source to w. The caller is
// expected to fall back to a plain block on any error.
func (h *Highlighter) Highlight(w io.Writer, source, lang string) error {
	if err := h.init(); err != nil {
		return err
	}
	if !h.Supports(lang) {
		return fmt.Errorf("unsupported language %q", lang)
	}

	lexer := lexers.Get(lang)
	if lexer == nil {
		return fmt.Errorf("no lexer for %q", lang)
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return fmt.Errorf("failed to tokenise %s source: %w", lang, err)
	}
	return h.formatter.Format(w, h.light, iterator)
}

// StylesheetLight returns the CSS for the light theme.
func (h *Highlighter) StylesheetLight() (string, error) {
	if err := h.init(); err != nil {
		return "", err
	}
	return h.lightCSS, nil
}

// StylesheetDark returns the CSS for the dark theme.
func (h *Highlighter) StylesheetDark() (string, error) {
	if err := h.init(); err != nil {
		return "", err
	}
	return h.darkCSS, nil
}
