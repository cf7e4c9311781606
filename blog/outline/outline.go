// Package outline consumes rendered post HTML: it extracts the heading
// structure for a table of contents and tracks which heading is currently
// being read as the viewport scrolls.
package outline

import (
	"strings"

	"golang.org/x/net/html"
)

// TitleAnchor is the id of the synthetic top node representing the page
// title itself.
const TitleAnchor = "title"

// Node is one entry in a post's outline. Level 0 is the synthetic title
// node; levels 1 to 3 mirror the heading elements.
type Node struct {
	Level    int    `json:"level"`
	Text     string `json:"text"`
	ID       string `json:"id"`
	Children []Node `json:"children,omitempty"`
}

// Extract scans heading anchors in document order and builds the outline:
// h1 and h2 are top level, h3 nests under the nearest preceding h2, and an
// h3 with no preceding h2 in the current run becomes top level itself. A
// synthetic node for the page title is prepended when topTitle is set.
// Headings without an anchor id or without text are skipped.
func Extract(htmlContent, topTitle string) []Node {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil
	}

	var items []Node
	if topTitle != "" {
		items = append(items, Node{Level: 0, Text: topTitle, ID: TitleAnchor})
	}

	currentH2 := -1
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && headingLevel(n.Data) > 0 {
			level := headingLevel(n.Data)
			id := attr(n, "id")
			text := strings.TrimSpace(textContent(n))

			if id != "" && text != "" {
				node := Node{Level: level, Text: text, ID: id}
				switch {
				case level <= 2:
					items = append(items, node)
					if level == 2 {
						currentH2 = len(items) - 1
					} else {
						currentH2 = -1
					}
				case currentH2 >= 0:
					items[currentH2].Children = append(items[currentH2].Children, node)
				default:
					items = append(items, node)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return items
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	}
	return 0
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(textContent(child))
	}
	return b.String()
}
