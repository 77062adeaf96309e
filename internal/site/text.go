package site

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockElements start on a new line when rendered as text.
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "header": true,
	"footer": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "ul": true, "ol": true, "li": true, "blockquote": true, "br": true,
}

// Text renders an HTML fragment as plain text. Block elements are separated
// by blank lines, list items get a bullet, scripts and styles are dropped.
func Text(fragment string) (string, error) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	})
	if err != nil {
		return "", fmt.Errorf("parse fragment: %w", err)
	}

	var blocks []string
	var line strings.Builder

	flush := func() {
		text := strings.Join(strings.Fields(line.String()), " ")
		if text != "" {
			blocks = append(blocks, text)
		}
		line.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			line.WriteString(n.Data)
			return
		case html.ElementNode:
			tag := strings.ToLower(n.Data)
			if tag == "script" || tag == "style" || tag == "noscript" {
				return
			}
			if blockElements[tag] {
				flush()
			}
			if tag == "li" {
				line.WriteString("• ")
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			if blockElements[tag] {
				flush()
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range nodes {
		walk(n)
	}
	flush()

	return strings.Join(blocks, "\n\n"), nil
}
