package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// hiddenElements never contribute visible text.
var hiddenElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// VisibleText joins every non-blank text node under sel with single spaces.
func VisibleText(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if text := Collapse(n.Data); text != "" {
			*parts = append(*parts, text)
		}
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		if hiddenElements[n.Data] {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// SectionText finds the first visible text node matching pattern and returns the
// visible text of its closest ancestor among containers.
func SectionText(doc *goquery.Document, pattern *regexp.Regexp, containers ...string) (string, bool) {
	if doc == nil || pattern == nil {
		return "", false
	}

	allowed := make(map[string]bool, len(containers))
	for _, c := range containers {
		allowed[c] = true
	}

	var hit *html.Node
	for _, root := range doc.Nodes {
		hit = findText(root, pattern)
		if hit != nil {
			break
		}
	}
	if hit == nil {
		return "", false
	}

	for p := hit.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && allowed[p.Data] {
			text := VisibleText(goquery.NewDocumentFromNode(p).Selection)
			return text, text != ""
		}
	}
	return "", false
}

func findText(n *html.Node, pattern *regexp.Regexp) *html.Node {
	if n.Type == html.ElementNode && hiddenElements[n.Data] {
		return nil
	}
	if n.Type == html.TextNode && pattern.MatchString(n.Data) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findText(c, pattern); found != nil {
			return found
		}
	}
	return nil
}

// Collapse joins whitespace-separated fields with single spaces.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
