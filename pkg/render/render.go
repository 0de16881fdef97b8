// Package render turns the model's HTML replies into wrapped, styled terminal text.
package render

import (
	"fmt"
	"strings"

	"urcloud_chat/pkg/ui/styles"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

const maxDepth = 64

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	return p
}

// Sanitize strips anything from model output that is not plain structural HTML.
func Sanitize(content string) string {
	return policy.Sanitize(content)
}

// HTML renders an HTML fragment into lines no wider than width.
func HTML(content string, width int) string {
	if width < 8 {
		width = 8
	}

	doc, err := html.Parse(strings.NewReader(Sanitize(content)))
	if err != nil {
		return ansi.Wrap(content, width, "")
	}

	r := &renderer{width: width}
	r.blocks(doc, 0, 0)
	r.trimTrailingBlank()
	return strings.Join(r.lines, "\n")
}

// Plain renders content without styling and without wrapping long lines.
func Plain(content string) string {
	return ansi.Strip(HTML(content, 1<<15))
}

// Text wraps plain user text, keeping its line breaks.
func Text(content string, width int) string {
	if width < 1 {
		width = 1
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return ansi.Wrap(sanitizeControl(content), width, "")
}

type renderer struct {
	width int
	lines []string
}

func (r *renderer) gap() {
	if len(r.lines) > 0 && r.lines[len(r.lines)-1] != "" {
		r.lines = append(r.lines, "")
	}
}

func (r *renderer) trimTrailingBlank() {
	for len(r.lines) > 0 && r.lines[len(r.lines)-1] == "" {
		r.lines = r.lines[:len(r.lines)-1]
	}
}

// blocks renders the children of n, grouping consecutive inline content into paragraphs.
func (r *renderer) blocks(n *html.Node, indent, depth int) {
	if depth > maxDepth {
		return
	}
	var inline strings.Builder
	flush := func() {
		if text := strings.TrimSpace(inline.String()); ansi.Strip(text) != "" {
			r.paragraph(text, indent, "")
		}
		inline.Reset()
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isBlock(c) {
			flush()
			r.block(c, indent, depth+1)
			continue
		}
		r.inline(c, &inline, depth+1)
	}
	flush()
}

func (r *renderer) block(n *html.Node, indent, depth int) {
	switch n.Data {
	case "script", "style", "head", "noscript", "template":
		return
	case "h1", "h2":
		r.gap()
		r.paragraph(styles.HeadingStyle.Render(r.inlineText(n, depth)), indent, "")
		r.gap()
	case "h3", "h4", "h5", "h6":
		r.gap()
		r.paragraph(styles.SubheadingStyle.Render("▍"+r.inlineText(n, depth)), indent, "")
	case "p":
		r.gap()
		r.blocks(n, indent, depth)
		r.gap()
	case "ul", "ol":
		// Nested lists hug their parent item.
		if indent == 0 {
			r.gap()
		}
		r.list(n, indent, depth)
		if indent == 0 {
			r.gap()
		}
	case "li":
		r.listItem(n, indent, "• ", depth)
	case "table":
		r.gap()
		r.table(n, indent)
		r.gap()
	case "blockquote":
		r.gap()
		r.blocks(n, indent+2, depth)
		r.gap()
	case "pre":
		r.gap()
		r.pre(n, indent)
		r.gap()
	case "hr":
		r.gap()
		r.lines = append(r.lines, strings.Repeat(" ", indent)+styles.FooterStyle.Render(strings.Repeat("─", max(r.width-indent, 1))))
		r.gap()
	default:
		r.blocks(n, indent, depth)
	}
}

func (r *renderer) list(n *html.Node, indent, depth int) {
	ordered := n.Data == "ol"
	index := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data != "li" {
			r.block(c, indent+2, depth+1)
			continue
		}
		index++
		marker := "• "
		if ordered {
			marker = fmt.Sprintf("%d. ", index)
		}
		r.listItem(c, indent, marker, depth+1)
	}
}

// listItem renders the inline content of li after the marker; nested blocks
// are indented under the marker.
func (r *renderer) listItem(n *html.Node, indent int, marker string, depth int) {
	childIndent := indent + runewidth.StringWidth(marker)
	prefix := marker
	var inline strings.Builder
	flush := func() {
		text := strings.TrimSpace(inline.String())
		inline.Reset()
		if ansi.Strip(text) == "" {
			return
		}
		r.paragraph(text, indent, prefix)
		prefix = strings.Repeat(" ", runewidth.StringWidth(marker))
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.ElementNode && c.Data == "p":
			if inline.Len() > 0 {
				inline.WriteString("\n")
			}
			r.inlineChildren(c, &inline, depth+1)
		case isBlock(c):
			flush()
			r.block(c, childIndent, depth+1)
		default:
			r.inline(c, &inline, depth+1)
		}
	}
	flush()
}

// paragraph wraps text to the available width and writes it with prefix on
// the first line and matching indentation after.
func (r *renderer) paragraph(text string, indent int, prefix string) {
	prefixWidth := runewidth.StringWidth(prefix)
	avail := r.width - indent - prefixWidth
	if avail < 4 {
		avail = 4
	}

	pad := strings.Repeat(" ", indent)
	cont := strings.Repeat(" ", prefixWidth)
	for i, line := range strings.Split(ansi.Wrap(text, avail, ""), "\n") {
		if i == 0 {
			r.lines = append(r.lines, pad+prefix+strings.TrimRight(line, " "))
			continue
		}
		r.lines = append(r.lines, pad+cont+strings.TrimRight(line, " "))
	}
}

func (r *renderer) pre(n *html.Node, indent int) {
	text := strings.TrimRight(textContent(n), "\n")
	pad := strings.Repeat(" ", indent)
	avail := max(r.width-indent, 1)
	for _, line := range strings.Split(text, "\n") {
		line = strings.ReplaceAll(line, "\t", "    ")
		for _, part := range strings.Split(ansi.Hardwrap(line, avail, true), "\n") {
			r.lines = append(r.lines, pad+styles.CodeStyle.Render(part))
		}
	}
}

func (r *renderer) inlineText(n *html.Node, depth int) string {
	var sb strings.Builder
	r.inlineChildren(n, &sb, depth)
	return strings.TrimSpace(sb.String())
}

func (r *renderer) inlineChildren(n *html.Node, sb *strings.Builder, depth int) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.inline(c, sb, depth+1)
	}
}

func (r *renderer) inline(n *html.Node, sb *strings.Builder, depth int) {
	if depth > maxDepth {
		return
	}
	switch n.Type {
	case html.TextNode:
		sb.WriteString(collapseSpace(n.Data))
		return
	case html.ElementNode:
	default:
		r.inlineChildren(n, sb, depth)
		return
	}

	switch n.Data {
	case "script", "style":
		return
	case "br":
		sb.WriteString("\n")
	case "strong", "b":
		sb.WriteString(styles.TextBoldStyle.Render(r.inlineText(n, depth)))
	case "em", "i":
		sb.WriteString(styles.TextItalicStyle.Render(r.inlineText(n, depth)))
	case "code":
		sb.WriteString(styles.CodeStyle.Render(r.inlineText(n, depth)))
	case "a":
		label := r.inlineText(n, depth)
		href := strings.TrimSpace(attr(n, "href"))
		switch {
		case label == "" && href != "":
			sb.WriteString(styles.LinkStyle.Render(href))
		case href == "" || href == ansi.Strip(label) || strings.HasPrefix(href, "#"):
			sb.WriteString(label)
		default:
			sb.WriteString(label)
			sb.WriteString(" ")
			sb.WriteString(styles.LinkStyle.Render(href))
		}
	case "img":
		if alt := strings.TrimSpace(attr(n, "alt")); alt != "" {
			fmt.Fprintf(sb, "[画像: %s]", alt)
		}
	default:
		r.inlineChildren(n, sb, depth)
	}
}

func isBlock(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "html", "head", "body", "div", "section", "article", "main", "header", "footer", "nav",
		"p", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "table", "blockquote", "pre", "hr",
		"script", "style", "noscript", "template":
		return true
	}
	return false
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
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "br" {
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

func collapseSpace(s string) string {
	if s == "" {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				sb.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		if r < 0x20 || r == 0x7f {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func sanitizeControl(content string) string {
	var sb strings.Builder
	sb.Grow(len(content))
	for _, r := range content {
		switch r {
		case '\n':
			sb.WriteRune(r)
			continue
		case '\t':
			sb.WriteString("    ")
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
