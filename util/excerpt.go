package util

import (
	"io"
	"strings"

	"gitlab.com/golang-commonmark/markdown"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var markdownParser = markdown.New(markdown.HTML(false), markdown.Linkify(false), markdown.Typographer(true), markdown.MaxNesting(10))

// RenderMarkdown translates CommonMark Markdown to HTML. Raw HTML in the
// input is not passed through.
func RenderMarkdown(input string) string {
	return markdownParser.RenderToString([]byte(input))
}

// Excerpt renders markdown and boils the result down to plain text of at
// most maxRunes runes, for list views which have no room for block markup.
func Excerpt(input string, maxRunes int) string {

	parsed, err := html.ParseFragment(
		io.MultiReader(
			strings.NewReader("<body>"),
			strings.NewReader(RenderMarkdown(input)),
			strings.NewReader("</body>"),
		),
		&html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Html,
			Data:     "html",
		},
	)
	if err != nil {
		return Trunc(input, maxRunes)
	}

	var texts []string
	for _, root := range parsed {
		collectText(root, &texts)
	}

	return Trunc(strings.Join(strings.Fields(strings.Join(texts, " ")), " "), maxRunes)
}

func collectText(node *html.Node, texts *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		*texts = append(*texts, node.Data)
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, texts)
	}
}
