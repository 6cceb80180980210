package base

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Element is a single HTML element node in a parsed document.
type Element struct {
	sel *goquery.Selection
}

// ParseDocument parses r and returns the document root.
func ParseDocument(r io.Reader) (*Element, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Element{sel: doc.Selection}, nil
}

func wrap(sel *goquery.Selection) *Element {
	if sel.Length() == 0 {
		return nil
	}
	return &Element{sel: sel.First()}
}

// FindByID returns the first descendant with the given id, or nil.
func (e *Element) FindByID(id string) *Element {
	return wrap(e.sel.Find("#" + id))
}

// FindFirst returns the first descendant matching tag carrying class, or nil.
// An empty class matches any element of that tag.
func (e *Element) FindFirst(tag, class string) *Element {
	selector := tag
	if class != "" {
		selector += "." + class
	}
	return wrap(e.sel.Find(selector))
}

// ElementChildren returns the direct children that are element nodes,
// skipping text, comment and whitespace nodes.
func (e *Element) ElementChildren() []*Element {
	kids := e.sel.Children()
	children := make([]*Element, 0, kids.Length())
	for i := 0; i < kids.Length(); i++ {
		children = append(children, &Element{sel: kids.Eq(i)})
	}
	return children
}

// Text returns the combined text of the element and its descendants.
func (e *Element) Text() string {
	return e.sel.Text()
}

// StrippedStrings returns every descendant text fragment with surrounding
// whitespace removed, skipping fragments that are empty after trimming.
func (e *Element) StrippedStrings() []string {
	var out []string
	for _, n := range e.sel.Nodes {
		collectStrings(n, &out)
	}
	return out
}

// StrippedText joins StrippedStrings with single spaces.
func (e *Element) StrippedText() string {
	return strings.Join(e.StrippedStrings(), " ")
}

func collectStrings(n *html.Node, out *[]string) {
	if n.Type == html.TextNode {
		if s := strings.TrimSpace(n.Data); s != "" {
			*out = append(*out, s)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectStrings(c, out)
	}
}
