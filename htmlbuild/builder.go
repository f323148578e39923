package htmlbuild

import (
	"bytes"
	"fmt"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/dyspositif/model"
)

const (
	// DefaultStylesheetName is the file name of the companion stylesheet
	DefaultStylesheetName = "style.css"

	// Generator is written to the generator meta tag
	Generator = "dyspositif"
)

// Options controls page rendering
type Options struct {
	// StylesheetHref is the relative link to the stylesheet
	StylesheetHref string

	// PageBreaks inserts a separator between blocks of different source
	// pages
	PageBreaks bool
}

// DefaultOptions returns the default rendering options
func DefaultOptions() Options {
	return Options{
		StylesheetHref: DefaultStylesheetName,
		PageBreaks:     true,
	}
}

// Builder renders documents as HTML
type Builder struct {
	opts Options
}

// New creates a builder with default options
func New() *Builder {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a builder with custom options
func NewWithOptions(opts Options) *Builder {
	if opts.StylesheetHref == "" {
		opts.StylesheetHref = DefaultStylesheetName
	}
	return &Builder{opts: opts}
}

// Build renders doc as a complete HTML5 page
func (b *Builder) Build(doc *model.Document) ([]byte, error) {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	page := element(atom.Html, attr("lang", "fr"))
	page.AppendChild(b.head(doc))

	body := element(atom.Body)
	body.AppendChild(b.main(doc))
	page.AppendChild(body)
	root.AppendChild(page)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (b *Builder) head(doc *model.Document) *html.Node {
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(element(atom.Meta,
		attr("name", "viewport"),
		attr("content", "width=device-width, initial-scale=1")))
	head.AppendChild(element(atom.Meta, attr("name", "generator"), attr("content", Generator)))
	if doc.Source != "" {
		head.AppendChild(element(atom.Meta, attr("name", "source"), attr("content", "Source PDF: "+doc.Source)))
	}

	title := element(atom.Title)
	title.AppendChild(textNode(doc.Title))
	head.AppendChild(title)

	head.AppendChild(element(atom.Link, attr("rel", "stylesheet"), attr("href", b.opts.StylesheetHref)))
	return head
}

func (b *Builder) main(doc *model.Document) *html.Node {
	content := element(atom.Main)

	var list *html.Node
	for i := range doc.Blocks {
		block := &doc.Blocks[i]

		if b.opts.PageBreaks && i > 0 && block.Page != doc.Blocks[i-1].Page {
			list = nil
			content.AppendChild(pageBreak(block.Page))
		}

		if block.Kind == model.BlockListItem {
			if list == nil {
				list = element(atom.Ul)
				content.AppendChild(list)
			}
			li := element(atom.Li)
			appendTokens(li, block.Tokens)
			list.AppendChild(li)
			continue
		}
		list = nil

		node := blockElement(block)
		appendTokens(node, block.Tokens)
		content.AppendChild(node)
	}
	return content
}

// blockElement returns the empty element for a heading or paragraph
func blockElement(block *model.Block) *html.Node {
	if block.Kind == model.BlockHeading {
		return element(headingAtom(block.Level))
	}

	p := element(atom.P)
	if block.Indent > 0 {
		p.Attr = append(p.Attr, attr("style", "text-indent:"+strconv.FormatFloat(block.Indent, 'f', -1, 64)+"em"))
	}
	return p
}

func headingAtom(level int) atom.Atom {
	switch {
	case level <= 1:
		return atom.H1
	case level == 2:
		return atom.H2
	case level == 3:
		return atom.H3
	case level == 4:
		return atom.H4
	case level == 5:
		return atom.H5
	default:
		return atom.H6
	}
}

func pageBreak(page int) *html.Node {
	div := element(atom.Div, attr("class", "page-break"))
	div.AppendChild(textNode(fmt.Sprintf("— Page %d —", page+1)))
	return div
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func span(class string, text string) *html.Node {
	n := element(atom.Span, attr("class", class))
	n.AppendChild(textNode(text))
	return n
}
