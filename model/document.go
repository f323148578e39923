package model

import "strings"

// BlockKind identifies the structural role of a block
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockListItem
)

// String returns a string representation of the block kind
func (k BlockKind) String() string {
	switch k {
	case BlockParagraph:
		return "paragraph"
	case BlockHeading:
		return "heading"
	case BlockListItem:
		return "list_item"
	default:
		return "unknown"
	}
}

// Block is one reflowed unit of text: a heading, a paragraph or a list item
type Block struct {
	Kind BlockKind

	// Level is the heading level (1-6). Zero for non-heading blocks.
	Level int

	// Page is the 0-based index of the page the block starts on
	Page int

	// FontSize is the dominant font size of the block in points
	FontSize float64

	// Indent is the first-line indentation in em
	Indent float64

	BBox BBox

	Tokens []Token
}

// Text returns the block text exactly as it was tokenized
func (b *Block) Text() string {
	var sb strings.Builder
	for _, tok := range b.Tokens {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// IsHeading returns true if the block is a heading
func (b *Block) IsHeading() bool {
	return b.Kind == BlockHeading
}

// Document represents a reflowed document ready for annotation
type Document struct {
	// Title is the document title, usually the first heading
	Title string

	// Source is the base name of the PDF the document was built from
	Source string

	// PageCount is the number of pages read from the source
	PageCount int

	// Blocks are in reading order
	Blocks []Block
}

// NewDocument creates a new empty document for the given source name
func NewDocument(source string) *Document {
	return &Document{
		Source: source,
		Blocks: make([]Block, 0),
	}
}

// AddBlock appends a block to the document
func (d *Document) AddBlock(block Block) {
	d.Blocks = append(d.Blocks, block)
}

// BlockCount returns the number of blocks
func (d *Document) BlockCount() int {
	return len(d.Blocks)
}

// Text returns all block texts separated by blank lines
func (d *Document) Text() string {
	parts := make([]string, 0, len(d.Blocks))
	for i := range d.Blocks {
		parts = append(parts, d.Blocks[i].Text())
	}
	return strings.Join(parts, "\n\n")
}

// WordCount returns the number of word tokens in the document
func (d *Document) WordCount() int {
	count := 0
	for i := range d.Blocks {
		for _, tok := range d.Blocks[i].Tokens {
			if tok.Kind == TokenWord {
				count++
			}
		}
	}
	return count
}

// EachToken calls fn for every token in reading order. The pointer refers to
// the token stored in the document so fn may attach annotations.
func (d *Document) EachToken(fn func(block *Block, tok *Token)) {
	for i := range d.Blocks {
		block := &d.Blocks[i]
		for j := range block.Tokens {
			fn(block, &block.Tokens[j])
		}
	}
}
