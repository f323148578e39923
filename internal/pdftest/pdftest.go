// Package pdftest builds small text-only PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Line is one line of text placed at X, Y (baseline, points from the
// bottom-left corner) at Size points. Font is a standard Type1 font name
// and defaults to Helvetica.
type Line struct {
	X, Y float64
	Size float64
	Text string
	Font string
}

const defaultFont = "Helvetica"

// glyphWidth is the advance of every character, in thousandths of an em
const glyphWidth = 500

// Build returns a PDF document with one A4 page per element of pages.
// Text must be WinAnsi (Latin-1) encodable.
func Build(pages [][]Line) []byte {
	return BuildEncrypted(pages, nil)
}

// BuildEncrypted is Build with a security handler. A nil enc writes a
// plain document.
func BuildEncrypted(pages [][]Line, enc *Encryption) []byte {
	h := newHandler(enc)
	var objects []string

	// 1: catalog, 2: pages, 3: Helvetica; then content+page pairs, then
	// the other fonts
	fonts := fontNames(pages)
	resources := make([]string, len(fonts))
	for k := range fonts {
		num := 3
		if k > 0 {
			num = 3 + 2*len(pages) + k
		}
		resources[k] = fmt.Sprintf("/F%d %d 0 R", k+1, num)
	}

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 5+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 595 842] >>", strings.Join(kids, " "), len(pages)),
		fontObject(fonts[0]),
	)

	for i, lines := range pages {
		stream := h.stream(4+2*i, contentStream(lines, fonts))
		objects = append(objects,
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources << /Font << %s >> >> /Contents %d 0 R >>", strings.Join(resources, " "), 4+2*i),
		)
	}
	for _, name := range fonts[1:] {
		objects = append(objects, fontObject(name))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R%s >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, h.trailer(), xref)
	return buf.Bytes()
}

// Write builds the document into a temporary file and returns its path
func Write(t testing.TB, pages [][]Line) string {
	t.Helper()
	return WriteEncrypted(t, pages, nil)
}

// WriteEncrypted is Write with a security handler
func WriteEncrypted(t testing.TB, pages [][]Line, enc *Encryption) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.pdf")
	if err := os.WriteFile(path, BuildEncrypted(pages, enc), 0o644); err != nil {
		t.Fatalf("failed to write test PDF: %v", err)
	}
	return path
}

// fontNames lists the fonts used by pages, Helvetica first
func fontNames(pages [][]Line) []string {
	names := []string{defaultFont}
	for _, lines := range pages {
		for _, l := range lines {
			if l.Font != "" && fontIndex(names, l.Font) < 0 {
				names = append(names, l.Font)
			}
		}
	}
	return names
}

func fontIndex(names []string, font string) int {
	if font == "" {
		font = defaultFont
	}
	for i, name := range names {
		if name == font {
			return i
		}
	}
	return -1
}

func fontObject(name string) string {
	widths := make([]string, 0, 224)
	for c := 32; c <= 255; c++ {
		widths = append(widths, fmt.Sprint(glyphWidth))
	}
	return fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 255 /Widths [%s] >>",
		name, strings.Join(widths, " "))
}

func contentStream(lines []Line, fonts []string) string {
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "BT /F%d %g Tf %g %g Td (%s) Tj ET\n", fontIndex(fonts, l.Font)+1, l.Size, l.X, l.Y, escape(l.Text))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// escape encodes text as a PDF literal string in WinAnsi
func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '(' || r == ')' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x80:
			b.WriteRune(r)
		case r <= 0xFF:
			fmt.Fprintf(&b, "\\%03o", r)
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}
