package pdfextract

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/dyspositif/internal/pdftest"
	"github.com/tsawler/dyspositif/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func blockTexts(r *Result) []string {
	out := make([]string, len(r.Blocks))
	for i, b := range r.Blocks {
		out[i] = b.Text
	}
	return out
}

func TestExtract_NotPDF(t *testing.T) {
	path := writeFile(t, "notes.txt", "Ceci n'est pas un PDF.\n")

	_, err := New(nil).Extract(context.Background(), path)
	if !errors.Is(err, ErrNotPDF) {
		t.Fatalf("Extract() error = %v, want ErrNotPDF", err)
	}
}

func TestExtract_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.pdf", "")

	_, err := New(nil).Extract(context.Background(), path)
	if !errors.Is(err, ErrNotPDF) {
		t.Fatalf("Extract() error = %v, want ErrNotPDF", err)
	}
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := New(nil).Extract(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestExtract_Malformed(t *testing.T) {
	path := writeFile(t, "broken.pdf", "%PDF-1.4\nthis is not a real document\n%%EOF\n")

	_, err := New(nil).Extract(context.Background(), path)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("Extract() error = %v, want ErrMalformed", err)
	}
}

func TestExtract_Malformed_SinglePrefix(t *testing.T) {
	path := writeFile(t, "broken.pdf", "%PDF-1.4\nthis is not a real document\n%%EOF\n")

	_, err := New(nil).Extract(context.Background(), path)
	if n := strings.Count(err.Error(), "malformed PDF"); n != 1 {
		t.Errorf("error %q repeats the prefix %d times", err, n)
	}
}

func encryptedPage() [][]pdftest.Line {
	return [][]pdftest.Line{{
		{X: 72, Y: 750, Size: 12, Text: "Texte secret"},
		{X: 72, Y: 735, Size: 12, Text: "Les chats dorment."},
	}}
}

func TestExtract_Encrypted(t *testing.T) {
	path := pdftest.WriteEncrypted(t, encryptedPage(), &pdftest.Encryption{UserPassword: "secret"})

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"no password", "", true},
		{"wrong password", "faux", true},
		{"right password", "secret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Password = tt.password

			result, err := NewWithConfig(cfg, nil).Extract(context.Background(), path)
			if tt.wantErr {
				if !errors.Is(err, ErrEncrypted) {
					t.Fatalf("Extract() error = %v, want ErrEncrypted", err)
				}
				if errors.Is(err, ErrMalformed) {
					t.Errorf("error %v should not be ErrMalformed", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			joined := strings.Join(blockTexts(result), " ")
			if !strings.Contains(joined, "Texte secret") || !strings.Contains(joined, "chats dorment") {
				t.Errorf("decrypted text = %q", joined)
			}
		})
	}
}

func TestExtract_UnsupportedEncryption(t *testing.T) {
	path := pdftest.WriteEncrypted(t, encryptedPage(), &pdftest.Encryption{AES256: true})

	cfg := DefaultConfig()
	cfg.Password = "secret"
	_, err := NewWithConfig(cfg, nil).Extract(context.Background(), path)
	if !errors.Is(err, ErrEncrypted) {
		t.Fatalf("Extract() error = %v, want ErrEncrypted", err)
	}
	if errors.Is(err, ErrMalformed) {
		t.Errorf("error %v should not be ErrMalformed", err)
	}
	if !strings.Contains(err.Error(), "unsupported encryption") {
		t.Errorf("error %q does not name the cause", err)
	}
}

func TestHasEncryptEntry(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"plain", pdftest.Build(encryptedPage()), false},
		{"rc4", pdftest.BuildEncrypted(encryptedPage(), &pdftest.Encryption{UserPassword: "x"}), true},
		{"aes256", pdftest.BuildEncrypted(encryptedPage(), &pdftest.Encryption{AES256: true}), true},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bytes.NewReader(tt.data)
			if got := hasEncryptEntry(r, int64(len(tt.data))); got != tt.want {
				t.Errorf("hasEncryptEntry() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParserDetail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"malformed PDF: 256-bit encryption key", "256-bit encryption key"},
		{"malformed PDF file: missing startxref", "missing startxref"},
		{"unsupported PDF: encryption version V=5", "encryption version V=5"},
		{"not a PDF file: invalid header", "not a PDF file: invalid header"},
	}

	for _, tt := range tests {
		if got := parserDetail(errors.New(tt.in)); got != tt.want {
			t.Errorf("parserDetail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtract_SinglePage(t *testing.T) {
	path := pdftest.Write(t, [][]pdftest.Line{{
		{X: 72, Y: 750, Size: 12, Text: "Bonjour le monde"},
		{X: 72, Y: 735, Size: 12, Text: "Les chats mangent."},
	}})

	result, err := New(nil).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if len(result.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(result.Pages))
	}
	if result.Pages[0].Width != 595 || result.Pages[0].Height != 842 {
		t.Errorf("page size = %+v, want 595x842", result.Pages[0])
	}

	joined := strings.Join(blockTexts(result), "\n")
	for _, want := range []string{"Bonjour", "chats"} {
		if !strings.Contains(joined, want) {
			t.Errorf("extracted text %q does not contain %q", joined, want)
		}
	}
	if strings.Index(joined, "Bonjour") > strings.Index(joined, "chats") {
		t.Errorf("lines out of reading order: %q", joined)
	}

	for _, b := range result.Blocks {
		if b.Page != 0 {
			t.Errorf("block %q on page %d, want 0", b.Text, b.Page)
		}
		if b.FontSize <= 0 {
			t.Errorf("block %q has font size %v", b.Text, b.FontSize)
		}
	}
}

func TestExtract_NoText(t *testing.T) {
	path := pdftest.Write(t, [][]pdftest.Line{{}})

	_, err := New(nil).Extract(context.Background(), path)
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("Extract() error = %v, want ErrNoText", err)
	}
}

func TestExtract_PageSelection(t *testing.T) {
	path := pdftest.Write(t, [][]pdftest.Line{
		{{X: 72, Y: 750, Size: 12, Text: "Premiere"}},
		{{X: 72, Y: 750, Size: 12, Text: "Deuxieme"}},
	})

	cfg := DefaultConfig()
	cfg.Pages = []int{2}
	result, err := NewWithConfig(cfg, nil).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	joined := strings.Join(blockTexts(result), " ")
	if strings.Contains(joined, "Premiere") {
		t.Errorf("page 1 should be skipped, got %q", joined)
	}
	if !strings.Contains(joined, "Deuxieme") {
		t.Errorf("page 2 missing from %q", joined)
	}
	if len(result.Pages) != 2 {
		t.Errorf("Pages should cover the whole document, got %d", len(result.Pages))
	}

	cfg.Pages = []int{3}
	_, err = NewWithConfig(cfg, nil).Extract(context.Background(), path)
	if !errors.Is(err, ErrPageRange) {
		t.Errorf("Extract() error = %v, want ErrPageRange", err)
	}
}

func TestExtract_Cancelled(t *testing.T) {
	path := pdftest.Write(t, [][]pdftest.Line{{{X: 72, Y: 750, Size: 12, Text: "Texte"}}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).Extract(ctx, path)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Extract() error = %v, want context.Canceled", err)
	}
}

func TestResolvePages(t *testing.T) {
	tests := []struct {
		name    string
		pages   []int
		n       int
		want    []int
		wantErr bool
	}{
		{"all", nil, 3, []int{0, 1, 2}, false},
		{"subset", []int{3, 1}, 3, []int{0, 2}, false},
		{"duplicates", []int{2, 2}, 3, []int{1}, false},
		{"zero", []int{0}, 3, nil, true},
		{"too large", []int{4}, 3, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolvePages(tt.pages, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolvePages() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrPageRange) {
					t.Errorf("error = %v, want ErrPageRange", err)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("resolvePages() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("resolvePages()[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCheckHeader(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"pdf", "%PDF-1.7\n", false},
		{"leading junk", "\x00\x00%PDF-1.4\n", false},
		{"text", "hello", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkHeader(strings.NewReader(tt.content))
			if (err != nil) != tt.wantErr {
				t.Errorf("checkHeader() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExtract_FontStyles(t *testing.T) {
	// Every glyph is 6pt wide at 12pt
	path := pdftest.Write(t, [][]pdftest.Line{{
		{X: 72, Y: 700, Size: 12, Text: "Les"},
		{X: 96, Y: 700, Size: 12, Text: "chats", Font: "Helvetica-Bold"},
		{X: 132, Y: 700, Size: 12, Text: "dorment", Font: "Helvetica-Oblique"},
		{X: 180, Y: 700, Size: 12, Text: "bien."},
	}})

	result, err := New(nil).Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(result.Blocks) != 1 || result.Blocks[0].Text != "Les chats dorment bien." {
		t.Fatalf("blocks = %q", blockTexts(result))
	}

	want := []model.StyleRange{
		{Start: 4, End: 9, Style: model.StyleBold},
		{Start: 10, End: 17, Style: model.StyleItalic},
	}
	got := result.Blocks[0].Styles
	if len(got) != len(want) {
		t.Fatalf("styles = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("style %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
