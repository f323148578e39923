package htmlbuild

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/dyspositif/model"
)

// appendTokens renders the tokens of a block into parent. Consecutive
// tokens sharing a style are wrapped in one emphasis element.
func appendTokens(parent *html.Node, tokens []model.Token) {
	for i := 0; i < len(tokens); {
		j := i + 1
		for j < len(tokens) && tokens[j].Style == tokens[i].Style {
			j++
		}
		target := emphasis(parent, tokens[i].Style)
		for k := i; k < j; k++ {
			appendToken(target, &tokens[k])
		}
		i = j
	}
}

// emphasis appends the <strong> and <em> elements for style to parent and
// returns the innermost one. Plain text renders into parent itself.
func emphasis(parent *html.Node, style model.Style) *html.Node {
	target := parent
	if style.Has(model.StyleBold) {
		n := element(atom.Strong)
		target.AppendChild(n)
		target = n
	}
	if style.Has(model.StyleItalic) {
		n := element(atom.Em)
		target.AppendChild(n)
		target = n
	}
	return target
}

// appendToken renders one token into parent
func appendToken(parent *html.Node, tok *model.Token) {
	switch {
	case tok.Kind == model.TokenWord && len(tok.Syllables) > 0:
		appendSyllables(parent, tok)
	case tok.Kind == model.TokenWord && len(tok.Mute) > 0:
		appendMuteRuns(parent, []rune(tok.Text), 0, tok.Mute)
	case tok.Kind == model.TokenNumber && tok.Digits != nil:
		appendDigits(parent, tok)
	default:
		appendText(parent, tok.Text)
	}
}

// appendText adds text, merging with a preceding text node
func appendText(parent *html.Node, s string) {
	if s == "" {
		return
	}
	if last := parent.LastChild; last != nil && last.Type == html.TextNode {
		last.Data += s
		return
	}
	parent.AppendChild(textNode(s))
}

// appendSyllables renders one span per syllable. Silent syllables keep the
// parity of the syllable before them.
func appendSyllables(parent *html.Node, tok *model.Token) {
	parity := 0
	for i, syl := range tok.Syllables {
		if syl.Silent {
			p := 0
			if i > 0 {
				p = (parity + 1) % 2
			}
			parent.AppendChild(span(fmt.Sprintf("syl-%d mute", p), syl.Text))
			continue
		}

		n := element(atom.Span, attr("class", fmt.Sprintf("syl-%d", parity)))
		appendMuteRuns(n, []rune(syl.Text), syl.Start, tok.Mute)
		parent.AppendChild(n)
		parity = (parity + 1) % 2
	}
}

// appendMuteRuns renders runes, wrapping silent letters in span.mute.
// offset is the rune index of runes[0] within the word.
func appendMuteRuns(parent *html.Node, runes []rune, offset int, mute model.MuteMask) {
	for start := 0; start < len(runes); {
		silent := mute.Has(offset + start)
		end := start + 1
		for end < len(runes) && mute.Has(offset+end) == silent {
			end++
		}

		if silent {
			parent.AppendChild(span("mute", string(runes[start:end])))
		} else {
			appendText(parent, string(runes[start:end]))
		}
		start = end
	}
}

// appendDigits renders each colored digit in its own span
func appendDigits(parent *html.Node, tok *model.Token) {
	prefix := "num-pos"
	if tok.Digits.Policy == model.NumberPolicyMulticolor {
		prefix = "num-multi"
	}

	runes := []rune(tok.Text)
	for i, r := range runes {
		class := model.Uncolored
		if i < len(tok.Digits.Classes) {
			class = tok.Digits.Classes[i]
		}
		if class == model.Uncolored {
			appendText(parent, string(r))
			continue
		}
		parent.AppendChild(span(fmt.Sprintf("%s-%d", prefix, class), string(r)))
	}
}
