// Package corenlp models tokenized sentence annotations from a
// constituency pipeline run over source documents. Annotations carry
// inclusive character offsets into the original text, so ERE mention
// spans can be aligned against sentences.
package corenlp

import (
	"slices"
	"strings"

	"github.com/calperum/textkit/core/errors"
	"github.com/calperum/textkit/core/offsets"
)

// Token is a single token with its part-of-speech tag and the
// character range it covers. Ranges are non-negative by construction.
type Token struct {
	pos  string
	text string
	span offsets.Range
}

// NewToken creates a Token from its part-of-speech tag, surface text,
// and character range.
func NewToken(pos, text string, span offsets.Range) *Token {
	return &Token{pos: pos, text: text, span: span}
}

// POS returns the part-of-speech tag.
func (t *Token) POS() string {
	return t.pos
}

// Text returns the surface text of the token.
func (t *Token) Text() string {
	return t.text
}

// Range returns the character range the token covers.
func (t *Token) Range() offsets.Range {
	return t.span
}

// Sentence is an ordered run of tokens covering one character range of
// the document.
type Sentence struct {
	index  int
	span   offsets.Range
	tokens []*Token
}

// NewSentence creates a Sentence from its zero-based position in the
// document, the character range it covers, and its tokens in order.
func NewSentence(index int, span offsets.Range, tokens []*Token) (*Sentence, error) {
	if index < 0 {
		return nil, errors.NewValidation("index", "sentence index must be non-negative")
	}
	return &Sentence{index: index, span: span, tokens: slices.Clone(tokens)}, nil
}

// Index returns the zero-based sentence position in the document.
func (s *Sentence) Index() int {
	return s.index
}

// Range returns the character range the sentence covers.
func (s *Sentence) Range() offsets.Range {
	return s.span
}

// Tokens returns the tokens in order.
func (s *Sentence) Tokens() []*Token {
	return slices.Clone(s.tokens)
}

// Text returns the token texts joined with single spaces.
func (s *Sentence) Text() string {
	parts := make([]string, len(s.tokens))
	for i, tok := range s.tokens {
		parts[i] = tok.text
	}
	return strings.Join(parts, " ")
}

// Document is an ordered sequence of sentences.
type Document struct {
	sentences []*Sentence
}

// NewDocument creates a Document from its sentences in order.
func NewDocument(sentences []*Sentence) *Document {
	return &Document{sentences: slices.Clone(sentences)}
}

// Sentences returns the sentences in order.
func (d *Document) Sentences() []*Sentence {
	return slices.Clone(d.sentences)
}

// FirstSentenceContaining returns the first sentence whose range
// contains r. The second result is false when no sentence contains it.
func (d *Document) FirstSentenceContaining(r offsets.Range) (*Sentence, bool) {
	for _, s := range d.sentences {
		if s.span.Contains(r) {
			return s, true
		}
	}
	return nil, false
}
