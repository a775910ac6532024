// Package reader turns source text into ast.Value forms: a character-level
// Scanner and the S-expression Reader built on top of it.
package reader

import (
	"fmt"
)

// zero is the sentinel byte Scanner reports at end of input. It matches
// the end-of-input case in a one_of/until terminator set.
const zero = 0

// Scanner is a cursor over an immutable input buffer.
type Scanner struct {
	src string
	pos int
}

// NewScanner creates a Scanner positioned at the start of src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

// Peek returns the current character without consuming it, or the zero
// sentinel at end of input.
func (s *Scanner) Peek() byte {
	if s.pos >= len(s.src) {
		return zero
	}
	return s.src[s.pos]
}

// Next consumes and returns the current character, or the zero sentinel
// at end of input (in which case nothing is consumed).
func (s *Scanner) Next() byte {
	c := s.Peek()
	if c != zero {
		s.pos++
	}
	return c
}

// Ended reports whether the scanner has reached the end of the buffer.
func (s *Scanner) Ended() bool {
	return s.pos >= len(s.src)
}

// Rest returns the remaining, unconsumed input, for diagnostics.
func (s *Scanner) Rest() string {
	return s.src[s.pos:]
}

// OneOf consumes and returns the current character if it matches any of
// chars (zero matches end of input); otherwise it fails without consuming.
func (s *Scanner) OneOf(chars ...byte) (byte, error) {
	c := s.Peek()
	for _, want := range chars {
		if c == want {
			return s.Next(), nil
		}
	}
	return 0, fmt.Errorf("expected one of %q at %q", chars, s.Rest())
}

// Until returns the substring from the current position up to (not
// including) the first occurrence of any terminator. If the zero
// sentinel is among the terminators, running off the end is an accepted
// terminator; otherwise running off the end is an error.
func (s *Scanner) Until(terminators ...byte) (string, error) {
	endOK := false
	for _, t := range terminators {
		if t == zero {
			endOK = true
		}
	}
	start := s.pos
	for {
		c := s.Peek()
		if c == zero {
			if endOK {
				return s.src[start:s.pos], nil
			}
			return "", fmt.Errorf("ran off the end looking for one of %q", terminators)
		}
		for _, t := range terminators {
			if c == t {
				return s.src[start:s.pos], nil
			}
		}
		s.pos++
	}
}

// SkipWhitespace consumes any run of spaces, tabs and newlines.
func (s *Scanner) SkipWhitespace() {
	for {
		switch s.Peek() {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

// skipComments consumes any number of line comments (";" to end of line)
// interleaved with whitespace, so the scanner ends up at the next form or
// at end of input.
func (s *Scanner) skipComments() {
	for {
		s.SkipWhitespace()
		if s.Peek() != ';' {
			return
		}
		for s.Peek() != '\n' && s.Peek() != zero {
			s.pos++
		}
	}
}

// AtEnd skips any trailing whitespace and comments and reports whether
// nothing but end of input remains. Callers that read a buffer form by
// form (load) use this instead of Ended to avoid stopping on trailing
// comment-only tail text.
func (s *Scanner) AtEnd() bool {
	s.skipComments()
	return s.Ended()
}
