package reader

import (
	"fmt"
	"strconv"

	"github.com/tailcall/cpslisp/ast"
)

// Read parses one top-level S-expression from s. At end of input (no form
// left to read) it returns ast.Nil, matching the spec's "no form" sentinel
// — callers that must distinguish "read nil" from "read nothing" should
// check s.AtEnd() first.
func Read(s *Scanner) (ast.Value, error) {
	s.skipComments()
	if s.Ended() {
		return ast.Nil, nil
	}
	switch s.Peek() {
	case '\'':
		s.Next()
		quoted, err := Read(s)
		if err != nil {
			return nil, err
		}
		return ast.List(ast.Sym("quote"), quoted), nil
	case '(':
		return readList(s)
	default:
		return readAtom(s)
	}
}

func readList(s *Scanner) (ast.Value, error) {
	if _, err := s.OneOf('('); err != nil {
		return nil, err
	}
	return readListRest(s)
}

func readListRest(s *Scanner) (ast.Value, error) {
	s.skipComments()
	if s.Ended() {
		return nil, fmt.Errorf("unterminated list at %q", s.Rest())
	}
	if s.Peek() == ')' {
		s.Next()
		return ast.Nil, nil
	}
	first, err := Read(s)
	if err != nil {
		return nil, err
	}
	rest, err := readListRest(s)
	if err != nil {
		return nil, err
	}
	return ast.NewPair(first, rest), nil
}

func readAtom(s *Scanner) (ast.Value, error) {
	if s.Peek() == '"' {
		s.Next()
		text, err := s.Until('"')
		if err != nil {
			return nil, fmt.Errorf("unterminated string at %q", s.Rest())
		}
		if _, err := s.OneOf('"'); err != nil {
			return nil, err
		}
		return ast.Str(text), nil
	}
	word, err := s.Until(' ', '\t', '\n', '\r', ')', zero)
	if err != nil {
		return nil, err
	}
	return atomFromWord(word), nil
}

func atomFromWord(word string) ast.Value {
	switch word {
	case "":
		return ast.Nil
	case "nil", "null":
		return ast.Nil
	case "true":
		return ast.True
	case "false":
		return ast.False
	}
	if isAllDigits(word) {
		n, err := strconv.ParseInt(word, 10, 64)
		if err == nil {
			return ast.Int(n)
		}
	}
	return ast.Sym(word)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
