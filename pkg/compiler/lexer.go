package compiler

import "strings"

// TokKind is the lexer's token category (component C).
type TokKind int

const (
	TokIdent TokKind = iota
	TokRaw
	TokCtrl
	TokWhitespace
)

// Tok is one lexer token plus the byte length of the input it consumed.
type Tok struct {
	Kind TokKind
	Text string
	Len  int
}

const ctrlChars = "-*[]()_:"

// isIdentByte matches the lexer's Ident character class: [A-Za-z0-9/#].
func isIdentByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '/' || b == '#'
}

func isCtrlByte(b byte) bool {
	return strings.IndexByte(ctrlChars, b) >= 0
}

func isWhitespaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// lexOne reads the next token from the start of s. It returns ok=false if s
// is empty or starts with a byte outside every recognized class (the
// lex-error case in §7).
func lexOne(s string) (Tok, bool) {
	if len(s) == 0 {
		return Tok{}, false
	}

	b := s[0]
	switch {
	case b == '[':
		return lexRaw(s)
	case isCtrlByte(b):
		return Tok{Kind: TokCtrl, Text: string(b), Len: 1}, true
	case isWhitespaceByte(b):
		i := 0
		for i < len(s) && isWhitespaceByte(s[i]) {
			i++
		}
		return Tok{Kind: TokWhitespace, Text: s[:i], Len: i}, true
	case isIdentByte(b):
		i := 0
		for i < len(s) && isIdentByte(s[i]) {
			i++
		}
		return Tok{Kind: TokIdent, Text: s[:i], Len: i}, true
	default:
		return Tok{}, false
	}
}

// lexRaw scans a [...] arbitrary-value token, honoring nested brackets; the
// raw body (brackets of inner pairs preserved) becomes Text.
func lexRaw(s string) (Tok, bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return Tok{Kind: TokRaw, Text: s[1:i], Len: i + 1}, true
			}
		}
	}
	return Tok{}, false
}

// Lex tokenizes the entire input, stopping at the first unrecognized
// character. consumed is the number of input bytes successfully lexed.
func Lex(s string) (toks []Tok, consumed int) {
	pos := 0
	for pos < len(s) {
		t, ok := lexOne(s[pos:])
		if !ok {
			break
		}
		toks = append(toks, t)
		pos += t.Len
	}
	return toks, pos
}
