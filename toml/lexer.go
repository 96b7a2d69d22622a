package toml

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Lexer splits TOML input into tokens
// Newlines are significant and emitted as tokens; comments are emitted and skipped by the parser
type Lexer struct {
	input []byte
	pos   int
	line  int
	col   int
}

func NewLexer(input []byte) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
	}
}

// NextToken returns the next token; TokenEOF repeats once input is consumed
func (l *Lexer) NextToken() Token {
	l.skipBlanks()

	if l.pos >= len(l.input) {
		return l.emit(TokenEOF, "")
	}

	ch := l.peek()
	switch {
	case ch == '\n':
		l.advance()
		return l.emit(TokenNewline, "\n")
	case ch == '#':
		return l.readComment()
	case ch == '"':
		return l.readString()
	case isDigit(ch) || ch == '+' || ch == '-' || isAlpha(ch) || ch == '_':
		return l.readWord()
	}

	if typ, ok := singleCharTokens[ch]; ok {
		l.advance()
		return l.emit(typ, string(ch))
	}

	l.advance()
	return l.emit(TokenError, fmt.Sprintf("unexpected character: %c", ch))
}

func (l *Lexer) emit(typ TokenType, literal string) Token {
	return Token{Type: typ, Literal: literal, Line: l.line, Col: l.col - len(literal)}
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, w := utf8.DecodeRune(l.input[l.pos:])
	l.pos += w
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return r
}

func (l *Lexer) skipBlanks() {
	for l.pos < len(l.input) {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) readComment() Token {
	l.advance() // #
	start := l.pos
	for l.pos < len(l.input) && l.peek() != '\n' {
		l.advance()
	}
	return l.emit(TokenComment, string(l.input[start:l.pos]))
}

// readString reads a single-line basic string
func (l *Lexer) readString() Token {
	l.advance() // opening quote
	start := l.pos
	escaped := false
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == '\n' {
			return l.emit(TokenError, "unterminated string (newlines not allowed in basic strings)")
		}
		if ch == '"' && !escaped {
			lit := string(l.input[start:l.pos])
			l.advance() // closing quote
			return l.emit(TokenString, unescape(lit))
		}
		escaped = ch == '\\' && !escaped
		l.advance()
	}
	return l.emit(TokenError, "unterminated string")
}

var escapeReplacer = strings.NewReplacer(
	`\"`, `"`,
	`\\`, `\`,
	`\n`, "\n",
	`\t`, "\t",
	`\r`, "\r",
)

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	return escapeReplacer.Replace(s)
}

// readWord reads a bare key, boolean or number and classifies it
// Keys may start with a digit ("8x"); anything with a letter other than an exponent is a key
func (l *Lexer) readWord() Token {
	start := l.pos
	first := l.peek()
	numeric := isDigit(first) || first == '+' || first == '-'

	for l.pos < len(l.input) {
		ch := l.peek()
		if isAlpha(ch) || isDigit(ch) || ch == '_' || ch == '-' || ch == '+' || (ch == '.' && numeric) {
			l.advance()
			continue
		}
		break
	}
	lit := string(l.input[start:l.pos])

	if lit == "true" || lit == "false" {
		return l.emit(TokenBool, lit)
	}

	unsigned := strings.TrimLeft(lit, "+-")
	if len(unsigned) > 2 && unsigned[0] == '0' && strings.ContainsRune("xXoObB", rune(unsigned[1])) {
		return l.emit(TokenInteger, lit)
	}

	for _, r := range lit {
		if isAlpha(r) && r != 'e' && r != 'E' {
			return l.emit(TokenIdent, lit)
		}
	}

	// A pure-exponent word like "e" or "E5" has no digit before it and is a key
	if !numeric {
		return l.emit(TokenIdent, lit)
	}
	if strings.ContainsAny(lit, ".eE") {
		return l.emit(TokenFloat, lit)
	}
	return l.emit(TokenInteger, lit)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
