package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/typedframes/framecheck/internal/token"
)

// Messages carried by ILLEGAL tokens. The processor maps them to codes.
const (
	MsgUnterminatedString = "unterminated string literal"
	MsgBadIndent          = "unindent does not match any outer indentation level"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number

	indents     []int         // indentation stack, always starts at 0
	pending     []token.Token // queued INDENT/DEDENT tokens
	parenDepth  int           // (), [], {} nesting; newlines are joined inside
	atLineStart bool
	sawEOF      bool
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0, indents: []int{0}, atLineStart: true}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekChar2() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	_, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	if l.readPosition+w >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition+w:])
	return r
}

// Tokenize drains the lexer into a full token stream, EOF included.
func Tokenize(input string) []token.Token {
	l := New(input)
	var stream []token.Token
	for {
		tok := l.NextToken()
		stream = append(stream, tok)
		if tok.Type == token.EOF {
			return stream
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	for {
		if len(l.pending) > 0 {
			tok := l.pending[0]
			l.pending = l.pending[1:]
			return tok
		}

		if l.atLineStart && l.parenDepth == 0 {
			l.scanIndentation()
			continue
		}

		l.skipWhitespace()

		var tok token.Token

		switch l.ch {
		case 0:
			if !l.sawEOF {
				l.sawEOF = true
				// Close the last logical line and open indent levels.
				l.pending = append(l.pending, token.Token{Type: token.NEWLINE, Lexeme: "\n", Literal: "\n", Line: l.line, Column: l.column})
				for len(l.indents) > 1 {
					l.indents = l.indents[:len(l.indents)-1]
					l.pending = append(l.pending, token.Token{Type: token.DEDENT, Line: l.line, Column: l.column})
				}
				continue
			}
			tok = token.Token{Type: token.EOF, Line: l.line, Column: l.column}
			return tok
		case '\n':
			tok = newToken(token.NEWLINE, l.ch, l.line, l.column)
			l.atLineStart = true
		case '=':
			if l.peekChar() == '=' {
				l.readChar()
				tok = token.Token{Type: token.EQ, Lexeme: "==", Literal: "==", Line: l.line, Column: l.column}
			} else {
				tok = newToken(token.ASSIGN, l.ch, l.line, l.column)
			}
		case '+':
			if l.peekChar() == '=' {
				l.readChar()
				tok = token.Token{Type: token.PLUS_ASSIGN, Lexeme: "+=", Literal: "+=", Line: l.line, Column: l.column}
			} else {
				tok = newToken(token.PLUS, l.ch, l.line, l.column)
			}
		case '-':
			if l.peekChar() == '>' {
				l.readChar()
				tok = token.Token{Type: token.ARROW, Lexeme: "->", Literal: "->", Line: l.line, Column: l.column}
			} else if l.peekChar() == '=' {
				l.readChar()
				tok = token.Token{Type: token.MINUS_ASSIGN, Lexeme: "-=", Literal: "-=", Line: l.line, Column: l.column}
			} else {
				tok = newToken(token.MINUS, l.ch, l.line, l.column)
			}
		case '*':
			if l.peekChar() == '*' {
				l.readChar()
				if l.peekChar() == '=' {
					l.readChar()
					tok = token.Token{Type: token.POWER_ASSIGN, Lexeme: "**=", Literal: "**=", Line: l.line, Column: l.column}
				} else {
					tok = token.Token{Type: token.POWER, Lexeme: "**", Literal: "**", Line: l.line, Column: l.column}
				}
			} else if l.peekChar() == '=' {
				l.readChar()
				tok = token.Token{Type: token.ASTERISK_ASSIGN, Lexeme: "*=", Literal: "*=", Line: l.line, Column: l.column}
			} else {
				tok = newToken(token.ASTERISK, l.ch, l.line, l.column)
			}
		case '/':
			if l.peekChar() == '/' {
				l.readChar()
				tok = token.Token{Type: token.DOUBLESLASH, Lexeme: "//", Literal: "//", Line: l.line, Column: l.column}
			} else if l.peekChar() == '=' {
				l.readChar()
				tok = token.Token{Type: token.SLASH_ASSIGN, Lexeme: "/=", Literal: "/=", Line: l.line, Column: l.column}
			} else {
				tok = newToken(token.SLASH, l.ch, l.line, l.column)
			}
		case '%':
			if l.peekChar() == '=' {
				l.readChar()
				tok = token.Token{Type: token.PERCENT_ASSIGN, Lexeme: "%=", Literal: "%=", Line: l.line, Column: l.column}
			} else {
				tok = newToken(token.PERCENT, l.ch, l.line, l.column)
			}
		case '!':
			if l.peekChar() == '=' {
				l.readChar()
				tok = token.Token{Type: token.NOT_EQ, Lexeme: "!=", Literal: "!=", Line: l.line, Column: l.column}
			} else {
				tok = token.Token{Type: token.ILLEGAL, Lexeme: "!", Literal: "unexpected character '!'", Line: l.line, Column: l.column}
			}
		case '<':
			if l.peekChar() == '=' {
				l.readChar()
				tok = token.Token{Type: token.LT_EQ, Lexeme: "<=", Literal: "<=", Line: l.line, Column: l.column}
			} else if l.peekChar() == '<' {
				l.readChar()
				tok = token.Token{Type: token.SHL, Lexeme: "<<", Literal: "<<", Line: l.line, Column: l.column}
			} else {
				tok = newToken(token.LT, l.ch, l.line, l.column)
			}
		case '>':
			if l.peekChar() == '=' {
				l.readChar()
				tok = token.Token{Type: token.GT_EQ, Lexeme: ">=", Literal: ">=", Line: l.line, Column: l.column}
			} else if l.peekChar() == '>' {
				l.readChar()
				tok = token.Token{Type: token.SHR, Lexeme: ">>", Literal: ">>", Line: l.line, Column: l.column}
			} else {
				tok = newToken(token.GT, l.ch, l.line, l.column)
			}
		case ':':
			if l.peekChar() == '=' {
				l.readChar()
				tok = token.Token{Type: token.WALRUS, Lexeme: ":=", Literal: ":=", Line: l.line, Column: l.column}
			} else {
				tok = newToken(token.COLON, l.ch, l.line, l.column)
			}
		case '(':
			l.parenDepth++
			tok = newToken(token.LPAREN, l.ch, l.line, l.column)
		case ')':
			if l.parenDepth > 0 {
				l.parenDepth--
			}
			tok = newToken(token.RPAREN, l.ch, l.line, l.column)
		case '[':
			l.parenDepth++
			tok = newToken(token.LBRACKET, l.ch, l.line, l.column)
		case ']':
			if l.parenDepth > 0 {
				l.parenDepth--
			}
			tok = newToken(token.RBRACKET, l.ch, l.line, l.column)
		case '{':
			l.parenDepth++
			tok = newToken(token.LBRACE, l.ch, l.line, l.column)
		case '}':
			if l.parenDepth > 0 {
				l.parenDepth--
			}
			tok = newToken(token.RBRACE, l.ch, l.line, l.column)
		case ',':
			tok = newToken(token.COMMA, l.ch, l.line, l.column)
		case ';':
			tok = newToken(token.SEMICOLON, l.ch, l.line, l.column)
		case '.':
			if unicode.IsDigit(l.peekChar()) {
				return l.readNumber()
			}
			tok = newToken(token.DOT, l.ch, l.line, l.column)
		case '@':
			tok = newToken(token.AT, l.ch, l.line, l.column)
		case '&':
			tok = newToken(token.AMPERSAND, l.ch, l.line, l.column)
		case '|':
			tok = newToken(token.PIPE, l.ch, l.line, l.column)
		case '^':
			tok = newToken(token.CARET, l.ch, l.line, l.column)
		case '~':
			tok = newToken(token.TILDE, l.ch, l.line, l.column)
		case '"', '\'':
			return l.readString("")
		default:
			if isIdentStart(l.ch) {
				return l.readIdentifierOrString()
			}
			if unicode.IsDigit(l.ch) {
				return l.readNumber()
			}
			tok = token.Token{Type: token.ILLEGAL, Lexeme: string(l.ch), Literal: "unexpected character " + strconvQuote(l.ch), Line: l.line, Column: l.column}
		}

		l.readChar()
		return tok
	}
}

func newToken(tokenType token.TokenType, ch rune, line, column int) token.Token {
	return token.Token{Type: tokenType, Lexeme: string(ch), Literal: string(ch), Line: line, Column: column}
}

func strconvQuote(ch rune) string {
	return "'" + string(ch) + "'"
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// skipWhitespace consumes spaces, tabs, comments and joined line breaks
// (inside brackets or after a backslash). The '\n' of an unjoined line is
// left for NextToken, which must emit NEWLINE.
func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '#':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '\\' && l.peekChar() == '\n':
			l.readChar()
			l.readChar()
		case l.ch == '\n' && l.parenDepth > 0:
			l.readChar()
		default:
			return
		}
	}
}

// scanIndentation runs at the start of each logical line. Blank and
// comment-only lines produce nothing; otherwise the leading whitespace is
// measured against the indent stack and INDENT/DEDENT tokens are queued.
func (l *Lexer) scanIndentation() {
	width := 0
	for {
		width = 0
		for l.ch == ' ' || l.ch == '\t' {
			if l.ch == '\t' {
				width += 8 - width%8
			} else {
				width++
			}
			l.readChar()
		}
		if l.ch == '\r' {
			l.readChar()
			continue
		}
		if l.ch == '#' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		}
		if l.ch == '\n' {
			l.readChar()
			continue
		}
		break
	}

	l.atLineStart = false
	if l.ch == 0 {
		// The last line was already terminated; only open indent levels
		// remain to close.
		l.sawEOF = true
		for len(l.indents) > 1 {
			l.indents = l.indents[:len(l.indents)-1]
			l.pending = append(l.pending, token.Token{Type: token.DEDENT, Line: l.line, Column: l.column})
		}
		return
	}

	current := l.indents[len(l.indents)-1]
	switch {
	case width > current:
		l.indents = append(l.indents, width)
		l.pending = append(l.pending, token.Token{Type: token.INDENT, Line: l.line, Column: l.column})
	case width < current:
		for len(l.indents) > 1 && width < l.indents[len(l.indents)-1] {
			l.indents = l.indents[:len(l.indents)-1]
			l.pending = append(l.pending, token.Token{Type: token.DEDENT, Line: l.line, Column: l.column})
		}
		if width != l.indents[len(l.indents)-1] {
			l.pending = append(l.pending, token.Token{Type: token.ILLEGAL, Lexeme: "", Literal: MsgBadIndent, Line: l.line, Column: l.column})
		}
	}
}

// readIdentifierOrString reads an identifier, re-dispatching to the string
// reader when the identifier turns out to be a string prefix (r"", f"", b"").
func (l *Lexer) readIdentifierOrString() token.Token {
	line, column := l.line, l.column
	position := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	ident := l.input[position:l.position]

	if len(ident) <= 2 && (l.ch == '"' || l.ch == '\'') && isStringPrefix(ident) {
		return l.readString(strings.ToLower(ident))
	}

	tokType := token.LookupIdent(ident)
	return token.Token{Type: tokType, Lexeme: ident, Literal: ident, Line: line, Column: column}
}

func isStringPrefix(s string) bool {
	for _, ch := range strings.ToLower(s) {
		switch ch {
		case 'r', 'b', 'f', 'u':
		default:
			return false
		}
	}
	return len(s) > 0
}

func (l *Lexer) readNumber() token.Token {
	line, column := l.line, l.column
	position := l.position
	tokType := token.TokenType(token.INT)

	for unicode.IsDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		tokType = token.FLOAT
		l.readChar()
		for unicode.IsDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if unicode.IsDigit(next) || ((next == '+' || next == '-') && unicode.IsDigit(l.peekChar2())) {
			tokType = token.FLOAT
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for unicode.IsDigit(l.ch) {
				l.readChar()
			}
		}
	}

	lexeme := l.input[position:l.position]
	return token.Token{Type: tokType, Lexeme: lexeme, Literal: strings.ReplaceAll(lexeme, "_", ""), Line: line, Column: column}
}

// readString reads a single- or triple-quoted string. The Literal holds the
// unquoted contents; the prefix (f, r, b, ...) is kept in the Lexeme only.
func (l *Lexer) readString(prefix string) token.Token {
	line, column := l.line, l.column
	quote := l.ch
	raw := strings.Contains(prefix, "r")

	triple := false
	if l.peekChar() == quote && l.peekChar2() == quote {
		triple = true
		l.readChar()
		l.readChar()
	}
	l.readChar() // consume opening quote

	var sb strings.Builder
	for {
		if l.ch == 0 {
			return token.Token{Type: token.ILLEGAL, Lexeme: sb.String(), Literal: MsgUnterminatedString, Line: line, Column: column}
		}
		if !triple && l.ch == '\n' {
			return token.Token{Type: token.ILLEGAL, Lexeme: sb.String(), Literal: MsgUnterminatedString, Line: line, Column: column}
		}
		if l.ch == quote {
			if !triple {
				l.readChar()
				break
			}
			if l.peekChar() == quote && l.peekChar2() == quote {
				l.readChar()
				l.readChar()
				l.readChar()
				break
			}
			sb.WriteRune(l.ch)
			l.readChar()
			continue
		}
		if l.ch == '\\' && !raw {
			next := l.peekChar()
			switch next {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '\\', '\'', '"':
				sb.WriteRune(next)
			case '\n':
				// escaped newline: dropped
			default:
				sb.WriteRune('\\')
				sb.WriteRune(next)
			}
			l.readChar()
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}

	return token.Token{Type: token.STRING, Lexeme: prefix + string(quote) + sb.String() + string(quote), Literal: sb.String(), Line: line, Column: column}
}
