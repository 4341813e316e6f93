package token

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string // raw source text
	Literal string // processed value (e.g. string without quotes)
	Line    int    // 1-based
	Column  int    // 1-based
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Layout tokens. Python's grammar is line- and indentation-oriented,
	// so the lexer emits these explicitly.
	NEWLINE = "NEWLINE"
	INDENT  = "INDENT"
	DEDENT  = "DEDENT"

	NAME   = "NAME"
	INT    = "INT"
	FLOAT  = "FLOAT"
	STRING = "STRING"

	ASSIGN      = "="
	PLUS        = "+"
	MINUS       = "-"
	ASTERISK    = "*"
	SLASH       = "/"
	DOUBLESLASH = "//"
	PERCENT     = "%"
	POWER       = "**"
	AT          = "@"

	PLUS_ASSIGN     = "+="
	MINUS_ASSIGN    = "-="
	ASTERISK_ASSIGN = "*="
	SLASH_ASSIGN    = "/="
	PERCENT_ASSIGN  = "%="
	POWER_ASSIGN    = "**="

	EQ     = "=="
	NOT_EQ = "!="
	LT     = "<"
	GT     = ">"
	LT_EQ  = "<="
	GT_EQ  = ">="

	AMPERSAND = "&"
	PIPE      = "|"
	CARET     = "^"
	TILDE     = "~"
	SHL       = "<<"
	SHR       = ">>"

	LPAREN   = "("
	RPAREN   = ")"
	LBRACKET = "["
	RBRACKET = "]"
	LBRACE   = "{"
	RBRACE   = "}"

	COMMA     = ","
	COLON     = ":"
	SEMICOLON = ";"
	DOT       = "."
	ARROW     = "->"
	WALRUS    = ":="

	// Keywords
	CLASS    = "CLASS"
	DEF      = "DEF"
	RETURN   = "RETURN"
	IMPORT   = "IMPORT"
	FROM     = "FROM"
	AS       = "AS"
	IF       = "IF"
	ELIF     = "ELIF"
	ELSE     = "ELSE"
	FOR      = "FOR"
	WHILE    = "WHILE"
	IN       = "IN"
	IS       = "IS"
	NOT      = "NOT"
	AND      = "AND"
	OR       = "OR"
	PASS     = "PASS"
	NONE     = "NONE"
	TRUE     = "TRUE"
	FALSE    = "FALSE"
	WITH     = "WITH"
	LAMBDA   = "LAMBDA"
	TRY      = "TRY"
	EXCEPT   = "EXCEPT"
	FINALLY  = "FINALLY"
	RAISE    = "RAISE"
	ASSERT   = "ASSERT"
	DEL      = "DEL"
	GLOBAL   = "GLOBAL"
	NONLOCAL = "NONLOCAL"
	BREAK    = "BREAK"
	CONTINUE = "CONTINUE"
	YIELD    = "YIELD"
	ASYNC    = "ASYNC"
	AWAIT    = "AWAIT"
)

var keywords = map[string]TokenType{
	"class":    CLASS,
	"def":      DEF,
	"return":   RETURN,
	"import":   IMPORT,
	"from":     FROM,
	"as":       AS,
	"if":       IF,
	"elif":     ELIF,
	"else":     ELSE,
	"for":      FOR,
	"while":    WHILE,
	"in":       IN,
	"is":       IS,
	"not":      NOT,
	"and":      AND,
	"or":       OR,
	"pass":     PASS,
	"None":     NONE,
	"True":     TRUE,
	"False":    FALSE,
	"with":     WITH,
	"lambda":   LAMBDA,
	"try":      TRY,
	"except":   EXCEPT,
	"finally":  FINALLY,
	"raise":    RAISE,
	"assert":   ASSERT,
	"del":      DEL,
	"global":   GLOBAL,
	"nonlocal": NONLOCAL,
	"break":    BREAK,
	"continue": CONTINUE,
	"yield":    YIELD,
	"async":    ASYNC,
	"await":    AWAIT,
}

// LookupIdent returns the keyword type for ident, or NAME if it is not a
// keyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return NAME
}
