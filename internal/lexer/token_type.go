package lexer

import "sort"

// TokenType identifies the lexical category of a Token. Constants are
// grouped by kind, following the same organization as the reserved
// lexical surface in the language grammar.
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	IDENT
	NUMBER
	STRING

	// Punctuators.
	PLUS     // +
	MINUS    // -
	STAR     // *
	SLASH    // /
	PERCENT  // %
	ASSIGN   // =
	AMP      // &
	TILDE    // ~
	BANG     // !
	CARET    // ^
	PIPE     // |
	EQ       // ==
	NEQ      // !=
	LT       // <
	LE       // <=
	GT       // >
	GE       // >=
	STAR_EQ  // *=
	SLASH_EQ // /=
	PCT_EQ   // %=
	PLUS_EQ  // +=
	MINUS_EQ // -=
	AMP_EQ   // &=
	CARET_EQ // ^=
	PIPE_EQ  // |=
	SHL      // <<
	SHR      // >>
	ANDAND   // &&
	OROR     // ||
	INC      // ++
	DEC      // --
	SHL_EQ   // <<=
	SHR_EQ   // >>=
	ARROW    // ->
	LPAREN   // (
	RPAREN   // )
	LBRACE   // {
	RBRACE   // }
	LBRACK   // [
	RBRACK   // ]
	SEMI     // ;
	COMMA    // ,
	DOT      // .
	QUESTION // ?
	COLON    // :

	// Type keywords.
	INT_KW
	CHAR_KW
	VOID_KW
	SHORT_KW
	LONG_KW
	FLOAT_KW
	DOUBLE_KW
	SIGNED_KW
	UNSIGNED_KW
	STRUCT_KW
	UNION_KW
	ENUM_KW

	// Other keywords.
	AUTO_KW
	BREAK_KW
	CASE_KW
	CONST_KW
	CONTINUE_KW
	DEFAULT_KW
	DO_KW
	ELSE_KW
	EXTERN_KW
	FOR_KW
	GOTO_KW
	IF_KW
	REGISTER_KW
	RETURN_KW
	SIZEOF_KW
	STATIC_KW
	SWITCH_KW
	TYPEDEF_KW
	VOLATILE_KW
	WHILE_KW
)

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF",
	IDENT: "identifier", NUMBER: "number", STRING: "string literal",

	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%", ASSIGN: "=",
	AMP: "&", TILDE: "~", BANG: "!", CARET: "^", PIPE: "|",
	EQ: "==", NEQ: "!=", LT: "<", LE: "<=", GT: ">", GE: ">=",
	STAR_EQ: "*=", SLASH_EQ: "/=", PCT_EQ: "%=", PLUS_EQ: "+=", MINUS_EQ: "-=",
	AMP_EQ: "&=", CARET_EQ: "^=", PIPE_EQ: "|=",
	SHL: "<<", SHR: ">>", ANDAND: "&&", OROR: "||", INC: "++", DEC: "--",
	SHL_EQ: "<<=", SHR_EQ: ">>=", ARROW: "->",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", LBRACK: "[", RBRACK: "]",
	SEMI: ";", COMMA: ",", DOT: ".", QUESTION: "?", COLON: ":",

	INT_KW: "int", CHAR_KW: "char", VOID_KW: "void", SHORT_KW: "short",
	LONG_KW: "long", FLOAT_KW: "float", DOUBLE_KW: "double",
	SIGNED_KW: "signed", UNSIGNED_KW: "unsigned", STRUCT_KW: "struct",
	UNION_KW: "union", ENUM_KW: "enum",

	AUTO_KW: "auto", BREAK_KW: "break", CASE_KW: "case", CONST_KW: "const",
	CONTINUE_KW: "continue", DEFAULT_KW: "default", DO_KW: "do", ELSE_KW: "else",
	EXTERN_KW: "extern", FOR_KW: "for", GOTO_KW: "goto", IF_KW: "if",
	REGISTER_KW: "register", RETURN_KW: "return", SIZEOF_KW: "sizeof",
	STATIC_KW: "static", SWITCH_KW: "switch", TYPEDEF_KW: "typedef",
	VOLATILE_KW: "volatile", WHILE_KW: "while",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// punctuator pairs a literal spelling with its token type. punctuatorTable
// is sorted by descending literal length once at package init so the
// lexer's longest-match scan always tries multi-character operators
// (such as "<<=") before their single-character prefixes.
type punctuator struct {
	lit string
	typ TokenType
}

var punctuatorTable = buildPunctuatorTable()

func buildPunctuatorTable() []punctuator {
	table := []punctuator{
		{"+", PLUS}, {"-", MINUS}, {"*", STAR}, {"/", SLASH}, {"%", PERCENT},
		{"=", ASSIGN}, {"&", AMP}, {"~", TILDE}, {"!", BANG}, {"^", CARET},
		{"|", PIPE}, {"==", EQ}, {"!=", NEQ}, {"<", LT}, {"<=", LE},
		{">", GT}, {">=", GE}, {"*=", STAR_EQ}, {"/=", SLASH_EQ}, {"%=", PCT_EQ},
		{"+=", PLUS_EQ}, {"-=", MINUS_EQ}, {"&=", AMP_EQ}, {"^=", CARET_EQ},
		{"|=", PIPE_EQ}, {"<<", SHL}, {">>", SHR}, {"&&", ANDAND}, {"||", OROR},
		{"++", INC}, {"--", DEC}, {"<<=", SHL_EQ}, {">>=", SHR_EQ}, {"->", ARROW},
		{"(", LPAREN}, {")", RPAREN}, {"{", LBRACE}, {"}", RBRACE},
		{"[", LBRACK}, {"]", RBRACK}, {";", SEMI}, {",", COMMA}, {".", DOT},
		{"?", QUESTION}, {":", COLON},
	}
	sort.SliceStable(table, func(i, j int) bool {
		return len(table[i].lit) > len(table[j].lit)
	})
	return table
}

var keywordTable = map[string]TokenType{
	"int": INT_KW, "char": CHAR_KW, "void": VOID_KW, "short": SHORT_KW,
	"long": LONG_KW, "float": FLOAT_KW, "double": DOUBLE_KW,
	"signed": SIGNED_KW, "unsigned": UNSIGNED_KW, "struct": STRUCT_KW,
	"union": UNION_KW, "enum": ENUM_KW,

	"auto": AUTO_KW, "break": BREAK_KW, "case": CASE_KW, "const": CONST_KW,
	"continue": CONTINUE_KW, "default": DEFAULT_KW, "do": DO_KW, "else": ELSE_KW,
	"extern": EXTERN_KW, "for": FOR_KW, "goto": GOTO_KW, "if": IF_KW,
	"register": REGISTER_KW, "return": RETURN_KW, "sizeof": SIZEOF_KW,
	"static": STATIC_KW, "switch": SWITCH_KW, "typedef": TYPEDEF_KW,
	"volatile": VOLATILE_KW, "while": WHILE_KW,
}

// lookupKeyword reports whether ident names a reserved keyword and, if
// so, its token type.
func lookupKeyword(ident string) (TokenType, bool) {
	t, ok := keywordTable[ident]
	return t, ok
}

// IsTypeKeyword reports whether t is one of the type-specifier keywords.
func IsTypeKeyword(t TokenType) bool {
	switch t {
	case INT_KW, CHAR_KW, VOID_KW, SHORT_KW, LONG_KW, FLOAT_KW, DOUBLE_KW,
		SIGNED_KW, UNSIGNED_KW, STRUCT_KW, UNION_KW, ENUM_KW:
		return true
	default:
		return false
	}
}
