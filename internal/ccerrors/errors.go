// Package ccerrors formats compiler errors with source context, a
// line/column header, and a caret pointing at the offending span —
// the same presentation the teacher's error formatter uses, reduced
// to the fixed taxonomy this compiler's pipeline can raise.
package ccerrors

import (
	"fmt"
	"strings"

	"github.com/minicc/minicc/internal/lexer"
)

// Kind classifies a CompileError, matching the taxonomy of fatal
// conditions the compiler can detect: every one aborts the pipeline
// at the point of detection, with no local recovery.
type Kind int

const (
	UnterminatedComment Kind = iota
	UnterminatedString
	UnknownCharacter
	UnexpectedToken
	MissingToken
	UndefinedIdentifier
	Redeclaration
	InvalidExpression
	InvalidStatement
	InvalidDeclaration
	InvalidTypeSpecifier
	InvalidInitializer
	InvalidReturnType
	TooManyArguments
	Internal
)

// CompileError is a single fatal error: a message, the position it
// occurred at, and (optionally) the source text and file name needed
// to render a caret under the offending column.
type CompileError struct {
	Kind    Kind
	Message string
	Pos     lexer.Position
	Source  string
	File    string
}

func (e *CompileError) Error() string {
	return e.Format(false)
}

// Format renders the error as a "file:line:col: message" header,
// followed (when the source line is available) by that line and a
// caret under the column. With color true, the caret and
// message are wrapped in ANSI bold/red codes for a terminal.
func (e *CompileError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: ", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%d:%d: ", e.Pos.Line, e.Pos.Column)
	}
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	if line := sourceLine(e.Source, e.Pos.Line); line != "" {
		sb.WriteString("\n")
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		col := e.Pos.Column - 1
		if col < 0 {
			col = 0
		}
		sb.WriteString(strings.Repeat(" ", len(prefix)+col))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}

	return sb.String()
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func newErr(kind Kind, pos lexer.Position, msg string) *CompileError {
	return &CompileError{Kind: kind, Message: msg, Pos: pos}
}

// FromLexError wraps an *lexer.LexError as a CompileError, preserving
// its message and position. The lexer has no notion of the taxonomy
// in Kind, so lexical failures are all reported as UnknownCharacter;
// their message text already says which case applies.
func FromLexError(err *lexer.LexError) *CompileError {
	return newErr(UnknownCharacter, err.Pos, err.Message)
}

func UnterminatedCommentErr(pos lexer.Position) *CompileError {
	return newErr(UnterminatedComment, pos, "unterminated block comment")
}

func UnterminatedStringErr(pos lexer.Position) *CompileError {
	return newErr(UnterminatedString, pos, "unterminated string literal")
}

func UnknownCharacterErr(ch string, pos lexer.Position) *CompileError {
	return newErr(UnknownCharacter, pos, fmt.Sprintf("unknown character %s", ch))
}

func UnexpectedTokenErr(expected, found string, pos lexer.Position) *CompileError {
	return newErr(UnexpectedToken, pos, fmt.Sprintf("unexpected token: expected %s, found %s", expected, found))
}

func MissingTokenErr(expected string, pos lexer.Position) *CompileError {
	return newErr(MissingToken, pos, fmt.Sprintf("missing token: expected %s", expected))
}

func UndefinedIdentifierErr(name string, pos lexer.Position) *CompileError {
	return newErr(UndefinedIdentifier, pos, fmt.Sprintf("undefined identifier: %q", name))
}

func RedeclarationErr(name string, pos lexer.Position) *CompileError {
	return newErr(Redeclaration, pos, fmt.Sprintf("redeclaration of %q", name))
}

func InvalidExpressionErr(msg string, pos lexer.Position) *CompileError {
	return newErr(InvalidExpression, pos, fmt.Sprintf("invalid expression: %s", msg))
}

func InvalidStatementErr(msg string, pos lexer.Position) *CompileError {
	return newErr(InvalidStatement, pos, fmt.Sprintf("invalid statement: %s", msg))
}

func InvalidDeclarationErr(msg string, pos lexer.Position) *CompileError {
	return newErr(InvalidDeclaration, pos, fmt.Sprintf("invalid declaration: %s", msg))
}

func InvalidTypeSpecifierErr(msg string, pos lexer.Position) *CompileError {
	return newErr(InvalidTypeSpecifier, pos, fmt.Sprintf("invalid type specifier: %s", msg))
}

func InvalidInitializerErr(msg string, pos lexer.Position) *CompileError {
	return newErr(InvalidInitializer, pos, fmt.Sprintf("invalid initializer: %s", msg))
}

func InvalidReturnTypeErr(expected, found string, pos lexer.Position) *CompileError {
	return newErr(InvalidReturnType, pos, fmt.Sprintf("invalid return type: expected %s, found %s", expected, found))
}

func TooManyArgumentsErr(name string, n int, pos lexer.Position) *CompileError {
	return newErr(TooManyArguments, pos, fmt.Sprintf("call to %q has %d arguments, at most 6 are supported", name, n))
}

func InternalErr(msg string, pos lexer.Position) *CompileError {
	return newErr(Internal, pos, fmt.Sprintf("internal error: %s", msg))
}
