// Package structural implements a dependency-free Ruby scanner and
// structural parser: a hand-rolled tokenizer plus a keyword/indentation
// based tree builder, good enough to support the Layout and Lint rule
// families without a full Ruby grammar.
package structural

import (
	"github.com/fastlint/fastlint/pkg/rbast"
)

var keywords = map[string]bool{
	"def": true, "end": true, "class": true, "module": true,
	"if": true, "elsif": true, "else": true, "unless": true,
	"while": true, "until": true, "case": true, "when": true, "in": true,
	"begin": true, "rescue": true, "ensure": true, "do": true, "then": true,
	"return": true, "break": true, "next": true, "yield": true, "redo": true,
	"self": true, "nil": true, "true": true, "false": true,
	"and": true, "or": true, "not": true, "super": true,
}

// Tokenize classifies every byte of content into a contiguous, gapless
// Token stream (rbast.ValidateTokens holds for the result).
func Tokenize(content []byte) []rbast.Token {
	var toks []rbast.Token
	i := 0
	n := len(content)
	atLineStart := true

	push := func(kind rbast.TokenKind, start, end int) {
		toks = append(toks, rbast.Token{Kind: kind, StartOffset: start, EndOffset: end})
	}

	for i < n {
		c := content[i]

		switch {
		case c == '\n':
			push(rbast.TokNewline, i, i+1)
			i++
			atLineStart = true
			continue

		case c == ' ' || c == '\t':
			start := i
			for i < n && (content[i] == ' ' || content[i] == '\t') {
				i++
			}
			if atLineStart {
				push(rbast.TokIndent, start, i)
			} else {
				push(rbast.TokWhitespace, start, i)
			}
			continue

		case c == '#':
			start := i
			for i < n && content[i] != '\n' {
				i++
			}
			push(rbast.TokComment, start, i)
			atLineStart = false
			continue

		case c == '"' || c == '\'':
			start := i
			quote := c
			i++
			for i < n && content[i] != quote {
				if content[i] == '\\' && i+1 < n {
					i += 2
					continue
				}
				i++
			}
			if i < n {
				i++ // consume closing quote
			}
			push(rbast.TokStringLiteral, start, i)
			atLineStart = false
			continue

		case c == ':' && i+1 < n && (isIdentStart(content[i+1]) || content[i+1] == '"'):
			start := i
			i++
			if content[i] == '"' {
				i++
				for i < n && content[i] != '"' {
					if content[i] == '\\' && i+1 < n {
						i += 2
						continue
					}
					i++
				}
				if i < n {
					i++
				}
			} else {
				for i < n && isIdentCont(content[i]) {
					i++
				}
			}
			push(rbast.TokSymbol, start, i)
			atLineStart = false
			continue

		case isDigit(c):
			start := i
			for i < n && (isDigit(content[i]) || content[i] == '_' || content[i] == '.') {
				i++
			}
			push(rbast.TokNumberLiteral, start, i)
			atLineStart = false
			continue

		case isIdentStart(c):
			start := i
			for i < n && isIdentCont(content[i]) {
				i++
			}
			// Trailing '?' or '!' are part of a Ruby method name.
			if i < n && (content[i] == '?' || content[i] == '!') {
				i++
			}
			text := string(content[start:i])
			switch {
			case keywords[text]:
				push(rbast.TokKeyword, start, i)
			case isConstantName(text):
				push(rbast.TokConstant, start, i)
			default:
				push(rbast.TokIdentifier, start, i)
			}
			atLineStart = false
			continue

		case isPunct(c):
			push(rbast.TokPunctuation, i, i+1)
			i++
			atLineStart = false
			continue

		default:
			start := i
			for i < n && isOperatorByte(content[i]) {
				i++
			}
			if i == start {
				i++ // unclassifiable byte, consume as a 1-byte "other" token
				push(rbast.TokOther, start, i)
			} else {
				push(rbast.TokOperator, start, i)
			}
			atLineStart = false
			continue
		}
	}

	if len(toks) == 0 && n == 0 {
		return toks
	}

	return toks
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isConstantName(s string) bool {
	return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
}

func isPunct(c byte) bool {
	switch c {
	case '(', ')', '[', ']', '{', '}', ',', ';':
		return true
	default:
		return false
	}
}

func isOperatorByte(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '%', '=', '<', '>', '!', '&', '|', '^', '~', '.', ':', '?', '\\', '@', '$':
		return true
	default:
		return false
	}
}
