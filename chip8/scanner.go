package chip8

import (
	"errors"
	"strconv"
	"strings"
)

/// tokenType classifies scanned assembler tokens.
///
type tokenType uint

const (
	tokenEnd tokenType = iota
	tokenChar
	tokenLabel
	tokenRef
	tokenInstruction
	tokenIndirect
	tokenOperand
	tokenEqu
	tokenV
	tokenI
	tokenB
	tokenF
	tokenK
	tokenDT
	tokenST
	tokenLit
	tokenText
)

/// A parsed, lexical token with an optional value.
///
type token struct {
	typ tokenType
	val any
}

/// tokenScanner splits a single upper-cased source line into tokens.
///
type tokenScanner struct {
	bytes []byte
	pos   int
}

/// syntaxError aborts assembly of the current line.
///
func syntaxError(msg string, args ...any) {
	panic(errors.New(f(msg, args...)))
}

/// scanToken reads the next token.
///
func (s *tokenScanner) scanToken() token {
	for s.pos < len(s.bytes) && s.bytes[s.pos] < 33 {
		s.pos++
	}

	// end of line
	if s.pos >= len(s.bytes) {
		return token{typ: tokenEnd}
	}

	c := s.bytes[s.pos]

	switch {
	case c == ';':
		return s.scanToEnd()
	case c == '.' && s.pos == 0:
		return s.scanLabel()
	case s.pos == 0:
		syntaxError("expected .label or indentation")
	case c == '[':
		return s.scanIndirection()
	case c == ',':
		return s.scanOperand()
	case c == '#':
		return s.scanLit(16, "0123456789ABCDEF")
	case c == '$':
		return s.scanLit(2, ".01")
	case c == '-' || (c >= '0' && c <= '9'):
		return s.scanDecLit()
	case c >= 'A' && c <= 'Z':
		return s.scanIdentifier()
	case c == '"' || c == '\'':
		return s.scanString(c)
	}

	return s.scanChar()
}

/// scanOperands reads a comma-separated operand list to the end of the line.
///
func (s *tokenScanner) scanOperands() []token {
	tokens := make([]token, 0, 3)

	for t := s.scanToken(); t.typ != tokenEnd; {
		tokens = append(tokens, t)

		if t = s.scanToken(); t.typ != tokenOperand {
			if t.typ == tokenEnd {
				break
			}

			syntaxError("unexpected token")
		}

		// expand the operand
		t = t.val.(token)
	}

	return tokens
}

func (s *tokenScanner) scanChar() token {
	c := s.bytes[s.pos]
	s.pos++

	return token{typ: tokenChar, val: c}
}

/// scanToEnd consumes the rest of the line as a comment.
///
func (s *tokenScanner) scanToEnd() token {
	text := string(s.bytes[s.pos:])
	s.pos = len(s.bytes)

	return token{typ: tokenEnd, val: strings.TrimSpace(text)}
}

/// scanOperand scans the token following a comma.
///
func (s *tokenScanner) scanOperand() token {
	s.pos++

	t := s.scanToken()
	if t.typ == tokenEnd {
		syntaxError("expected operand")
	}

	return token{typ: tokenOperand, val: t}
}

func (s *tokenScanner) scanLabel() token {
	s.pos++

	if s.pos < len(s.bytes) && s.bytes[s.pos] >= 'A' && s.bytes[s.pos] <= 'Z' {
		if id := s.scanIdentifier(); id.typ == tokenRef {
			return token{typ: tokenLabel, val: id.val}
		}
	}

	syntaxError("expected label")
	return token{}
}

/// scanIdentifier scans an instruction, register or label reference.
///
func (s *tokenScanner) scanIdentifier() token {
	i := s.pos

	for ; s.pos < len(s.bytes); s.pos++ {
		c := s.bytes[s.pos]

		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '_' {
			break
		}
	}

	id := string(s.bytes[i:s.pos])

	if len(id) == 2 && id[0] == 'V' {
		if n, err := strconv.ParseUint(id[1:], 16, 4); err == nil {
			return token{typ: tokenV, val: int(n)}
		}
	}

	switch id {
	case "I":
		return token{typ: tokenI}
	case "B":
		return token{typ: tokenB}
	case "F":
		return token{typ: tokenF}
	case "K":
		return token{typ: tokenK}
	case "D", "DT":
		return token{typ: tokenDT}
	case "S", "ST":
		return token{typ: tokenST}
	case "EQU":
		return token{typ: tokenEqu}
	case "CLS", "RET", "SYS", "JP", "CALL", "SE", "SNE", "SKP", "SKNP", "LD", "OR", "AND", "XOR", "ADD", "SUB", "SUBN", "SHR", "SHL", "RND", "DRW", "BCD", "BYTE", "WORD", "ALIGN", "PAD":
		return token{typ: tokenInstruction, val: id}
	}

	return token{typ: tokenRef, val: id}
}

/// scanIndirection scans [I].
///
func (s *tokenScanner) scanIndirection() token {
	s.pos++

	t := s.scanToken()

	if c := s.scanToken(); c.typ != tokenChar || c.val.(byte) != ']' {
		syntaxError("illegal indirection")
	}

	return token{typ: tokenIndirect, val: t}
}

func (s *tokenScanner) scanDecLit() token {
	i := s.pos

	// unary minus
	if s.bytes[i] == '-' {
		s.pos++
	}

	for ; s.pos < len(s.bytes); s.pos++ {
		if s.bytes[s.pos] < '0' || s.bytes[s.pos] > '9' {
			break
		}
	}

	n, err := strconv.ParseInt(string(s.bytes[i:s.pos]), 10, 32)
	if err != nil {
		syntaxError("illegal decimal value: %v", string(s.bytes[i:s.pos]))
	}

	return token{typ: tokenLit, val: int(n)}
}

/// scanLit scans a prefixed literal: #hex, or $binary where '.' is a 0 bit.
///
func (s *tokenScanner) scanLit(base int, digits string) token {
	i := s.pos

	for s.pos++; s.pos < len(s.bytes); s.pos++ {
		if strings.IndexByte(digits, s.bytes[s.pos]) < 0 {
			break
		}
	}

	v := strings.ReplaceAll(string(s.bytes[i+1:s.pos]), ".", "0")

	n, err := strconv.ParseInt(v, base, 32)
	if err != nil {
		syntaxError("illegal literal: %v", string(s.bytes[i:s.pos]))
	}

	return token{typ: tokenLit, val: int(n)}
}

func (s *tokenScanner) scanString(term byte) token {
	s.pos++

	i := s.pos
	for s.pos < len(s.bytes) && s.bytes[s.pos] != term {
		s.pos++
	}

	text := string(s.bytes[i:s.pos])

	// skip the closing quote
	if s.pos < len(s.bytes) {
		s.pos++
	}

	return token{typ: tokenText, val: text}
}
