// Copyright (C) 2026  Davi Costa

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package assembler

// scanner walks one source line by byte index. Tokens are maximal runs of
// label characters; whitespace means spaces and tabs only.
type scanner struct {
	line string
	num  int
	pos  int
}

// A label character can start a label, a mnemonic or a number. '+' and '-'
// are included so that signed literals scan as one token; a label spelled
// with them is still just a label.
func isLabelChar(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '-' || c == '+'
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func (s *scanner) cursor() Cursor {
	return Cursor{Line: s.num, Column: s.pos + 1}
}

func (s *scanner) eol() bool {
	return s.pos >= len(s.line)
}

func (s *scanner) peek() byte {
	if s.eol() {
		return 0
	}
	return s.line[s.pos]
}

func (s *scanner) skipWhitespace() {
	for !s.eol() && isBlank(s.line[s.pos]) {
		s.pos++
	}
}

func (s *scanner) skipLabelChars() {
	for !s.eol() && isLabelChar(s.line[s.pos]) {
		s.pos++
	}
}

// match reports whether the current character is c, comparing
// case-insensitively, without consuming it.
func (s *scanner) match(c byte) bool {
	return !s.eol() && lower(s.line[s.pos]) == c
}

// accept consumes the current character if and only if it matches c.
func (s *scanner) accept(c byte) bool {
	if s.match(c) {
		s.pos++
		return true
	}
	return false
}

// readToken reads the maximal run of label characters at the current
// position and skips any whitespace that follows it. The token may be
// empty; exceeding TOKEN_MAX is a lexical error.
func (s *scanner) readToken() (string, error) {
	start := s.pos
	s.skipLabelChars()
	token := s.line[start:s.pos]

	if len(token) > TOKEN_MAX {
		return "", &OversizedTokenError{
			Position: Cursor{Line: s.num, Column: start + 1},
		}
	}

	s.skipWhitespace()
	return token, nil
}
