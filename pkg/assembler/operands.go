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

import (
	"github.com/dcosta/gotangle/pkg/encoding"
)

// The register, immediate and label sub-parsers are tri-state: a nil error
// with true means the operand matched and was consumed, a nil error with
// false means the operand is not present at the scan position, and a non-nil
// error means it started to match but is malformed.

// parseRegister recognizes '%r0'..'%r7'. The first operand of an
// instruction names the destination register, the second the source --
// except for MOVHI/MOVLO, whose second operand must be an immediate or a
// label.
func parseRegister(s *scanner, tbl *Descriptor, insn *Instruction, dst bool) (bool, error) {
	pos := s.cursor()

	if !s.accept('%') {
		return false, nil
	}

	if !s.accept('r') {
		return false, &InvalidRegisterError{pos}
	}

	c := s.peek()

	if c < '0' || c > '7' {
		return false, &InvalidRegisterError{pos}
	}

	s.pos++

	if dst {
		insn.Rd = uint16(c - '0')
	} else if insn.Opcode == OPC_MOVHI || insn.Opcode == OPC_MOVLO {
		return false, &InvalidOperandError{pos, tbl.Name, 2}
	} else {
		insn.Rs = uint16(c - '0')
	}

	return true, nil
}

// parseImmediate recognizes '$<integer>' with decimal, hex or octal
// spelling. In the branch slot the value is a PC-relative displacement and
// only branch-class instructions may carry one; otherwise the AMI rule
// applies, widened to eight bits for MOVHI/MOVLO.
func parseImmediate(s *scanner, tbl *Descriptor, insn *Instruction, branch bool) (bool, error) {
	pos := s.cursor()

	if !s.accept('$') {
		return false, nil
	}

	start := s.pos
	s.skipLabelChars()

	value, err := encoding.DecodeNumber(s.line[start:s.pos])

	if err != nil {
		return false, &InvalidLiteralError{pos}
	}

	if branch {
		if tbl.Class != CLASS_BRA {
			return false, &InvalidOperandError{pos, tbl.Name, 1}
		}

		if value < MIN_IMM_BRA || value > MAX_IMM_BRA {
			return false, &OversizedLiteralError{
				pos, MIN_IMM_BRA, MAX_IMM_BRA, value,
			}
		}

		insn.Imm = uint16(value) & 0xFF
		insn.Wide = true
	} else if insn.Opcode == OPC_MOVHI || insn.Opcode == OPC_MOVLO {
		if value < MIN_LOHI_AMI || value > MAX_LOHI_AMI {
			return false, &OversizedLiteralError{
				pos, MIN_LOHI_AMI, MAX_LOHI_AMI, value,
			}
		}

		insn.Imm = uint16(value) & 0xFF
		insn.Wide = true
	} else {
		if value < MIN_IMM_AMI || value > MAX_IMM_AMI {
			return false, &OversizedLiteralError{
				pos, MIN_IMM_AMI, MAX_IMM_AMI, value,
			}
		}

		insn.Imm = uint16(value) & 0x1F
	}

	return true, nil
}

// parseLabelOperand recognizes a bare identifier. A label defined earlier
// in the input substitutes its offset immediately under the same range rule
// an immediate would get; an undefined one zero-fills the field and leaves
// the name pending for the resolution pass.
func (a *assembly) parseLabelOperand(s *scanner, tbl *Descriptor, insn *Instruction, branch bool) error {
	pos := s.cursor()

	if branch && tbl.Class != CLASS_BRA {
		return &InvalidOperandError{pos, tbl.Name, 1}
	}

	if !branch && (insn.Opcode == OPC_MOVHI || insn.Opcode == OPC_MOVLO) {
		return &InvalidOperandError{pos, tbl.Name, 2}
	}

	token, err := s.readToken()

	if err != nil {
		return err
	}

	if token == "" {
		return &UnexpectedCharacterError{Position: pos, Received: s.peek()}
	}

	insn.Position = pos

	lbl, exists := a.labels[token]

	if !exists {
		insn.Pending = token
		insn.Wide = branch
		return nil
	}

	if branch {
		offset := int64(lbl.Offset - insn.PC)

		if offset < MIN_IMM_BRA || offset > MAX_IMM_BRA {
			return &OversizedLabelError{
				pos, token, MIN_IMM_BRA, MAX_IMM_BRA, offset,
			}
		}

		insn.Imm = uint16(offset) & 0xFF
		insn.Wide = true
	} else {
		offset := int64(lbl.Offset)

		if offset < MIN_IMM_AMI || offset > MAX_IMM_AMI {
			return &OversizedLabelError{
				pos, token, MIN_IMM_AMI, MAX_IMM_AMI, offset,
			}
		}

		insn.Imm = uint16(offset) & 0x1F
	}

	return nil
}

// parseSourceOperand tries register, immediate and label recognition in
// order at the current position.
func (a *assembly) parseSourceOperand(s *scanner, tbl *Descriptor, insn *Instruction, dst, branch bool) error {
	if matched, err := parseRegister(s, tbl, insn, dst); err != nil {
		return err
	} else if matched {
		return nil
	}

	if matched, err := parseImmediate(s, tbl, insn, branch); err != nil {
		return err
	} else if matched {
		return nil
	}

	return a.parseLabelOperand(s, tbl, insn, branch)
}

// expectLineEnd checks that nothing but whitespace, a comment or the end of
// the line follows the operands.
func expectLineEnd(s *scanner, tbl *Descriptor) error {
	s.skipWhitespace()

	if s.eol() || s.match('#') || s.match(';') {
		return nil
	}

	return &MalformedInstructionError{s.cursor(), tbl.Name}
}

func (a *assembly) parseOneOperand(s *scanner, tbl *Descriptor, insn *Instruction) error {
	// A lone register is a destination; immediates and labels sit in the
	// branch slot, which only branch-class instructions provide.
	if err := a.parseSourceOperand(s, tbl, insn, true, true); err != nil {
		return err
	}

	return expectLineEnd(s, tbl)
}

func (a *assembly) parseTwoOperands(s *scanner, tbl *Descriptor, insn *Instruction) error {
	if matched, err := parseRegister(s, tbl, insn, true); err != nil {
		return err
	} else if !matched {
		return &InvalidOperandError{s.cursor(), tbl.Name, 1}
	}

	s.skipWhitespace()

	if !s.accept(',') {
		return &UnexpectedCharacterError{s.cursor(), ',', s.peek()}
	}

	s.skipWhitespace()

	if err := a.parseSourceOperand(s, tbl, insn, false, false); err != nil {
		return err
	}

	return expectLineEnd(s, tbl)
}

// parseThreeOperands handles the strict load/store shape:
// 'reg, imm5(base-reg)'. No label form is accepted here.
func (a *assembly) parseThreeOperands(s *scanner, tbl *Descriptor, insn *Instruction) error {
	if matched, err := parseRegister(s, tbl, insn, true); err != nil {
		return err
	} else if !matched {
		return &InvalidOperandError{s.cursor(), tbl.Name, 1}
	}

	s.skipWhitespace()

	if !s.accept(',') {
		return &UnexpectedCharacterError{s.cursor(), ',', s.peek()}
	}

	s.skipWhitespace()

	if matched, err := parseImmediate(s, tbl, insn, false); err != nil {
		return err
	} else if !matched {
		return &InvalidOperandError{s.cursor(), tbl.Name, 2}
	}

	s.skipWhitespace()

	if !s.accept('(') {
		return &UnexpectedCharacterError{s.cursor(), '(', s.peek()}
	}

	s.skipWhitespace()

	if matched, err := parseRegister(s, tbl, insn, false); err != nil {
		return err
	} else if !matched {
		return &InvalidOperandError{s.cursor(), tbl.Name, 3}
	}

	s.skipWhitespace()

	if !s.accept(')') {
		return &UnexpectedCharacterError{s.cursor(), ')', s.peek()}
	}

	return expectLineEnd(s, tbl)
}

func (a *assembly) parseOperands(s *scanner, tbl *Descriptor, insn *Instruction) error {
	switch tbl.Arity {
	case ARITY_ONE:
		return a.parseOneOperand(s, tbl, insn)
	case ARITY_TWO:
		return a.parseTwoOperands(s, tbl, insn)
	case ARITY_THREE:
		return a.parseThreeOperands(s, tbl, insn)
	}

	// Zero-operand instructions carry nothing but their opcode.
	return nil
}
