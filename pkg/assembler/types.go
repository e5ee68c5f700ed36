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
	"fmt"
)

type InstructionClass uint
type InstructionArity uint

type Cursor struct {
	Line   int
	Column int
}

// Descriptor is the static entry for one mnemonic: its opcode, the class
// that selects the immediate layout, and the operand shape used to parse it.
type Descriptor struct {
	Name   string
	Opcode uint16
	Class  InstructionClass
	Arity  InstructionArity
}

// Instruction holds one machine word as named fields. The fields are filled
// during parsing and packed by Encode; Pending carries the name of a label
// that was referenced before its definition and is cleared by resolution.
type Instruction struct {
	Opcode uint16
	Class  InstructionClass
	Rd     uint16
	Rs     uint16

	// Raw immediate field bits; Wide selects the 8-bit layout used by
	// branches and MOVHI/MOVLO over the default 5-bit one.
	Imm  uint16
	Wide bool

	PC       int
	Pending  string
	Position Cursor
}

// Encode packs the instruction fields into the 16-bit word:
// op[15:11] rd[10:8] rs[7:5] imm5[4:0], with imm8 occupying [7:0] in the
// wide forms. Wide instructions never carry a source register.
func (insn *Instruction) Encode() uint16 {
	word := (insn.Opcode & 0x1F) << 11
	word |= (insn.Rd & 0x7) << 8
	word |= (insn.Rs & 0x7) << 5

	if insn.Wide {
		word |= insn.Imm & 0xFF
	} else {
		word |= insn.Imm & 0x1F
	}

	return word
}

type Label struct {
	Name   string
	Offset int
}

// SymTable is the optional debug output: program counter to source line and
// program counter to label name, serialized next to the hex image.
type SymTable struct {
	Source  string
	Symbols map[uint16]int
	Labels  map[uint16]string
}

type TokenError interface {
	GetPosition() Cursor
}

type OversizedTokenError struct {
	Position Cursor
}

func (err *OversizedTokenError) GetPosition() Cursor {
	return err.Position
}

func (err *OversizedTokenError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Token exceeds %d bytes",
		err.Position.Line,
		err.Position.Column,
		TOKEN_MAX,
	)
}

type UnexpectedCharacterError struct {
	Position Cursor
	Expected byte
	Received byte
}

func (err *UnexpectedCharacterError) GetPosition() Cursor {
	return err.Position
}

func (err *UnexpectedCharacterError) Error() string {
	if err.Expected == 0 {
		return fmt.Sprintf(
			"%02d:%02d: Unexpected character %q",
			err.Position.Line,
			err.Position.Column,
			err.Received,
		)
	}

	return fmt.Sprintf(
		"%02d:%02d: Unexpected character\n\twant:%q\n\thave:%q",
		err.Position.Line,
		err.Position.Column,
		err.Expected,
		err.Received,
	)
}

type UnknownInstructionError struct {
	Position Cursor
	Received string
}

func (err *UnknownInstructionError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownInstructionError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown instruction '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type InvalidRegisterError struct {
	Position Cursor
}

func (err *InvalidRegisterError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidRegisterError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid register identifier",
		err.Position.Line,
		err.Position.Column,
	)
}

type InvalidLiteralError struct {
	Position Cursor
}

func (err *InvalidLiteralError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidLiteralError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid numeric literal",
		err.Position.Line,
		err.Position.Column,
	)
}

type InvalidOperandError struct {
	Position    Cursor
	Instruction string
	Operand     int
}

func (err *InvalidOperandError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidOperandError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid operand %d for instruction '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Operand,
		err.Instruction,
	)
}

type MalformedInstructionError struct {
	Position    Cursor
	Instruction string
}

func (err *MalformedInstructionError) GetPosition() Cursor {
	return err.Position
}

func (err *MalformedInstructionError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Trailing characters after instruction '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Instruction,
	)
}

type OversizedLiteralError struct {
	Position Cursor
	Min      int64
	Max      int64
	Received int64
}

func (err *OversizedLiteralError) GetPosition() Cursor {
	return err.Position
}

func (err *OversizedLiteralError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Literal out of range\n\twant:%d to %d\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		err.Min,
		err.Max,
		err.Received,
	)
}

type OversizedLabelError struct {
	Position Cursor
	Label    string
	Min      int64
	Max      int64
	Received int64
}

func (err *OversizedLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *OversizedLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Label '%s' out of range\n\twant:%d to %d\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		err.Label,
		err.Min,
		err.Max,
		err.Received,
	)
}

type RedeclaredLabelError struct {
	Position Cursor
	Received string
}

func (err *RedeclaredLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *RedeclaredLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Redeclaration of label '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type UnknownLabelError struct {
	Position Cursor
	Received string
}

func (err *UnknownLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown label '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}
