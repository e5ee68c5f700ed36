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

const (
	CLASS_AMI InstructionClass = iota
	CLASS_BRA
	CLASS_MEM
)

const (
	ARITY_NONE InstructionArity = iota
	ARITY_ONE
	ARITY_TWO
	ARITY_THREE
)

// Tangle opcodes, bits 15-11 of the encoded word
const (
	// Logical
	OPC_OR  uint16 = 0
	OPC_AND uint16 = 1
	OPC_XOR uint16 = 2
	OPC_SLL uint16 = 3
	OPC_SLR uint16 = 4
	OPC_NOT uint16 = 5
	OPC_NEG uint16 = 6

	// Arithmetic
	OPC_ADD uint16 = 7
	OPC_SUB uint16 = 8
	OPC_CMP uint16 = 12

	// Move
	OPC_MOV   uint16 = 9
	OPC_MOVHI uint16 = 10
	OPC_MOVLO uint16 = 11

	// Branch
	OPC_JE   uint16 = 13
	OPC_JNE  uint16 = 14
	OPC_JGS  uint16 = 15
	OPC_JGU  uint16 = 16
	OPC_JLS  uint16 = 17
	OPC_JLU  uint16 = 18
	OPC_JGES uint16 = 19
	OPC_JGEU uint16 = 20
	OPC_JLES uint16 = 21
	OPC_JLEU uint16 = 22
	OPC_J    uint16 = 23
	OPC_JAL  uint16 = 24

	// Memory (Load/Store)
	OPC_LW uint16 = 25
	OPC_SW uint16 = 26
)

const (
	IMM_AMI_WIDTH  = 5
	IMM_BRA_WIDTH  = 8
	IMM_LOHI_WIDTH = 8
)

// Branch immediates are signed PC-relative displacements; AMI and
// MOVHI/MOVLO immediates are raw bit patterns, so the signed minimum and the
// unsigned maximum of the field are both accepted.
const (
	MIN_IMM_BRA  = -(1 << (IMM_BRA_WIDTH - 1))
	MAX_IMM_BRA  = (1 << (IMM_BRA_WIDTH - 1)) - 1
	MIN_IMM_AMI  = -(1 << (IMM_AMI_WIDTH - 1))
	MAX_IMM_AMI  = (1 << IMM_AMI_WIDTH) - 1
	MIN_LOHI_AMI = -(1 << (IMM_LOHI_WIDTH - 1))
	MAX_LOHI_AMI = (1 << IMM_LOHI_WIDTH) - 1
)

const (
	// Bytes of program counter per encoded instruction
	INSN_BYTES = 2

	// Maximum token length in bytes
	TOKEN_MAX = 32
)
