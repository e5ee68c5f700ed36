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

package machine

// Comparison flags, set by CMP and read by the conditional branches
const (
	FLAG_EQ  uint16 = 1 << 0
	FLAG_LTS uint16 = 1 << 1
	FLAG_LTU uint16 = 1 << 2
)

// Memory-mapped console. Loads from DEV_KBDR pull the next keyboard byte
// (zero when none is pending); stores to DEV_DDR write a byte to the
// display.
const (
	DEV_KBDR uint16 = 0xFF00
	DEV_DDR  uint16 = 0xFF02
)

// The program counter addresses bytes; memory holds 16-bit words
const MEM_WORDS = 1 << 15

const (
	OP_OR  uint16 = 0
	OP_AND uint16 = 1
	OP_XOR uint16 = 2
	OP_SLL uint16 = 3
	OP_SLR uint16 = 4
	OP_NOT uint16 = 5
	OP_NEG uint16 = 6

	OP_ADD uint16 = 7
	OP_SUB uint16 = 8
	OP_CMP uint16 = 12

	OP_MOV   uint16 = 9
	OP_MOVHI uint16 = 10
	OP_MOVLO uint16 = 11

	OP_JE   uint16 = 13
	OP_JNE  uint16 = 14
	OP_JGS  uint16 = 15
	OP_JGU  uint16 = 16
	OP_JLS  uint16 = 17
	OP_JLU  uint16 = 18
	OP_JGES uint16 = 19
	OP_JGEU uint16 = 20
	OP_JLES uint16 = 21
	OP_JLEU uint16 = 22
	OP_J    uint16 = 23
	OP_JAL  uint16 = 24

	OP_LW uint16 = 25
	OP_SW uint16 = 26
)
