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

// descriptors is the full Tangle mnemonic set. Mnemonics are matched
// case-insensitively; the table is keyed by the lowercase spelling.
var descriptors = [...]Descriptor{
	// Logical
	{Name: "or", Opcode: OPC_OR, Class: CLASS_AMI, Arity: ARITY_TWO},
	{Name: "and", Opcode: OPC_AND, Class: CLASS_AMI, Arity: ARITY_TWO},
	{Name: "xor", Opcode: OPC_XOR, Class: CLASS_AMI, Arity: ARITY_TWO},
	{Name: "sll", Opcode: OPC_SLL, Class: CLASS_AMI, Arity: ARITY_TWO},
	{Name: "slr", Opcode: OPC_SLR, Class: CLASS_AMI, Arity: ARITY_TWO},
	{Name: "not", Opcode: OPC_NOT, Class: CLASS_AMI, Arity: ARITY_ONE},
	{Name: "neg", Opcode: OPC_NEG, Class: CLASS_AMI, Arity: ARITY_ONE},

	// Arithmetic
	{Name: "add", Opcode: OPC_ADD, Class: CLASS_AMI, Arity: ARITY_TWO},
	{Name: "sub", Opcode: OPC_SUB, Class: CLASS_AMI, Arity: ARITY_TWO},
	{Name: "cmp", Opcode: OPC_CMP, Class: CLASS_AMI, Arity: ARITY_TWO},

	// Move
	{Name: "mov", Opcode: OPC_MOV, Class: CLASS_AMI, Arity: ARITY_TWO},
	{Name: "movhi", Opcode: OPC_MOVHI, Class: CLASS_AMI, Arity: ARITY_TWO},
	{Name: "movlo", Opcode: OPC_MOVLO, Class: CLASS_AMI, Arity: ARITY_TWO},

	// Branch
	{Name: "j", Opcode: OPC_J, Class: CLASS_BRA, Arity: ARITY_ONE},
	{Name: "jne", Opcode: OPC_JNE, Class: CLASS_BRA, Arity: ARITY_ONE},

	{Name: "jgs", Opcode: OPC_JGS, Class: CLASS_BRA, Arity: ARITY_ONE},
	{Name: "jgu", Opcode: OPC_JGU, Class: CLASS_BRA, Arity: ARITY_ONE},
	{Name: "jls", Opcode: OPC_JLS, Class: CLASS_BRA, Arity: ARITY_ONE},
	{Name: "jlu", Opcode: OPC_JLU, Class: CLASS_BRA, Arity: ARITY_ONE},

	{Name: "jges", Opcode: OPC_JGES, Class: CLASS_BRA, Arity: ARITY_ONE},
	{Name: "jgeu", Opcode: OPC_JGEU, Class: CLASS_BRA, Arity: ARITY_ONE},
	{Name: "jles", Opcode: OPC_JLES, Class: CLASS_BRA, Arity: ARITY_ONE},
	{Name: "jleu", Opcode: OPC_JLEU, Class: CLASS_BRA, Arity: ARITY_ONE},

	// Memory
	{Name: "lw", Opcode: OPC_LW, Class: CLASS_MEM, Arity: ARITY_THREE},
	{Name: "sw", Opcode: OPC_SW, Class: CLASS_MEM, Arity: ARITY_THREE},

	// Misc. nop encodes as 'or %r0, %r0' (word 0x0000), which leaves the
	// machine untouched.
	{Name: "nop", Opcode: OPC_OR, Class: CLASS_AMI, Arity: ARITY_NONE},
}

var mnemonics = make(map[string]*Descriptor, len(descriptors))

func init() {
	for i := range descriptors {
		mnemonics[descriptors[i].Name] = &descriptors[i]
	}
}
