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

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/dcosta/gotangle/pkg/encoding"
)

func (st *MachineState) Reset() {
	for i := range st.Registers {
		st.Registers[i] = 0x0000
	}

	for i := range st.Memory {
		st.Memory[i] = 0x0000
	}

	st.Program = 0x0000
	st.Flags = 0x0000
	st.Halted = false
}

// LoadHex loads a textual hex image as produced by the assembler: '//'
// comment lines are skipped, every other line is one 4-digit hex word,
// placed at consecutive words from address zero.
func (mc *Machine) LoadHex(reader io.Reader) error {
	mc.State.Reset()

	scanner := bufio.NewScanner(reader)
	index := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if index >= MEM_WORDS {
			return errors.New("Image exceeds memory size")
		}

		word, err := strconv.ParseUint(line, 16, 16)

		if err != nil {
			return err
		}

		mc.State.Memory[index] = uint16(word)
		index++
	}

	return scanner.Err()
}

func (mc *Machine) read(addr uint16) uint16 {
	if addr == DEV_KBDR {
		mc.State.Memory[addr>>1] = 0

		if mc.Devices != nil && mc.Devices.Keyboard != nil {
			key, err := mc.Devices.Keyboard.ReadByte()

			if err == nil {
				mc.State.Memory[addr>>1] = uint16(key)
			} else if err != io.EOF {
				panic(err)
			}
		}
	}

	if mc.Debugger != nil {
		mc.Debugger.Read(addr, mc)
	}

	return mc.State.Memory[addr>>1]
}

func (mc *Machine) write(addr uint16, value uint16) {
	if addr == DEV_DDR && mc.Devices != nil && mc.Devices.Display != nil {
		if err := mc.Devices.Display.WriteByte(byte(value & 0xFF)); err != nil {
			panic(err)
		}

		if err := mc.Devices.Display.Flush(); err != nil {
			panic(err)
		}
	}

	mc.State.Memory[addr>>1] = value

	if mc.Debugger != nil {
		mc.Debugger.Write(addr, mc)
	}
}

// source decodes the second ALU operand. The encoding has no mode bit: a
// non-zero rs field selects a register, an all-zero one the sign-extended
// imm5 field. The assembler cannot emit %r0 as a source distinguishably
// from an immediate, so the rule loses nothing.
func (mc *Machine) source(insn uint16) uint16 {
	if rs := (insn >> 5) & 0x7; rs != 0 {
		return mc.State.Registers[rs]
	}

	return encoding.SignExtend(insn&0x1F, 5)
}

func (mc *Machine) setFlags(a uint16, b uint16) {
	mc.State.Flags = 0

	if a == b {
		mc.State.Flags |= FLAG_EQ
	}

	if int16(a) < int16(b) {
		mc.State.Flags |= FLAG_LTS
	}

	if a < b {
		mc.State.Flags |= FLAG_LTU
	}
}

func (mc *Machine) Step() {
	if mc.State.Halted {
		return
	}

	insnPC := mc.State.Program
	insn := mc.read(insnPC)
	opcode := insn >> 11
	rd := (insn >> 8) & 0x7

	mc.State.Program += 2

	switch opcode {
	// OR   |00000   |RD |RS |imm5 | Bitwise or (nop when all zero)
	// AND  |00001   |RD |RS |imm5 | Bitwise and
	// XOR  |00010   |RD |RS |imm5 | Bitwise exclusive or
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_OR:
		mc.State.Registers[rd] |= mc.source(insn)

	case OP_AND:
		mc.State.Registers[rd] &= mc.source(insn)

	case OP_XOR:
		mc.State.Registers[rd] ^= mc.source(insn)

	// SLL  |00011   |RD |RS |imm5 | Logical shift left
	// SLR  |00100   |RD |RS |imm5 | Logical shift right
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_SLL:
		mc.State.Registers[rd] <<= mc.source(insn)

	case OP_SLR:
		mc.State.Registers[rd] >>= mc.source(insn)

	// NOT  |00101   |RD |         | Bitwise complement, in place
	// NEG  |00110   |RD |         | Two's complement, in place
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_NOT:
		mc.State.Registers[rd] = ^mc.State.Registers[rd]

	case OP_NEG:
		mc.State.Registers[rd] = -mc.State.Registers[rd]

	// ADD  |00111   |RD |RS |imm5 | Addition
	// SUB  |01000   |RD |RS |imm5 | Subtraction
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_ADD:
		mc.State.Registers[rd] += mc.source(insn)

	case OP_SUB:
		mc.State.Registers[rd] -= mc.source(insn)

	// CMP  |01100   |RD |RS |imm5 | Compare, sets flags only
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_CMP:
		mc.setFlags(mc.State.Registers[rd], mc.source(insn))

	// MOV  |01001   |RD |RS |imm5 | Register/immediate move
	// MOVHI|01010   |RD |imm8     | Replace high byte of RD
	// MOVLO|01011   |RD |imm8     | Replace low byte of RD
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_MOV:
		mc.State.Registers[rd] = mc.source(insn)

	case OP_MOVHI:
		mc.State.Registers[rd] = mc.State.Registers[rd]&0x00FF |
			(insn&0xFF)<<8

	case OP_MOVLO:
		mc.State.Registers[rd] = mc.State.Registers[rd]&0xFF00 |
			insn&0xFF

	// Jcc  |011x1...|RD |imm8     | Conditional/unconditional jumps.
	//
	// A non-zero RD field jumps to the register's absolute address;
	// otherwise imm8 is a sign-extended byte displacement relative to the
	// jump instruction itself. JAL links the return address into %r7.
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_JE, OP_JNE,
		OP_JGS, OP_JGU, OP_JLS, OP_JLU,
		OP_JGES, OP_JGEU, OP_JLES, OP_JLEU,
		OP_J, OP_JAL:

		var taken bool

		flags := mc.State.Flags

		switch opcode {
		case OP_JE:
			taken = flags&FLAG_EQ != 0
		case OP_JNE:
			taken = flags&FLAG_EQ == 0
		case OP_JGS:
			taken = flags&(FLAG_EQ|FLAG_LTS) == 0
		case OP_JGU:
			taken = flags&(FLAG_EQ|FLAG_LTU) == 0
		case OP_JLS:
			taken = flags&FLAG_LTS != 0
		case OP_JLU:
			taken = flags&FLAG_LTU != 0
		case OP_JGES:
			taken = flags&FLAG_LTS == 0
		case OP_JGEU:
			taken = flags&FLAG_LTU == 0
		case OP_JLES:
			taken = flags&(FLAG_EQ|FLAG_LTS) != 0
		case OP_JLEU:
			taken = flags&(FLAG_EQ|FLAG_LTU) != 0
		case OP_J, OP_JAL:
			taken = true
		}

		if taken {
			if opcode == OP_JAL {
				mc.State.Registers[7] = mc.State.Program
			}

			if rd != 0 {
				mc.State.Program = mc.State.Registers[rd]
			} else {
				mc.State.Program = insnPC +
					encoding.SignExtend(insn&0xFF, 8)
			}
		}

	// LW   |11001   |RD |RS |imm5 | Load word from RS+imm5
	// SW   |11010   |RD |RS |imm5 | Store word to RS+imm5
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_LW:
		addr := mc.State.Registers[(insn>>5)&0x7] +
			encoding.SignExtend(insn&0x1F, 5)

		mc.State.Registers[rd] = mc.read(addr)

	case OP_SW:
		addr := mc.State.Registers[(insn>>5)&0x7] +
			encoding.SignExtend(insn&0x1F, 5)

		mc.write(addr, mc.State.Registers[rd])

	// Opcodes 27-31 are reserved; executing one halts the machine
	default:
		mc.State.Halted = true
	}

	if mc.Debugger != nil {
		mc.Debugger.Step(mc)
	}
}
