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

package assembler_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/dcosta/gotangle/pkg/assembler"
)

type testCase struct {
	Name     string
	Input    string
	Output   []uint16
	SymTable *assembler.SymTable
}

type failCase struct {
	Name  string
	Input string
	Error error
}

func testAssemblerSuccess(t *testing.T, test *testCase) {
	var symtable assembler.SymTable
	var symtarget *assembler.SymTable = nil

	if test.SymTable != nil {
		symtable.Symbols = make(map[uint16]int)
		symtable.Labels = make(map[uint16]string)
		symtarget = &symtable
	}

	result, errs := assembler.AssembleTangleSource(
		strings.NewReader(test.Input), symtarget,
	)

	if len(errs) > 0 {
		t.Fatal(errs[0])
	}

	if len(result) != len(test.Output) {
		t.Fatalf(
			"Invalid instruction count\n"+
				"want:%d\n"+
				"have:%d",
			len(test.Output),
			len(result),
		)
	}

	for i, want := range test.Output {
		insn := result[i]

		if insn.PC != i*assembler.INSN_BYTES {
			t.Fatalf(
				"Program counter mismatch\n"+
					"want:%#04x (result[%d])\n"+
					"have:%#04x",
				i*assembler.INSN_BYTES,
				i,
				insn.PC,
			)
		}

		if insn.Pending != "" {
			t.Fatalf(
				"Unresolved label reference '%s' (result[%d])",
				insn.Pending,
				i,
			)
		}

		if have := insn.Encode(); have != want {
			t.Fatalf(
				"Instruction encoding mismatch\n"+
					"want:%#04x (test.Output[%d])\n"+
					"have:%#04x",
				want,
				i,
				have,
			)
		}
	}

	if test.SymTable != nil {
		for addr, want := range test.SymTable.Symbols {
			have, exists := symtable.Symbols[addr]

			if !exists {
				t.Fatalf(
					"Missing symtable encoding\n"+
						"want:%d (test.SymTable.Symbols[%#04x])\n"+
						"have:nil",
					want,
					addr,
				)
			} else if have != want {
				t.Fatalf(
					"Symtable encoding mismatch\n"+
						"want:%d (test.SymTable.Symbols[%#04x])\n"+
						"have:%d",
					want,
					addr,
					have,
				)
			}
		}

		for addr, have := range symtable.Symbols {
			if _, exists := test.SymTable.Symbols[addr]; !exists {
				t.Fatalf(
					"Unexpected symtable encoding\n"+
						"want:nil\n"+
						"have:%d (symtable.Symbols[%#04x])",
					have,
					addr,
				)
			}
		}

		for addr, want := range test.SymTable.Labels {
			have, exists := symtable.Labels[addr]

			if !exists {
				t.Fatalf(
					"Missing symtable encoding\n"+
						"want:%s (test.SymTable.Labels[%#04x])\n"+
						"have:nil",
					want,
					addr,
				)
			} else if have != want {
				t.Fatalf(
					"Symtable encoding mismatch\n"+
						"want:%s (test.SymTable.Labels[%#04x])\n"+
						"have:%s",
					want,
					addr,
					have,
				)
			}
		}

		for addr, have := range symtable.Labels {
			if _, exists := test.SymTable.Labels[addr]; !exists {
				t.Fatalf(
					"Unexpected symtable encoding\n"+
						"want:nil\n"+
						"have:%s (symtable.Labels[%#04x])",
					have,
					addr,
				)
			}
		}
	}
}

func testAssemblerFail(t *testing.T, test *failCase) {
	_, errs := assembler.AssembleTangleSource(
		strings.NewReader(test.Input), nil,
	)

	if test.Error == nil {
		panic("Fail case missing error value")
	}

	if len(errs) == 0 {
		t.Fatalf(
			"%s produced error of incorrect type"+
				"\nwant:%T (test.Error)\nhave:<nil>",
			t.Name(),
			test.Error,
		)
	}

	if len(errs) > 1 {
		errTypes := make([]reflect.Type, 0, len(errs))
		for _, err := range errs {
			errTypes = append(errTypes, reflect.TypeOf(err))
		}

		t.Fatalf(
			"%s produced multiple errors:\n\twant:%T (test.Error)\n\thave:%v",
			t.Name(),
			test.Error,
			errTypes,
		)
	}

	if reflect.TypeOf(errs[0]) != reflect.TypeOf(test.Error) {
		t.Fatalf(
			"%s produced error of incorrect type"+
				"\nwant:%T (test.Error)\nhave:%T",
			t.Name(),
			test.Error,
			errs[0],
		)
	}
}

func testSuccess(t *testing.T, tests []testCase) {
	t.Run("Success", func(t *testing.T) {
		for _, test := range tests {
			t.Run(test.Name, func(t *testing.T) {
				testAssemblerSuccess(t, &test)
			})
		}
	})
}

func testFail(t *testing.T, tests []failCase) {
	t.Run("Fail", func(t *testing.T) {
		for _, test := range tests {
			t.Run(test.Name, func(t *testing.T) {
				testAssemblerFail(t, &test)
			})
		}
	})
}

// OR   |00000   |RD |RS |imm5 | Bitwise or
// AND  |00001   |RD |RS |imm5 | Bitwise and
// XOR  |00010   |RD |RS |imm5 | Bitwise exclusive or
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestLogical(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "OR",
			Input:  `or %r1, %r2`,
			Output: []uint16{0b00000_001_010_00000},
		},
		{
			Name:   "AND imm5",
			Input:  `and %r3, $1`,
			Output: []uint16{0b00001_011_000_00001},
		},
		{
			Name:   "XOR",
			Input:  `xor %r2, %r2`,
			Output: []uint16{0b00010_010_010_00000},
		},
		{
			Name:   "Uppercase",
			Input:  `AND %R3, $1`,
			Output: []uint16{0b00001_011_000_00001},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "OR Bad register",
			Input: `or %r8, %r1`,
			Error: &assembler.InvalidRegisterError{},
		},
		{
			Name:  "OR Missing comma",
			Input: `or %r0 %r1`,
			Error: &assembler.UnexpectedCharacterError{},
		},
		{
			Name:  "AND Missing operand",
			Input: `and %r0,`,
			Error: &assembler.UnexpectedCharacterError{},
		},
		{
			Name:  "AND Trailing characters",
			Input: `and %r0, %r1 %r2`,
			Error: &assembler.MalformedInstructionError{},
		},
	})
}

// SLL  |00011   |RD |RS |imm5 | Logical shift left
// SLR  |00100   |RD |RS |imm5 | Logical shift right
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestShift(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "SLL imm5",
			Input:  `sll %r1, $4`,
			Output: []uint16{0b00011_001_000_00100},
		},
		{
			Name:   "SLR imm5",
			Input:  `slr %r1, $4`,
			Output: []uint16{0b00100_001_000_00100},
		},
		{
			Name:   "SLL register",
			Input:  `sll %r1, %r6`,
			Output: []uint16{0b00011_001_110_00000},
		},
	})
}

// NOT  |00101   |RD |         | Bitwise complement, in place
// NEG  |00110   |RD |         | Two's complement, in place
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestUnary(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "NOT",
			Input:  `not %r5`,
			Output: []uint16{0b00101_101_000_00000},
		},
		{
			Name:   "NEG",
			Input:  `neg %r6`,
			Output: []uint16{0b00110_110_000_00000},
		},
	})

	testFail(t, []failCase{
		// Bare immediates only fill the branch displacement slot
		{
			Name:  "NOT Literal operand",
			Input: `not $5`,
			Error: &assembler.InvalidOperandError{},
		},
		{
			Name:  "NEG Bad register",
			Input: `neg %r9`,
			Error: &assembler.InvalidRegisterError{},
		},
	})
}

// ADD  |00111   |RD |RS |imm5 | Addition
// SUB  |01000   |RD |RS |imm5 | Subtraction
// CMP  |01100   |RD |RS |imm5 | Compare, sets flags only
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestArithmetic(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "ADD imm5",
			Input:  `add %r0, $5`,
			Output: []uint16{0b00111_000_000_00101},
		},
		{
			Name:   "ADD register",
			Input:  `add %r0, %r1`,
			Output: []uint16{0b00111_000_001_00000},
		},
		{
			Name:   "ADD hex imm5",
			Input:  `add %r0, $0x1F`,
			Output: []uint16{0b00111_000_000_11111},
		},

		// The 5-bit field is a raw bit pattern: the unsigned maximum, the
		// signed minimum and -1 are all representable, and -1 encodes the
		// same bits as 31.
		{
			Name:   "ADD imm5 maximum",
			Input:  `add %r0, $31`,
			Output: []uint16{0b00111_000_000_11111},
		},
		{
			Name:   "ADD imm5 minimum",
			Input:  `add %r0, $-16`,
			Output: []uint16{0b00111_000_000_10000},
		},
		{
			Name:   "SUB imm5 negative",
			Input:  `sub %r2, $-1`,
			Output: []uint16{0b01000_010_000_11111},
		},
		{
			Name:   "CMP",
			Input:  `cmp %r1, %r2`,
			Output: []uint16{0b01100_001_010_00000},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "ADD Oversized imm5",
			Input: `add %r0, $32`,
			Error: &assembler.OversizedLiteralError{},
		},
		{
			Name:  "ADD Undersized imm5",
			Input: `add %r0, $-17`,
			Error: &assembler.OversizedLiteralError{},
		},
		{
			Name:  "ADD Bad literal",
			Input: `add %r0, $x`,
			Error: &assembler.InvalidLiteralError{},
		},
		{
			Name:  "ADD Missing destination",
			Input: `add $1, $2`,
			Error: &assembler.InvalidOperandError{},
		},
	})
}

// MOV  |01001   |RD |RS |imm5 | Register/immediate move
// MOVHI|01010   |RD |imm8     | Replace high byte of RD
// MOVLO|01011   |RD |imm8     | Replace low byte of RD
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestMove(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "MOV register",
			Input:  `mov %r3, %r4`,
			Output: []uint16{0b01001_011_100_00000},
		},
		{
			Name:   "MOV imm5",
			Input:  `mov %r3, $7`,
			Output: []uint16{0b01001_011_000_00111},
		},
		{
			Name:   "MOVHI imm8 maximum",
			Input:  `movhi %r1, $255`,
			Output: []uint16{0b01010_001_11111111},
		},
		{
			Name:   "MOVLO imm8 minimum",
			Input:  `movlo %r1, $-128`,
			Output: []uint16{0b01011_001_10000000},
		},
		{
			Name:   "MOVLO hex imm8",
			Input:  `movlo %r2, $0xAB`,
			Output: []uint16{0b01011_010_10101011},
		},
	})

	testFail(t, []failCase{
		// The wide immediate forms have no source register field
		{
			Name:  "MOVHI Register source",
			Input: `movhi %r0, %r1`,
			Error: &assembler.InvalidOperandError{},
		},
		{
			Name:  "MOVLO Label source",
			Input: `movlo %r0, somewhere`,
			Error: &assembler.InvalidOperandError{},
		},
		{
			Name:  "MOVHI Oversized imm8",
			Input: `movhi %r0, $256`,
			Error: &assembler.OversizedLiteralError{},
		},
		{
			Name:  "MOVLO Undersized imm8",
			Input: `movlo %r0, $-129`,
			Error: &assembler.OversizedLiteralError{},
		},
	})
}

// Jcc  |011x1...|RD |imm8     | Conditional/unconditional jumps
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestBranch(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "J imm8",
			Input:  `j $-2`,
			Output: []uint16{0b10111_000_11111110},
		},
		{
			Name:   "J imm8 maximum",
			Input:  `j $127`,
			Output: []uint16{0b10111_000_01111111},
		},
		{
			Name:   "J imm8 minimum",
			Input:  `j $-128`,
			Output: []uint16{0b10111_000_10000000},
		},
		{
			Name:   "J register",
			Input:  `j %r3`,
			Output: []uint16{0b10111_011_00000000},
		},
		{
			Name:   "JNE imm8",
			Input:  `jne $4`,
			Output: []uint16{0b01110_000_00000100},
		},
		{
			Name: "Signed conditions",
			Input: "jgs $2\n" +
				"jls $2\n" +
				"jges $2\n" +
				"jles $2",
			Output: []uint16{
				0b01111_000_00000010,
				0b10001_000_00000010,
				0b10011_000_00000010,
				0b10101_000_00000010,
			},
		},
		{
			Name: "Unsigned conditions",
			Input: "jgu $2\n" +
				"jlu $2\n" +
				"jgeu $2\n" +
				"jleu $2",
			Output: []uint16{
				0b10000_000_00000010,
				0b10010_000_00000010,
				0b10100_000_00000010,
				0b10110_000_00000010,
			},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "J Oversized imm8",
			Input: `j $128`,
			Error: &assembler.OversizedLiteralError{},
		},
		{
			Name:  "J Undersized imm8",
			Input: `j $-129`,
			Error: &assembler.OversizedLiteralError{},
		},
		{
			Name:  "JE is not a mnemonic",
			Input: `je $2`,
			Error: &assembler.UnknownInstructionError{},
		},
		{
			Name:  "JAL is not a mnemonic",
			Input: `jal $2`,
			Error: &assembler.UnknownInstructionError{},
		},
	})
}

// LW   |11001   |RD |RS |imm5 | Load word from RS+imm5
// SW   |11010   |RD |RS |imm5 | Store word to RS+imm5
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func TestMemory(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "LW",
			Input:  `lw %r1, $4(%r2)`,
			Output: []uint16{0b11001_001_010_00100},
		},
		{
			Name:   "SW negative offset",
			Input:  `sw %r3, $-2(%r4)`,
			Output: []uint16{0b11010_011_100_11110},
		},
		{
			Name:   "LW spaced",
			Input:  `lw %r1, $0 ( %r2 )`,
			Output: []uint16{0b11001_001_010_00000},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "LW Register offset",
			Input: `lw %r1, %r2`,
			Error: &assembler.InvalidOperandError{},
		},
		{
			Name:  "LW Missing base",
			Input: `lw %r1, $4`,
			Error: &assembler.UnexpectedCharacterError{},
		},
		{
			Name:  "LW Unterminated base",
			Input: `lw %r1, $4(%r2`,
			Error: &assembler.UnexpectedCharacterError{},
		},
		{
			Name:  "SW Oversized offset",
			Input: `sw %r1, $32(%r2)`,
			Error: &assembler.OversizedLiteralError{},
		},
	})
}

func TestNop(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:   "NOP",
			Input:  `nop`,
			Output: []uint16{0x0000},
		},
	})
}

func TestLabels(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "Forward branch",
			Input: "cmp %r1, $0\n" +
				"jne skip\n" +
				"add %r1, $1\n" +
				"skip: not %r1",
			Output: []uint16{
				0b01100_001_000_00000,
				0b01110_000_00000100,
				0b00111_001_000_00001,
				0b00101_001_000_00000,
			},
		},
		{
			Name: "Backward branch",
			Input: "loop: add %r0, $1\n" +
				"j loop",
			Output: []uint16{
				0b00111_000_000_00001,
				0b10111_000_11111110,
			},
		},
		{
			Name:  "Self branch",
			Input: `spin: j spin`,
			Output: []uint16{
				0b10111_000_00000000,
			},
		},
		{
			Name: "Backward address",
			Input: "var: nop\n" +
				"mov %r1, var",
			Output: []uint16{
				0x0000,
				0b01001_001_000_00000,
			},
		},
		{
			Name: "Forward address",
			Input: "mov %r1, data\n" +
				"nop\n" +
				"data: nop",
			Output: []uint16{
				0b01001_001_000_00100,
				0x0000,
				0x0000,
			},
		},
		{
			Name: "Comments",
			Input: "# leading comment\n" +
				"; alternate comment\n" +
				". directive\n" +
				"add %r0, $1 # trailing comment\n" +
				"add %r0, $2 ; trailing comment\n" +
				"\n",
			Output: []uint16{
				0b00111_000_000_00001,
				0b00111_000_000_00010,
			},
		},
	})

	testFail(t, []failCase{
		{
			Name: "Redeclared label",
			Input: "x: nop\n" +
				"x: nop",
			Error: &assembler.RedeclaredLabelError{},
		},
		{
			Name:  "Unknown label",
			Input: `j nowhere`,
			Error: &assembler.UnknownLabelError{},
		},
		{
			Name: "Branch label out of range",
			Input: "far: nop\n" +
				strings.Repeat("nop\n", 128) +
				"j far",
			Error: &assembler.OversizedLabelError{},
		},
		{
			Name: "Address label out of range",
			Input: strings.Repeat("nop\n", 16) +
				"high: nop\n" +
				"mov %r1, high",
			Error: &assembler.OversizedLabelError{},
		},

		// Same rejections when the label is only defined later, so the
		// range check runs in the resolution pass instead of inline
		{
			Name: "Forward branch label out of range",
			Input: "j far\n" +
				strings.Repeat("nop\n", 128) +
				"far: nop",
			Error: &assembler.OversizedLabelError{},
		},
		{
			Name: "Forward address label out of range",
			Input: "mov %r1, high\n" +
				strings.Repeat("nop\n", 16) +
				"high: nop",
			Error: &assembler.OversizedLabelError{},
		},
		{
			Name:  "Oversized token",
			Input: "j " + strings.Repeat("a", 33),
			Error: &assembler.OversizedTokenError{},
		},
	})
}

// Unresolved references do not stop the resolution pass: every bad label in
// the program gets its own error.
func TestUnresolvedLabels(t *testing.T) {
	_, errs := assembler.AssembleTangleSource(
		strings.NewReader("j aaa\nj bbb\n"), nil,
	)

	if len(errs) != 2 {
		t.Fatalf(
			"Invalid error count\nwant:%d\nhave:%d",
			2,
			len(errs),
		)
	}

	for i, err := range errs {
		if _, ok := err.(*assembler.UnknownLabelError); !ok {
			t.Fatalf(
				"errs[%d] has incorrect type"+
					"\nwant:%T\nhave:%T",
				i,
				&assembler.UnknownLabelError{},
				err,
			)
		}
	}
}

func TestSymTable(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name: "Symbols and labels",
			Input: "start: add %r0, $1\n" +
				"# comment line\n" +
				"loop: j loop",
			Output: []uint16{
				0b00111_000_000_00001,
				0b10111_000_00000000,
			},
			SymTable: &assembler.SymTable{
				Symbols: map[uint16]int{
					0x0000: 1,
					0x0002: 3,
				},
				Labels: map[uint16]string{
					0x0000: "start",
					0x0002: "loop",
				},
			},
		},
	})
}

func TestWriteHexImage(t *testing.T) {
	result, errs := assembler.AssembleTangleSource(
		strings.NewReader("add %r0, $5\nnop\n"), nil,
	)

	if len(errs) > 0 {
		t.Fatal(errs[0])
	}

	var buffer bytes.Buffer

	if err := assembler.WriteHexImage(&buffer, "test.tas", result); err != nil {
		t.Fatal(err)
	}

	want := "// test.tas file\n3805\n0000\n"

	if have := buffer.String(); have != want {
		t.Fatalf(
			"Hex image mismatch\nwant:%q\nhave:%q",
			want,
			have,
		)
	}
}
