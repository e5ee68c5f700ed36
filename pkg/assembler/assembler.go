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
	"bufio"
	"io"
	"strings"
)

// assembly is the state of one run: the symbol table, the instructions in
// program order, the program counter and the current source line.
type assembly struct {
	labels map[string]*Label
	insns  []*Instruction
	pc     int
	line   int
	errs   []error
}

// AssembleTangleSource assembles Tangle assembly from input in two passes.
//
// The first pass scans line by line, records label definitions at the
// current program counter and parses mnemonic lines into instructions,
// leaving a pending name on any instruction that references a label not yet
// defined. A first-pass error stops the run immediately.
//
// The second pass patches every pending reference from the completed symbol
// table. Second-pass failures are accumulated, so every unresolved or
// out-of-range label in the program is reported.
//
// When symtable is non-nil its Symbols and Labels maps are filled for
// debugger use.
func AssembleTangleSource(input io.Reader, symtable *SymTable) ([]*Instruction, []error) {
	a := &assembly{labels: make(map[string]*Label)}

	scanner := bufio.NewScanner(input)

	for scanner.Scan() {
		a.line++

		if err := a.parseLine(scanner.Text(), symtable); err != nil {
			a.errs = append(a.errs, err)
			return a.insns, a.errs
		}
	}

	if err := scanner.Err(); err != nil {
		a.errs = append(a.errs, err)
		return a.insns, a.errs
	}

	a.resolveLabels()

	if symtable != nil {
		for name, lbl := range a.labels {
			symtable.Labels[uint16(lbl.Offset)] = name
		}
	}

	return a.insns, a.errs
}

// parseLine consumes one source line. A line may hold several constructs in
// sequence (typically a label definition followed by an instruction);
// scanning continues until the line, a comment or a directive ends it.
func (a *assembly) parseLine(line string, symtable *SymTable) error {
	s := &scanner{line: line, num: a.line}

	for {
		s.skipWhitespace()

		if s.eol() {
			return nil
		}

		switch s.peek() {
		case '.', '#', ';':
			// Directives are ignored wholesale, like comments.
			return nil
		}

		pos := s.cursor()
		token, err := s.readToken()

		if err != nil {
			return err
		}

		if token == "" {
			return &UnexpectedCharacterError{Position: pos, Received: s.peek()}
		}

		if s.accept(':') {
			if _, exists := a.labels[token]; exists {
				return &RedeclaredLabelError{pos, token}
			}

			a.labels[token] = &Label{Name: token, Offset: a.pc}
			continue
		}

		tbl, exists := mnemonics[strings.ToLower(token)]

		if !exists {
			return &UnknownInstructionError{pos, token}
		}

		insn := &Instruction{
			Opcode:   tbl.Opcode,
			Class:    tbl.Class,
			PC:       a.pc,
			Position: pos,
		}

		if err := a.parseOperands(s, tbl, insn); err != nil {
			return err
		}

		a.insns = append(a.insns, insn)

		if symtable != nil {
			symtable.Symbols[uint16(insn.PC)] = a.line
		}

		a.pc += INSN_BYTES
	}
}

// resolveLabels is the second pass: every pending reference is recomputed
// against the completed symbol table under the same class rule the first
// pass would have applied. The pending name is cleared whether or not
// resolution succeeds, and failures do not stop the walk.
func (a *assembly) resolveLabels() {
	for _, insn := range a.insns {
		if insn.Pending == "" {
			continue
		}

		name := insn.Pending
		insn.Pending = ""

		lbl, exists := a.labels[name]

		if !exists {
			a.errs = append(a.errs, &UnknownLabelError{insn.Position, name})
			continue
		}

		if insn.Class == CLASS_BRA {
			offset := int64(lbl.Offset - insn.PC)

			if offset < MIN_IMM_BRA || offset > MAX_IMM_BRA {
				a.errs = append(a.errs, &OversizedLabelError{
					insn.Position, name, MIN_IMM_BRA, MAX_IMM_BRA, offset,
				})
				continue
			}

			insn.Imm = uint16(offset) & 0xFF
		} else {
			offset := int64(lbl.Offset)

			if offset < MIN_IMM_AMI || offset > MAX_IMM_AMI {
				a.errs = append(a.errs, &OversizedLabelError{
					insn.Position, name, MIN_IMM_AMI, MAX_IMM_AMI, offset,
				})
				continue
			}

			insn.Imm = uint16(offset) & 0x1F
		}
	}
}
