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

package debugger

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dcosta/gotangle/pkg/machine"
)

func (dbg *Debugger) Step(mc *machine.Machine) {
	if dbg.Break {
		dbg.HandleBreak(dbg, mc)
		return
	}

	for _, breakpoint := range dbg.Breakpoints {
		if mc.State.Program == breakpoint.Addr {
			dbg.HandleBreak(dbg, mc)
			break
		}
	}
}

func (dbg *Debugger) Read(addr uint16, mc *machine.Machine) {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == WriteWatch {
			continue
		}

		if addr == watchpoint.Addr {
			dbg.HandleRead(addr, dbg, mc)
			break
		}
	}
}

func (dbg *Debugger) Write(addr uint16, mc *machine.Machine) {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type == ReadWatch {
			continue
		}

		if addr == watchpoint.Addr {
			dbg.HandleWrite(addr, dbg, mc)
			break
		}
	}
}

// PrintSource lists count source lines starting at the line that produced
// the instruction at addr, prefixing each line that maps back to an
// instruction with its address.
func (dbg *Debugger) PrintSource(addr uint16, count int) {
	if dbg.Source == nil {
		fmt.Println("No source file loaded")
		return
	}

	if dbg.SymTable == nil {
		fmt.Println("No symbol table loaded")
		return
	}

	first, exists := dbg.SymTable.Symbols[addr]

	if !exists {
		fmt.Printf("No instruction found at %#04x\n", addr)
		return
	}

	if _, err := dbg.Source.Seek(0, io.SeekStart); err != nil {
		panic(err)
	}

	scanner := bufio.NewScanner(dbg.Source)
	scanner.Split(bufio.ScanLines)

	for num := 1; num < first+count && scanner.Scan(); num++ {
		if num < first {
			continue
		}

		line := scanner.Text()

		foundaddr := false
		for lineaddr, linenum := range dbg.SymTable.Symbols {
			if linenum == num {
				fmt.Printf("\033[1m[%#04x]\033[0m ", lineaddr)
				foundaddr = true
				break
			}
		}

		if !foundaddr {
			fmt.Print("\033[1;30m~~~~~~~~\033[0m ")
		}

		fmt.Println(line)
	}

	if err := scanner.Err(); err != nil {
		fmt.Println(err)
	}
}

// PrintMem dumps count words starting at the given byte address
func (dbg *Debugger) PrintMem(mc *machine.MachineState, addr, count uint16) {
	for i := uint16(0); i < count; i++ {
		byteaddr := addr + i*2

		if i == 0 {
			fmt.Printf("\033[1m[%#04x]\033[0m ", byteaddr)
		} else if i%4 == 0 {
			fmt.Println()
			fmt.Printf("\033[1m[%#04x]\033[0m ", byteaddr)
		}

		result := mc.Memory[byteaddr>>1]

		if result == 0 {
			fmt.Printf("\033[1;30m%#04x\033[0m ", result)
		} else {
			fmt.Printf("%#04x ", result)
		}
	}

	fmt.Println()
}
