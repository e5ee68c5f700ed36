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
	"fmt"
	"io"
)

// WriteHexImage serializes the assembled instructions as the textual hex
// image the Tangle simulator loads: a '// <source> file' header, then one
// 4-digit lowercase hex word per line in program order.
func WriteHexImage(w io.Writer, source string, insns []*Instruction) error {
	out := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(out, "// %s file\n", source); err != nil {
		return err
	}

	for _, insn := range insns {
		if _, err := fmt.Fprintf(out, "%04x\n", insn.Encode()); err != nil {
			return err
		}
	}

	return out.Flush()
}
