// Package dis renders machine words back into mnemonic text. It is
// a read-side consumer of the isa field layout; data words produced
// by .fill decode as whatever instruction their bits spell.
package dis

import (
	"fmt"
	"io"

	"github.com/archsim/lc2k/isa"
)

// Word renders one machine word as assembly text. I-format offsets
// print signed; everything else prints as unsigned register numbers.
func Word(word uint32) string {
	fl := isa.Decode(word)

	switch fl.Op.Format() {
	case isa.FORMAT_R:
		return fmt.Sprintf("%v %d %d %d", fl.Op, fl.RegA, fl.RegB, fl.Dest)
	case isa.FORMAT_I:
		return fmt.Sprintf("%v %d %d %d", fl.Op, fl.RegA, fl.RegB, fl.Offset())
	case isa.FORMAT_J:
		return fmt.Sprintf("%v %d %d", fl.Op, fl.RegA, fl.RegB)
	}

	return fl.Op.String()
}

// Fprint writes a listing of the program, one address per line.
func Fprint(w io.Writer, prog *isa.Program) error {
	for addr, word := range prog.Words {
		_, err := fmt.Fprintf(w, "%6d: %10d  %s\n", addr, word, Word(word))
		if err != nil {
			return err
		}
	}

	return nil
}
