package sim

import (
	"github.com/archsim/lc2k/isa"
	"github.com/archsim/lc2k/translate"
)

var f = translate.From

// ErrProgramTooLarge indicates a program image longer than memory,
// rejected at load before any instruction executes.
type ErrProgramTooLarge int

func (err ErrProgramTooLarge) Error() string {
	return f("program too large: %d > %d words", int(err), isa.MEM_SIZE)
}
