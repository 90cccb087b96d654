package isa

import (
	"github.com/archsim/lc2k/translate"
)

var f = translate.From

// ErrBadWord indicates a machine-code line that does not parse as an
// integer word.
type ErrBadWord struct {
	LineNo int
	Text   string
}

func (err *ErrBadWord) Error() string {
	return f("line %d: '%v' is not a machine word", err.LineNo, err.Text)
}
