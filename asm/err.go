package asm

import (
	"errors"

	"github.com/archsim/lc2k/translate"
)

var f = translate.From

// ErrMissingOpcode indicates a line with a label but no mnemonic.
var ErrMissingOpcode = errors.New(f("missing opcode"))

// ErrDuplicateLabel indicates a label defined more than once.
type ErrDuplicateLabel string

func (err ErrDuplicateLabel) Error() string {
	return f("duplicate label '%v'", string(err))
}

// ErrUnknownOpcode indicates a mnemonic outside the opcode table.
type ErrUnknownOpcode string

func (err ErrUnknownOpcode) Error() string {
	return f("unknown opcode '%v'", string(err))
}

// ErrArgumentCount indicates the wrong number of operands for a
// mnemonic's format.
type ErrArgumentCount struct {
	Mnemonic string
	Want     int
	Got      int
}

func (err *ErrArgumentCount) Error() string {
	return f("%v expects %d operands, got %d", err.Mnemonic, err.Want, err.Got)
}

// ErrInvalidRegister indicates a register operand that is not a
// number in 0..7.
type ErrInvalidRegister string

func (err ErrInvalidRegister) Error() string {
	return f("register must be 0..7: '%v'", string(err))
}

// ErrOffsetRange indicates an offset or immediate outside the signed
// 16-bit range.
type ErrOffsetRange int64

func (err ErrOffsetRange) Error() string {
	return f("offset %d out of 16-bit signed range", int64(err))
}

// ErrUndefinedSymbol indicates a token that is neither a literal nor
// a known label where a value is required.
type ErrUndefinedSymbol string

func (err ErrUndefinedSymbol) Error() string {
	return f("undefined symbol '%v'", string(err))
}

// ErrSyntax ties an assembly error to its source line.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
