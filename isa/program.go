package isa

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Program is an assembled sequence of machine words in program
// order. Its text form - the machine-code file - holds one unsigned
// decimal word per line with a trailing newline.
type Program struct {
	Words []uint32
}

// Encode renders the program in machine-code text form. The full
// image is produced in memory so callers can write the file in one
// shot, never leaving a partial file behind.
func (prog *Program) Encode() []byte {
	var buf bytes.Buffer

	for _, word := range prog.Words {
		fmt.Fprintf(&buf, "%d\n", word)
	}

	return buf.Bytes()
}

// ReadProgram parses machine-code text. Each line is read as a
// decimal integer and masked to 32 bits; blank lines are ignored.
func ReadProgram(input io.Reader) (prog *Program, err error) {
	prog = &Program{}

	scanner := bufio.NewScanner(input)
	lineno := 0
	for scanner.Scan() {
		lineno++
		text := strings.TrimSpace(scanner.Text())
		if len(text) == 0 {
			continue
		}

		value, perr := strconv.ParseInt(text, 10, 64)
		if perr != nil {
			return nil, &ErrBadWord{LineNo: lineno, Text: text}
		}

		prog.Words = append(prog.Words, uint32(value&MASK_32))
	}

	err = scanner.Err()
	if err != nil {
		return nil, err
	}

	return
}
