package json

import "fmt"

func errInvalidEscape(c byte) error {
	if c == 0 {
		return fmt.Errorf("json: invalid escape sequence")
	}
	return fmt.Errorf("json: invalid escape character: %q", c)
}

var errInvalidEscapeSeq = fmt.Errorf("json: invalid escape sequence")

func errInvalidUnicodeDigit(c byte) error {
	return fmt.Errorf("json: invalid unicode escape sequence: %q", c)
}

func errInvalidUnicodeChar(r rune) error {
	return fmt.Errorf("json: invalid unicode character: %x", r)
}
