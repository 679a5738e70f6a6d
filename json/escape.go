package json

import "unicode/utf8"

// rawMark is the lookup-table sentinel meaning "this byte is not
// escaped". It is the ASCII digit '0', chosen because byte 0x30 (the
// digit '0' itself) never needs escaping either, so the sentinel value
// and the "no-op" entry for that byte happen to coincide instead of
// colliding.
const rawMark = '0'

// escapeTable maps a byte to the single ASCII letter that follows a
// backslash when escaping it (e.g. '\n' -> 'n'), or rawMark if the
// byte should be copied through unescaped. Bytes at or past its length
// are never escaped. Indices below 0x20 that aren't one of the named
// control characters (and thus strictly require escaping in valid
// JSON) are left raw here too — this tokenizer only escapes the
// handful of characters listed, not every control byte.
const escapeTable = "00000000btn0fr00000000000000000000\"000000000000/00000000000000000000000000000000000000000000\\"

// unescapeTable maps the byte following a backslash to its decoded
// value, or rawMark if that escape letter is invalid. 'u' maps to
// itself as a sentinel meaning "read 4 hex digits next" rather than a
// literal replacement byte.
const unescapeTable = "0000000000000000000000000000000000\"000000000000/00000000000000000000000000000000000000000000\\00000\b000\f0000000\n000\r0\tu"

// Escape appends s to z with the table's special bytes backslash-
// escaped; everything else is copied through as-is, including raw
// control bytes the table doesn't single out and any multi-byte UTF-8
// sequences in s (this does not validate that s is well-formed UTF-8).
func Escape(s []byte, z []byte) []byte {
	last := 0
	i := 0
	for i < len(s) {
		c := s[i]
		if int(c) >= len(escapeTable) || escapeTable[c] == rawMark {
			i++
			continue
		}
		if last < i {
			z = append(z, s[last:i]...)
		}
		z = append(z, '\\', escapeTable[c])
		i++
		last = i
	}
	if last < len(s) {
		z = append(z, s[last:]...)
	}
	return z
}

// Unescape appends the unescaped contents of s (the text between a
// string token's quotes) to z. \uXXXX sequences are decoded as single
// code points without surrogate-pair joining; a bare surrogate half is
// rejected as invalid, matching the rune decoder this was ported from.
func Unescape(s []byte, z []byte) ([]byte, error) {
	i := 0
	for i < len(s) {
		c := s[i]
		if c != '\\' {
			z = append(z, c)
			i++
			continue
		}
		i++
		if i >= len(s) {
			return z, errInvalidEscape(0)
		}
		c = s[i]
		if int(c) >= len(unescapeTable) || unescapeTable[c] == rawMark {
			return z, errInvalidEscape(c)
		}
		if c == 'u' {
			if i+4 >= len(s) {
				return z, errInvalidEscapeSeq
			}
			var uc rune
			for k := 0; k < 4; k++ {
				i++
				d := s[i]
				var v rune
				switch {
				case d >= '0' && d <= '9':
					v = rune(d - '0')
				case d >= 'A' && d <= 'F':
					v = rune(d-'A') + 10
				case d >= 'a' && d <= 'f':
					v = rune(d-'a') + 10
				default:
					return z, errInvalidUnicodeDigit(d)
				}
				uc = uc<<4 | v
			}
			if !utf8.ValidRune(uc) {
				return z, errInvalidUnicodeChar(uc)
			}
			var buf [utf8.UTFMax]byte
			n := utf8.EncodeRune(buf[:], uc)
			z = append(z, buf[:n]...)
		} else {
			z = append(z, unescapeTable[c])
		}
		i++
	}
	return z, nil
}
