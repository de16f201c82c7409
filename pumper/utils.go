package pumper

const newLineChar = '\n'

// AssureLineTermination assures that a command line ends with exactly
// one newline, so an interactive tool blocked on a read sees the
// whole line.
func AssureLineTermination(line string) []byte {
	c := []byte(line)
	if len(c) == 0 {
		return []byte{newLineChar}
	}
	if c[len(c)-1] == newLineChar {
		// Slice it off to avoid doubling; will replace it momentarily.
		c = c[:len(c)-1]
	}
	return append(c, newLineChar)
}
