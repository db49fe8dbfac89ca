package scan

// change computes a window's open-to-close move. In percent mode a zero open
// leaves the change undefined; ok is false and the caller drops the row
// instead of raising a division error.
func change(openStart, closeEnd float64, mode Mode) (v float64, ok bool) {
	if mode == ModeAbsolute {
		return closeEnd - openStart, true
	}
	if openStart == 0 {
		return 0, false
	}
	return (closeEnd - openStart) / openStart * 100, true
}
