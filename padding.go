package eblb

// stringsPadding returns the number of zero bytes required after writing
// the given strings null-separated and null-terminated so that the region
// length is a multiple of four. The result is always in [0, 3].
func stringsPadding(strings []string) int {
	n := 1
	if len(strings) > 0 {
		n = 0
		for _, s := range strings {
			n += len(s) + 1
		}
	}
	if mod := n % 4; mod != 0 {
		return 4 - mod
	}
	return 0
}
