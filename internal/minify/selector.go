package minify

// Smallest picks the shortest candidate. Nil candidates are skipped,
// ties favor the earlier one, and no usable candidate reports absent.
func Smallest(candidates ...[]byte) ([]byte, bool) {
	var best []byte
	found := false
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if !found || len(c) < len(best) {
			best = c
			found = true
		}
	}
	return best, found
}
