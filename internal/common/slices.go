package common

import "slices"

// Remove returns s without the first occurrence of v, and whether v was found.
// The order of the remaining elements is preserved.
func Remove[S ~[]E, E comparable](s S, v E) (S, bool) {
	i := slices.Index(s, v)
	if i < 0 {
		return s, false
	}

	return slices.Delete(s, i, i+1), true
}
