package common

// Unpack2 returns the first two elements of s, zero values standing in for
// missing ones.
func Unpack2[S ~[]T, T any](s S) (first T, second T) {
	switch len(s) {
	case 0:
		return
	case 1:
		return s[0], second
	default:
		return s[0], s[1]
	}
}
