// Package similarity computes normalized edit-distance similarity between strings.
//
// Callers are expected to normalize (lowercase, trim) before comparing; the
// functions here are case-sensitive and operate on runes, not bytes.
package similarity

// Levenshtein returns the number of single-rune insertions, deletions and
// substitutions needed to turn a into b.
//
// The matrix has len(b)+1 rows and len(a)+1 columns. Row 0 and column 0 hold
// their index values.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	matrix := make([][]int, len(rb)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(ra)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(ra); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(rb); i++ {
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				matrix[i][j] = matrix[i-1][j-1]
				continue
			}
			matrix[i][j] = 1 + min(
				matrix[i-1][j-1], // substitution
				matrix[i][j-1],   // insertion
				matrix[i-1][j],   // deletion
			)
		}
	}

	return matrix[len(rb)][len(ra)]
}

// Ratio returns a similarity score in [0,1]: 1.0 for identical strings
// (including two empty strings), decreasing with edit distance relative to
// the longer string.
func Ratio(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1.0
	}
	distance := Levenshtein(a, b)
	return float64(longest-distance) / float64(longest)
}
