package analyzer

// levenshtein computes the edit distance between a and b with unit costs
// for insert, delete and substitute.
func levenshtein(a, b string) int {
	ar := []rune(a)
	br := []rune(b)

	matrix := make([][]int, len(ar)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(br)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(br); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(ar); i++ {
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			deletion := matrix[i-1][j] + 1
			insertion := matrix[i][j-1] + 1
			substitution := matrix[i-1][j-1] + cost

			min := deletion
			if insertion < min {
				min = insertion
			}
			if substitution < min {
				min = substitution
			}
			matrix[i][j] = min
		}
	}

	return matrix[len(ar)][len(br)]
}

// findBestMatch returns the candidate closest to name within edit distance
// 2, or "" when nothing is close enough. Ties go to the first minimum in
// candidate order.
func findBestMatch(name string, candidates []string) string {
	best := ""
	bestDist := 3
	for _, c := range candidates {
		if d := levenshtein(name, c); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}
