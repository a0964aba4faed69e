package linescan

// foldMatcher is a case-insensitive substring Matcher.
type foldMatcher struct {
	needle []byte
}

func (m foldMatcher) Match(line []byte) bool {
	return FoldContains(line, m.needle)
}

// FoldContains reports whether needle occurs in haystack when both sides are
// folded to lower case. Only ASCII 'A' to 'Z' are folded; every other byte,
// including UTF-8 sequences, must match exactly.
func FoldContains(haystack, needle []byte) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		j := 0
		for ; j < len(needle); j++ {
			if lower(haystack[i+j]) != lower(needle[j]) {
				break
			}
		}
		if j == len(needle) {
			return true
		}
	}
	return false
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
