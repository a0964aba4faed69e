package regex

// Pattern is a compiled pattern. The zero value matches every line.
type Pattern struct {
	expr string
}

// Compile returns a reusable Pattern. Every string is a valid pattern.
func Compile(expr string) Pattern {
	return Pattern{expr: expr}
}

// String returns the pattern source.
func (p Pattern) String() string { return p.expr }

// Match reports whether the pattern matches anywhere in text.
func (p Pattern) Match(text []byte) bool {
	return match(p.expr, string(text))
}

// MatchString reports whether re matches anywhere in text.
func MatchString(re, text string) bool {
	return match(re, text)
}

// match searches for re anywhere in text.
func match(re, text string) bool {
	if len(re) > 0 && re[0] == '^' {
		return matchHere(re[1:], text)
	}
	// The empty suffix at the end of text is a candidate too.
	for i := 0; i <= len(text); i++ {
		if matchHere(re, text[i:]) {
			return true
		}
	}
	return false
}

// matchHere searches for re at the beginning of text.
func matchHere(re, text string) bool {
	if re == "" {
		return true
	}
	if len(re) > 1 && re[1] == '*' {
		return matchStar(re[0], re[2:], text)
	}
	if re == "$" {
		return text == ""
	}
	if text != "" && (re[0] == '.' || re[0] == text[0]) {
		return matchHere(re[1:], text[1:])
	}
	return false
}

// matchStar searches for c*re at the beginning of text.
func matchStar(c byte, re, text string) bool {
	for {
		if matchHere(re, text) {
			return true
		}
		if text == "" || (text[0] != c && c != '.') {
			return false
		}
		text = text[1:]
	}
}
