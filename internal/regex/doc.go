// Package regex implements the small backtracking matcher used by grep.
//
// Supported syntax:
//   - c   matches the literal byte c
//   - .   matches any single byte
//   - ^   anchors the match at the start of the line (only as the first byte)
//   - $   anchors the match at the end of the line (only as the last byte)
//   - c*  matches zero or more repetitions of the preceding atom
//
// There is no escaping: a special byte in any other position is a literal.
// A '*' at the start of the pattern (or right after '^') has no atom to
// repeat and is therefore a literal too.
//
// Matching is unanchored unless the pattern starts with '^'. Backtracking is
// exponential on pathological inputs such as "a*a*a*a*b" against a long run
// of 'a'; this is accepted for line-sized inputs.
package regex
