// Package walker implements find's recursive traversal.
//
// A walk opens the root, evaluates it against the name and type predicates,
// and if it is a directory reads its entry records in on-disk order. Every
// live entry other than "." and ".." is stat-ed, evaluated against the same
// predicates and, when it is a directory, descended into. A match never
// prunes descent, so a -name search finds same-named objects at every depth.
//
// Failures are soft: an object that cannot be opened or stat-ed is reported
// and skipped, and a directory whose children would not fit in the path
// buffer is reported and its subtree abandoned. Handles are closed before
// each step returns.
//
// There is no cycle guard. A directory symlink pointing at an ancestor is
// descended repeatedly until the path outgrows the path buffer.
package walker
