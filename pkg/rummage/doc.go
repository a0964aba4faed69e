// Package rummage holds the public types shared by the find, grep and stat
// utilities: object metadata, sentinel errors, exit codes and the Logger
// interface.
package rummage
