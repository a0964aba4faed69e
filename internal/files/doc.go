// Package files groups the file store and traversal sub-packages.
//
//   - filesystem: the Store abstraction (OS, in-memory and io/fs backed) and
//     the fixed-width directory entry records every store produces
//   - walker: depth-first traversal of a Store with name and type predicates
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/rummage/internal/files/filesystem"
//	    "github.com/vvka-141/rummage/internal/files/walker"
//	)
//
//	w := walker.NewWalker(filesystem.NewOSStore(), logger, rummage.DefaultPathMax)
//	w.Walk(".", walker.Options{Name: "go.mod"}, func(path string) {
//	    fmt.Println(path)
//	})
package files
