// Package library defines the contract between the benchmark harness and the
// graph libraries it evaluates.
//
// A library adapter is constructed through a Factory registered under a name.
// The configured name is resolved once at startup and every call to the
// factory returns a fresh, exclusively owned adapter oriented according to the
// directed flag:
//
//	library.Register("adjacency", adjacency.New)
//	impl, err := library.Default().New("adjacency", true)
//	defer impl.Close()
//
// Built-in adapters live in sub-packages and register themselves from init();
// binaries link them with blank imports.
package library
