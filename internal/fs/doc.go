// Package fs provides filesystem abstractions for testability and fault injection.
//
// The package defines two key interfaces:
//
//   - [File]: an open file with read/write/sync capabilities
//   - [FileSystem]: filesystem operations (open, remove, rename, stat)
//
// # Implementations
//
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: test utility that injects write, sync, close and rename failures
//
// # Usage
//
// Production code uses fs.Default (which is [LocalFS]):
//
//	file, err := fs.Default.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
//
// Tests inject [FaultyFS] to interrupt a sidecar rebuild half way:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".flat", fs.Fault{FailAfterBytes: 100})
//
// # Design Notes
//
// No operation takes a context.Context. Local filesystem calls are not
// interruptible at the syscall level; remote stores live behind kvstore.Store,
// which does take a context.
package fs
