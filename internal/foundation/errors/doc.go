// Package errors provides the classified error primitives shared by every
// pipeline step of rectpromote.
//
// A ClassifiedError carries a category (toolchain, git, network, build,
// filesystem, ...), a severity and free-form context. The CLI adapter maps
// categories to process exit codes, preferring the exit status of a failed
// external command when one is attached to the error chain.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryFileSystem, "publish failed").
//		WithCause(ioErr).
//		WithContext("destination", dst).
//		Build()
package errors
