// Package process runs the external tools the pipeline depends on (rustup,
// rustc, cargo) behind a small Runner interface so steps can be tested with
// a fake instead of mutating the host.
package process
