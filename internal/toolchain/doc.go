// Package toolchain keeps the host Rust toolchain current by invoking its
// self-updater (rustup) and probing the compiler version before and after.
package toolchain
