// Package pipeline runs the build-and-publish steps in a fixed order with
// fail-fast semantics: update the toolchain, fast-forward the working copy,
// compile the release library, publish it next to the checkout.
//
// Each step is a narrow interface (toolchain.Updater, git.Synchronizer,
// compile.Compiler, publish.Publisher) so the sequencing is testable without
// real tools. The first error stops the run and is returned as a *StepError;
// no later step executes, so a failed build never touches the destination.
package pipeline
