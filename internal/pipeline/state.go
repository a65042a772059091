package pipeline

import (
	"git.home.luguber.info/inful/rectpromote/internal/artifact"
	"git.home.luguber.info/inful/rectpromote/internal/git"
	"git.home.luguber.info/inful/rectpromote/internal/toolchain"
)

// State is shared by the steps of one run.
type State struct {
	Report *Report

	Toolchain toolchain.UpdateResult
	Sync      git.SyncResult
	// ArtifactPath is set by the compile step and consumed by publish.
	ArtifactPath string
	Artifact     artifact.Artifact
}

// NewState returns a state with a fresh report.
func NewState() *State { return &State{Report: NewReport()} }
