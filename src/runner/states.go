package runner

import "github.com/elee1766/taskchat/src/aisdk"

// Phase is the lifecycle phase of one run as tracked by the state machine.
// It exists for exactly one Execute call and is never shared or persisted.
type Phase string

const (
	PhasePending             Phase = "pending"
	PhaseActive              Phase = "active"
	PhaseAwaitingToolResults Phase = "awaiting-tool-results"
	PhaseCompleted           Phase = "completed"
	PhaseFailed              Phase = "failed"
)

// phaseFromStatus maps a backend run status onto the local phase.
func phaseFromStatus(status aisdk.RunStatus) Phase {
	switch status {
	case aisdk.RunStatusQueued:
		return PhasePending
	case aisdk.RunStatusInProgress:
		return PhaseActive
	case aisdk.RunStatusRequiresAction:
		return PhaseAwaitingToolResults
	case aisdk.RunStatusCompleted:
		return PhaseCompleted
	default:
		return PhaseFailed
	}
}
