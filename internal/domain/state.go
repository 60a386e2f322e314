package domain

// WorkflowState enumerates the session lifecycle. Exactly one state is active
// at a time; transitions only move forward except for user reset and
// credential-loss recovery.
type WorkflowState string

const (
	StateAwaitingCredential WorkflowState = "awaiting_credential"
	StateIdle               WorkflowState = "idle"
	StateSubmitting         WorkflowState = "submitting"
	StatePolling            WorkflowState = "polling"
	StateDownloading        WorkflowState = "downloading"
	StateReady              WorkflowState = "ready"
	StateFailed             WorkflowState = "failed"
)

// Terminal reports whether the state ends a job and accepts a user reset.
func (s WorkflowState) Terminal() bool {
	return s == StateReady || s == StateFailed
}

// Busy reports whether a job is in flight. New submissions are rejected while
// busy.
func (s WorkflowState) Busy() bool {
	switch s {
	case StateSubmitting, StatePolling, StateDownloading:
		return true
	}
	return false
}
