package collapse

//go:generate go tool stringer -type=Phase -trimprefix=Phase -output=phase_string.go

// Phase is the step of a collapse pass currently running.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSelecting
	PhaseSwapping
	PhaseClearingInternal
	PhaseDeleting
)
