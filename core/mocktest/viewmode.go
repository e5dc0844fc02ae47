package mocktest

// ViewMode is the phase of a session.
//
//	NotStarted -> Running      -> Completed -> ReviewingSolutions
//	           -> PracticeMode ->
//
// Exited is terminal and reachable from every mode.
type ViewMode int

const (
	NotStarted ViewMode = iota
	Running
	PracticeMode
	Completed
	ReviewingSolutions
	Exited
)

var viewModeNames = [...]string{
	NotStarted:         "not-started",
	Running:            "running",
	PracticeMode:       "practice",
	Completed:          "completed",
	ReviewingSolutions: "reviewing-solutions",
	Exited:             "exited",
}

func (m ViewMode) String() string {
	if m < NotStarted || m > Exited {
		return "unknown"
	}
	return viewModeNames[m]
}

// Answering is true while answers and flags may change.
func (m ViewMode) Answering() bool {
	switch m {
	case Running, PracticeMode:
		return true
	case NotStarted, Completed, ReviewingSolutions, Exited:
		return false
	}
	return false
}

// Finished is true once the attempt is over.
func (m ViewMode) Finished() bool {
	switch m {
	case Completed, ReviewingSolutions:
		return true
	case NotStarted, Running, PracticeMode, Exited:
		return false
	}
	return false
}

// Navigable is true when the current question may be moved.
func (m ViewMode) Navigable() bool {
	return m.Answering() || m.Finished()
}

// SolutionsVisible is true when correct answers may be shown.
func (m ViewMode) SolutionsVisible() bool {
	switch m {
	case PracticeMode, Completed, ReviewingSolutions:
		return true
	case NotStarted, Running, Exited:
		return false
	}
	return false
}
