package session

// Progress is the outcome recorded for one question of a session.
type Progress int

const (
	ProgressPending Progress = iota
	ProgressCorrect
	ProgressWrong
	ProgressTimedOut
)

func (p Progress) String() string {
	switch p {
	case ProgressPending:
		return "pending"
	case ProgressCorrect:
		return "correct"
	case ProgressWrong:
		return "wrong"
	case ProgressTimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}

// Done reports whether the question has been settled.
func (p Progress) Done() bool {
	return p != ProgressPending
}
