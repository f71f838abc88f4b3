package practice

import "github.com/abhisek/spellz/internal/words"

// Feedback is the learner-facing status of the current word.
type Feedback int

const (
	FeedbackNone        Feedback = iota // Nothing to report
	FeedbackListening                   // Speech capture is live
	FeedbackCorrect                     // Right answer, advance pending
	FeedbackRetry                       // Wrong answer or failed capture
	FeedbackUnsupported                 // No speech capture on this host
	FeedbackCompleted                   // Every word in the list is done
)

func (f Feedback) String() string {
	switch f {
	case FeedbackNone:
		return "none"
	case FeedbackListening:
		return "listening"
	case FeedbackCorrect:
		return "correct"
	case FeedbackRetry:
		return "retry"
	case FeedbackUnsupported:
		return "unsupported"
	case FeedbackCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Outcome is what a submitted answer led to.
type Outcome int

const (
	// OutcomeIgnored means the answer was not evaluated: the word is
	// already solved, the list is complete, or the session is closed.
	OutcomeIgnored Outcome = iota
	OutcomeRetry
	OutcomeCorrect
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRetry:
		return "retry"
	case OutcomeCorrect:
		return "correct"
	default:
		return "ignored"
	}
}

// State is the mutable state of one practice run.
type State struct {
	// WordIndex is the position of the current word. It stays on the last
	// word once the run is completed.
	WordIndex int

	// Input is the current answer attempt.
	Input string

	// Feedback is the status shown and spoken to the learner.
	Feedback Feedback

	// Correct is true only while Feedback is FeedbackCorrect, i.e. while
	// the advance to the next word is pending.
	Correct bool

	// Listening is true while a speech capture is live.
	Listening bool

	// Completed marks the terminal state after the last word.
	Completed bool

	// Generation changes on every advance and reset. Asynchronous work
	// remembers the generation it was started in and is dropped when it
	// no longer matches.
	Generation uint64
}

// Snapshot is a read-only copy of the state plus the word it refers to.
type Snapshot struct {
	State

	// Entry is the current word.
	Entry words.Entry

	// Total is the number of words in the list.
	Total int

	// Capturing is true from ToggleListening until the capture reports
	// OnStop, including the moments before OnStart and after OnResult or
	// OnError.
	Capturing bool
}

// Position returns the 1-based number of the current word.
func (s Snapshot) Position() int {
	return s.WordIndex + 1
}
