package upload

// Messages shown on the status line.
const (
	idleText      = "Send file to the daemon"
	succeededText = "File sent successfully"
)

// Result is the outcome shown to the user. It is one of Idle, Failed or
// Succeeded; the unexported method keeps other packages from adding variants.
type Result interface {
	isResult()
	// Text is the status line for this result.
	Text() string
}

type result struct{}

func (result) isResult() {}

// Idle is the result before any submission.
type Idle struct{ result }

func (Idle) Text() string { return idleText }

// Failed carries the message explaining why the last submission failed.
type Failed struct {
	result
	Message string
}

func (f Failed) Text() string { return f.Message }

// Succeeded is the result after the daemon accepted a file.
type Succeeded struct{ result }

func (Succeeded) Text() string { return succeededText }

var (
	_ Result = Idle{}
	_ Result = Failed{}
	_ Result = Succeeded{}
)

// Phase is the controller's position in the submission state machine.
// Validation runs synchronously inside Submit and is never observed.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}
