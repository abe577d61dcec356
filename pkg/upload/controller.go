package upload

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rescp17/daemonSend/pkg/concurrency"
	"github.com/rescp17/daemonSend/pkg/fileInfo"
)

// Uploader performs one round trip to the daemon.
type Uploader interface {
	Upload(ctx context.Context, file *fileInfo.File, recipient string) (any, error)
}

// Controller owns the form state and drives submissions. It is not safe for
// concurrent use: every method must be called from the same goroutine, and
// only Attempt.Run may happen elsewhere.
type Controller struct {
	uploader  Uploader
	selector  Selector
	recipient string
	result    Result
	inFlight  int
	// guard is nil unless exclusive submissions are enabled.
	guard *concurrency.ConcurrencyGuard
}

type Option func(*Controller)

// WithExclusive makes Submit refuse to start while another attempt is
// outstanding. Without it, concurrent attempts race and the last response wins.
func WithExclusive() Option {
	return func(c *Controller) {
		c.guard = concurrency.NewConcurrencyGuard()
	}
}

func NewController(uploader Uploader, opts ...Option) *Controller {
	c := &Controller{
		uploader: uploader,
		result:   Idle{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Selector() *Selector {
	return &c.selector
}

func (c *Controller) SetRecipient(recipient string) {
	c.recipient = recipient
}

func (c *Controller) Recipient() string {
	return c.recipient
}

func (c *Controller) Result() Result {
	return c.result
}

// InFlight reports whether any attempt is still waiting on the daemon.
func (c *Controller) InFlight() bool {
	return c.inFlight > 0
}

func (c *Controller) Phase() Phase {
	if c.InFlight() {
		return PhaseSubmitting
	}
	switch c.result.(type) {
	case Failed:
		return PhaseFailed
	case Succeeded:
		return PhaseSucceeded
	default:
		return PhaseIdle
	}
}

// Submit validates the form and, if it is complete, returns an Attempt that
// carries a snapshot of the file and recipient. Validation failures are
// recorded as the result and returned; nothing is sent in that case.
// With WithExclusive, concurrency.ErrBusy is returned and nothing changes.
func (c *Controller) Submit() (*Attempt, error) {
	file := c.selector.Selected()
	if file == nil {
		c.result = Failed{Message: ErrNoFile.Error()}
		return nil, ErrNoFile
	}
	if c.recipient == "" {
		c.result = Failed{Message: ErrNoRecipient.Error()}
		return nil, ErrNoRecipient
	}
	if c.guard != nil {
		if err := c.guard.TryAcquire(); err != nil {
			slog.Info("submission refused, upload in progress")
			return nil, err
		}
	}

	attempt := &Attempt{
		ID:        uuid.New().String(),
		File:      file,
		Recipient: c.recipient,
		uploader:  c.uploader,
	}
	c.inFlight++
	c.result = Idle{}
	slog.Info("upload dispatched", "attempt_id", attempt.ID, "file", file.Name, "size", file.Size, "recipient", attempt.Recipient)
	return attempt, nil
}

// Complete applies the outcome of an attempt started by Submit. Outcomes
// are applied in arrival order, so the latest one decides the result.
func (c *Controller) Complete(o Outcome) {
	if c.inFlight > 0 {
		c.inFlight--
	}
	if c.guard != nil {
		c.guard.Release()
	}

	if o.Err != nil {
		slog.Error("upload failed", "attempt_id", o.AttemptID, "error", o.Err)
		c.result = Failed{Message: failureMessage(o.Err)}
		return
	}

	slog.Info("upload succeeded", "attempt_id", o.AttemptID, "response", o.Response)
	c.result = Succeeded{}
	c.selector.Clear()
	c.recipient = ""
}

// Attempt is one dispatched submission.
type Attempt struct {
	ID        string
	File      *fileInfo.File
	Recipient string
	uploader  Uploader
}

// Outcome is what an Attempt produced. Err is nil when the daemon accepted the file.
type Outcome struct {
	AttemptID string
	Response  any
	Err       error
}

// Run performs the attempt's single request. It is safe to call off the
// controller's goroutine.
func (a *Attempt) Run(ctx context.Context) Outcome {
	resp, err := a.uploader.Upload(ctx, a.File, a.Recipient)
	return Outcome{AttemptID: a.ID, Response: resp, Err: err}
}
