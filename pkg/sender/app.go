package sender

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	appevents "github.com/rescp17/daemonSend/internal/app_events"
	"github.com/rescp17/daemonSend/internal/app_events/sender"
	"github.com/rescp17/daemonSend/pkg/concurrency"
	"github.com/rescp17/daemonSend/pkg/upload"
	"golang.org/x/sync/errgroup"
)

// App is the main application logic controller for the sender. All form
// state lives in its controller and is only touched from the event loop.
type App struct {
	controller *upload.Controller
	uiMessages chan tea.Msg            // App -> TUI
	appEvents  chan appevents.AppEvent // TUI -> App
	outcomes   chan upload.Outcome     // finished attempts -> event loop
}

// NewApp creates a new sender application instance.
func NewApp(uploader upload.Uploader, opts ...upload.Option) *App {
	return &App{
		controller: upload.NewController(uploader, opts...),
		uiMessages: make(chan tea.Msg, 16),
		appEvents:  make(chan appevents.AppEvent),
		outcomes:   make(chan upload.Outcome),
	}
}

// UIMessages returns the channel for the UI to listen on for updates.
func (a *App) UIMessages() <-chan tea.Msg {
	return a.uiMessages
}

// AppEvents returns a write-only channel for the TUI to send events to the app.
func (a *App) AppEvents() chan<- appevents.AppEvent {
	return a.appEvents
}

// Run starts the application's main event loop. It returns once ctx is done
// and every dispatched attempt has finished.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.publish(ctx)
		for {
			select {
			case <-ctx.Done():
				return nil
			case event := <-a.appEvents:
				a.handleEvent(ctx, g, event)
			case outcome := <-a.outcomes:
				a.controller.Complete(outcome)
				a.publish(ctx)
				if _, ok := a.controller.Result().(upload.Succeeded); ok {
					a.send(ctx, sender.FormResetMsg{})
				}
			}
		}
	})
	return g.Wait()
}

func (a *App) handleEvent(ctx context.Context, g *errgroup.Group, event appevents.AppEvent) {
	switch e := event.(type) {
	case sender.FilesChosenMsg:
		a.controller.Selector().Choose(e.Files)
		a.publish(ctx)
	case sender.SubmitMsg:
		a.controller.SetRecipient(e.Recipient)
		attempt, err := a.controller.Submit()
		switch {
		case errors.Is(err, concurrency.ErrBusy):
			slog.Info("Ignoring submit while an upload is in flight")
		case err != nil:
			slog.Info("Submission rejected", "reason", err)
		default:
			a.dispatch(ctx, g, attempt)
		}
		a.publish(ctx)
	default:
		slog.Warn("Unhandled app event", "event", e)
	}
}

// dispatch runs the attempt off the event loop and feeds its outcome back in.
func (a *App) dispatch(ctx context.Context, g *errgroup.Group, attempt *upload.Attempt) {
	g.Go(func() error {
		outcome := attempt.Run(ctx)
		select {
		case a.outcomes <- outcome:
		case <-ctx.Done():
			slog.Warn("Dropping upload outcome during shutdown", "attempt_id", outcome.AttemptID)
		}
		return nil
	})
}

// publish sends a snapshot of the form to the UI.
func (a *App) publish(ctx context.Context) {
	selector := a.controller.Selector()
	msg := sender.StateMsg{
		FileLabel: selector.Label(),
		Result:    a.controller.Result(),
		InFlight:  a.controller.InFlight(),
	}
	if f := selector.Selected(); f != nil {
		msg.HasFile = true
		msg.FileName = f.Name
	}
	a.send(ctx, msg)
}

func (a *App) send(ctx context.Context, msg tea.Msg) {
	select {
	case a.uiMessages <- msg:
	case <-ctx.Done():
	}
}
