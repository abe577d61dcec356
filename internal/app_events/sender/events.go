package sender

import (
	appevents "github.com/rescp17/daemonSend/internal/app_events"
	"github.com/rescp17/daemonSend/pkg/fileInfo"
	"github.com/rescp17/daemonSend/pkg/upload"
)

// --- App Events (from TUI to App) ---

// FilesChosenMsg is sent when the file browser returns. Files may be empty.
type FilesChosenMsg struct {
	appevents.Event
	Files []fileInfo.File
}

// SubmitMsg is sent when the user presses send. It carries the recipient
// text as typed at that moment.
type SubmitMsg struct {
	appevents.Event
	Recipient string
}

var (
	_ appevents.AppEvent = (*FilesChosenMsg)(nil)
	_ appevents.AppEvent = (*SubmitMsg)(nil)
)

// --- UI Messages (from App to TUI) ---

// StateMsg is a snapshot of the form after the App handled an event.
type StateMsg struct {
	appevents.UIMessage
	FileName  string
	FileLabel string
	HasFile   bool
	Result    upload.Result
	InFlight  bool
}

// FormResetMsg tells the TUI to clear its inputs after a successful upload.
type FormResetMsg struct {
	appevents.UIMessage
}

var (
	_ appevents.AppUIMessage = (*StateMsg)(nil)
	_ appevents.AppUIMessage = (*FormResetMsg)(nil)
)
