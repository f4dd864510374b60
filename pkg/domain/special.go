package domain

// Op is a USSD operator code, carried in the ussdServiceOp field of every
// carrier request and response.
type Op string

const (
	// OpInit marks the first contact of a dialog (subscriber dialled the code).
	OpInit Op = "1"
	// OpAsk keeps the session open and waits for subscriber input (outbound only).
	OpAsk Op = "2"
	// OpEnd terminates the session (outbound only).
	OpEnd Op = "17"
	// OpResponse carries a subscriber reply to a previously sent menu.
	OpResponse Op = "18"
	// OpCancelled signals that the carrier aborted the dialog.
	OpCancelled Op = "30"
)

// Special is a reserved action target interpreted directly by the engine
// instead of being resolved as a menu id.
type Special string

const (
	// Welcome re-enters the application's welcome menu.
	Welcome Special = "__welcome"
	// Back renders the previous menu from the back history.
	Back Special = "__back"
	// Same re-renders the current menu.
	Same Special = "__same"
	// End terminates the session with the goodbye message.
	End Special = "__end"
	// ContinueLast resumes the menu recorded before the dialog was interrupted.
	ContinueLast Special = "__continue_last_session"
	// SplitNext advances the pagination cursor of a split menu.
	SplitNext Special = "__split_next"
	// SplitBack retreats the pagination cursor of a split menu.
	SplitBack Special = "__split_back"
)

// WelcomeMenuID is the graph key every application must define; it is the
// entry point of the menu graph.
const WelcomeMenuID = "welcome"

// AskResumeMenuID identifies the engine-injected menu that offers the
// subscriber a choice between resuming the previous dialog and restarting.
// It is never part of a developer graph.
const AskResumeMenuID = "__ask_to_resume"

// IsSpecial reports whether target names a reserved engine action.
func IsSpecial(target string) bool {
	switch Special(target) {
	case Welcome, Back, Same, End, ContinueLast, SplitNext, SplitBack:
		return true
	}
	return false
}
