package domain

// StateVersion is the current serialized schema version. Stores persist it
// alongside the record so future schema changes can migrate on read.
const StateVersion = 1

// SplitState tracks the pagination cursor of a menu whose rendered text did
// not fit on a single page. Chunks are the pre-rendered pages; Index always
// stays within [0, len(Chunks)-1].
type SplitState struct {
	Chunks        []string `json:"chunks"`
	Index         int      `json:"index"`
	Start         bool     `json:"start"`
	End           bool     `json:"end"`
	HasBackAction bool     `json:"has_back_action"`
}

// PendingError is a one-shot user error banner tagged to a menu id. It is
// consumed (and cleared) the next time that menu renders.
type PendingError struct {
	MenuID  string `json:"menu_id"`
	Message string `json:"message"`
}

// Responses holds the captured subscriber inputs per menu id, in capture
// order. Entries are append-only within a menu except for the explicit
// discards performed by BACK, SAME and page turns.
type Responses map[string][]string

// Push appends a captured value for menuID.
func (r Responses) Push(menuID, value string) {
	r[menuID] = append(r[menuID], value)
}

// Last returns the most recent value captured for menuID without removing
// it. Hooks use it to read what the subscriber answered on earlier menus.
func (r Responses) Last(menuID string) (string, bool) {
	vals := r[menuID]
	if len(vals) == 0 {
		return "", false
	}
	return vals[len(vals)-1], true
}

// PopLast discards and returns the most recent value captured for menuID.
func (r Responses) PopLast(menuID string) (string, bool) {
	vals := r[menuID]
	if len(vals) == 0 {
		return "", false
	}
	last := vals[len(vals)-1]
	r[menuID] = vals[:len(vals)-1]
	return last, true
}

// State is the per-subscriber session record. It is the only state the
// engine carries between turns; everything else is reconstructed from the
// inbound request and the menu graph.
type State struct {
	Version          int    `json:"version"`
	SubscriberID     string `json:"subscriber_id"`
	CarrierSessionID string `json:"carrier_session_id"`

	// CurrentMenuID is empty before the first render, otherwise a graph key
	// (or the ask-to-resume pseudo menu).
	CurrentMenuID string `json:"current_menu_id"`

	// BackHistory is the LIFO stack of previously visited menu ids.
	BackHistory []string  `json:"back_history"`
	Responses   Responses `json:"responses"`

	Split *SplitState `json:"split,omitempty"`

	// SwitchedEndpoint and Switched record a hand-off to a remote USSD
	// application: while Switched is set, every inbound turn is forwarded
	// verbatim to the endpoint.
	SwitchedEndpoint string `json:"switched_endpoint,omitempty"`
	Switched         bool   `json:"switched,omitempty"`

	PendingError *PendingError `json:"pending_error,omitempty"`
}

// NewState creates an empty session for a subscriber.
func NewState(subscriberID string) *State {
	return &State{
		Version:      StateVersion,
		SubscriberID: subscriberID,
		BackHistory:  []string{},
		Responses:    make(Responses),
	}
}

// PushHistory records a visited menu id on the back stack.
func (s *State) PushHistory(id string) {
	s.BackHistory = append(s.BackHistory, id)
}

// PopHistory removes and returns the top of the back stack.
func (s *State) PopHistory() (string, bool) {
	if len(s.BackHistory) == 0 {
		return "", false
	}
	top := s.BackHistory[len(s.BackHistory)-1]
	s.BackHistory = s.BackHistory[:len(s.BackHistory)-1]
	return top, true
}

// PeekHistory returns the top of the back stack without removing it.
func (s *State) PeekHistory() (string, bool) {
	if len(s.BackHistory) == 0 {
		return "", false
	}
	return s.BackHistory[len(s.BackHistory)-1], true
}
