package domain

// ValidateFunc accepts or rejects raw subscriber input for a menu before
// navigation proceeds.
type ValidateFunc func(input string, responses Responses) bool

// BeforeFunc computes dynamic content for a menu right before it renders.
// It must return either a string (non-empty: prepended to the static
// message; the whole message when the menu has none) or a
// map[string]string of :name: placeholder substitutions. Returning any
// other type is a configuration fault and aborts the turn.
type BeforeFunc func(responses Responses) any

// AfterFunc observes accepted input once navigation is decided. Its result
// is discarded.
type AfterFunc func(input string, responses Responses)

// MenuHooks bundles the optional per-menu callbacks.
type MenuHooks struct {
	Validate ValidateFunc
	Before   BeforeFunc
	After    AfterFunc
}

// Hooks maps menu ids to their optional hooks. A missing entry (or a nil
// function) means default behavior: validate passes, before contributes
// nothing, after is skipped.
type Hooks map[string]MenuHooks
