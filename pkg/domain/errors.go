package domain

import "errors"

// ErrSessionNotFound is returned by SessionStore implementations when no
// record exists for a subscriber.
var ErrSessionNotFound = errors.New("session not found")

// ErrEmptyHistory is returned when a BACK or resume navigation needs a
// previous menu but the back history is empty.
var ErrEmptyHistory = errors.New("back history is empty")
