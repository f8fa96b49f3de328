// Package service holds the booking rule engine.  It validates ticket
// eligibility, room existence and room capacity before any booking is
// created or moved, and classifies every failure into one of two
// domain error kinds so the HTTP layer can pick the right status code.
package service

import "errors"

// ErrNotFound marks "the referenced entity does not exist" failures:
// the room, the user's booking set, or the enrollment-derived records
// backing the eligibility check.  Translated to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrCannotBook marks business-rule violations: ineligible ticket,
// full room, or an ownership mismatch on update.  Translated to
// HTTP 403.
var ErrCannotBook = errors.New("cannot book room")
