package engine

import "errors"

// An operation that fails with one of these errors leaves the history
// untouched: no snapshot and no log entry are recorded.
var (
	ErrCardNotFound    = errors.New("card not found in current state")
	ErrCardNotNeutral  = errors.New("only neutral cards can be discarded")
	ErrStateLocked     = errors.New("card state is locked once an epiphany is applied")
	ErrStateNotAllowed = errors.New("epiphany states are not available for basic or ultimate cards")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingCard     = errors.New("command requires a card")
)
