package brackets

import "errors"

var (
	// Validation failures: rejected before any state is touched.
	ErrInvalidScore      = errors.New("invalid score")
	ErrInvalidPlayerName = errors.New("player name must not be empty")
	ErrNotEnoughPlayers  = errors.New("at least 2 players are required")

	// Precondition violations: programming-contract errors.
	ErrInvalidBracketSize  = errors.New("qualifier count must be a power of two (minimum 2)")
	ErrMatchNotFound       = errors.New("match not found")
	ErrMatchNotReady       = errors.New("match is missing a player")
	ErrMatchAlreadyDecided = errors.New("match already has a winner")
	ErrMatchNotDecided     = errors.New("match has no result to reopen")
)
