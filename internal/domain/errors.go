package domain

import "errors"

// Domain errors. These are expected precondition failures: the operation
// rejects without mutating any state and the transport surfaces a reason
// code to the originating player only.
var (
	ErrGameNotFound       = errors.New("game not found")
	ErrGameFull           = errors.New("game is full")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrGameFinished       = errors.New("game already finished")
	ErrNotEnoughPlayers   = errors.New("not enough players to start")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrDuplicatePlayer    = errors.New("player id already in game")
	ErrInvalidPhase       = errors.New("invalid action for current phase")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrClockStopped       = errors.New("clock is stopped")
	ErrCannotAskBack      = errors.New("cannot question the player who just questioned you")
	ErrInvalidTarget      = errors.New("invalid target player")
	ErrCannotAccuseSelf   = errors.New("cannot accuse yourself")
	ErrAlreadyAccused     = errors.New("already accused this round")
	ErrNoActiveAccusation = errors.New("no accusation to vote on")
	ErrAccusedCannotVote  = errors.New("the accused cannot vote")
	ErrNotSpy             = errors.New("only the spy can guess the location")
)
