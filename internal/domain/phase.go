package domain

// Phase represents the current phase of a game
type Phase string

const (
	PhaseWaiting          Phase = "waiting"             // Waiting for players to join
	PhaseInProgress       Phase = "in_progress"         // Question/answer play, clock running
	PhaseVoting           Phase = "voting"              // Clock stopped, voting on an accusation
	PhaseEndOfRoundVoting Phase = "end_of_round_voting" // Timer expired, players take turns accusing
	PhaseFinished         Phase = "finished"            // Terminal
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo checks if a transition from current phase to target phase is valid
func (p Phase) CanTransitionTo(target Phase) bool {
	validTransitions := map[Phase][]Phase{
		PhaseWaiting:    {PhaseInProgress},
		PhaseInProgress: {PhaseVoting, PhaseEndOfRoundVoting, PhaseFinished},
		// A failed vote reverts to play; a resolving vote finishes the game
		PhaseVoting:           {PhaseInProgress, PhaseFinished},
		PhaseEndOfRoundVoting: {PhaseFinished},
	}

	allowed, ok := validTransitions[p]
	if !ok {
		return false
	}

	for _, phase := range allowed {
		if phase == target {
			return true
		}
	}
	return false
}
