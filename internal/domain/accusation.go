package domain

import "time"

// Accusation records one accusation and the votes cast on it. Resolved
// accusations are deactivated, never deleted, so the game keeps a full
// history; at most one accusation is live at a time.
type Accusation struct {
	AccuserID string
	AccusedID string
	Votes     map[string]bool // voter id -> guilty
	Active    bool
	CreatedAt time.Time
}

// NewAccusation creates a live accusation with no votes
func NewAccusation(accuserID, accusedID string) *Accusation {
	return &Accusation{
		AccuserID: accuserID,
		AccusedID: accusedID,
		Votes:     make(map[string]bool),
		Active:    true,
		CreatedAt: time.Now(),
	}
}

// RecordVote stores a voter's verdict, overwriting any previous vote
func (a *Accusation) RecordVote(voterID string, guilty bool) {
	a.Votes[voterID] = guilty
}

// HasVoted reports whether the given player has voted
func (a *Accusation) HasVoted(voterID string) bool {
	_, ok := a.Votes[voterID]
	return ok
}

// UnanimousGuilty reports whether every recorded vote is guilty and at
// least one vote was cast
func (a *Accusation) UnanimousGuilty() bool {
	if len(a.Votes) == 0 {
		return false
	}
	for _, guilty := range a.Votes {
		if !guilty {
			return false
		}
	}
	return true
}

// Deactivate marks the accusation as resolved
func (a *Accusation) Deactivate() {
	a.Active = false
}
