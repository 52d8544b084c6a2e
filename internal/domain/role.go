package domain

// Role represents a player's secret role in a round
type Role string

const (
	RoleSpy      Role = "spy"
	RoleInnocent Role = "innocent"
)

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// IsSpy returns true if this role is the spy
func (r Role) IsSpy() bool {
	return r == RoleSpy
}

// Winner identifies the winning side once a game finishes
type Winner string

const (
	WinnerSpy       Winner = "spy"
	WinnerInnocents Winner = "innocents"
)

// EndReason explains why a game finished
type EndReason string

const (
	EndTimeExpired        EndReason = "time_expired"         // Every player accused without a unanimous verdict
	EndSpyAccused         EndReason = "spy_accused"          // Unanimous guilty vote against the spy
	EndInnocentAccused    EndReason = "innocent_accused"     // Unanimous guilty vote against an innocent
	EndSpyGuessedLocation EndReason = "spy_guessed_location" // Spy named the location correctly
	EndSpyFailedGuess     EndReason = "spy_failed_guess"     // Spy guessed the wrong location
)
