package domain

import (
	"math/rand"
	"strings"
	"time"
)

const (
	// MinPlayers is the fewest players a round can start with
	MinPlayers = 3
	// MaxPlayers is the roster cap
	MaxPlayers = 8
)

// Game is the authoritative state for one Spyfall round. Player order in
// Players defines the turn rotation; Players[0] is the dealer. All methods
// assume the caller serializes access (one logical action at a time) and
// guarantee that a rejected action performs no mutation.
type Game struct {
	ID      string
	Players []*Player
	Phase   Phase

	CurrentTurn      string // Player id who owns the next action
	LastQuestionedBy string // Whoever asked the still-open question

	Location *Location
	SpyID    string

	Messages    []*Message
	Accusations []*Accusation

	ClockStopped   bool
	ClockStoppedBy string // Accuser id, or "time_expired" for end-of-round

	Winner    Winner
	EndReason EndReason

	QARoundsCompleted int

	Timer     *Timer
	CreatedAt time.Time
}

// NewGame creates a game in the waiting phase with the given round duration
func NewGame(id string, roundDuration time.Duration) *Game {
	return &Game{
		ID:        id,
		Players:   make([]*Player, 0, MaxPlayers),
		Phase:     PhaseWaiting,
		Timer:     NewTimer(roundDuration),
		CreatedAt: time.Now(),
	}
}

// CurrentAccusation returns the most recent live accusation, or nil
func (g *Game) CurrentAccusation() *Accusation {
	for i := len(g.Accusations) - 1; i >= 0; i-- {
		if g.Accusations[i].Active {
			return g.Accusations[i]
		}
	}
	return nil
}

// GetPlayer returns a player by id
func (g *Game) GetPlayer(playerID string) (*Player, error) {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p, nil
		}
	}
	return nil, ErrPlayerNotFound
}

// Spy returns the spy player once roles are assigned, or nil
func (g *Game) Spy() *Player {
	if g.SpyID == "" {
		return nil
	}
	p, err := g.GetPlayer(g.SpyID)
	if err != nil {
		return nil
	}
	return p
}

// Dealer returns the id of the first player in turn order
func (g *Game) Dealer() string {
	if len(g.Players) == 0 {
		return ""
	}
	return g.Players[0].ID
}

// Finished reports whether the game has reached its terminal phase
func (g *Game) Finished() bool {
	return g.Phase == PhaseFinished
}

// AddPlayer adds a player to the roster. Only legal while waiting.
func (g *Game) AddPlayer(playerID, name string, isBot bool) (*Player, error) {
	if g.Phase != PhaseWaiting {
		return nil, ErrGameAlreadyStarted
	}
	if len(g.Players) >= MaxPlayers {
		return nil, ErrGameFull
	}
	if _, err := g.GetPlayer(playerID); err == nil {
		return nil, ErrDuplicatePlayer
	}

	player := NewPlayer(playerID, name, isBot)
	g.Players = append(g.Players, player)
	return player, nil
}

// RemovePlayer takes a player out of the roster. Only legal while waiting;
// once a round has started, disconnection is tracked by flag instead so
// the player can reconnect.
func (g *Game) RemovePlayer(playerID string) error {
	if g.Phase != PhaseWaiting {
		return ErrGameAlreadyStarted
	}
	for i, p := range g.Players {
		if p.ID == playerID {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			return nil
		}
	}
	return ErrPlayerNotFound
}

// Start deals roles and begins the round. The roster is optionally
// shuffled first; the resulting order is the turn rotation and the first
// player is the dealer, who asks the opening question.
func (g *Game) Start(shuffle bool) error {
	if g.Phase != PhaseWaiting {
		return ErrGameAlreadyStarted
	}
	if len(g.Players) < MinPlayers {
		return ErrNotEnoughPlayers
	}

	if shuffle {
		rand.Shuffle(len(g.Players), func(i, j int) {
			g.Players[i], g.Players[j] = g.Players[j], g.Players[i]
		})
	}

	g.assignRoles()
	g.CurrentTurn = g.Dealer()
	g.Phase = PhaseInProgress
	g.Timer.Start()
	return nil
}

// assignRoles picks the spy and location uniformly at random and deals
// location roles to innocents, without replacement until the pool runs
// out, then with replacement.
func (g *Game) assignRoles() {
	spy := g.Players[rand.Intn(len(g.Players))]
	g.SpyID = spy.ID
	spy.Role = RoleSpy

	location := Locations[rand.Intn(len(Locations))]
	g.Location = &location

	pool := make([]string, len(location.Roles))
	copy(pool, location.Roles)
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	for _, p := range g.Players {
		if p.ID == g.SpyID {
			continue
		}
		p.Role = RoleInnocent
		if len(pool) > 0 {
			p.LocationRole = pool[len(pool)-1]
			pool = pool[:len(pool)-1]
		} else {
			p.LocationRole = location.Roles[rand.Intn(len(location.Roles))]
		}
	}
}

// AskQuestion records a question from the current turn holder to another
// player and passes the turn to them. A player may not immediately
// question whoever just questioned them.
func (g *Game) AskQuestion(fromID, toID, content string) error {
	if g.Phase != PhaseInProgress {
		return ErrInvalidPhase
	}
	if g.ClockStopped {
		return ErrClockStopped
	}
	if g.CurrentTurn != fromID {
		return ErrNotYourTurn
	}
	if toID == fromID {
		return ErrInvalidTarget
	}
	if _, err := g.GetPlayer(toID); err != nil {
		return ErrInvalidTarget
	}
	if g.LastQuestionedBy == toID {
		return ErrCannotAskBack
	}

	g.Messages = append(g.Messages, NewMessage(MessageQuestion, fromID, toID, content))
	g.CurrentTurn = toID
	g.LastQuestionedBy = fromID
	return nil
}

// GiveAnswer records the current turn holder's answer to the open
// question. The turn stays with the answerer: they ask the next question.
func (g *Game) GiveAnswer(fromID, content string) error {
	if g.Phase != PhaseInProgress {
		return ErrInvalidPhase
	}
	if g.ClockStopped {
		return ErrClockStopped
	}
	if g.CurrentTurn != fromID {
		return ErrNotYourTurn
	}

	g.Messages = append(g.Messages, NewMessage(MessageAnswer, fromID, g.LastQuestionedBy, content))
	g.QARoundsCompleted++
	return nil
}

// PendingQuestionFor returns the open question addressed to the given
// player, if the most recent transcript entry is a question they have not
// answered yet.
func (g *Game) PendingQuestionFor(playerID string) *Message {
	if len(g.Messages) == 0 {
		return nil
	}
	last := g.Messages[len(g.Messages)-1]
	if last.Kind == MessageQuestion && last.To == playerID {
		return last
	}
	return nil
}

// StopClockForAccusation interrupts play with an accusation: the timer
// pauses and the game moves to voting. Each player may do this once per
// round.
func (g *Game) StopClockForAccusation(accuserID, accusedID string) error {
	if g.Phase != PhaseInProgress {
		return ErrInvalidPhase
	}
	if g.ClockStopped {
		return ErrClockStopped
	}
	accuser, err := g.GetPlayer(accuserID)
	if err != nil {
		return err
	}
	if accuser.HasAccusedThisRound {
		return ErrAlreadyAccused
	}
	if accusedID == accuserID {
		return ErrCannotAccuseSelf
	}
	if _, err := g.GetPlayer(accusedID); err != nil {
		return ErrInvalidTarget
	}

	g.Timer.Pause()
	g.ClockStopped = true
	g.ClockStoppedBy = accuserID
	g.Phase = PhaseVoting
	g.Accusations = append(g.Accusations, NewAccusation(accuserID, accusedID))
	accuser.HasAccusedThisRound = true
	return nil
}

// VoteOnAccusation records a guilty/innocent verdict on the live mid-round
// accusation. The accused may not vote. Once every eligible player has
// voted, the accusation resolves automatically.
func (g *Game) VoteOnAccusation(voterID string, guilty bool) error {
	if g.Phase != PhaseVoting {
		return ErrInvalidPhase
	}
	accusation := g.CurrentAccusation()
	if accusation == nil {
		return ErrNoActiveAccusation
	}
	if voterID == accusation.AccusedID {
		return ErrAccusedCannotVote
	}
	if _, err := g.GetPlayer(voterID); err != nil {
		return err
	}

	accusation.RecordVote(voterID, guilty)

	if len(accusation.Votes) == len(g.eligibleVoters(accusation)) {
		g.resolveAccusation(accusation)
	}
	return nil
}

// eligibleVoters returns everyone except the accused
func (g *Game) eligibleVoters(accusation *Accusation) []string {
	voters := make([]string, 0, len(g.Players))
	for _, p := range g.Players {
		if p.ID != accusation.AccusedID {
			voters = append(voters, p.ID)
		}
	}
	return voters
}

// resolveAccusation applies the mid-round verdict. A unanimous guilty vote
// ends the game one way or the other; anything else deactivates the
// accusation and play resumes.
func (g *Game) resolveAccusation(accusation *Accusation) {
	if !accusation.UnanimousGuilty() {
		accusation.Deactivate()
		g.ClockStopped = false
		g.ClockStoppedBy = ""
		g.Timer.Resume()
		g.Phase = PhaseInProgress
		return
	}

	if accusation.AccusedID == g.SpyID {
		g.endGame(EndSpyAccused, WinnerInnocents)
		g.scoreInnocentWin(accusation.AccuserID)
	} else {
		g.endGame(EndInnocentAccused, WinnerSpy)
		g.scoreSpyWin(4)
	}
}

// scoreInnocentWin awards every innocent a point, with an extra point for
// the successful accuser (empty accuserID skips the bonus). The accuser
// bonus rule is deliberately the same for mid-round and end-of-round
// resolution: innocents +1 each, accuser +1 on top.
func (g *Game) scoreInnocentWin(accuserID string) {
	for _, p := range g.Players {
		if p.Role == RoleInnocent {
			p.Points++
		}
		if accuserID != "" && p.ID == accuserID {
			p.Points++
		}
	}
}

// scoreSpyWin awards the spy the given number of points
func (g *Game) scoreSpyWin(points int) {
	if spy := g.Spy(); spy != nil {
		spy.Points += points
	}
}

// SpyGuessLocation lets the spy end the round by naming the location.
// Comparison is case-insensitive. A correct guess wins for the spy; a
// wrong one hands the win to the innocents.
func (g *Game) SpyGuessLocation(spyID, guess string) error {
	if g.Phase != PhaseInProgress {
		return ErrInvalidPhase
	}
	if g.ClockStopped {
		return ErrClockStopped
	}
	if spyID != g.SpyID {
		return ErrNotSpy
	}

	if strings.EqualFold(guess, g.Location.Name) {
		g.endGame(EndSpyGuessedLocation, WinnerSpy)
		g.scoreSpyWin(4)
	} else {
		g.endGame(EndSpyFailedGuess, WinnerInnocents)
		g.scoreInnocentWin("")
	}
	return nil
}

// CheckTimeExpired observes the round timer and, on expiry during normal
// play, enters end-of-round voting. Returns true if the transition
// happened on this observation.
func (g *Game) CheckTimeExpired() bool {
	if g.Phase != PhaseInProgress || g.ClockStopped {
		return false
	}
	if !g.Timer.Expired() {
		return false
	}
	g.startEndOfRoundVoting()
	return true
}

// startEndOfRoundVoting begins the final accusation rotation: accusation
// flags reset, the dealer accuses first, and the clock stays stopped for
// the rest of the game.
func (g *Game) startEndOfRoundVoting() {
	if accusation := g.CurrentAccusation(); accusation != nil {
		accusation.Deactivate()
	}
	for _, p := range g.Players {
		p.HasAccusedThisRound = false
	}
	g.CurrentTurn = g.Dealer()
	g.Phase = PhaseEndOfRoundVoting
	g.ClockStopped = true
	g.ClockStoppedBy = "time_expired"
}

// MakeEndOfRoundAccusation lets the player whose turn it is name a
// suspect during end-of-round voting
func (g *Game) MakeEndOfRoundAccusation(accuserID, accusedID string) error {
	if g.Phase != PhaseEndOfRoundVoting {
		return ErrInvalidPhase
	}
	if g.CurrentTurn != accuserID {
		return ErrNotYourTurn
	}
	if accuserID == accusedID {
		return ErrCannotAccuseSelf
	}
	accuser, err := g.GetPlayer(accuserID)
	if err != nil {
		return err
	}
	if accuser.HasAccusedThisRound {
		return ErrAlreadyAccused
	}
	if _, err := g.GetPlayer(accusedID); err != nil {
		return ErrInvalidTarget
	}

	g.Accusations = append(g.Accusations, NewAccusation(accuserID, accusedID))
	accuser.HasAccusedThisRound = true
	return nil
}

// VoteOnEndOfRoundAccusation records a verdict on the live end-of-round
// accusation, resolving it once every eligible player has voted
func (g *Game) VoteOnEndOfRoundAccusation(voterID string, guilty bool) error {
	if g.Phase != PhaseEndOfRoundVoting {
		return ErrInvalidPhase
	}
	accusation := g.CurrentAccusation()
	if accusation == nil {
		return ErrNoActiveAccusation
	}
	if voterID == accusation.AccusedID {
		return ErrAccusedCannotVote
	}
	if _, err := g.GetPlayer(voterID); err != nil {
		return err
	}

	accusation.RecordVote(voterID, guilty)

	if len(accusation.Votes) == len(g.eligibleVoters(accusation)) {
		g.resolveEndOfRoundAccusation(accusation)
	}
	return nil
}

// resolveEndOfRoundAccusation applies the end-of-round verdict. Unanimous
// guilty reveals the accused and ends the game; otherwise the accusation
// turn passes to the next player who has not accused yet, and the spy wins
// by default once everyone has had their chance.
func (g *Game) resolveEndOfRoundAccusation(accusation *Accusation) {
	if accusation.UnanimousGuilty() {
		if accusation.AccusedID == g.SpyID {
			g.endGame(EndSpyAccused, WinnerInnocents)
			g.scoreInnocentWin(accusation.AccuserID)
		} else {
			g.endGame(EndInnocentAccused, WinnerSpy)
			g.scoreSpyWin(4)
		}
		return
	}
	g.advanceToNextAccuser(accusation)
}

// advanceToNextAccuser deactivates the failed accusation and hands the
// accusation turn to the next player in rotation who has not yet accused.
// If no such player remains, the spy has survived every vote and wins.
func (g *Game) advanceToNextAccuser(accusation *Accusation) {
	accusation.Deactivate()

	currentIdx := 0
	for i, p := range g.Players {
		if p.ID == g.CurrentTurn {
			currentIdx = i
			break
		}
	}

	for offset := 1; offset <= len(g.Players); offset++ {
		next := g.Players[(currentIdx+offset)%len(g.Players)]
		if !next.HasAccusedThisRound {
			g.CurrentTurn = next.ID
			return
		}
	}

	g.endGame(EndTimeExpired, WinnerSpy)
	g.scoreSpyWin(2)
}

// MarkDisconnected flags a player as disconnected. If the spy disconnects
// mid-round the game ends immediately as an innocent win.
func (g *Game) MarkDisconnected(playerID string) error {
	player, err := g.GetPlayer(playerID)
	if err != nil {
		return err
	}
	player.Disconnect()

	if playerID == g.SpyID && g.Phase == PhaseInProgress {
		g.endGame(EndSpyAccused, WinnerInnocents)
		g.scoreInnocentWin("")
	}
	return nil
}

// MarkReconnected flags a player as connected again
func (g *Game) MarkReconnected(playerID string) error {
	player, err := g.GetPlayer(playerID)
	if err != nil {
		return err
	}
	player.Reconnect()
	return nil
}

// endGame moves to the terminal phase with the given outcome
func (g *Game) endGame(reason EndReason, winner Winner) {
	g.Phase = PhaseFinished
	g.EndReason = reason
	g.Winner = winner
}
