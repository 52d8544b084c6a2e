package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWaitingGame(t *testing.T, n int) *Game {
	t.Helper()
	g := NewGame("TEST01", 8*time.Minute)
	for i := 1; i <= n; i++ {
		_, err := g.AddPlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("Player %d", i), false)
		require.NoError(t, err)
	}
	return g
}

// makeSpy re-deals roles so the given player is the spy, keeping tests
// deterministic
func makeSpy(t *testing.T, g *Game, spyID string) {
	t.Helper()
	for _, p := range g.Players {
		p.Role = RoleInnocent
		if p.LocationRole == "" {
			p.LocationRole = g.Location.Roles[0]
		}
	}
	spy, err := g.GetPlayer(spyID)
	require.NoError(t, err)
	spy.Role = RoleSpy
	spy.LocationRole = ""
	g.SpyID = spyID
}

// startedGame starts an n-player game without shuffling, so p1 is the
// dealer, and makes the given player the spy
func startedGame(t *testing.T, n int, spyID string) *Game {
	t.Helper()
	g := newWaitingGame(t, n)
	require.NoError(t, g.Start(false))
	makeSpy(t, g, spyID)
	return g
}

func points(t *testing.T, g *Game, playerID string) int {
	t.Helper()
	p, err := g.GetPlayer(playerID)
	require.NoError(t, err)
	return p.Points
}

func TestAddPlayer(t *testing.T) {
	g := NewGame("TEST01", 8*time.Minute)

	_, err := g.AddPlayer("p1", "Alice", false)
	require.NoError(t, err)

	_, err = g.AddPlayer("p1", "Alice again", false)
	assert.ErrorIs(t, err, ErrDuplicatePlayer)

	for i := 2; i <= MaxPlayers; i++ {
		_, err := g.AddPlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("Player %d", i), false)
		require.NoError(t, err)
	}
	_, err = g.AddPlayer("p9", "Late", false)
	assert.ErrorIs(t, err, ErrGameFull)
}

func TestAddPlayerAfterStart(t *testing.T) {
	g := newWaitingGame(t, 3)
	require.NoError(t, g.Start(false))

	_, err := g.AddPlayer("p4", "Late", false)
	assert.ErrorIs(t, err, ErrGameAlreadyStarted)

	err = g.RemovePlayer("p1")
	assert.ErrorIs(t, err, ErrGameAlreadyStarted)
}

func TestStartRequiresMinimumPlayers(t *testing.T) {
	g := newWaitingGame(t, 2)
	assert.ErrorIs(t, g.Start(false), ErrNotEnoughPlayers)
}

func TestStartDealsRoles(t *testing.T) {
	g := newWaitingGame(t, 5)
	require.NoError(t, g.Start(false))

	assert.Equal(t, PhaseInProgress, g.Phase)
	assert.Equal(t, "p1", g.CurrentTurn, "dealer asks the opening question")
	assert.Equal(t, TimerRunning, g.Timer.Status())
	require.NotNil(t, g.Location)

	spies := 0
	for _, p := range g.Players {
		switch p.Role {
		case RoleSpy:
			spies++
			assert.Equal(t, p.ID, g.SpyID)
			assert.Empty(t, p.LocationRole)
		case RoleInnocent:
			assert.NotEmpty(t, p.LocationRole)
			assert.Contains(t, g.Location.Roles, p.LocationRole)
		default:
			t.Fatalf("player %s has no role", p.ID)
		}
	}
	assert.Equal(t, 1, spies)

	assert.ErrorIs(t, g.Start(false), ErrGameAlreadyStarted)
}

func TestAskQuestionPassesTurn(t *testing.T) {
	g := startedGame(t, 3, "p3")

	require.NoError(t, g.AskQuestion("p1", "p2", "Do you come here often?"))

	assert.Equal(t, "p2", g.CurrentTurn)
	assert.Equal(t, "p1", g.LastQuestionedBy)
	require.Len(t, g.Messages, 1)
	assert.Equal(t, MessageQuestion, g.Messages[0].Kind)

	pending := g.PendingQuestionFor("p2")
	require.NotNil(t, pending)
	assert.Equal(t, "p1", pending.From)
	assert.Nil(t, g.PendingQuestionFor("p1"))
}

func TestAskQuestionValidation(t *testing.T) {
	g := startedGame(t, 3, "p3")

	assert.ErrorIs(t, g.AskQuestion("p2", "p1", "not my turn"), ErrNotYourTurn)
	assert.ErrorIs(t, g.AskQuestion("p1", "p1", "self"), ErrInvalidTarget)
	assert.ErrorIs(t, g.AskQuestion("p1", "ghost", "who"), ErrInvalidTarget)
}

func TestCannotAskBack(t *testing.T) {
	g := startedGame(t, 3, "p3")

	require.NoError(t, g.AskQuestion("p1", "p2", "How is the weather?"))
	require.NoError(t, g.GiveAnswer("p2", "Lovely."))

	// p2 now holds the turn but may not bounce the question straight back
	assert.ErrorIs(t, g.AskQuestion("p2", "p1", "And for you?"), ErrCannotAskBack)
	require.NoError(t, g.AskQuestion("p2", "p3", "What about you?"))
	assert.Equal(t, "p3", g.CurrentTurn)
	assert.Equal(t, "p2", g.LastQuestionedBy)
}

func TestGiveAnswerKeepsTurn(t *testing.T) {
	g := startedGame(t, 3, "p3")

	require.NoError(t, g.AskQuestion("p1", "p2", "Seen anything odd?"))

	assert.ErrorIs(t, g.GiveAnswer("p1", "I answer my own question"), ErrNotYourTurn)
	require.NoError(t, g.GiveAnswer("p2", "Nothing unusual."))

	assert.Equal(t, "p2", g.CurrentTurn, "answerer asks the next question")
	assert.Equal(t, 1, g.QARoundsCompleted)
	require.Len(t, g.Messages, 2)
	answer := g.Messages[1]
	assert.Equal(t, MessageAnswer, answer.Kind)
	assert.Equal(t, "p1", answer.To, "answer is addressed to the asker")
}

func TestAccusationStopsClock(t *testing.T) {
	g := startedGame(t, 3, "p2")

	require.NoError(t, g.StopClockForAccusation("p1", "p2"))

	assert.Equal(t, PhaseVoting, g.Phase)
	assert.True(t, g.ClockStopped)
	assert.Equal(t, "p1", g.ClockStoppedBy)
	assert.Equal(t, TimerPaused, g.Timer.Status())
	require.NotNil(t, g.CurrentAccusation())

	// No play while the clock is stopped
	assert.ErrorIs(t, g.AskQuestion("p1", "p3", "question"), ErrInvalidPhase)
}

func TestAccusationValidation(t *testing.T) {
	g := startedGame(t, 3, "p2")

	assert.ErrorIs(t, g.StopClockForAccusation("p1", "p1"), ErrCannotAccuseSelf)
	assert.ErrorIs(t, g.StopClockForAccusation("p1", "ghost"), ErrInvalidTarget)
	assert.ErrorIs(t, g.StopClockForAccusation("ghost", "p1"), ErrPlayerNotFound)

	require.NoError(t, g.StopClockForAccusation("p1", "p2"))
	assert.ErrorIs(t, g.StopClockForAccusation("p3", "p2"), ErrInvalidPhase)
}

func TestFailedVoteResumesPlay(t *testing.T) {
	g := startedGame(t, 3, "p2")
	require.NoError(t, g.AskQuestion("p1", "p3", "opening"))

	require.NoError(t, g.StopClockForAccusation("p1", "p2"))

	assert.ErrorIs(t, g.VoteOnAccusation("p2", true), ErrAccusedCannotVote)

	require.NoError(t, g.VoteOnAccusation("p1", true))
	assert.Equal(t, PhaseVoting, g.Phase, "vote is still open")

	require.NoError(t, g.VoteOnAccusation("p3", false))

	assert.Equal(t, PhaseInProgress, g.Phase)
	assert.False(t, g.ClockStopped)
	assert.Equal(t, TimerRunning, g.Timer.Status())
	assert.Nil(t, g.CurrentAccusation())
	assert.Equal(t, "p3", g.CurrentTurn, "turn state survives the interruption")

	// The failed accuser has spent their accusation for this round
	assert.ErrorIs(t, g.StopClockForAccusation("p1", "p2"), ErrAlreadyAccused)
	require.NoError(t, g.StopClockForAccusation("p3", "p2"))
}

func TestVoteOverwriteDoesNotResolve(t *testing.T) {
	g := startedGame(t, 4, "p2")
	require.NoError(t, g.StopClockForAccusation("p1", "p2"))

	require.NoError(t, g.VoteOnAccusation("p1", true))
	require.NoError(t, g.VoteOnAccusation("p1", false))
	require.NoError(t, g.VoteOnAccusation("p3", true))

	// Three eligible voters, only two distinct votes so far
	assert.Equal(t, PhaseVoting, g.Phase)

	require.NoError(t, g.VoteOnAccusation("p4", true))
	assert.Equal(t, PhaseInProgress, g.Phase, "overwritten innocent vote blocks conviction")
}

func TestUnanimousGuiltyOnSpy(t *testing.T) {
	g := startedGame(t, 3, "p2")
	require.NoError(t, g.StopClockForAccusation("p1", "p2"))

	require.NoError(t, g.VoteOnAccusation("p1", true))
	require.NoError(t, g.VoteOnAccusation("p3", true))

	assert.Equal(t, PhaseFinished, g.Phase)
	assert.Equal(t, WinnerInnocents, g.Winner)
	assert.Equal(t, EndSpyAccused, g.EndReason)
	assert.Equal(t, 2, points(t, g, "p1"), "accuser gets the bonus point")
	assert.Equal(t, 1, points(t, g, "p3"))
	assert.Equal(t, 0, points(t, g, "p2"))
}

func TestUnanimousGuiltyOnInnocent(t *testing.T) {
	g := startedGame(t, 3, "p3")
	require.NoError(t, g.StopClockForAccusation("p1", "p2"))

	require.NoError(t, g.VoteOnAccusation("p1", true))
	require.NoError(t, g.VoteOnAccusation("p3", true))

	assert.Equal(t, PhaseFinished, g.Phase)
	assert.Equal(t, WinnerSpy, g.Winner)
	assert.Equal(t, EndInnocentAccused, g.EndReason)
	assert.Equal(t, 4, points(t, g, "p3"))
	assert.Equal(t, 0, points(t, g, "p1"))
	assert.Equal(t, 0, points(t, g, "p2"))
}

func TestSpyGuessLocation(t *testing.T) {
	g := startedGame(t, 3, "p2")

	assert.ErrorIs(t, g.SpyGuessLocation("p1", g.Location.Name), ErrNotSpy)

	// Case-insensitive match
	require.NoError(t, g.SpyGuessLocation("p2", toggleCase(g.Location.Name)))

	assert.Equal(t, PhaseFinished, g.Phase)
	assert.Equal(t, WinnerSpy, g.Winner)
	assert.Equal(t, EndSpyGuessedLocation, g.EndReason)
	assert.Equal(t, 4, points(t, g, "p2"))
}

func TestSpyWrongGuess(t *testing.T) {
	g := startedGame(t, 3, "p2")

	require.NoError(t, g.SpyGuessLocation("p2", "Definitely Not A Real Place"))

	assert.Equal(t, PhaseFinished, g.Phase)
	assert.Equal(t, WinnerInnocents, g.Winner)
	assert.Equal(t, EndSpyFailedGuess, g.EndReason)
	assert.Equal(t, 0, points(t, g, "p2"))
	assert.Equal(t, 1, points(t, g, "p1"), "no accuser bonus on a failed guess")
	assert.Equal(t, 1, points(t, g, "p3"))
}

func toggleCase(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = c - 'a' + 'A'
		case c >= 'A' && c <= 'Z':
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}

// expiredGame is a started game whose round timer has just run out
func expiredGame(t *testing.T, n int, spyID string) (*Game, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	g := NewGame("TEST01", time.Minute)
	g.Timer = NewTimerWithClock(time.Minute, clock.now)
	for i := 1; i <= n; i++ {
		_, err := g.AddPlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("Player %d", i), false)
		require.NoError(t, err)
	}
	require.NoError(t, g.Start(false))
	makeSpy(t, g, spyID)

	clock.advance(61 * time.Second)
	return g, clock
}

func TestTimeExpiryStartsEndOfRoundVoting(t *testing.T) {
	g, _ := expiredGame(t, 3, "p2")

	// Some accusation flags were consumed during the round
	p1, _ := g.GetPlayer("p1")
	p1.HasAccusedThisRound = true

	require.True(t, g.CheckTimeExpired())
	assert.False(t, g.CheckTimeExpired(), "transition fires once")

	assert.Equal(t, PhaseEndOfRoundVoting, g.Phase)
	assert.Equal(t, "p1", g.CurrentTurn, "dealer accuses first")
	assert.True(t, g.ClockStopped)
	assert.Equal(t, "time_expired", g.ClockStoppedBy)
	assert.False(t, p1.HasAccusedThisRound, "accusation flags reset for the final rotation")
}

func TestTimeExpiryIgnoredWhileVoting(t *testing.T) {
	g, _ := expiredGame(t, 3, "p2")

	g.Phase = PhaseVoting
	g.ClockStopped = true
	assert.False(t, g.CheckTimeExpired())
}

func TestEndOfRoundAccusationTurnOrder(t *testing.T) {
	g, _ := expiredGame(t, 3, "p2")
	require.True(t, g.CheckTimeExpired())

	assert.ErrorIs(t, g.MakeEndOfRoundAccusation("p2", "p1"), ErrNotYourTurn)
	assert.ErrorIs(t, g.MakeEndOfRoundAccusation("p1", "p1"), ErrCannotAccuseSelf)

	require.NoError(t, g.MakeEndOfRoundAccusation("p1", "p2"))
	assert.ErrorIs(t, g.MakeEndOfRoundAccusation("p1", "p3"), ErrAlreadyAccused)
}

func TestEndOfRoundConvictionOfSpy(t *testing.T) {
	g, _ := expiredGame(t, 3, "p2")
	require.True(t, g.CheckTimeExpired())

	require.NoError(t, g.MakeEndOfRoundAccusation("p1", "p2"))
	assert.ErrorIs(t, g.VoteOnEndOfRoundAccusation("p2", false), ErrAccusedCannotVote)

	require.NoError(t, g.VoteOnEndOfRoundAccusation("p1", true))
	require.NoError(t, g.VoteOnEndOfRoundAccusation("p3", true))

	assert.Equal(t, PhaseFinished, g.Phase)
	assert.Equal(t, WinnerInnocents, g.Winner)
	assert.Equal(t, EndSpyAccused, g.EndReason)
	assert.Equal(t, 2, points(t, g, "p1"))
	assert.Equal(t, 1, points(t, g, "p3"))
}

func TestEndOfRoundSpySurvivesEveryVote(t *testing.T) {
	g, _ := expiredGame(t, 3, "p2")
	require.True(t, g.CheckTimeExpired())

	// p1 accuses the spy but the vote splits
	require.NoError(t, g.MakeEndOfRoundAccusation("p1", "p2"))
	require.NoError(t, g.VoteOnEndOfRoundAccusation("p1", true))
	require.NoError(t, g.VoteOnEndOfRoundAccusation("p3", false))
	assert.Equal(t, PhaseEndOfRoundVoting, g.Phase)
	assert.Equal(t, "p2", g.CurrentTurn, "accusation turn passes along the rotation")

	require.NoError(t, g.MakeEndOfRoundAccusation("p2", "p1"))
	require.NoError(t, g.VoteOnEndOfRoundAccusation("p2", true))
	require.NoError(t, g.VoteOnEndOfRoundAccusation("p3", false))
	assert.Equal(t, "p3", g.CurrentTurn)

	require.NoError(t, g.MakeEndOfRoundAccusation("p3", "p2"))
	require.NoError(t, g.VoteOnEndOfRoundAccusation("p1", false))
	require.NoError(t, g.VoteOnEndOfRoundAccusation("p3", true))

	// Everyone has accused and the spy was never convicted
	assert.Equal(t, PhaseFinished, g.Phase)
	assert.Equal(t, WinnerSpy, g.Winner)
	assert.Equal(t, EndTimeExpired, g.EndReason)
	assert.Equal(t, 2, points(t, g, "p2"), "default win is worth less than a bold play")
}

func TestSpyDisconnectEndsRound(t *testing.T) {
	g := startedGame(t, 3, "p2")

	require.NoError(t, g.MarkDisconnected("p2"))

	assert.Equal(t, PhaseFinished, g.Phase)
	assert.Equal(t, WinnerInnocents, g.Winner)
	assert.Equal(t, 1, points(t, g, "p1"), "no accuser bonus on a forfeit")
	assert.Equal(t, 1, points(t, g, "p3"))
}

func TestInnocentDisconnectKeepsPlaying(t *testing.T) {
	g := startedGame(t, 3, "p2")

	require.NoError(t, g.MarkDisconnected("p3"))
	assert.Equal(t, PhaseInProgress, g.Phase)

	p3, _ := g.GetPlayer("p3")
	assert.False(t, p3.Connected)

	require.NoError(t, g.MarkReconnected("p3"))
	assert.True(t, p3.Connected)
}

func TestSnapshotHidesSecrets(t *testing.T) {
	g := startedGame(t, 3, "p2")

	spyView := g.SnapshotFor("p2")
	assert.True(t, spyView.IsSpy)
	assert.Empty(t, spyView.Location, "spy must not see the location")
	assert.Empty(t, spyView.Role)
	assert.Empty(t, spyView.SpyID, "spy id stays hidden until the game ends")

	innocentView := g.SnapshotFor("p1")
	assert.False(t, innocentView.IsSpy)
	assert.Equal(t, g.Location.Name, innocentView.Location)
	assert.NotEmpty(t, innocentView.Role)
	assert.Empty(t, innocentView.SpyID)
	assert.Len(t, innocentView.AvailableLocations, len(Locations))

	require.NoError(t, g.SpyGuessLocation("p2", g.Location.Name))

	finishedView := g.SnapshotFor("p1")
	assert.Equal(t, "p2", finishedView.SpyID)
	assert.Equal(t, g.Location.Name, g.SnapshotFor("p2").Location, "spy sees the location after the reveal")
}

func TestSnapshotCarriesAccusation(t *testing.T) {
	g := startedGame(t, 3, "p2")
	require.NoError(t, g.StopClockForAccusation("p1", "p2"))
	require.NoError(t, g.VoteOnAccusation("p1", true))

	snap := g.SnapshotFor("p3")
	require.NotNil(t, snap.CurrentAccusation)
	assert.Equal(t, "p1", snap.CurrentAccusation.Accuser)
	assert.Equal(t, "p2", snap.CurrentAccusation.Accused)
	assert.Equal(t, map[string]bool{"p1": true}, snap.CurrentAccusation.Votes)
	assert.True(t, snap.ClockStopped)
}
