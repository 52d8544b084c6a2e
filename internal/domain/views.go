package domain

import "time"

// PlayerView is the public view of a player: everyone can see scores,
// connectivity and accusation flags, but never roles.
type PlayerView struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	IsBot               bool   `json:"isBot"`
	IsConnected         bool   `json:"isConnected"`
	Points              int    `json:"points"`
	HasAccusedThisRound bool   `json:"hasAccusedThisRound"`
}

// MessageView is one transcript entry on the wire
type MessageView struct {
	ID        string      `json:"id"`
	Kind      MessageKind `json:"type"`
	From      string      `json:"from"`
	To        string      `json:"to,omitempty"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// AccusationView is the live accusation with its votes so far
type AccusationView struct {
	Accuser string          `json:"accuser"`
	Accused string          `json:"accused"`
	Votes   map[string]bool `json:"votes"`
}

// TimerView reports the round clock
type TimerView struct {
	DurationSeconds  float64     `json:"duration"`
	ElapsedSeconds   float64     `json:"elapsedTime"`
	RemainingSeconds float64     `json:"remainingTime"`
	Status           TimerStatus `json:"status"`
}

// Snapshot is the full game state as seen by one player. Role information
// is scoped to the viewer: innocents see their own location role and the
// location, the spy sees neither until the game finishes.
type Snapshot struct {
	ID                 string          `json:"id"`
	Phase              Phase           `json:"status"`
	Players            []PlayerView    `json:"players"`
	CurrentTurn        string          `json:"currentTurn,omitempty"`
	Location           string          `json:"location,omitempty"`
	AvailableLocations []string        `json:"availableLocations"`
	Messages           []MessageView   `json:"messages"`
	ClockStopped       bool            `json:"clockStopped"`
	LastQuestionedBy   string          `json:"lastQuestionedBy,omitempty"`
	QARoundsCompleted  int             `json:"qaRoundsCompleted"`
	CurrentAccusation  *AccusationView `json:"currentAccusation,omitempty"`
	Winner             Winner          `json:"winner,omitempty"`
	EndReason          EndReason       `json:"endReason,omitempty"`
	SpyID              string          `json:"spyId,omitempty"` // Revealed only once finished
	IsSpy              bool            `json:"isSpy"`
	Role               string          `json:"role,omitempty"` // Viewer's own location role
	Timer              TimerView       `json:"timer"`
}

// TimerSnapshot returns the current timer view
func (g *Game) TimerSnapshot() TimerView {
	return TimerView{
		DurationSeconds:  g.Timer.Duration().Seconds(),
		ElapsedSeconds:   g.Timer.Elapsed().Seconds(),
		RemainingSeconds: g.Timer.Remaining().Seconds(),
		Status:           g.Timer.Status(),
	}
}

// SnapshotFor builds the game state visible to the given player
func (g *Game) SnapshotFor(playerID string) Snapshot {
	snap := Snapshot{
		ID:                 g.ID,
		Phase:              g.Phase,
		Players:            make([]PlayerView, 0, len(g.Players)),
		CurrentTurn:        g.CurrentTurn,
		AvailableLocations: LocationNames(),
		Messages:           make([]MessageView, 0, len(g.Messages)),
		ClockStopped:       g.ClockStopped,
		LastQuestionedBy:   g.LastQuestionedBy,
		QARoundsCompleted:  g.QARoundsCompleted,
		Winner:             g.Winner,
		EndReason:          g.EndReason,
		Timer:              g.TimerSnapshot(),
	}

	for _, p := range g.Players {
		snap.Players = append(snap.Players, PlayerView{
			ID:                  p.ID,
			Name:                p.Name,
			IsBot:               p.IsBot,
			IsConnected:         p.Connected,
			Points:              p.Points,
			HasAccusedThisRound: p.HasAccusedThisRound,
		})
	}

	for _, m := range g.Messages {
		snap.Messages = append(snap.Messages, MessageView{
			ID:        m.ID,
			Kind:      m.Kind,
			From:      m.From,
			To:        m.To,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}

	if accusation := g.CurrentAccusation(); accusation != nil {
		votes := make(map[string]bool, len(accusation.Votes))
		for voter, guilty := range accusation.Votes {
			votes[voter] = guilty
		}
		snap.CurrentAccusation = &AccusationView{
			Accuser: accusation.AccuserID,
			Accused: accusation.AccusedID,
			Votes:   votes,
		}
	}

	if g.Phase == PhaseFinished {
		snap.SpyID = g.SpyID
	}

	viewer, err := g.GetPlayer(playerID)
	if err != nil {
		return snap
	}

	snap.IsSpy = viewer.Role == RoleSpy
	if viewer.Role == RoleInnocent {
		snap.Role = viewer.LocationRole
	}
	// The location is withheld from the spy until the game is over
	if g.Location != nil && (!snap.IsSpy || g.Phase == PhaseFinished) {
		snap.Location = g.Location.Name
	}
	return snap
}
