package domain

import "time"

// EventType represents the type of game event
type EventType string

const (
	EventPlayerJoined      EventType = "PLAYER_JOINED"
	EventPlayerLeft        EventType = "PLAYER_LEFT"
	EventPlayerReconnected EventType = "PLAYER_RECONNECTED"
	EventGameStarted       EventType = "GAME_STARTED"
	EventQuestionAsked     EventType = "QUESTION_ASKED"
	EventAnswerGiven       EventType = "ANSWER_GIVEN"
	EventAccusationMade    EventType = "ACCUSATION_MADE"
	EventVoteCast          EventType = "VOTE_CAST"
	EventLocationGuessed   EventType = "LOCATION_GUESSED"
	EventTimerTick         EventType = "TIMER_TICK"
	EventTimeExpired       EventType = "TIME_EXPIRED"
	EventStateSync         EventType = "STATE_SYNC"
	EventGameEnded         EventType = "GAME_ENDED"
)

// GameEvent represents an event broadcast to clients. Events with a
// PlayerID are delivered to that player only; the rest fan out to the
// whole game.
type GameEvent struct {
	Type      EventType   `json:"type"`
	GameID    string      `json:"gameId"`
	PlayerID  string      `json:"playerId,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a game-wide event
func NewEvent(eventType EventType, gameID string, payload interface{}) *GameEvent {
	return &GameEvent{
		Type:      eventType,
		GameID:    gameID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// NewPlayerEvent creates an event addressed to a single player
func NewPlayerEvent(eventType EventType, gameID, playerID string, payload interface{}) *GameEvent {
	return &GameEvent{
		Type:      eventType,
		GameID:    gameID,
		PlayerID:  playerID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}
