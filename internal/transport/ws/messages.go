package ws

import "time"

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgJoinGame      MessageType = "join_game"
	MsgAddBot        MessageType = "add_bot"
	MsgStartGame     MessageType = "start_game"
	MsgAskQuestion   MessageType = "ask_question"
	MsgGiveAnswer    MessageType = "give_answer"
	MsgAccuse        MessageType = "accuse"
	MsgVote          MessageType = "vote"
	MsgGuessLocation MessageType = "guess_location"
	MsgPing          MessageType = "ping"
)

// Server → Client message types. Game events are broadcast with their own
// event type names; only the connection-level messages are listed here.
const (
	MsgConnected MessageType = "connected"
	MsgError     MessageType = "error"
	MsgPong      MessageType = "pong"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ConnectedPayload is the payload for the connected message
type ConnectedPayload struct {
	PlayerID  string      `json:"playerId"`
	GameID    string      `json:"gameId"`
	GameState interface{} `json:"gameState"`
}

// ErrorPayload is the payload for the error message
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeInvalidMessage     = "INVALID_MESSAGE"
	ErrCodeGameNotFound       = "GAME_NOT_FOUND"
	ErrCodeGameFull           = "GAME_FULL"
	ErrCodeGameStarted        = "GAME_ALREADY_STARTED"
	ErrCodeGameFinished       = "GAME_FINISHED"
	ErrCodeNotEnoughPlayers   = "NOT_ENOUGH_PLAYERS"
	ErrCodeNotYourTurn        = "NOT_YOUR_TURN"
	ErrCodeClockStopped       = "CLOCK_STOPPED"
	ErrCodeCannotAskBack      = "CANNOT_ASK_BACK"
	ErrCodeInvalidTarget      = "INVALID_TARGET"
	ErrCodeCannotAccuseSelf   = "CANNOT_ACCUSE_SELF"
	ErrCodeAlreadyAccused     = "ALREADY_ACCUSED"
	ErrCodeNoActiveAccusation = "NO_ACTIVE_ACCUSATION"
	ErrCodeAccusedCannotVote  = "ACCUSED_CANNOT_VOTE"
	ErrCodeNotSpy             = "NOT_SPY"
	ErrCodeInvalidAction      = "INVALID_ACTION"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)
