package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"spyfall/internal/app"
	"spyfall/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client represents a WebSocket client connection
type Client struct {
	conn     *websocket.Conn
	session  *app.GameSession
	playerID string
	send     chan []byte
	done     chan struct{}
	logger   *slog.Logger
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, session *app.GameSession, playerID string, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		session:  session,
		playerID: playerID,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// GetPlayerID returns the player ID for this client
func (c *Client) GetPlayerID() string {
	return c.playerID
}

// Send implements app.ClientConnection interface
func (c *Client) Send(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped", "playerID", c.playerID)
		return nil
	}
}

// Close implements app.ClientConnection interface
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.session.UnregisterClient(c.playerID)
		c.session.DisconnectPlayer(c.playerID)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes an incoming message from the client
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid message format")
		return
	}

	switch msg.Type {
	case MsgJoinGame:
		c.handleJoinGame(msg.Payload)
	case MsgAddBot:
		c.handleAddBot(msg.Payload)
	case MsgStartGame:
		c.handleStartGame()
	case MsgAskQuestion:
		c.handleAskQuestion(msg.Payload)
	case MsgGiveAnswer:
		c.handleGiveAnswer(msg.Payload)
	case MsgAccuse:
		c.handleAccuse(msg.Payload)
	case MsgVote:
		c.handleVote(msg.Payload)
	case MsgGuessLocation:
		c.handleGuessLocation(msg.Payload)
	case MsgPing:
		c.sendPong()
	default:
		c.sendError(ErrCodeInvalidMessage, "Unknown message type")
	}
}

// handleJoinGame handles a join_game message
func (c *Client) handleJoinGame(payload interface{}) {
	name, ok := stringField(payload, "name")
	if !ok {
		c.sendError(ErrCodeInvalidMessage, "Name is required")
		return
	}

	if _, err := c.session.Join(c.playerID, name); err != nil {
		c.sendDomainError(err)
		return
	}

	c.sendConnected()
}

// handleAddBot handles an add_bot message
func (c *Client) handleAddBot(payload interface{}) {
	name, ok := stringField(payload, "name")
	if !ok {
		c.sendError(ErrCodeInvalidMessage, "Name is required")
		return
	}

	if _, err := c.session.AddBot(name); err != nil {
		c.sendDomainError(err)
	}
}

// handleStartGame handles a start_game message
func (c *Client) handleStartGame() {
	if err := c.session.StartGame(c.playerID); err != nil {
		c.sendDomainError(err)
	}
}

// handleAskQuestion handles an ask_question message
func (c *Client) handleAskQuestion(payload interface{}) {
	targetID, ok := stringField(payload, "targetId")
	if !ok {
		c.sendError(ErrCodeInvalidMessage, "Target player ID is required")
		return
	}
	content, ok := stringField(payload, "content")
	if !ok {
		c.sendError(ErrCodeInvalidMessage, "Question text is required")
		return
	}

	if err := c.session.AskQuestion(c.playerID, targetID, content); err != nil {
		c.sendDomainError(err)
	}
}

// handleGiveAnswer handles a give_answer message
func (c *Client) handleGiveAnswer(payload interface{}) {
	content, ok := stringField(payload, "content")
	if !ok {
		c.sendError(ErrCodeInvalidMessage, "Answer text is required")
		return
	}

	if err := c.session.GiveAnswer(c.playerID, content); err != nil {
		c.sendDomainError(err)
	}
}

// handleAccuse handles an accuse message
func (c *Client) handleAccuse(payload interface{}) {
	targetID, ok := stringField(payload, "targetId")
	if !ok {
		c.sendError(ErrCodeInvalidMessage, "Target player ID is required")
		return
	}

	if err := c.session.Accuse(c.playerID, targetID); err != nil {
		c.sendDomainError(err)
	}
}

// handleVote handles a vote message
func (c *Client) handleVote(payload interface{}) {
	payloadMap, ok := payload.(map[string]interface{})
	if !ok {
		c.sendError(ErrCodeInvalidMessage, "Invalid payload")
		return
	}
	guilty, ok := payloadMap["guilty"].(bool)
	if !ok {
		c.sendError(ErrCodeInvalidMessage, "Verdict is required")
		return
	}

	if err := c.session.Vote(c.playerID, guilty); err != nil {
		c.sendDomainError(err)
	}
}

// handleGuessLocation handles a guess_location message
func (c *Client) handleGuessLocation(payload interface{}) {
	guess, ok := stringField(payload, "location")
	if !ok {
		c.sendError(ErrCodeInvalidMessage, "Location is required")
		return
	}

	if err := c.session.GuessLocation(c.playerID, guess); err != nil {
		c.sendDomainError(err)
	}
}

// stringField extracts a non-empty string field from a JSON object payload
func stringField(payload interface{}, key string) (string, bool) {
	payloadMap, ok := payload.(map[string]interface{})
	if !ok {
		return "", false
	}
	value, ok := payloadMap[key].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// sendConnected sends the connected message to the client
func (c *Client) sendConnected() {
	payload := &ConnectedPayload{
		PlayerID:  c.playerID,
		GameID:    c.session.GetRoomCode(),
		GameState: c.session.Snapshot(c.playerID),
	}

	c.Send(NewServerMessage(MsgConnected, payload))
}

// sendError sends an error message to the client
func (c *Client) sendError(code, message string) {
	payload := &ErrorPayload{
		Code:    code,
		Message: message,
	}

	c.Send(NewServerMessage(MsgError, payload))
}

// sendDomainError maps a game rule violation to a wire error code
func (c *Client) sendDomainError(err error) {
	c.sendError(domainErrorCode(err), err.Error())
}

// sendPong sends a pong message in response to ping
func (c *Client) sendPong() {
	c.Send(NewServerMessage(MsgPong, nil))
}

// domainErrorCode maps domain errors to wire error codes
func domainErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrGameNotFound):
		return ErrCodeGameNotFound
	case errors.Is(err, domain.ErrGameFull):
		return ErrCodeGameFull
	case errors.Is(err, domain.ErrGameAlreadyStarted):
		return ErrCodeGameStarted
	case errors.Is(err, domain.ErrGameFinished):
		return ErrCodeGameFinished
	case errors.Is(err, domain.ErrNotEnoughPlayers):
		return ErrCodeNotEnoughPlayers
	case errors.Is(err, domain.ErrNotYourTurn):
		return ErrCodeNotYourTurn
	case errors.Is(err, domain.ErrClockStopped):
		return ErrCodeClockStopped
	case errors.Is(err, domain.ErrCannotAskBack):
		return ErrCodeCannotAskBack
	case errors.Is(err, domain.ErrInvalidTarget), errors.Is(err, domain.ErrPlayerNotFound), errors.Is(err, domain.ErrDuplicatePlayer):
		return ErrCodeInvalidTarget
	case errors.Is(err, domain.ErrCannotAccuseSelf):
		return ErrCodeCannotAccuseSelf
	case errors.Is(err, domain.ErrAlreadyAccused):
		return ErrCodeAlreadyAccused
	case errors.Is(err, domain.ErrNoActiveAccusation):
		return ErrCodeNoActiveAccusation
	case errors.Is(err, domain.ErrAccusedCannotVote):
		return ErrCodeAccusedCannotVote
	case errors.Is(err, domain.ErrNotSpy):
		return ErrCodeNotSpy
	case errors.Is(err, domain.ErrInvalidPhase):
		return ErrCodeInvalidAction
	default:
		return ErrCodeInternalError
	}
}
