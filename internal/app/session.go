package app

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"spyfall/internal/bot"
	"spyfall/internal/domain"
)

// ClientConnection represents a connected client
type ClientConnection interface {
	Send(message interface{}) error
	GetPlayerID() string
	Close() error
}

// SessionConfig carries the per-game settings a session needs
type SessionConfig struct {
	ShufflePlayers  bool
	Decider         bot.Decider // nil disables autonomous bot play
	ThinkingDelay   time.Duration
	DecisionTimeout time.Duration
}

// GameSession wraps a game with concurrency control, client management and
// bot scheduling. All game mutations are serialized through mu; generation
// increments on every successful mutation so in-flight bot decisions can
// detect that the world moved under them.
type GameSession struct {
	game *domain.Game
	mu   sync.RWMutex

	clients   map[string]ClientConnection // playerID -> client
	clientsMu sync.RWMutex
	logger    *slog.Logger

	cfg SessionConfig

	// generation and botTimer are guarded by mu
	generation uint64
	botTimer   *time.Timer

	// Event channel for broadcasting
	events    chan *domain.GameEvent
	done      chan struct{}
	closeOnce sync.Once
}

// NewGameSession creates a new game session
func NewGameSession(game *domain.Game, cfg SessionConfig, logger *slog.Logger) *GameSession {
	session := &GameSession{
		game:    game,
		clients: make(map[string]ClientConnection),
		logger:  logger,
		cfg:     cfg,
		events:  make(chan *domain.GameEvent, 100),
		done:    make(chan struct{}),
	}

	go session.eventLoop()
	go session.timerLoop()

	return session
}

// GetRoomCode returns the room code
func (s *GameSession) GetRoomCode() string {
	return s.game.ID
}

// GetCreatedAt returns when the game was created
func (s *GameSession) GetCreatedAt() time.Time {
	return s.game.CreatedAt
}

// GetPlayerCount returns the number of players
func (s *GameSession) GetPlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.game.Players)
}

// GetPhase returns the current game phase
func (s *GameSession) GetPhase() domain.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.Phase
}

// CanJoin checks if a new player can join the game
func (s *GameSession) CanJoin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.Phase == domain.PhaseWaiting && len(s.game.Players) < domain.MaxPlayers
}

// Snapshot returns the game state visible to the given player
func (s *GameSession) Snapshot(playerID string) domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.SnapshotFor(playerID)
}

// RegisterClient registers a client connection for a player
func (s *GameSession) RegisterClient(playerID string, client ClientConnection) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[playerID] = client
}

// UnregisterClient removes a client connection
func (s *GameSession) UnregisterClient(playerID string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, playerID)
}

// GetClient returns the client for a player
func (s *GameSession) GetClient(playerID string) (ClientConnection, bool) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	client, ok := s.clients[playerID]
	return client, ok
}

// Join adds a human player to the game
func (s *GameSession) Join(playerID, name string) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.game.AddPlayer(playerID, name, false)
	if err != nil {
		return nil, err
	}

	s.afterActionLocked(domain.EventPlayerJoined, s.playerViewLocked(player))
	return player, nil
}

// AddBot adds a bot player to the game
func (s *GameSession) AddBot(name string) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.game.AddPlayer(uuid.NewString(), name, true)
	if err != nil {
		return nil, err
	}

	s.afterActionLocked(domain.EventPlayerJoined, s.playerViewLocked(player))
	return player, nil
}

// Leave removes a player from a game that has not started yet
func (s *GameSession) Leave(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.RemovePlayer(playerID); err != nil {
		return err
	}

	s.afterActionLocked(domain.EventPlayerLeft, map[string]string{"playerId": playerID})
	return nil
}

// StartGame deals roles and starts the round. Any player in the room may
// start it.
func (s *GameSession) StartGame(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.game.GetPlayer(playerID); err != nil {
		return err
	}
	if err := s.game.Start(s.cfg.ShufflePlayers); err != nil {
		return err
	}

	s.afterActionLocked(domain.EventGameStarted, map[string]interface{}{
		"currentTurn": s.game.CurrentTurn,
	})
	return nil
}

// AskQuestion relays a question from the turn holder to another player
func (s *GameSession) AskQuestion(playerID, targetID, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.AskQuestion(playerID, targetID, content); err != nil {
		return err
	}

	s.afterActionLocked(domain.EventQuestionAsked, s.lastMessageViewLocked())
	return nil
}

// GiveAnswer relays the turn holder's answer to the open question
func (s *GameSession) GiveAnswer(playerID, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.GiveAnswer(playerID, content); err != nil {
		return err
	}

	s.afterActionLocked(domain.EventAnswerGiven, s.lastMessageViewLocked())
	return nil
}

// Accuse makes an accusation. During normal play it stops the clock and
// opens voting; during end-of-round voting it names the accuser's suspect.
func (s *GameSession) Accuse(playerID, accusedID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch s.game.Phase {
	case domain.PhaseInProgress:
		err = s.game.StopClockForAccusation(playerID, accusedID)
	case domain.PhaseEndOfRoundVoting:
		err = s.game.MakeEndOfRoundAccusation(playerID, accusedID)
	default:
		err = domain.ErrInvalidPhase
	}
	if err != nil {
		return err
	}

	s.afterActionLocked(domain.EventAccusationMade, map[string]string{
		"accuser": playerID,
		"accused": accusedID,
	})
	return nil
}

// Vote records a guilty/innocent verdict on the live accusation
func (s *GameSession) Vote(playerID string, guilty bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch s.game.Phase {
	case domain.PhaseVoting:
		err = s.game.VoteOnAccusation(playerID, guilty)
	case domain.PhaseEndOfRoundVoting:
		err = s.game.VoteOnEndOfRoundAccusation(playerID, guilty)
	default:
		err = domain.ErrInvalidPhase
	}
	if err != nil {
		return err
	}

	s.afterActionLocked(domain.EventVoteCast, map[string]interface{}{
		"voter":  playerID,
		"guilty": guilty,
	})
	return nil
}

// GuessLocation lets the spy end the round by naming the location
func (s *GameSession) GuessLocation(playerID, guess string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.SpyGuessLocation(playerID, guess); err != nil {
		return err
	}

	s.afterActionLocked(domain.EventLocationGuessed, map[string]string{
		"playerId": playerID,
		"guess":    guess,
	})
	return nil
}

// DisconnectPlayer marks a player as disconnected. In the waiting phase the
// player is removed outright; mid-round they keep their seat so they can
// reconnect, though a disconnected spy forfeits the round.
func (s *GameSession) DisconnectPlayer(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.Phase == domain.PhaseWaiting {
		if err := s.game.RemovePlayer(playerID); err != nil {
			return
		}
		s.afterActionLocked(domain.EventPlayerLeft, map[string]string{"playerId": playerID})
		return
	}

	if err := s.game.MarkDisconnected(playerID); err != nil {
		return
	}
	s.afterActionLocked(domain.EventPlayerLeft, map[string]string{"playerId": playerID})
}

// ReconnectPlayer marks a player as connected again
func (s *GameSession) ReconnectPlayer(playerID string) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.MarkReconnected(playerID); err != nil {
		return nil, err
	}
	player, _ := s.game.GetPlayer(playerID)

	s.afterActionLocked(domain.EventPlayerReconnected, map[string]string{"playerId": playerID})
	return player, nil
}

// afterActionLocked runs the bookkeeping shared by every successful
// mutation: bump the generation, announce the event, push fresh per-player
// state and reconsider bot scheduling. Caller must hold mu.
func (s *GameSession) afterActionLocked(eventType domain.EventType, payload interface{}) {
	s.generation++
	s.queueEvent(domain.NewEvent(eventType, s.game.ID, payload))
	s.broadcastStateLocked()

	if s.game.Finished() {
		s.stopBotTimerLocked()
		s.queueEvent(domain.NewEvent(domain.EventGameEnded, s.game.ID, map[string]interface{}{
			"winner":    s.game.Winner,
			"endReason": s.game.EndReason,
			"spyId":     s.game.SpyID,
			"location":  s.game.Location.Name,
		}))
		return
	}
	s.scheduleBotActionLocked()
}

// broadcastStateLocked queues a role-scoped state sync for every player
func (s *GameSession) broadcastStateLocked() {
	for _, p := range s.game.Players {
		s.queueEvent(domain.NewPlayerEvent(domain.EventStateSync, s.game.ID, p.ID, s.game.SnapshotFor(p.ID)))
	}
}

func (s *GameSession) playerViewLocked(p *domain.Player) domain.PlayerView {
	return domain.PlayerView{
		ID:          p.ID,
		Name:        p.Name,
		IsBot:       p.IsBot,
		IsConnected: p.Connected,
		Points:      p.Points,
	}
}

func (s *GameSession) lastMessageViewLocked() *domain.MessageView {
	if len(s.game.Messages) == 0 {
		return nil
	}
	m := s.game.Messages[len(s.game.Messages)-1]
	return &domain.MessageView{
		ID:        m.ID,
		Kind:      m.Kind,
		From:      m.From,
		To:        m.To,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}

// timerLoop watches the round clock: it emits ticks while the clock runs
// and fires the end-of-round transition when time expires
func (s *GameSession) timerLoop() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.observeTimer()
		}
	}
}

func (s *GameSession) observeTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.Phase != domain.PhaseInProgress {
		return
	}
	if s.game.CheckTimeExpired() {
		s.afterActionLocked(domain.EventTimeExpired, s.game.TimerSnapshot())
		return
	}
	if !s.game.ClockStopped {
		s.queueEvent(domain.NewEvent(domain.EventTimerTick, s.game.ID, s.game.TimerSnapshot()))
	}
}

// queueEvent adds an event to the broadcast queue
func (s *GameSession) queueEvent(event *domain.GameEvent) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn("event queue full, dropping event", "type", event.Type)
	}
}

// eventLoop processes events and broadcasts to clients
func (s *GameSession) eventLoop() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.events:
			s.broadcastEvent(event)
		}
	}
}

// broadcastEvent sends an event to appropriate clients
func (s *GameSession) broadcastEvent(event *domain.GameEvent) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	// If player-specific, send only to that player
	if event.PlayerID != "" {
		if client, ok := s.clients[event.PlayerID]; ok {
			if err := client.Send(event); err != nil {
				s.logger.Debug("failed to send to client", "playerID", event.PlayerID, "error", err)
			}
		}
		return
	}

	for playerID, client := range s.clients {
		if err := client.Send(event); err != nil {
			s.logger.Debug("failed to send to client", "playerID", playerID, "error", err)
		}
	}
}

// Close shuts down the session
func (s *GameSession) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})

	s.mu.Lock()
	s.stopBotTimerLocked()
	s.mu.Unlock()

	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clients = make(map[string]ClientConnection)
	s.clientsMu.Unlock()
}
