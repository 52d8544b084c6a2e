package domain

import "time"

// Player represents a player in the game. Players are never removed once
// the game has started; disconnection only clears the Connected flag so
// the same id can reconnect.
type Player struct {
	ID        string
	Name      string
	IsBot     bool
	Connected bool

	// Secret role fields, populated at round start. Views are responsible
	// for hiding these from other players.
	Role         Role
	LocationRole string // Specific role at the location, innocents only

	Points              int
	HasAccusedThisRound bool
	JoinedAt            time.Time
}

// NewPlayer creates a new connected player with no role assigned
func NewPlayer(id, name string, isBot bool) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		IsBot:     isBot,
		Connected: true,
		JoinedAt:  time.Now(),
	}
}

// Disconnect marks the player as disconnected
func (p *Player) Disconnect() {
	p.Connected = false
}

// Reconnect marks the player as connected
func (p *Player) Reconnect() {
	p.Connected = true
}

// IsSpy returns true once the player has been dealt the spy role
func (p *Player) IsSpy() bool {
	return p.Role == RoleSpy
}
