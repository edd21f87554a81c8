package types

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Slot identifies one side of an arena match.
type Slot uint8

const (
	SlotPlayer1 Slot = 1
	SlotPlayer2 Slot = 2
)

func (s Slot) IsValid() bool {
	return s == SlotPlayer1 || s == SlotPlayer2
}

// Opponent returns the other side. It is only meaningful for a valid slot.
func (s Slot) Opponent() Slot {
	if s == SlotPlayer1 {
		return SlotPlayer2
	}
	return SlotPlayer1
}

// ArenaMatch is the persisted state of a two player, best of three match.
type ArenaMatch struct {
	MatchID          uint64           `json:"match_id"`
	GameServer       solana.PublicKey `json:"game_server"`
	Player1          solana.PublicKey `json:"player1"`
	Player2          solana.PublicKey `json:"player2"`
	Status           MatchStatus      `json:"status"`
	CurrentRound     uint8            `json:"current_round"`
	Player1RoundsWon uint8            `json:"player1_rounds_won"`
	Player2RoundsWon uint8            `json:"player2_rounds_won"`
	Player1HP        uint8            `json:"player1_hp"`
	Player2HP        uint8            `json:"player2_hp"`
	CurrentTick      uint32           `json:"current_tick"`
	RoundStartTick   uint32           `json:"round_start_tick"`
	LastP1DamageTick uint32           `json:"last_p1_damage_tick"`
	LastP2DamageTick uint32           `json:"last_p2_damage_tick"`
	Winner           solana.PublicKey `json:"winner"`
	CreatedAt        int64            `json:"created_at"`
	SettledAt        int64            `json:"settled_at"`
}

// NewArenaMatch returns a match waiting for its second player.
func NewArenaMatch(matchID uint64, gameServer, player1 solana.PublicKey, createdAt int64) ArenaMatch {
	return ArenaMatch{
		MatchID:    matchID,
		GameServer: gameServer,
		Player1:    player1,
		Status:     MatchStatusWaitingForPlayer,
		Player1HP:  HPPerRound,
		Player2HP:  HPPerRound,
		CreatedAt:  createdAt,
	}
}

// HP returns the remaining hit points of the given side.
func (m ArenaMatch) HP(slot Slot) uint8 {
	if slot == SlotPlayer1 {
		return m.Player1HP
	}
	return m.Player2HP
}

// LastDamageTick returns the tick at which the given side last received damage.
func (m ArenaMatch) LastDamageTick(slot Slot) uint32 {
	if slot == SlotPlayer1 {
		return m.LastP1DamageTick
	}
	return m.LastP2DamageTick
}

// PlayerAt returns the key seated at the given side.
func (m ArenaMatch) PlayerAt(slot Slot) solana.PublicKey {
	if slot == SlotPlayer1 {
		return m.Player1
	}
	return m.Player2
}

// SlotOf returns the side the key is seated at.
func (m ArenaMatch) SlotOf(player solana.PublicKey) (Slot, bool) {
	switch {
	case player.IsZero():
		return 0, false
	case player.Equals(m.Player1):
		return SlotPlayer1, true
	case player.Equals(m.Player2):
		return SlotPlayer2, true
	}
	return 0, false
}

// IsSettled reports whether the match reached its terminal state.
func (m ArenaMatch) IsSettled() bool {
	return m.Status == MatchStatusComplete
}

// Validate checks the invariants that hold for every stored match.
func (m ArenaMatch) Validate() error {
	if !m.Status.IsValid() {
		return fmt.Errorf("match %d: unknown status %d", m.MatchID, m.Status)
	}
	if m.GameServer.IsZero() || m.Player1.IsZero() {
		return fmt.Errorf("match %d: game server and player1 must be set", m.MatchID)
	}
	if m.Player1HP > HPPerRound || m.Player2HP > HPPerRound {
		return fmt.Errorf("match %d: hp %d/%d exceeds %d", m.MatchID, m.Player1HP, m.Player2HP, HPPerRound)
	}
	if m.Player1RoundsWon > RoundsToWin || m.Player2RoundsWon > RoundsToWin {
		return fmt.Errorf("match %d: rounds won %d/%d exceeds %d", m.MatchID, m.Player1RoundsWon, m.Player2RoundsWon, RoundsToWin)
	}
	if m.Status != MatchStatusWaitingForPlayer && m.Player2.IsZero() {
		return fmt.Errorf("match %d: player2 unset in status %s", m.MatchID, m.Status)
	}
	if m.Status == MatchStatusComplete {
		p1 := m.Player1RoundsWon == RoundsToWin
		p2 := m.Player2RoundsWon == RoundsToWin
		// a forfeit can settle before either side reaches the round target
		if p1 && p2 {
			return fmt.Errorf("match %d: both sides reached %d rounds", m.MatchID, RoundsToWin)
		}
		if m.Winner.IsZero() || m.SettledAt == 0 {
			return fmt.Errorf("match %d: complete without winner or settlement time", m.MatchID)
		}
		if (p1 && !m.Winner.Equals(m.Player1)) || (p2 && !m.Winner.Equals(m.Player2)) {
			return fmt.Errorf("match %d: winner does not match rounds won", m.MatchID)
		}
	} else if !m.Winner.IsZero() || m.SettledAt != 0 {
		return fmt.Errorf("match %d: winner set before completion", m.MatchID)
	}
	return nil
}
