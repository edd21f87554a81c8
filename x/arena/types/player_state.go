package types

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// PlayerState holds the latest input a player submitted to a match.
type PlayerState struct {
	MatchID    uint64           `json:"match_id"`
	Player     solana.PublicKey `json:"player"`
	DX         int8             `json:"dx"`
	DY         int8             `json:"dy"`
	Attacking  bool             `json:"attacking"`
	LastTick   uint32           `json:"last_tick"`
	InputCount uint64           `json:"input_count"`
}

func NewPlayerState(matchID uint64, player solana.PublicKey) PlayerState {
	return PlayerState{MatchID: matchID, Player: player}
}

func (p PlayerState) Validate() error {
	if p.Player.IsZero() {
		return fmt.Errorf("player state for match %d: player must be set", p.MatchID)
	}
	return nil
}
