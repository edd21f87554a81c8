package types

import (
	"encoding/hex"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Seed is the opaque randomness a race layout was generated from.
type Seed [32]byte

func (s Seed) String() string {
	return hex.EncodeToString(s[:])
}

func (s Seed) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Seed) UnmarshalText(text []byte) error {
	raw, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("invalid seed: %w", err)
	}
	if len(raw) != len(s) {
		return fmt.Errorf("invalid seed length %d, expected %d", len(raw), len(s))
	}
	copy(s[:], raw)
	return nil
}

// DerbyRace is the persisted state of a single player lap race.
type DerbyRace struct {
	RaceID            uint64           `json:"race_id"`
	GameServer        solana.PublicKey `json:"game_server"`
	Player            solana.PublicKey `json:"player"`
	VRFSeed           Seed             `json:"vrf_seed"`
	Status            DerbyStatus      `json:"status"`
	CurrentTick       uint32           `json:"current_tick"`
	CurrentLap        uint8            `json:"current_lap"`
	CheckpointsPassed Bits8            `json:"checkpoints_passed"`
	Collisions        uint16           `json:"collisions"`
	GoldCollected     uint8            `json:"gold_collected"`
	BoostsCollected   uint8            `json:"boosts_collected"`
	GoldBitmask       Bits16           `json:"gold_bitmask"`
	BoostBitmask      Bits8            `json:"boost_bitmask"`
	BoostEndTick      uint32           `json:"boost_end_tick"`
	FinishTick        uint32           `json:"finish_tick"`
	CreatedAt         int64            `json:"created_at"`
	SettledAt         int64            `json:"settled_at"`
}

func NewDerbyRace(raceID uint64, gameServer, player solana.PublicKey, seed Seed, createdAt int64) DerbyRace {
	return DerbyRace{
		RaceID:     raceID,
		GameServer: gameServer,
		Player:     player,
		VRFSeed:    seed,
		Status:     DerbyStatusCreated,
		CreatedAt:  createdAt,
	}
}

// BoostActive reports whether a collected boost is still running at the current tick.
func (d DerbyRace) BoostActive() bool {
	return d.CurrentTick < d.BoostEndTick
}

func (d DerbyRace) Validate() error {
	if !d.Status.IsValid() {
		return fmt.Errorf("race %d: unknown status %d", d.RaceID, d.Status)
	}
	if d.GameServer.IsZero() || d.Player.IsZero() {
		return fmt.Errorf("race %d: game server and player must be set", d.RaceID)
	}
	if d.CurrentLap > DerbyMaxLaps {
		return fmt.Errorf("race %d: lap %d exceeds %d", d.RaceID, d.CurrentLap, DerbyMaxLaps)
	}
	if d.CurrentTick > DerbyMaxTicks {
		return fmt.Errorf("race %d: tick %d exceeds %d", d.RaceID, d.CurrentTick, DerbyMaxTicks)
	}
	if uint8(d.CheckpointsPassed)&^AllCheckpoints != 0 {
		return fmt.Errorf("race %d: checkpoint mask %#x wider than %d bits", d.RaceID, d.CheckpointsPassed, DerbyCheckpointCount)
	}
	if uint16(d.GoldBitmask)>>DerbyMaxGold != 0 {
		return fmt.Errorf("race %d: gold mask %#x wider than %d bits", d.RaceID, d.GoldBitmask, DerbyMaxGold)
	}
	if d.Status == DerbyStatusFinished {
		if d.SettledAt == 0 {
			return fmt.Errorf("race %d: finished without settlement time", d.RaceID)
		}
	} else if d.SettledAt != 0 || d.FinishTick != 0 {
		return fmt.Errorf("race %d: settled before finishing", d.RaceID)
	}
	return nil
}
