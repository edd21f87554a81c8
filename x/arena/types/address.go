package types

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Directory derives the storage address of every record from its key
// components. Records never reference each other; a related record is
// found by deriving its address again.
type Directory struct {
	ProgramID solana.PublicKey
}

// DefaultDirectory scopes addresses to DefaultProgramID.
func DefaultDirectory() Directory {
	return Directory{ProgramID: solana.MustPublicKeyFromBase58(DefaultProgramID)}
}

// NewDirectory parses a base58 program id.
func NewDirectory(programID string) (Directory, error) {
	key, err := solana.PublicKeyFromBase58(programID)
	if err != nil {
		return Directory{}, fmt.Errorf("invalid program id %q: %w", programID, err)
	}
	return Directory{ProgramID: key}, nil
}

// Address pairs a derived address with its bump seed.
type Address struct {
	Key  solana.PublicKey `json:"key"`
	Bump uint8            `json:"bump"`
}

func le64(v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b[:]
}

func (d Directory) derive(seeds ...[]byte) (Address, error) {
	key, bump, err := solana.FindProgramAddress(seeds, d.ProgramID)
	if err != nil {
		return Address{}, fmt.Errorf("derive address: %w", err)
	}
	return Address{Key: key, Bump: bump}, nil
}

// MatchAddress is H("arena_match" ‖ LE64(matchID)).
func (d Directory) MatchAddress(matchID uint64) (Address, error) {
	return d.derive([]byte(MatchSeed), le64(matchID))
}

// PlayerStateAddress is H("player_state" ‖ LE64(matchID) ‖ player).
func (d Directory) PlayerStateAddress(matchID uint64, player solana.PublicKey) (Address, error) {
	return d.derive([]byte(PlayerStateSeed), le64(matchID), player[:])
}

// DerbyAddress is H("derby_race" ‖ LE64(raceID)).
func (d Directory) DerbyAddress(raceID uint64) (Address, error) {
	return d.derive([]byte(DerbySeed), le64(raceID))
}

// SessionAddress is H("session_token" ‖ authority ‖ signer).
func (d Directory) SessionAddress(authority, signer solana.PublicKey) (Address, error) {
	return d.derive([]byte(SessionTokenSeed), authority[:], signer[:])
}
