// Package store contains GORM-backed SQLite models used by the relay's
// outcome index.
//
// Database Structure (database file: arena_index.db):
//
//	data/
//	└── arena_index.db
//	    ├── match_outcomes
//	    ├── race_outcomes
//	    └── request_journal
package store

import (
	"gorm.io/gorm"
)

// MatchOutcome is the latest indexed view of one arena match.
type MatchOutcome struct {
	gorm.Model
	MatchID          uint64 `gorm:"uniqueIndex;not null"` // Match id the record address was derived from
	Address          string // Derived record address (base58)
	GameServer       string
	Player1          string `gorm:"index"`
	Player2          string `gorm:"index"`
	Status           string `gorm:"index"` // "WAITING_FOR_PLAYER", "COUNTDOWN", "ACTIVE", "ROUND_END", "COMPLETE" or "CANCELLED"
	CurrentRound     uint8
	Player1RoundsWon uint8
	Player2RoundsWon uint8
	Winner           string `gorm:"index"` // Empty until settled
	OpenedAt         int64  // Ledger time the match was created
	SettledAt        int64  // Ledger time the match was settled, zero until then
	Height           int64  `gorm:"index"` // Height of the last transition seen
	Closed           bool   // Record reclaimed from the ledger
	Data             []byte // Raw JSON-encoded record from the last event
}

// RaceOutcome is the latest indexed view of one derby race.
type RaceOutcome struct {
	gorm.Model
	RaceID          uint64 `gorm:"uniqueIndex;not null"`
	Address         string
	GameServer      string
	Player          string `gorm:"index"`
	Status          string `gorm:"index"` // "CREATED", "RACING" or "FINISHED"
	CurrentLap      uint8
	Collisions      uint16
	GoldCollected   uint8
	BoostsCollected uint8
	FinishTick      uint32
	OpenedAt        int64
	SettledAt       int64
	Height          int64 `gorm:"index"`
	Closed          bool
	Data            []byte
}

// RequestJournal records every delivered request, accepted or rejected.
type RequestJournal struct {
	gorm.Model
	Height      int64  `gorm:"index;not null"`
	Instruction string `gorm:"index"` // Empty when the discriminator was unknown
	Signer      string `gorm:"index"`
	Subject     string
	Success     bool
	Code        uint32
	Codespace   string
	Log         string `gorm:"type:text"` // Rejection message
}

// TableName specifies the table name for RequestJournal.
func (RequestJournal) TableName() string {
	return "request_journal"
}
