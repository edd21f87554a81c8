// Package indexer maintains a queryable SQLite view of ledger outcomes built
// from the events of committed blocks.
package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	abci "github.com/cometbft/cometbft/abci/types"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/arenaledger/arena-node/relay/db"
	"github.com/arenaledger/arena-node/relay/ledger"
	"github.com/arenaledger/arena-node/relay/store"
	"github.com/arenaledger/arena-node/x/arena/types"
)

// StatusCancelled marks a match deleted before it started.
const StatusCancelled = "CANCELLED"

const defaultListLimit = 100

type Indexer struct {
	database *db.DB
	logger   zerolog.Logger
}

func New(database *db.DB, logger zerolog.Logger) *Indexer {
	return &Indexer{
		database: database,
		logger:   logger.With().Str("component", "indexer").Logger(),
	}
}

// HandleBlock indexes b, logging instead of returning failures so it can be
// registered as a ledger.BlockHandler.
func (ix *Indexer) HandleBlock(ctx context.Context, b ledger.Block) {
	if err := ix.IndexBlock(ctx, b); err != nil {
		ix.logger.Error().Err(err).Int64("height", b.Height).Msg("failed to index block")
	}
}

// IndexBlock journals every result of b and folds the events of accepted
// requests into the outcome tables, all in one transaction.
func (ix *Indexer) IndexBlock(ctx context.Context, b ledger.Block) error {
	return ix.database.Client().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, res := range b.Results {
			entry := store.RequestJournal{
				Height:      b.Height,
				Instruction: res.Instruction,
				Signer:      res.Signer,
				Subject:     res.Subject,
				Success:     res.IsOK(),
				Code:        res.Code,
				Codespace:   res.Codespace,
				Log:         res.Log,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to journal request: %w", err)
			}
			if !res.IsOK() {
				continue
			}
			for _, ev := range res.Events {
				if err := ix.indexEvent(tx, b.Height, ev); err != nil {
					return fmt.Errorf("failed to index %s event: %w", ev.Type, err)
				}
			}
		}
		return nil
	})
}

func (ix *Indexer) indexEvent(tx *gorm.DB, height int64, ev abci.Event) error {
	switch ev.Type {
	case types.EventTypeMatchCreated, types.EventTypeMatchJoined, types.EventTypeRoundStarted,
		types.EventTypeDamageApplied, types.EventTypeRoundEnded, types.EventTypeMatchSettled,
		types.EventTypeMatchCancelled, types.EventTypeMatchClosed:
		var m types.ArenaMatch
		if err := decodeData(ev, &m); err != nil {
			return err
		}
		return ix.upsertMatch(tx, height, ev, m)
	case types.EventTypeDerbyCreated, types.EventTypeDerbyStarted, types.EventTypeDerbyInput,
		types.EventTypeDerbyUpdated, types.EventTypeDerbyFinished, types.EventTypeDerbyClosed:
		var d types.DerbyRace
		if err := decodeData(ev, &d); err != nil {
			return err
		}
		return ix.upsertRace(tx, height, ev, d)
	}
	return nil
}

func attribute(ev abci.Event, key string) string {
	for _, attr := range ev.Attributes {
		if attr.Key == key {
			return attr.Value
		}
	}
	return ""
}

func decodeData(ev abci.Event, v any) error {
	data := attribute(ev, types.AttributeKeyData)
	if data == "" {
		return errors.New("event has no data attribute")
	}
	return json.Unmarshal([]byte(data), v)
}

func keyString(k solana.PublicKey) string {
	if k.IsZero() {
		return ""
	}
	return k.String()
}

func (ix *Indexer) upsertMatch(tx *gorm.DB, height int64, ev abci.Event, m types.ArenaMatch) error {
	row := store.MatchOutcome{
		MatchID:          m.MatchID,
		Address:          attribute(ev, types.AttributeKeyAddress),
		GameServer:       m.GameServer.String(),
		Player1:          m.Player1.String(),
		Player2:          keyString(m.Player2),
		Status:           m.Status.String(),
		CurrentRound:     m.CurrentRound,
		Player1RoundsWon: m.Player1RoundsWon,
		Player2RoundsWon: m.Player2RoundsWon,
		Winner:           keyString(m.Winner),
		OpenedAt:         m.CreatedAt,
		SettledAt:        m.SettledAt,
		Height:           height,
		Data:             []byte(attribute(ev, types.AttributeKeyData)),
	}
	switch ev.Type {
	case types.EventTypeMatchCancelled:
		row.Status = StatusCancelled
		row.Closed = true
	case types.EventTypeMatchClosed:
		row.Closed = true
	}

	var existing store.MatchOutcome
	err := tx.Where("match_id = ?", m.MatchID).First(&existing).Error
	switch {
	case err == nil:
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return err
	}

	if row.Closed || row.Status == types.MatchStatusComplete.String() {
		ix.logger.Info().
			Uint64("match_id", row.MatchID).
			Str("status", row.Status).
			Str("winner", row.Winner).
			Msg("match outcome indexed")
	}
	return tx.Save(&row).Error
}

func (ix *Indexer) upsertRace(tx *gorm.DB, height int64, ev abci.Event, d types.DerbyRace) error {
	row := store.RaceOutcome{
		RaceID:          d.RaceID,
		Address:         attribute(ev, types.AttributeKeyAddress),
		GameServer:      d.GameServer.String(),
		Player:          d.Player.String(),
		Status:          d.Status.String(),
		CurrentLap:      d.CurrentLap,
		Collisions:      d.Collisions,
		GoldCollected:   d.GoldCollected,
		BoostsCollected: d.BoostsCollected,
		FinishTick:      d.FinishTick,
		OpenedAt:        d.CreatedAt,
		SettledAt:       d.SettledAt,
		Height:          height,
		Closed:          ev.Type == types.EventTypeDerbyClosed,
		Data:            []byte(attribute(ev, types.AttributeKeyData)),
	}

	var existing store.RaceOutcome
	err := tx.Where("race_id = ?", d.RaceID).First(&existing).Error
	switch {
	case err == nil:
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return err
	}

	if ev.Type == types.EventTypeDerbyFinished {
		ix.logger.Info().
			Uint64("race_id", row.RaceID).
			Uint32("finish_tick", row.FinishTick).
			Uint8("gold", row.GoldCollected).
			Msg("race outcome indexed")
	}
	return tx.Save(&row).Error
}

// Filter narrows outcome listings. Zero fields match everything.
type Filter struct {
	Status string
	Player string
	Limit  int
}

func (f Filter) limit() int {
	if f.Limit <= 0 || f.Limit > defaultListLimit {
		return defaultListLimit
	}
	return f.Limit
}

// MatchOutcomes lists indexed matches, most recently updated first.
func (ix *Indexer) MatchOutcomes(ctx context.Context, f Filter) ([]store.MatchOutcome, error) {
	q := ix.database.Client().WithContext(ctx).Model(&store.MatchOutcome{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Player != "" {
		q = q.Where("player1 = ? OR player2 = ?", f.Player, f.Player)
	}
	var rows []store.MatchOutcome
	err := q.Order("height DESC").Order("match_id").Limit(f.limit()).Find(&rows).Error
	return rows, err
}

// RaceOutcomes lists indexed races, most recently updated first.
func (ix *Indexer) RaceOutcomes(ctx context.Context, f Filter) ([]store.RaceOutcome, error) {
	q := ix.database.Client().WithContext(ctx).Model(&store.RaceOutcome{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Player != "" {
		q = q.Where("player = ?", f.Player)
	}
	var rows []store.RaceOutcome
	err := q.Order("height DESC").Order("race_id").Limit(f.limit()).Find(&rows).Error
	return rows, err
}

// Journal returns the journal entries recorded at height.
func (ix *Indexer) Journal(ctx context.Context, height int64) ([]store.RequestJournal, error) {
	var rows []store.RequestJournal
	err := ix.database.Client().WithContext(ctx).Where("height = ?", height).Order("id").Find(&rows).Error
	return rows, err
}
