package types

import (
	"encoding/json"
	"fmt"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gagliardetto/solana-go"
)

const (
	EventTypeMatchCreated       = "match_created"
	EventTypePlayerStateCreated = "player_state_created"
	EventTypeMatchJoined        = "match_joined"
	EventTypeRoundStarted       = "round_started"
	EventTypeInputSubmitted     = "input_submitted"
	EventTypeDamageApplied      = "damage_applied"
	EventTypeRoundEnded         = "round_ended"
	EventTypeMatchSettled       = "match_settled"
	EventTypeMatchCancelled     = "match_cancelled"
	EventTypeMatchClosed        = "match_closed"
	EventTypePlayerStateClosed  = "player_state_closed"
	EventTypeDerbyCreated       = "derby_created"
	EventTypeDerbyStarted       = "derby_started"
	EventTypeDerbyInput         = "derby_input"
	EventTypeDerbyUpdated       = "derby_updated"
	EventTypeDerbyFinished      = "derby_finished"
	EventTypeDerbyClosed        = "derby_closed"
	EventTypeSessionCreated     = "session_created"
	EventTypeSessionRevoked     = "session_revoked"
)

const (
	AttributeKeyAddress   = "address"
	AttributeKeyMatchID   = "match_id"
	AttributeKeyRaceID    = "race_id"
	AttributeKeyPlayer    = "player"
	AttributeKeyStatus    = "status"
	AttributeKeyWinner    = "winner"
	AttributeKeyAuthority = "authority"
	AttributeKeySigner    = "signer"
	AttributeKeyData      = "data"
)

func marshalEventData(eventType string, v any) (string, error) {
	bz, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}
	return string(bz), nil
}

// NewMatchEvent reports a match transition. The data attribute carries the
// record as it was left by the transition.
func NewMatchEvent(eventType string, address solana.PublicKey, m ArenaMatch) (sdk.Event, error) {
	data, err := marshalEventData(eventType, m)
	if err != nil {
		return sdk.Event{}, err
	}

	event := sdk.NewEvent(
		eventType,
		sdk.NewAttribute(AttributeKeyAddress, address.String()),
		sdk.NewAttribute(AttributeKeyMatchID, strconv.FormatUint(m.MatchID, 10)),
		sdk.NewAttribute(AttributeKeyStatus, m.Status.String()),
		sdk.NewAttribute(AttributeKeyWinner, m.Winner.String()),
		sdk.NewAttribute(AttributeKeyData, data), // full JSON payload for indexers
	)
	return event, nil
}

func NewPlayerStateEvent(eventType string, address solana.PublicKey, p PlayerState) (sdk.Event, error) {
	data, err := marshalEventData(eventType, p)
	if err != nil {
		return sdk.Event{}, err
	}

	event := sdk.NewEvent(
		eventType,
		sdk.NewAttribute(AttributeKeyAddress, address.String()),
		sdk.NewAttribute(AttributeKeyMatchID, strconv.FormatUint(p.MatchID, 10)),
		sdk.NewAttribute(AttributeKeyPlayer, p.Player.String()),
		sdk.NewAttribute(AttributeKeyData, data),
	)
	return event, nil
}

func NewDerbyEvent(eventType string, address solana.PublicKey, d DerbyRace) (sdk.Event, error) {
	data, err := marshalEventData(eventType, d)
	if err != nil {
		return sdk.Event{}, err
	}

	event := sdk.NewEvent(
		eventType,
		sdk.NewAttribute(AttributeKeyAddress, address.String()),
		sdk.NewAttribute(AttributeKeyRaceID, strconv.FormatUint(d.RaceID, 10)),
		sdk.NewAttribute(AttributeKeyPlayer, d.Player.String()),
		sdk.NewAttribute(AttributeKeyStatus, d.Status.String()),
		sdk.NewAttribute(AttributeKeyData, data),
	)
	return event, nil
}

func NewSessionEvent(eventType string, address solana.PublicKey, s SessionToken) (sdk.Event, error) {
	data, err := marshalEventData(eventType, s)
	if err != nil {
		return sdk.Event{}, err
	}

	event := sdk.NewEvent(
		eventType,
		sdk.NewAttribute(AttributeKeyAddress, address.String()),
		sdk.NewAttribute(AttributeKeyAuthority, s.Authority.String()),
		sdk.NewAttribute(AttributeKeySigner, s.Signer.String()),
		sdk.NewAttribute(AttributeKeyData, data),
	)
	return event, nil
}

// EventAttribute returns the value of key in e.
func EventAttribute(e sdk.Event, key string) (string, bool) {
	for _, attr := range e.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}
