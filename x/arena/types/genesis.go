package types

import (
	"encoding/json"
	"fmt"
)

// GenesisState is the JSON genesis of the module.
type GenesisState struct {
	Matches      []ArenaMatch   `json:"matches"`
	PlayerStates []PlayerState  `json:"player_states"`
	Derbies      []DerbyRace    `json:"derbies"`
	Sessions     []SessionToken `json:"sessions"`
}

// DefaultGenesis returns an empty ledger.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Matches:      []ArenaMatch{},
		PlayerStates: []PlayerState{},
		Derbies:      []DerbyRace{},
		Sessions:     []SessionToken{},
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	matches := make(map[uint64]struct{}, len(gs.Matches))
	for _, m := range gs.Matches {
		if _, dup := matches[m.MatchID]; dup {
			return fmt.Errorf("duplicate match %d", m.MatchID)
		}
		matches[m.MatchID] = struct{}{}
		if err := m.Validate(); err != nil {
			return err
		}
	}

	type playerKey struct {
		matchID uint64
		player  string
	}
	players := make(map[playerKey]struct{}, len(gs.PlayerStates))
	for _, p := range gs.PlayerStates {
		key := playerKey{p.MatchID, p.Player.String()}
		if _, dup := players[key]; dup {
			return fmt.Errorf("duplicate player state %d/%s", p.MatchID, p.Player)
		}
		players[key] = struct{}{}
		if err := p.Validate(); err != nil {
			return err
		}
	}

	derbies := make(map[uint64]struct{}, len(gs.Derbies))
	for _, d := range gs.Derbies {
		if _, dup := derbies[d.RaceID]; dup {
			return fmt.Errorf("duplicate race %d", d.RaceID)
		}
		derbies[d.RaceID] = struct{}{}
		if err := d.Validate(); err != nil {
			return err
		}
	}

	sessions := make(map[string]struct{}, len(gs.Sessions))
	for _, s := range gs.Sessions {
		key := s.Authority.String() + "/" + s.Signer.String()
		if _, dup := sessions[key]; dup {
			return fmt.Errorf("duplicate session %s", key)
		}
		sessions[key] = struct{}{}
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalGenesis decodes a JSON genesis document.
func UnmarshalGenesis(bz json.RawMessage) (*GenesisState, error) {
	var gs GenesisState
	if err := json.Unmarshal(bz, &gs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s genesis state: %w", ModuleName, err)
	}
	return &gs, nil
}
