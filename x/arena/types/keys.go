package types

import (
	"cosmossdk.io/collections"
)

var (
	// MatchesKey saves arena match records keyed by their derived address.
	MatchesKey = collections.NewPrefix(0)

	// MatchesName is the name of the Matches collection.
	MatchesName = "matches"

	// PlayerStatesKey saves per-player input records keyed by their derived address.
	PlayerStatesKey = collections.NewPrefix(1)

	// PlayerStatesName is the name of the PlayerStates collection.
	PlayerStatesName = "player_states"

	// DerbiesKey saves derby race records keyed by their derived address.
	DerbiesKey = collections.NewPrefix(2)

	// DerbiesName is the name of the Derbies collection.
	DerbiesName = "derbies"

	// SessionsKey saves session tokens keyed by their derived address.
	SessionsKey = collections.NewPrefix(3)

	// SessionsName is the name of the Sessions collection.
	SessionsName = "sessions"
)

const (
	ModuleName = "arena"

	StoreKey = ModuleName

	QuerierRoute = ModuleName
)

// Address derivation seeds.
const (
	MatchSeed        = "arena_match"
	PlayerStateSeed  = "player_state"
	DerbySeed        = "derby_race"
	SessionTokenSeed = "session_token"
)
