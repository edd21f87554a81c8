package types

import (
	"cosmossdk.io/errors"
)

// DerbyCodespace holds derby race rejections. Arena and derby codes both start at
// 6000 so clients of the original program keep reading the same numbers.
const (
	DerbyCodespace = "derby"
	HostCodespace  = "arena_host"
)

const baseRejectionCode uint32 = 6000

// Arena match errors.
var (
	ErrMatchNotJoinable    = errors.Register(ModuleName, baseRejectionCode, "match is not in a joinable state")
	ErrCannotJoinOwnMatch  = errors.Register(ModuleName, baseRejectionCode+1, "cannot join your own match")
	ErrMatchNotActive      = errors.Register(ModuleName, baseRejectionCode+2, "match is not active")
	ErrMatchNotComplete    = errors.Register(ModuleName, baseRejectionCode+3, "match is not complete")
	ErrMatchAlreadyStarted = errors.Register(ModuleName, baseRejectionCode+4, "match has already started")
	ErrInvalidMatchState   = errors.Register(ModuleName, baseRejectionCode+5, "invalid match state for this action")
	ErrInvalidTargetSlot   = errors.Register(ModuleName, baseRejectionCode+6, "invalid target slot (must be 1 or 2)")
	ErrDamageCooldown      = errors.Register(ModuleName, baseRejectionCode+7, "damage cooldown not elapsed")
	ErrUnauthorizedServer  = errors.Register(ModuleName, baseRejectionCode+8, "unauthorized game server")
	ErrUnauthorizedPlayer  = errors.Register(ModuleName, baseRejectionCode+9, "unauthorized player")
	ErrRoundUndecided      = errors.Register(ModuleName, baseRejectionCode+10, "round has no winner: hp is tied")
	ErrStaleInput          = errors.Register(ModuleName, baseRejectionCode+11, "input tick is not newer than the last accepted tick")
)

// Derby race errors.
var (
	ErrInvalidDerbyState       = errors.Register(DerbyCodespace, baseRejectionCode, "invalid derby state for this action")
	ErrRaceNotActive           = errors.Register(DerbyCodespace, baseRejectionCode+1, "race is not active")
	ErrRaceNotFinished         = errors.Register(DerbyCodespace, baseRejectionCode+2, "race is not finished")
	ErrRaceTimedOut            = errors.Register(DerbyCodespace, baseRejectionCode+3, "race timed out")
	ErrInvalidItemIndex        = errors.Register(DerbyCodespace, baseRejectionCode+4, "invalid item index")
	ErrItemAlreadyCollected    = errors.Register(DerbyCodespace, baseRejectionCode+5, "item already collected")
	ErrInvalidCheckpoint       = errors.Register(DerbyCodespace, baseRejectionCode+6, "invalid checkpoint id")
	ErrMissingCheckpoints      = errors.Register(DerbyCodespace, baseRejectionCode+7, "not all checkpoints passed")
	ErrLapsNotComplete         = errors.Register(DerbyCodespace, baseRejectionCode+8, "not all laps complete")
	ErrDerbyUnauthorizedServer = errors.Register(DerbyCodespace, baseRejectionCode+9, "unauthorized game server")
)

// Host errors: storage slots, request decoding and session authorization.
var (
	ErrAccountInUse         = errors.Register(HostCodespace, 2, "account address already in use")
	ErrAccountNotFound      = errors.Register(HostCodespace, 3, "account not found")
	ErrInvalidInstruction   = errors.Register(HostCodespace, 4, "invalid instruction data")
	ErrInvalidAccountData   = errors.Register(HostCodespace, 5, "invalid account data")
	ErrSessionInvalid       = errors.Register(HostCodespace, 6, "signer is neither the authority nor a live session")
	ErrInvalidSessionExpiry = errors.Register(HostCodespace, 7, "session expiry must be in the future")
	ErrAccountMismatch      = errors.Register(HostCodespace, 8, "account does not belong to the requested key")
)
