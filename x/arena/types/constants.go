package types

// DefaultProgramID scopes every derived address of the module.
const DefaultProgramID = "45A9Qb4YVeWwL35aBCTcT4bcfsgcFUW3GUHAbvhNJJGi"

// Arena match rules.
const (
	MaxRounds           uint8  = 3
	RoundsToWin         uint8  = 2
	HPPerRound          uint8  = 3
	RoundTicks          uint32 = 1200 // 60s at 20Hz
	DamageCooldownTicks uint32 = 10   // ~500ms between hits
	MaxDamagePerHit     uint8  = 1
)

// Derby race rules.
const (
	DerbyMaxLaps            uint8  = 3
	DerbyCheckpointCount    uint8  = 4
	DerbyMaxBoosts          uint8  = 8
	DerbyMaxGold            uint8  = 15
	DerbyMaxTicks           uint32 = 6000 // 5min at 20Hz
	DerbyBoostDurationTicks uint32 = 100  // 5s at 20Hz
)

// AllCheckpoints is the checkpoint bitmask required to complete a lap.
const AllCheckpoints uint8 = (1 << DerbyCheckpointCount) - 1
