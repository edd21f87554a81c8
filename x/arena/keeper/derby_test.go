package keeper_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arenaledger/arena-node/x/arena/types"
)

func testSeed() types.Seed {
	var seed types.Seed
	for i := range seed {
		seed[i] = byte(0xf0 ^ i)
	}
	return seed
}

func (f *testFixture) racingDerby(t *testing.T, id uint64) {
	t.Helper()
	_, err := f.k.CreateDerby(f.ctx, f.player1, f.server, id, testSeed())
	require.NoError(t, err)
	_, err = f.k.StartDerby(f.ctx, f.server, id)
	require.NoError(t, err)
}

func (f *testFixture) update(t *testing.T, id uint64, action types.DerbyAction) (types.DerbyRace, error) {
	t.Helper()
	return f.k.DerbyServerUpdate(f.ctx, f.server, id, action)
}

func (f *testFixture) completeLap(t *testing.T, id uint64) types.DerbyRace {
	t.Helper()
	for cp := uint8(0); cp < types.DerbyCheckpointCount; cp++ {
		_, err := f.update(t, id, types.PassCheckpoint{CheckpointID: cp})
		require.NoError(t, err)
	}
	d, err := f.update(t, id, types.CompleteLap{})
	require.NoError(t, err)
	return d
}

// Scenario C: a race from creation to finish.
func TestFullDerby(t *testing.T) {
	f := SetupTest(t)
	const id = 3

	d, err := f.k.CreateDerby(f.ctx, f.player1, f.server, id, testSeed())
	require.NoError(t, err)
	require.Equal(t, types.DerbyStatus(0), d.Status)
	require.Equal(t, testSeed(), d.VRFSeed)

	d, err = f.k.StartDerby(f.ctx, f.server, id)
	require.NoError(t, err)
	require.Equal(t, types.DerbyStatus(1), d.Status)

	_, err = f.k.StartDerby(f.ctx, f.server, id)
	require.ErrorIs(t, err, types.ErrInvalidDerbyState)

	_, err = f.update(t, id, types.CollectGold{ItemIndex: 0})
	require.NoError(t, err)
	_, err = f.update(t, id, types.CollectGold{ItemIndex: 0})
	require.ErrorIs(t, err, types.ErrItemAlreadyCollected)
	_, err = f.update(t, id, types.CollectGold{ItemIndex: 15})
	require.ErrorIs(t, err, types.ErrInvalidItemIndex)

	d = f.completeLap(t, id)
	require.Equal(t, uint8(1), d.CurrentLap)
	require.Equal(t, types.Bits8(0), d.CheckpointsPassed)

	_, err = f.update(t, id, types.CompleteLap{})
	require.ErrorIs(t, err, types.ErrMissingCheckpoints)

	_, err = f.k.SubmitDerbyInput(f.ctx, f.player1, f.player1, types.SubmitDerbyInput{RaceID: id, Tick: 4321})
	require.NoError(t, err)

	f.completeLap(t, id)
	d = f.completeLap(t, id)
	require.Equal(t, types.DerbyMaxLaps, d.CurrentLap)

	d, err = f.k.DerbyServerUpdate(f.at(5*time.Minute), f.server, id, types.FinishRace{})
	require.NoError(t, err)
	require.Equal(t, types.DerbyStatus(2), d.Status)
	require.Equal(t, uint32(4321), d.FinishTick)
	require.Equal(t, d.CurrentTick, d.FinishTick)
	require.Equal(t, genesisTime.Add(5*time.Minute).Unix(), d.SettledAt)
	require.Equal(t, uint8(1), d.GoldCollected)
	require.NoError(t, d.Validate())

	_, err = f.update(t, id, types.RecordCollision{})
	require.ErrorIs(t, err, types.ErrRaceNotActive)

	// a fresh race cannot finish before its laps
	f.racingDerby(t, id+1)
	_, err = f.update(t, id+1, types.FinishRace{})
	require.ErrorIs(t, err, types.ErrLapsNotComplete)
}

func TestDerbyServerUpdateRequiresRacing(t *testing.T) {
	f := SetupTest(t)
	_, err := f.k.CreateDerby(f.ctx, f.player1, f.server, 1, testSeed())
	require.NoError(t, err)

	_, err = f.update(t, 1, types.RecordCollision{})
	require.ErrorIs(t, err, types.ErrRaceNotActive)

	_, err = f.k.DerbyServerUpdate(f.ctx, f.player1, 1, types.RecordCollision{})
	require.ErrorIs(t, err, types.ErrDerbyUnauthorizedServer)
	_, err = f.k.StartDerby(f.ctx, f.player1, 1)
	require.ErrorIs(t, err, types.ErrDerbyUnauthorizedServer)
}

func TestDerbyItems(t *testing.T) {
	f := SetupTest(t)
	f.racingDerby(t, 1)

	for i := uint8(0); i < types.DerbyMaxGold; i++ {
		_, err := f.update(t, 1, types.CollectGold{ItemIndex: i})
		require.NoError(t, err)
	}
	d := f.derby(t, 1)
	require.Equal(t, types.DerbyMaxGold, d.GoldCollected)
	require.Equal(t, types.Bits16(0x7fff), d.GoldBitmask)

	_, err := f.k.SubmitDerbyInput(f.ctx, f.player1, f.player1, types.SubmitDerbyInput{RaceID: 1, Tick: 50})
	require.NoError(t, err)
	d, err = f.update(t, 1, types.CollectBoost{ItemIndex: 7})
	require.NoError(t, err)
	require.Equal(t, uint32(150), d.BoostEndTick)
	require.True(t, d.BoostActive())
	require.Equal(t, uint8(1), d.BoostsCollected)

	_, err = f.update(t, 1, types.CollectBoost{ItemIndex: 7})
	require.ErrorIs(t, err, types.ErrItemAlreadyCollected)
	_, err = f.update(t, 1, types.CollectBoost{ItemIndex: 8})
	require.ErrorIs(t, err, types.ErrInvalidItemIndex)

	// rejected updates leave counters untouched
	d = f.derby(t, 1)
	require.Equal(t, uint8(1), d.BoostsCollected)
	require.Equal(t, types.Bits8(0x80), d.BoostBitmask)
}

func TestDerbyCheckpoints(t *testing.T) {
	f := SetupTest(t)
	f.racingDerby(t, 1)

	_, err := f.update(t, 1, types.PassCheckpoint{CheckpointID: 4})
	require.ErrorIs(t, err, types.ErrInvalidCheckpoint)

	// passing the same checkpoint twice is harmless and order does not matter
	for _, cp := range []uint8{3, 3, 1, 0} {
		_, err = f.update(t, 1, types.PassCheckpoint{CheckpointID: cp})
		require.NoError(t, err)
	}
	_, err = f.update(t, 1, types.CompleteLap{})
	require.ErrorIs(t, err, types.ErrMissingCheckpoints)

	_, err = f.update(t, 1, types.PassCheckpoint{CheckpointID: 2})
	require.NoError(t, err)
	d, err := f.update(t, 1, types.CompleteLap{})
	require.NoError(t, err)
	require.Equal(t, uint8(1), d.CurrentLap)
	require.Zero(t, d.CheckpointsPassed)

	f.completeLap(t, 1)
	f.completeLap(t, 1)
	for cp := uint8(0); cp < types.DerbyCheckpointCount; cp++ {
		_, err = f.update(t, 1, types.PassCheckpoint{CheckpointID: cp})
		require.NoError(t, err)
	}
	_, err = f.update(t, 1, types.CompleteLap{})
	require.ErrorIs(t, err, types.ErrInvalidDerbyState)
}

func TestDerbyRecordCollision(t *testing.T) {
	f := SetupTest(t)
	f.racingDerby(t, 1)

	d, err := f.update(t, 1, types.RecordCollision{})
	require.NoError(t, err)
	require.Equal(t, uint16(1), d.Collisions)
}

func TestSubmitDerbyInput(t *testing.T) {
	f := SetupTest(t)
	_, err := f.k.CreateDerby(f.ctx, f.player1, f.server, 1, testSeed())
	require.NoError(t, err)

	_, err = f.k.SubmitDerbyInput(f.ctx, f.player1, f.player1, types.SubmitDerbyInput{RaceID: 1, Tick: 1})
	require.ErrorIs(t, err, types.ErrRaceNotActive)

	_, err = f.k.StartDerby(f.ctx, f.server, 1)
	require.NoError(t, err)

	d, err := f.k.SubmitDerbyInput(f.ctx, f.player1, f.player1, types.SubmitDerbyInput{RaceID: 1, Tick: types.DerbyMaxTicks})
	require.NoError(t, err)
	require.Equal(t, types.DerbyMaxTicks, d.CurrentTick)

	_, err = f.k.SubmitDerbyInput(f.ctx, f.player1, f.player1, types.SubmitDerbyInput{RaceID: 1, Tick: types.DerbyMaxTicks + 1})
	require.ErrorIs(t, err, types.ErrRaceTimedOut)
	require.Equal(t, types.DerbyMaxTicks, f.derby(t, 1).CurrentTick)

	// an older tick is accepted but does not move the clock back
	d, err = f.k.SubmitDerbyInput(f.ctx, f.player1, f.player1, types.SubmitDerbyInput{RaceID: 1, Tick: 10})
	require.NoError(t, err)
	require.Equal(t, types.DerbyMaxTicks, d.CurrentTick)

	_, err = f.k.SubmitDerbyInput(f.ctx, f.player2, f.player2, types.SubmitDerbyInput{RaceID: 1, Tick: 11})
	require.ErrorIs(t, err, types.ErrAccountMismatch)
	_, err = f.k.SubmitDerbyInput(f.ctx, f.player2, f.player1, types.SubmitDerbyInput{RaceID: 1, Tick: 11})
	require.ErrorIs(t, err, types.ErrSessionInvalid)
}

func TestCloseDerby(t *testing.T) {
	f := SetupTest(t)
	f.racingDerby(t, 1)

	_, err := f.k.CloseDerby(f.ctx, f.server, 1)
	require.ErrorIs(t, err, types.ErrRaceNotFinished)

	for lap := 0; lap < int(types.DerbyMaxLaps); lap++ {
		f.completeLap(t, 1)
	}
	_, err = f.update(t, 1, types.FinishRace{})
	require.NoError(t, err)

	_, err = f.k.CloseDerby(f.ctx, f.player1, 1)
	require.ErrorIs(t, err, types.ErrDerbyUnauthorizedServer)
	_, err = f.k.CloseDerby(f.ctx, f.server, 1)
	require.NoError(t, err)

	_, found, err := f.k.GetDerby(f.ctx, 1)
	require.NoError(t, err)
	require.False(t, found)
}
