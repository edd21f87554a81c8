package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/arenaledger/arena-node/x/arena/types"
)

// Execute decodes and applies one request. The request runs on a cached
// context that is only written back when it succeeds, so a rejected request
// leaves no trace in state or events.
func (k Keeper) Execute(ctx context.Context, req types.Request) (types.Instruction, error) {
	ix, err := types.DecodeInstruction(req.Data)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)

	// use a temporary context to not commit any state change in case of error
	tmpCtx, commit := sdkCtx.CacheContext()
	if err := k.dispatch(tmpCtx, req, ix); err != nil {
		k.logger.Debug("request rejected", "instruction", ix.Name(), "signer", req.Signer.String(), "error", err.Error())
		return ix, err
	}
	commit()

	return ix, nil
}

func (k Keeper) dispatch(ctx context.Context, req types.Request, ix types.Instruction) error {
	var err error
	switch ix := ix.(type) {
	case types.CreateMatch:
		_, err = k.CreateMatch(ctx, req.Signer, req.Subject, ix.MatchID)
	case types.CreatePlayerState:
		_, err = k.CreatePlayerState(ctx, req.Signer, ix.MatchID)
	case types.JoinMatch:
		_, err = k.JoinMatch(ctx, req.Signer, req.Subject, ix.MatchID)
	case types.StartRound:
		_, err = k.StartRound(ctx, req.Signer, ix.MatchID)
	case types.SubmitInput:
		_, err = k.SubmitInput(ctx, req.Signer, req.Subject, ix)
	case types.ApplyDamage:
		_, err = k.ApplyDamage(ctx, req.Signer, ix.MatchID, ix.TargetSlot)
	case types.EndRound:
		_, err = k.EndRound(ctx, req.Signer, ix.MatchID)
	case types.Forfeit:
		_, err = k.Forfeit(ctx, req.Signer, ix.MatchID, ix.ForfeiterSlot)
	case types.CancelMatch:
		_, err = k.CancelMatch(ctx, req.Signer, ix.MatchID)
	case types.CloseMatch:
		_, err = k.CloseMatch(ctx, req.Signer, ix.MatchID)
	case types.ClosePlayerState:
		_, err = k.ClosePlayerState(ctx, req.Signer, req.Subject, ix.MatchID)
	case types.CreateDerby:
		_, err = k.CreateDerby(ctx, req.Signer, req.Subject, ix.RaceID, ix.VRFSeed)
	case types.StartDerby:
		_, err = k.StartDerby(ctx, req.Signer, ix.RaceID)
	case types.SubmitDerbyInput:
		_, err = k.SubmitDerbyInput(ctx, req.Signer, req.Subject, ix)
	case types.DerbyServerUpdate:
		_, err = k.DerbyServerUpdate(ctx, req.Signer, ix.RaceID, ix.Action)
	case types.CloseDerby:
		_, err = k.CloseDerby(ctx, req.Signer, ix.RaceID)
	case types.CreateSession:
		_, err = k.CreateSession(ctx, req.Signer, req.Subject, ix.ValidUntil)
	case types.RevokeSession:
		_, err = k.RevokeSession(ctx, req.Signer, req.Subject)
	default:
		err = errorsmod.Wrapf(types.ErrInvalidInstruction, "no handler for %s", ix.Name())
	}
	return err
}
