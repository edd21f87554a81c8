package module

import (
	"encoding/json"
	"fmt"

	abci "github.com/cometbft/cometbft/abci/types"

	"cosmossdk.io/core/appmodule"
	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"

	"github.com/arenaledger/arena-node/x/arena/keeper"
	"github.com/arenaledger/arena-node/x/arena/types"
)

const (
	// ConsensusVersion defines the current x/arena module consensus version.
	ConsensusVersion = 1
)

var (
	_ module.HasName             = AppModuleBasic{}
	_ module.HasGenesisBasics    = AppModuleBasic{}
	_ module.HasABCIGenesis      = AppModule{}
	_ module.HasConsensusVersion = AppModule{}
	_ appmodule.AppModule        = AppModule{}
)

// AppModuleBasic carries the stateless parts of the arena module. Genesis is
// plain JSON since the records have a fixed binary layout of their own.
type AppModuleBasic struct{}

type AppModule struct {
	AppModuleBasic

	keeper keeper.Keeper
}

// NewAppModule constructor
func NewAppModule(keeper keeper.Keeper) *AppModule {
	return &AppModule{keeper: keeper}
}

func (a AppModuleBasic) Name() string {
	return types.ModuleName
}

func (a AppModuleBasic) DefaultGenesis(_ codec.JSONCodec) json.RawMessage {
	bz, err := json.Marshal(types.DefaultGenesis())
	if err != nil {
		panic(err)
	}
	return bz
}

func (a AppModuleBasic) ValidateGenesis(_ codec.JSONCodec, _ client.TxEncodingConfig, message json.RawMessage) error {
	data, err := types.UnmarshalGenesis(message)
	if err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return errorsmod.Wrap(err, "records")
	}
	return nil
}

// IsOnePerModuleType implements the depinject.OnePerModuleType interface.
func (a AppModule) IsOnePerModuleType() {}

// IsAppModule implements the appmodule.AppModule interface.
func (a AppModule) IsAppModule() {}

func (a AppModule) InitGenesis(ctx sdk.Context, _ codec.JSONCodec, message json.RawMessage) []abci.ValidatorUpdate {
	genesisState, err := types.UnmarshalGenesis(message)
	if err != nil {
		panic(err)
	}

	if err := a.keeper.InitGenesis(ctx, genesisState); err != nil {
		panic(fmt.Errorf("failed to init %s genesis: %w", types.ModuleName, err))
	}

	return nil
}

func (a AppModule) ExportGenesis(ctx sdk.Context, _ codec.JSONCodec) json.RawMessage {
	genState := a.keeper.ExportGenesis(ctx)
	bz, err := json.Marshal(genState)
	if err != nil {
		panic(err)
	}
	return bz
}

func (a AppModule) QuerierRoute() string {
	return types.QuerierRoute
}

// ConsensusVersion is a sequence number for state-breaking change of the
// module. It should be incremented on each consensus-breaking change
// introduced by the module. To avoid wrong/empty versions, the initial version
// should be set to 1.
func (a AppModule) ConsensusVersion() uint64 {
	return ConsensusVersion
}
