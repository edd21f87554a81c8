package main

import (
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/arenaledger/arena-node/x/arena/types"
)

const (
	FormatHex    = "hex"
	FormatBase58 = "base58"
)

type instructionBuilder struct {
	usage string
	args  int
	build func(args []string) (types.Instruction, error)
}

func argUint(s string, bits int) (uint64, error) {
	v, err := cast.ToUint64E(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not an unsigned integer", s)
	}
	if bits < 64 && v >= 1<<bits {
		return 0, fmt.Errorf("%s overflows uint%d", s, bits)
	}
	return v, nil
}

func argInt8(s string) (int8, error) {
	v, err := cast.ToInt64E(s)
	if err != nil || v < math.MinInt8 || v > math.MaxInt8 {
		return 0, fmt.Errorf("%q is not an int8", s)
	}
	return int8(v), nil
}

// idBuilder builds instructions whose only argument is a match or race id.
func idBuilder(name string, mk func(id uint64) types.Instruction) instructionBuilder {
	return instructionBuilder{
		usage: name + " <id>",
		args:  1,
		build: func(args []string) (types.Instruction, error) {
			id, err := argUint(args[0], 64)
			if err != nil {
				return nil, err
			}
			return mk(id), nil
		},
	}
}

var instructionBuilders = map[string]instructionBuilder{
	types.InstructionCreateMatch: idBuilder(types.InstructionCreateMatch, func(id uint64) types.Instruction {
		return types.CreateMatch{MatchID: id}
	}),
	types.InstructionCreatePlayerState: idBuilder(types.InstructionCreatePlayerState, func(id uint64) types.Instruction {
		return types.CreatePlayerState{MatchID: id}
	}),
	types.InstructionJoinMatch: idBuilder(types.InstructionJoinMatch, func(id uint64) types.Instruction {
		return types.JoinMatch{MatchID: id}
	}),
	types.InstructionStartRound: idBuilder(types.InstructionStartRound, func(id uint64) types.Instruction {
		return types.StartRound{MatchID: id}
	}),
	types.InstructionEndRound: idBuilder(types.InstructionEndRound, func(id uint64) types.Instruction {
		return types.EndRound{MatchID: id}
	}),
	types.InstructionCancelMatch: idBuilder(types.InstructionCancelMatch, func(id uint64) types.Instruction {
		return types.CancelMatch{MatchID: id}
	}),
	types.InstructionCloseMatch: idBuilder(types.InstructionCloseMatch, func(id uint64) types.Instruction {
		return types.CloseMatch{MatchID: id}
	}),
	types.InstructionClosePlayerState: idBuilder(types.InstructionClosePlayerState, func(id uint64) types.Instruction {
		return types.ClosePlayerState{MatchID: id}
	}),
	types.InstructionStartDerby: idBuilder(types.InstructionStartDerby, func(id uint64) types.Instruction {
		return types.StartDerby{RaceID: id}
	}),
	types.InstructionCloseDerby: idBuilder(types.InstructionCloseDerby, func(id uint64) types.Instruction {
		return types.CloseDerby{RaceID: id}
	}),
	types.InstructionSubmitInput: {
		usage: types.InstructionSubmitInput + " <match_id> <tick> <dx> <dy> <attacking>",
		args:  5,
		build: func(args []string) (types.Instruction, error) {
			var ix types.SubmitInput
			var err error
			if ix.MatchID, err = argUint(args[0], 64); err != nil {
				return nil, err
			}
			tick, err := argUint(args[1], 32)
			if err != nil {
				return nil, err
			}
			ix.Tick = uint32(tick)
			if ix.DX, err = argInt8(args[2]); err != nil {
				return nil, err
			}
			if ix.DY, err = argInt8(args[3]); err != nil {
				return nil, err
			}
			if ix.Attacking, err = cast.ToBoolE(args[4]); err != nil {
				return nil, fmt.Errorf("%q is not a bool", args[4])
			}
			return ix, nil
		},
	},
	types.InstructionApplyDamage: {
		usage: types.InstructionApplyDamage + " <match_id> <target_slot>",
		args:  2,
		build: func(args []string) (types.Instruction, error) {
			id, slot, err := idAndSlot(args)
			return types.ApplyDamage{MatchID: id, TargetSlot: slot}, err
		},
	},
	types.InstructionForfeit: {
		usage: types.InstructionForfeit + " <match_id> <forfeiter_slot>",
		args:  2,
		build: func(args []string) (types.Instruction, error) {
			id, slot, err := idAndSlot(args)
			return types.Forfeit{MatchID: id, ForfeiterSlot: slot}, err
		},
	},
	types.InstructionCreateDerby: {
		usage: types.InstructionCreateDerby + " <race_id> <seed_hex>",
		args:  2,
		build: func(args []string) (types.Instruction, error) {
			id, err := argUint(args[0], 64)
			if err != nil {
				return nil, err
			}
			var seed types.Seed
			if err := seed.UnmarshalText([]byte(args[1])); err != nil {
				return nil, err
			}
			return types.CreateDerby{RaceID: id, VRFSeed: seed}, nil
		},
	},
	types.InstructionSubmitDerbyInput: {
		usage: types.InstructionSubmitDerbyInput + " <race_id> <tick> <dx> <dy>",
		args:  4,
		build: func(args []string) (types.Instruction, error) {
			var ix types.SubmitDerbyInput
			var err error
			if ix.RaceID, err = argUint(args[0], 64); err != nil {
				return nil, err
			}
			tick, err := argUint(args[1], 32)
			if err != nil {
				return nil, err
			}
			ix.Tick = uint32(tick)
			if ix.DX, err = argInt8(args[2]); err != nil {
				return nil, err
			}
			if ix.DY, err = argInt8(args[3]); err != nil {
				return nil, err
			}
			return ix, nil
		},
	},
	types.InstructionDerbyServerUpdate: {
		usage: types.InstructionDerbyServerUpdate + " <race_id> <action> [argument]",
		args:  -2,
		build: func(args []string) (types.Instruction, error) {
			id, err := argUint(args[0], 64)
			if err != nil {
				return nil, err
			}
			name := args[1]
			var arg uint64
			switch {
			case types.DerbyActionHasArgument(name) && len(args) != 3:
				return nil, fmt.Errorf("action %s takes an argument", name)
			case !types.DerbyActionHasArgument(name) && len(args) != 2:
				return nil, fmt.Errorf("action %s takes no argument", name)
			case len(args) == 3:
				if arg, err = argUint(args[2], 8); err != nil {
					return nil, err
				}
			}
			action, err := types.ParseDerbyAction(name, uint8(arg))
			if err != nil {
				return nil, err
			}
			return types.DerbyServerUpdate{RaceID: id, Action: action}, nil
		},
	},
	types.InstructionCreateSession: {
		usage: types.InstructionCreateSession + " <valid_until_unix>",
		args:  1,
		build: func(args []string) (types.Instruction, error) {
			until, err := cast.ToInt64E(args[0])
			if err != nil {
				return nil, fmt.Errorf("%q is not a unix time", args[0])
			}
			return types.CreateSession{ValidUntil: until}, nil
		},
	},
	types.InstructionRevokeSession: {
		usage: types.InstructionRevokeSession,
		args:  0,
		build: func([]string) (types.Instruction, error) {
			return types.RevokeSession{}, nil
		},
	},
}

func idAndSlot(args []string) (uint64, types.Slot, error) {
	id, err := argUint(args[0], 64)
	if err != nil {
		return 0, 0, err
	}
	slot, err := argUint(args[1], 8)
	if err != nil {
		return 0, 0, err
	}
	return id, types.Slot(slot), nil
}

// buildInstruction parses args for the named instruction. A negative arg
// count -n means at least n arguments.
func buildInstruction(name string, args []string) (types.Instruction, error) {
	b, ok := instructionBuilders[name]
	if !ok {
		return nil, fmt.Errorf("unknown instruction %q", name)
	}
	if (b.args >= 0 && len(args) != b.args) || (b.args < 0 && len(args) < -b.args) {
		return nil, fmt.Errorf("usage: arenad encode %s", b.usage)
	}
	return b.build(args)
}

func formatData(data []byte, format string) (string, error) {
	switch format {
	case FormatHex:
		return hex.EncodeToString(data), nil
	case FormatBase58:
		return base58.Encode(data), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func encodeUsage() string {
	usages := make([]string, 0, len(instructionBuilders))
	for _, b := range instructionBuilders {
		usages = append(usages, "  "+b.usage)
	}
	sort.Strings(usages)
	return strings.Join(usages, "\n")
}

func encodeCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "encode <instruction> [args...]",
		Short: "Print the request data for an instruction",
		Long: `
Encode an instruction as discriminator followed by its little-endian arguments.

Instructions:
` + encodeUsage() + `

Examples:
  arenad encode create_match 7
  arenad encode derby_server_update 3 collect_gold 4 --format base58
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := buildInstruction(args[0], args[1:])
			if err != nil {
				return err
			}
			data, err := types.EncodeInstruction(ix)
			if err != nil {
				return err
			}
			out, err := formatData(data, format)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", FormatHex, "Output format (hex|base58)")
	return cmd
}
