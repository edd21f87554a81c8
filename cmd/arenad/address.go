package main

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arenaledger/arena-node/x/arena/types"
)

// AddressOutput is one derived record address.
type AddressOutput struct {
	Kind    string `json:"kind" yaml:"kind"`
	Address string `json:"address" yaml:"address"`
	Bump    uint8  `json:"bump" yaml:"bump"`
}

func addressCmd(v *viper.Viper) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "address",
		Short: "Print derived record addresses",
		Long: `
Print the address and bump a record is stored under.

Examples:
  arenad address match 7
  arenad address player 7 <player>
  arenad address derby 3
  arenad address session <authority> <signer>
`,
	}

	derive := func(kind string, argc int, fn func(d types.Directory, args []string) (types.Address, error)) *cobra.Command {
		use := map[string]string{
			"match":   "match <match_id>",
			"player":  "player <match_id> <player>",
			"derby":   "derby <race_id>",
			"session": "session <authority> <signer>",
		}[kind]
		return &cobra.Command{
			Use:   use,
			Short: fmt.Sprintf("Derive the %s record address", kind),
			Args:  cobra.ExactArgs(argc),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(v)
				if err != nil {
					return err
				}
				directory, err := types.NewDirectory(cfg.ProgramID)
				if err != nil {
					return err
				}
				addr, err := fn(directory, args)
				if err != nil {
					return err
				}
				return printOutput(cmd.OutOrStdout(), AddressOutput{Kind: kind, Address: addr.Key.String(), Bump: addr.Bump}, outputFormat)
			},
		}
	}

	cmd.AddCommand(
		derive("match", 1, func(d types.Directory, args []string) (types.Address, error) {
			id, err := argUint(args[0], 64)
			if err != nil {
				return types.Address{}, err
			}
			return d.MatchAddress(id)
		}),
		derive("player", 2, func(d types.Directory, args []string) (types.Address, error) {
			id, err := argUint(args[0], 64)
			if err != nil {
				return types.Address{}, err
			}
			player, err := solana.PublicKeyFromBase58(args[1])
			if err != nil {
				return types.Address{}, fmt.Errorf("invalid player: %w", err)
			}
			return d.PlayerStateAddress(id, player)
		}),
		derive("derby", 1, func(d types.Directory, args []string) (types.Address, error) {
			id, err := argUint(args[0], 64)
			if err != nil {
				return types.Address{}, err
			}
			return d.DerbyAddress(id)
		}),
		derive("session", 2, func(d types.Directory, args []string) (types.Address, error) {
			authority, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return types.Address{}, fmt.Errorf("invalid authority: %w", err)
			}
			signer, err := solana.PublicKeyFromBase58(args[1])
			if err != nil {
				return types.Address{}, fmt.Errorf("invalid signer: %w", err)
			}
			return d.SessionAddress(authority, signer)
		}),
	)

	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", OutputFormatYAML, "Output format (yaml|json)")
	return cmd
}
