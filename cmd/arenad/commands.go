package main

import (
	"fmt"

	sdkversion "github.com/cosmos/cosmos-sdk/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arenaledger/arena-node/relay/config"
)

func InitRootCmd(rootCmd *cobra.Command, v *viper.Viper) {
	rootCmd.AddCommand(initCmd(v))
	rootCmd.AddCommand(startCmd(v))
	rootCmd.AddCommand(replayCmd(v))
	rootCmd.AddCommand(encodeCmd())
	rootCmd.AddCommand(addressCmd(v))
	rootCmd.AddCommand(queryCmd(v))
	rootCmd.AddCommand(versionCmd())
}

func initCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default config to <home>/config/arenad_config.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			if err := config.Save(&cfg, cfg.NodeHome); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", cfg.NodeHome)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print arenad version info",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:       %s\n", sdkversion.Name)
			fmt.Fprintf(out, "App Name:   %s\n", sdkversion.AppName)
			fmt.Fprintf(out, "Version:    %s\n", sdkversion.Version)
			fmt.Fprintf(out, "Commit:     %s\n", sdkversion.Commit)
			fmt.Fprintf(out, "Build Tags: %s\n", sdkversion.BuildTags)
		},
	}
}
