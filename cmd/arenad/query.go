package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/arenaledger/arena-node/relay/store"
	"github.com/arenaledger/arena-node/x/arena/types"
)

// Output formats
const (
	OutputFormatYAML = "yaml"
	OutputFormatJSON = "json"
)

// QueryResponse represents the standard query response format from HTTP API
type QueryResponse struct {
	Data   json.RawMessage `json:"data"`
	Height int64           `json:"height"`
}

// ErrorResponse represents an error response from HTTP API
type ErrorResponse struct {
	Error string `json:"error"`
}

// QueryOutput wraps a decoded record with the height it was read at.
type QueryOutput struct {
	Height int64       `yaml:"height" json:"height"`
	Data   interface{} `yaml:"data" json:"data"`
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

func queryCmd(v *viper.Viper) *cobra.Command {
	var (
		outputFormat string
		endpoint     string
	)

	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Query a running arenad over its HTTP API",
	}

	// run fetches path from the query server and prints it decoded into out.
	run := func(cmd *cobra.Command, path string, out interface{}) error {
		base := endpoint
		if base == "" {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			base = fmt.Sprintf("http://localhost:%d", cfg.QueryServerPort)
		}
		resp, err := fetch(base + path)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(resp.Data, out); err != nil {
			return fmt.Errorf("failed to unmarshal response data: %w", err)
		}
		return printOutput(cmd.OutOrStdout(), QueryOutput{Height: resp.Height, Data: out}, outputFormat)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "match <match_id>",
			Short: "Query a match record",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := argUint(args[0], 64)
				if err != nil {
					return err
				}
				return run(cmd, fmt.Sprintf("/api/v1/matches/%d", id), &types.ArenaMatch{})
			},
		},
		&cobra.Command{
			Use:   "player <match_id> <player>",
			Short: "Query a player input record",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := argUint(args[0], 64)
				if err != nil {
					return err
				}
				return run(cmd, fmt.Sprintf("/api/v1/matches/%d/players/%s", id, url.PathEscape(args[1])), &types.PlayerState{})
			},
		},
		&cobra.Command{
			Use:   "race <race_id>",
			Short: "Query a derby race record",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := argUint(args[0], 64)
				if err != nil {
					return err
				}
				return run(cmd, fmt.Sprintf("/api/v1/races/%d", id), &types.DerbyRace{})
			},
		},
		&cobra.Command{
			Use:   "outcomes <matches|races>",
			Short: "List indexed outcomes",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				switch args[0] {
				case "matches":
					return run(cmd, "/api/v1/outcomes/matches", &[]store.MatchOutcome{})
				case "races":
					return run(cmd, "/api/v1/outcomes/races", &[]store.RaceOutcome{})
				default:
					return fmt.Errorf("unknown outcome kind %q", args[0])
				}
			},
		},
	)

	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", OutputFormatJSON, "Output format (json|yaml)")
	cmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Query server base URL (default: http://localhost:<port>)")
	return cmd
}

func fetch(target string) (QueryResponse, error) {
	var queryResp QueryResponse

	resp, err := httpClient.Get(target)
	if err != nil {
		return queryResp, fmt.Errorf("failed to query %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return queryResp, fmt.Errorf("server returned status %d", resp.StatusCode)
		}
		return queryResp, fmt.Errorf("server error: %s", errResp.Error)
	}

	if err := json.NewDecoder(resp.Body).Decode(&queryResp); err != nil {
		return queryResp, fmt.Errorf("failed to decode response: %w", err)
	}
	return queryResp, nil
}

// printOutput prints the output in the specified format
func printOutput(w io.Writer, data interface{}, format string) error {
	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return encoder.Encode(data)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
