package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/cookieboard/game/service"
)

const defaultAddr = "http://localhost:8080"

var errUsage = errors.New("usage")

// newApp builds the boardctl command tree
func newApp() *cli.Command {
	return &cli.Command{
		Name:  "boardctl",
		Usage: "play the Cookie & Milk board from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Value:   defaultAddr,
				Usage:   "base URL of the board server",
				Sources: cli.EnvVars("BOARD_ADDR"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print the current board",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return printText(ctx, cmd, http.MethodGet, "/12/board")
				},
			},
			{
				Name:  "reset",
				Usage: "clear the board",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if _, err := clientFor(cmd).do(ctx, http.MethodPost, "/12/reset"); err != nil {
						return err
					}
					fmt.Fprintln(cmd.Root().Writer, "Board reset.")
					return nil
				},
			},
			{
				Name:  "random",
				Usage: "fill the board from the seeded generator",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return printText(ctx, cmd, http.MethodGet, "/12/random-board")
				},
			},
			{
				Name:      "place",
				Usage:     "drop a token into a column",
				ArgsUsage: "<cookie|milk> <column>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 2 {
						return fmt.Errorf("%w: place <cookie|milk> <column>", errUsage)
					}
					path := fmt.Sprintf("/12/place/%s/%s",
						url.PathEscape(cmd.Args().Get(0)), url.PathEscape(cmd.Args().Get(1)))
					return printText(ctx, cmd, http.MethodPost, path)
				},
			},
			{
				Name:  "snapshot",
				Usage: "print the board status, capacities and move count",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					body, err := clientFor(cmd).do(ctx, http.MethodGet, "/api/board")
					if err != nil {
						return err
					}
					var snapshot service.BoardSnapshot
					if err := json.Unmarshal(body, &snapshot); err != nil {
						return fmt.Errorf("decoding snapshot: %w", err)
					}
					writeSnapshot(cmd.Root().Writer, &snapshot)
					return nil
				},
			},
		},
	}
}

func printText(ctx context.Context, cmd *cli.Command, method, path string) error {
	body, err := clientFor(cmd).do(ctx, method, path)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.Root().Writer, string(body))
	return nil
}

func writeSnapshot(w io.Writer, s *service.BoardSnapshot) {
	fmt.Fprint(w, s.Text)
	fmt.Fprintf(w, "status: %s\n", s.Status)
	if s.Winner != "" {
		fmt.Fprintf(w, "winner: %s\n", s.Winner)
	}
	fmt.Fprintf(w, "moves: %d\n", s.Moves)
}

// boardClient talks to the board server's HTTP routes
type boardClient struct {
	baseURL    string
	httpClient *http.Client
}

func clientFor(cmd *cli.Command) *boardClient {
	return &boardClient{
		baseURL:    strings.TrimRight(cmd.String("addr"), "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// do sends a request and returns the body; non-2xx responses become errors
func (c *boardClient) do(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("%s %s: %d: %s", method, path, resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("%s %s: %d", method, path, resp.StatusCode)
	}

	return body, nil
}
