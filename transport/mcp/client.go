package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/cookieboard/game/engine"
	"github.com/wricardo/mcp-training/cookieboard/game/service"
)

// Client is a thin MCP client that proxies to the HTTP API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the HTTP API at baseURL
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Cookie & Milk Board",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Cookie & Milk Board - MCP Interface

A 4x4 drop-token board surrounded by walls. Two teams, cookie (🍪) and milk (🥛),
drop tokens into columns 1-4; tokens fall to the lowest free cell.
Four of the same token in a row, column or diagonal wins.

AVAILABLE TOOLS:
- show_board: Render the board
- place_token: Drop a token (team: cookie|milk, column: 1-4)
- reset_board: Start over
- randomize_board: Fill the board from the seeded generator
- board_snapshot: Capacities, status and move count
- board_rules: Full rules`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "show_board",
		Description: "Render the current board, including the result line once the game is decided",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleShowBoard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_board",
		Description: "Reset the board to empty and reseed the random generator",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleResetBoard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "randomize_board",
		Description: "Fill every interior cell from the seeded generator. Reproducible right after a reset.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleRandomizeBoard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_token",
		Description: "Drop a token into a column",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"team": map[string]interface{}{
					"type":        "string",
					"enum":        []string{engine.TeamCookie, engine.TeamMilk},
					"description": "Team placing the token",
				},
				"column": map[string]interface{}{
					"type":        "integer",
					"minimum":     engine.FirstColumn,
					"maximum":     engine.LastColumn,
					"description": "1-based column number",
				},
			},
			Required: []string{"team", "column"},
		},
	}, c.handlePlaceToken)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_snapshot",
		Description: "Get column capacities, game status and move count",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleSnapshot)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_rules",
		Description: "Get the rules and glyph legend",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleRules)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

// apiCall performs the request and returns the raw body. When result is
// non-nil the body is also decoded into it. Non-2xx responses become
// "METHOD path: status: message" errors, the same text boardctl prints.
func (c *Client) apiCall(ctx context.Context, method, path string, result interface{}) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return "", fmt.Errorf("%s %s: %d: %s", method, path, resp.StatusCode, errResp.Error)
		}
		return "", fmt.Errorf("%s %s: %d", method, path, resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return "", err
		}
	}

	return string(body), nil
}

// Tool handlers

func (c *Client) handleShowBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	board, err := c.apiCall(ctx, "GET", "/12/board", nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(board), nil
}

func (c *Client) handleResetBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, err := c.apiCall(ctx, "POST", "/12/reset", nil); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	board, err := c.apiCall(ctx, "GET", "/12/board", nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Board reset.\n\n" + board), nil
}

func (c *Client) handleRandomizeBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	board, err := c.apiCall(ctx, "GET", "/12/random-board", nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(board), nil
}

func (c *Client) handlePlaceToken(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	team, _ := args["team"].(string)
	if team == "" {
		return mcp.NewToolResultError("team is required (cookie or milk)"), nil
	}

	column, ok := intArg(args["column"])
	if !ok {
		return mcp.NewToolResultError("column must be an integer between 1 and 4"), nil
	}

	board, err := c.apiCall(ctx, "POST", fmt.Sprintf("/12/place/%s/%d", url.PathEscape(team), column), nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(board), nil
}

func (c *Client) handleSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var snap service.BoardSnapshot
	if _, err := c.apiCall(ctx, "GET", "/api/board", &snap); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSnapshot(&snap)), nil
}

func (c *Client) handleRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rules := fmt.Sprintf(`Cookie & Milk - Rules

BOARD:
%s empty cell   %s cookie   %s milk   %s wall
The playable area is 4x4, framed by walls on the left, right and bottom.

MOVES:
• place_token drops a token into column %d-%d; it lands on the lowest empty cell
• Either team may move at any time, turns are not enforced
• A full column rejects further tokens

WINNING:
• Four of the same token in a row, a column or either long diagonal wins
• A full board without such a line ends with "No winner."
• After the game ends every placement is rejected until reset_board

RANDOM FILL:
• randomize_board fills all 16 cells and locks the board
• Right after reset_board the fill is always the same`,
		engine.EmptyGlyph, engine.CookieGlyph, engine.MilkGlyph, engine.WallGlyph,
		engine.FirstColumn, engine.LastColumn)

	return mcp.NewToolResultText(rules), nil
}

// intArg accepts JSON numbers and numeric strings
func intArg(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func formatSnapshot(snap *service.BoardSnapshot) string {
	var b strings.Builder

	b.WriteString(snap.Text)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Status: %s\n", snap.Status)
	if snap.Winner != "" {
		fmt.Fprintf(&b, "Winner: %s\n", snap.Winner)
	}
	fmt.Fprintf(&b, "Moves: %d\n", snap.Moves)

	b.WriteString("Free cells per column:")
	for col := engine.FirstColumn; col <= engine.LastColumn; col++ {
		fmt.Fprintf(&b, " %d=%d", col, snap.Capacity[col])
	}
	b.WriteString("\n")

	return b.String()
}
