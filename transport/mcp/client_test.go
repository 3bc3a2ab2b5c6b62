package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/cookieboard/api"
	"github.com/wricardo/mcp-training/cookieboard/game/service"
)

func newBoardAPI(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(api.NewServer(service.NewBoardService(), nil))
	t.Cleanup(server.Close)
	return server
}

func callTool(name string, args map[string]interface{}) mcp.CallToolRequest {
	if args == nil {
		args = map[string]interface{}{}
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("Expected result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080/"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != "http://localhost:8080" {
		t.Errorf("Expected trailing slash trimmed, got %s", client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	if _, err := client.apiCall(context.Background(), "GET", "/12/board", nil); err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.apiCall(context.Background(), "GET", "/12/board", nil)
	if err == nil || err.Error() != "GET /12/board: 500" {
		t.Errorf("Expected %q, got %v", "GET /12/board: 500", err)
	}
}

func TestClient_apiCall_ErrorText(t *testing.T) {
	server := newBoardAPI(t)
	client := NewClient(server.URL)

	_, err := client.apiCall(context.Background(), "POST", "/12/place/tea/1", nil)
	want := `POST /12/place/tea/1: 400: validation error: invalid team: "tea"`
	if err == nil || err.Error() != want {
		t.Errorf("Expected %q, got %v", want, err)
	}
}

func TestPlaceTokenFlow(t *testing.T) {
	server := newBoardAPI(t)
	client := NewClient(server.URL)
	ctx := context.Background()

	var text string
	for i := 0; i < 4; i++ {
		result, err := client.handlePlaceToken(ctx, callTool("place_token", map[string]interface{}{
			"team":   "cookie",
			"column": float64(1),
		}))
		if err != nil {
			t.Fatalf("handlePlaceToken failed: %v", err)
		}
		if result.IsError {
			t.Fatalf("place %d returned error: %s", i+1, resultText(t, result))
		}
		text = resultText(t, result)
	}

	if !strings.HasSuffix(text, "🍪 wins!\n") {
		t.Errorf("Expected cookie win, got:\n%s", text)
	}

	result, err := client.handlePlaceToken(ctx, callTool("place_token", map[string]interface{}{
		"team":   "milk",
		"column": float64(2),
	}))
	if err != nil {
		t.Fatalf("handlePlaceToken failed: %v", err)
	}
	if !result.IsError || !strings.Contains(resultText(t, result), "game over") {
		t.Errorf("Expected game over error, got: %s", resultText(t, result))
	}
}

func TestPlaceTokenValidation(t *testing.T) {
	server := newBoardAPI(t)
	client := NewClient(server.URL)
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"missing column", map[string]interface{}{"team": "milk"}},
		{"fractional column", map[string]interface{}{"team": "milk", "column": 1.5}},
		{"column out of range", map[string]interface{}{"team": "milk", "column": float64(9)}},
		{"unknown team", map[string]interface{}{"team": "tea", "column": float64(1)}},
		{"missing team", map[string]interface{}{"column": float64(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := client.handlePlaceToken(ctx, callTool("place_token", tt.args))
			if err != nil {
				t.Fatalf("handlePlaceToken failed: %v", err)
			}
			if !result.IsError {
				t.Errorf("Expected tool error, got: %s", resultText(t, result))
			}
		})
	}
}

func TestResetAndSnapshot(t *testing.T) {
	server := newBoardAPI(t)
	client := NewClient(server.URL)
	ctx := context.Background()

	if _, err := client.handleRandomizeBoard(ctx, callTool("randomize_board", nil)); err != nil {
		t.Fatalf("handleRandomizeBoard failed: %v", err)
	}

	result, err := client.handleResetBoard(ctx, callTool("reset_board", nil))
	if err != nil {
		t.Fatalf("handleResetBoard failed: %v", err)
	}
	if !strings.HasPrefix(resultText(t, result), "Board reset.") {
		t.Errorf("Unexpected reset output: %s", resultText(t, result))
	}

	result, err = client.handleSnapshot(ctx, callTool("board_snapshot", nil))
	if err != nil {
		t.Fatalf("handleSnapshot failed: %v", err)
	}

	text := resultText(t, result)
	for _, field := range []string{"Status: undecided", "Moves: 0", "1=4 2=4 3=4 4=4"} {
		if !strings.Contains(text, field) {
			t.Errorf("Expected %q in snapshot output, got:\n%s", field, text)
		}
	}
}

func TestRandomizeIsReproducible(t *testing.T) {
	server := newBoardAPI(t)
	client := NewClient(server.URL)
	ctx := context.Background()

	boards := make([]string, 2)
	for i := range boards {
		if _, err := client.handleResetBoard(ctx, callTool("reset_board", nil)); err != nil {
			t.Fatalf("handleResetBoard failed: %v", err)
		}
		result, err := client.handleRandomizeBoard(ctx, callTool("randomize_board", nil))
		if err != nil {
			t.Fatalf("handleRandomizeBoard failed: %v", err)
		}
		boards[i] = resultText(t, result)
	}

	if boards[0] != boards[1] {
		t.Errorf("Expected identical boards:\n%s\nvs\n%s", boards[0], boards[1])
	}
}

func TestFormatSnapshot(t *testing.T) {
	snap := &service.BoardSnapshot{
		Status:   "won",
		Winner:   "milk",
		Moves:    7,
		Capacity: map[int]int{1: 0, 2: 3, 3: 4, 4: 2},
		Text:     "board\n",
	}

	result := formatSnapshot(snap)

	for _, field := range []string{"Status: won", "Winner: milk", "Moves: 7", "1=0 2=3 3=4 4=2"} {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestRulesMentionGlyphs(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handleRules(context.Background(), callTool("board_rules", nil))
	if err != nil {
		t.Fatalf("handleRules failed: %v", err)
	}

	text := resultText(t, result)
	for _, glyph := range []string{"⬛", "🍪", "🥛", "⬜"} {
		if !strings.Contains(text, glyph) {
			t.Errorf("Expected glyph %s in rules", glyph)
		}
	}
}
