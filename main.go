// Command cookieboard starts the Cookie & Milk board server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing the board routes, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, debug logging, version output, and optional
// ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/cookieboard/api"
	"github.com/wricardo/mcp-training/cookieboard/game/service"
	"github.com/wricardo/mcp-training/cookieboard/transport/mcp"
	"github.com/wricardo/mcp-training/cookieboard/transport/websocket"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Cookie & Milk Board Server"
)

// Configuration flags control how the server starts and which services are enabled.
var (
	port         = flag.Int("port", getPortDefault(), "HTTP server port")
	host         = flag.String("host", "localhost", "HTTP server host")
	debug        = flag.Bool("debug", false, "Enable debug logging")
	version      = flag.Bool("version", false, "Show version information")
	ngrokEnabled = flag.Bool("ngrok", false, "Enable ngrok tunnel")
	ngrokAuth    = flag.String("ngrok-auth", "", "Ngrok auth token (or use NGROK_AUTHTOKEN env var)")
	ngrokDomain  = flag.String("ngrok-domain", "", "Custom ngrok domain (optional)")
)

// getPortDefault returns the default HTTP port.
// It first honors the BOARD_PORT environment variable, then falls back to 8080.
func getPortDefault() int {
	if v := os.Getenv("BOARD_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			return p
		}
	}
	return 8080
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  server, http     Run HTTP server with board routes, WebSocket, and MCP endpoint (default)\n")
		fmt.Fprintf(os.Stderr, "  stdio-mcp        Run MCP stdio server against the board at -host/-port\n")
		fmt.Fprintf(os.Stderr, "  mcp-stdio        Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "  mcp              Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                    # Run HTTP server on default port 8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -port 9090         # Run HTTP server on port 9090\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s stdio-mcp          # Run MCP stdio server\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s mcp -port 9090     # Run MCP stdio server against the board server on port 9090 (internal board if none answers)\n", os.Args[0])
	}
}

// parseModeAndFlags parses flags given before and after the mode word and
// returns the mode, "server" when none is given.
func parseModeAndFlags(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() == 0 {
		return "server", nil
	}

	mode := fs.Arg(0)
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return "", err
	}
	if fs.NArg() > 0 {
		return "", fmt.Errorf("unexpected arguments after mode %s: %v", mode, fs.Args())
	}
	return mode, nil
}

// main parses flags, initializes services, and starts the selected mode.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		// Only log if it's not a "file not found" error
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	mode, err := parseModeAndFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	// Show version if requested
	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	// Setup logging
	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	log.Printf("Starting %s v%s (mode: %s)", AppName, Version, mode)

	// The process owns exactly one board
	boardService := service.NewBoardService()

	switch mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		// Run MCP stdio server, sharing the board of a running HTTP server when there is one
		runStdioMCP(boardService)
		return

	case "server", "http":
		// Run HTTP server with board routes, WebSocket, and MCP endpoint
		runHTTPServer(boardService)

	default:
		log.Fatalf("Unknown mode: %s. Use 'server' (default) or 'stdio-mcp'", mode)
	}
}

// runHTTPServer starts the HTTP server with the board routes, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled (via flag or environment), it also provisions a public tunnel.
func runHTTPServer(boardService service.BoardService) {
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	addr := net.JoinHostPort(*host, strconv.Itoa(*port))
	mcpClient := mcp.NewClient(localBoardURL(*host, *port))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", api.NewServer(boardService, hub))
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("Board: http://%s/12/board", addr)
		log.Printf("WebSocket: ws://%s/ws", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if settings := loadTunnelSettings(); settings.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serveTunnel(ctx, settings, mainRouter)
		}()
	}

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
}

// tunnelSettings is the resolved ngrok configuration
type tunnelSettings struct {
	Enabled   bool
	AuthToken string
	Domain    string
}

// loadTunnelSettings merges the ngrok flags with their environment fallbacks.
// Flags win over NGROK_ENABLED, NGROK_AUTHTOKEN (or NGROK_AUTH_TOKEN) and NGROK_DOMAIN.
func loadTunnelSettings() tunnelSettings {
	settings := tunnelSettings{
		Enabled:   *ngrokEnabled,
		AuthToken: *ngrokAuth,
		Domain:    *ngrokDomain,
	}
	if !settings.Enabled {
		env := os.Getenv("NGROK_ENABLED")
		settings.Enabled = env == "true" || env == "1"
	}
	if settings.AuthToken == "" {
		settings.AuthToken = os.Getenv("NGROK_AUTHTOKEN")
	}
	if settings.AuthToken == "" {
		settings.AuthToken = os.Getenv("NGROK_AUTH_TOKEN")
	}
	if settings.Domain == "" {
		settings.Domain = os.Getenv("NGROK_DOMAIN")
	}
	return settings
}

// serveTunnel exposes handler through an ngrok endpoint until ctx is cancelled
func serveTunnel(ctx context.Context, settings tunnelSettings, handler http.Handler) {
	if settings.AuthToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	var opts []ngrokConfig.HTTPEndpointOption
	if settings.Domain != "" {
		opts = append(opts, ngrokConfig.WithDomain(settings.Domain))
		log.Printf("Using custom ngrok domain: %s", settings.Domain)
	}

	log.Println("Starting ngrok tunnel...")
	tun, err := ngrok.Listen(ctx, ngrokConfig.HTTPEndpoint(opts...), ngrok.WithAuthtoken(settings.AuthToken))
	if err != nil {
		log.Printf("Failed to start ngrok tunnel: %v", err)
		return
	}

	log.Printf("🚀 Ngrok tunnel established: %s", tun.URL())
	log.Printf("  Board (ngrok): %s/12/board", tun.URL())
	log.Printf("  WebSocket (ngrok): %s/ws", tun.URL())
	log.Printf("  MCP endpoint (ngrok): %s/mcp", tun.URL())

	// closing the tunnel is what ends http.Serve
	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Printf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	if err := http.Serve(tun, handler); err != nil && ctx.Err() == nil {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// mcpHandler feeds POSTed JSON-RPC messages to the MCP server
func mcpHandler(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// localBoardURL is the URL a local client uses to reach a server bound to host:port.
// Wildcard binds are reached through localhost.
func localBoardURL(host string, port int) string {
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(port))
}

// boardAPIAvailable reports whether a healthy board server answers at baseURL
func boardAPIAvailable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

// internalAPI is a loopback board server owned by stdio MCP mode
type internalAPI struct {
	URL    string
	server *http.Server
	hub    *websocket.Hub
}

// startInternalAPI serves boardService on a random loopback port
func startInternalAPI(boardService service.BoardService) (*internalAPI, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("listening on loopback: %w", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	internal := &internalAPI{
		URL:    "http://" + listener.Addr().String(),
		server: &http.Server{Handler: api.NewServer(boardService, hub)},
		hub:    hub,
	}

	go func() {
		if err := internal.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Internal HTTP server error: %v", err)
		}
	}()

	return internal, nil
}

// Close stops the internal server and its hub
func (a *internalAPI) Close(ctx context.Context) error {
	a.hub.Stop()
	return a.server.Shutdown(ctx)
}

// resolveBoardAPI picks the board the MCP tools drive. A server already
// answering at externalURL is reused so MCP and HTTP clients share one board;
// otherwise boardService is served internally. internal is nil when reused.
func resolveBoardAPI(externalURL string, boardService service.BoardService) (baseURL string, internal *internalAPI, err error) {
	if boardAPIAvailable(externalURL) {
		return externalURL, nil, nil
	}

	internal, err = startInternalAPI(boardService)
	if err != nil {
		return "", nil, err
	}
	return internal.URL, internal, nil
}

// runStdioMCP serves the MCP tools over stdio against the board at -host/-port,
// falling back to an internal board when no server is running there.
func runStdioMCP(boardService service.BoardService) {
	externalURL := localBoardURL(*host, *port)
	log.Printf("Looking for a board server at %s...", externalURL)

	baseURL, internal, err := resolveBoardAPI(externalURL, boardService)
	if err != nil {
		log.Fatalf("Failed to start internal board server: %v", err)
	}
	if internal != nil {
		log.Printf("No board server at %s, serving an internal board on %s", externalURL, baseURL)
	} else {
		log.Printf("Using board server at %s", baseURL)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Println("MCP stdio server ready")
	serveErr := server.ServeStdio(mcpClient.GetMCPServer())

	if internal != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := internal.Close(ctx); err != nil {
			log.Printf("Internal HTTP server shutdown error: %v", err)
		}
		cancel()
	}

	if serveErr != nil {
		log.Fatalf("MCP stdio server error: %v", serveErr)
	}
}
