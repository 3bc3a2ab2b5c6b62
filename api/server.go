package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/wricardo/mcp-training/cookieboard/game/engine"
	"github.com/wricardo/mcp-training/cookieboard/game/service"
	"github.com/wricardo/mcp-training/cookieboard/transport/websocket"
)

// Server represents the HTTP server for the board
type Server struct {
	service service.BoardService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil.
func NewServer(boardService service.BoardService, hub *websocket.Hub) *Server {
	s := &Server{
		service: boardService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	board := s.router.PathPrefix("/12").Subrouter()

	board.HandleFunc("/board", s.handleBoard).Methods("GET")
	board.HandleFunc("/reset", s.handleReset).Methods("POST")
	board.HandleFunc("/random-board", s.handleRandomBoard).Methods("GET")
	board.HandleFunc("/place/{team}/{column}", s.handlePlace).Methods("POST")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/board", s.handleSnapshot).Methods("GET")

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(text))
}

// statusFor maps a service error to its HTTP status code
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrState):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	text, err := s.service.Render(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondText(w, http.StatusOK, text)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Reset(r.Context()); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	log.Printf("[RESET] board reset")
	if s.hub != nil {
		s.hub.BroadcastEvent(websocket.EventBoardReset)
	}
	s.broadcast(r)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleRandomBoard(w http.ResponseWriter, r *http.Request) {
	text, err := s.service.Randomize(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	log.Printf("[RANDOM] board randomized")
	s.broadcast(r)
	respondText(w, http.StatusOK, text)
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	team := vars["team"]

	column, err := strconv.Atoi(vars["column"])
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("%v: %q is not a number", engine.ErrInvalidColumn, vars["column"]))
		return
	}

	text, err := s.service.Place(r.Context(), team, column)
	if err != nil {
		log.Printf("[PLACE] team=%s column=%d REJECTED: %v", team, column, err)
		respondError(w, statusFor(err), err.Error())
		return
	}

	log.Printf("[PLACE] team=%s column=%d OK", team, column)
	s.broadcast(r)
	respondText(w, http.StatusOK, text)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.Snapshot(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

// broadcast pushes the current board to WebSocket clients
func (s *Server) broadcast(r *http.Request) {
	if s.hub == nil {
		return
	}

	snap, err := s.service.Snapshot(r.Context())
	if err != nil {
		log.Printf("Skipping WebSocket broadcast: %v", err)
		return
	}
	s.hub.BroadcastBoard(snap)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "WebSocket not available", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.service.Render(r.Context()); err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
