// Package api exposes the current display state to external renderers
// over HTTP and websocket. It mirrors frames the render loop publishes;
// it never drains the producer channels itself, so the core stays
// single-consumer.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/bryanchriswhite/quebar/internal/display"
	"github.com/bryanchriswhite/quebar/internal/logger"
)

// Server represents the status HTTP server
type Server struct {
	router   *mux.Router
	upgrader websocket.Upgrader

	mu          sync.RWMutex
	state       display.State
	subscribers map[chan display.State]struct{}
}

// NewServer creates a new status server
func NewServer() *Server {
	s := &Server{
		router: mux.NewRouter(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // local status endpoint, any origin is fine
			},
		},
		subscribers: make(map[chan display.State]struct{}),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/status", s.handleGetStatus).Methods("GET")
	api.HandleFunc("/status/stream", s.handleStatusStream)
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Start starts the HTTP server
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logger.WithComponent("api").Info().Int("port", port).Msg("status server listening")
	return http.ListenAndServe(addr, s.router)
}

// Handler returns the underlying HTTP handler (used by tests).
func (s *Server) Handler() http.Handler {
	return s.router
}

// Publish records the most recently rendered frame and pushes it to
// stream subscribers. Called once per render frame; slow subscribers
// miss intermediate frames rather than slowing the render loop down.
func (s *Server) Publish(state display.State) {
	s.mu.Lock()
	s.state = state
	for sub := range s.subscribers {
		select {
		case sub <- state:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Server) subscribe() chan display.State {
	ch := make(chan display.State, 1)
	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *Server) unsubscribe(ch chan display.State) {
	s.mu.Lock()
	delete(s.subscribers, ch)
	s.mu.Unlock()
}

func (s *Server) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

func (s *Server) handleStatusStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithComponent("api").Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ch := s.subscribe()
	defer s.unsubscribe(ch)

	// Send the current frame immediately so clients do not wait for the
	// next repaint to draw something.
	s.mu.RLock()
	current := s.state
	s.mu.RUnlock()
	if err := conn.WriteJSON(current); err != nil {
		return
	}

	// Read pump: clients never send data, but reading is how we notice
	// the peer going away between frames.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case state := <-ch:
			if err := conn.WriteJSON(state); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
