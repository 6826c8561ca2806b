// Package server exposes a local inspection endpoint for the running
// autolayout service: the current container tree as JSON and a live
// feed of dispatched decisions over a websocket.
package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"i3split/pkg/i3"
	"i3split/pkg/layout"
)

// Options configures the inspection server.
type Options struct {
	// Address to listen on, e.g. "127.0.0.1:9223".
	Address string
	// Credential enables basic auth when set ("user:pass").
	Credential string
	// SocketPath is handed to the transient manager connections the
	// tree endpoint opens. Empty means discover.
	SocketPath string
}

// DecisionRecord is one dispatched decision as published to clients.
type DecisionRecord struct {
	Node    int64  `json:"node"`
	Action  string `json:"action"`
	Command string `json:"command"`
}

// Server serves the inspection endpoints. Decisions are pushed into it
// by the service loop via Publish.
type Server struct {
	options  Options
	hub      *hub
	upgrader *websocket.Upgrader
}

// New creates an inspection server.
func New(options Options) *Server {
	return &Server{
		options: options,
		hub:     newHub(),
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  512,
			WriteBufferSize: 512,
		},
	}
}

// Publish broadcasts a dispatched decision to connected clients. Safe
// to call from the service goroutine while the server runs.
func (server *Server) Publish(decision layout.Decision) {
	server.hub.broadcast(DecisionRecord{
		Node:    decision.Node,
		Action:  decision.Action.String(),
		Command: decision.Command(),
	})
}

// Handler builds the full middleware-wrapped handler.
func (server *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/tree", gziphandler.GzipHandler(http.HandlerFunc(server.handleTree)))
	mux.HandleFunc("/events", server.handleEvents)

	handler := server.wrapHeaders(mux)
	if server.options.Credential != "" {
		handler = server.wrapBasicAuth(handler, server.options.Credential)
	}
	return server.wrapLogger(handler)
}

// Run serves until the listener fails.
func (server *Server) Run() error {
	log.Printf("Inspection server listening at %s", server.options.Address)
	return errors.Wrap(http.ListenAndServe(server.options.Address, server.Handler()), "inspection server failed")
}

// handleTree fetches a fresh container tree over a transient manager
// connection and writes it as JSON.
func (server *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	client, err := i3.Connect(server.options.SocketPath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	defer client.Close()

	root, err := client.GetTree()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(root); err != nil {
		log.Printf("Failed to write tree response: %v", err)
	}
}

// handleEvents upgrades to a websocket and streams decision records
// until the client goes away.
func (server *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := server.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	records := server.hub.subscribe()
	defer server.hub.unsubscribe(records)

	for record := range records {
		if err := conn.WriteJSON(record); err != nil {
			return
		}
	}
}
