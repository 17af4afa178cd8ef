package main

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dreamware/shardq/internal/api"
	"github.com/dreamware/shardq/internal/coordinator"
)

// server wires the coordinator to the HTTP surface.
type server struct {
	coord  *coordinator.Coordinator
	logger *slog.Logger
}

func newServer(coord *coordinator.Coordinator, logger *slog.Logger) *server {
	return &server{coord: coord, logger: logger}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /records", s.handleSave)
	mux.HandleFunc("POST /query", s.handleQuery)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("POST /shards/toggle", s.handleToggle)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func (s *server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req api.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if len(req.Record) == 0 {
		http.Error(w, "empty record", http.StatusBadRequest)
		return
	}
	s.coord.Save(req.Record)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req api.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	q, err := req.Compile()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := s.coord.Query(r.Context(), q)
	if err != nil {
		s.logger.Error("query failed", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, api.QueryResponse{Records: page, Count: len(page)})
}

func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, api.StatusResponse{
		Replication: s.coord.ReplicationFactor(),
		Shards:      s.coord.Status(),
	})
}

func (s *server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req api.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if err := s.coord.SetShardOnline(req.Shard, req.Online); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encoding response", http.StatusInternalServerError)
	}
}
