// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/poiesic/reach/ingestion"
	"github.com/poiesic/reach/search"
	"github.com/poiesic/reach/storage"
)

// Server exposes the contact store and search pipeline over HTTP.
type Server struct {
	router       *mux.Router
	http         *http.Server
	contacts     storage.ContactRepository
	pipeline     *search.Pipeline
	capture      *ingestion.Pipeline
	agentEnabled bool
	logger       *slog.Logger
}

// NewServer wires the API routes. The capture pipeline may be nil, in
// which case POST /api/contacts returns 503.
func NewServer(
	cfg *Config,
	contacts storage.ContactRepository,
	pipeline *search.Pipeline,
	capture *ingestion.Pipeline,
) *Server {
	s := &Server{
		router:       mux.NewRouter(),
		contacts:     contacts,
		pipeline:     pipeline,
		capture:      capture,
		agentEnabled: cfg.AgentEnabled,
		logger:       slog.Default().With("component", "httpapi"),
	}

	s.routes()

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/search", s.handleSearch).Methods(http.MethodPost)
	api.HandleFunc("/voice-search", s.handleVoiceSearch).Methods(http.MethodPost)

	api.HandleFunc("/contacts", s.handleListContacts).Methods(http.MethodGet)
	api.HandleFunc("/contacts", s.handleCreateContact).Methods(http.MethodPost)
	api.HandleFunc("/contacts/{id}", s.handleGetContact).Methods(http.MethodGet)
	api.HandleFunc("/contacts/{id}", s.handlePatchContact).Methods(http.MethodPut, http.MethodPatch)
	api.HandleFunc("/contacts/{id}", s.handleDeleteContact).Methods(http.MethodDelete)

	api.HandleFunc("/tags", s.handleTags).Methods(http.MethodGet)
}

// Handler returns the underlying router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts serving requests. Blocks until Shutdown or failure.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", "addr", s.http.Addr)
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
