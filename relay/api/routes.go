package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

const apiV1 = "/api/v1"

// setupRoutes configures all HTTP routes for the API server.
// Routes hang off the root router so a method mismatch answers 405, not 404.
func (s *Server) setupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)

	// Health check endpoint
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	// API v1 endpoints
	r.HandleFunc(apiV1+"/matches/{id}", s.handleMatch).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/matches/{id}/players/{player}", s.handlePlayerState).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/races/{id}", s.handleRace).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/outcomes/matches", s.handleMatchOutcomes).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/outcomes/races", s.handleRaceOutcomes).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/requests", s.handleSubmitRequest).Methods(http.MethodPost)

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics).Methods(http.MethodGet)
	}

	return r
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
}
