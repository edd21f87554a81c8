package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gorilla/mux"

	"github.com/arenaledger/arena-node/relay/indexer"
	"github.com/arenaledger/arena-node/relay/ledger"
)

const maxRequestBody = 64 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func idVar(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleMatch handles GET /api/v1/matches/{id}
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "match id must be an unsigned integer")
		return
	}

	m, found, err := s.ledger.Match(r.Context(), id)
	if err != nil {
		s.logger.Error().Err(err).Uint64("match_id", id).Msg("match query failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "match not found")
		return
	}
	writeJSON(w, http.StatusOK, QueryResponse{Data: m, Height: s.ledger.Height()})
}

// handlePlayerState handles GET /api/v1/matches/{id}/players/{player}
func (s *Server) handlePlayerState(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "match id must be an unsigned integer")
		return
	}
	player, err := solana.PublicKeyFromBase58(mux.Vars(r)["player"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "player must be a base58 public key")
		return
	}

	ps, found, err := s.ledger.PlayerState(r.Context(), id, player)
	if err != nil {
		s.logger.Error().Err(err).Uint64("match_id", id).Msg("player state query failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "player state not found")
		return
	}
	writeJSON(w, http.StatusOK, QueryResponse{Data: ps, Height: s.ledger.Height()})
}

// handleRace handles GET /api/v1/races/{id}
func (s *Server) handleRace(w http.ResponseWriter, r *http.Request) {
	id, err := idVar(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "race id must be an unsigned integer")
		return
	}

	d, found, err := s.ledger.Derby(r.Context(), id)
	if err != nil {
		s.logger.Error().Err(err).Uint64("race_id", id).Msg("race query failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "race not found")
		return
	}
	writeJSON(w, http.StatusOK, QueryResponse{Data: d, Height: s.ledger.Height()})
}

func parseFilter(r *http.Request) (indexer.Filter, error) {
	q := r.URL.Query()
	f := indexer.Filter{Status: q.Get("status"), Player: q.Get("player")}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return f, errors.New("limit must be a non-negative integer")
		}
		f.Limit = n
	}
	return f, nil
}

// handleMatchOutcomes handles GET /api/v1/outcomes/matches?status=<status>&player=<key>&limit=<n>
func (s *Server) handleMatchOutcomes(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := s.index.MatchOutcomes(r.Context(), f)
	if err != nil {
		s.logger.Error().Err(err).Msg("match outcome query failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, QueryResponse{Data: rows, Height: s.ledger.Height()})
}

// handleRaceOutcomes handles GET /api/v1/outcomes/races?status=<status>&player=<key>&limit=<n>
func (s *Server) handleRaceOutcomes(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := s.index.RaceOutcomes(r.Context(), f)
	if err != nil {
		s.logger.Error().Err(err).Msg("race outcome query failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, QueryResponse{Data: rows, Height: s.ledger.Height()})
}

// handleSubmitRequest handles POST /api/v1/requests. A request the engine
// rejects still answers 200; the result carries its code.
func (s *Server) handleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	var env ledger.Envelope
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&env); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req, err := env.Request()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.submitter.Submit(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, ledger.ErrProducerStopped):
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, err.Error())
		return
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, QueryResponse{Data: res, Height: res.Height})
}
