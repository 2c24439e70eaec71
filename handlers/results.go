// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-runoff/cliparse"
	"github.com/danielhkuo/quickly-runoff/middleware"
	"github.com/danielhkuo/quickly-runoff/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetElection handles GET /elections/:slug
// Returns election details and candidates, but NOT results (results are sealed until closed)
func (h *ResultsHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	election, err := getElectionBySlug(h.db, shareSlug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	candidates, err := listCandidates(h.db, election.ID)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElectionWithCandidates{
		Election:   election,
		Candidates: candidates,
	})
}

// GetResults handles GET /elections/:slug/results
// Returns 403 while the election is open, the final snapshot once closed
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	election, err := getElectionBySlug(h.db, shareSlug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Results are sealed while the election is open
	if election.Status != models.StatusClosed {
		middleware.ErrorResponse(w, http.StatusForbidden, "Results are hidden until election is closed")
		return
	}

	if election.FinalSnapshotID == nil {
		slog.Error("closed election has no snapshot", "slug", shareSlug)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Results not available")
		return
	}

	var payloadJSON string
	err = h.db.QueryRow(`
		SELECT payload FROM result_snapshot WHERE id = $1
	`, *election.FinalSnapshotID).Scan(&payloadJSON)
	if err != nil {
		slog.Error("failed to query snapshot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var payload snapshotPayload
	if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
		slog.Error("failed to parse snapshot payload", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}

	candidates, err := listCandidates(h.db, election.ID)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	ballotCount, err := countBallots(h.db, election.ID)
	if err != nil {
		slog.Error("failed to count ballots for results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp := models.ResultsResponse{
		Election:    election,
		Candidates:  candidates,
		Rounds:      payload.Rounds,
		BallotCount: ballotCount,
	}
	for i := range candidates {
		if payload.Winner != "" && candidates[i].Name == payload.Winner {
			resp.Winner = &candidates[i]
		}
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetBallotCount handles GET /elections/:slug/ballot-count
// Returns the number of ballots submitted (visible even while open)
func (h *ResultsHandler) GetBallotCount(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	var electionID string
	err := h.db.QueryRow(`
		SELECT id FROM election WHERE share_slug = $1
	`, shareSlug).Scan(&electionID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	count, err := countBallots(h.db, electionID)
	if err != nil {
		slog.Error("failed to count ballots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BallotCountResponse{BallotCount: count})
}
