// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-runoff/auth"
	"github.com/danielhkuo/quickly-runoff/cliparse"
	"github.com/danielhkuo/quickly-runoff/db"
	"github.com/danielhkuo/quickly-runoff/irv"
	"github.com/danielhkuo/quickly-runoff/middleware"
	"github.com/danielhkuo/quickly-runoff/models"
)

type ElectionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewElectionHandler(db *sql.DB, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{db: db, cfg: cfg}
}

// authorize checks the X-Admin-Key header for the election in the path and
// returns its ID. It writes the error response itself.
func (h *ElectionHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return "", false
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(electionID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return "", false
	}
	return electionID, true
}

// CreateElection handles POST /elections
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.CreatorName = strings.TrimSpace(req.CreatorName)
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.CreatorName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "creator_name is required")
		return
	}

	electionID := auth.NewID()
	adminKey := auth.GenerateAdminKey(electionID, h.cfg.AdminKeySalt)

	_, err := h.db.Exec(`
		INSERT INTO election (id, title, description, creator_name, method, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, electionID, req.Title, req.Description, req.CreatorName, models.MethodIRV, models.StatusDraft, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	slog.Info("election created", "election_id", electionID, "creator", req.CreatorName)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateElectionResponse{
		ElectionID: electionID,
		AdminKey:   adminKey,
	})
}

// AddCandidate handles POST /elections/:id/candidates
func (h *ElectionHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	electionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	label := strings.TrimSpace(req.Label)
	if label == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "label is required")
		return
	}

	// The runoff only sees canonical names, so the label must produce one
	name := irv.CleanName(label)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "label must contain at least one letter")
		return
	}

	var status string
	err := h.db.QueryRow(`SELECT status FROM election WHERE id = $1`, electionID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusDraft {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot add candidates to non-draft election")
		return
	}

	count, err := countCandidates(h.db, electionID)
	if err != nil {
		slog.Error("failed to count candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count >= irv.MaxCandidates {
		middleware.ErrorResponse(w, http.StatusConflict, "Election already has the maximum number of candidates")
		return
	}

	candidateID := auth.NewID()
	_, err = h.db.Exec(`
		INSERT INTO candidate (id, election_id, label, name, seq)
		VALUES ($1, $2, $3, $4, $5)
	`, candidateID, electionID, label, name, count)
	if db.IsUniqueViolation(err) {
		middleware.ErrorResponse(w, http.StatusConflict, "A candidate named "+name+" already exists")
		return
	}
	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	slog.Info("candidate added", "election_id", electionID, "candidate_id", candidateID, "name", name)

	middleware.JSONResponse(w, http.StatusCreated, models.AddCandidateResponse{
		CandidateID: candidateID,
		Name:        name,
	})
}

// PublishElection handles POST /elections/:id/publish
func (h *ElectionHandler) PublishElection(w http.ResponseWriter, r *http.Request) {
	electionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var status string
	err := h.db.QueryRow(`SELECT status FROM election WHERE id = $1`, electionID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusDraft {
		middleware.ErrorResponse(w, http.StatusConflict, "Election is not in draft status")
		return
	}

	count, err := countCandidates(h.db, electionID)
	if err != nil {
		slog.Error("failed to count candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count < 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Election must have at least 2 candidates")
		return
	}

	shareSlug := auth.GenerateShareSlug(electionID, h.cfg.SlugSalt)

	_, err = h.db.Exec(`
		UPDATE election
		SET status = $1, share_slug = $2
		WHERE id = $3 AND status = $4
	`, models.StatusOpen, shareSlug, electionID, models.StatusDraft)
	if err != nil {
		slog.Error("failed to publish election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to publish election")
		return
	}

	slog.Info("election published", "election_id", electionID, "share_slug", shareSlug)

	middleware.JSONResponse(w, http.StatusOK, models.PublishElectionResponse{
		ShareSlug: shareSlug,
		ShareURL:  strings.TrimRight(h.cfg.BaseURL, "/") + "/elections/" + shareSlug,
	})
}

// GetElectionAdmin handles GET /elections/:id/admin
func (h *ElectionHandler) GetElectionAdmin(w http.ResponseWriter, r *http.Request) {
	electionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	election, err := getElectionByID(h.db, electionID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	candidates, err := listCandidates(h.db, electionID)
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

// CloseElection handles POST /elections/:id/close.
// It runs the runoff over every stored ballot and saves the outcome as the
// election's final snapshot.
func (h *ElectionHandler) CloseElection(w http.ResponseWriter, r *http.Request) {
	electionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRow(`SELECT status FROM election WHERE id = $1`, electionID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Election is not open")
		return
	}

	result, err := ComputeRunoff(tx, electionID)
	if err != nil {
		slog.Error("failed to compute runoff", "election_id", electionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute results")
		return
	}

	closedAt := time.Now().UTC()
	snapshot := models.ResultSnapshot{
		ID:         auth.NewID(),
		ElectionID: electionID,
		Method:     models.MethodIRV,
		ComputedAt: closedAt,
		Winner:     result.Outcome.Winner,
		Rounds:     result.Outcome.Rounds,
		InputsHash: result.InputsHash,
	}

	payload, err := json.Marshal(snapshotPayload{
		Winner:     snapshot.Winner,
		Rounds:     snapshot.Rounds,
		InputsHash: snapshot.InputsHash,
	})
	if err != nil {
		slog.Error("failed to encode snapshot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save results")
		return
	}

	_, err = tx.Exec(`
		INSERT INTO result_snapshot (id, election_id, method, computed_at, payload)
		VALUES ($1, $2, $3, $4, $5)
	`, snapshot.ID, electionID, models.MethodIRV, closedAt, string(payload))
	if err != nil {
		slog.Error("failed to insert snapshot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save results")
		return
	}

	_, err = tx.Exec(`
		UPDATE election
		SET status = $1, closed_at = $2, final_snapshot_id = $3
		WHERE id = $4
	`, models.StatusClosed, closedAt, snapshot.ID, electionID)
	if err != nil {
		slog.Error("failed to close election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close election")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close election")
		return
	}

	slog.Info("election closed",
		"election_id", electionID,
		"snapshot_id", snapshot.ID,
		"ballots", len(result.BallotIDs),
		"rounds", len(snapshot.Rounds),
		"winner", snapshot.Winner,
	)

	middleware.JSONResponse(w, http.StatusOK, models.CloseElectionResponse{
		ClosedAt: closedAt,
		Snapshot: snapshot,
	})
}

// snapshotPayload is the JSON stored in result_snapshot.payload
type snapshotPayload struct {
	Winner     string      `json:"winner,omitempty"`
	Rounds     []irv.Round `json:"rounds"`
	InputsHash string      `json:"inputs_hash"`
}

func countCandidates(q queryer, electionID string) (int, error) {
	var count int
	err := q.QueryRow(`SELECT COUNT(*) FROM candidate WHERE election_id = $1`, electionID).Scan(&count)
	return count, err
}
