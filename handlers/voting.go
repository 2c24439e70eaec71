// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/quickly-runoff/auth"
	"github.com/danielhkuo/quickly-runoff/cliparse"
	"github.com/danielhkuo/quickly-runoff/db"
	"github.com/danielhkuo/quickly-runoff/irv"
	"github.com/danielhkuo/quickly-runoff/middleware"
	"github.com/danielhkuo/quickly-runoff/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// openElection looks up the election behind the slug in the path and
// requires it to be open. It writes the error response itself.
func (h *VotingHandler) openElection(w http.ResponseWriter, r *http.Request) (string, bool) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return "", false
	}

	var electionID, status string
	err := h.db.QueryRow(`
		SELECT id, status FROM election WHERE share_slug = $1
	`, shareSlug).Scan(&electionID, &status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return "", false
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return "", false
	}

	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Election is not open for voting")
		return "", false
	}
	return electionID, true
}

// ClaimUsername handles POST /elections/:slug/claim-username
func (h *VotingHandler) ClaimUsername(w http.ResponseWriter, r *http.Request) {
	var req models.ClaimUsernameRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}
	if n := utf8.RuneCountInString(username); n < 2 || n > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username must be 2-50 characters")
		return
	}

	electionID, ok := h.openElection(w, r)
	if !ok {
		return
	}

	voterToken, err := auth.GenerateVoterToken()
	if err != nil {
		slog.Error("failed to generate voter token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to claim username")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO username_claim (election_id, username, voter_token, created_at)
		VALUES ($1, $2, $3, $4)
	`, electionID, username, voterToken, time.Now().UTC())
	if db.IsUniqueViolation(err) {
		middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
		return
	}
	if err != nil {
		slog.Error("failed to insert username claim", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to claim username")
		return
	}

	slog.Info("username claimed", "election_id", electionID, "username", username)

	middleware.JSONResponse(w, http.StatusCreated, models.ClaimUsernameResponse{
		VoterToken: voterToken,
	})
}

// SubmitBallot handles POST /elections/:slug/ballots.
// A second submission from the same voter replaces the first.
func (h *VotingHandler) SubmitBallot(w http.ResponseWriter, r *http.Request) {
	voterToken := r.Header.Get("X-Voter-Token")
	if voterToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Token header required")
		return
	}

	var req models.SubmitBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Ranking) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ranking cannot be empty")
		return
	}
	if len(req.Ranking) > irv.MaxCandidates {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ranking has too many candidates")
		return
	}

	seen := make(map[string]bool, len(req.Ranking))
	for _, candidateID := range req.Ranking {
		if seen[candidateID] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "candidate ranked twice: "+candidateID)
			return
		}
		seen[candidateID] = true
	}

	electionID, ok := h.openElection(w, r)
	if !ok {
		return
	}

	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM username_claim
			WHERE election_id = $1 AND voter_token = $2
		)
	`, electionID, voterToken).Scan(&exists)
	if err != nil {
		slog.Error("failed to verify voter token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid voter token for this election")
		return
	}

	candidates, err := listCandidates(h.db, electionID)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	valid := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		valid[c.ID] = true
	}
	for _, candidateID := range req.Ranking {
		if !valid[candidateID] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid candidate_id: "+candidateID)
			return
		}
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt)
	userAgent := r.UserAgent()
	now := time.Now().UTC()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var ballotID string
	err = tx.QueryRow(`
		SELECT id FROM ballot WHERE election_id = $1 AND voter_token = $2
	`, electionID, voterToken).Scan(&ballotID)
	isUpdate := err == nil
	if err != nil && err != sql.ErrNoRows {
		slog.Error("failed to query ballot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if isUpdate {
		_, err = tx.Exec(`
			UPDATE ballot
			SET submitted_at = $1, ip_hash = $2, user_agent = $3
			WHERE id = $4
		`, now, ipHash, userAgent, ballotID)
		if err == nil {
			_, err = tx.Exec(`DELETE FROM ranking WHERE ballot_id = $1`, ballotID)
		}
	} else {
		ballotID = auth.NewID()
		_, err = tx.Exec(`
			INSERT INTO ballot (id, election_id, voter_token, submitted_at, ip_hash, user_agent)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, ballotID, electionID, voterToken, now, ipHash, userAgent)
	}
	if err != nil {
		slog.Error("failed to save ballot", "error", err, "is_update", isUpdate)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit ballot")
		return
	}

	for position, candidateID := range req.Ranking {
		_, err = tx.Exec(`
			INSERT INTO ranking (ballot_id, position, candidate_id)
			VALUES ($1, $2, $3)
		`, ballotID, position, candidateID)
		if err != nil {
			slog.Error("failed to insert ranking", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save ranking")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit ballot")
		return
	}

	message := "Ballot submitted successfully"
	if isUpdate {
		message = "Ballot updated successfully"
	}

	slog.Info("ballot submitted", "election_id", electionID, "ballot_id", ballotID, "is_update", isUpdate)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitBallotResponse{
		BallotID: ballotID,
		Message:  message,
	})
}

// GetMyBallot handles GET /elections/:slug/my-ballot
func (h *VotingHandler) GetMyBallot(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	voterToken := r.Header.Get("X-Voter-Token")
	if voterToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Token header required")
		return
	}

	var resp models.MyBallotResponse
	err := h.db.QueryRow(`
		SELECT b.id, b.submitted_at
		FROM ballot b
		JOIN election e ON e.id = b.election_id
		WHERE e.share_slug = $1 AND b.voter_token = $2
	`, shareSlug, voterToken).Scan(&resp.BallotID, &resp.SubmittedAt)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "No ballot submitted")
		return
	}
	if err != nil {
		slog.Error("failed to query ballot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT c.id, c.election_id, c.label, c.name
		FROM ranking r
		JOIN candidate c ON c.id = r.candidate_id
		WHERE r.ballot_id = $1
		ORDER BY r.position
	`, resp.BallotID)
	if err != nil {
		slog.Error("failed to query ranking", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	resp.Ranking = []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Label, &c.Name); err != nil {
			slog.Error("failed to scan ranking", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		resp.Ranking = append(resp.Ranking, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read ranking", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
