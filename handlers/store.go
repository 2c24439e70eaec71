// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"

	"github.com/danielhkuo/quickly-runoff/models"
)

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

const electionColumns = `id, title, description, creator_name, method, status,
	share_slug, closed_at, final_snapshot_id, created_at`

func getElectionByID(q queryer, electionID string) (models.Election, error) {
	return scanElection(q.QueryRow(`SELECT `+electionColumns+` FROM election WHERE id = $1`, electionID))
}

func getElectionBySlug(q queryer, shareSlug string) (models.Election, error) {
	return scanElection(q.QueryRow(`SELECT `+electionColumns+` FROM election WHERE share_slug = $1`, shareSlug))
}

func scanElection(row *sql.Row) (models.Election, error) {
	var e models.Election
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.CreatorName, &e.Method, &e.Status,
		&e.ShareSlug, &e.ClosedAt, &e.FinalSnapshotID, &e.CreatedAt,
	)
	return e, err
}

// listCandidates returns an election's candidates in the order they were added
func listCandidates(q queryer, electionID string) ([]models.Candidate, error) {
	rows, err := q.Query(`
		SELECT id, election_id, label, name
		FROM candidate
		WHERE election_id = $1
		ORDER BY seq
	`, electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Label, &c.Name); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func countBallots(q queryer, electionID string) (int, error) {
	var count int
	err := q.QueryRow(`SELECT COUNT(*) FROM ballot WHERE election_id = $1`, electionID).Scan(&count)
	return count, err
}
