// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/quickly-runoff/cliparse"
	"github.com/danielhkuo/quickly-runoff/handlers"
	"github.com/danielhkuo/quickly-runoff/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	electionHandler := handlers.NewElectionHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election management (admin operations)
	mux.HandleFunc("POST /elections", middleware.WithLogging(electionHandler.CreateElection))
	mux.HandleFunc("GET /elections/{id}/admin", middleware.WithLogging(electionHandler.GetElectionAdmin))
	mux.HandleFunc("POST /elections/{id}/candidates", middleware.WithLogging(electionHandler.AddCandidate))
	mux.HandleFunc("POST /elections/{id}/publish", middleware.WithLogging(electionHandler.PublishElection))
	mux.HandleFunc("POST /elections/{id}/close", middleware.WithLogging(electionHandler.CloseElection))

	// Voting operations (public)
	mux.HandleFunc("POST /elections/{slug}/claim-username", middleware.WithLogging(votingHandler.ClaimUsername))
	mux.HandleFunc("POST /elections/{slug}/ballots", middleware.WithLogging(votingHandler.SubmitBallot))
	mux.HandleFunc("GET /elections/{slug}/my-ballot", middleware.WithLogging(votingHandler.GetMyBallot))

	// Results retrieval (public, sealed until close)
	mux.HandleFunc("GET /elections/{slug}", middleware.WithLogging(resultsHandler.GetElection))
	mux.HandleFunc("GET /elections/{slug}/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /elections/{slug}/ballot-count", middleware.WithLogging(resultsHandler.GetBallotCount))

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-runoff API v1"))
	})

	return mux
}
