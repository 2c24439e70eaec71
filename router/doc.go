// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the quickly-runoff API.

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Election management (admin, requires X-Admin-Key):

	POST /elections                 - Create election
	GET  /elections/{id}/admin      - Get election details
	POST /elections/{id}/candidates - Add candidate
	POST /elections/{id}/publish    - Open for voting
	POST /elections/{id}/close      - Run the runoff and seal results

Voting (public, uses share slug):

	POST /elections/{slug}/claim-username - Claim voter identity
	POST /elections/{slug}/ballots        - Submit/replace ranked ballot
	GET  /elections/{slug}/my-ballot      - Read back own ballot

Results (public):

	GET /elections/{slug}              - Election info and candidates
	GET /elections/{slug}/results      - Rounds and winner (closed only)
	GET /elections/{slug}/ballot-count - Ballot count
*/
package router
