// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication and token generation utilities.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(electionID, salt)
	err := auth.ValidateAdminKey(electionID, adminKey, salt)

The key is URL-safe base64 without padding. The same election ID and salt
always produce the same key, so keys are validated without being stored.

# Voter Tokens

Voter tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateVoterToken()

Each voter gets one when claiming a username and sends it back in the
X-Voter-Token header.

# Share Slugs

	slug := auth.GenerateShareSlug(electionID, salt)

Slugs are base62 (alphanumeric only) and deterministic like admin keys.
Every derivation is tagged with its purpose, so an admin key, a slug and an
IP hash of the same input never share bits.

# IDs

	id := auth.NewID() // random UUID

# IP Hashing

	hash := auth.HashIP(ipAddress, salt) // 16 hex chars
*/
package auth
