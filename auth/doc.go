// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth guards the admin surface.

# Admin Password

The server keeps only a bcrypt hash of the admin password:

	hash, err := auth.HashPassword("s3cret", bcrypt.DefaultCost)
	err = auth.CheckPassword(hash, candidate)

# Admin Tokens

A successful login returns an HS256 JWT with a fixed subject and a TTL:

	token, expiresAt, err := auth.IssueAdminToken(secret, 12*time.Hour, time.Now())
	err = auth.ValidateAdminToken(token, secret)

Validation rejects any other signing method, a foreign issuer, a missing
or past expiry, and a subject other than AdminSubject.

# IP Hashing

Client addresses are logged hashed:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
