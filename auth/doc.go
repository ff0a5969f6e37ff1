// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session tokens, password hashing, and admin key
validation.

# Session Tokens

Session tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateSessionToken()

Tokens are URL-safe base64 encoded and stored server-side in the session
table; handlers resolve the X-Session-Token header to an account through it.

# Passwords

Account passwords are hashed with bcrypt:

	hash, err := auth.HashPassword(password)
	err := auth.CheckPassword(hash, password)

CheckPassword returns ErrPasswordMismatch when the password does not match.

# Admin Key

Question management endpoints are gated by a single configured admin key:

	err := auth.ValidateAdminKey(provided, cfg.AdminKey)

The comparison is constant-time.

# IP Hashing

For privacy-preserving audit logging:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
