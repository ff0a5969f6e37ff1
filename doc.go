// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the KU Polls API server.

KU Polls is a small voting service: users browse published poll questions,
cast exactly one vote per question, change or retract that vote, and view
tallied results with percentage breakdowns.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=polls.db ADMIN_KEY=... go run .

Or with flags:

	go run . -p 8000 -d "postgres://..." -t postgres -admin-key "..."

A .env file in the working directory is loaded automatically.

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string (file path for sqlite)
  - ADMIN_KEY (-admin-key): secret for question management endpoints

Optional settings:

  - PORT (-p): server port (default: 8000)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (questions, voting, results, accounts)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: domain entities, eligibility predicates, request/response types
  - auth: session tokens, password hashing, admin key validation
  - clock: time source abstraction so eligibility logic is testable
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
