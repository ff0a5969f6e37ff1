// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL is restricted to the dialect shared by PostgreSQL and SQLite so the
same schema serves both configured database types.

# Tables

The schema includes:

  - question: poll prompt with publication window
  - choice: selectable options per question, ordered by position
  - account: registered voter identities
  - session: login tokens mapped to accounts
  - vote: one row per (account, question), pointing at the chosen choice

# Relationships

	question 1──* choice
	question 1──* vote
	choice   1──* vote
	account  1──* vote
	account  1──* session

All foreign keys use ON DELETE CASCADE. Vote counts are never stored on
choice rows; they are always derived by counting vote rows.

# Constraints

The single most important constraint is

	UNIQUE (account_id, question_id)

on vote, which makes the create-or-update write path race-proof: two
near-simultaneous submissions by the same user for the same question can
never produce two rows.

# Indexes

Performance indexes on:

  - question.pub_date
  - choice.question_id
  - vote.question_id
  - vote.choice_id
  - session.account_id
  - account.username (unique)
*/
package db
