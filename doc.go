// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the region-survey API server.

Participants pick the administrative regions they want covered, under one of
three quota options. Admins review the aggregated demand, track which regions
have been crawled, export region lists and archive finished cohorts.

# Starting the Server

	DATABASE_URL=survey.db ADMIN_PASSWORD_HASH=... ADMIN_TOKEN_SECRET=... go run .

A .env file in the working directory is read as well. To produce the
password hash:

	go run . hash-password 'secret'

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file path or PostgreSQL connection string
  - ADMIN_PASSWORD_HASH (--admin-hash): bcrypt hash of the admin password
  - ADMIN_TOKEN_SECRET (--token-secret): HS256 signing secret

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ADMIN_TOKEN_TTL (--token-ttl): admin session length (default: 12h)
  - LOG_SALT (--log-salt): salt for hashed client IPs in logs
  - REGION_CATALOG (--catalog): YAML catalog seeded at startup
  - LOG_FORMAT (--log-format): tint, json or text (default: tint)

# Architecture

  - regions: option quotas and selection validation
  - survey: submission reconciliation, aggregation and admin mutations
  - catalog: region catalog seed and listing helpers
  - store: database/sql implementation of every store interface
  - export: CSV and XLSX region lists
  - handlers, router, middleware: the HTTP surface
  - auth: admin password and token handling
  - db: connection and schema
  - cliparse: configuration parsing
*/
package main
