// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded before anything is read.
Variables already set in the environment are not overwritten by it.

# CLI Flags and Environment Variables

	-p              PORT                 Server port (default 3318)
	-d              DATABASE_URL         Postgres URL or sqlite file path (required)
	-t              DATABASE_TYPE        sqlite or postgres (default sqlite)
	--admin-hash    ADMIN_PASSWORD_HASH  bcrypt hash of the admin password (required)
	--token-secret  ADMIN_TOKEN_SECRET   HS256 signing secret (required)
	--token-ttl     ADMIN_TOKEN_TTL      Admin token lifetime (default 12h)
	--log-salt      LOG_SALT             Salt for hashed client IPs in logs
	--catalog       REGION_CATALOG       YAML region catalog seeded at startup
	--log-format    LOG_FORMAT           tint, json or text (default tint)

CLI flags take precedence over environment variables.
*/
package cliparse
