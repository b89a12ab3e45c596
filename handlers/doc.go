// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the region-survey API.

# Handler Types

Each handler is a struct built from the database and config:

  - SurveyHandler: participant lookup, staging checks and submissions
  - CatalogHandler: city, district and neighborhood listings
  - AdminHandler: login, dashboard, response edits, crawl status, export

Handlers are created with the connection and config:

	surveyHandler := handlers.NewSurveyHandler(db, cfg)

# Submissions

	POST /survey/submissions         → Submit
	POST /survey/submissions/confirm → Confirm

A first submission is stored and answered with 201. A repeat submission by
the same participant and cohort is answered with a merge preview (200) and
is only written once confirmed. A submission under a different option than
the stored one is refused with 409 and never changes the record.

# Errors

Domain failures carry a kind next to the message, for example:

	{"error": "Unprocessable Entity", "message": "...", "kind": "quota_exceeded"}

# Admin

Admin handlers assume the router has already checked the bearer token.
Views take ?view=active|archived, crawl status takes ?tab=pending|completed.
*/
package handlers
