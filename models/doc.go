// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SubmitSurveyRequest: participant_name, cohort, option_type, regions
  - CheckRegionRequest: one region plus the staged selection
  - AdminLoginRequest: password
  - ReplaceRegionsRequest, RemoveRegionsRequest: regions
  - ToggleStatusRequest, BulkStatusRequest: crawl status changes

# Response Types

Types for JSON responses:

  - SubmitSurveyResponse: outcome plus outcome-specific fields
  - ExistingParticipantResponse: stored regions and option for a participant
  - DashboardResponse: summary, option stats, top regions, cohorts
  - BulkResponse: affected count plus per-item failures
  - ErrorResponse: error, message, kind

# Domain Types

  - SurveyRecord: one participant's answer for a cohort
  - CrawlStatus: processed flag for a region label
  - Division, LeafDivision, CatalogRegion: region catalog entries

# Constants

Dashboard views:

	ViewActive   = "active"
	ViewArchived = "archived"

Crawl status tabs:

	TabPending   = "pending"
	TabCompleted = "completed"
*/
package models
