package models

import "time"

// Admin dashboard views
const (
	ViewActive   = "active"
	ViewArchived = "archived"
)

// Crawl status tabs
const (
	TabPending   = "pending"
	TabCompleted = "completed"
)

// Request types

type SubmitSurveyRequest struct {
	ParticipantName string   `json:"participant_name"`
	Cohort          string   `json:"cohort"`
	OptionType      int      `json:"option_type"`
	Regions         []string `json:"regions"`
}

type CheckRegionRequest struct {
	ParticipantName string   `json:"participant_name"`
	Cohort          string   `json:"cohort"`
	OptionType      int      `json:"option_type"`
	Region          string   `json:"region"`
	StagedRegions   []string `json:"staged_regions"`
}

type AdminLoginRequest struct {
	Password string `json:"password"`
}

type ReplaceRegionsRequest struct {
	Regions []string `json:"regions"`
}

type RemoveRegionsRequest struct {
	Regions []string `json:"regions"`
}

type ToggleStatusRequest struct {
	Region string `json:"region"`
}

type BulkStatusRequest struct {
	Regions     []string `json:"regions"`
	IsProcessed bool     `json:"is_processed"`
}

// Response types

type ExistingParticipantResponse struct {
	Exists             bool     `json:"exists"`
	ExistingRegions    []string `json:"existing_regions"`
	ExistingOptionType *int     `json:"existing_option_type"`
}

type Slots struct {
	Seoul    int `json:"seoul"`
	NonSeoul int `json:"non_seoul"`
	Total    int `json:"total"`
}

type CheckRegionResponse struct {
	Region    string `json:"region"`
	Remaining Slots  `json:"remaining"`
}

type Quota struct {
	OptionType  int `json:"option_type"`
	MaxSeoul    int `json:"max_seoul"`
	MaxNonSeoul int `json:"max_non_seoul"`
	TotalMax    int `json:"total_max"`
}

// SubmitSurveyResponse covers every reconciliation outcome.
// Fields irrelevant to an outcome are omitted.
type SubmitSurveyResponse struct {
	Outcome            string        `json:"outcome"`
	Kind               string        `json:"kind,omitempty"`
	Message            string        `json:"message,omitempty"`
	Record             *SurveyRecord `json:"record,omitempty"`
	ExistingOptionType *int          `json:"existing_option_type,omitempty"`
	ExistingRegions    []string      `json:"existing_regions,omitempty"`
	NewRegions         []string      `json:"new_regions,omitempty"`
	CombinedTotal      int           `json:"combined_total,omitempty"`
	Quota              *Quota        `json:"quota,omitempty"`
}

type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ItemFailure struct {
	Item  string `json:"item"`
	Error string `json:"error"`
}

type BulkResponse struct {
	Affected int           `json:"affected"`
	Deleted  []string      `json:"deleted,omitempty"`
	Updated  []string      `json:"updated,omitempty"`
	Failed   []ItemFailure `json:"failed,omitempty"`
}

type ReplaceRegionsResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type ArchiveCohortResponse struct {
	Cohort     string    `json:"cohort"`
	ArchivedAt time.Time `json:"archived_at"`
}

type ToggleStatusResponse struct {
	Region      string `json:"region"`
	IsProcessed bool   `json:"is_processed"`
}

type RegionStatusListResponse struct {
	Tab     string             `json:"tab"`
	Regions []RegionStatusItem `json:"regions"`
}

type RegionStatusItem struct {
	Region       string     `json:"region"`
	Votes        int        `json:"votes"`
	IsProcessed  bool       `json:"is_processed"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty"`
	ProcessedAgo string     `json:"processed_ago,omitempty"`
}

type ResponsesResponse struct {
	View      string         `json:"view"`
	Responses []SurveyRecord `json:"responses"`
}

type DashboardResponse struct {
	View            string         `json:"view"`
	Summary         SummaryStats   `json:"summary"`
	Options         OptionStats    `json:"options"`
	TopRegions      []RegionCount  `json:"top_regions"`
	RegionCounts    map[string]int `json:"region_counts"`
	ActiveCohorts   []string       `json:"active_cohorts"`
	ArchivedCohorts []string       `json:"archived_cohorts"`
	Responses       []SurveyRecord `json:"responses"`
}

// Domain types

type SurveyRecord struct {
	ID              string    `json:"id"`
	ParticipantName string    `json:"participant_name"`
	Cohort          string    `json:"cohort"`
	SelectedRegions []string  `json:"selected_regions"`
	OptionType      *int      `json:"option_type"` // nil for legacy rows
	CreatedAt       time.Time `json:"created_at"`
}

type CrawlStatus struct {
	RegionLabel string     `json:"region_label"`
	IsProcessed bool       `json:"is_processed"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Division struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type LeafDivision struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	LastProcessedAt *time.Time `json:"last_processed_at"`
	LastProcessed   string     `json:"last_processed,omitempty"`
}

// CatalogRegion is a fully qualified leaf from the region catalog.
type CatalogRegion struct {
	Label           string     `json:"label"`
	LastProcessedAt *time.Time `json:"last_processed_at"`
}

// Aggregate types

type SummaryStats struct {
	Participants    int `json:"participants"`
	DistinctRegions int `json:"distinct_regions"`
	TotalVotes      int `json:"total_votes"`
}

type OptionStats struct {
	Option1 int `json:"option1"`
	Option2 int `json:"option2"`
	Option3 int `json:"option3"`
	Unknown int `json:"unknown"`
}

type RegionCount struct {
	Region        string     `json:"region"`
	Votes         int        `json:"votes"`
	InCatalog     bool       `json:"in_catalog"`
	LastProcessed string     `json:"last_processed,omitempty"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Kind    string `json:"kind,omitempty"`
}
