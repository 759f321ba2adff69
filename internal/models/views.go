package models

// Empty-state kinds reported instead of rows.
const (
	EmptySelectCourse    = "select_course"
	EmptyNoRecords       = "no_records"
	EmptySelectChallenge = "select_challenge"
)

// RecordRow is one table row with presentation hints resolved.
type RecordRow struct {
	Position    int    `json:"position,omitempty"`
	Player      string `json:"player"`
	PlayerURL   string `json:"player_url,omitempty"`
	Category    string `json:"category"`
	Course      string `json:"course"`
	CourseURL   string `json:"course_url,omitempty"`
	Time        string `json:"time"`
	RecordDate  string `json:"record_date"`
	SubmittedAt string `json:"submitted_at"`
	Control     string `json:"control"`
	ControlIcon string `json:"control_icon"`
	Version     string `json:"version"`
	VideoURL    string `json:"video_url,omitempty"`
	HasVideo    bool   `json:"has_video"`
	Approved    bool   `json:"approved"`
	Status      string `json:"status"`
	Note        string `json:"note,omitempty"`
}

// SelectionEcho reports the selection a response was computed with, so the
// client can replace its held state with it.
type SelectionEcho struct {
	Category string         `json:"category"`
	Course   string         `json:"course"`
	Versions []string       `json:"versions"`
	Controls []string       `json:"controls"`
	Approval ApprovalFilter `json:"approval"`
	Mode     RecordMode     `json:"mode,omitempty"`
	Sort     SortKey        `json:"sort,omitempty"`
	Order    SortOrder      `json:"order,omitempty"`
}

// RankingView is the course ranking page.
type RankingView struct {
	Selection  SelectionEcho `json:"selection"`
	CourseLink string        `json:"course_link,omitempty"`
	EmptyState string        `json:"empty_state,omitempty"`
	Count      int           `json:"count"`
	Rows       []RecordRow   `json:"rows"`
}

// CountPreview is the record count shown while a filter is being edited.
// Count is nil when the selection is invalid.
type CountPreview struct {
	Valid   bool   `json:"valid"`
	Count   *int   `json:"count"`
	Label   string `json:"label"`
	Message string `json:"message,omitempty"`
}

// CountEntry is a name with a record count, used for select options.
type CountEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Link  string `json:"link,omitempty"`
}

// PlayerOverview is the header block of the player page.
type PlayerOverview struct {
	Player           string       `json:"player"`
	ProfileURL       string       `json:"profile_url,omitempty"`
	TotalRecords     int          `json:"total_records"`
	CompletedCourses int          `json:"completed_courses"`
	Categories       []CountEntry `json:"categories"`
}

// VersionStamp is one version button of the stamp rally.
type VersionStamp struct {
	Version     string `json:"version"`
	CourseCount int    `json:"course_count"`
	Selected    bool   `json:"selected"`
}

// StampCard is one course cell of the stamp rally grid.
type StampCard struct {
	Course     string `json:"course"`
	HasRecord  bool   `json:"has_record"`
	Time       string `json:"time"`
	RecordDate string `json:"record_date,omitempty"`
	CourseURL  string `json:"course_url"`
}

// StampCategory groups stamp cards under a category header.
type StampCategory struct {
	Category string      `json:"category"`
	Cards    []StampCard `json:"cards"`
}

// StampRally is the per-version course completion grid of a player.
type StampRally struct {
	Player          string          `json:"player"`
	SelectedVersion string          `json:"selected_version"`
	Versions        []VersionStamp  `json:"versions"`
	Categories      []StampCategory `json:"categories"`
}

// PlayerRecordsView is the filtered submissions table of the player page.
type PlayerRecordsView struct {
	Player     string        `json:"player"`
	Selection  SelectionEcho `json:"selection"`
	Courses    []CountEntry  `json:"courses,omitempty"`
	EmptyState string        `json:"empty_state,omitempty"`
	Count      int           `json:"count"`
	Rows       []RecordRow   `json:"rows"`
}

// ChallengeSummary is one option of the challenge select.
type ChallengeSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	RankList    []string `json:"rank_list"`
	RecordCount int      `json:"record_count"`
}

// ChallengeRow is one achiever row.
type ChallengeRow struct {
	Position   int    `json:"position"`
	AchievedAt string `json:"achieved_at"`
	Player     string `json:"player"`
	PlayerURL  string `json:"player_url,omitempty"`
	Rank       string `json:"rank,omitempty"`
	VideoURL   string `json:"video_url,omitempty"`
	HasVideo   bool   `json:"has_video"`
	Approved   bool   `json:"approved"`
	Status     string `json:"status"`
}

// ChallengeView is the achievers table of the challenge page.
type ChallengeView struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	RankList    []string       `json:"rank_list"`
	HasRanks    bool           `json:"has_ranks"`
	MinRank     string         `json:"min_rank,omitempty"`
	Approval    ApprovalFilter `json:"approval"`
	EmptyState  string         `json:"empty_state,omitempty"`
	Count       int            `json:"count"`
	Rows        []ChallengeRow `json:"rows"`
}
