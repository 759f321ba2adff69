package logic

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skyairrace/records-api/internal/models"
)

// Dataset is one loaded snapshot. It is never modified after NewDataset
// returns; every accessor returns fresh slices.
type Dataset struct {
	generation string
	loadedAt   time.Time
	loc        *time.Location

	records          []models.Record
	courses          []models.Course
	versions         []string // index order, oldest first
	challenges       []models.Challenge
	challengeRecords []models.ChallengeRecord
}

// NewDataset builds a dataset from decoded documents. challenge may be nil.
func NewDataset(main *models.RecordsDocument, challenge *models.ChallengeDocument, loc *time.Location) *Dataset {
	if loc == nil {
		loc = time.UTC
	}
	ds := &Dataset{
		generation: uuid.NewString(),
		loadedAt:   time.Now().UTC(),
		loc:        loc,
	}
	if main != nil {
		ds.records = slices.Clone(main.Records)
		ds.courses = slices.Clone(main.CourseMaster)
		for _, v := range main.VersionMaster {
			if v.Label != "" {
				ds.versions = append(ds.versions, v.Label)
			}
		}
	}
	if challenge != nil {
		ds.challenges = slices.Clone(challenge.ChallengeMaster)
		ds.challengeRecords = slices.Clone(challenge.ChallengeRecords)
	}
	return ds
}

// Generation identifies this snapshot; it changes on every load.
func (d *Dataset) Generation() string { return d.generation }

// LoadedAt is when the snapshot was decoded.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Location is the zone dates without an offset are read in.
func (d *Dataset) Location() *time.Location { return d.loc }

// RecordCount is the number of records in the snapshot.
func (d *Dataset) RecordCount() int { return len(d.records) }

// ChallengeRecordCount is the number of challenge records in the snapshot.
func (d *Dataset) ChallengeRecordCount() int { return len(d.challengeRecords) }

// Records returns every record.
func (d *Dataset) Records() []models.Record { return slices.Clone(d.records) }

// ChallengeRecords returns every challenge record.
func (d *Dataset) ChallengeRecords() []models.ChallengeRecord {
	return slices.Clone(d.challengeRecords)
}

// Courses returns the course index in index order.
func (d *Dataset) Courses() []models.Course { return slices.Clone(d.courses) }

// Categories lists distinct categories in course-index order with the
// number of records in each.
func (d *Dataset) Categories() []models.CountEntry {
	return countCategories(d.courses, d.records)
}

// CoursesIn lists the courses of a category with their record counts.
func (d *Dataset) CoursesIn(category string) []models.CountEntry {
	return countCourses(d.courses, d.records, category)
}

// Course looks up a course index entry.
func (d *Dataset) Course(category, name string) (models.Course, bool) {
	for _, c := range d.courses {
		if c.Category == category && c.Name == name {
			return c, true
		}
	}
	return models.Course{}, false
}

// HasCategory reports whether the course index names category.
func (d *Dataset) HasCategory(category string) bool {
	for _, c := range d.courses {
		if c.Category == category {
			return true
		}
	}
	return false
}

// Versions returns version labels in index order (oldest first).
func (d *Dataset) Versions() []string { return slices.Clone(d.versions) }

// VersionsNewestFirst returns version labels newest first.
func (d *Dataset) VersionsNewestFirst() []string {
	out := slices.Clone(d.versions)
	slices.Reverse(out)
	return out
}

// LatestVersion is the newest version label, or "" for an empty index.
func (d *Dataset) LatestVersion() string {
	if len(d.versions) == 0 {
		return ""
	}
	return d.versions[len(d.versions)-1]
}

// HasVersion reports whether label is in the version index.
func (d *Dataset) HasVersion(label string) bool {
	return slices.Contains(d.versions, label)
}

// PlayerRecords returns every record submitted under player, in snapshot order.
func (d *Dataset) PlayerRecords(player string) []models.Record {
	var out []models.Record
	for _, r := range d.records {
		if r.Player == player {
			out = append(out, r)
		}
	}
	return out
}

// Players returns distinct non-empty player identifiers, sorted.
func (d *Dataset) Players() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range d.records {
		if r.Player == "" {
			continue
		}
		if _, ok := seen[r.Player]; ok {
			continue
		}
		seen[r.Player] = struct{}{}
		out = append(out, r.Player)
	}
	slices.Sort(out)
	return out
}

// SearchPlayers returns up to limit players whose identifier contains
// query, ignoring case.
func (d *Dataset) SearchPlayers(query string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []string{}
	}
	matches := make([]string, 0)
	for _, p := range d.Players() {
		if strings.Contains(strings.ToLower(p), query) {
			matches = append(matches, p)
			if limit > 0 && len(matches) == limit {
				break
			}
		}
	}
	return matches
}

// RecentSubmissions returns the n most recently submitted records.
func (d *Dataset) RecentSubmissions(n int) []models.Record {
	sorted := SortRecords(d.records, SortState{Key: models.SortBySubmittedAt, Order: models.Descending}, d.loc)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Challenges returns the challenge index.
func (d *Dataset) Challenges() []models.Challenge { return slices.Clone(d.challenges) }

// Challenge looks up a challenge by name.
func (d *Dataset) Challenge(name string) (models.Challenge, bool) {
	for _, c := range d.challenges {
		if c.Name == name {
			return c, true
		}
	}
	return models.Challenge{}, false
}

func countCategories(courses []models.Course, records []models.Record) []models.CountEntry {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Category]++
	}
	out := make([]models.CountEntry, 0)
	seen := make(map[string]struct{})
	for _, c := range courses {
		if _, ok := seen[c.Category]; ok {
			continue
		}
		seen[c.Category] = struct{}{}
		out = append(out, models.CountEntry{Name: c.Category, Count: counts[c.Category]})
	}
	return out
}

func countCourses(courses []models.Course, records []models.Record, category string) []models.CountEntry {
	counts := make(map[string]int)
	for _, r := range records {
		if r.Category == category {
			counts[r.Course]++
		}
	}
	out := make([]models.CountEntry, 0)
	for _, c := range courses {
		if c.Category != category {
			continue
		}
		out = append(out, models.CountEntry{Name: c.Name, Count: counts[c.Name], Link: c.Link})
	}
	return out
}
