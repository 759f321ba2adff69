package logic

import (
	"fmt"

	"github.com/skyairrace/records-api/internal/models"
)

// DefaultSearchLimit caps player suggestions.
const DefaultSearchLimit = 10

// BuildPlayerOverview summarizes a player. Player identifiers are not
// checked against any list; an unknown one yields zero counts.
func BuildPlayerOverview(ds *Dataset, player string) models.PlayerOverview {
	records := ds.PlayerRecords(player)
	courses := make(map[string]struct{})
	for _, r := range records {
		courses[CourseKey(r)] = struct{}{}
	}
	return models.PlayerOverview{
		Player:           player,
		ProfileURL:       ProfileURL(player),
		TotalRecords:     len(records),
		CompletedCourses: len(courses),
		Categories:       countCategories(ds.courses, records),
	}
}

// BuildStampRally computes the course completion grid of player for
// version, defaulting to the newest version.
func BuildStampRally(ds *Dataset, player, version string) models.StampRally {
	if version == "" {
		version = ds.LatestVersion()
	}
	records := ds.PlayerRecords(player)

	rally := models.StampRally{
		Player:          player,
		SelectedVersion: version,
		Versions:        make([]models.VersionStamp, 0, len(ds.versions)),
		Categories:      make([]models.StampCategory, 0),
	}
	for _, v := range ds.versions {
		courses := make(map[string]struct{})
		for _, r := range records {
			if r.Version == v {
				courses[CourseKey(r)] = struct{}{}
			}
		}
		rally.Versions = append(rally.Versions, models.VersionStamp{
			Version:     v,
			CourseCount: len(courses),
			Selected:    v == version,
		})
	}

	inVersion := ApplyFilter(records, Filter{Versions: []string{version}})
	best := make(map[string]models.Record)
	for _, r := range BestPerKey(inVersion, CourseKey) {
		best[CourseKey(r)] = r
	}

	groups := make(map[string]int)
	for _, c := range ds.courses {
		i, ok := groups[c.Category]
		if !ok {
			i = len(rally.Categories)
			groups[c.Category] = i
			rally.Categories = append(rally.Categories, models.StampCategory{Category: c.Category})
		}
		card := models.StampCard{
			Course:    c.Name,
			Time:      "-",
			CourseURL: CoursePath(c.Category, c.Name),
		}
		if r, ok := best[c.Category+"\x00"+c.Name]; ok {
			card.HasRecord = true
			card.Time = orDash(r.Time)
			card.RecordDate = FormatDate(r.RecordDate, ds.loc)
		}
		rally.Categories[i].Cards = append(rally.Categories[i].Cards, card)
	}
	return rally
}

// PlayerFilter is the default filter of the player submissions table:
// every category, course, version and control method.
func PlayerFilter(ds *Dataset) Filter {
	return Filter{
		Versions: ds.Versions(),
		Controls: models.ControlNames(),
		Approval: models.ApprovalAll,
	}
}

// BuildPlayerRecords lists the submissions of player matching f, newest
// submission first.
func BuildPlayerRecords(ds *Dataset, player string, f Filter) (*models.PlayerRecordsView, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	f.RequireScope = false

	all := ds.PlayerRecords(player)
	sorted := SortRecords(all, SortState{Key: models.SortBySubmittedAt, Order: models.Descending}, ds.loc)
	records := ApplyFilter(sorted, f)

	view := &models.PlayerRecordsView{
		Player:    player,
		Selection: Selection{Filter: f}.Echo(),
		Count:     len(records),
		Rows:      RecordRows(records, ds.loc, false),
	}
	if f.Category != "" {
		view.Courses = countCourses(ds.courses, all, f.Category)
	}
	if len(records) == 0 {
		view.EmptyState = models.EmptyNoRecords
	}
	return view, nil
}

// PreviewPlayerCount is the count shown while the player filter is edited.
func PreviewPlayerCount(ds *Dataset, player string, f Filter) models.CountPreview {
	if err := f.Validate(); err != nil {
		return models.CountPreview{Valid: false, Label: "記録数: -", Message: err.Error()}
	}
	f.RequireScope = false
	n := len(ApplyFilter(ds.PlayerRecords(player), f))
	return models.CountPreview{Valid: true, Count: &n, Label: fmt.Sprintf("記録数: %d件", n)}
}
