package logic

import (
	"fmt"

	"github.com/skyairrace/records-api/internal/models"
)

// Default scope of the ranking page.
const (
	DefaultCategory = "本家"
	DefaultCourse   = "No.1"
)

// Selection is the complete state of a records page: facets, record mode
// and sort. The client holds the current value and replaces it with the
// one echoed back by each response.
type Selection struct {
	Filter Filter
	Mode   models.RecordMode
	Sort   SortState
}

// DefaultSelection selects every version and control method, best record
// per player, fastest first, on the default course when the index has it.
func DefaultSelection(ds *Dataset) Selection {
	sel := Selection{
		Filter: Filter{
			Versions:     ds.VersionsNewestFirst(),
			Controls:     models.ControlNames(),
			Approval:     models.ApprovalAll,
			RequireScope: true,
		},
		Mode: models.RecordModeBest,
		Sort: DefaultSort(),
	}
	if ds.HasCategory(DefaultCategory) {
		sel.Filter.Category = DefaultCategory
		sel.Filter.Course = DefaultCourseFor(ds, DefaultCategory)
	}
	return sel
}

// DefaultCourseFor is the course preselected when category is chosen.
func DefaultCourseFor(ds *Dataset, category string) string {
	if category != DefaultCategory {
		return ""
	}
	if _, ok := ds.Course(category, DefaultCourse); ok {
		return DefaultCourse
	}
	return ""
}

// Echo reports the selection for a response.
func (s Selection) Echo() models.SelectionEcho {
	return models.SelectionEcho{
		Category: s.Filter.Category,
		Course:   s.Filter.Course,
		Versions: nonNil(s.Filter.Versions),
		Controls: nonNil(s.Filter.Controls),
		Approval: s.Filter.Approval,
		Mode:     s.Mode,
		Sort:     s.Sort.Key,
		Order:    s.Sort.Order,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// SelectRecords runs the engine: filter, optional best-per-player
// reduction, then sort. The selection must be valid.
func SelectRecords(ds *Dataset, sel Selection) []models.Record {
	filtered := ApplyFilter(ds.records, sel.Filter)
	if sel.Mode == models.RecordModeBest {
		filtered = BestPerPlayer(filtered)
	}
	return SortRecords(filtered, sel.Sort, ds.loc)
}

// BuildRanking computes the course ranking page. It returns the selection
// error for an empty multi-select facet.
func BuildRanking(ds *Dataset, sel Selection) (*models.RankingView, error) {
	if err := sel.Filter.Validate(); err != nil {
		return nil, err
	}
	sel.Filter.RequireScope = true

	view := &models.RankingView{
		Selection: sel.Echo(),
		Rows:      []models.RecordRow{},
	}
	if !sel.Filter.Scoped() {
		view.EmptyState = models.EmptySelectCourse
		return view, nil
	}
	if c, ok := ds.Course(sel.Filter.Category, sel.Filter.Course); ok {
		view.CourseLink = c.Link
	}

	records := SelectRecords(ds, sel)
	view.Count = len(records)
	if len(records) == 0 {
		view.EmptyState = models.EmptyNoRecords
		return view, nil
	}
	view.Rows = RecordRows(records, ds.loc, true)
	return view, nil
}

// PreviewCount is the count shown while the ranking filter is edited. An
// unscoped selection counts zero.
func PreviewCount(ds *Dataset, sel Selection) models.CountPreview {
	if err := sel.Filter.Validate(); err != nil {
		return models.CountPreview{Valid: false, Label: "記録数: -", Message: err.Error()}
	}
	n := 0
	if !sel.Filter.RequireScope || sel.Filter.Scoped() {
		filtered := ApplyFilter(ds.records, sel.Filter)
		if sel.Mode == models.RecordModeBest {
			filtered = BestPerPlayer(filtered)
		}
		n = len(filtered)
	}
	return models.CountPreview{Valid: true, Count: &n, Label: fmt.Sprintf("記録数: %d件", n)}
}

// RecentRows is the recent submissions table.
func RecentRows(ds *Dataset, n int) []models.RecordRow {
	return RecordRows(ds.RecentSubmissions(n), ds.loc, false)
}
