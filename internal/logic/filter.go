package logic

import (
	"errors"
	"slices"

	"github.com/skyairrace/records-api/internal/models"
)

// Selection errors. They describe a user-correctable state: the client
// keeps the apply action disabled and shows the message inline.
var (
	ErrNoVersions  = errors.New("select at least one version")
	ErrNoControls  = errors.New("select at least one control method")
	ErrNoChallenge = errors.New("select a challenge")
	ErrUnknownRank = errors.New("rank is not in the challenge rank list")
)

// Filter is an immutable facet selection over records. A nil Versions or
// Controls set means the facet is not applied; a non-nil empty set is the
// invalid "nothing selected" state reported by Validate.
type Filter struct {
	Category string
	Course   string
	Versions []string
	Controls []string
	Approval models.ApprovalFilter

	// RequireScope makes an empty Category or Course match nothing, as on
	// the ranking page. Otherwise an empty value matches everything.
	RequireScope bool
}

// Validate reports an empty multi-select facet.
func (f Filter) Validate() error {
	if f.Versions != nil && len(f.Versions) == 0 {
		return ErrNoVersions
	}
	if f.Controls != nil && len(f.Controls) == 0 {
		return ErrNoControls
	}
	return nil
}

// Scoped reports whether both category and course are chosen.
func (f Filter) Scoped() bool {
	return f.Category != "" && f.Course != ""
}

// Match reports whether r satisfies every facet. Call Validate first; an
// empty set simply matches nothing here.
func (f Filter) Match(r models.Record) bool {
	if f.RequireScope && !f.Scoped() {
		return false
	}
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Course != "" && r.Course != f.Course {
		return false
	}
	if f.Versions != nil && !slices.Contains(f.Versions, r.Version) {
		return false
	}
	if f.Controls != nil && !slices.Contains(f.Controls, r.Control) {
		return false
	}
	if f.Approval == models.ApprovalApproved && !r.Approved() {
		return false
	}
	return true
}

// WithScope returns a copy with category and course replaced.
func (f Filter) WithScope(category, course string) Filter {
	f.Category = category
	f.Course = course
	return f
}

// WithVersions returns a copy selecting exactly versions.
func (f Filter) WithVersions(versions ...string) Filter {
	f.Versions = append([]string{}, versions...)
	return f
}

// WithControls returns a copy selecting exactly controls.
func (f Filter) WithControls(controls ...string) Filter {
	f.Controls = append([]string{}, controls...)
	return f
}

// WithApproval returns a copy with the approval choice replaced.
func (f Filter) WithApproval(a models.ApprovalFilter) Filter {
	f.Approval = a
	return f
}

// ToggleVersion returns a copy with v added to or removed from the set.
func (f Filter) ToggleVersion(v string) Filter {
	f.Versions = toggle(f.Versions, v)
	return f
}

// ToggleControl returns a copy with c added to or removed from the set.
func (f Filter) ToggleControl(c string) Filter {
	f.Controls = toggle(f.Controls, c)
	return f
}

func toggle(set []string, v string) []string {
	out := make([]string, 0, len(set)+1)
	found := false
	for _, s := range set {
		if s == v {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, v)
	}
	return out
}

// ApplyFilter returns the records matching f, in input order.
func ApplyFilter(records []models.Record, f Filter) []models.Record {
	out := make([]models.Record, 0)
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// ChallengeFilter selects achievements for one challenge.
type ChallengeFilter struct {
	Challenge string
	MinRank   string // "" passes every record
	Approval  models.ApprovalFilter
}

// Validate reports a missing challenge or a minimum rank that is not in
// rankList.
func (f ChallengeFilter) Validate(rankList models.RankList) error {
	if f.Challenge == "" {
		return ErrNoChallenge
	}
	if f.MinRank != "" && rankList.Index(f.MinRank) < 0 {
		return ErrUnknownRank
	}
	return nil
}

// MeetsRank reports whether rank is at or above min in rankList. An unset
// min passes everything; a rank missing from the list fails any set min.
func MeetsRank(rankList models.RankList, rank, min string) bool {
	if min == "" {
		return true
	}
	idx := rankList.Index(rank)
	return idx >= 0 && idx >= rankList.Index(min)
}

// ApplyChallengeFilter returns the achievements matching f, in input order.
func ApplyChallengeFilter(records []models.ChallengeRecord, rankList models.RankList, f ChallengeFilter) []models.ChallengeRecord {
	out := make([]models.ChallengeRecord, 0)
	for _, r := range records {
		if r.Challenge != f.Challenge {
			continue
		}
		if !MeetsRank(rankList, r.Rank, f.MinRank) {
			continue
		}
		if f.Approval == models.ApprovalApproved && !r.Approved() {
			continue
		}
		out = append(out, r)
	}
	return out
}
