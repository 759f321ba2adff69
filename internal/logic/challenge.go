package logic

import (
	"fmt"

	"github.com/skyairrace/records-api/internal/models"
)

// ChallengeSummaries lists the challenge index with achievement counts.
func ChallengeSummaries(ds *Dataset) []models.ChallengeSummary {
	counts := make(map[string]int)
	for _, r := range ds.challengeRecords {
		counts[r.Challenge]++
	}
	out := make([]models.ChallengeSummary, 0, len(ds.challenges))
	for _, c := range ds.challenges {
		out = append(out, models.ChallengeSummary{
			Name:        c.Name,
			Description: c.Description,
			RankList:    nonNil(c.RankList),
			RecordCount: counts[c.Name],
		})
	}
	return out
}

// BuildChallenge lists the achievers of a challenge, earliest first.
func BuildChallenge(ds *Dataset, f ChallengeFilter) (*models.ChallengeView, error) {
	challenge, _ := ds.Challenge(f.Challenge)
	if err := f.Validate(challenge.RankList); err != nil {
		return nil, err
	}
	if f.Approval == "" {
		f.Approval = models.ApprovalAll
	}

	filtered := ApplyChallengeFilter(ds.challengeRecords, challenge.RankList, f)
	sorted := SortChallengeRecords(filtered, models.Ascending, ds.loc)
	hasRanks := len(challenge.RankList) > 0

	view := &models.ChallengeView{
		Name:        f.Challenge,
		Description: challenge.Description,
		RankList:    nonNil(challenge.RankList),
		HasRanks:    hasRanks,
		MinRank:     f.MinRank,
		Approval:    f.Approval,
		Count:       len(sorted),
		Rows:        ChallengeRows(sorted, ds.loc, hasRanks),
	}
	if len(sorted) == 0 {
		view.EmptyState = models.EmptyNoRecords
	}
	return view, nil
}

// PreviewChallengeCount is the achiever count shown while the challenge
// filter is edited.
func PreviewChallengeCount(ds *Dataset, f ChallengeFilter) models.CountPreview {
	challenge, _ := ds.Challenge(f.Challenge)
	if err := f.Validate(challenge.RankList); err != nil {
		return models.CountPreview{Valid: false, Label: "達成者数: -", Message: err.Error()}
	}
	n := len(ApplyChallengeFilter(ds.challengeRecords, challenge.RankList, f))
	return models.CountPreview{Valid: true, Count: &n, Label: fmt.Sprintf("達成者数: %d人", n)}
}
