package logic

import (
	"time"

	"github.com/skyairrace/records-api/internal/models"
)

var tokyo = time.FixedZone("JST", 9*60*60)

func rec(player, secs string) models.Record {
	return models.Record{
		Player:   player,
		Category: "本家",
		Course:   "No.1",
		Time:     secs,
		Control:  "タッチ",
		Version:  "0.24.5~",
		Approval: models.ApprovedStatus,
	}
}

func testDataset() *Dataset {
	main := &models.RecordsDocument{
		Records: []models.Record{
			{Player: "@alpha", Category: "本家", Course: "No.1", Time: "12.50", RecordDate: "2025-01-03", SubmittedAt: "2025-01-03T10:00:00+09:00", Control: "タッチ", Version: "0.24.5~", Approval: "OK", VideoURL: "https://youtu.be/a"},
			{Player: "@alpha", Category: "本家", Course: "No.1", Time: "11.90", RecordDate: "2025-01-05", SubmittedAt: "2025-01-05T10:00:00+09:00", Control: "コントローラー", Version: "0.24.5~", Approval: ""},
			{Player: "beta", Category: "本家", Course: "No.1", Time: "13.00", RecordDate: "2025-01-01", SubmittedAt: "2025-01-01T09:30:00+09:00", Control: "タッチ", Version: "0.23", Approval: "OK"},
			{Player: "beta", Category: "本家", Course: "No.2", Time: "20.10", RecordDate: "2025-01-02", SubmittedAt: "2025-01-02T12:00:00+09:00", Control: "タッチ(箒あり)", Version: "0.24.5~", Approval: "OK"},
			{Player: "Gamma", Category: "外伝", Course: "EX-1", Time: "30.00", RecordDate: "2025-01-04", SubmittedAt: "2025-01-06T08:00:00+09:00", Control: "コントローラー(箒あり)", Version: "0.23", Approval: "OK", Note: "retry"},
		},
		CourseMaster: []models.Course{
			{Category: "本家", Name: "No.1", Link: "https://example.com/no1"},
			{Category: "本家", Name: "No.2"},
			{Category: "外伝", Name: "EX-1"},
		},
		VersionMaster: []models.Version{{Label: "0.23"}, {Label: "0.24.5~"}},
	}
	challenge := &models.ChallengeDocument{
		ChallengeMaster: []models.Challenge{
			{Name: "全コース制覇", Description: "clear every course", RankList: models.RankList{"C", "B", "A", "S"}},
			{Name: "ノーミス", RankList: nil},
		},
		ChallengeRecords: []models.ChallengeRecord{
			{Challenge: "全コース制覇", Player: "@alpha", Rank: "A", AchievedAt: "2025-02-03", Approval: "OK"},
			{Challenge: "全コース制覇", Player: "beta", Rank: "S", AchievedAt: "2025-02-01", Approval: "OK"},
			{Challenge: "全コース制覇", Player: "Gamma", Rank: "C", AchievedAt: "2025-02-02", Approval: ""},
			{Challenge: "全コース制覇", Player: "delta", Rank: "Z", AchievedAt: "2025-02-04", Approval: "OK"},
			{Challenge: "ノーミス", Player: "beta", AchievedAt: "2025-03-01", Approval: "OK"},
		},
	}
	return NewDataset(main, challenge, tokyo)
}

func players(records []models.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Player
	}
	return out
}

func times(records []models.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Time
	}
	return out
}
