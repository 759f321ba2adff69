package handlers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skyairrace/records-api/internal/logic"
	"github.com/skyairrace/records-api/internal/models"
)

// MockSnapshot serves a fixed dataset, or none when ds is nil
type MockSnapshot struct {
	ds *logic.Dataset
}

func (m *MockSnapshot) Current() (*logic.Dataset, error) {
	if m.ds == nil {
		return nil, logic.ErrSnapshotUnavailable
	}
	return m.ds, nil
}

// MockReloader
type MockReloader struct {
	ReloadFunc func(ctx context.Context) (*logic.Dataset, error)
	calls      int
}

func (m *MockReloader) Reload(ctx context.Context) (*logic.Dataset, error) {
	m.calls++
	return m.ReloadFunc(ctx)
}

// MockRedis is an in-memory cache.RedisClient
type MockRedis struct {
	data map[string]string
}

func (m *MockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if v, ok := m.data[key]; ok {
		cmd.SetVal(v)
	} else {
		cmd.SetErr(redis.Nil)
	}
	return cmd
}

func (m *MockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = string(value.([]byte))
	cmd := redis.NewStatusCmd(ctx, "set", key)
	cmd.SetVal("OK")
	return cmd
}

func (m *MockRedis) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "ping")
	cmd.SetVal("PONG")
	return cmd
}

var tokyo = time.FixedZone("JST", 9*60*60)

func testDataset() *logic.Dataset {
	main := &models.RecordsDocument{
		Records: []models.Record{
			{Player: "@alpha", Category: "本家", Course: "No.1", Time: "12.50", RecordDate: "2025-01-03", SubmittedAt: "2025-01-03T10:00:00+09:00", Control: "タッチ", Version: "0.24.5~", Approval: "OK", VideoURL: "https://youtu.be/a"},
			{Player: "@alpha", Category: "本家", Course: "No.1", Time: "11.90", RecordDate: "2025-01-05", SubmittedAt: "2025-01-05T10:00:00+09:00", Control: "コントローラー", Version: "0.24.5~", Approval: ""},
			{Player: "beta", Category: "本家", Course: "No.1", Time: "13.00", RecordDate: "2025-01-01", SubmittedAt: "2025-01-01T09:30:00+09:00", Control: "タッチ", Version: "0.23", Approval: "OK"},
			{Player: "beta", Category: "本家", Course: "No.2", Time: "20.10", RecordDate: "2025-01-02", SubmittedAt: "2025-01-02T12:00:00+09:00", Control: "タッチ(箒あり)", Version: "0.24.5~", Approval: "OK"},
			{Player: "Gamma", Category: "外伝", Course: "EX-1", Time: "30.00", RecordDate: "2025-01-04", SubmittedAt: "2025-01-06T08:00:00+09:00", Control: "コントローラー(箒あり)", Version: "0.23", Approval: "OK"},
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
			{Name: "ノーミス"},
		},
		ChallengeRecords: []models.ChallengeRecord{
			{Challenge: "全コース制覇", Player: "@alpha", Rank: "A", AchievedAt: "2025-02-03", Approval: "OK"},
			{Challenge: "全コース制覇", Player: "beta", Rank: "S", AchievedAt: "2025-02-01", Approval: "OK"},
			{Challenge: "全コース制覇", Player: "Gamma", Rank: "C", AchievedAt: "2025-02-02", Approval: ""},
			{Challenge: "全コース制覇", Player: "delta", Rank: "Z", AchievedAt: "2025-02-04", Approval: "OK"},
			{Challenge: "ノーミス", Player: "beta", AchievedAt: "2025-03-01", Approval: "OK"},
		},
	}
	return logic.NewDataset(main, challenge, tokyo)
}
