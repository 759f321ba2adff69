// Command seeder writes a synthetic records snapshot for local development.
// With -publish it also stores both documents in published_snapshots so the
// API can run with SNAPSHOT_SOURCE=postgres.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/skyairrace/records-api/internal/models"
	"github.com/skyairrace/records-api/internal/snapshot"
)

var (
	categories = map[string][]string{
		"本家": {"No.1", "No.2", "No.3", "No.4", "No.5"},
		"外伝": {"EX-1", "EX-2", "EX-3"},
	}
	categoryOrder = []string{"本家", "外伝"}
	versions      = []string{"0.22", "0.23", "0.24.5~"}
	players       = []string{"@skyrunner", "@broom_rider", "hayate", "@kaze_no_tami", "mizuki", "@tailwind", "sora", "@nimbus"}
	ranks         = models.RankList{"C", "B", "A", "S"}
)

func main() {
	out := flag.String("out", ".", "directory for data.json and challenge.json")
	seed := flag.Int64("seed", 1, "random seed")
	count := flag.Int("records", 200, "number of records")
	publish := flag.String("publish", "", "Postgres URL to publish the documents to")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.FixedZone("JST", 9*60*60))

	data := buildRecords(rng, base, *count)
	challenge := buildChallenges(rng, base)

	dataJSON, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal data.json: %v", err)
	}
	challengeJSON, err := json.MarshalIndent(challenge, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal challenge.json: %v", err)
	}

	for name, body := range map[string][]byte{"data.json": dataJSON, "challenge.json": challengeJSON} {
		path := filepath.Join(*out, name)
		if err := os.WriteFile(path, body, 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", path, len(body))
	}

	if *publish != "" {
		if err := publishDocuments(*publish, dataJSON, challengeJSON); err != nil {
			log.Fatalf("Failed to publish: %v", err)
		}
		fmt.Println("Published both documents")
	}
}

func buildRecords(rng *rand.Rand, base time.Time, n int) models.RecordsDocument {
	doc := models.RecordsDocument{}
	for _, cat := range categoryOrder {
		for _, course := range categories[cat] {
			doc.CourseMaster = append(doc.CourseMaster, models.Course{
				Category: cat,
				Name:     course,
				Link:     "https://example.com/courses/" + course,
			})
		}
	}
	for _, v := range versions {
		doc.VersionMaster = append(doc.VersionMaster, models.Version{Label: v})
	}

	for i := 0; i < n; i++ {
		c := doc.CourseMaster[rng.Intn(len(doc.CourseMaster))]
		recorded := base.Add(time.Duration(rng.Intn(60*24)) * time.Hour)
		submitted := recorded.Add(time.Duration(rng.Intn(48*60)) * time.Minute)
		r := models.Record{
			Player:      players[rng.Intn(len(players))],
			Category:    c.Category,
			Course:      c.Name,
			Time:        fmt.Sprintf("%.2f", 10+rng.Float64()*50),
			RecordDate:  recorded.Format("2006-01-02"),
			SubmittedAt: submitted.Format(time.RFC3339),
			Control:     models.ControlTypes[rng.Intn(len(models.ControlTypes))].Name,
			Version:     versions[rng.Intn(len(versions))],
		}
		if rng.Intn(4) > 0 {
			r.Approval = models.ApprovedStatus
		}
		if rng.Intn(3) == 0 {
			r.VideoURL = fmt.Sprintf("https://youtu.be/seed%04d", i)
		}
		doc.Records = append(doc.Records, r)
	}
	return doc
}

func buildChallenges(rng *rand.Rand, base time.Time) models.ChallengeDocument {
	doc := models.ChallengeDocument{
		ChallengeMaster: []models.Challenge{
			{Name: "全コース制覇", Description: "Clear every course in one version", RankList: ranks},
			{Name: "ノーミス周回", Description: "Finish No.1 to No.5 without a crash"},
		},
	}
	for _, p := range players {
		if rng.Intn(2) == 0 {
			continue
		}
		doc.ChallengeRecords = append(doc.ChallengeRecords, models.ChallengeRecord{
			Challenge:  "全コース制覇",
			Player:     p,
			Rank:       ranks[rng.Intn(len(ranks))],
			AchievedAt: base.AddDate(0, 0, rng.Intn(90)).Format("2006-01-02"),
			Approval:   models.ApprovedStatus,
		})
	}
	for _, p := range players[:3] {
		doc.ChallengeRecords = append(doc.ChallengeRecords, models.ChallengeRecord{
			Challenge:  "ノーミス周回",
			Player:     p,
			AchievedAt: base.AddDate(0, 1, rng.Intn(30)).Format("2006-01-02"),
		})
	}
	return doc
}

func publishDocuments(url string, data, challenge []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS published_snapshots (
			name         TEXT        NOT NULL,
			body         BYTEA       NOT NULL,
			published_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	batch := &pgx.Batch{}
	batch.Queue(`INSERT INTO published_snapshots (name, body) VALUES ($1, $2)`, snapshot.DocumentRecords, data)
	batch.Queue(`INSERT INTO published_snapshots (name, body) VALUES ($1, $2)`, snapshot.DocumentChallenge, challenge)
	return conn.SendBatch(ctx, batch).Close()
}
