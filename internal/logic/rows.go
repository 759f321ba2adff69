package logic

import (
	"net/url"
	"strings"
	"time"

	"github.com/skyairrace/records-api/internal/models"
)

// Status labels shown in the approval column.
const (
	StatusApproved = "承認済"
	StatusPending  = "未承認"
)

// PlayerPath is the player page deep link.
func PlayerPath(player string) string {
	if XHandle(player) == "" {
		return ""
	}
	return "player.html?" + url.Values{"user": {player}}.Encode()
}

// CoursePath is the ranking page deep link for a course.
func CoursePath(category, course string) string {
	v := url.Values{}
	v.Set("category", category)
	v.Set("course", course)
	return "index.html?" + v.Encode()
}

// XHandle strips the leading "@" that marks a social-media handle.
func XHandle(player string) string {
	return strings.TrimPrefix(player, "@")
}

// ProfileURL links a player identifier to its X profile.
func ProfileURL(player string) string {
	handle := XHandle(player)
	if handle == "" {
		return ""
	}
	return "https://x.com/" + url.PathEscape(handle)
}

func statusLabel(approved bool) string {
	if approved {
		return StatusApproved
	}
	return StatusPending
}

// RecordRows converts records into display rows. Missing values render as "-".
func RecordRows(records []models.Record, loc *time.Location, numbered bool) []models.RecordRow {
	rows := make([]models.RecordRow, len(records))
	for i, r := range records {
		row := models.RecordRow{
			Player:      orDash(r.Player),
			PlayerURL:   PlayerPath(r.Player),
			Category:    orDash(r.Category),
			Course:      orDash(r.Course),
			Time:        orDash(r.Time),
			RecordDate:  FormatDate(r.RecordDate, loc),
			SubmittedAt: FormatDateTime(r.SubmittedAt, loc),
			Control:     orDash(r.Control),
			ControlIcon: models.ControlIcon(r.Control),
			Version:     orDash(r.Version),
			VideoURL:    r.VideoURL,
			HasVideo:    strings.TrimSpace(r.VideoURL) != "",
			Approved:    r.Approved(),
			Status:      statusLabel(r.Approved()),
			Note:        r.Note,
		}
		if r.Category != "" && r.Course != "" {
			row.CourseURL = CoursePath(r.Category, r.Course)
		}
		if numbered {
			row.Position = i + 1
		}
		rows[i] = row
	}
	return rows
}

// ChallengeRows converts achievements into numbered display rows.
func ChallengeRows(records []models.ChallengeRecord, loc *time.Location, withRank bool) []models.ChallengeRow {
	rows := make([]models.ChallengeRow, len(records))
	for i, r := range records {
		row := models.ChallengeRow{
			Position:   i + 1,
			AchievedAt: FormatDate(r.AchievedAt, loc),
			Player:     orDash(r.Player),
			PlayerURL:  PlayerPath(r.Player),
			VideoURL:   r.VideoURL,
			HasVideo:   strings.TrimSpace(r.VideoURL) != "",
			Approved:   r.Approved(),
			Status:     statusLabel(r.Approved()),
		}
		if withRank {
			row.Rank = orDash(r.Rank)
		}
		rows[i] = row
	}
	return rows
}
