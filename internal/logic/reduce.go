package logic

import (
	"math"

	"github.com/skyairrace/records-api/internal/models"
)

// KeyFunc groups records for BestPerKey.
type KeyFunc func(models.Record) string

// PlayerKey groups by player identifier.
func PlayerKey(r models.Record) string { return r.Player }

// CourseKey groups by (category, course).
func CourseKey(r models.Record) string { return r.Category + "\x00" + r.Course }

// BestPerKey keeps the fastest record of every key. Keys appear in the
// order they were first seen. On equal times the earlier record wins. A kept
// record whose time does not parse is replaced by the next record of the
// same key that does, so the survivor is never slower than a parseable
// candidate.
func BestPerKey(records []models.Record, key KeyFunc) []models.Record {
	type best struct {
		record  models.Record
		seconds float64
	}

	index := make(map[string]int)
	kept := make([]best, 0)
	for _, r := range records {
		k := key(r)
		secs := ParseSeconds(r.Time)
		i, ok := index[k]
		if !ok {
			index[k] = len(kept)
			kept = append(kept, best{record: r, seconds: secs})
			continue
		}
		cur := kept[i].seconds
		if math.IsNaN(secs) {
			continue
		}
		if math.IsNaN(cur) || secs < cur {
			kept[i] = best{record: r, seconds: secs}
		}
	}

	out := make([]models.Record, len(kept))
	for i, b := range kept {
		out[i] = b.record
	}
	return out
}

// BestPerPlayer is BestPerKey grouped by player.
func BestPerPlayer(records []models.Record) []models.Record {
	return BestPerKey(records, PlayerKey)
}
