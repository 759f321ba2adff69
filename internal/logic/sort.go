package logic

import (
	"bytes"
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/skyairrace/records-api/internal/models"
)

// SortState is the selected column and direction.
type SortState struct {
	Key   models.SortKey
	Order models.SortOrder
}

// DefaultSort is fastest first.
func DefaultSort() SortState {
	return SortState{Key: models.SortByTime, Order: models.Ascending}
}

// Toggle returns the state after the user picks key: the same key flips
// direction, a different key starts ascending. Time always starts
// ascending so the fastest run leads.
func (s SortState) Toggle(key models.SortKey) SortState {
	if s.Key == key {
		return SortState{Key: key, Order: s.Order.Flip()}
	}
	return SortState{Key: key, Order: models.Ascending}
}

// sortValue is a precomputed comparison key. Invalid values (NaN times,
// unparsable dates) sort after every valid value in both directions.
type sortValue struct {
	num   float64
	text  []byte
	valid bool
}

func compareValues(a, b sortValue, order models.SortOrder) int {
	switch {
	case !a.valid && !b.valid:
		return 0
	case !a.valid:
		return 1
	case !b.valid:
		return -1
	}
	c := cmp.Compare(a.num, b.num)
	if c == 0 && (a.text != nil || b.text != nil) {
		c = bytes.Compare(a.text, b.text)
	}
	if order == models.Descending {
		c = -c
	}
	return c
}

// stableSort returns a sorted copy of items. Equal keys keep input order.
func stableSort[T any](items []T, value func(T) sortValue, order models.SortOrder) []T {
	type keyed struct {
		item T
		key  sortValue
	}
	tmp := make([]keyed, len(items))
	for i, it := range items {
		tmp[i] = keyed{item: it, key: value(it)}
	}
	slices.SortStableFunc(tmp, func(a, b keyed) int {
		return compareValues(a.key, b.key, order)
	})
	out := make([]T, len(tmp))
	for i, k := range tmp {
		out[i] = k.item
	}
	return out
}

func numberValue(f float64) sortValue {
	return sortValue{num: f, valid: !math.IsNaN(f)}
}

func instantValue(s string, loc *time.Location) sortValue {
	t, ok := ParseInstant(s, loc)
	if !ok {
		return sortValue{}
	}
	return sortValue{num: float64(t.UnixMilli()), valid: true}
}

// newCollator builds a case-insensitive Japanese-aware collator. Collators
// keep internal buffers, so one is created per sort call.
func newCollator() *collate.Collator {
	return collate.New(language.Japanese, collate.IgnoreCase, collate.IgnoreWidth)
}

func textValue(c *collate.Collator, buf *collate.Buffer, s string) sortValue {
	key := c.KeyFromString(buf, strings.ToLower(s))
	return sortValue{text: bytes.Clone(key), valid: true}
}

// SortRecords returns records ordered by s. Dates without an offset are read
// in loc.
func SortRecords(records []models.Record, s SortState, loc *time.Location) []models.Record {
	if s.Order == "" {
		s.Order = models.Ascending
	}
	var value func(models.Record) sortValue
	switch s.Key {
	case models.SortByPlayer:
		c := newCollator()
		var buf collate.Buffer
		value = func(r models.Record) sortValue { return textValue(c, &buf, r.Player) }
	case models.SortByRecordDate:
		value = func(r models.Record) sortValue { return instantValue(r.RecordDate, loc) }
	case models.SortBySubmittedAt:
		value = func(r models.Record) sortValue { return instantValue(r.SubmittedAt, loc) }
	default:
		value = func(r models.Record) sortValue { return numberValue(ParseSeconds(r.Time)) }
	}
	return stableSort(records, value, s.Order)
}

// SortChallengeRecords orders achievements by achieved date.
func SortChallengeRecords(records []models.ChallengeRecord, order models.SortOrder, loc *time.Location) []models.ChallengeRecord {
	return stableSort(records, func(r models.ChallengeRecord) sortValue {
		return instantValue(r.AchievedAt, loc)
	}, order)
}
