package logic

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// leadingFloat matches the numeric prefix of a time cell such as "12.50" or
// "12.50秒". Trailing text is ignored.
var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseSeconds parses a record time. It returns NaN when the cell has no
// numeric prefix.
func ParseSeconds(s string) float64 {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
}

// ParseInstant parses a date or timestamp cell. Values without a zone are
// read in loc. The boolean is false when no layout matches.
func ParseInstant(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a cell as YYYY/MM/DD in loc, or "-".
func FormatDate(s string, loc *time.Location) string {
	t, ok := ParseInstant(s, loc)
	if !ok {
		return "-"
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("2006/01/02")
}

// FormatDateTime renders a cell as YYYY/MM/DD HH:MM in loc, or "-".
func FormatDateTime(s string, loc *time.Location) string {
	t, ok := ParseInstant(s, loc)
	if !ok {
		return "-"
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("2006/01/02 15:04")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
