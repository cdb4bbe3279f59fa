package insight

import (
	"strings"
	"time"
)

// absoluteLayouts are tried in order for direct calendar parsing
var absoluteLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
}

// Weekday keywords recognized for relative due dates. Coverage is friday,
// monday and tuesday only, matching what the extraction prompts actually
// produce; the remaining weekdays fall through to a nil due date.
var relativeWeekdays = []struct {
	keyword string
	day     time.Weekday
}{
	{"friday", time.Friday},
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
}

// normalizeDueDate converts a free-text due-date expression into an absolute
// date, or nil when the expression is empty or unparseable. It never fails:
// a bad date must not abort ingestion.
func normalizeDueDate(raw string, now time.Time) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, layout := range absoluteLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return &d
		}
	}

	lower := strings.ToLower(raw)
	for _, wd := range relativeWeekdays {
		if strings.Contains(lower, wd.keyword) {
			d := nextWeekday(now, wd.day)
			return &d
		}
	}
	if strings.Contains(lower, "next week") {
		d := now.AddDate(0, 0, 7)
		return &d
	}

	return nil
}

// nextWeekday returns the next occurrence of day strictly after now; when
// now already falls on that weekday it rolls forward a full week.
func nextWeekday(now time.Time, day time.Weekday) time.Time {
	offset := (int(day) - int(now.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return now.AddDate(0, 0, offset)
}
