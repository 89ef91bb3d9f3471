package internal

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tj/go-naturaldate"
)

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// naturalPhrases gate the natural language parser, which otherwise accepts
// random words as "now".
var naturalPhrases = []string{
	"next ", "last ", "in ", "ago", "from now", "tomorrow at", "yesterday at",
	"this ", "coming ", "following ",
}

var dueTagRegex = regexp.MustCompile(`(^|\s+)due:(\S+)`)

// ParseDueDate parses a due date relative to now. It accepts ISO and short
// month/day dates, "today", "tomorrow", weekday names and phrases such as
// "next friday" or "in 2 weeks". The result is the end of that day. Empty
// input yields nil.
func ParseDueDate(input string, now time.Time) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	if due := parseFixedDate(strings.ToLower(input), now); due != nil {
		return due, nil
	}

	lower := strings.ToLower(input)
	natural := false
	for _, phrase := range naturalPhrases {
		if strings.Contains(lower, phrase) {
			natural = true
			break
		}
	}
	if !natural {
		return nil, fmt.Errorf("unrecognized date %q", input)
	}

	result, err := naturaldate.Parse(input, now, naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return nil, fmt.Errorf("unrecognized date %q: %w", input, err)
	}
	due := endOfDay(result)
	return &due, nil
}

func parseFixedDate(s string, now time.Time) *time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch s {
	case "today":
		due := endOfDay(today)
		return &due
	case "tomorrow":
		due := endOfDay(today.AddDate(0, 0, 1))
		return &due
	}
	if wd, ok := weekdays[s]; ok {
		due := endOfDay(nextWeekday(today, wd))
		return &due
	}

	for _, format := range []string{"2006-01-02", "2006/01/02"} {
		if parsed, err := time.Parse(format, s); err == nil {
			due := endOfDay(time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, now.Location()))
			return &due
		}
	}

	// Without a year the next occurrence wins.
	for _, format := range []string{"01-02", "01/02", "1/2", "1-2"} {
		if parsed, err := time.Parse(format, s); err == nil {
			due := endOfDay(time.Date(now.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, now.Location()))
			if due.Before(now) {
				due = due.AddDate(1, 0, 0)
			}
			return &due
		}
	}
	return nil
}

// nextWeekday returns the first day strictly after today falling on wd.
func nextWeekday(today time.Time, wd time.Weekday) time.Time {
	days := (int(wd) - int(today.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return today.AddDate(0, 0, days)
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// ExtractDueFromTitle strips a single-word due:DATE tag from title.
func ExtractDueFromTitle(title string, now time.Time) (string, *time.Time, error) {
	match := dueTagRegex.FindStringSubmatch(title)
	if match == nil {
		return title, nil, nil
	}
	due, err := ParseDueDate(match[2], now)
	if err != nil {
		return title, nil, err
	}
	clean := strings.TrimSpace(dueTagRegex.ReplaceAllString(title, " "))
	clean = regexp.MustCompile(`\s+`).ReplaceAllString(clean, " ")
	return clean, due, nil
}
