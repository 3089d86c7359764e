package usecase

import (
	"regexp"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

const monthNames = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

var (
	monthDayYearPattern = regexp.MustCompile(`(?i)\b(?:` + monthNames + `)\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b`)
	dayMonthYearPattern = regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?\s+(?:` + monthNames + `)\.?,?\s+\d{4}\b`)
	isoDatePattern      = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	slashDatePattern    = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)
	hoursAgoPattern     = regexp.MustCompile(`(?i)\b(\d+)\s+hours?\s+ago\b`)
	daysAgoPattern      = regexp.MustCompile(`(?i)\b(\d+)\s+days?\s+ago\b`)
	yesterdayPattern    = regexp.MustCompile(`(?i)\byesterday\b`)
	todayPattern        = regexp.MustCompile(`(?i)\btoday\b`)
)

// DateExtractor recovers a publication timestamp from unstructured article
// text when the provider omits one. Best effort: no match means no date,
// never an error.
type DateExtractor struct {
	now func() time.Time
}

func NewDateExtractor() *DateExtractor {
	return &DateExtractor{now: time.Now}
}

// WithClock replaces the extractor's clock. Relative patterns ("3 days
// ago") offset from it. Test hook.
func (e *DateExtractor) WithClock(now func() time.Time) *DateExtractor {
	e.now = now
	return e
}

// Extract applies the pattern list in order and returns the first date it
// can both match and parse. A matched substring that fails to parse falls
// through to the next pattern.
func (e *DateExtractor) Extract(text string) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}

	absolutePatterns := []*regexp.Regexp{
		monthDayYearPattern,
		dayMonthYearPattern,
		isoDatePattern,
		slashDatePattern,
	}

	for _, pattern := range absolutePatterns {
		match := pattern.FindString(text)
		if match == "" {
			continue
		}
		parsed, err := dateparse.ParseAny(match)
		if err != nil {
			continue
		}
		return parsed, true
	}

	if m := hoursAgoPattern.FindStringSubmatch(text); m != nil {
		if hours, err := strconv.Atoi(m[1]); err == nil {
			return e.now().Add(-time.Duration(hours) * time.Hour), true
		}
	}

	if m := daysAgoPattern.FindStringSubmatch(text); m != nil {
		if days, err := strconv.Atoi(m[1]); err == nil {
			return e.now().AddDate(0, 0, -days), true
		}
	}

	if yesterdayPattern.MatchString(text) {
		return e.now().AddDate(0, 0, -1), true
	}

	if todayPattern.MatchString(text) {
		return e.now(), true
	}

	return time.Time{}, false
}
