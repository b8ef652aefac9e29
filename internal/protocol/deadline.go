package protocol

import (
	"regexp"
	"time"
)

// deadlineRe matches an embedded deadline token such as "Срок: 15.03.2025"
// anywhere in an item's text.
var deadlineRe = regexp.MustCompile(`Срок:\s*(\d{2}\.\d{2}\.\d{4})`)

// DateLayout is the date form used throughout protocol documents.
const DateLayout = "02.01.2006"

// FindDeadline returns the first embedded deadline date in item, unparsed.
// ok is false when the item carries no deadline token.
func FindDeadline(item string) (date string, ok bool) {
	if m := deadlineRe.FindStringSubmatch(item); m != nil {
		return m[1], true
	}
	return "", false
}

// IsOverdue reports whether item's embedded deadline is on or before today,
// compared at calendar-day granularity. An item without a deadline token is
// not overdue; neither is one whose date fails strict DD.MM.YYYY parsing
// (e.g. an out-of-range day).
func IsOverdue(item string, today time.Time) bool {
	date, ok := FindDeadline(item)
	if !ok {
		return false
	}
	deadline, err := time.ParseInLocation(DateLayout, date, today.Location())
	if err != nil {
		return false
	}
	y, m, d := today.Date()
	return !deadline.After(time.Date(y, m, d, 0, 0, 0, 0, today.Location()))
}
