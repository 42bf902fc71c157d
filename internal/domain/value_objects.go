package domain

import (
	"fmt"
	"strings"
	"time"
)

// Task is a normalized task identifier. Two tasks are the same entity iff
// their identifiers are equal.
type Task string

// String returns the identifier text.
func (t Task) String() string {
	return string(t)
}

// NormalizeTask canonicalizes user-entered text into a task identifier.
// Line breaks become spaces so the identifier fits on one line of the task file.
// An empty result means the input carries no task.
func NormalizeTask(text string) Task {
	text = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(text)
	return Task(strings.ToUpper(strings.TrimSpace(text)))
}

// NewTaskType validates and creates a TaskType. Matching is case-insensitive;
// an empty string yields the default type.
func NewTaskType(s string) (TaskType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultTaskType, nil
	}
	for _, t := range TaskTypes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidTaskType, s)
}

// NewTaskPriority validates and creates a TaskPriority. Matching is
// case-insensitive; an empty string yields the default priority.
func NewTaskPriority(s string) (TaskPriority, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultTaskPriority, nil
	}
	for _, p := range TaskPriorities {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidTaskPriority, s)
}

// DateLayout is the persisted form of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar day without time or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDeadline, s)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current calendar day in loc.
func Today(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return DateOf(now.In(loc))
}

func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return d.midnight().Format(DateLayout)
}

// DaysUntil returns the signed number of days from d to other.
func (d Date) DaysUntil(other Date) int {
	// UTC midnights have no DST transitions, so every day is exactly 86400s.
	// Unix seconds avoid the ~292 year limit of time.Duration.
	return int((other.midnight().Unix() - d.midnight().Unix()) / 86400)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.midnight().AddDate(0, 0, n))
}
