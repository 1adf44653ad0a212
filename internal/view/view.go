// Package view derives the displayed task slice from the full collection:
// filtering by a named criterion, sorting by date, and paginating. All
// functions are pure; the store's snapshot is never modified.
package view

import (
	"fmt"
	"sort"
	"strings"

	"taskflow/internal/service"
)

// Criterion is a named predicate selecting a subset of tasks.
type Criterion string

// Filter criteria.
const (
	All        Criterion = "all"
	Today      Criterion = "today"
	Upcoming   Criterion = "upcoming"
	Completed  Criterion = "completed"
	Pending    Criterion = "pending"
	InProgress Criterion = "in-progress"
)

// Criteria lists the valid criteria in display order.
var Criteria = []Criterion{All, Today, Upcoming, Completed, Pending, InProgress}

// ParseCriterion parses a user-supplied filter name.
func ParseCriterion(s string) (Criterion, error) {
	c := Criterion(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Criteria {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown filter: %s", s)
}

// Matches reports whether the task satisfies the criterion relative to
// refDate. Date comparisons are lexicographic on ISO YYYY-MM-DD dates,
// which is date-order-equivalent.
func (c Criterion) Matches(t service.Task, refDate string) bool {
	switch c {
	case Today:
		return t.Date == refDate
	case Upcoming:
		return t.Date > refDate
	case Completed:
		return t.Status == service.StatusCompleted
	case Pending:
		return t.Status == service.StatusPending
	case InProgress:
		return t.Status == service.StatusInProgress
	default:
		return true
	}
}

// Page is one displayed slice of the filtered, sorted collection.
type Page struct {
	Items      []service.Task
	TotalCount int
	TotalPages int
	Number     int // clamped page number actually shown
}

// Derive filters tasks by the criterion relative to refDate, sorts the
// matches by date descending (stable, so same-date tasks keep their
// fetch order), and returns the requested page.
//
// TotalPages is at least 1 even for an empty result, and the page number
// is clamped into [1, TotalPages] so an out-of-range request never shows
// an empty page while tasks exist.
func Derive(tasks []service.Task, c Criterion, refDate string, pageSize, pageNumber int) Page {
	if pageSize < 1 {
		pageSize = 1
	}

	filtered := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if c.Matches(t, refDate) {
			filtered = append(filtered, t)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date > filtered[j].Date
	})

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber > totalPages {
		pageNumber = totalPages
	}

	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      filtered[start:end],
		TotalCount: total,
		TotalPages: totalPages,
		Number:     pageNumber,
	}
}

// OnDate returns the tasks due on the given ISO date, in fetch order.
func OnDate(tasks []service.Task, date string) []service.Task {
	var out []service.Task
	for _, t := range tasks {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out
}

// ByDate groups the tasks of one month (ISO "YYYY-MM" prefix) by their
// full date. Used by the calendar view.
func ByDate(tasks []service.Task, month string) map[string][]service.Task {
	out := make(map[string][]service.Task)
	for _, t := range tasks {
		if strings.HasPrefix(t.Date, month+"-") {
			out[t.Date] = append(out[t.Date], t)
		}
	}
	return out
}
