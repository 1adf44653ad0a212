// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskflow/internal/service"
	"taskflow/internal/view"
)

// statusMarkers map each canonical status to its row marker.
var statusMarkers = map[service.Status]string{
	service.StatusPending:    "[ ]",
	service.StatusInProgress: "[>]",
	service.StatusCompleted:  "[x]",
}

// FormatTask formats one task row.
// Format: "{N:>4}  {MARKER} {DATE}  {TITLE}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	marker, ok := statusMarkers[task.Status]
	if !ok {
		marker = statusMarkers[service.StatusPending]
	}
	fmt.Fprintf(w, "%4d  %s %s  %s\n", num, marker, task.Date, normalizeTitle(task.Title))
}

// FormatPageFooter formats the pagination footer under a task listing.
func FormatPageFooter(w io.Writer, page view.Page) {
	noun := "tasks"
	if page.TotalCount == 1 {
		noun = "task"
	}
	fmt.Fprintf(w, "page %d of %d (%d %s)\n", page.Number, page.TotalPages, page.TotalCount, noun)
}

// FormatUser formats one user row for the admin listing.
// Format: "{ID:>4}  {ROLE:<5}  {STATE:<8}  {NAME} <{EMAIL}>\n"
func FormatUser(w io.Writer, user service.User) {
	state := "inactive"
	if user.Active {
		state = "active"
	}
	fmt.Fprintf(w, "%4d  %-5s  %-8s  %s <%s>\n", user.ID, user.Role, state, user.Name(), user.Email)
}

// FormatDay formats one calendar day's tasks: the date header followed by
// indented task rows.
func FormatDay(w io.Writer, date string, tasks []service.Task) {
	noun := "tasks"
	if len(tasks) == 1 {
		noun = "task"
	}
	fmt.Fprintf(w, "%s  (%d %s)\n", date, len(tasks), noun)
	for _, t := range tasks {
		marker, ok := statusMarkers[t.Status]
		if !ok {
			marker = statusMarkers[service.StatusPending]
		}
		fmt.Fprintf(w, "      %s %s\n", marker, normalizeTitle(t.Title))
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
