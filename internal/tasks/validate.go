package tasks

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"teamtask-api/internal/apperror"
	"teamtask-api/internal/models"
)

// MinAssignees and MaxAssignees bound the active assignee rows a task or
// subtask may be created with.
const (
	MinAssignees = 1
	MaxAssignees = 5
)

// DefaultNotes is the placeholder stored when a request omits notes.
const DefaultNotes = "No notes..."

// IDList decodes a JSON array of staff ids. Clients are sloppy here:
// string-encoded numbers are coerced, and any non-array value (null, string,
// object) is treated as an empty list so the count validation catches it.
type IDList []uint

func (l *IDList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = IDList{}
		return nil
	}
	out := make(IDList, 0, len(raw))
	for _, r := range raw {
		var n uint
		if err := json.Unmarshal(r, &n); err == nil {
			out = append(out, n)
			continue
		}
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			if v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32); err == nil {
				out = append(out, uint(v))
			}
		}
	}
	*l = out
	return nil
}

// FlexPriority accepts a number or a numeric string; anything else, or a
// value outside 1-10, leaves the priority unset.
type FlexPriority struct {
	Value *int
}

func (p *FlexPriority) UnmarshalJSON(data []byte) error {
	p.Value = nil
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if n >= 1 && n <= 10 {
			p.Value = &n
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v >= 1 && v <= 10 {
			p.Value = &v
		}
	}
	return nil
}

// SubtaskList treats a non-array subtasks value as empty.
type SubtaskList []SubtaskRequest

func (l *SubtaskList) UnmarshalJSON(data []byte) error {
	var raw []SubtaskRequest
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = SubtaskList{}
		return nil
	}
	*l = raw
	return nil
}

// CreateTaskRequest is the payload for POST /api/tasks.
type CreateTaskRequest struct {
	Title       string            `json:"title" binding:"required"`
	StartDate   string            `json:"start_date"`
	DueDate     string            `json:"due_date"`
	Status      models.TaskStatus `json:"status"`
	Priority    FlexPriority      `json:"priority"`
	Notes       *string           `json:"notes"`
	Tags        []string          `json:"tags"`
	ProjectID   *string           `json:"project_id"`
	AssigneeIDs IDList            `json:"assignee_ids"`
	Subtasks    SubtaskList       `json:"subtasks"`
}

// SubtaskRequest is a nested subtask within a creation request.
type SubtaskRequest struct {
	Title       string            `json:"title"`
	StartDate   string            `json:"start_date"`
	DueDate     string            `json:"due_date"`
	Status      models.TaskStatus `json:"status"`
	Priority    FlexPriority      `json:"priority"`
	Notes       *string           `json:"notes"`
	Tags        []string          `json:"tags"`
	AssigneeIDs IDList            `json:"assignee_ids"`
}

// validate checks the top-level payload before any write happens. Subtask
// assignees are validated later, inside the creation loop, because by then
// the parent is committed and a failure must trigger rollback.
func (r *CreateTaskRequest) validate() error {
	if r.Status != "" && !models.ValidStatus(r.Status) {
		return apperror.Validation("Invalid status value")
	}
	switch {
	case len(r.AssigneeIDs) < MinAssignees:
		return apperror.Validation("At least one assignee is required for the task")
	case len(r.AssigneeIDs) > MaxAssignees:
		return apperror.Validation("Maximum 5 assignees allowed per task")
	}
	return nil
}

// validateSubtaskAssignees checks the assignee bounds of the index-th
// subtask (zero-based); errors are prefixed with its ordinal.
func validateSubtaskAssignees(index int, ids IDList) error {
	switch {
	case len(ids) < MinAssignees:
		return apperror.Validation(fmt.Sprintf("Subtask %d: At least one assignee is required", index+1))
	case len(ids) > MaxAssignees:
		return apperror.Validation(fmt.Sprintf("Subtask %d: Maximum 5 assignees allowed", index+1))
	}
	return nil
}

// parseDateFlexible accepts the date layouts clients actually send.
func parseDateFlexible(dateStr string) *time.Time {
	if dateStr == "" {
		return nil
	}
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2 Jan 2006",
		"02 Jan 2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return &t
		}
	}
	return nil
}

// ParseDate exposes the flexible date parsing for the update handlers.
func ParseDate(s string) *time.Time {
	return parseDateFlexible(s)
}

func normalizeStatus(s models.TaskStatus) models.TaskStatus {
	if models.ValidStatus(s) {
		return s
	}
	return models.StatusNotStarted
}

func normalizeNotes(notes *string) string {
	if notes == nil || strings.TrimSpace(*notes) == "" {
		return DefaultNotes
	}
	return *notes
}
