package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// TaskCandidate is the caller-supplied shape of a task for Create and Update.
// It deliberately carries no ID or CreatedAt: both are server-assigned and
// immutable, so a client cannot even express an override.
type TaskCandidate struct {
	Title       string
	Description string
	State       TaskState
	DueDate     *time.Time
}

// FieldError is a single validation failure scoped to one field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Validation error codes.
const (
	CodeRequired   = "Required"
	CodeTooLong    = "TooLong"
	CodeInvalid    = "Invalid"
	CodeOutOfRange = "OutOfRange"
)

// Field names used in validation errors.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldState       = "state"
	FieldDueDate     = "dueDate"
)

// FieldErrors is the result of validating a TaskCandidate. It implements
// error so the service layer can return it through an ordinary error value;
// callers unwrap it with errors.As to render per-field messages.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ByField groups the errors into a field → messages mapping.
func (e FieldErrors) ByField() map[string][]string {
	if len(e) == 0 {
		return nil
	}
	m := make(map[string][]string, len(e))
	for _, fe := range e {
		m[fe.Field] = append(m[fe.Field], fe.Message)
	}
	return m
}

// ValidateTask checks a candidate's fields and returns every failure found.
// Checks run in order title, description, state, dueDate and are independent
// of each other, so multiple errors can surface in one pass. A nil result
// means the candidate is acceptable for persistence.
//
// The function is pure: now is the reference instant for the due-date window
// and must be supplied by the caller. No storage access happens here.
func ValidateTask(c TaskCandidate, now time.Time) FieldErrors {
	var errs FieldErrors

	if fe := validateText(FieldTitle, c.Title, MaxTitleLen); fe != nil {
		errs = append(errs, *fe)
	}
	if fe := validateText(FieldDescription, c.Description, MaxDescriptionLen); fe != nil {
		errs = append(errs, *fe)
	}
	if !c.State.Valid() {
		errs = append(errs, FieldError{
			Field:   FieldState,
			Code:    CodeInvalid,
			Message: fmt.Sprintf("state %d is not a defined task state", c.State),
		})
	}
	if fe := validateDueDate(c.DueDate, now); fe != nil {
		errs = append(errs, *fe)
	}

	return errs
}

// validateText applies the shared title/description rule: required after
// trimming, and within the length bound. The length check runs on the raw
// value, before trimming: a value that only fits after trimming is still
// rejected. Required suppresses TooLong so a field never carries both.
func validateText(field, raw string, maxLen int) *FieldError {
	if strings.TrimSpace(raw) == "" {
		return &FieldError{
			Field:   field,
			Code:    CodeRequired,
			Message: field + " is required",
		}
	}
	if utf8.RuneCountInString(raw) > maxLen {
		return &FieldError{
			Field:   field,
			Code:    CodeTooLong,
			Message: fmt.Sprintf("%s must be at most %d characters", field, maxLen),
		}
	}
	return nil
}

// validateDueDate accepts an absent due date; a present one must fall within
// [now, now + 3 years]. The message carries both computed bounds so the
// caller can render them.
func validateDueDate(due *time.Time, now time.Time) *FieldError {
	if due == nil {
		return nil
	}
	max := now.AddDate(DueDateHorizon, 0, 0)
	if due.Before(now) || due.After(max) {
		return &FieldError{
			Field: FieldDueDate,
			Code:  CodeOutOfRange,
			Message: fmt.Sprintf("due date must be between %s and %s",
				now.Format(time.RFC3339), max.Format(time.RFC3339)),
		}
	}
	return nil
}
