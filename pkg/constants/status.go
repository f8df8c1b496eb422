package constants

import "fmt"

type Status string

const (
	StatusPending Status = "Pending"
	StatusDone    Status = "Done"
	StatusSnoozed Status = "Snoozed"
)

// ParseStatus validates external input against the closed status set.
// Internal callers use the typed constants directly.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusDone, StatusSnoozed:
		return Status(raw), nil
	}
	return "", fmt.Errorf("unsupported status %q", raw)
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func ParsePriority(raw string) (Priority, error) {
	switch Priority(raw) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(raw), nil
	}
	return "", fmt.Errorf("unsupported priority %q", raw)
}
