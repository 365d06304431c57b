package enums

import "fmt"

// ViewingStatus is the state of a watch history entry.
type ViewingStatus string

const (
	ViewingStatusStarted    ViewingStatus = "STARTED"
	ViewingStatusInProgress ViewingStatus = "IN_PROGRESS"
	ViewingStatusCompleted  ViewingStatus = "COMPLETED"
	ViewingStatusAbandoned  ViewingStatus = "ABANDONED"
)

var validViewingStatuses = []ViewingStatus{
	ViewingStatusStarted,
	ViewingStatusInProgress,
	ViewingStatusCompleted,
	ViewingStatusAbandoned,
}

func AllViewingStatuses() []ViewingStatus {
	return append([]ViewingStatus(nil), validViewingStatuses...)
}

func (s ViewingStatus) String() string {
	return string(s)
}

func (s ViewingStatus) IsValid() bool {
	for _, candidate := range validViewingStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ViewingStatusForProgress derives the status from a progress percentage.
// Progress is not clamped; anything at or above 100 counts as completed.
func ViewingStatusForProgress(progress int) ViewingStatus {
	switch {
	case progress >= 100:
		return ViewingStatusCompleted
	case progress > 0:
		return ViewingStatusInProgress
	default:
		return ViewingStatusStarted
	}
}

func ParseViewingStatus(value string) (ViewingStatus, error) {
	for _, candidate := range validViewingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid viewing status %q", value)
}
