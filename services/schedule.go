package services

import (
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"
)

// ScheduleKind selects which time-bound collection a conflict check runs
// against. Checks are never cross-entity: a session only conflicts with
// other sessions, and so on.
type ScheduleKind string

const (
	ScheduleSessions      ScheduleKind = "sessions"
	ScheduleAppointments  ScheduleKind = "appointments"
	ScheduleConsultations ScheduleKind = "consultations"
)

// ScheduleConflict is an existing record overlapping a candidate slot,
// with the client display name resolved for the caller.
type ScheduleConflict struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
}

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidTimeOfDay reports whether s is a zero-padded "15:04" time. The
// fixed-width format is what makes lexicographic interval comparison valid.
func IsValidTimeOfDay(s string) bool {
	return timeOfDayRe.MatchString(s)
}

// IsValidDate reports whether s is a "2006-01-02" calendar date
func IsValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidateTimeSlot checks the date and the [start,end) range of a candidate slot
func ValidateTimeSlot(date, start, end string) error {
	if !IsValidDate(date) {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	if !IsValidTimeOfDay(start) || !IsValidTimeOfDay(end) {
		return fmt.Errorf("invalid time range, expected zero-padded HH:MM")
	}
	if start >= end {
		return fmt.Errorf("start time must be before end time")
	}
	return nil
}

// FindScheduleConflicts returns the records of the given kind owned by the
// same lawyer on the same date whose [start,end) range overlaps the
// candidate slot: existing.start < candidate.end AND existing.end >
// candidate.start. Back-to-back slots (end == start) are not conflicts.
//
// This is a plain read followed by the caller's write; two concurrent
// requests racing on the same slot can both pass. Known limitation.
func FindScheduleConflicts(db *gorm.DB, kind ScheduleKind, lawyerID, date, start, end, excludeID string) ([]ScheduleConflict, error) {
	var conflicts []ScheduleConflict

	query := db.Table(string(kind)+" AS t").
		Select("t.id, t.date, t.start_time, t.end_time, t.client_id, c.first_name || ' ' || c.last_name AS client_name").
		Joins("LEFT JOIN clients c ON c.id = t.client_id").
		Where("t.deleted_at IS NULL").
		Where("t.lawyer_id = ? AND t.date = ?", lawyerID, date).
		Where("t.start_time < ? AND t.end_time > ?", end, start)

	if excludeID != "" {
		query = query.Where("t.id != ?", excludeID)
	}

	if err := query.Order("t.start_time asc").Scan(&conflicts).Error; err != nil {
		return nil, fmt.Errorf("failed to check %s conflicts: %w", kind, err)
	}

	return conflicts, nil
}
