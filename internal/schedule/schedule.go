// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schedule persists entrance exam schedule events.
package schedule

import (
	"errors"
	"time"
)

// Event types. Other is the catch-all for unrecognized labels.
const (
	TypeExam                = "exam"
	TypeApplicationDeadline = "application_deadline"
	TypeAnnouncement        = "announcement"
	TypeOrientation         = "orientation"
	TypeInterview           = "interview"
	TypeOther               = "other"
)

// EventTypes lists every valid event type.
var EventTypes = []string{
	TypeExam, TypeApplicationDeadline, TypeAnnouncement,
	TypeOrientation, TypeInterview, TypeOther,
}

// ValidType reports whether t is a known event type.
func ValidType(t string) bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ErrNotFound is returned when an event does not exist or belongs to a
// different user.
var ErrNotFound = errors.New("schedule event not found")

// DefaultUserID is used when the caller supplies no user.
const DefaultUserID = "default"

// UniversityRef ties an event to a search result record.
type UniversityRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Faculty    string `json:"faculty"`
	Department string `json:"department"`
	ExamType   string `json:"examType"`
}

// Event is one persisted schedule entry.
type Event struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Date        time.Time      `json:"date"`
	Type        string         `json:"type"`
	University  *UniversityRef `json:"university,omitempty"`
	Description string         `json:"description,omitempty"`
	Location    string         `json:"location,omitempty"`
	URL         string         `json:"url,omitempty"`
	UserID      string         `json:"userId"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// FormData carries the caller-supplied fields of an event.
type FormData struct {
	Title       string         `json:"title"`
	Date        time.Time      `json:"date"`
	Type        string         `json:"type"`
	University  *UniversityRef `json:"university,omitempty"`
	Description string         `json:"description,omitempty"`
	Location    string         `json:"location,omitempty"`
	URL         string         `json:"url,omitempty"`
}

// Filters narrows a listing. Zero values match everything.
type Filters struct {
	Start        time.Time
	End          time.Time
	Type         string
	UniversityID string
	UserID       string
}

// Stats summarizes one user's events.
type Stats struct {
	TotalEvents     int            `json:"totalEvents"`
	EventsByType    map[string]int `json:"eventsByType"`
	UpcomingEvents  int            `json:"upcomingEvents"`
	ThisMonthEvents int            `json:"thisMonthEvents"`
}
