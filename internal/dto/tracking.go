package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/timekeep-hq/timekeep_app/internal/tracking"
)

// StartTrackingRequest begins a timer for a project.
type StartTrackingRequest struct {
	ProjectID string `json:"projectID" binding:"required"`
}

// ActiveSessionResponse describes the running timer, if any.
type ActiveSessionResponse struct {
	Active    bool       `json:"active"`
	ProjectID string     `json:"projectID,omitempty"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
}

// ToActiveSessionResponse converts the manager's session (possibly nil) to DTO.
func ToActiveSessionResponse(s *tracking.Session) ActiveSessionResponse {
	if s == nil {
		return ActiveSessionResponse{Active: false}
	}
	started := s.StartedAt
	return ActiveSessionResponse{
		Active:    true,
		ProjectID: s.ProjectID,
		StartedAt: &started,
	}
}

// StoppedSessionResponse describes a finished timer plus the timesheet
// entry created from it.
type StoppedSessionResponse struct {
	ProjectID string          `json:"projectID"`
	StartedAt time.Time       `json:"startedAt"`
	StoppedAt time.Time       `json:"stoppedAt"`
	Minutes   int             `json:"minutes"`
	Hours     decimal.Decimal `json:"hours"`
	EntryID   string          `json:"entryID,omitempty"`
}

// ToStoppedSessionResponse converts a stopped session to DTO.
func ToStoppedSessionResponse(s *tracking.StoppedSession, entryID string) StoppedSessionResponse {
	return StoppedSessionResponse{
		ProjectID: s.ProjectID,
		StartedAt: s.StartedAt,
		StoppedAt: s.StoppedAt,
		Minutes:   s.Minutes,
		Hours:     s.Hours,
		EntryID:   entryID,
	}
}

// ToTrackingHistoryResponse converts stopped sessions to DTOs.
func ToTrackingHistoryResponse(history []tracking.StoppedSession) []StoppedSessionResponse {
	list := make([]StoppedSessionResponse, len(history))
	for i := range history {
		list[i] = ToStoppedSessionResponse(&history[i], "")
	}
	return list
}

// GuidedEntryRequest round-trips the guided entry conversation state.
type GuidedEntryRequest struct {
	Step  tracking.Step  `json:"step"`
	Draft tracking.Draft `json:"draft"`
	Input string         `json:"input"`
}

// GuidedEntryResponse carries the next state and message; EntryID is set
// once the confirmed entry has been created.
type GuidedEntryResponse struct {
	Step    tracking.Step  `json:"step"`
	Draft   tracking.Draft `json:"draft"`
	Message string         `json:"message"`
	EntryID string         `json:"entryID,omitempty"`
}
