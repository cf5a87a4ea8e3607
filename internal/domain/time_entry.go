package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry represents a tracked unit of work. An entry is open while EndTime
// is nil, paused while additionally PauseStart is non-nil, and closed once
// EndTime and DurationSeconds are set. Closed entries keep the duration that
// was computed at stop time; open and paused entries derive it on demand.
type TimeEntry struct {
	ID              string
	WorkspaceID     string
	ProjectID       *string
	ClientID        *string
	Description     string
	StartTime       time.Time
	EndTime         *time.Time
	PauseStart      *time.Time
	PausedSeconds   int64
	DurationSeconds *int64
	Billable        bool
	RateOverride    *decimal.Decimal
	Tags            []Tag
}

// EntryState is the lifecycle state of a time entry: Open, Paused or Closed.
type EntryState interface {
	entryState()
}

// Open is a running entry. Elapsed time advances with the wall clock.
type Open struct {
	Start         time.Time
	PausedSeconds int64
}

// Paused is an open entry whose clock is held at PauseStart.
type Paused struct {
	Start         time.Time
	PauseStart    time.Time
	PausedSeconds int64
}

// Closed is a stopped entry with a fixed duration. Closed is terminal.
type Closed struct {
	DurationSeconds int64
}

func (Open) entryState()   {}
func (Paused) entryState() {}
func (Closed) entryState() {}

// State returns the tagged lifecycle state of the entry.
func (te TimeEntry) State() EntryState {
	if te.EndTime != nil {
		var duration int64
		if te.DurationSeconds != nil {
			duration = *te.DurationSeconds
		}
		return Closed{DurationSeconds: duration}
	}
	if te.PauseStart != nil {
		return Paused{Start: te.StartTime, PauseStart: *te.PauseStart, PausedSeconds: te.PausedSeconds}
	}
	return Open{Start: te.StartTime, PausedSeconds: te.PausedSeconds}
}

// IsOpen returns true if the entry has no end time yet.
func (te TimeEntry) IsOpen() bool {
	return te.EndTime == nil
}

// IsPaused returns true if the entry is open and currently paused.
func (te TimeEntry) IsPaused() bool {
	return te.EndTime == nil && te.PauseStart != nil
}

// ElapsedSecondsAt derives the working duration of the entry at the given
// instant, excluding paused time. Closed entries return the stored duration.
// The result never goes below zero.
func (te TimeEntry) ElapsedSecondsAt(now time.Time) int64 {
	var elapsed int64
	switch s := te.State().(type) {
	case Closed:
		elapsed = s.DurationSeconds
	case Paused:
		elapsed = int64(s.PauseStart.Sub(s.Start).Seconds()) - s.PausedSeconds
	case Open:
		elapsed = int64(now.Sub(s.Start).Seconds()) - s.PausedSeconds
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// ElapsedSeconds derives the working duration as of now.
func (te TimeEntry) ElapsedSeconds() int64 {
	return te.ElapsedSecondsAt(time.Now())
}

// IsValid checks if the time entry has valid data.
func (te TimeEntry) IsValid() bool {
	if te.StartTime.IsZero() {
		return false
	}
	if te.EndTime != nil && te.EndTime.Before(te.StartTime) {
		return false
	}
	if te.PausedSeconds < 0 {
		return false
	}
	return true
}

// FormatHMS formats a duration in seconds as HH:MM:SS for display.
func FormatHMS(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
