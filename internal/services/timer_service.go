package services

import (
	"context"
	"time"

	"retainer-tracker/internal/domain"
	"retainer-tracker/internal/errors"
	"retainer-tracker/internal/repository/sqlite"
	"retainer-tracker/internal/validation"
)

// timerServiceImpl implements the TimerService interface
type timerServiceImpl struct {
	repo        sqlite.Repository
	workspaceID string
	mapper      *domain.Mapper
	validator   *validation.TimeEntryValidator
	clock       Clock
}

// NewTimerService creates a new TimerService instance
func NewTimerService(repo sqlite.Repository, workspaceID string) TimerService {
	return NewTimerServiceWithClock(repo, workspaceID, time.Now)
}

// NewTimerServiceWithClock creates a TimerService with an injected clock
func NewTimerServiceWithClock(repo sqlite.Repository, workspaceID string, clock Clock) TimerService {
	return &timerServiceImpl{
		repo:        repo,
		workspaceID: workspaceID,
		mapper:      domain.NewMapper(),
		validator:   validation.NewTimeEntryValidator(),
		clock:       clock,
	}
}

// Start begins a new running entry, closing any open one first. The close
// and the create happen in one repository transaction.
func (t *timerServiceImpl) Start(ctx context.Context, projectID *string, description string) (*domain.TimeEntry, error) {
	if err := t.validator.ValidateForStart(projectID, description); err != nil {
		return nil, errors.NewValidationError("invalid timer start", err)
	}

	now := t.clock()
	billable := true
	var clientID *string

	if projectID != nil {
		dbProject, err := t.repo.GetProject(ctx, *projectID)
		if err != nil {
			return nil, err
		}
		project := t.mapper.Project.FromDatabase(*dbProject)
		clientID = project.ClientID
		b, err := t.resolveDefaultBillable(ctx, project)
		if err != nil {
			return nil, err
		}
		billable = b
	}

	dbEntry := &sqlite.TimeEntry{
		ID:          domain.NewID(),
		WorkspaceID: t.workspaceID,
		ProjectID:   projectID,
		ClientID:    clientID,
		Description: description,
		StartTime:   now,
		Billable:    billable,
	}

	err := t.repo.StartTimeEntry(ctx, dbEntry, func(open *sqlite.TimeEntry) {
		closeEntryAt(open, now)
	})
	if err != nil {
		return nil, err
	}

	entry := t.mapper.TimeEntry.FromDatabase(*dbEntry)
	return &entry, nil
}

// Pause holds the clock of an open entry. Pausing a closed or already-paused
// entry is a no-op and returns the entry unchanged.
func (t *timerServiceImpl) Pause(ctx context.Context, entryID string) (*domain.TimeEntry, error) {
	dbEntry, err := t.loadEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if dbEntry.EndTime != nil || dbEntry.PauseStart != nil {
		entry := t.mapper.TimeEntry.FromDatabase(*dbEntry)
		return &entry, nil
	}

	now := t.clock()
	dbEntry.PauseStart = &now
	if err := t.repo.UpdateTimeEntry(ctx, dbEntry); err != nil {
		return nil, err
	}

	entry := t.mapper.TimeEntry.FromDatabase(*dbEntry)
	return &entry, nil
}

// Resume folds the completed pause interval into the accumulated paused
// seconds. Resuming a closed or non-paused entry is a no-op.
func (t *timerServiceImpl) Resume(ctx context.Context, entryID string) (*domain.TimeEntry, error) {
	dbEntry, err := t.loadEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if dbEntry.EndTime != nil || dbEntry.PauseStart == nil {
		entry := t.mapper.TimeEntry.FromDatabase(*dbEntry)
		return &entry, nil
	}

	now := t.clock()
	dbEntry.PausedSeconds += int64(now.Sub(*dbEntry.PauseStart).Seconds())
	dbEntry.PauseStart = nil
	if err := t.repo.UpdateTimeEntry(ctx, dbEntry); err != nil {
		return nil, err
	}

	entry := t.mapper.TimeEntry.FromDatabase(*dbEntry)
	return &entry, nil
}

// Stop closes the entry and fixes its duration. Stopped is terminal, so a
// second stop is rejected as a state conflict without touching the row.
func (t *timerServiceImpl) Stop(ctx context.Context, entryID string) (*domain.TimeEntry, error) {
	dbEntry, err := t.loadEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if dbEntry.EndTime != nil {
		return nil, errors.NewStateConflictError("time entry is already stopped").
			WithContext("entry_id", entryID)
	}

	closeEntryAt(dbEntry, t.clock())
	if err := t.repo.UpdateTimeEntry(ctx, dbEntry); err != nil {
		return nil, err
	}

	entry := t.mapper.TimeEntry.FromDatabase(*dbEntry)
	return &entry, nil
}

// Active returns the currently open entry for the workspace.
func (t *timerServiceImpl) Active(ctx context.Context) (*domain.TimeEntry, error) {
	dbEntry, err := t.repo.GetOpenTimeEntry(ctx, t.workspaceID)
	if err != nil {
		return nil, err
	}

	entry := t.mapper.TimeEntry.FromDatabase(*dbEntry)
	return &entry, nil
}

// Log records a manual, already-closed entry with explicit times.
func (t *timerServiceImpl) Log(ctx context.Context, projectID *string, description string, start, end time.Time, billable bool) (*domain.TimeEntry, error) {
	if err := t.validator.ValidateManualEntry(description, start, end); err != nil {
		return nil, errors.NewValidationError("invalid manual entry", err)
	}

	var clientID *string
	if projectID != nil {
		dbProject, err := t.repo.GetProject(ctx, *projectID)
		if err != nil {
			return nil, err
		}
		clientID = dbProject.ClientID
	}

	duration := int64(end.Sub(start).Seconds())
	dbEntry := &sqlite.TimeEntry{
		ID:              domain.NewID(),
		WorkspaceID:     t.workspaceID,
		ProjectID:       projectID,
		ClientID:        clientID,
		Description:     description,
		StartTime:       start,
		EndTime:         &end,
		DurationSeconds: &duration,
		Billable:        billable,
	}

	if err := t.repo.CreateTimeEntry(ctx, dbEntry); err != nil {
		return nil, err
	}

	entry := t.mapper.TimeEntry.FromDatabase(*dbEntry)
	return &entry, nil
}

func (t *timerServiceImpl) loadEntry(ctx context.Context, entryID string) (*sqlite.TimeEntry, error) {
	if err := t.validator.ValidateEntryID(entryID); err != nil {
		return nil, errors.NewValidationError("invalid entry ID", err)
	}
	return t.repo.GetTimeEntry(ctx, entryID)
}

// resolveDefaultBillable applies the inherit chain: project flag if set,
// else the owning client's default, else billable.
func (t *timerServiceImpl) resolveDefaultBillable(ctx context.Context, project domain.Project) (bool, error) {
	if project.DefaultBillable != nil {
		return *project.DefaultBillable, nil
	}
	if project.ClientID != nil {
		dbClient, err := t.repo.GetClient(ctx, *project.ClientID)
		if err != nil {
			return false, err
		}
		return dbClient.DefaultBillable, nil
	}
	return true, nil
}

// closeEntryAt finalizes an open entry: any in-progress pause is folded into
// the accumulated paused seconds, the end time is set and the stored duration
// becomes (end - start) - paused, floored at 0.
func closeEntryAt(entry *sqlite.TimeEntry, now time.Time) {
	if entry.PauseStart != nil {
		entry.PausedSeconds += int64(now.Sub(*entry.PauseStart).Seconds())
		entry.PauseStart = nil
	}
	end := now
	entry.EndTime = &end
	duration := int64(now.Sub(entry.StartTime).Seconds()) - entry.PausedSeconds
	if duration < 0 {
		duration = 0
	}
	entry.DurationSeconds = &duration
}
