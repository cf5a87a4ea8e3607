package services

import (
	"context"
	"time"

	"retainer-tracker/internal/domain"
	"retainer-tracker/internal/errors"
	"retainer-tracker/internal/repository/sqlite"
)

const (
	noProjectLabel = "(no project)"
	noClientLabel  = "(no client)"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	repo        sqlite.Repository
	workspaceID string
	mapper      *domain.Mapper
	clock       Clock
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(repo sqlite.Repository, workspaceID string) ReportingService {
	return NewReportingServiceWithClock(repo, workspaceID, time.Now)
}

// NewReportingServiceWithClock creates a ReportingService with an injected clock
func NewReportingServiceWithClock(repo sqlite.Repository, workspaceID string, clock Clock) ReportingService {
	return &reportingServiceImpl{
		repo:        repo,
		workspaceID: workspaceID,
		mapper:      domain.NewMapper(),
		clock:       clock,
	}
}

// ByProject aggregates closed entry durations per project, resolving project
// names for display. Unassigned time lands in a labelled catch-all row.
func (r *reportingServiceImpl) ByProject(ctx context.Context, start, end time.Time) ([]*ProjectReportRow, error) {
	durations, err := r.repo.SumDurationsByProject(ctx, r.workspaceID, start, end)
	if err != nil {
		return nil, err
	}

	rows := make([]*ProjectReportRow, 0, len(durations))
	for _, d := range durations {
		row := &ProjectReportRow{
			ProjectID:   d.ProjectID,
			ProjectName: noProjectLabel,
			Seconds:     d.DurationSeconds,
			Hours:       roundHours(float64(d.DurationSeconds) / 3600),
		}
		if d.ProjectID != nil {
			project, err := r.repo.GetProject(ctx, *d.ProjectID)
			if err != nil {
				return nil, err
			}
			row.ProjectName = project.Name
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ByClient aggregates closed entry durations per client. Entries on a project
// count toward the project's owning client.
func (r *reportingServiceImpl) ByClient(ctx context.Context, start, end time.Time) ([]*ClientReportRow, error) {
	durations, err := r.repo.SumDurationsByClient(ctx, r.workspaceID, start, end)
	if err != nil {
		return nil, err
	}

	rows := make([]*ClientReportRow, 0, len(durations))
	for _, d := range durations {
		row := &ClientReportRow{
			ClientID:   d.ClientID,
			ClientName: noClientLabel,
			Seconds:    d.DurationSeconds,
			Hours:      roundHours(float64(d.DurationSeconds) / 3600),
		}
		if d.ClientID != nil {
			client, err := r.repo.GetClient(ctx, *d.ClientID)
			if err != nil {
				return nil, err
			}
			row.ClientName = client.Name
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ByDay aggregates closed entry durations per UTC calendar day.
func (r *reportingServiceImpl) ByDay(ctx context.Context, start, end time.Time) ([]*DayReportRow, error) {
	durations, err := r.repo.SumDurationsByDay(ctx, r.workspaceID, start, end)
	if err != nil {
		return nil, err
	}

	rows := make([]*DayReportRow, 0, len(durations))
	for _, d := range durations {
		rows = append(rows, &DayReportRow{
			Day:     d.Day,
			Seconds: d.DurationSeconds,
			Hours:   roundHours(float64(d.DurationSeconds) / 3600),
		})
	}
	return rows, nil
}

// ProjectHoursUsed returns the all-time closed hours logged against a project,
// used to compute budget status against the project's hour limit.
func (r *reportingServiceImpl) ProjectHoursUsed(ctx context.Context, projectID string) (float64, error) {
	seconds, err := r.repo.SumDurations(ctx, sqlite.AggregateOptions{
		WorkspaceID: r.workspaceID,
		ProjectID:   &projectID,
	})
	if err != nil {
		return 0, err
	}
	return roundHours(float64(seconds) / 3600), nil
}

// ClientHoursTracked returns the all-time closed hours attributable to a client.
func (r *reportingServiceImpl) ClientHoursTracked(ctx context.Context, clientID string) (float64, error) {
	seconds, err := r.repo.SumDurations(ctx, sqlite.AggregateOptions{
		WorkspaceID: r.workspaceID,
		ClientID:    &clientID,
	})
	if err != nil {
		return 0, err
	}
	return roundHours(float64(seconds) / 3600), nil
}

// GetDashboard assembles the status view: the running entry, if any, and
// today's closed totals.
func (r *reportingServiceImpl) GetDashboard(ctx context.Context) (*Dashboard, error) {
	dashboard := &Dashboard{}

	dbEntry, err := r.repo.GetOpenTimeEntry(ctx, r.workspaceID)
	if err == nil {
		entry := r.mapper.TimeEntry.FromDatabase(*dbEntry)
		dashboard.ActiveEntry = &entry
	} else if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}

	now := r.clock().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	seconds, err := r.repo.SumDurations(ctx, sqlite.AggregateOptions{
		WorkspaceID: r.workspaceID,
		StartTime:   &dayStart,
		EndTime:     &dayEnd,
	})
	if err != nil {
		return nil, err
	}
	dashboard.TodaySeconds = seconds

	entries, err := r.repo.SearchTimeEntries(ctx, sqlite.SearchOptions{
		WorkspaceID: r.workspaceID,
		StartTime:   &dayStart,
		EndTime:     &dayEnd,
	})
	if err != nil {
		return nil, err
	}
	dashboard.TodayEntries = len(entries)

	return dashboard, nil
}
